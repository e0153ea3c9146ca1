package rdx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	opts, err := Options("localhost:6379", "pw")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)

	opts, err = Options("redis://:secret@cache:6380/2", "")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = Options("redis://cache:6380/notadb", "")
	assert.Error(t, err)
}

func TestConnectWithoutURL(t *testing.T) {
	client, err := Connect(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, client)
}
