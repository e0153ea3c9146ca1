package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ShortID returns n upper-case hex characters taken from a fresh UUID.
func ShortID(n int) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if n > len(id) {
		n = len(id)
	}
	return id[:n]
}
