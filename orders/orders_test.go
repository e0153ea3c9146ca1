package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"dashmart/catalog"
	"dashmart/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (p *recordingPublisher) Emit(_ context.Context, ev models.OrderEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("ORD%d", n)
	}
}

func newTestManager(t *testing.T, products ...models.Product) (*Manager, *catalog.Store, *recordingPublisher) {
	t.Helper()
	store := catalog.NewStore(products, nil)
	pub := &recordingPublisher{}
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewManager(store,
		WithPublisher(pub),
		WithClock(func() time.Time { return clock }),
		WithIDGenerator(sequentialIDs()),
	)
	return m, store, pub
}

func item(p models.Product, qty int) models.CartItem {
	return models.CartItem{Product: p, Quantity: qty}
}

func TestCheckoutCreatesPlacedOrderAndDeductsStock(t *testing.T) {
	milk := models.Product{ID: "1", Name: "Milk", Price: 10, Stock: 2}
	m, store, pub := newTestManager(t, milk)

	order, err := m.Checkout(context.Background(), []models.CartItem{item(milk, 2)}, "DS-421")
	require.NoError(t, err)

	assert.Equal(t, "ORD1", order.ID)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, 20.0, order.Total)
	assert.Equal(t, "DS-421", order.StoreID)
	assert.Equal(t, models.DefaultETAMinutes, order.ETA)

	p, _ := store.Get("1")
	assert.Equal(t, 0, p.Stock)

	require.Len(t, pub.events, 1)
	assert.Equal(t, models.EventOrderCreated, pub.events[0].Type)
}

func TestCheckoutCapsStockAtZero(t *testing.T) {
	chips := models.Product{ID: "4", Price: 1.5, Stock: 1}
	m, store, _ := newTestManager(t, chips)

	order, err := m.Checkout(context.Background(), []models.CartItem{item(chips, 5)}, "DS-421")
	require.NoError(t, err)
	assert.Equal(t, 7.5, order.Total)

	p, _ := store.Get("4")
	assert.Equal(t, 0, p.Stock)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	m, _, pub := newTestManager(t)

	_, err := m.Checkout(context.Background(), nil, "DS-421")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, m.List())
	assert.Empty(t, pub.events)
}

func TestCheckoutIsAtomicOnUnknownProduct(t *testing.T) {
	milk := models.Product{ID: "1", Price: 10, Stock: 5}
	m, store, _ := newTestManager(t, milk)

	ghost := models.Product{ID: "ghost", Price: 1, Stock: 1}
	_, err := m.Checkout(context.Background(), []models.CartItem{item(milk, 2), item(ghost, 1)}, "DS-421")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	p, _ := store.Get("1")
	assert.Equal(t, 5, p.Stock)
	assert.Empty(t, m.List())
}

func TestOrderTotalSurvivesPriceChange(t *testing.T) {
	milk := models.Product{ID: "1", Price: 10, Stock: 5}
	m, store, _ := newTestManager(t, milk)

	order, err := m.Checkout(context.Background(), []models.CartItem{item(milk, 3)}, "DS-421")
	require.NoError(t, err)

	_, err = store.SetPrice("1", 99)
	require.NoError(t, err)

	got, err := m.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, got.Total)
	assert.Equal(t, 10.0, got.Items[0].Price)
}

func TestItemsAreASnapshot(t *testing.T) {
	milk := models.Product{ID: "1", Price: 10, Stock: 5}
	m, _, _ := newTestManager(t, milk)

	items := []models.CartItem{item(milk, 1)}
	order, err := m.Checkout(context.Background(), items, "DS-421")
	require.NoError(t, err)

	items[0].Quantity = 40
	order.Items[0].Quantity = 50

	got, _ := m.Get(order.ID)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestTransitionFollowsSequence(t *testing.T) {
	milk := models.Product{ID: "1", Price: 1, Stock: 5}
	m, _, pub := newTestManager(t, milk)
	ctx := context.Background()

	order, err := m.Checkout(ctx, []models.CartItem{item(milk, 1)}, "DS-421")
	require.NoError(t, err)

	for _, s := range models.StatusSequence[1:] {
		require.NoError(t, m.Transition(ctx, order.ID, s))
	}
	got, _ := m.Get(order.ID)
	assert.Equal(t, models.StatusDelivered, got.Status)
	assert.NotNil(t, got.PickingStartedAt)
	assert.NotNil(t, got.PackedAt)
	assert.Equal(t, order.Total, got.Total)
	assert.Equal(t, order.Timestamp, got.Timestamp)
	assert.Len(t, pub.events, 5)
}

func TestTransitionRejectsOutOfSequence(t *testing.T) {
	milk := models.Product{ID: "1", Price: 1, Stock: 5}
	m, _, _ := newTestManager(t, milk)
	ctx := context.Background()

	order, err := m.Checkout(ctx, []models.CartItem{item(milk, 1)}, "DS-421")
	require.NoError(t, err)

	cases := []models.OrderStatus{
		models.StatusPlaced,
		models.StatusPacked,
		models.StatusDispatched,
		models.StatusDelivered,
		models.OrderStatus("CANCELLED"),
	}
	for _, s := range cases {
		err := m.Transition(ctx, order.ID, s)
		assert.ErrorIs(t, err, ErrInvalidTransition, "PLACED -> %s", s)
	}
	got, _ := m.Get(order.ID)
	assert.Equal(t, models.StatusPlaced, got.Status)

	for _, s := range models.StatusSequence[1:] {
		require.NoError(t, m.Transition(ctx, order.ID, s))
	}
	assert.ErrorIs(t, m.Transition(ctx, order.ID, models.StatusPicking), ErrInvalidTransition)
	got, _ = m.Get(order.ID)
	assert.Equal(t, models.StatusDelivered, got.Status)
}

func TestTransitionUnknownOrder(t *testing.T) {
	m, _, _ := newTestManager(t)
	assert.ErrorIs(t, m.Transition(context.Background(), "nope", models.StatusPicking), ErrNotFound)
}

func TestListPendingKeepsInsertionOrder(t *testing.T) {
	milk := models.Product{ID: "1", Price: 1, Stock: 50}
	m, _, _ := newTestManager(t, milk)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		o, err := m.Checkout(ctx, []models.CartItem{item(milk, 1)}, "DS-421")
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	for _, s := range models.StatusSequence[1:] {
		require.NoError(t, m.Transition(ctx, ids[1], s))
	}

	pending := m.ListPending()
	require.Len(t, pending, 2)
	assert.Equal(t, ids[0], pending[0].ID)
	assert.Equal(t, ids[2], pending[1].ID)
	assert.Len(t, m.List(), 3)
}

func TestUniqueIDsOnCollision(t *testing.T) {
	milk := models.Product{ID: "1", Price: 1, Stock: 50}
	store := catalog.NewStore([]models.Product{milk}, nil)
	gen := []string{"A", "A", "B"}
	i := 0
	m := NewManager(store, WithIDGenerator(func() string {
		id := gen[i]
		i++
		return id
	}))

	first, err := m.Checkout(context.Background(), []models.CartItem{item(milk, 1)}, "DS")
	require.NoError(t, err)
	second, err := m.Checkout(context.Background(), []models.CartItem{item(milk, 1)}, "DS")
	require.NoError(t, err)
	assert.Equal(t, "A", first.ID)
	assert.Equal(t, "B", second.ID)
}

func TestTransitionHandler(t *testing.T) {
	milk := models.Product{ID: "1", Price: 1, Stock: 5}
	m, _, _ := newTestManager(t, milk)
	order, err := m.Checkout(context.Background(), []models.CartItem{item(milk, 1)}, "DS-421")
	require.NoError(t, err)

	router := httprouter.New()
	router.PUT("/api/orders/:id/status", TransitionHandler(m))

	do := func(id, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/orders/"+id+"/status", strings.NewReader(body)))
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, do(order.ID, `{"status":"LOST"}`).Code)
	assert.Equal(t, http.StatusConflict, do(order.ID, `{"status":"DISPATCHED"}`).Code)
	assert.Equal(t, http.StatusNotFound, do("nope", `{"status":"PICKING"}`).Code)

	rec := do(order.ID, `{"status":"PICKING"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.StatusPicking, got.Status)
}
