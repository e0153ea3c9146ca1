package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dashmart/catalog"
	"dashmart/globals"
	"dashmart/models"
	"dashmart/orders"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCheckout struct{}

func (failingCheckout) Checkout(context.Context, []models.CartItem, string) (models.Order, error) {
	return models.Order{}, errors.New("boom")
}

func newRouter(sessions *Sessions, store *catalog.Store, checkout Checkouter) *httprouter.Router {
	router := httprouter.New()
	router.GET("/api/cart", GetCartHandler(sessions))
	router.POST("/api/cart/items", AddToCartHandler(sessions, store))
	router.PATCH("/api/cart/items/:id", UpdateQuantityHandler(sessions))
	router.DELETE("/api/cart", ClearCartHandler(sessions))
	router.POST("/api/checkout", PlaceOrderHandler(sessions, checkout, "DS-421"))
	return router
}

func call(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(globals.SessionHeader, "shopper")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutScenario(t *testing.T) {
	store := catalog.NewStore([]models.Product{{ID: "1", Name: "Mango", Price: 10, Stock: 2}}, nil)
	manager := orders.NewManager(store)
	sessions := NewSessions()
	router := newRouter(sessions, store, manager)

	require.Equal(t, http.StatusOK, call(t, router, http.MethodPost, "/api/cart/items", `{"productId":"1"}`).Code)
	rec := call(t, router, http.MethodPost, "/api/cart/items", `{"productId":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var view models.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 20.0, view.Total)

	rec = call(t, router, http.MethodPost, "/api/checkout", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, 20.0, order.Total)
	assert.Equal(t, models.StatusPlaced, order.Status)

	p, _ := store.Get("1")
	assert.Equal(t, 0, p.Stock)
	assert.Zero(t, sessions.Get("shopper").Count())

	// the product is now out of stock, so adding it again is a silent no-op
	rec = call(t, router, http.MethodPost, "/api/cart/items", `{"productId":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, sessions.Get("shopper").Count())
}

func TestCheckoutEmptyCart(t *testing.T) {
	store := catalog.NewSeeded()
	router := newRouter(NewSessions(), store, orders.NewManager(store))

	rec := call(t, router, http.MethodPost, "/api/checkout", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFailedCheckoutRestoresCart(t *testing.T) {
	store := catalog.NewSeeded()
	sessions := NewSessions()
	router := newRouter(sessions, store, failingCheckout{})

	call(t, router, http.MethodPost, "/api/cart/items", `{"productId":"3"}`)
	rec := call(t, router, http.MethodPost, "/api/checkout", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, sessions.Get("shopper").Count())
}

func TestReadsDoNotCreateCarts(t *testing.T) {
	store := catalog.NewSeeded()
	sessions := NewSessions()
	router := newRouter(sessions, store, orders.NewManager(store))

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set(globals.SessionHeader, fmt.Sprintf("visitor-%d", i))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[],"count":0,"total":0}`, rec.Body.String())
	}
	call(t, router, http.MethodPatch, "/api/cart/items/2", `{"delta":3}`)
	call(t, router, http.MethodDelete, "/api/cart", "")
	assert.Equal(t, http.StatusBadRequest, call(t, router, http.MethodPost, "/api/checkout", "").Code)
	assert.Zero(t, sessions.Len())
}

func TestUpdateAndClearHandlers(t *testing.T) {
	store := catalog.NewSeeded()
	sessions := NewSessions()
	router := newRouter(sessions, store, orders.NewManager(store))

	assert.Equal(t, http.StatusNotFound, call(t, router, http.MethodPost, "/api/cart/items", `{"productId":"99"}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(t, router, http.MethodPost, "/api/cart/items", `{}`).Code)

	call(t, router, http.MethodPost, "/api/cart/items", `{"productId":"2"}`)
	call(t, router, http.MethodPatch, "/api/cart/items/2", `{"delta":3}`)
	assert.Equal(t, 4, sessions.Get("shopper").Count())

	call(t, router, http.MethodPatch, "/api/cart/items/2", `{"delta":-4}`)
	assert.Empty(t, sessions.Get("shopper").Items())

	call(t, router, http.MethodPost, "/api/cart/items", `{"productId":"2"}`)
	call(t, router, http.MethodDelete, "/api/cart", "")
	assert.Empty(t, sessions.Get("shopper").Items())
}
