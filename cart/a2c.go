package cart

import (
	"context"
	"log"
	"net/http"

	"dashmart/models"
	"dashmart/orders"
	"dashmart/utils"

	"github.com/julienschmidt/httprouter"
)

// ProductLookup resolves a product id to its current catalog entry.
type ProductLookup interface {
	Get(id string) (models.Product, error)
}

// Checkouter turns a cart snapshot into an order.
type Checkouter interface {
	Checkout(ctx context.Context, items []models.CartItem, storeID string) (models.Order, error)
}

// AddToCartHandler serves POST /api/cart/items. Zero-stock products are
// accepted silently and leave the cart unchanged.
func AddToCartHandler(sessions *Sessions, products ProductLookup) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var body struct {
			ProductID string `json:"productId"`
		}
		if err := utils.DecodeJSON(r, &body); err != nil || body.ProductID == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		product, err := products.Get(body.ProductID)
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}

		sessionID := utils.GetSessionIDFromRequest(r)
		if product.Stock <= 0 {
			respondWithCart(w, sessions, sessionID)
			return
		}
		c := sessions.Get(sessionID)
		c.Add(product)
		utils.RespondWithJSON(w, http.StatusOK, c.View())
	}
}

// GetCartHandler serves GET /api/cart
func GetCartHandler(sessions *Sessions) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		respondWithCart(w, sessions, utils.GetSessionIDFromRequest(r))
	}
}

// respondWithCart writes the session's cart, or an empty one if the session
// has none. Reads never allocate a cart.
func respondWithCart(w http.ResponseWriter, sessions *Sessions, sessionID string) {
	if c, ok := sessions.Lookup(sessionID); ok {
		utils.RespondWithJSON(w, http.StatusOK, c.View())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, New().View())
}

// UpdateQuantityHandler serves PATCH /api/cart/items/:id with {"delta": n}
func UpdateQuantityHandler(sessions *Sessions) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var body struct {
			Delta int `json:"delta"`
		}
		if err := utils.DecodeJSON(r, &body); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		sessionID := utils.GetSessionIDFromRequest(r)
		if c, ok := sessions.Lookup(sessionID); ok {
			c.SetQuantity(ps.ByName("id"), body.Delta)
		}
		respondWithCart(w, sessions, sessionID)
	}
}

// ClearCartHandler serves DELETE /api/cart
func ClearCartHandler(sessions *Sessions) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		sessionID := utils.GetSessionIDFromRequest(r)
		if c, ok := sessions.Lookup(sessionID); ok {
			c.Clear()
		}
		respondWithCart(w, sessions, sessionID)
	}
}

// PlaceOrderHandler serves POST /api/checkout. The session cart is emptied
// on success and restored if the order could not be created.
func PlaceOrderHandler(sessions *Sessions, checkout Checkouter, storeID string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		c, ok := sessions.Lookup(utils.GetSessionIDFromRequest(r))
		if !ok {
			orders.WriteError(w, orders.ErrEmptyCart)
			return
		}
		items := c.Drain()

		order, err := checkout.Checkout(r.Context(), items, storeID)
		if err != nil {
			c.Restore(items)
			log.Println("PlaceOrder checkout error:", err)
			orders.WriteError(w, err)
			return
		}

		utils.RespondWithJSON(w, http.StatusCreated, order)
	}
}
