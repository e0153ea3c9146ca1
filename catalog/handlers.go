package catalog

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"dashmart/utils"

	"github.com/julienschmidt/httprouter"
)

// ListProductsHandler serves GET /api/products?q=&category=
func ListProductsHandler(store *Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		q := r.URL.Query()
		products := store.List(Filter{
			Text:       strings.TrimSpace(q.Get("q")),
			CategoryID: q.Get("category"),
		})
		utils.RespondWithJSON(w, http.StatusOK, products)
	}
}

// GetProductHandler serves GET /api/products/:id
func GetProductHandler(store *Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		p, err := store.Get(ps.ByName("id"))
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, p)
	}
}

// ListCategoriesHandler serves GET /api/categories
func ListCategoriesHandler(store *Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, store.CategoryList())
	}
}

// SetPriceHandler serves PUT /api/ops/products/:id/price
func SetPriceHandler(store *Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var body struct {
			Price *float64 `json:"price"`
		}
		if err := utils.DecodeJSON(r, &body); err != nil || body.Price == nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		p, err := store.SetPrice(ps.ByName("id"), *body.Price)
		switch {
		case errors.Is(err, ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		case err != nil:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		log.Printf("catalog: price of %s set to %.2f", p.ID, p.Price)
		utils.RespondWithJSON(w, http.StatusOK, p)
	}
}
