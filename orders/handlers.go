package orders

import (
	"errors"
	"net/http"

	"dashmart/catalog"
	"dashmart/models"
	"dashmart/utils"

	"github.com/julienschmidt/httprouter"
)

// ListOrdersHandler serves GET /api/orders, optionally ?pending=true
func ListOrdersHandler(m *Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if r.URL.Query().Get("pending") == "true" {
			utils.RespondWithJSON(w, http.StatusOK, m.ListPending())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, m.List())
	}
}

// GetOrderHandler serves GET /api/orders/:id
func GetOrderHandler(m *Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		order, err := m.Get(ps.ByName("id"))
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, order)
	}
}

// TransitionHandler serves PUT /api/orders/:id/status
func TransitionHandler(m *Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var body struct {
			Status models.OrderStatus `json:"status"`
		}
		if err := utils.DecodeJSON(r, &body); err != nil || !body.Status.Valid() {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}

		id := ps.ByName("id")
		if err := m.Transition(r.Context(), id, body.Status); err != nil {
			WriteError(w, err)
			return
		}
		order, _ := m.Get(id)
		utils.RespondWithJSON(w, http.StatusOK, order)
	}
}

// WriteError maps order errors to HTTP status codes.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrEmptyCart):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Order operation failed")
	}
}
