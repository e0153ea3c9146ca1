package console

import (
	"errors"
	"net/http"

	"dashmart/orders"
	"dashmart/utils"

	"github.com/julienschmidt/httprouter"
)

// DashboardHandler serves GET /api/ops/dashboard
func DashboardHandler(c *Console) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, c.Dashboard())
	}
}

// QueueHandler serves GET /api/ops/queue
func QueueHandler(c *Console) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, c.Queue())
	}
}

// AdvanceHandler serves POST /api/ops/orders/:id/advance
func AdvanceHandler(c *Console) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		order, err := c.Advance(r.Context(), ps.ByName("id"))
		if errors.Is(err, ErrNoAction) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			orders.WriteError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, order)
	}
}
