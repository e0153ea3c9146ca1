package suggestions

import (
	"net/http"

	"dashmart/models"
	"dashmart/utils"

	"github.com/julienschmidt/httprouter"
)

// InventorySource feeds the forecaster the current catalog.
type InventorySource interface {
	Snapshot() []models.Product
}

// OrderSource feeds the forecaster every order placed so far.
type OrderSource interface {
	List() []models.Order
}

// RecipeHandler serves POST /api/assistant/recipe with {"query": "..."}.
// A missing suggestion is reported as null, never as an error status.
func RecipeHandler(a *Assistant) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var body struct {
			Query string `json:"query"`
		}
		if err := utils.DecodeJSON(r, &body); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		rec := a.Recipe(r.Context(), body.Query)
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"suggestion": rec})
	}
}

// ForecastHandler serves POST /api/ops/forecast.
func ForecastHandler(a *Assistant, inventory InventorySource, orders OrderSource) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		fc := a.Forecast(r.Context(), inventory.Snapshot(), orders.List())
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"suggestion": fc})
	}
}
