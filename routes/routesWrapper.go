package routes

import (
	"github.com/julienschmidt/httprouter"
)

// RoutesWrapper builds the full route table.
func RoutesWrapper(d Deps) *httprouter.Router {
	router := httprouter.New()
	AddUtilityRoutes(router)
	AddCatalogRoutes(router, d)
	AddCartRoutes(router, d)
	AddOrderRoutes(router, d)
	AddTrackingRoutes(router, d)
	AddOpsRoutes(router, d)
	AddSuggestionsRoutes(router, d)
	return router
}
