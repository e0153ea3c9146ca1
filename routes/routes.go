package routes

import (
	"fmt"
	"net/http"
	"time"

	"dashmart/cart"
	"dashmart/catalog"
	"dashmart/console"
	"dashmart/livefeed"
	"dashmart/metrics"
	"dashmart/models"
	"dashmart/orders"
	"dashmart/ratelim"
	"dashmart/receipts"
	"dashmart/suggestions"
	"dashmart/tracking"

	"github.com/julienschmidt/httprouter"
)

// Deps is everything the route table hands to handlers.
type Deps struct {
	Catalog     *catalog.Store
	Carts       *cart.Sessions
	Orders      *orders.Manager
	Console     *console.Console
	Assistant   *suggestions.Assistant
	Hub         *livefeed.Hub
	RateLimiter *ratelim.RateLimiter
	Store       models.DarkStore
	PublicURL   string
	TrackTick   time.Duration
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func AddUtilityRoutes(router *httprouter.Router) {
	router.GET("/health", Index)
	router.Handler(http.MethodGet, "/metrics", metrics.Handler())
}

func AddCatalogRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/categories", catalog.ListCategoriesHandler(d.Catalog))
	router.GET("/api/products", catalog.ListProductsHandler(d.Catalog))
	router.GET("/api/products/:id", catalog.GetProductHandler(d.Catalog))
	router.PUT("/api/ops/products/:id/price", catalog.SetPriceHandler(d.Catalog))
}

func AddCartRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/cart", cart.GetCartHandler(d.Carts))
	router.DELETE("/api/cart", cart.ClearCartHandler(d.Carts))
	router.POST("/api/cart/items", cart.AddToCartHandler(d.Carts, d.Catalog))
	router.PATCH("/api/cart/items/:id", cart.UpdateQuantityHandler(d.Carts))
	router.POST("/api/checkout", cart.PlaceOrderHandler(d.Carts, d.Orders, d.Store.ID))
}

func AddOrderRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/orders", orders.ListOrdersHandler(d.Orders))
	router.GET("/api/orders/:id", orders.GetOrderHandler(d.Orders))
	router.PUT("/api/orders/:id/status", orders.TransitionHandler(d.Orders))
	router.GET("/api/orders/:id/receipt", receipts.ReceiptHandler(d.Orders, d.Store, d.PublicURL))
	router.GET("/api/orders/:id/qr", receipts.QRHandler(d.Orders, d.PublicURL))
}

func AddTrackingRoutes(router *httprouter.Router, d Deps) {
	router.GET("/ws/track/:id", tracking.StreamHandler(d.Orders, d.TrackTick))
}

func AddOpsRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/ops/dashboard", console.DashboardHandler(d.Console))
	router.GET("/api/ops/queue", console.QueueHandler(d.Console))
	router.POST("/api/ops/orders/:id/advance", console.AdvanceHandler(d.Console))
	router.GET("/ws/ops", livefeed.OpsHandler(d.Hub, d.Console))
}

func AddSuggestionsRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/assistant/recipe", d.RateLimiter.Limit(suggestions.RecipeHandler(d.Assistant)))
	router.POST("/api/ops/forecast", d.RateLimiter.Limit(suggestions.ForecastHandler(d.Assistant, d.Catalog, d.Orders)))
}
