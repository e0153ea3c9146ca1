package suggestions

import (
	"context"
	"log"
	"strings"
	"time"

	"dashmart/metrics"
	"dashmart/models"
)

// Assistant is what handlers call. It never returns an error: a failed or
// slow suggestion is simply absent.
type Assistant struct {
	svc     Service
	timeout time.Duration
}

func NewAssistant(svc Service, timeout time.Duration) *Assistant {
	return &Assistant{svc: svc, timeout: timeout}
}

// Recipe returns nil for blank queries and for any service failure.
func (a *Assistant) Recipe(ctx context.Context, query string) *models.RecipeSuggestion {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	ctx, cancel := a.bound(ctx)
	defer cancel()

	rec, err := a.svc.Recipe(ctx, query)
	if err != nil {
		log.Printf("Recipe suggestion failed for %q: %v", query, err)
		metrics.SuggestionFailures.WithLabelValues("recipe").Inc()
		return nil
	}
	return rec
}

// Forecast returns nil on any service failure.
func (a *Assistant) Forecast(ctx context.Context, inventory []models.Product, orders []models.Order) *models.SupplyForecast {
	ctx, cancel := a.bound(ctx)
	defer cancel()

	fc, err := a.svc.Forecast(ctx, inventory, orders)
	if err != nil {
		log.Printf("Supply forecast failed: %v", err)
		metrics.SuggestionFailures.WithLabelValues("forecast").Inc()
		return nil
	}
	return fc
}

func (a *Assistant) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
