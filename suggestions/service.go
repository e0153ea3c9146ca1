// Package suggestions talks to the external generative service that powers
// the recipe assistant and the restock forecaster. Every failure degrades to
// "no suggestion"; nothing here may block checkout or tracking.
package suggestions

import (
	"context"
	"errors"

	"dashmart/models"
)

// ErrExternalService wraps every failure of the remote service: transport
// errors, timeouts, bad status codes and unparseable answers.
var ErrExternalService = errors.New("suggestion service unavailable")

// Service is the external collaborator.
type Service interface {
	Recipe(ctx context.Context, query string) (*models.RecipeSuggestion, error)
	Forecast(ctx context.Context, inventory []models.Product, orders []models.Order) (*models.SupplyForecast, error)
}
