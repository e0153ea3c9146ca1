package models

// RecipeSuggestion is the assistant's answer to "what should I cook today?".
type RecipeSuggestion struct {
	RecipeName           string   `json:"recipeName"`
	Steps                []string `json:"steps"`
	Ingredients          []string `json:"ingredients"`
	SuggestedSearchTerms []string `json:"suggestedSearchTerms"`
}

// Urgency levels for a supply forecast.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// SupplyForecast is the restock plan produced for mission control.
type SupplyForecast struct {
	AtRiskItems       []string `json:"atRiskItems"`
	RecommendedAction string   `json:"recommendedAction"`
	UrgencyLevel      string   `json:"urgencyLevel"`
}
