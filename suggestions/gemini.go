package suggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dashmart/models"

	"google.golang.org/genai"
)

// GeminiClient asks Gemini for JSON shaped by a response schema.
type GeminiClient struct {
	client *genai.Client // nil when no api key is configured
	model  string
}

// NewGeminiClient builds a client for the Gemini API. endpoint overrides the
// API base URL and may be empty. Without an api key every call fails with
// ErrExternalService.
func NewGeminiClient(ctx context.Context, endpoint, model, apiKey string) (*GeminiClient, error) {
	g := &GeminiClient{model: model}
	if apiKey == "" {
		return g, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: endpoint},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

var recipeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recipeName":           {Type: genai.TypeString},
		"steps":                stringList(),
		"ingredients":          stringList(),
		"suggestedSearchTerms": stringList(),
	},
	Required: []string{"recipeName", "steps", "ingredients", "suggestedSearchTerms"},
}

var forecastSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"atRiskItems":       stringList(),
		"recommendedAction": {Type: genai.TypeString},
		"urgencyLevel":      {Type: genai.TypeString, Enum: []string{models.UrgencyHigh, models.UrgencyMedium, models.UrgencyLow}},
	},
	Required: []string{"atRiskItems", "recommendedAction", "urgencyLevel"},
}

// Recipe asks for a quick recipe and the grocery items it needs.
func (g *GeminiClient) Recipe(ctx context.Context, query string) (*models.RecipeSuggestion, error) {
	prompt := fmt.Sprintf("Suggest a quick 10-minute recipe for %q and list the exact items needed from a grocery store.", query)

	var out models.RecipeSuggestion
	if err := g.generate(ctx, prompt, recipeSchema, &out); err != nil {
		return nil, err
	}
	if out.RecipeName == "" {
		return nil, fmt.Errorf("%w: empty recipe", ErrExternalService)
	}
	return &out, nil
}

// Forecast asks for a restock plan from the current inventory and orders.
func (g *GeminiClient) Forecast(ctx context.Context, inventory []models.Product, orders []models.Order) (*models.SupplyForecast, error) {
	inv, err := json.Marshal(inventory)
	if err != nil {
		return nil, err
	}
	ord, err := json.Marshal(orders)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(`You are a Supply Chain Optimization AI for a 10-minute delivery service.
Analyze this Dark Store state:
Inventory: %s
Active Orders: %s

Provide a strategic restock recommendation. Identify which items are at risk of stockout in the next 2 hours based on velocity.
Return a JSON object with atRiskItems (string[]), recommendedAction (string) and urgencyLevel ('high' | 'medium' | 'low').`, inv, ord)

	var out models.SupplyForecast
	if err := g.generate(ctx, prompt, forecastSchema, &out); err != nil {
		return nil, err
	}
	switch out.UrgencyLevel {
	case models.UrgencyHigh, models.UrgencyMedium, models.UrgencyLow:
	default:
		return nil, fmt.Errorf("%w: urgency %q", ErrExternalService, out.UrgencyLevel)
	}
	return &out, nil
}

func (g *GeminiClient) generate(ctx context.Context, prompt string, schema *genai.Schema, out interface{}) error {
	if g.client == nil {
		return fmt.Errorf("%w: no api key configured", ErrExternalService)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	text := firstText(resp)
	if text == "" {
		return fmt.Errorf("%w: no candidates", ErrExternalService)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return nil
}

// firstText joins the text parts of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}
