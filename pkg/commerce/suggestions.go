package commerce

import "math"

// Machine-actionable suggestion tags.
const (
	ActionExpandBudget    = "expand_budget"
	ActionExpandLocation  = "expand_location"
	ActionSimilarProducts = "similar_products"
	ActionExpandSearch    = "expand_search"
)

// Suggestion is one broadening proposal offered after a thin result set.
type Suggestion struct {
	Type         string `json:"type"`
	Text         string `json:"text"`
	Action       string `json:"action"`
	NewBudgetMax int    `json:"newBudgetMax,omitempty"`
}

// similarProductTypes maps each category to its neighbors for the
// similar-products suggestion.
var similarProductTypes = map[string][]string{
	"vêtements":      {"accessoires", "chaussures"},
	"électronique":   {"informatique", "smartphones"},
	"électroménager": {"maison", "électronique"},
	"sport":          {"loisirs", "fitness"},
	"cosmétiques":    {"beauté", "parfums"},
	"jouets":         {"enfants", "puériculture"},
	"automobile":     {"pièces détachées"},
	"livres":         {"culture", "multimédia"},
	"maison":         {"jardin", "décoration"},
}

// SimilarProductTypes returns the neighboring categories of a product
// type, empty when none are known.
func SimilarProductTypes(productType string) []string {
	return similarProductTypes[productType]
}

// GenerateSuggestions proposes up to three ways to broaden a search
// that came back empty, or a single expand-search nudge when results
// were thin.
func GenerateSuggestions(c Criteria, foundCount int) []Suggestion {
	var suggestions []Suggestion

	if foundCount == 0 {
		if c.BudgetMax > 0 {
			suggestions = append(suggestions, Suggestion{
				Type:         "budget",
				Text:         "💰 Élargir votre budget",
				Action:       ActionExpandBudget,
				NewBudgetMax: int(math.Round(float64(c.BudgetMax) * 1.5)),
			})
		}
		if c.City != "" {
			suggestions = append(suggestions, Suggestion{
				Type:   "location",
				Text:   "📍 Chercher dans d'autres villes",
				Action: ActionExpandLocation,
			})
		}
		if c.ProductType != "" {
			suggestions = append(suggestions, Suggestion{
				Type:   "product",
				Text:   "🔄 Explorer des produits similaires",
				Action: ActionSimilarProducts,
			})
		}
		return suggestions
	}

	if foundCount < 3 {
		suggestions = append(suggestions, Suggestion{
			Type:   "more_options",
			Text:   "🔍 Voir plus d'options",
			Action: ActionExpandSearch,
		})
	}
	return suggestions
}
