package recipe

// CostSummary is the shopping-list cost breakdown for a recipe.
type CostSummary struct {
	Total     float64 `json:"total"`
	Remaining float64 `json:"remaining"`
	Currency  string  `json:"currency"`
}

// Costs sums ingredient costs; checked ingredients (already owned) are
// excluded from the remaining amount.
func Costs(r *Recipe, checked map[int]bool) CostSummary {
	summary := CostSummary{Currency: "EUR"}
	if r == nil {
		return summary
	}
	for i, ing := range r.Ingredients {
		summary.Total += ing.Cost
		if !checked[i] {
			summary.Remaining += ing.Cost
		}
	}
	return summary
}
