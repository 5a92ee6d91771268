package recipe

// NormalizePairing turns a raw sommelier payload into a complete
// WinePairing, defaulting missing fields like the recipe normalizer
// does.
func NormalizePairing(raw map[string]interface{}) *WinePairing {
	p := &WinePairing{
		Wine:       "Vino della casa",
		Type:       NutritionNA,
		Motivation: "Si abbina bene al piatto.",
	}
	if raw == nil {
		return p
	}
	if s, ok := raw["wine"].(string); ok && s != "" {
		p.Wine = s
	}
	if s, ok := raw["type"].(string); ok && s != "" {
		p.Type = s
	}
	if s, ok := raw["motivation"].(string); ok && s != "" {
		p.Motivation = s
	}
	return p
}
