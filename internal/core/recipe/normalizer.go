package recipe

import (
	"encoding/json"
	"strconv"
	"strings"

	"chef-finokio/internal/pkg/common"
)

// Defaults applied when the model omits or mangles a field.
const (
	DefaultTime     = "30 min"
	DefaultQty      = "q.b."
	DefaultServings = 2
	NutritionNA     = "n/d"
	genericStep     = "Segui le istruzioni..."
)

// Normalize turns an arbitrary model payload into a well-formed Recipe.
// It never fails: every missing or wrongly typed field is replaced with
// its default, falling back to the previous recipe's values when one is
// given (variant flow).
func Normalize(raw RawRecipe, fallback *Recipe) Recipe {
	var r Recipe

	r.ID = stringField(raw, "id", "")
	r.Title = stringField(raw, "title", "")
	r.Subtitle = stringField(raw, "subtitle", "")
	r.Description = stringField(raw, "description", "")
	r.Category = stringField(raw, "category", "")
	r.Image = stringField(raw, "image", "")

	if fallback != nil {
		if r.ID == "" {
			r.ID = fallback.ID
		}
		if r.Title == "" {
			r.Title = fallback.Title
		}
		if r.Category == "" {
			r.Category = fallback.Category
		}
		if r.Image == "" {
			r.Image = fallback.Image
		}
	}
	if r.ID == "" {
		r.ID = common.GenerateUUID()
	}
	if r.Title == "" {
		r.Title = "Ricetta senza nome"
	}

	r.Tags = tagList(raw["tags"], fallback)
	r.Nutrition = nutritionField(raw["nutrition"])
	r.Time = stringField(raw, "time", DefaultTime)
	r.Servings = intField(raw, "servings", DefaultServings)
	r.Steps = stepList(raw["steps"], fallback)
	r.Ingredients = ingredientList(raw["ingredients"], fallback)

	return r
}

// StepText resolves a single step that may be a plain string or an
// object keyed by instruction, step, text or description.
func StepText(step interface{}) string {
	switch v := step.(type) {
	case string:
		if v != "" {
			return v
		}
	case map[string]interface{}:
		for _, key := range []string{"instruction", "step", "text", "description"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return genericStep
}

// CoerceCost turns any JSON value into a euro amount; anything that is
// not a number (or a numeric string) counts as 0.
func CoerceCost(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(n, "€")), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func stringField(raw RawRecipe, key, def string) string {
	if s, ok := raw[key].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

func intField(raw RawRecipe, key string, def int) int {
	switch n := raw[key].(type) {
	case float64:
		if n > 0 {
			return int(n)
		}
	case int:
		if n > 0 {
			return n
		}
	case json.Number:
		if i, err := n.Int64(); err == nil && i > 0 {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && i > 0 {
			return i
		}
	}
	return def
}

// tagList keeps order and duplicates. A value that is not an array
// inherits the fallback's tags.
func tagList(v interface{}, fallback *Recipe) []string {
	items, ok := v.([]interface{})
	if !ok {
		if fallback != nil {
			return append([]string{}, fallback.Tags...)
		}
		return []string{}
	}
	tags := []string{}
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}

func nutritionField(v interface{}) Nutrition {
	n := Nutrition{
		Protein:  NutritionNA,
		Carbs:    NutritionNA,
		Fiber:    NutritionNA,
		Calories: NutritionNA,
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return n
	}
	if s := nutritionValue(m["protein"]); s != "" {
		n.Protein = s
	}
	if s := nutritionValue(m["carbs"]); s != "" {
		n.Carbs = s
	}
	if s := nutritionValue(m["fiber"]); s != "" {
		n.Fiber = s
	}
	if s := nutritionValue(m["calories"]); s != "" {
		n.Calories = s
	}
	return n
}

// nutritionValue renders a nutrition entry as a display string; models
// sometimes answer with bare numbers instead of "35g".
func nutritionValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	}
	return ""
}

// stepList resolves each entry through StepText. A value that is not
// an array inherits the fallback's steps.
func stepList(v interface{}, fallback *Recipe) []string {
	items, ok := v.([]interface{})
	if !ok {
		if fallback != nil {
			return append([]string{}, fallback.Steps...)
		}
		return []string{}
	}
	steps := []string{}
	for _, item := range items {
		steps = append(steps, StepText(item))
	}
	return steps
}

// ingredientList defaults each entry field by field. A value that is
// not an array inherits the fallback's ingredients.
func ingredientList(v interface{}, fallback *Recipe) []Ingredient {
	items, ok := v.([]interface{})
	if !ok {
		if fallback != nil {
			return append([]Ingredient{}, fallback.Ingredients...)
		}
		return []Ingredient{}
	}
	ingredients := []Ingredient{}
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		ing := Ingredient{
			Name: "Ingrediente",
			Qty:  DefaultQty,
		}
		if s, ok := m["name"].(string); ok && strings.TrimSpace(s) != "" {
			ing.Name = s
		}
		if s, ok := m["qty"].(string); ok && strings.TrimSpace(s) != "" {
			ing.Qty = s
		}
		ing.Cost = CoerceCost(m["cost"])
		ingredients = append(ingredients, ing)
	}
	return ingredients
}
