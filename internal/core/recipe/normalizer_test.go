package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chef-finokio/internal/pkg/common"
)

func TestNormalizeEmptyInput(t *testing.T) {
	r := Normalize(RawRecipe{}, nil)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Ricetta senza nome", r.Title)
	assert.Equal(t, DefaultTime, r.Time)
	assert.Equal(t, DefaultServings, r.Servings)
	assert.Equal(t, NutritionNA, r.Nutrition.Protein)
	assert.Equal(t, NutritionNA, r.Nutrition.Calories)
	assert.NotNil(t, r.Tags)
	assert.NotNil(t, r.Steps)
	assert.NotNil(t, r.Ingredients)
}

func TestNormalizeCostCoercion(t *testing.T) {
	var raw RawRecipe
	payload := `{
		"title": "Test",
		"ingredients": [
			{"name": "A", "cost": 9.5},
			{"name": "B", "cost": "non disponibile"},
			{"name": "C", "cost": null}
		]
	}`
	require.NoError(t, common.ParseJSON(payload, &raw))

	r := Normalize(raw, nil)

	require.Len(t, r.Ingredients, 3)
	assert.Equal(t, 9.5, r.Ingredients[0].Cost)
	assert.Equal(t, 0.0, r.Ingredients[1].Cost)
	assert.Equal(t, 0.0, r.Ingredients[2].Cost)
}

func TestNormalizeStepObjects(t *testing.T) {
	raw := RawRecipe{
		"steps": []interface{}{
			"Taglia le verdure.",
			map[string]interface{}{"instruction": "Cuoci per 10 minuti."},
			map[string]interface{}{"step": "Impiatta."},
			map[string]interface{}{"text": "Servi caldo."},
			map[string]interface{}{"description": "Guarnisci."},
			map[string]interface{}{"unrelated": true},
			42,
		},
	}

	r := Normalize(raw, nil)

	require.Len(t, r.Steps, 7)
	assert.Equal(t, "Taglia le verdure.", r.Steps[0])
	assert.Equal(t, "Cuoci per 10 minuti.", r.Steps[1])
	assert.Equal(t, "Impiatta.", r.Steps[2])
	assert.Equal(t, "Servi caldo.", r.Steps[3])
	assert.Equal(t, "Guarnisci.", r.Steps[4])
	assert.Equal(t, "Segui le istruzioni...", r.Steps[5])
	assert.Equal(t, "Segui le istruzioni...", r.Steps[6])
}

func TestNormalizeWrongTypedFields(t *testing.T) {
	raw := RawRecipe{
		"title":       42,
		"tags":        "non una lista",
		"nutrition":   []interface{}{"sbagliato"},
		"servings":    "quattro",
		"ingredients": map[string]interface{}{"a": 1},
	}

	r := Normalize(raw, nil)

	assert.Equal(t, "Ricetta senza nome", r.Title)
	assert.Empty(t, r.Tags)
	assert.Equal(t, NutritionNA, r.Nutrition.Fiber)
	assert.Equal(t, DefaultServings, r.Servings)
	assert.Empty(t, r.Ingredients)
}

func TestNormalizeIngredientDefaults(t *testing.T) {
	raw := RawRecipe{
		"ingredients": []interface{}{
			map[string]interface{}{"name": "Basilico"},
		},
	}

	r := Normalize(raw, nil)

	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, "Basilico", r.Ingredients[0].Name)
	assert.Equal(t, DefaultQty, r.Ingredients[0].Qty)
	assert.Equal(t, 0.0, r.Ingredients[0].Cost)
}

func TestNormalizeVariantFallback(t *testing.T) {
	base := Recipe{
		ID:       "p1",
		Title:    "Bowl di Salmone",
		Category: "fish",
		Image:    "https://example.test/salmone.jpg",
		Tags:     []string{"Leggero"},
		Steps:    []string{"Cuoci la quinoa.", "Griglia il salmone."},
		Ingredients: []Ingredient{
			{Name: "Salmone Fresco", Qty: "200g", Cost: 6.50},
		},
	}
	raw := RawRecipe{
		"description": "Versione più leggera.",
	}

	r := Normalize(raw, &base)

	assert.Equal(t, "p1", r.ID)
	assert.Equal(t, "Bowl di Salmone", r.Title)
	assert.Equal(t, "fish", r.Category)
	assert.Equal(t, base.Image, r.Image)
	assert.Equal(t, "Versione più leggera.", r.Description)
	assert.Equal(t, base.Tags, r.Tags)
	assert.Equal(t, base.Steps, r.Steps)
	assert.Equal(t, base.Ingredients, r.Ingredients)
}

func TestNormalizeVariantInheritsArraysOnWrongTypes(t *testing.T) {
	base := Recipe{
		ID:    "p1",
		Title: "Bowl di Salmone",
		Steps: []string{"Cuoci la quinoa.", "Griglia il salmone."},
		Ingredients: []Ingredient{
			{Name: "Salmone Fresco", Qty: "200g", Cost: 6.50},
		},
	}
	raw := RawRecipe{
		"steps":       "non una lista",
		"ingredients": 42.0,
	}

	r := Normalize(raw, &base)

	assert.Equal(t, base.Steps, r.Steps)
	assert.Equal(t, base.Ingredients, r.Ingredients)

	// a present-but-empty array stays empty, it is still an array
	r = Normalize(RawRecipe{"steps": []interface{}{}}, &base)
	assert.Empty(t, r.Steps)
	assert.Equal(t, base.Ingredients, r.Ingredients)
}

func TestNormalizeTagsKeepOrderAndDuplicates(t *testing.T) {
	raw := RawRecipe{
		"tags": []interface{}{"Veloce", "Leggero", "Veloce"},
	}

	r := Normalize(raw, nil)

	assert.Equal(t, []string{"Veloce", "Leggero", "Veloce"}, r.Tags)
}
