package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRecipe() *Recipe {
	return &Recipe{
		ID:    "p1",
		Title: "Bowl di Salmone e Quinoa",
		Ingredients: []Ingredient{
			{Name: "Salmone Fresco", Qty: "300g", Cost: 9.50},
			{Name: "Quinoa", Qty: "150g", Cost: 2.20},
			{Name: "Avocado", Qty: "1 intero", Cost: 1.80},
		},
	}
}

func TestCostsNothingChecked(t *testing.T) {
	c := Costs(testRecipe(), map[int]bool{})

	assert.InDelta(t, 13.50, c.Total, 0.001)
	assert.InDelta(t, 13.50, c.Remaining, 0.001)
	assert.Equal(t, "EUR", c.Currency)
}

func TestCostsCheckedExcludedFromRemaining(t *testing.T) {
	c := Costs(testRecipe(), map[int]bool{0: true, 2: true})

	assert.InDelta(t, 13.50, c.Total, 0.001)
	assert.InDelta(t, 2.20, c.Remaining, 0.001)
}

func TestCostsNilRecipe(t *testing.T) {
	c := Costs(nil, nil)

	assert.Zero(t, c.Total)
	assert.Zero(t, c.Remaining)
}

func TestSeedMealsIsolatedCopies(t *testing.T) {
	a := SeedMeals()
	b := SeedMeals()

	a[MealPranzo][0].Ingredients[0].Cost = 99

	assert.InDelta(t, 9.50, b[MealPranzo][0].Ingredients[0].Cost, 0.001)
	assert.Len(t, a[MealPranzo], 3)
	assert.Len(t, a[MealCena], 3)
}

func TestRandomImageUnknownCategoryFallsBack(t *testing.T) {
	img := RandomImage("astronave")
	assert.Contains(t, imageCategories["veggie"], img)
}
