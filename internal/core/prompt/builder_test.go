package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chef-finokio/internal/core/recipe"
)

func TestAutoPromptMentionsSlotAndShape(t *testing.T) {
	p := Auto(recipe.MealPranzo)

	assert.Contains(t, p, "3 ricette per pranzo")
	assert.Contains(t, p, "JSON array")
	assert.Contains(t, p, "ingredients[{name, qty, cost}]")
}

func TestWizardPromptRequiresBothPreferences(t *testing.T) {
	_, err := Wizard(recipe.MealCena, WizardPreferences{Base: "Pesce"})
	assert.Error(t, err)

	_, err = Wizard(recipe.MealCena, WizardPreferences{Style: "Leggero, sano e ipocalorico"})
	assert.Error(t, err)

	p, err := Wizard(recipe.MealCena, WizardPreferences{Base: "Pesce", Style: "Leggero, sano e ipocalorico"})
	require.NoError(t, err)
	assert.Contains(t, p, "a base di Pesce")
	assert.Contains(t, p, "stile Leggero, sano e ipocalorico")
}

func TestFridgePromptRequiresText(t *testing.T) {
	_, err := Fridge(recipe.MealPranzo, "   ")
	assert.Error(t, err)

	p, err := Fridge(recipe.MealPranzo, "zucchine, uova, parmigiano")
	require.NoError(t, err)
	assert.Contains(t, p, "zucchine, uova, parmigiano")
	assert.Contains(t, p, "dispensa")
}

func TestRemixPromptUsesTopThreeIngredients(t *testing.T) {
	r := recipe.Recipe{
		Title: "Bowl di Salmone",
		Ingredients: []recipe.Ingredient{
			{Name: "Salmone"},
			{Name: "Quinoa"},
			{Name: "Avocado"},
			{Name: "Pomodorini"},
		},
	}

	p := Remix(r)

	assert.Contains(t, p, "Salmone, Quinoa, Avocado")
	assert.NotContains(t, p, "Pomodorini")
}

func TestJackpotPromptListsLockedIngredients(t *testing.T) {
	r := recipe.Recipe{Title: "Pollo al Curry"}

	p := Jackpot(r, []string{"Petto di Pollo", "Curry"})
	assert.Contains(t, p, "Petto di Pollo, Curry")
	assert.Contains(t, p, "DEVONO restare invariati")

	p = Jackpot(r, nil)
	assert.Contains(t, p, "nessuno")
}

func TestNarrationScriptOrder(t *testing.T) {
	r := recipe.Recipe{
		Title: "Vellutata di Zucca",
		Steps: []string{"Cuoci la zucca.", "Frulla tutto."},
	}

	s := Narration(r)

	assert.Contains(t, s, "Vellutata di Zucca")
	assert.Contains(t, s, "Passo 1: Cuoci la zucca.")
	assert.Contains(t, s, "Passo 2: Frulla tutto.")
	assert.Less(t, len("Ciao"), len(s))
}
