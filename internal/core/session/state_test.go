package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chef-finokio/internal/core/recipe"
	"chef-finokio/internal/core/speech"
	"chef-finokio/internal/pkg/common"
)

func sessionAtHome(t *testing.T) *Session {
	t.Helper()
	s := New("test-session")
	require.NoError(t, s.SetMealType(recipe.MealPranzo))

	gen, err := s.BeginAIOperation("genero il menu")
	require.NoError(t, err)
	require.True(t, s.ApplyGeneratedMeals(gen, recipe.MealPranzo, recipe.SeedMeals()[recipe.MealPranzo]))
	s.FinishAIOperation(gen)
	return s
}

func TestNewSessionStartsOnWelcomeWithSeedMenu(t *testing.T) {
	s := New("id")
	snap := s.Snapshot()

	assert.Equal(t, ViewWelcome, snap.View)
	assert.Len(t, snap.DailyMeals[recipe.MealPranzo], 3)
	assert.Len(t, snap.DailyMeals[recipe.MealCena], 3)
	assert.False(t, snap.Loading)
}

func TestSetMealTypeMovesToModeSelection(t *testing.T) {
	s := New("id")

	require.NoError(t, s.SetMealType(recipe.MealCena))
	assert.Equal(t, ViewModeSelection, s.CurrentView())
	assert.Equal(t, recipe.MealCena, s.MealType())

	assert.Error(t, s.SetMealType("merenda"))
}

func TestIllegalNavigation(t *testing.T) {
	s := New("id")

	err := s.Navigate(ViewShopping)
	require.Error(t, err)
	ce, ok := err.(*common.CustomError)
	require.True(t, ok)
	assert.Equal(t, common.ErrCodeInvalidTransition, ce.Code)
	assert.Equal(t, ViewWelcome, s.CurrentView())
}

func TestReturnViewFromHome(t *testing.T) {
	s := sessionAtHome(t)
	meal, ok := s.FindMeal("p1")
	require.True(t, ok)

	require.NoError(t, s.SelectMeal(meal))
	assert.Equal(t, ViewDetail, s.CurrentView())

	require.NoError(t, s.Back())
	assert.Equal(t, ViewHome, s.CurrentView())
}

func TestReturnViewFromFavorites(t *testing.T) {
	s := New("id")
	require.NoError(t, s.Navigate(ViewFavorites))
	require.NoError(t, s.SelectMeal(recipe.Recipe{ID: "p1", Title: "Bowl"}))

	require.NoError(t, s.Back())
	assert.Equal(t, ViewFavorites, s.CurrentView())
}

func TestWizardStepSemantics(t *testing.T) {
	s := New("id")
	require.NoError(t, s.SetMealType(recipe.MealPranzo))
	require.NoError(t, s.Navigate(ViewWizard))

	prefs, trigger, err := s.WizardChoose("base", "Pesce")
	require.NoError(t, err)
	assert.False(t, trigger)
	assert.Equal(t, "Pesce", prefs.Base)
	assert.Equal(t, 1, s.Snapshot().WizardStep)

	// style out of order is rejected at step 0
	_, _, err = s.WizardChoose("base", "Carne")
	assert.Error(t, err)

	prefs, trigger, err = s.WizardChoose("style", "Leggero, sano e ipocalorico")
	require.NoError(t, err)
	assert.True(t, trigger)
	assert.True(t, prefs.Complete())
}

func TestWizardBackFromStepOneReturnsToStepZero(t *testing.T) {
	s := New("id")
	require.NoError(t, s.SetMealType(recipe.MealPranzo))
	require.NoError(t, s.Navigate(ViewWizard))
	_, _, err := s.WizardChoose("base", "Pesce")
	require.NoError(t, err)

	require.NoError(t, s.Back())
	assert.Equal(t, ViewWizard, s.CurrentView())
	assert.Equal(t, 0, s.Snapshot().WizardStep)

	require.NoError(t, s.Back())
	assert.Equal(t, ViewModeSelection, s.CurrentView())
}

func TestBusyGuardRejectsSecondOperation(t *testing.T) {
	s := sessionAtHome(t)

	gen, err := s.BeginAIOperation("prima operazione")
	require.NoError(t, err)

	_, err = s.BeginAIOperation("seconda operazione")
	require.Error(t, err)
	ce, ok := err.(*common.CustomError)
	require.True(t, ok)
	assert.Equal(t, common.ErrCodeSessionBusy, ce.Code)

	s.FinishAIOperation(gen)
	_, err = s.BeginAIOperation("terza operazione")
	assert.NoError(t, err)
}

func TestStaleGenerationDropped(t *testing.T) {
	s := sessionAtHome(t)
	before := s.Snapshot().DailyMeals[recipe.MealPranzo]

	gen, err := s.BeginAIOperation("genero")
	require.NoError(t, err)
	s.FinishAIOperation(gen)

	// Reset supersedes the pending token.
	s.Reset()

	applied := s.ApplyGeneratedMeals(gen, recipe.MealPranzo, []recipe.Recipe{{ID: "nuova"}})
	assert.False(t, applied)

	require.NoError(t, s.SetMealType(recipe.MealPranzo))
	assert.Equal(t, before, s.Snapshot().DailyMeals[recipe.MealPranzo])
}

func TestGatewayFailureLeavesStateUntouched(t *testing.T) {
	s := sessionAtHome(t)
	before := s.Snapshot()

	gen, err := s.BeginAIOperation("genero")
	require.NoError(t, err)
	// Upstream failed: the handler only clears the busy flag.
	s.FinishAIOperation(gen)

	after := s.Snapshot()
	assert.Equal(t, before.View, after.View)
	assert.Equal(t, before.DailyMeals, after.DailyMeals)
	assert.False(t, after.Loading)
}

func TestIngredientToggleScopedToSelection(t *testing.T) {
	s := sessionAtHome(t)
	meal, _ := s.FindMeal("p1")
	require.NoError(t, s.SelectMeal(meal))

	require.NoError(t, s.ToggleIngredient(0))
	require.NoError(t, s.ToggleIngredient(2))
	assert.Error(t, s.ToggleIngredient(99))

	costs := s.Costs()
	assert.InDelta(t, 15.50, costs.Total, 0.001)
	assert.InDelta(t, 4.20, costs.Remaining, 0.001)

	// selecting another meal resets the checkmarks
	require.NoError(t, s.Back())
	other, _ := s.FindMeal("p2")
	require.NoError(t, s.SelectMeal(other))
	assert.Empty(t, s.Snapshot().CheckedIngredients)
}

func TestAudioReleasedOnSelectionChange(t *testing.T) {
	s := sessionAtHome(t)
	meal, _ := s.FindMeal("p1")
	require.NoError(t, s.SelectMeal(meal))

	gen, err := s.BeginAIOperation("narrazione")
	require.NoError(t, err)
	h := speech.NewHandle("p1", speech.WrapPCM(make([]byte, 32)))
	require.True(t, s.ApplyAudio(gen, h))
	s.FinishAIOperation(gen)

	_, ok := s.Audio()
	assert.True(t, ok)

	require.NoError(t, s.Back())
	_, ok = s.Audio()
	assert.False(t, ok)
	assert.Empty(t, h.Data)
}

func TestAudioCopySurvivesConcurrentRelease(t *testing.T) {
	s := sessionAtHome(t)
	meal, _ := s.FindMeal("p1")
	require.NoError(t, s.SelectMeal(meal))

	gen, err := s.BeginAIOperation("narrazione")
	require.NoError(t, err)
	wav := speech.WrapPCM(make([]byte, 32))
	require.True(t, s.ApplyAudio(gen, speech.NewHandle("p1", wav)))
	s.FinishAIOperation(gen)

	handle, ok := s.Audio()
	require.True(t, ok)

	backErr := make(chan error, 1)
	go func() {
		backErr <- s.Back()
	}()
	require.NoError(t, <-backErr)

	// the session released its handle, the served copy stays playable
	assert.Equal(t, wav, handle.Data)
	assert.Equal(t, "audio/wav", handle.MimeType)
	_, ok = s.Audio()
	assert.False(t, ok)
}

func TestAudioForStaleSelectionDropped(t *testing.T) {
	s := sessionAtHome(t)
	meal, _ := s.FindMeal("p1")
	require.NoError(t, s.SelectMeal(meal))

	gen, err := s.BeginAIOperation("narrazione")
	require.NoError(t, err)

	h := speech.NewHandle("p9", speech.WrapPCM(make([]byte, 32)))
	assert.False(t, s.ApplyAudio(gen, h))
	assert.Empty(t, h.Data)
}

func TestApplySelectedRecipeOpensDetail(t *testing.T) {
	s := sessionAtHome(t)
	meal, _ := s.FindMeal("p1")
	require.NoError(t, s.SelectMeal(meal))

	gen, err := s.BeginAIOperation("variante")
	require.NoError(t, err)
	variant := meal.Clone()
	variant.ID = "p1_var"
	variant.Title = "Variante: Bowl di Salmone e Quinoa"
	require.True(t, s.ApplySelectedRecipe(gen, variant))
	s.FinishAIOperation(gen)

	got, ok := s.SelectedMeal()
	require.True(t, ok)
	assert.Equal(t, "p1_var", got.ID)
	assert.Equal(t, ViewDetail, s.CurrentView())

	// back still returns to home
	require.NoError(t, s.Back())
	assert.Equal(t, ViewHome, s.CurrentView())
}

func TestHoldIngredientOnlyInRemixSlot(t *testing.T) {
	s := sessionAtHome(t)
	meal, _ := s.FindMeal("p1")
	require.NoError(t, s.SelectMeal(meal))

	assert.Error(t, s.HoldIngredient(0))

	require.NoError(t, s.Navigate(ViewRemixSlot))
	require.NoError(t, s.HoldIngredient(0))
	require.NoError(t, s.HoldIngredient(1))

	assert.Equal(t, []string{"Salmone Fresco", "Quinoa"}, s.HeldIngredientNames())

	// leaving the slot clears the locks
	require.NoError(t, s.Back())
	assert.Empty(t, s.HeldIngredientNames())
}

func TestShareLinkListsUncheckedIngredients(t *testing.T) {
	s := sessionAtHome(t)
	meal, _ := s.FindMeal("p3")
	require.NoError(t, s.SelectMeal(meal))
	require.NoError(t, s.ToggleIngredient(0))

	link, err := s.ShareLink()
	require.NoError(t, err)
	assert.Contains(t, link, "https://wa.me/?text=")
	assert.Contains(t, link, "Pasta+Integrale+Mediterranea")
	assert.NotContains(t, link, "Pasta+Integrale+%28")
	assert.Contains(t, link, "Melanzana")
}

func TestResetKeepsDailyMeals(t *testing.T) {
	s := sessionAtHome(t)
	meal, _ := s.FindMeal("p1")
	require.NoError(t, s.SelectMeal(meal))

	s.Reset()

	snap := s.Snapshot()
	assert.Equal(t, ViewWelcome, snap.View)
	assert.Empty(t, snap.MealType)
	assert.Nil(t, snap.SelectedMeal)
	assert.Len(t, snap.DailyMeals[recipe.MealPranzo], 3)
}
