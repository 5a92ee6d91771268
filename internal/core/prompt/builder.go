// Package prompt builds the natural-language instructions sent to the
// generative model. Builders are pure functions; every recipe prompt
// demands a JSON reply matching the canonical Recipe shape.
package prompt

import (
	"fmt"
	"strings"

	"chef-finokio/internal/core/recipe"
	"chef-finokio/internal/pkg/common"
)

// recipeShape is the JSON structure every recipe prompt asks for.
const recipeShape = `[{id, title, subtitle, description, category, tags[], nutrition{protein, carbs, fiber, calories}, time, servings, steps[], ingredients[{name, qty, cost}]}]`

// WizardPreferences are the two guided-mode answers. Both must be set
// before a prompt can be built.
type WizardPreferences struct {
	Base  string `json:"base"`
	Style string `json:"style"`
}

// Complete reports whether both wizard answers have been collected.
func (p WizardPreferences) Complete() bool {
	return p.Base != "" && p.Style != ""
}

// Wizard base-ingredient options (step 0).
var BaseOptions = []string{
	"Pesce",
	"Carne",
	"Pollo",
	"Pasta o Riso",
	"Verdure e Legumi",
	"Uova o Formaggi",
}

// Wizard style options (step 1).
var StyleOptions = []string{
	"Leggero, sano e ipocalorico",
	"Saporito, ricco e gustoso",
	"Molto veloce e semplice da preparare",
	"Raffinato, stile ristorante",
}

// Auto asks for three recipes for the slot, leaving ingredient choice
// to the model.
func Auto(slot string) string {
	return fmt.Sprintf("Genera 3 ricette per %s. Scegli tu gli ingredienti in base alla creatività e stagionalità. JSON array output con struttura: %s", slot, recipeShape)
}

// Wizard asks for three recipes driven by the guided-mode answers.
// Both base and style are required.
func Wizard(slot string, prefs WizardPreferences) (string, error) {
	if !prefs.Complete() {
		return "", common.NewValidationError("wizard preferences incomplete: base and style are both required")
	}
	return fmt.Sprintf("Genera 3 ricette per %s. L'utente vuole cucinare qualcosa a base di %s con uno stile %s. JSON array output con struttura: %s", slot, prefs.Base, prefs.Style, recipeShape), nil
}

// Fridge asks for three recipes built around the ingredients the user
// has at hand, allowing pantry staples as additions.
func Fridge(slot, ingredients string) (string, error) {
	if strings.TrimSpace(ingredients) == "" {
		return "", common.NewValidationError("fridge ingredients text is required")
	}
	return fmt.Sprintf("Genera 3 ricette per %s usando prioritariamente questi ingredienti che l'utente ha in frigo: %s. Puoi aggiungere ingredienti base da dispensa (olio, sale, pasta, riso, spezie). JSON array output con struttura: %s", slot, strings.TrimSpace(ingredients), recipeShape), nil
}

// Variant asks for a reworked version of an existing recipe.
func Variant(r recipe.Recipe) string {
	encoded, err := common.ToJSON(r)
	if err != nil {
		encoded = r.Title
	}
	return fmt.Sprintf("Crea una variante della ricetta: %s. Restituisci JSON con stessa struttura: %s", encoded, recipeShape)
}

// Remix asks for a brand new dish built from the recipe's top three
// ingredients.
func Remix(r recipe.Recipe) string {
	names := make([]string, 0, 3)
	for i, ing := range r.Ingredients {
		if i == 3 {
			break
		}
		names = append(names, ing.Name)
	}
	return fmt.Sprintf("Crea una nuova ricetta usando questi ingredienti: %s. Restituisci JSON con struttura completa: %s", strings.Join(names, ", "), recipeShape)
}

// Jackpot asks for a new dish that must keep the locked ingredients
// unchanged while reinventing the rest.
func Jackpot(r recipe.Recipe, locked []string) string {
	lockedPart := "nessuno"
	if len(locked) > 0 {
		lockedPart = strings.Join(locked, ", ")
	}
	return fmt.Sprintf("Partendo dalla ricetta %q, crea un piatto completamente nuovo. Ingredienti bloccati che DEVONO restare invariati: %s. Reinventa tutti gli altri ingredienti. Restituisci JSON con struttura: %s", r.Title, lockedPart, recipeShape)
}

// Sommelier asks for a wine pairing for the dish.
func Sommelier(r recipe.Recipe) string {
	return fmt.Sprintf("Sei un sommelier esperto. Suggerisci il vino perfetto da abbinare a %q (%s). Restituisci JSON con struttura: {wine, type, motivation}. Motivazione breve, massimo 2 frasi.", r.Title, r.Description)
}

// Narration builds the persona-styled script read aloud on the detail
// screen: title first, then the numbered steps.
func Narration(r recipe.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ciao! Sono Chef Finokio e oggi prepariamo: %s. ", r.Title)
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "Passo %d: %s ", i+1, step)
	}
	b.WriteString("Buon appetito!")
	return b.String()
}
