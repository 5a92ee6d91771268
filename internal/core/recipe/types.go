package recipe

// Meal slots.
const (
	MealPranzo = "pranzo"
	MealCena   = "cena"
)

// Nutrition values are kept as display strings ("35g", "520 kcal");
// "n/d" marks a value the model did not provide.
type Nutrition struct {
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fiber    string `json:"fiber"`
	Calories string `json:"calories"`
}

// Ingredient is one shopping-list entry of a recipe.
type Ingredient struct {
	Name string  `json:"name"`
	Qty  string  `json:"qty"`
	Cost float64 `json:"cost"`
}

// Recipe is the canonical dish model served to the client. Every field
// is defaulted after normalization, slices are never nil.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Image       string       `json:"image"`
	Tags        []string     `json:"tags"`
	Nutrition   Nutrition    `json:"nutrition"`
	Time        string       `json:"time"`
	Servings    int          `json:"servings"`
	Steps       []string     `json:"steps"`
	Ingredients []Ingredient `json:"ingredients"`
}

// RawRecipe is the untyped shape a model response decodes into before
// normalization. Any field may be missing or of the wrong type.
type RawRecipe map[string]interface{}

// WinePairing is the sommelier advice for a dish.
type WinePairing struct {
	Wine       string `json:"wine"`
	Type       string `json:"type"`
	Motivation string `json:"motivation"`
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	out := r
	out.Tags = append([]string(nil), r.Tags...)
	out.Steps = append([]string(nil), r.Steps...)
	out.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	return out
}
