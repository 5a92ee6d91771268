package recipe

// seedMeals is the built-in daily menu shown before any generation.
var seedMeals = map[string][]Recipe{
	MealPranzo: {
		{
			ID:          "p1",
			Title:       "Bowl di Salmone e Quinoa",
			Subtitle:    "L'Equilibrio Perfetto",
			Description: "Un piatto unico fresco e nutriente. Salmone ricco di Omega-3, quinoa per carboidrati complessi e avocado per grassi sani.",
			Category:    "fish",
			Image:       imageCategories["fish"][0],
			Tags:        []string{"Proteine Alte", "Gluten Free", "Omega-3"},
			Nutrition:   Nutrition{Protein: "35g", Carbs: "45g", Fiber: "8g", Calories: "520 kcal"},
			Time:        "25 min",
			Servings:    2,
			Steps:       []string{"Sciacqua la quinoa e cuocila.", "Marina il salmone con soia.", "Taglia avocado e verdure.", "Componi la bowl.", "Condisci con olio e sesamo."},
			Ingredients: []Ingredient{
				{Name: "Salmone Fresco", Qty: "300g", Cost: 9.50},
				{Name: "Quinoa", Qty: "150g", Cost: 2.20},
				{Name: "Avocado", Qty: "1 intero", Cost: 1.80},
				{Name: "Pomodorini", Qty: "200g", Cost: 1.50},
				{Name: "Salsa Soia", Qty: "q.b.", Cost: 0.50},
			},
		},
		{
			ID:          "p2",
			Title:       "Pollo al Curry con Riso",
			Subtitle:    "Energia Speziata",
			Description: "Petto di pollo tenero cotto in una crema di curry e latte di cocco, servito con riso basmati profumato.",
			Category:    "meat",
			Image:       imageCategories["meat"][0],
			Tags:        []string{"Energizzante", "Speziato", "Comfort Food"},
			Nutrition:   Nutrition{Protein: "40g", Carbs: "60g", Fiber: "4g", Calories: "610 kcal"},
			Time:        "35 min",
			Servings:    2,
			Steps:       []string{"Rosola il pollo.", "Aggiungi curry e spezie.", "Versa latte di cocco.", "Cuoci il riso.", "Servi caldo."},
			Ingredients: []Ingredient{
				{Name: "Petto di Pollo", Qty: "400g", Cost: 5.50},
				{Name: "Latte di Cocco", Qty: "200ml", Cost: 1.90},
				{Name: "Riso Basmati", Qty: "180g", Cost: 1.20},
				{Name: "Curry", Qty: "10g", Cost: 0.80},
			},
		},
		{
			ID:          "p3",
			Title:       "Pasta Integrale Mediterranea",
			Subtitle:    "Tradizione Veggie",
			Description: "Pasta integrale ricca di fibre condita con un sugo fresco di melanzane, pomodoro, olive e feta greca.",
			Category:    "pasta",
			Image:       imageCategories["pasta"][0],
			Tags:        []string{"Vegetariano", "Fibre Alte", "Veloce"},
			Nutrition:   Nutrition{Protein: "18g", Carbs: "70g", Fiber: "12g", Calories: "480 kcal"},
			Time:        "20 min",
			Servings:    2,
			Steps:       []string{"Bollisci l'acqua.", "Salta le melanzane.", "Aggiungi pomodoro e olive.", "Scola la pasta.", "Aggiungi feta."},
			Ingredients: []Ingredient{
				{Name: "Pasta Integrale", Qty: "200g", Cost: 1.10},
				{Name: "Melanzana", Qty: "1 grande", Cost: 1.30},
				{Name: "Pomodori", Qty: "250g", Cost: 1.00},
				{Name: "Feta", Qty: "100g", Cost: 2.50},
			},
		},
	},
	MealCena: {
		{
			ID:          "c1",
			Title:       "Vellutata di Zucca",
			Subtitle:    "Detox & Leggero",
			Description: "Una crema avvolgente e leggera. I ceci arrostiti aggiungono proteine e croccantezza.",
			Category:    "veggie",
			Image:       imageCategories["veggie"][0],
			Tags:        []string{"Vegano", "Low Carb", "Digeribile"},
			Nutrition:   Nutrition{Protein: "15g", Carbs: "30g", Fiber: "14g", Calories: "320 kcal"},
			Time:        "30 min",
			Servings:    2,
			Steps:       []string{"Cuoci la zucca nel brodo.", "Frulla tutto.", "Arrostisci i ceci con paprika.", "Servi caldo."},
			Ingredients: []Ingredient{
				{Name: "Zucca", Qty: "500g", Cost: 1.50},
				{Name: "Ceci in scatola", Qty: "250g", Cost: 0.90},
				{Name: "Brodo Vegetale", Qty: "500ml", Cost: 0.50},
			},
		},
		{
			ID:          "c2",
			Title:       "Filetto di Orata al Cartoccio",
			Subtitle:    "Omega-3 & Salute",
			Description: "Cottura al vapore nel cartoccio per preservare tutti i nutrienti e il gusto delicato.",
			Category:    "fish",
			Image:       imageCategories["fish"][1],
			Tags:        []string{"Pesce", "Senza Grassi", "Elegante"},
			Nutrition:   Nutrition{Protein: "45g", Carbs: "5g", Fiber: "2g", Calories: "380 kcal"},
			Time:        "25 min",
			Servings:    2,
			Steps:       []string{"Pulisci i filetti.", "Metti su carta forno con pomodorini.", "Chiudi il cartoccio.", "Inforna a 180°C.", "Servi chiuso."},
			Ingredients: []Ingredient{
				{Name: "Filetti Orata", Qty: "2 pz", Cost: 8.00},
				{Name: "Pomodorini", Qty: "150g", Cost: 1.20},
				{Name: "Olive", Qty: "30g", Cost: 1.50},
			},
		},
		{
			ID:          "c3",
			Title:       "Burger di Tacchino e Zucchine",
			Subtitle:    "Fit & Proteico",
			Description: "Un secondo piatto gustoso ma magro. L'alternativa perfetta alla carne rossa.",
			Category:    "meat",
			Image:       imageCategories["meat"][1],
			Tags:        []string{"Keto", "Alto Proteico", "Gluten Free"},
			Nutrition:   Nutrition{Protein: "40g", Carbs: "8g", Fiber: "5g", Calories: "410 kcal"},
			Time:        "20 min",
			Servings:    2,
			Steps:       []string{"Grattugia zucchine.", "Mescola con tacchino.", "Forma burger.", "Cuoci su piastra.", "Servi con insalata."},
			Ingredients: []Ingredient{
				{Name: "Macinato Tacchino", Qty: "350g", Cost: 4.50},
				{Name: "Zucchine", Qty: "2 medie", Cost: 0.80},
				{Name: "Insalata", Qty: "1 busta", Cost: 1.50},
			},
		},
	},
}

// SeedMeals returns a fresh copy of the built-in menu. Each session gets
// its own copy since generations overwrite the active slot.
func SeedMeals() map[string][]Recipe {
	out := make(map[string][]Recipe, len(seedMeals))
	for slot, meals := range seedMeals {
		copies := make([]Recipe, len(meals))
		for i, m := range meals {
			copies[i] = m.Clone()
		}
		out[slot] = copies
	}
	return out
}
