// Package session holds the per-client application state: the current
// view, the active meal slot, daily menus, the selected recipe with its
// transient detail state, and the busy/generation bookkeeping that
// serializes AI-driven actions.
package session

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"chef-finokio/internal/core/prompt"
	"chef-finokio/internal/core/recipe"
	"chef-finokio/internal/core/speech"
	"chef-finokio/internal/pkg/common"
)

// View is a screen tag.
type View string

const (
	ViewWelcome       View = "welcome"
	ViewModeSelection View = "mode_selection"
	ViewWizard        View = "wizard"
	ViewFridgeInput   View = "fridge_input"
	ViewHome          View = "home"
	ViewFavorites     View = "favorites"
	ViewDetail        View = "detail"
	ViewShopping      View = "shopping"
	ViewRemixSlot     View = "remix_slot"
)

// transitions lists the directly navigable view changes. Entering
// detail goes through SelectMeal, leaving it through Back, and
// AI completions land through the Apply methods.
var transitions = map[View][]View{
	ViewWelcome:       {ViewModeSelection, ViewFavorites},
	ViewModeSelection: {ViewWelcome, ViewWizard, ViewFridgeInput},
	ViewWizard:        {ViewModeSelection},
	ViewFridgeInput:   {ViewModeSelection},
	ViewHome:          {ViewModeSelection},
	ViewFavorites:     {ViewWelcome},
	ViewDetail:        {ViewShopping, ViewRemixSlot},
	ViewShopping:      {ViewDetail},
	ViewRemixSlot:     {ViewDetail},
}

// Session is one client's application state. All methods are safe for
// concurrent use.
type Session struct {
	mu sync.Mutex

	id         string
	view       View
	returnView View
	mealType   string
	dailyMeals map[string][]recipe.Recipe

	selectedMeal *recipe.Recipe
	checked      map[int]bool
	held         map[int]bool
	audio        *speech.Handle
	sommelier    *recipe.WinePairing

	wizardStep  int
	wizardPrefs prompt.WizardPreferences
	fridgeText  string

	loading        bool
	loadingMessage string

	// busy serializes AI-driven actions; generation invalidates stale
	// completions after navigation or reset.
	busy       bool
	busyGen    uint64
	generation uint64

	lastActive time.Time
}

// Snapshot is the JSON projection of a session served to the client.
type Snapshot struct {
	ID                 string                     `json:"id"`
	View               View                       `json:"view"`
	ReturnView         View                       `json:"return_view,omitempty"`
	MealType           string                     `json:"meal_type,omitempty"`
	DailyMeals         map[string][]recipe.Recipe `json:"daily_meals"`
	SelectedMeal       *recipe.Recipe             `json:"selected_meal,omitempty"`
	CheckedIngredients map[int]bool               `json:"checked_ingredients"`
	HeldIngredients    map[int]bool               `json:"held_ingredients"`
	WizardStep         int                        `json:"wizard_step"`
	WizardPreferences  prompt.WizardPreferences   `json:"wizard_preferences"`
	FridgeText         string                     `json:"fridge_text,omitempty"`
	Loading            bool                       `json:"loading"`
	LoadingMessage     string                     `json:"loading_message,omitempty"`
	HasAudio           bool                       `json:"has_audio"`
	Sommelier          *recipe.WinePairing        `json:"sommelier,omitempty"`
	Costs              *recipe.CostSummary        `json:"costs,omitempty"`
}

// New creates a session on the welcome view with the seed menu.
func New(id string) *Session {
	return &Session{
		id:         id,
		view:       ViewWelcome,
		dailyMeals: recipe.SeedMeals(),
		checked:    map[int]bool{},
		held:       map[int]bool{},
		lastActive: time.Now(),
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// LastActive returns the time of the last interaction.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot renders the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:                 s.id,
		View:               s.view,
		ReturnView:         s.returnView,
		MealType:           s.mealType,
		DailyMeals:         copyMeals(s.dailyMeals),
		CheckedIngredients: copyBoolMap(s.checked),
		HeldIngredients:    copyBoolMap(s.held),
		WizardStep:         s.wizardStep,
		WizardPreferences:  s.wizardPrefs,
		FridgeText:         s.fridgeText,
		Loading:            s.loading,
		LoadingMessage:     s.loadingMessage,
		HasAudio:           s.audio != nil && len(s.audio.Data) > 0,
		Sommelier:          s.sommelier,
	}
	if s.selectedMeal != nil {
		meal := s.selectedMeal.Clone()
		snap.SelectedMeal = &meal
		costs := recipe.Costs(s.selectedMeal, s.checked)
		snap.Costs = &costs
	}
	return snap
}

// SetMealType picks the lunch/dinner slot and moves to mode selection.
func (s *Session) SetMealType(mealType string) error {
	if mealType != recipe.MealPranzo && mealType != recipe.MealCena {
		return common.NewValidationError(fmt.Sprintf("unknown meal type %q", mealType))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.view != ViewWelcome && s.view != ViewModeSelection {
		return common.ErrInvalidTransition
	}
	s.mealType = mealType
	s.view = ViewModeSelection
	return nil
}

// Navigate performs a direct view change per the transition table.
func (s *Session) Navigate(target View) error {
	if _, ok := transitions[target]; !ok {
		return common.NewValidationError(fmt.Sprintf("unknown view %q", target))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !legalTransition(s.view, target) {
		return common.ErrInvalidTransition
	}

	switch target {
	case ViewWizard:
		s.wizardStep = 0
		s.wizardPrefs = prompt.WizardPreferences{}
	case ViewRemixSlot:
		s.held = map[int]bool{}
	}

	s.view = target
	return nil
}

// SelectMeal opens a recipe in the detail view, recording the current
// view as the back target. Legal from home and favorites.
func (s *Session) SelectMeal(r recipe.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.view != ViewHome && s.view != ViewFavorites {
		return common.ErrInvalidTransition
	}

	s.returnView = s.view
	s.setSelectedLocked(r)
	s.view = ViewDetail
	return nil
}

// Back performs the context-correct backwards step for the current
// view.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	switch s.view {
	case ViewDetail:
		target := s.returnView
		if target == "" {
			target = ViewHome
		}
		s.clearSelectedLocked()
		s.view = target
	case ViewShopping, ViewRemixSlot:
		s.held = map[int]bool{}
		s.view = ViewDetail
	case ViewWizard:
		if s.wizardStep > 0 {
			s.wizardStep = 0
			s.wizardPrefs.Style = ""
		} else {
			s.view = ViewModeSelection
		}
	case ViewFridgeInput, ViewHome:
		s.view = ViewModeSelection
	case ViewModeSelection, ViewFavorites:
		s.view = ViewWelcome
	default:
		return common.ErrInvalidTransition
	}
	return nil
}

// Reset returns to the welcome view, dropping everything except the
// daily menus.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.clearSelectedLocked()
	s.view = ViewWelcome
	s.returnView = ""
	s.mealType = ""
	s.wizardStep = 0
	s.wizardPrefs = prompt.WizardPreferences{}
	s.fridgeText = ""
	s.generation++
}

// WizardChoose records a wizard answer. Choosing the base advances to
// the style step; choosing the style completes the wizard and the
// returned preferences trigger exactly one generation.
func (s *Session) WizardChoose(key, value string) (prompt.WizardPreferences, bool, error) {
	if strings.TrimSpace(value) == "" {
		return prompt.WizardPreferences{}, false, common.NewValidationError("wizard option value is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.view != ViewWizard {
		return prompt.WizardPreferences{}, false, common.ErrInvalidTransition
	}

	switch key {
	case "base":
		if s.wizardStep != 0 {
			return prompt.WizardPreferences{}, false, common.ErrInvalidTransition
		}
		s.wizardPrefs.Base = value
		s.wizardStep = 1
		return s.wizardPrefs, false, nil
	case "style":
		if s.wizardStep != 1 {
			return prompt.WizardPreferences{}, false, common.ErrInvalidTransition
		}
		s.wizardPrefs.Style = value
		return s.wizardPrefs, true, nil
	default:
		return prompt.WizardPreferences{}, false, common.NewValidationError(fmt.Sprintf("unknown wizard option %q", key))
	}
}

// SetFridgeText stores the free-text fridge contents.
func (s *Session) SetFridgeText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.view != ViewFridgeInput {
		return common.ErrInvalidTransition
	}
	s.fridgeText = text
	return nil
}

// MealType returns the active slot.
func (s *Session) MealType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mealType
}

// CurrentView returns the active view.
func (s *Session) CurrentView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SelectedMeal returns a copy of the open recipe.
func (s *Session) SelectedMeal() (recipe.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedMeal == nil {
		return recipe.Recipe{}, false
	}
	return s.selectedMeal.Clone(), true
}

// FindMeal looks a recipe up by id in the daily menus, active slot
// first.
func (s *Session) FindMeal(id string) (recipe.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := []string{recipe.MealPranzo, recipe.MealCena}
	if s.mealType == recipe.MealCena {
		slots = []string{recipe.MealCena, recipe.MealPranzo}
	}
	for _, slot := range slots {
		for _, m := range s.dailyMeals[slot] {
			if m.ID == id {
				return m.Clone(), true
			}
		}
	}
	return recipe.Recipe{}, false
}

// ToggleIngredient flips the "already at home" mark of one ingredient
// of the selected recipe.
func (s *Session) ToggleIngredient(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.selectedMeal == nil || (s.view != ViewDetail && s.view != ViewShopping) {
		return common.ErrInvalidTransition
	}
	if index < 0 || index >= len(s.selectedMeal.Ingredients) {
		return common.NewValidationError(fmt.Sprintf("ingredient index %d out of range", index))
	}
	s.checked[index] = !s.checked[index]
	if !s.checked[index] {
		delete(s.checked, index)
	}
	return nil
}

// HoldIngredient flips the slot-machine lock of one ingredient.
func (s *Session) HoldIngredient(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.selectedMeal == nil || s.view != ViewRemixSlot {
		return common.ErrInvalidTransition
	}
	if index < 0 || index >= len(s.selectedMeal.Ingredients) {
		return common.NewValidationError(fmt.Sprintf("ingredient index %d out of range", index))
	}
	s.held[index] = !s.held[index]
	if !s.held[index] {
		delete(s.held, index)
	}
	return nil
}

// HeldIngredientNames returns the names locked for the slot-machine
// spin, in ingredient order.
func (s *Session) HeldIngredientNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := []string{}
	if s.selectedMeal == nil {
		return names
	}
	for i, ing := range s.selectedMeal.Ingredients {
		if s.held[i] {
			names = append(names, ing.Name)
		}
	}
	return names
}

// Costs returns the shopping totals for the selected recipe.
func (s *Session) Costs() recipe.CostSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recipe.Costs(s.selectedMeal, s.checked)
}

// Audio returns a detached copy of the narration handle, if any. The
// session-held handle can be released concurrently by a selection
// change, so callers never see the live buffer.
func (s *Session) Audio() (*speech.Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.audio == nil || len(s.audio.Data) == 0 {
		return nil, false
	}

	data := make([]byte, len(s.audio.Data))
	copy(data, s.audio.Data)
	return &speech.Handle{
		RecipeID: s.audio.RecipeID,
		MimeType: s.audio.MimeType,
		Data:     data,
	}, true
}

// ShareLink builds a WhatsApp deep link with the recipe name and the
// still-to-buy ingredients.
func (s *Session) ShareLink() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedMeal == nil {
		return "", common.ErrRecipeNotFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Lista spesa per %s:\n", s.selectedMeal.Title)
	for i, ing := range s.selectedMeal.Ingredients {
		if s.checked[i] {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s)\n", ing.Name, ing.Qty)
	}
	return "https://wa.me/?text=" + url.QueryEscape(b.String()), nil
}

// BeginAIOperation marks the session busy and returns the generation
// token the completion must present. A second AI action while one is
// in flight is rejected.
func (s *Session) BeginAIOperation(message string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.busy {
		return 0, common.ErrSessionBusy
	}
	s.busy = true
	s.loading = true
	s.loadingMessage = message
	s.generation++
	s.busyGen = s.generation
	return s.generation, nil
}

// FinishAIOperation clears the busy flag for the operation that set it.
func (s *Session) FinishAIOperation(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen == s.busyGen {
		s.busy = false
		s.loading = false
		s.loadingMessage = ""
	}
}

// ApplyGeneratedMeals installs a generation result for a slot and moves
// to home. Stale results (superseded generation token) are dropped.
func (s *Session) ApplyGeneratedMeals(gen uint64, slot string, meals []recipe.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}
	s.dailyMeals[slot] = meals
	s.wizardStep = 0
	s.wizardPrefs = prompt.WizardPreferences{}
	s.view = ViewHome
	return true
}

// ApplySelectedRecipe installs a variant/remix/jackpot result as the
// open recipe. Stale results are dropped.
func (s *Session) ApplySelectedRecipe(gen uint64, r recipe.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}
	if s.returnView == "" {
		s.returnView = ViewHome
	}
	s.setSelectedLocked(r)
	s.view = ViewDetail
	return true
}

// ApplyAudio attaches a narration handle; dropped when stale or when
// the selection changed while synthesizing.
func (s *Session) ApplyAudio(gen uint64, h *speech.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.selectedMeal == nil || s.selectedMeal.ID != h.RecipeID {
		h.Release()
		return false
	}
	if s.audio != nil {
		s.audio.Release()
	}
	s.audio = h
	return true
}

// ApplySommelier attaches the wine pairing advice.
func (s *Session) ApplySommelier(gen uint64, p *recipe.WinePairing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.selectedMeal == nil {
		return false
	}
	s.sommelier = p
	return true
}

// setSelectedLocked swaps the open recipe, releasing every resource
// scoped to the previous selection. Caller must hold the lock.
func (s *Session) setSelectedLocked(r recipe.Recipe) {
	if s.audio != nil {
		s.audio.Release()
		s.audio = nil
	}
	s.sommelier = nil
	s.checked = map[int]bool{}
	s.held = map[int]bool{}
	meal := r.Clone()
	s.selectedMeal = &meal
}

// clearSelectedLocked drops the open recipe and its scoped resources.
// Caller must hold the lock.
func (s *Session) clearSelectedLocked() {
	if s.audio != nil {
		s.audio.Release()
		s.audio = nil
	}
	s.sommelier = nil
	s.checked = map[int]bool{}
	s.held = map[int]bool{}
	s.selectedMeal = nil
	s.returnView = ""
	s.generation++
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

func legalTransition(from, to View) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func copyMeals(in map[string][]recipe.Recipe) map[string][]recipe.Recipe {
	out := make(map[string][]recipe.Recipe, len(in))
	for slot, meals := range in {
		copies := make([]recipe.Recipe, len(meals))
		for i, m := range meals {
			copies[i] = m.Clone()
		}
		out[slot] = copies
	}
	return out
}

func copyBoolMap(in map[int]bool) map[int]bool {
	out := make(map[int]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
