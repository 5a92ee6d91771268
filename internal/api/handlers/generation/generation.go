// Package generation exposes the AI-driven endpoints: menu generation
// in its three modes, the recipe transformations, narration and the
// sommelier. Every handler follows the same shape: mark the session
// busy, call the gateway, clear the busy flag, then apply the result
// through the session's generation-checked methods. An upstream
// failure maps to a fixed 502 notice and leaves the session untouched.
package generation

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chef-finokio/internal/api/handlers"
	"chef-finokio/internal/core/ai"
	"chef-finokio/internal/core/prompt"
	"chef-finokio/internal/core/recipe"
	coresession "chef-finokio/internal/core/session"
	"chef-finokio/internal/core/speech"
	"chef-finokio/internal/infrastructure/config"
	"chef-finokio/internal/pkg/common"
)

// menuSize is how many recipes a daily menu holds.
const menuSize = 3

// Loading notices shown while Finokio works.
const (
	msgAuto      = "Chef Finokio sta scegliendo le ricette..."
	msgWizard    = "Chef Finokio sta creando il menu su misura..."
	msgFridge    = "Chef Finokio sta svuotando il frigo..."
	msgVariant   = "Chef Finokio sta preparando una variante..."
	msgRemix     = "Chef Finokio sta remixando gli ingredienti..."
	msgJackpot   = "La slot degli ingredienti sta girando..."
	msgNarration = "Chef Finokio si schiarisce la voce..."
	msgSommelier = "Il sommelier sta scegliendo il vino..."
)

// Handler serves the generation endpoints.
type Handler struct {
	config  *config.Config
	manager *coresession.Manager
	gateway *ai.Gateway
}

// NewHandler creates the generation handler.
func NewHandler(cfg *config.Config, manager *coresession.Manager, gateway *ai.Gateway) *Handler {
	return &Handler{
		config:  cfg,
		manager: manager,
		gateway: gateway,
	}
}

type generateRequest struct {
	Mode        string `json:"mode" binding:"required,oneof=auto fridge"`
	Ingredients string `json:"ingredients"`
}

type wizardOptionRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// Options returns the guided-mode choices for both wizard steps.
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"base":  prompt.BaseOptions,
		"style": prompt.StyleOptions,
	})
}

// Generate produces a fresh daily menu, either fully automatic or from
// the fridge contents.
func (h *Handler) Generate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req generateRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	slot := s.MealType()
	if slot == "" {
		handlers.RespondError(c, common.NewValidationError("meal type not selected"))
		return
	}

	var p, msg string
	switch req.Mode {
	case "auto":
		if view := s.CurrentView(); view != coresession.ViewModeSelection && view != coresession.ViewHome {
			handlers.RespondError(c, common.ErrInvalidTransition)
			return
		}
		p = prompt.Auto(slot)
		msg = msgAuto
	case "fridge":
		if err := s.SetFridgeText(req.Ingredients); err != nil {
			handlers.RespondError(c, err)
			return
		}
		var err error
		p, err = prompt.Fridge(slot, req.Ingredients)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		msg = msgFridge
	}

	h.runMenuGeneration(c, s, slot, p, msg)
}

// WizardOption records one guided-mode answer. Completing the style
// step triggers exactly one generation.
func (h *Handler) WizardOption(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req wizardOptionRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	prefs, done, err := s.WizardChoose(req.Key, req.Value)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if !done {
		respondSnapshot(c, s)
		return
	}

	slot := s.MealType()
	p, err := prompt.Wizard(slot, prefs)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	h.runMenuGeneration(c, s, slot, p, msgWizard)
}

// Variant generates a reworked version of the open recipe, keeping its
// picture and marking the title.
func (h *Handler) Variant(c *gin.Context) {
	s, selected, ok := h.selectedRecipe(c)
	if !ok {
		return
	}

	gen, err := s.BeginAIOperation(msgVariant)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	raws, err := h.gateway.GenerateRecipes(c.Request.Context(), prompt.Variant(selected))
	s.FinishAIOperation(gen)
	if err != nil || len(raws) == 0 {
		respondAIFailure(c, "variant", err)
		return
	}

	v := recipe.Normalize(raws[0], &selected)
	v.ID = selected.ID + "_var"
	v.Title = "Variante: " + v.Title
	v.Image = selected.Image

	s.ApplySelectedRecipe(gen, v)
	respondSnapshot(c, s)
}

// Remix generates a brand new dish from the open recipe's top three
// ingredients.
func (h *Handler) Remix(c *gin.Context) {
	s, selected, ok := h.selectedRecipe(c)
	if !ok {
		return
	}

	gen, err := s.BeginAIOperation(msgRemix)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	raws, err := h.gateway.GenerateRecipes(c.Request.Context(), prompt.Remix(selected))
	s.FinishAIOperation(gen)
	if err != nil || len(raws) == 0 {
		respondAIFailure(c, "remix", err)
		return
	}

	r := recipe.Normalize(raws[0], nil)
	r.ID = fmt.Sprintf("remix_%d", time.Now().UnixMilli())
	r.Title = "Remix: " + r.Title
	r.Image = h.recipeImage(c, r)

	s.ApplySelectedRecipe(gen, r)
	respondSnapshot(c, s)
}

// SlotSpin runs the ingredient slot machine: the held ingredients must
// survive, everything else is reinvented.
func (h *Handler) SlotSpin(c *gin.Context) {
	s, selected, ok := h.selectedRecipe(c)
	if !ok {
		return
	}
	if s.CurrentView() != coresession.ViewRemixSlot {
		handlers.RespondError(c, common.ErrInvalidTransition)
		return
	}

	locked := s.HeldIngredientNames()

	gen, err := s.BeginAIOperation(msgJackpot)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	raws, err := h.gateway.GenerateRecipes(c.Request.Context(), prompt.Jackpot(selected, locked))
	s.FinishAIOperation(gen)
	if err != nil || len(raws) == 0 {
		respondAIFailure(c, "slot_spin", err)
		return
	}

	r := recipe.Normalize(raws[0], nil)
	r.ID = fmt.Sprintf("slot_%d", time.Now().UnixMilli())
	r.Image = h.recipeImage(c, r)

	s.ApplySelectedRecipe(gen, r)
	respondSnapshot(c, s)
}

// Narrate synthesizes the spoken walkthrough of the open recipe. A
// narration already attached to the selection is reused.
func (h *Handler) Narrate(c *gin.Context) {
	s, selected, ok := h.selectedRecipe(c)
	if !ok {
		return
	}

	if _, exists := s.Audio(); exists {
		respondSnapshot(c, s)
		return
	}

	gen, err := s.BeginAIOperation(msgNarration)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	wav, err := h.gateway.GenerateSpeech(c.Request.Context(), prompt.Narration(selected))
	s.FinishAIOperation(gen)
	if err != nil {
		respondAIFailure(c, "narrate", err)
		return
	}

	s.ApplyAudio(gen, speech.NewHandle(selected.ID, wav))
	respondSnapshot(c, s)
}

// Audio serves the synthesized narration as playable WAV bytes.
func (h *Handler) Audio(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	handle, exists := s.Audio()
	if !exists {
		handlers.RespondError(c, common.ErrNotFound)
		return
	}
	c.Data(http.StatusOK, handle.MimeType, handle.Data)
}

// Sommelier fetches a wine pairing for the open recipe.
func (h *Handler) Sommelier(c *gin.Context) {
	s, selected, ok := h.selectedRecipe(c)
	if !ok {
		return
	}

	gen, err := s.BeginAIOperation(msgSommelier)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	advice, err := h.gateway.GenerateAdvice(c.Request.Context(), prompt.Sommelier(selected))
	s.FinishAIOperation(gen)
	if err != nil {
		respondAIFailure(c, "sommelier", err)
		return
	}

	s.ApplySommelier(gen, recipe.NormalizePairing(advice))
	respondSnapshot(c, s)
}

// runMenuGeneration drives a full menu generation and installs the
// result for the slot.
func (h *Handler) runMenuGeneration(c *gin.Context, s *coresession.Session, slot, p, msg string) {
	gen, err := s.BeginAIOperation(msg)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	raws, err := h.gateway.GenerateRecipes(c.Request.Context(), p)
	s.FinishAIOperation(gen)
	if err != nil {
		respondAIFailure(c, "menu", err)
		return
	}

	meals := normalizeMenu(raws)
	if len(meals) == 0 {
		respondAIFailure(c, "menu", fmt.Errorf("no usable recipes in reply"))
		return
	}

	s.ApplyGeneratedMeals(gen, slot, meals)
	respondSnapshot(c, s)
}

// recipeImage resolves the picture of a newly generated dish: a
// generated photo when image output is enabled, a stock photo
// otherwise or on failure.
func (h *Handler) recipeImage(c *gin.Context, r recipe.Recipe) string {
	if h.config.Gemini.ImageOutput {
		uri, err := h.gateway.GenerateImage(c.Request.Context(), "Foto professionale del piatto: "+r.Title)
		if err == nil && uri != "" {
			return uri
		}
		common.LogWarn("image generation failed, using stock photo",
			zap.String("title", r.Title),
			zap.Error(err),
		)
	}
	return recipe.RandomImage(r.Category)
}

func (h *Handler) session(c *gin.Context) (*coresession.Session, bool) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return nil, false
	}
	return s, true
}

// selectedRecipe fetches the session and requires an open recipe.
func (h *Handler) selectedRecipe(c *gin.Context) (*coresession.Session, recipe.Recipe, bool) {
	s, ok := h.session(c)
	if !ok {
		return nil, recipe.Recipe{}, false
	}

	selected, exists := s.SelectedMeal()
	if !exists {
		handlers.RespondError(c, common.ErrRecipeNotFound)
		return nil, recipe.Recipe{}, false
	}
	return s, selected, true
}

func normalizeMenu(raws []recipe.RawRecipe) []recipe.Recipe {
	meals := make([]recipe.Recipe, 0, menuSize)
	for _, raw := range raws {
		if len(meals) == menuSize {
			break
		}
		m := recipe.Normalize(raw, nil)
		if m.Image == "" {
			m.Image = recipe.RandomImage(m.Category)
		}
		meals = append(meals, m)
	}
	return meals
}

func respondAIFailure(c *gin.Context, operation string, err error) {
	common.LogWarn("generative operation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	handlers.RespondError(c, common.ErrAIService)
}

func respondSnapshot(c *gin.Context, s *coresession.Session) {
	c.JSON(http.StatusOK, gin.H{"session": s.Snapshot()})
}
