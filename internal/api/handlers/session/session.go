// Package session exposes the session lifecycle and navigation
// endpoints. Every mutation responds with the full session snapshot so
// the client can render without tracking deltas.
package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chef-finokio/internal/api/handlers"
	"chef-finokio/internal/core/favorites"
	"chef-finokio/internal/core/recipe"
	coresession "chef-finokio/internal/core/session"
	"chef-finokio/internal/pkg/common"
)

// Handler serves the session endpoints.
type Handler struct {
	manager   *coresession.Manager
	favorites *favorites.Store
}

// NewHandler creates the session handler.
func NewHandler(manager *coresession.Manager, favStore *favorites.Store) *Handler {
	return &Handler{
		manager:   manager,
		favorites: favStore,
	}
}

type stateResponse struct {
	Session   coresession.Snapshot `json:"session"`
	Favorites []recipe.Recipe      `json:"favorites"`
}

type mealTypeRequest struct {
	MealType string `json:"meal_type" binding:"required"`
}

type navigateRequest struct {
	View string `json:"view" binding:"required"`
}

type selectRequest struct {
	RecipeID string `json:"recipe_id" binding:"required"`
}

type ingredientRequest struct {
	Index *int `json:"index" binding:"required"`
}

// Create starts a new session on the welcome view.
func (h *Handler) Create(c *gin.Context) {
	s, err := h.manager.Create()
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stateResponse{
		Session:   s.Snapshot(),
		Favorites: h.favorites.Load(c.Request.Context()),
	})
}

// Get returns the current snapshot plus the favorites list.
func (h *Handler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stateResponse{
		Session:   s.Snapshot(),
		Favorites: h.favorites.Load(c.Request.Context()),
	})
}

// SetMealType picks the lunch/dinner slot.
func (h *Handler) SetMealType(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req mealTypeRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	if err := s.SetMealType(req.MealType); err != nil {
		handlers.RespondError(c, err)
		return
	}
	respondSnapshot(c, s)
}

// Navigate performs a direct view change.
func (h *Handler) Navigate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req navigateRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	if err := s.Navigate(coresession.View(req.View)); err != nil {
		handlers.RespondError(c, err)
		return
	}
	respondSnapshot(c, s)
}

// Back performs the context-correct backwards step.
func (h *Handler) Back(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.Back(); err != nil {
		handlers.RespondError(c, err)
		return
	}
	respondSnapshot(c, s)
}

// Reset returns the session to the welcome view.
func (h *Handler) Reset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	s.Reset()
	respondSnapshot(c, s)
}

// Select opens a recipe from the daily menus or the favorites list in
// the detail view.
func (h *Handler) Select(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req selectRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	r, found := s.FindMeal(req.RecipeID)
	if !found {
		for _, fav := range h.favorites.Load(c.Request.Context()) {
			if fav.ID == req.RecipeID {
				r = fav.Clone()
				found = true
				break
			}
		}
	}
	if !found {
		handlers.RespondError(c, common.ErrRecipeNotFound)
		return
	}

	if err := s.SelectMeal(r); err != nil {
		handlers.RespondError(c, err)
		return
	}
	respondSnapshot(c, s)
}

// ToggleIngredient flips the "already at home" mark of one ingredient.
func (h *Handler) ToggleIngredient(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req ingredientRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	if err := s.ToggleIngredient(*req.Index); err != nil {
		handlers.RespondError(c, err)
		return
	}
	respondSnapshot(c, s)
}

// HoldIngredient flips the slot-machine lock of one ingredient.
func (h *Handler) HoldIngredient(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req ingredientRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	if err := s.HoldIngredient(*req.Index); err != nil {
		handlers.RespondError(c, err)
		return
	}
	respondSnapshot(c, s)
}

// ShareLink builds the WhatsApp deep link for the open shopping list.
func (h *Handler) ShareLink(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	link, err := s.ShareLink()
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"share_url": link})
}

func (h *Handler) session(c *gin.Context) (*coresession.Session, bool) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return nil, false
	}
	return s, true
}

func respondSnapshot(c *gin.Context, s *coresession.Session) {
	c.JSON(http.StatusOK, gin.H{"session": s.Snapshot()})
}
