// Package favorites exposes the durable favorites endpoints. The list
// is global: it survives sessions and is shared across them.
package favorites

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chef-finokio/internal/api/handlers"
	corefavorites "chef-finokio/internal/core/favorites"
	"chef-finokio/internal/core/recipe"
	coresession "chef-finokio/internal/core/session"
	"chef-finokio/internal/pkg/common"
)

// Handler serves the favorites endpoints.
type Handler struct {
	manager *coresession.Manager
	store   *corefavorites.Store
}

// NewHandler creates the favorites handler.
func NewHandler(manager *coresession.Manager, store *corefavorites.Store) *Handler {
	return &Handler{
		manager: manager,
		store:   store,
	}
}

type toggleRequest struct {
	// RecipeID is optional; when empty the session's open recipe is
	// toggled.
	RecipeID string `json:"recipe_id"`
}

// List returns the favorites.
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"favorites": h.store.Load(c.Request.Context()),
	})
}

// Toggle adds or removes a recipe from the favorites, resolving it
// through the session's open recipe or daily menus.
func (h *Handler) Toggle(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	var req toggleRequest
	if c.Request.ContentLength > 0 {
		if !handlers.BindJSON(c, &req) {
			return
		}
	}

	r, found := h.resolve(c, s, req.RecipeID)
	if !found {
		handlers.RespondError(c, common.ErrRecipeNotFound)
		return
	}

	list, added := h.store.Toggle(c.Request.Context(), r)
	c.JSON(http.StatusOK, gin.H{
		"favorites": list,
		"added":     added,
	})
}

// resolve finds the recipe to toggle: the open recipe when no id is
// given, otherwise the id looked up in the selection, the daily menus
// and the favorites themselves.
func (h *Handler) resolve(c *gin.Context, s *coresession.Session, id string) (recipe.Recipe, bool) {
	selected, hasSelected := s.SelectedMeal()

	if id == "" {
		return selected, hasSelected
	}
	if hasSelected && selected.ID == id {
		return selected, true
	}
	if r, ok := s.FindMeal(id); ok {
		return r, true
	}
	for _, fav := range h.store.Load(c.Request.Context()) {
		if fav.ID == id {
			return fav.Clone(), true
		}
	}
	return recipe.Recipe{}, false
}
