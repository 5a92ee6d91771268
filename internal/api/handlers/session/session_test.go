package session

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chef-finokio/internal/core/favorites"
	coresession "chef-finokio/internal/core/session"
	"chef-finokio/internal/infrastructure/config"
)

func testRouter(t *testing.T) (*gin.Engine, *coresession.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Session.TTL = time.Hour
	cfg.Session.CleanupInterval = time.Minute
	cfg.Session.MaxSessions = 10
	cfg.Favorites.Namespace = "test"

	manager := coresession.NewManager(cfg)
	t.Cleanup(manager.Close)

	h := NewHandler(manager, favorites.NewStore(cfg))

	r := gin.New()
	r.POST("/sessions", h.Create)
	r.GET("/sessions/:id", h.Get)
	r.POST("/sessions/:id/meal-type", h.SetMealType)
	r.POST("/sessions/:id/navigate", h.Navigate)
	r.GET("/sessions/:id/share-link", h.ShareLink)
	return r, manager
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestCreateStartsOnWelcome(t *testing.T) {
	r, _ := testRouter(t)

	w := doRequest(t, r, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	payload := decodeBody(t, w)
	session := payload["session"].(map[string]interface{})
	assert.Equal(t, "welcome", session["view"])
	assert.NotEmpty(t, session["id"])

	meals := session["daily_meals"].(map[string]interface{})
	assert.Len(t, meals["pranzo"], 3)
	assert.Len(t, meals["cena"], 3)

	assert.Empty(t, payload["favorites"])
}

func TestMealTypeMovesToModeSelection(t *testing.T) {
	r, manager := testRouter(t)
	s, err := manager.Create()
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPost, "/sessions/"+s.ID()+"/meal-type", gin.H{"meal_type": "pranzo"})
	require.Equal(t, http.StatusOK, w.Code)

	session := decodeBody(t, w)["session"].(map[string]interface{})
	assert.Equal(t, "mode_selection", session["view"])
	assert.Equal(t, "pranzo", session["meal_type"])
}

func TestMealTypeRejectsUnknownSlot(t *testing.T) {
	r, manager := testRouter(t)
	s, err := manager.Create()
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPost, "/sessions/"+s.ID()+"/meal-type", gin.H{"meal_type": "merenda"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeBody(t, w)["code"])
}

func TestNavigateIllegalTransition(t *testing.T) {
	r, manager := testRouter(t)
	s, err := manager.Create()
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPost, "/sessions/"+s.ID()+"/navigate", gin.H{"view": "shopping"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", decodeBody(t, w)["code"])
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	r, _ := testRouter(t)

	w := doRequest(t, r, http.MethodGet, "/sessions/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", decodeBody(t, w)["code"])
}

func TestShareLinkWithoutSelection(t *testing.T) {
	r, manager := testRouter(t)
	s, err := manager.Create()
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodGet, "/sessions/"+s.ID()+"/share-link", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RECIPE_NOT_FOUND", decodeBody(t, w)["code"])
}
