package trades

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/tradehub/internal/features/users"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupRouter(f *fixture, caller *users.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := func(c *gin.Context) {
		users.SetCurrent(c, caller, "test-token")
		c.Next()
	}
	RegisterRoutes(router.Group("/api/v1"), NewHandler(f.svc), auth)
	return router
}

func do(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandlerTransitionFlow(t *testing.T) {
	f := newFixture()
	trade := f.open(t)
	router := setupRouter(f, &users.User{ID: f.owner, Role: users.RoleUser})
	path := "/api/v1/trades/" + trade.ID.Hex() + "/status"

	w := do(router, http.MethodPost, path, gin.H{"status": "completed"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_STATUS_TRANSITION")

	w = do(router, http.MethodPost, path, gin.H{"status": "in_progress"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"in_progress"`)
}

func TestHandlerRejectsNonOwner(t *testing.T) {
	f := newFixture()
	trade := f.open(t)
	stranger := &users.User{ID: primitive.NewObjectID(), Role: users.RoleVerified}
	router := setupRouter(f, stranger)

	w := do(router, http.MethodPost, "/api/v1/trades/"+trade.ID.Hex()+"/status", gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusForbidden, w.Code)

	moderator := &users.User{ID: primitive.NewObjectID(), Role: users.RoleModerator}
	router = setupRouter(f, moderator)
	w = do(router, http.MethodPost, "/api/v1/trades/"+trade.ID.Hex()+"/status", gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandlerCreateAndList(t *testing.T) {
	f := newFixture()
	router := setupRouter(f, &users.User{ID: f.owner, Role: users.RoleUser})

	w := do(router, http.MethodPost, "/api/v1/trades", gin.H{"itemOffered": "Golden Egg"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodPost, "/api/v1/trades", gin.H{"description": "missing item"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/users/"+f.owner.Hex()+"/trades", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Golden Egg")

	w = do(router, http.MethodGet, "/api/v1/trades/not-an-id", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
