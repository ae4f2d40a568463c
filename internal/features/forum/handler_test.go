package forum

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
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(router.Group("/api/v1"), NewHandler(f.svc), auth, pass)
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

func TestHandlerPostAndVote(t *testing.T) {
	f := newFixture()
	router := setupRouter(f, &users.User{ID: f.author, Role: users.RoleUser})

	w := do(router, http.MethodPost, "/api/v1/forum/posts", gin.H{
		"category": "game_updates",
		"title":    "Patch notes",
		"content":  "New pets this week",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data Post `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := "/api/v1/forum/posts/" + created.Data.ID.Hex()

	w = do(router, http.MethodPost, path+"/vote", gin.H{"direction": "up"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"upvotes":1`)

	w = do(router, http.MethodPost, path+"/vote", gin.H{"direction": "left"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"images":[]`)
}

func TestHandlerCommentOnMissingPost(t *testing.T) {
	f := newFixture()
	router := setupRouter(f, &users.User{ID: f.author, Role: users.RoleUser})

	w := do(router, http.MethodPost, "/api/v1/forum/posts/"+primitive.NewObjectID().Hex()+"/comments", gin.H{"content": "hi"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, "/api/v1/forum/posts/not-an-id/comments", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerDeleteRequiresAuthorOrStaff(t *testing.T) {
	f := newFixture()
	post := f.post(t)
	path := "/api/v1/forum/posts/" + post.ID.Hex()

	stranger := setupRouter(f, &users.User{ID: primitive.NewObjectID(), Role: users.RoleVerified})
	w := do(stranger, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	admin := setupRouter(f, &users.User{ID: primitive.NewObjectID(), Role: users.RoleAdmin})
	w = do(admin, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(admin, http.MethodGet, path, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
