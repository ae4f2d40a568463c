package events

import (
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
	noLimit := func(c *gin.Context) { c.Next() }
	RegisterRoutes(router.Group("/api/v1"), NewHandler(f.svc), auth, noLimit)
	return router
}

func TestHandlerGetReturnsBothStatuses(t *testing.T) {
	f := newFixture()
	start := epoch.Add(day)
	e := f.create(t, CreateEventInput{StartDate: &start})
	f.clock.Advance(2 * day)

	router := setupRouter(f, &users.User{ID: f.creator})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/"+e.ID.Hex(), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Status        string `json:"status"`
			CurrentStatus string `json:"currentStatus"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "upcoming", body.Data.Status)
	require.Equal(t, "active", body.Data.CurrentStatus)
}

func TestHandlerJoinErrors(t *testing.T) {
	f := newFixture()
	e := f.create(t, CreateEventInput{MaxParticipants: intp(1)})
	path := "/api/v1/events/" + e.ID.Hex() + "/join"

	first := setupRouter(f, &users.User{ID: primitive.NewObjectID()})
	w := httptest.NewRecorder()
	first.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	first.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "ALREADY_JOINED")

	second := setupRouter(f, &users.User{ID: primitive.NewObjectID()})
	w = httptest.NewRecorder()
	second.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "CAPACITY_REACHED")

	w = httptest.NewRecorder()
	second.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerOnlyCreatorEdits(t *testing.T) {
	f := newFixture()
	e := f.create(t, CreateEventInput{})

	router := setupRouter(f, &users.User{ID: primitive.NewObjectID(), Role: users.RoleUser})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/events/"+e.ID.Hex(), nil))
	require.Equal(t, http.StatusForbidden, w.Code)

	router = setupRouter(f, &users.User{ID: f.creator, Role: users.RoleUser})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/events/"+e.ID.Hex(), nil))
	require.Equal(t, http.StatusOK, w.Code)
}
