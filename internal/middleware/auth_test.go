package middleware

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

func roleRouter(caller *users.User, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", func(c *gin.Context) {
		if caller != nil {
			users.SetCurrent(c, caller, "tok")
		}
		c.Next()
	}, guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	return w
}

func TestRequireRole_NoUser(t *testing.T) {
	w := get(roleRouter(nil, RequireStaff()))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "AUTH_REQUIRED", body["code"])
}

func TestRequireRole_Roles(t *testing.T) {
	tests := []struct {
		role  users.Role
		guard gin.HandlerFunc
		want  int
	}{
		{users.RoleAdmin, RequireStaff(), http.StatusOK},
		{users.RoleModerator, RequireStaff(), http.StatusOK},
		{users.RoleMiddleman, RequireStaff(), http.StatusForbidden},
		{users.RoleUser, RequireStaff(), http.StatusForbidden},
		{users.RoleModerator, RequireRole(users.RoleAdmin), http.StatusForbidden},
		{users.RoleAdmin, RequireRole(users.RoleAdmin), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			caller := &users.User{ID: primitive.NewObjectID(), Role: tt.role}
			w := get(roleRouter(caller, tt.guard))
			require.Equal(t, tt.want, w.Code)
		})
	}
}
