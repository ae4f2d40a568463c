package users

import "github.com/gin-gonic/gin"

// Context keys set by the auth middleware.
const (
	ContextUser  = "user"
	ContextToken = "token"
)

// SetCurrent stores the authenticated user and the token it presented.
func SetCurrent(c *gin.Context, user *User, token string) {
	c.Set(ContextUser, user)
	c.Set("userID", user.ID.Hex())
	c.Set(ContextToken, token)
}

// Current returns the authenticated user, if any.
func Current(c *gin.Context) (*User, bool) {
	val, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := val.(*User)
	return user, ok && user != nil
}

// CurrentToken returns the session token presented with the request.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextToken)
}
