package auth

import "github.com/xyz-asif/tradehub/internal/features/users"

// RegisterRequest represents the payload for creating an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=50" example:"dragonkeeper"`
	Email    string `json:"email" binding:"required,email,max=100" example:"keeper@example.com"`
	Password string `json:"password" binding:"required" example:"Tr4de!Hub"`
}

// LoginRequest represents email and password credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"keeper@example.com"`
	Password string `json:"password" binding:"required" example:"Tr4de!Hub"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User        *users.User `json:"user"`
	AccessToken string      `json:"accessToken"`
}
