package auth

import (
	"time"

	"github.com/xyz-asif/tradehub/internal/features/users"
	"github.com/xyz-asif/tradehub/internal/pkg/jwt"
)

// JWTSigner mints session tokens as signed JWTs.
type JWTSigner struct {
	cfg *jwt.Config
}

func NewJWTSigner(cfg *jwt.Config) *JWTSigner {
	return &JWTSigner{cfg: cfg}
}

func (s *JWTSigner) Sign(user *users.User, issuedAt time.Time) (string, error) {
	return jwt.GenerateToken(user.ID.Hex(), string(user.Role), issuedAt, s.cfg)
}
