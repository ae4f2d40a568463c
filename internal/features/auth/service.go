package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/xyz-asif/tradehub/internal/features/users"
	"github.com/xyz-asif/tradehub/internal/pkg/jwt"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid or expired token: %w", apperrors.ErrUnauthorized)
	ErrRevokedToken       = fmt.Errorf("token has been revoked: %w", apperrors.ErrUnauthorized)
	ErrBanned             = fmt.Errorf("account is banned: %w", apperrors.ErrForbidden)
)

// Service hashes passwords and manages sessions on top of the user registry.
type Service struct {
	users  *users.Service
	secret string
	cost   int
}

// NewService builds an auth service. A cost of zero uses bcrypt.DefaultCost.
func NewService(accounts *users.Service, secret string, cost int) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{users: accounts, secret: secret, cost: cost}
}

// Register creates an account and opens its first session.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*users.User, users.SessionToken, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, users.SessionToken{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, users.SessionToken{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, users.CreateUserInput{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, users.SessionToken{}, err
	}

	tok, err := s.users.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, users.SessionToken{}, err
	}
	return user, tok, nil
}

// Login checks credentials, stamps lastLogin and issues a new session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*users.User, users.SessionToken, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, users.SessionToken{}, ErrInvalidCredentials
		}
		return nil, users.SessionToken{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, users.SessionToken{}, ErrInvalidCredentials
	}
	if user.IsBanned() {
		return nil, users.SessionToken{}, ErrBanned
	}

	if user, err = s.users.RecordLogin(ctx, user.ID); err != nil {
		return nil, users.SessionToken{}, err
	}
	tok, err := s.users.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, users.SessionToken{}, err
	}
	return user, tok, nil
}

// Authenticate resolves a bearer token to a live, unbanned user.
func (s *Service) Authenticate(ctx context.Context, token string) (*users.User, error) {
	claims, err := jwt.ValidateToken(token, s.secret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.HasToken(token) {
		return nil, ErrRevokedToken
	}
	if user.IsBanned() {
		return nil, ErrBanned
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context, userID primitive.ObjectID, token string) error {
	return s.users.RevokeToken(ctx, userID, token)
}

func (s *Service) LogoutAll(ctx context.Context, userID primitive.ObjectID) error {
	return s.users.RevokeAllTokens(ctx, userID)
}
