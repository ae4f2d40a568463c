package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/tradehub/internal/features/users"
	"github.com/xyz-asif/tradehub/internal/features/users/userstest"
	"github.com/xyz-asif/tradehub/internal/pkg/jwt"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newServices() (*Service, *users.Service) {
	signer := NewJWTSigner(jwt.DefaultConfig(testSecret, time.Hour))
	accounts := users.NewService(userstest.New(), nil, signer, nil)
	return NewService(accounts, testSecret, bcrypt.MinCost), accounts
}

func register(t *testing.T, svc *Service) (*users.User, string) {
	t.Helper()
	user, tok, err := svc.Register(context.Background(), RegisterRequest{
		Username: "dragonkeeper",
		Email:    "Keeper@Example.com",
		Password: "Tr4de!Hub",
	})
	require.NoError(t, err)
	return user, tok.Token
}

func TestRegisterStoresHashAndIssuesToken(t *testing.T) {
	svc, accounts := newServices()
	user, token := register(t, svc)

	require.Equal(t, "keeper@example.com", user.Email)
	require.NotEqual(t, "Tr4de!Hub", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Tr4de!Hub")))

	held, err := accounts.HasToken(context.Background(), user.ID, token)
	require.NoError(t, err)
	require.True(t, held)

	claims, err := jwt.ValidateToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID.Hex(), claims.UserID)
	require.Equal(t, string(users.RoleUser), claims.Role)
}

func TestRegisterRejectsWeakPasswordAndDuplicates(t *testing.T) {
	svc, _ := newServices()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterRequest{Username: "weak", Email: "weak@example.com", Password: "password"})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	register(t, svc)
	_, _, err = svc.Register(ctx, RegisterRequest{Username: "other", Email: "keeper@example.com", Password: "Tr4de!Hub"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLogin(t *testing.T) {
	svc, _ := newServices()
	ctx := context.Background()
	register(t, svc)

	user, tok, err := svc.Login(ctx, LoginRequest{Email: "KEEPER@example.com", Password: "Tr4de!Hub"})
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	require.NotEmpty(t, tok.Token)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "keeper@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "Tr4de!Hub"})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestBannedUserCannotLoginOrAuthenticate(t *testing.T) {
	svc, accounts := newServices()
	ctx := context.Background()
	user, token := register(t, svc)

	_, err := accounts.Ban(ctx, user.ID, "scamming")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "keeper@example.com", Password: "Tr4de!Hub"})
	require.ErrorIs(t, err, ErrBanned)

	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthenticateAndLogout(t *testing.T) {
	svc, _ := newServices()
	ctx := context.Background()
	user, token := register(t, svc)

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, svc.Logout(ctx, user.ID, token))
	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrRevokedToken)

	// Logging out twice is harmless.
	require.NoError(t, svc.Logout(ctx, user.ID, token))
}

func TestLogoutAll(t *testing.T) {
	svc, _ := newServices()
	ctx := context.Background()
	user, first := register(t, svc)

	_, second, err := svc.Login(ctx, LoginRequest{Email: "keeper@example.com", Password: "Tr4de!Hub"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, user.ID))
	for _, tok := range []string{first, second.Token} {
		_, err := svc.Authenticate(ctx, tok)
		require.ErrorIs(t, err, ErrRevokedToken)
	}
}
