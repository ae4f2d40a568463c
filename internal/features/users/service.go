package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xyz-asif/tradehub/internal/lifecycle"
	"github.com/xyz-asif/tradehub/internal/pkg/broker"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenSigner mints the session token string stored on a user.
type TokenSigner interface {
	Sign(user *User, issuedAt time.Time) (string, error)
}

// RandomSigner issues opaque random tokens. Used when no JWT signer is wired.
type RandomSigner struct{}

func (RandomSigner) Sign(*User, time.Time) (string, error) {
	return uuid.NewString(), nil
}

type Service struct {
	store  Store
	clock  lifecycle.Clock
	signer TokenSigner
	events broker.Publisher
}

func NewService(store Store, clock lifecycle.Clock, signer TokenSigner, events broker.Publisher) *Service {
	if clock == nil {
		clock = lifecycle.SystemClock{}
	}
	if signer == nil {
		signer = RandomSigner{}
	}
	if events == nil {
		events = broker.Nop{}
	}
	return &Service{store: store, clock: clock, signer: signer, events: events}
}

func (s *Service) checkUnique(ctx context.Context, field, value string, exclude primitive.ObjectID) error {
	taken, err := s.store.Taken(ctx, field, value, exclude)
	if err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if taken {
		return apperrors.Validation(field, "is already taken")
	}
	return nil
}

// Create registers a user. The password arrives already hashed.
func (s *Service) Create(ctx context.Context, in CreateUserInput) (*User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = NormalizeEmail(in.Email)
	if in.Role == "" {
		in.Role = RoleUser
	}
	if err := validateCreate(&in); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, "username", in.Username, primitive.NilObjectID); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, "email", in.Email, primitive.NilObjectID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         in.Role,
		Tokens:       []SessionToken{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.store.FindByUsername(ctx, strings.TrimSpace(username))
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.store.FindByEmail(ctx, NormalizeEmail(email))
}

func (s *Service) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.store.Exists(ctx, id)
}

// Update applies profile and role changes in a single document write. A
// change to RoleBanned stamps the ban reason and time; any other role clears
// them.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in UpdateUserInput) (*User, error) {
	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)
		in.Username = &trimmed
	}
	if in.Email != nil {
		normalized := NormalizeEmail(*in.Email)
		in.Email = &normalized
	}
	if err := validateUpdate(&in); err != nil {
		return nil, err
	}
	if in.Username != nil {
		if err := s.checkUnique(ctx, "username", *in.Username, id); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		if err := s.checkUnique(ctx, "email", *in.Email, id); err != nil {
			return nil, err
		}
	}

	patch := &Patch{
		Username:              in.Username,
		Email:                 in.Email,
		RobloxUsername:        in.RobloxUsername,
		AvatarURL:             in.AvatarURL,
		Bio:                   in.Bio,
		DiscordUsername:       in.DiscordUsername,
		Timezone:              in.Timezone,
		VerificationRequested: in.VerificationRequested,
		MiddlemanRequested:    in.MiddlemanRequested,
	}

	now := s.clock.Now()
	var before *User
	if in.Role != nil {
		var err error
		if before, err = s.store.FindByID(ctx, id); err != nil {
			return nil, err
		}
		patch.Role = in.Role
		if *in.Role == RoleBanned {
			patch.BanReason = strings.TrimSpace(*in.BanReason)
			patch.BannedAt = &now
		} else {
			patch.ClearBan = true
		}
	}

	user, err := s.store.Apply(ctx, id, patch, now)
	if err != nil {
		return nil, err
	}

	if before != nil {
		s.publishBanChange(ctx, before, user)
	}
	return user, nil
}

func (s *Service) publishBanChange(ctx context.Context, before, after *User) {
	switch {
	case !before.IsBanned() && after.IsBanned():
		broker.Emit(ctx, s.events, broker.KeyUserBanned, broker.BanStateChanged{
			UserID:    after.ID.Hex(),
			Role:      string(after.Role),
			Reason:    after.BanReason,
			ChangedAt: *after.BannedAt,
		})
	case before.IsBanned() && !after.IsBanned():
		broker.Emit(ctx, s.events, broker.KeyUserUnbanned, broker.BanStateChanged{
			UserID:    after.ID.Hex(),
			Role:      string(after.Role),
			ChangedAt: s.clock.Now(),
		})
	}
}

// Ban moves the user to RoleBanned with reason.
func (s *Service) Ban(ctx context.Context, id primitive.ObjectID, reason string) (*User, error) {
	role := RoleBanned
	return s.Update(ctx, id, UpdateUserInput{Role: &role, BanReason: &reason})
}

// Unban restores a banned user to restore, or RoleUser when restore is empty.
func (s *Service) Unban(ctx context.Context, id primitive.ObjectID, restore Role) (*User, error) {
	if restore == "" {
		restore = RoleUser
	}
	if restore == RoleBanned {
		return nil, apperrors.Validation("role", "cannot restore a user to banned")
	}
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsBanned() {
		return nil, apperrors.Validation("role", "user is not banned")
	}
	return s.Update(ctx, id, UpdateUserInput{Role: &restore})
}

// IssueToken signs a new session token and appends it to the user's list.
func (s *Service) IssueToken(ctx context.Context, id primitive.ObjectID) (SessionToken, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return SessionToken{}, err
	}
	if user.IsBanned() {
		return SessionToken{}, fmt.Errorf("issue token: %w", apperrors.ErrForbidden)
	}

	now := s.clock.Now()
	signed, err := s.signer.Sign(user, now)
	if err != nil {
		return SessionToken{}, fmt.Errorf("sign token: %w", err)
	}
	tok := SessionToken{Token: signed, IssuedAt: now}
	if err := s.store.PushToken(ctx, id, tok); err != nil {
		return SessionToken{}, err
	}
	return tok, nil
}

// RevokeToken removes a token. Revoking a token the user does not hold is a no-op.
func (s *Service) RevokeToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return s.store.PullToken(ctx, id, token)
}

func (s *Service) RevokeAllTokens(ctx context.Context, id primitive.ObjectID) error {
	return s.store.ClearTokens(ctx, id)
}

// HasToken reports whether token is live for the user.
func (s *Service) HasToken(ctx context.Context, id primitive.ObjectID, token string) (bool, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.HasToken(token), nil
}

func (s *Service) RecordLogin(ctx context.Context, id primitive.ObjectID) (*User, error) {
	now := s.clock.Now()
	return s.store.Apply(ctx, id, &Patch{LastLogin: &now}, now)
}

func (s *Service) AdjustCredibility(ctx context.Context, id primitive.ObjectID, delta int) (*User, error) {
	if delta == 0 {
		return nil, apperrors.Validation("delta", "must not be zero")
	}
	return s.store.IncrementCredibility(ctx, id, delta, s.clock.Now())
}

func (s *Service) RequestVerification(ctx context.Context, id primitive.ObjectID) (*User, error) {
	requested := true
	return s.store.Apply(ctx, id, &Patch{VerificationRequested: &requested}, s.clock.Now())
}

func (s *Service) RequestMiddleman(ctx context.Context, id primitive.ObjectID) (*User, error) {
	requested := true
	return s.store.Apply(ctx, id, &Patch{MiddlemanRequested: &requested}, s.clock.Now())
}
