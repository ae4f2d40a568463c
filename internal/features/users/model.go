package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a user's standing on the platform.
type Role string

const (
	RoleUser      Role = "user"
	RoleVerified  Role = "verified"
	RoleMiddleman Role = "middleman"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleBanned    Role = "banned"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleVerified, RoleMiddleman, RoleAdmin, RoleModerator, RoleBanned:
		return true
	}
	return false
}

// IsStaff reports whether the role may moderate other users.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleModerator
}

// SessionToken is an issued session credential.
type SessionToken struct {
	Token    string    `bson:"token" json:"-"`
	IssuedAt time.Time `bson:"issuedAt" json:"issuedAt"`
}

// User represents a registered account
type User struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username              string             `bson:"username" json:"username"`
	Email                 string             `bson:"email" json:"email"`
	PasswordHash          string             `bson:"passwordHash" json:"-"`
	RobloxUsername        string             `bson:"robloxUsername" json:"robloxUsername"`
	AvatarURL             string             `bson:"avatarUrl" json:"avatarUrl"`
	CredibilityScore      int                `bson:"credibilityScore" json:"credibilityScore"`
	Role                  Role               `bson:"role" json:"role"`
	Bio                   string             `bson:"bio" json:"bio"`
	DiscordUsername       string             `bson:"discordUsername" json:"discordUsername"`
	Timezone              string             `bson:"timezone" json:"timezone"`
	VerificationRequested bool               `bson:"verificationRequested" json:"verificationRequested"`
	MiddlemanRequested    bool               `bson:"middlemanRequested" json:"middlemanRequested"`
	BanReason             string             `bson:"banReason,omitempty" json:"banReason,omitempty"`
	BannedAt              *time.Time         `bson:"bannedAt,omitempty" json:"bannedAt,omitempty"`
	LastLogin             *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	Tokens                []SessionToken     `bson:"tokens" json:"-"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsBanned() bool {
	return u.Role == RoleBanned
}

// HasToken reports whether tok is one of the user's live session tokens.
func (u *User) HasToken(tok string) bool {
	for _, t := range u.Tokens {
		if t.Token == tok {
			return true
		}
	}
	return false
}

// ToPublicUser returns a map of user fields safe for public display
func (u *User) ToPublicUser() map[string]interface{} {
	return map[string]interface{}{
		"id":               u.ID,
		"username":         u.Username,
		"robloxUsername":   u.RobloxUsername,
		"avatarUrl":        u.AvatarURL,
		"credibilityScore": u.CredibilityScore,
		"role":             u.Role,
		"bio":              u.Bio,
		"discordUsername":  u.DiscordUsername,
		"timezone":         u.Timezone,
		"createdAt":        u.CreatedAt,
	}
}

// CreateUserInput carries an already-hashed credential from the auth layer.
type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
	Role         Role
}

// UpdateUserInput lists the fields to change; nil fields are left alone.
type UpdateUserInput struct {
	Username              *string
	Email                 *string
	RobloxUsername        *string
	AvatarURL             *string
	Bio                   *string
	DiscordUsername       *string
	Timezone              *string
	VerificationRequested *bool
	MiddlemanRequested    *bool
	Role                  *Role
	BanReason             *string
}

// Patch is the single atomic write a Store applies to a user document.
// Role, BanReason, BannedAt and ClearBan always travel together.
type Patch struct {
	Username              *string
	Email                 *string
	RobloxUsername        *string
	AvatarURL             *string
	Bio                   *string
	DiscordUsername       *string
	Timezone              *string
	VerificationRequested *bool
	MiddlemanRequested    *bool
	LastLogin             *time.Time

	Role      *Role
	BanReason string
	BannedAt  *time.Time
	ClearBan  bool
}

// UpdateProfileRequest represents the payload for editing one's own profile
type UpdateProfileRequest struct {
	Username        *string `json:"username" binding:"omitempty,max=50"`
	Email           *string `json:"email" binding:"omitempty,max=100"`
	RobloxUsername  *string `json:"robloxUsername" binding:"omitempty,max=50"`
	AvatarURL       *string `json:"avatarUrl" binding:"omitempty"`
	Bio             *string `json:"bio" binding:"omitempty,max=500"`
	DiscordUsername *string `json:"discordUsername" binding:"omitempty,max=50"`
	Timezone        *string `json:"timezone" binding:"omitempty,max=64"`
}

// ChangeRoleRequest represents a staff role assignment
type ChangeRoleRequest struct {
	Role      Role   `json:"role" binding:"required"`
	BanReason string `json:"banReason"`
}

// BanRequest represents the payload for banning a user
type BanRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// UnbanRequest optionally names the role restored on unban
type UnbanRequest struct {
	Role Role `json:"role"`
}

// CredibilityRequest adjusts a user's credibility score
type CredibilityRequest struct {
	Delta int `json:"delta" binding:"required"`
}
