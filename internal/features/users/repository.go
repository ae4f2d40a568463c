package users

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/xyz-asif/tradehub/internal/database"
	"github.com/xyz-asif/tradehub/internal/pkg/logger"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the persistence contract of the identity registry. Every method
// that changes a user is a single atomic document write.
type Store interface {
	Insert(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Taken(ctx context.Context, field, value string, exclude primitive.ObjectID) (bool, error)
	Apply(ctx context.Context, id primitive.ObjectID, patch *Patch, at time.Time) (*User, error)
	PushToken(ctx context.Context, id primitive.ObjectID, tok SessionToken) error
	PullToken(ctx context.Context, id primitive.ObjectID, token string) error
	ClearTokens(ctx context.Context, id primitive.ObjectID) error
	IncrementCredibility(ctx context.Context, id primitive.ObjectID, delta int, at time.Time) (*User, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Repository handles database interactions for users
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("users")

	err := database.EnsureIndexes(collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(usernameIndex),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(emailIndex),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "tokens.token", Value: 1}}},
	})
	if err != nil {
		logger.Warn("users: %v", err)
	}

	return &Repository{collection: collection}
}

const (
	usernameIndex = "username_1"
	emailIndex    = "email_1"
)

// dupIndexPattern pulls the index name out of an E11000 server message.
var dupIndexPattern = regexp.MustCompile(`index: (\S+) dup key`)

// duplicateMessages collects the server messages of every duplicate key
// failure carried by err.
func duplicateMessages(err error) []string {
	var messages []string

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 || e.Code == 12582 {
				messages = append(messages, e.Message)
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		messages = append(messages, ce.Message)
	}
	return messages
}

// duplicateKey maps a unique index violation onto the validation error the
// service returns from its own pre-check. The field comes from the violated
// index name, never from the duplicated value.
func duplicateKey(err error) error {
	field := "username"
	for _, msg := range duplicateMessages(err) {
		if m := dupIndexPattern.FindStringSubmatch(msg); m != nil && m[1] == emailIndex {
			field = "email"
			break
		}
	}
	return apperrors.Validation(field, "is already taken")
}

func (r *Repository) Insert(ctx context.Context, user *User) error {
	if user.Tokens == nil {
		user.Tokens = []SessionToken{}
	}
	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKey(err)
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByEmail expects an email already passed through NormalizeEmail.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// Taken reports whether another user than exclude holds value in field.
func (r *Repository) Taken(ctx context.Context, field, value string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{field: value}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func patchUpdate(p *Patch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if p.Username != nil {
		set["username"] = *p.Username
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.RobloxUsername != nil {
		set["robloxUsername"] = *p.RobloxUsername
	}
	if p.AvatarURL != nil {
		set["avatarUrl"] = *p.AvatarURL
	}
	if p.Bio != nil {
		set["bio"] = *p.Bio
	}
	if p.DiscordUsername != nil {
		set["discordUsername"] = *p.DiscordUsername
	}
	if p.Timezone != nil {
		set["timezone"] = *p.Timezone
	}
	if p.VerificationRequested != nil {
		set["verificationRequested"] = *p.VerificationRequested
	}
	if p.MiddlemanRequested != nil {
		set["middlemanRequested"] = *p.MiddlemanRequested
	}
	if p.LastLogin != nil {
		set["lastLogin"] = *p.LastLogin
	}
	if p.Role != nil {
		set["role"] = *p.Role
		if *p.Role == RoleBanned {
			set["banReason"] = p.BanReason
			set["bannedAt"] = p.BannedAt
		}
	}
	if p.ClearBan {
		unset["banReason"] = ""
		unset["bannedAt"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

// Apply writes the patch in one FindOneAndUpdate and returns the new document.
func (r *Repository) Apply(ctx context.Context, id primitive.ObjectID, patch *Patch, at time.Time) (*User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, patchUpdate(patch, at), opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKey(err)
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("user")
	}
	return nil
}

func (r *Repository) PushToken(ctx context.Context, id primitive.ObjectID, tok SessionToken) error {
	return r.updateOne(ctx, id, bson.M{"$push": bson.M{"tokens": tok}})
}

// PullToken removes one token. Pulling an absent token matches but changes nothing.
func (r *Repository) PullToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return r.updateOne(ctx, id, bson.M{"$pull": bson.M{"tokens": bson.M{"token": token}}})
}

func (r *Repository) ClearTokens(ctx context.Context, id primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"tokens": []SessionToken{}}})
}

func (r *Repository) IncrementCredibility(ctx context.Context, id primitive.ObjectID, delta int, at time.Time) (*User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$inc": bson.M{"credibilityScore": delta},
		"$set": bson.M{"updatedAt": at},
	}

	var user User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
