package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xyz-asif/tradehub/internal/database"
	"github.com/xyz-asif/tradehub/internal/pkg/logger"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotParticipant is returned when leaving an event the user never joined.
var ErrNotParticipant = fmt.Errorf("not a participant: %w", apperrors.ErrNotFound)

// Store persists events. Roster changes update participants and
// participantCount in one conditional write; Replace only lands when the
// stored version still equals event.Version.
type Store interface {
	Insert(ctx context.Context, event *Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]Event, error)
	Replace(ctx context.Context, event *Event) (*Event, error)
	AddParticipant(ctx context.Context, id, userID primitive.ObjectID, at time.Time) (*Event, error)
	RemoveParticipant(ctx context.Context, id, userID primitive.ObjectID, at time.Time) (*Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("events")

	err := database.EnsureIndexes(collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "creatorId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "participants", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "startDate", Value: 1}}},
	})
	if err != nil {
		logger.Warn("events: %v", err)
	}

	return &Repository{collection: collection}
}

func (r *Repository) Insert(ctx context.Context, event *Event) error {
	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return err
	}
	event.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	var event Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("event")
		}
		return nil, err
	}
	return &event, nil
}

func (r *Repository) ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"creatorId": creatorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Replace writes the whole document if nobody has written since it was read.
func (r *Repository) Replace(ctx context.Context, event *Event) (*Event, error) {
	next := *event
	next.Version = event.Version + 1

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": event.ID, "version": event.Version}, &next)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, database.ErrStale
	}
	return &next, nil
}

func (r *Repository) findAndUpdate(ctx context.Context, filter, update bson.M) (*Event, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event Event
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

// joinFilter matches the event only while userID is absent from the roster
// and the roster is uncapped or below its cap.
func joinFilter(id, userID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":          id,
		"participants": bson.M{"$ne": userID},
		"$or": bson.A{
			bson.M{"maxParticipants": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$participantCount", "$maxParticipants"}}},
		},
	}
}

func joinUpdate(userID primitive.ObjectID, at time.Time) bson.M {
	return bson.M{
		"$addToSet": bson.M{"participants": userID},
		"$inc":      bson.M{"participantCount": 1, "version": 1},
		"$set":      bson.M{"updatedAt": at},
	}
}

func leaveFilter(id, userID primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "participants": userID}
}

func leaveUpdate(userID primitive.ObjectID, at time.Time) bson.M {
	return bson.M{
		"$pull": bson.M{"participants": userID},
		"$inc":  bson.M{"participantCount": -1, "version": 1},
		"$set":  bson.M{"updatedAt": at},
	}
}

// AddParticipant admits userID only while it is absent and the roster has
// room. When nothing matched it re-reads the event to name the reason.
func (r *Repository) AddParticipant(ctx context.Context, id, userID primitive.ObjectID, at time.Time) (*Event, error) {
	event, err := r.findAndUpdate(ctx, joinFilter(id, userID), joinUpdate(userID, at))
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case current.HasParticipant(userID):
		return nil, apperrors.ErrAlreadyJoined
	case current.Full():
		return nil, apperrors.ErrCapacity
	}
	return nil, database.ErrStale
}

// RemoveParticipant is the inverse of AddParticipant.
func (r *Repository) RemoveParticipant(ctx context.Context, id, userID primitive.ObjectID, at time.Time) (*Event, error) {
	event, err := r.findAndUpdate(ctx, leaveFilter(id, userID), leaveUpdate(userID, at))
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return nil, database.ErrStale
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("event")
	}
	return nil
}
