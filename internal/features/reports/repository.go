package reports

import (
	"context"
	"errors"
	"time"

	"github.com/xyz-asif/tradehub/internal/database"
	"github.com/xyz-asif/tradehub/internal/lifecycle"
	"github.com/xyz-asif/tradehub/internal/pkg/logger"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists reports. SetStatus writes only while the stored status
// still equals from.
type Store interface {
	Insert(ctx context.Context, report *Report) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Report, error)
	ListByStatus(ctx context.Context, status lifecycle.ReportStatus) ([]Report, error)
	ListAgainst(ctx context.Context, userID primitive.ObjectID) ([]Report, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, from, to lifecycle.ReportStatus, at time.Time) (*Report, error)
}

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("reports")

	err := database.EnsureIndexes(collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reportedUserId", Value: 1}}},
		{Keys: bson.D{{Key: "reportingUserId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		logger.Warn("reports: %v", err)
	}

	return &Repository{collection: collection}
}

func (r *Repository) Insert(ctx context.Context, report *Report) error {
	result, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return err
	}
	report.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	var report Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("report")
		}
		return nil, err
	}
	return &report, nil
}

func (r *Repository) list(ctx context.Context, filter bson.M) ([]Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// ListByStatus returns the queue for one review state, oldest first.
func (r *Repository) ListByStatus(ctx context.Context, status lifecycle.ReportStatus) ([]Report, error) {
	return r.list(ctx, bson.M{"status": status})
}

func (r *Repository) ListAgainst(ctx context.Context, userID primitive.ObjectID) ([]Report, error) {
	return r.list(ctx, bson.M{"reportedUserId": userID})
}

func (r *Repository) SetStatus(ctx context.Context, id primitive.ObjectID, from, to lifecycle.ReportStatus, at time.Time) (*Report, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var report Report
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": at}},
		opts,
	).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrStale
		}
		return nil, err
	}
	return &report, nil
}
