package trades

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

// Store persists trades. SetStatus only writes when the stored status still
// equals from, and reports database.ErrStale otherwise.
type Store interface {
	Insert(ctx context.Context, trade *Trade) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Trade, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]Trade, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, from, to lifecycle.TradeStatus, at time.Time) (*Trade, error)
	PushImage(ctx context.Context, id primitive.ObjectID, img Image) (*Trade, error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, d Details, at time.Time) (*Trade, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("trades")

	err := database.EnsureIndexes(collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		logger.Warn("trades: %v", err)
	}

	return &Repository{collection: collection}
}

func (r *Repository) Insert(ctx context.Context, trade *Trade) error {
	result, err := r.collection.InsertOne(ctx, trade)
	if err != nil {
		return err
	}
	trade.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Trade, error) {
	var trade Trade
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trade)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("trade")
		}
		return nil, err
	}
	return &trade, nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]Trade, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trades := []Trade{}
	if err := cursor.All(ctx, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *Repository) findAndUpdate(ctx context.Context, filter, update bson.M) (*Trade, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var trade Trade
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&trade)
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r *Repository) SetStatus(ctx context.Context, id primitive.ObjectID, from, to lifecycle.TradeStatus, at time.Time) (*Trade, error) {
	trade, err := r.findAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": at}},
	)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrStale
	}
	return trade, err
}

func (r *Repository) PushImage(ctx context.Context, id primitive.ObjectID, img Image) (*Trade, error) {
	trade, err := r.findAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"images": img},
			"$set":  bson.M{"updatedAt": img.UploadedAt},
		},
	)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound("trade")
	}
	return trade, err
}

func (r *Repository) UpdateDetails(ctx context.Context, id primitive.ObjectID, d Details, at time.Time) (*Trade, error) {
	set := bson.M{"updatedAt": at}
	if d.ItemOffered != nil {
		set["itemOffered"] = *d.ItemOffered
	}
	if d.ItemRequested != nil {
		set["itemRequested"] = *d.ItemRequested
	}
	if d.Description != nil {
		set["description"] = *d.Description
	}

	trade, err := r.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound("trade")
	}
	return trade, err
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("trade")
	}
	return nil
}
