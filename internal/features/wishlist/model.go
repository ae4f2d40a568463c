package wishlist

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is an entry on a user's wishlist
// @Description Item a user wants to acquire
type Item struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id" example:"507f1f77bcf86cd799439011"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId" example:"507f1f77bcf86cd799439011"`
	ItemName  string             `bson:"itemName" json:"itemName" example:"Shadow Dragon"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt" example:"2023-01-01T00:00:00Z"`
}

// AddItemRequest represents the payload for adding a wishlist entry
type AddItemRequest struct {
	ItemName string `json:"itemName" binding:"required,max=255" example:"Shadow Dragon"`
}
