package trades

import (
	"time"

	"github.com/xyz-asif/tradehub/internal/lifecycle"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is an attachment whose bytes live with the upload provider.
type Image struct {
	URL        string    `bson:"url" json:"url"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Trade represents an item swap listing
type Trade struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	OwnerID       primitive.ObjectID    `bson:"ownerId" json:"ownerId"`
	ItemOffered   string                `bson:"itemOffered" json:"itemOffered"`
	ItemRequested string                `bson:"itemRequested" json:"itemRequested"`
	Description   string                `bson:"description" json:"description"`
	Status        lifecycle.TradeStatus `bson:"status" json:"status"`
	Images        []Image               `bson:"images" json:"images"`
	CreatedAt     time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt" json:"updatedAt"`
}

type CreateTradeInput struct {
	OwnerID       primitive.ObjectID
	ItemOffered   string
	ItemRequested string
	Description   string
}

// Details holds the editable listing text; nil fields are left alone.
type Details struct {
	ItemOffered   *string
	ItemRequested *string
	Description   *string
}

// CreateTradeRequest represents the payload for creating a trade
type CreateTradeRequest struct {
	ItemOffered   string `json:"itemOffered" binding:"required"`
	ItemRequested string `json:"itemRequested"`
	Description   string `json:"description"`
}

// UpdateTradeRequest represents the payload for editing a trade
type UpdateTradeRequest struct {
	ItemOffered   *string `json:"itemOffered"`
	ItemRequested *string `json:"itemRequested"`
	Description   *string `json:"description"`
}

// TransitionRequest asks for a status change
type TransitionRequest struct {
	Status lifecycle.TradeStatus `json:"status" binding:"required"`
}

// AttachImageRequest references an already uploaded image
type AttachImageRequest struct {
	URL string `json:"url" binding:"required"`
}
