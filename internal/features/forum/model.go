package forum

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryTradingTips    Category = "trading_tips"
	CategoryScammerReports Category = "scammer_reports"
	CategoryGameUpdates    Category = "game_updates"
	CategoryGeneral        Category = "general"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTradingTips, CategoryScammerReports, CategoryGameUpdates, CategoryGeneral:
		return true
	}
	return false
}

// Direction of a vote.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Image describes a file already stored by the upload service.
type Image struct {
	Filename     string `bson:"filename" json:"filename"`
	OriginalName string `bson:"originalName" json:"originalName"`
	Path         string `bson:"path" json:"path"`
	Size         int64  `bson:"size" json:"size"`
	Mimetype     string `bson:"mimetype" json:"mimetype"`
}

// Post represents a forum thread
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID  primitive.ObjectID `bson:"authorId" json:"authorId"`
	Category  Category           `bson:"category" json:"category"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Images    []Image            `bson:"images" json:"images"`
	Upvotes   int                `bson:"upvotes" json:"upvotes"`
	Downvotes int                `bson:"downvotes" json:"downvotes"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Comment represents a reply on a post
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	AuthorID  primitive.ObjectID `bson:"authorId" json:"authorId"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreatePostInput struct {
	AuthorID primitive.ObjectID
	Category Category
	Title    string
	Content  string
	Images   []Image
}

// CreatePostRequest represents the payload for starting a thread
type CreatePostRequest struct {
	Category Category `json:"category" binding:"required"`
	Title    string   `json:"title" binding:"required,max=255"`
	Content  string   `json:"content" binding:"required"`
	Images   []Image  `json:"images"`
}

// VoteRequest represents an up or down vote
type VoteRequest struct {
	Direction Direction `json:"direction" binding:"required,oneof=up down"`
}

// CreateCommentRequest represents the payload for replying to a post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}
