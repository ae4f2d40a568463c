package reports

import (
	"time"

	"github.com/xyz-asif/tradehub/internal/lifecycle"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is a moderation record filed by one user against another.
type Report struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	ReportedUserID  primitive.ObjectID     `bson:"reportedUserId" json:"reportedUserId"`
	ReportingUserID primitive.ObjectID     `bson:"reportingUserId" json:"reportingUserId"`
	Reason          string                 `bson:"reason" json:"reason"`
	Status          lifecycle.ReportStatus `bson:"status" json:"status"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// CreateReportRequest represents the payload for filing a report
type CreateReportRequest struct {
	ReportedUserID string `json:"reportedUserId" binding:"required"`
	Reason         string `json:"reason" binding:"required,max=1000"`
}
