package models

import "time"

// ContributionStatus defines the moderation state of a contribution.
// Transitions are monotonic: pending -> approved or pending -> rejected,
// and a decided contribution never changes again.
type ContributionStatus string

const (
	ContributionStatusPending  ContributionStatus = "pending"
	ContributionStatusApproved ContributionStatus = "approved"
	ContributionStatusRejected ContributionStatus = "rejected"
)

// Contribution is a user-submitted candidate fact awaiting moderation.
type Contribution struct {
	ID              string             `gorm:"primaryKey;size:36" json:"id"`
	UserID          string             `gorm:"size:128;index;not null" json:"userId"`
	Title           string             `gorm:"not null" json:"title"`
	Content         string             `gorm:"type:text;not null" json:"content"`
	Category        KnowledgeCategory  `gorm:"type:varchar(50);not null" json:"category"`
	Source          string             `json:"source,omitempty"`
	IsAdultContent  bool               `gorm:"not null;default:false" json:"isAdultContent"`
	Status          ContributionStatus `gorm:"type:varchar(20);default:'pending';not null;index" json:"status"`
	CreatedAt       time.Time          `gorm:"index" json:"createdAt"`
	ApprovedAt      *time.Time         `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time         `json:"rejectedAt,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty"`
	KnowledgeID     string             `gorm:"size:36" json:"knowledgeId,omitempty"`
}

// TableName specifies the table name for the Contribution model.
func (Contribution) TableName() string {
	return "contributions"
}
