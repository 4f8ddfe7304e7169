package models

import "time"

// FavoriteLink records that a user has saved a knowledge item. At most one
// link exists per (userId, knowledgeId) pair; creation and deletion are
// preceded by an existence check.
type FavoriteLink struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:128;index:idx_user_knowledge;not null" json:"userId"`
	KnowledgeID string    `gorm:"size:36;index:idx_user_knowledge;not null" json:"knowledgeId"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for the FavoriteLink model.
func (FavoriteLink) TableName() string {
	return "user_favorites"
}
