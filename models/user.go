package models

import "time"

// UserProfile represents an application user. The ID is the subject id issued
// by the identity provider; profiles are created lazily on first sign-in.
type UserProfile struct {
	ID                   string    `gorm:"primaryKey;size:128" json:"id"`
	Name                 string    `gorm:"not null" json:"name"`
	Email                string    `gorm:"index" json:"email"`
	ProfileImageURL      string    `json:"profileImageURL,omitempty"`
	FavoriteCount        int       `gorm:"not null;default:0" json:"favoriteCount"`
	ContributionCount    int       `gorm:"not null;default:0" json:"contributionCount"`
	TotalPoints          int       `gorm:"not null;default:0" json:"totalPoints"`
	CreatedAt            time.Time `gorm:"index" json:"createdAt"`
	FCMToken             string    `gorm:"column:fcm_token" json:"-"`
	NotificationsEnabled bool      `gorm:"not null;default:false;index" json:"notificationsEnabled"`
	IsAdmin              bool      `gorm:"not null;default:false" json:"isAdmin"`
}

// TableName specifies the table name for the UserProfile model.
func (UserProfile) TableName() string {
	return "users"
}
