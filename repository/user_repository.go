package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CassioNunes77/randomly/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for interacting with user profiles.
type UserRepository interface {
	CreateUser(user *models.UserProfile) error
	GetUserByID(id string) (*models.UserProfile, error)
	ListNotifiable() ([]*models.UserProfile, error)
	IncrementContributionStats(userID string, contributions, points int) error
	UpdateDeviceToken(userID, token string) error
	SetNotificationsEnabled(userID string, enabled bool) error
	CountCreatedSince(since time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser inserts a new user profile.
func (r *userRepository) CreateUser(user *models.UserProfile) error {
	if user == nil {
		log.Printf("ERROR: [UserRepository] CreateUser: user cannot be nil")
		return errors.New("user cannot be nil")
	}
	if user.ID == "" {
		log.Printf("ERROR: [UserRepository] CreateUser: user ID (identity subject) cannot be empty")
		return errors.New("user ID cannot be empty")
	}
	if err := r.db.Create(user).Error; err != nil {
		log.Printf("ERROR: [UserRepository] Failed to create user %s: %v", user.ID, err)
		return fmt.Errorf("failed to create user %s: %w", user.ID, err)
	}
	log.Printf("INFO: [UserRepository] Created user profile %s.", user.ID)
	return nil
}

// GetUserByID retrieves a user profile by its subject ID. Returns (nil, nil) when absent.
func (r *userRepository) GetUserByID(id string) (*models.UserProfile, error) {
	if id == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	var user models.UserProfile
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [UserRepository] User with ID %s not found.", id)
			return nil, nil
		}
		log.Printf("ERROR: [UserRepository] Failed to retrieve user ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve user ID %s: %w", id, err)
	}
	return &user, nil
}

// ListNotifiable returns every user that opted in to notifications.
func (r *userRepository) ListNotifiable() ([]*models.UserProfile, error) {
	var users []*models.UserProfile
	if err := r.db.Where("notifications_enabled = ?", true).Find(&users).Error; err != nil {
		log.Printf("ERROR: [UserRepository] Failed to list notifiable users: %v", err)
		return nil, fmt.Errorf("failed to list notifiable users: %w", err)
	}
	return users, nil
}

// IncrementContributionStats atomically adds to a user's contribution count and points.
func (r *userRepository) IncrementContributionStats(userID string, contributions, points int) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}
	err := r.db.Model(&models.UserProfile{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"contribution_count": gorm.Expr("contribution_count + ?", contributions),
			"total_points":       gorm.Expr("total_points + ?", points),
		}).Error
	if err != nil {
		log.Printf("ERROR: [UserRepository] Failed to update contribution stats for user %s: %v", userID, err)
		return fmt.Errorf("failed to update contribution stats for user %s: %w", userID, err)
	}
	log.Printf("INFO: [UserRepository] Updated contribution stats for user %s (+%d contributions, +%d points).", userID, contributions, points)
	return nil
}

// UpdateDeviceToken stores the push token registered by a user's device.
func (r *userRepository) UpdateDeviceToken(userID, token string) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}
	err := r.db.Model(&models.UserProfile{}).
		Where("id = ?", userID).
		Update("fcm_token", token).Error
	if err != nil {
		log.Printf("ERROR: [UserRepository] Failed to update device token for user %s: %v", userID, err)
		return fmt.Errorf("failed to update device token for user %s: %w", userID, err)
	}
	return nil
}

// SetNotificationsEnabled flips the notification opt-in flag for a user.
func (r *userRepository) SetNotificationsEnabled(userID string, enabled bool) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}
	err := r.db.Model(&models.UserProfile{}).
		Where("id = ?", userID).
		Update("notifications_enabled", enabled).Error
	if err != nil {
		log.Printf("ERROR: [UserRepository] Failed to set notificationsEnabled=%t for user %s: %v", enabled, userID, err)
		return fmt.Errorf("failed to update notification preference for user %s: %w", userID, err)
	}
	return nil
}

// CountCreatedSince counts profiles created at or after the given instant.
func (r *userRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserProfile{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [UserRepository] Failed to count users created since %s: %v", since.Format(time.RFC3339), err)
		return 0, fmt.Errorf("failed to count new users: %w", err)
	}
	return count, nil
}
