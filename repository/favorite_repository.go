package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CassioNunes77/randomly/models"

	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for interacting with favorite links.
type FavoriteRepository interface {
	GetFavorite(userID, knowledgeID string) (*models.FavoriteLink, error)
	CreateFavorite(favorite *models.FavoriteLink) error
	DeleteFavorite(id string) error
	ListByUser(userID string) ([]*models.FavoriteLink, error)
	CountCreatedSince(since time.Time) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new instance of FavoriteRepository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// GetFavorite retrieves the link for a (userID, knowledgeID) pair.
// Returns (nil, nil) when the pair is not favorited.
func (r *favoriteRepository) GetFavorite(userID, knowledgeID string) (*models.FavoriteLink, error) {
	if userID == "" || knowledgeID == "" {
		return nil, errors.New("user ID and knowledge ID cannot be empty")
	}
	var favorite models.FavoriteLink
	err := r.db.First(&favorite, "user_id = ? AND knowledge_id = ?", userID, knowledgeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [FavoriteRepository] Failed to look up favorite for user %s / knowledge %s: %v", userID, knowledgeID, err)
		return nil, fmt.Errorf("failed to look up favorite: %w", err)
	}
	return &favorite, nil
}

// CreateFavorite inserts a new favorite link.
func (r *favoriteRepository) CreateFavorite(favorite *models.FavoriteLink) error {
	if favorite == nil {
		log.Printf("ERROR: [FavoriteRepository] CreateFavorite: favorite cannot be nil")
		return errors.New("favorite cannot be nil")
	}
	if err := r.db.Create(favorite).Error; err != nil {
		log.Printf("ERROR: [FavoriteRepository] Failed to create favorite for user %s / knowledge %s: %v", favorite.UserID, favorite.KnowledgeID, err)
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	log.Printf("INFO: [FavoriteRepository] User %s favorited knowledge %s.", favorite.UserID, favorite.KnowledgeID)
	return nil
}

// DeleteFavorite removes a favorite link by its ID.
func (r *favoriteRepository) DeleteFavorite(id string) error {
	if id == "" {
		return errors.New("favorite ID cannot be empty")
	}
	if err := r.db.Delete(&models.FavoriteLink{}, "id = ?", id).Error; err != nil {
		log.Printf("ERROR: [FavoriteRepository] Failed to delete favorite %s: %v", id, err)
		return fmt.Errorf("failed to delete favorite %s: %w", id, err)
	}
	return nil
}

// ListByUser retrieves every favorite link of a user, newest first.
func (r *favoriteRepository) ListByUser(userID string) ([]*models.FavoriteLink, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	var favorites []*models.FavoriteLink
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&favorites).Error
	if err != nil {
		log.Printf("ERROR: [FavoriteRepository] Failed to list favorites for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list favorites for user %s: %w", userID, err)
	}
	return favorites, nil
}

// CountCreatedSince counts favorite links created at or after the given instant.
func (r *favoriteRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.FavoriteLink{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [FavoriteRepository] Failed to count favorites created since %s: %v", since.Format(time.RFC3339), err)
		return 0, fmt.Errorf("failed to count new favorites: %w", err)
	}
	return count, nil
}
