package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CassioNunes77/randomly/models"

	"gorm.io/gorm"
)

// KnowledgeRepository defines the interface for interacting with approved knowledge items.
type KnowledgeRepository interface {
	CreateKnowledge(item *models.KnowledgeItem) error
	GetKnowledgeByID(id string) (*models.KnowledgeItem, error)
	GetKnowledgeByIDs(ids []string) ([]*models.KnowledgeItem, error)
	RandomApproved(category models.KnowledgeCategory) (*models.KnowledgeItem, error)
	IncrementFavoriteCount(id string, delta int) error
	TopByFavoritesSince(since time.Time) (*models.KnowledgeItem, error)
}

type knowledgeRepository struct {
	db *gorm.DB
}

// NewKnowledgeRepository creates a new instance of KnowledgeRepository.
func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

// CreateKnowledge inserts a new knowledge item.
func (r *knowledgeRepository) CreateKnowledge(item *models.KnowledgeItem) error {
	if item == nil {
		log.Printf("ERROR: [KnowledgeRepository] CreateKnowledge: item cannot be nil")
		return errors.New("knowledge item cannot be nil")
	}
	if err := r.db.Create(item).Error; err != nil {
		log.Printf("ERROR: [KnowledgeRepository] Failed to create knowledge item '%s': %v", item.Title, err)
		return fmt.Errorf("failed to create knowledge item '%s': %w", item.Title, err)
	}
	log.Printf("INFO: [KnowledgeRepository] Created knowledge item ID %s ('%s').", item.ID, item.Title)
	return nil
}

// GetKnowledgeByID retrieves a knowledge item by its ID. Returns (nil, nil) when absent.
func (r *knowledgeRepository) GetKnowledgeByID(id string) (*models.KnowledgeItem, error) {
	var item models.KnowledgeItem
	err := r.db.First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [KnowledgeRepository] Knowledge item with ID %s not found.", id)
			return nil, nil
		}
		log.Printf("ERROR: [KnowledgeRepository] Failed to retrieve knowledge item ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve knowledge item ID %s: %w", id, err)
	}
	return &item, nil
}

// GetKnowledgeByIDs retrieves all knowledge items whose IDs are in the given list.
func (r *knowledgeRepository) GetKnowledgeByIDs(ids []string) ([]*models.KnowledgeItem, error) {
	if len(ids) == 0 {
		return []*models.KnowledgeItem{}, nil
	}
	var items []*models.KnowledgeItem
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		log.Printf("ERROR: [KnowledgeRepository] Failed to retrieve %d knowledge items by ID: %v", len(ids), err)
		return nil, fmt.Errorf("failed to retrieve knowledge items by id: %w", err)
	}
	return items, nil
}

// RandomApproved picks one approved knowledge item uniformly at random,
// optionally restricted to a category. Returns (nil, nil) when no approved
// item exists.
func (r *knowledgeRepository) RandomApproved(category models.KnowledgeCategory) (*models.KnowledgeItem, error) {
	var item models.KnowledgeItem
	query := r.db.Where("is_approved = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("RANDOM()").First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [KnowledgeRepository] No approved knowledge available (category filter: '%s').", category)
			return nil, nil
		}
		log.Printf("ERROR: [KnowledgeRepository] Failed to pick random approved knowledge: %v", err)
		return nil, fmt.Errorf("failed to pick random approved knowledge: %w", err)
	}
	return &item, nil
}

// IncrementFavoriteCount atomically adjusts the favorite counter of a knowledge item.
func (r *knowledgeRepository) IncrementFavoriteCount(id string, delta int) error {
	if id == "" {
		log.Printf("ERROR: [KnowledgeRepository] IncrementFavoriteCount: id cannot be empty")
		return errors.New("knowledge id cannot be empty")
	}
	err := r.db.Model(&models.KnowledgeItem{}).
		Where("id = ?", id).
		UpdateColumn("favorite_count", gorm.Expr("favorite_count + ?", delta)).Error
	if err != nil {
		log.Printf("ERROR: [KnowledgeRepository] Failed to adjust favorite count for knowledge ID %s by %d: %v", id, delta, err)
		return fmt.Errorf("failed to adjust favorite count for knowledge ID %s: %w", id, err)
	}
	return nil
}

// TopByFavoritesSince returns the highest-favoriteCount knowledge item created
// at or after the given instant. Returns (nil, nil) when no item qualifies.
func (r *knowledgeRepository) TopByFavoritesSince(since time.Time) (*models.KnowledgeItem, error) {
	var item models.KnowledgeItem
	err := r.db.Where("created_at >= ?", since).
		Order("favorite_count desc").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [KnowledgeRepository] Failed to retrieve top knowledge since %s: %v", since.Format(time.RFC3339), err)
		return nil, fmt.Errorf("failed to retrieve top knowledge: %w", err)
	}
	return &item, nil
}
