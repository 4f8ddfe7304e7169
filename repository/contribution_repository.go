package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CassioNunes77/randomly/models"

	"gorm.io/gorm"
)

// ContributionRepository defines the interface for interacting with user contributions.
type ContributionRepository interface {
	CreateContribution(contribution *models.Contribution) error
	GetContributionByID(id string) (*models.Contribution, error)
	GetContributionsByUserID(userID string) ([]*models.Contribution, error)
	MarkApproved(id, knowledgeID string, at time.Time) error
	MarkRejected(id, reason string, at time.Time) error
	CountCreatedSince(since time.Time) (int64, error)
}

type contributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository creates a new instance of ContributionRepository.
func NewContributionRepository(db *gorm.DB) ContributionRepository {
	return &contributionRepository{db: db}
}

// CreateContribution inserts a new pending contribution.
func (r *contributionRepository) CreateContribution(contribution *models.Contribution) error {
	if contribution == nil {
		log.Printf("ERROR: [ContributionRepository] CreateContribution: contribution cannot be nil")
		return errors.New("contribution cannot be nil")
	}
	if err := r.db.Create(contribution).Error; err != nil {
		log.Printf("ERROR: [ContributionRepository] Failed to create contribution for user %s: %v", contribution.UserID, err)
		return fmt.Errorf("failed to create contribution for user %s: %w", contribution.UserID, err)
	}
	log.Printf("INFO: [ContributionRepository] Created contribution ID %s ('%s') for user %s.", contribution.ID, contribution.Title, contribution.UserID)
	return nil
}

// GetContributionByID retrieves a contribution by its ID. Returns (nil, nil) when absent.
func (r *contributionRepository) GetContributionByID(id string) (*models.Contribution, error) {
	var contribution models.Contribution
	err := r.db.First(&contribution, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [ContributionRepository] Contribution with ID %s not found.", id)
			return nil, nil
		}
		log.Printf("ERROR: [ContributionRepository] Failed to retrieve contribution ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve contribution ID %s: %w", id, err)
	}
	return &contribution, nil
}

// GetContributionsByUserID retrieves a user's contributions, newest first.
func (r *contributionRepository) GetContributionsByUserID(userID string) ([]*models.Contribution, error) {
	var contributions []*models.Contribution
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&contributions).Error
	if err != nil {
		log.Printf("ERROR: [ContributionRepository] Failed to retrieve contributions for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to retrieve contributions for user %s: %w", userID, err)
	}
	return contributions, nil
}

// MarkApproved records the terminal approved state and the back-reference to
// the knowledge item created from this contribution.
func (r *contributionRepository) MarkApproved(id, knowledgeID string, at time.Time) error {
	err := r.db.Model(&models.Contribution{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.ContributionStatusApproved,
			"approved_at":  at,
			"knowledge_id": knowledgeID,
		}).Error
	if err != nil {
		log.Printf("ERROR: [ContributionRepository] Failed to mark contribution %s approved: %v", id, err)
		return fmt.Errorf("failed to mark contribution %s approved: %w", id, err)
	}
	log.Printf("INFO: [ContributionRepository] Contribution %s approved (knowledge ID %s).", id, knowledgeID)
	return nil
}

// MarkRejected records the terminal rejected state and the reason given by the admin.
func (r *contributionRepository) MarkRejected(id, reason string, at time.Time) error {
	err := r.db.Model(&models.Contribution{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           models.ContributionStatusRejected,
			"rejected_at":      at,
			"rejection_reason": reason,
		}).Error
	if err != nil {
		log.Printf("ERROR: [ContributionRepository] Failed to mark contribution %s rejected: %v", id, err)
		return fmt.Errorf("failed to mark contribution %s rejected: %w", id, err)
	}
	log.Printf("INFO: [ContributionRepository] Contribution %s rejected.", id)
	return nil
}

// CountCreatedSince counts contributions created at or after the given instant.
func (r *contributionRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Contribution{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [ContributionRepository] Failed to count contributions created since %s: %v", since.Format(time.RFC3339), err)
		return 0, fmt.Errorf("failed to count new contributions: %w", err)
	}
	return count, nil
}
