package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/CassioNunes77/randomly/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsRepository defines the interface for the fixed-id aggregate documents:
// the weekly activity summary and the top-facts ranking entry.
type StatsRepository interface {
	SaveWeeklySummary(summary *models.WeeklySummary) error
	UpsertRanking(ranking *models.Ranking) error
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// SaveWeeklySummary writes the weekly summary, overwriting the previous one
// stored under the same fixed id.
func (r *statsRepository) SaveWeeklySummary(summary *models.WeeklySummary) error {
	if summary == nil {
		log.Printf("ERROR: [StatsRepository] SaveWeeklySummary: summary cannot be nil")
		return errors.New("summary cannot be nil")
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(summary).Error
	if err != nil {
		log.Printf("ERROR: [StatsRepository] Failed to save weekly summary: %v", err)
		return fmt.Errorf("failed to save weekly summary: %w", err)
	}
	log.Printf("INFO: [StatsRepository] Saved weekly summary (week of %s).", summary.WeekOf.Format("2006-01-02"))
	return nil
}

// UpsertRanking overwrites the single top-facts ranking entry.
func (r *statsRepository) UpsertRanking(ranking *models.Ranking) error {
	if ranking == nil {
		log.Printf("ERROR: [StatsRepository] UpsertRanking: ranking cannot be nil")
		return errors.New("ranking cannot be nil")
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(ranking).Error
	if err != nil {
		log.Printf("ERROR: [StatsRepository] Failed to upsert ranking for knowledge %s: %v", ranking.KnowledgeID, err)
		return fmt.Errorf("failed to upsert ranking: %w", err)
	}
	return nil
}
