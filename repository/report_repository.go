package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CassioNunes77/randomly/models"

	"gorm.io/gorm"
)

// ReportRepository defines the interface for interacting with knowledge reports.
type ReportRepository interface {
	CreateReport(report *models.Report) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// CreateReport inserts a new report. Reports are write-once.
func (r *reportRepository) CreateReport(report *models.Report) error {
	if report == nil {
		log.Printf("ERROR: [ReportRepository] CreateReport: report cannot be nil")
		return errors.New("report cannot be nil")
	}
	if err := r.db.Create(report).Error; err != nil {
		log.Printf("ERROR: [ReportRepository] Failed to create report for knowledge %s: %v", report.KnowledgeID, err)
		return fmt.Errorf("failed to create report for knowledge %s: %w", report.KnowledgeID, err)
	}
	log.Printf("INFO: [ReportRepository] Created report ID %s for knowledge %s.", report.ID, report.KnowledgeID)
	return nil
}

// DeleteOlderThan permanently removes every report reported strictly before
// the cutoff and returns how many were removed. A report reported exactly at
// the cutoff is kept.
func (r *reportRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("reported_at < ?", cutoff).Delete(&models.Report{})
	if result.Error != nil {
		log.Printf("ERROR: [ReportRepository] Failed to delete reports older than %s: %v", cutoff.Format(time.RFC3339), result.Error)
		return 0, fmt.Errorf("failed to delete old reports: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CountCreatedSince counts reports filed at or after the given instant.
func (r *reportRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("reported_at >= ?", since).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [ReportRepository] Failed to count reports created since %s: %v", since.Format(time.RFC3339), err)
		return 0, fmt.Errorf("failed to count new reports: %w", err)
	}
	return count, nil
}
