package models

import "time"

// ReportedByAnonymous is recorded when an unauthenticated caller files a report.
const ReportedByAnonymous = "anonymous"

// Report is a user complaint about a knowledge item. Reports are write-once
// and purged after a 30-day retention window by the cleanup job.
type Report struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	KnowledgeID string    `gorm:"size:36;index;not null" json:"knowledgeId"`
	Reason      string    `gorm:"size:200;not null" json:"reason"`
	ReportedAt  time.Time `gorm:"index" json:"reportedAt"`
	ReportedBy  string    `gorm:"size:128" json:"reportedBy"`
}

// TableName specifies the table name for the Report model.
func (Report) TableName() string {
	return "reports"
}

// WeeklySummaryID is the fixed document id the weekly report job writes to.
// Each run overwrites the previous week's summary; no history is kept.
const WeeklySummaryID = "weekly"

// WeeklySummary aggregates activity over the trailing 7-day window.
type WeeklySummary struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	WeekOf            time.Time `json:"weekOf"`
	NewUsers          int64     `gorm:"not null" json:"newUsers"`
	NewContributions  int64     `gorm:"not null" json:"newContributions"`
	NewFavorites      int64     `gorm:"not null" json:"newFavorites"`
	NewReports        int64     `gorm:"not null" json:"newReports"`
	TopKnowledgeID    string    `gorm:"size:36" json:"topKnowledgeId,omitempty"`
	TopKnowledgeTitle string    `json:"topKnowledgeTitle,omitempty"`
	TopFavoriteCount  int       `json:"topFavoriteCount"`
	GeneratedAt       time.Time `json:"generatedAt"`
}

// TableName specifies the table name for the WeeklySummary model.
func (WeeklySummary) TableName() string {
	return "weekly_summaries"
}
