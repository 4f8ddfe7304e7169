package models

import "time"

// KnowledgeCategory defines the fixed set of categories a knowledge item can belong to.
// The values are the canonical labels stored in the database and shown to users.
type KnowledgeCategory string

const (
	CategoryScience       KnowledgeCategory = "Ciência"
	CategoryHistory       KnowledgeCategory = "História"
	CategoryNature        KnowledgeCategory = "Natureza"
	CategoryCulture       KnowledgeCategory = "Cultura"
	CategoryTechnology    KnowledgeCategory = "Tecnologia"
	CategoryHealth        KnowledgeCategory = "Saúde"
	CategoryEntertainment KnowledgeCategory = "Entretenimento"
	CategoryRandom        KnowledgeCategory = "Aleatório"
)

// AllCategories lists every valid category, in display order.
var AllCategories = []KnowledgeCategory{
	CategoryScience,
	CategoryHistory,
	CategoryNature,
	CategoryCulture,
	CategoryTechnology,
	CategoryHealth,
	CategoryEntertainment,
	CategoryRandom,
}

// IsValid reports whether c is one of the known categories.
func (c KnowledgeCategory) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// KnowledgeItem represents an approved, publishable fact shown to end users.
// Items are only ever created through contribution approval, never directly
// by a client.
type KnowledgeItem struct {
	ID             string            `gorm:"primaryKey;size:36" json:"id"`
	Title          string            `gorm:"not null" json:"title"`
	Content        string            `gorm:"type:text;not null" json:"content"`
	Category       KnowledgeCategory `gorm:"type:varchar(50);index;not null" json:"category"`
	Source         string            `json:"source,omitempty"`
	IsAdultContent bool              `gorm:"not null;default:false" json:"isAdultContent"`
	AuthorID       string            `gorm:"size:128;index" json:"authorId,omitempty"`
	AuthorName     string            `json:"authorName,omitempty"`
	CreatedAt      time.Time         `gorm:"index" json:"createdAt"`
	FavoriteCount  int               `gorm:"not null;default:0;index" json:"favoriteCount"`
	IsApproved     bool              `gorm:"not null;default:false;index" json:"isApproved"`
}

// TableName specifies the table name for the KnowledgeItem model.
func (KnowledgeItem) TableName() string {
	return "knowledge"
}

// RankingID is the fixed document id of the top-facts ranking entry.
const RankingID = "topFacts"

// Ranking is a single-row record tracking the knowledge item whose favorite
// count changed most recently. Overwritten on every favorite toggle.
type Ranking struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	KnowledgeID   string    `gorm:"size:36;not null" json:"knowledgeId"`
	FavoriteCount int       `gorm:"not null" json:"favoriteCount"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// TableName specifies the table name for the Ranking model.
func (Ranking) TableName() string {
	return "rankings"
}
