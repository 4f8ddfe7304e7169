package services

import (
	"fmt"
	"log"
	"time"

	"github.com/CassioNunes77/randomly/models"
	"github.com/CassioNunes77/randomly/repository"
	"github.com/CassioNunes77/randomly/utils"

	"github.com/google/uuid"
)

// KnowledgeService is the read/favorite surface the mobile client consumes:
// random item loading, favorites listing, and the favorite toggle.
type KnowledgeService interface {
	RandomKnowledge(category models.KnowledgeCategory) (*models.KnowledgeItem, error)
	FavoritesForUser(userID string) ([]*models.KnowledgeItem, error)
	ToggleFavorite(userID, knowledgeID string) (bool, error)
}

type knowledgeService struct {
	knowledgeRepo repository.KnowledgeRepository
	favoriteRepo  repository.FavoriteRepository
	statsRepo     repository.StatsRepository
}

// NewKnowledgeService creates the client data access service.
func NewKnowledgeService(
	knowledgeRepo repository.KnowledgeRepository,
	favoriteRepo repository.FavoriteRepository,
	statsRepo repository.StatsRepository,
) KnowledgeService {
	return &knowledgeService{
		knowledgeRepo: knowledgeRepo,
		favoriteRepo:  favoriteRepo,
		statsRepo:     statsRepo,
	}
}

// RandomKnowledge returns one approved item picked uniformly at random,
// optionally restricted to a category.
func (s *knowledgeService) RandomKnowledge(category models.KnowledgeCategory) (*models.KnowledgeItem, error) {
	item, err := s.knowledgeRepo.RandomApproved(category)
	if err != nil {
		return nil, fmt.Errorf("random knowledge: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("approved knowledge: %w", utils.ErrNotFound)
	}
	return item, nil
}

// FavoritesForUser resolves the user's favorite links into knowledge items,
// newest favorite first.
func (s *knowledgeService) FavoritesForUser(userID string) ([]*models.KnowledgeItem, error) {
	links, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("favorites for user %s: %w", userID, err)
	}
	if len(links) == 0 {
		return []*models.KnowledgeItem{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.KnowledgeID)
	}
	items, err := s.knowledgeRepo.GetKnowledgeByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("favorites for user %s: %w", userID, err)
	}

	// Preserve the link ordering (newest favorite first).
	byID := make(map[string]*models.KnowledgeItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	ordered := make([]*models.KnowledgeItem, 0, len(items))
	for _, link := range links {
		if item, ok := byID[link.KnowledgeID]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}

// ToggleFavorite flips the favorite state for a (user, knowledge) pair and
// adjusts the item's favorite counter. Returns whether the item is favorited
// after the call.
//
// This is a check-then-act sequence without mutual exclusion: concurrent
// duplicate toggles for the same pair can drift favoriteCount from the true
// link count.
func (s *knowledgeService) ToggleFavorite(userID, knowledgeID string) (bool, error) {
	item, err := s.knowledgeRepo.GetKnowledgeByID(knowledgeID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	if item == nil {
		return false, fmt.Errorf("knowledge %s: %w", knowledgeID, utils.ErrNotFound)
	}

	existing, err := s.favoriteRepo.GetFavorite(userID, knowledgeID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	var favorited bool
	if existing != nil {
		if err := s.favoriteRepo.DeleteFavorite(existing.ID); err != nil {
			return false, fmt.Errorf("toggle favorite: %w", err)
		}
		if err := s.knowledgeRepo.IncrementFavoriteCount(knowledgeID, -1); err != nil {
			return false, fmt.Errorf("toggle favorite: %w", err)
		}
		favorited = false
	} else {
		favorite := &models.FavoriteLink{
			ID:          uuid.NewString(),
			UserID:      userID,
			KnowledgeID: knowledgeID,
			CreatedAt:   time.Now(),
		}
		if err := s.favoriteRepo.CreateFavorite(favorite); err != nil {
			return false, fmt.Errorf("toggle favorite: %w", err)
		}
		if err := s.knowledgeRepo.IncrementFavoriteCount(knowledgeID, 1); err != nil {
			return false, fmt.Errorf("toggle favorite: %w", err)
		}
		favorited = true
	}

	s.refreshRanking(knowledgeID)
	return favorited, nil
}

// refreshRanking overwrites the top-facts ranking entry with the item's
// current counter. Best-effort; the toggle has already succeeded.
func (s *knowledgeService) refreshRanking(knowledgeID string) {
	item, err := s.knowledgeRepo.GetKnowledgeByID(knowledgeID)
	if err != nil || item == nil {
		log.Printf("WARN: [KnowledgeService] Skipping ranking refresh for knowledge %s: %v", knowledgeID, err)
		return
	}
	ranking := &models.Ranking{
		ID:            models.RankingID,
		KnowledgeID:   item.ID,
		FavoriteCount: item.FavoriteCount,
		LastUpdated:   time.Now(),
	}
	if err := s.statsRepo.UpsertRanking(ranking); err != nil {
		log.Printf("WARN: [KnowledgeService] Failed to refresh ranking for knowledge %s: %v", knowledgeID, err)
	}
}
