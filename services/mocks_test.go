package services

import (
	"time"

	"github.com/CassioNunes77/randomly/models"

	"github.com/stretchr/testify/mock"
)

// MockKnowledgeRepository is a mock type for the KnowledgeRepository interface
type MockKnowledgeRepository struct {
	mock.Mock
}

func (m *MockKnowledgeRepository) CreateKnowledge(item *models.KnowledgeItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockKnowledgeRepository) GetKnowledgeByID(id string) (*models.KnowledgeItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KnowledgeItem), args.Error(1)
}

func (m *MockKnowledgeRepository) GetKnowledgeByIDs(ids []string) ([]*models.KnowledgeItem, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.KnowledgeItem), args.Error(1)
}

func (m *MockKnowledgeRepository) RandomApproved(category models.KnowledgeCategory) (*models.KnowledgeItem, error) {
	args := m.Called(category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KnowledgeItem), args.Error(1)
}

func (m *MockKnowledgeRepository) IncrementFavoriteCount(id string, delta int) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

func (m *MockKnowledgeRepository) TopByFavoritesSince(since time.Time) (*models.KnowledgeItem, error) {
	args := m.Called(since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KnowledgeItem), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.UserProfile) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(id string) (*models.UserProfile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserRepository) ListNotifiable() ([]*models.UserProfile, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserProfile), args.Error(1)
}

func (m *MockUserRepository) IncrementContributionStats(userID string, contributions, points int) error {
	args := m.Called(userID, contributions, points)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateDeviceToken(userID, token string) error {
	args := m.Called(userID, token)
	return args.Error(0)
}

func (m *MockUserRepository) SetNotificationsEnabled(userID string, enabled bool) error {
	args := m.Called(userID, enabled)
	return args.Error(0)
}

func (m *MockUserRepository) CountCreatedSince(since time.Time) (int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Error(1)
}

// MockContributionRepository is a mock type for the ContributionRepository interface
type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) CreateContribution(contribution *models.Contribution) error {
	args := m.Called(contribution)
	return args.Error(0)
}

func (m *MockContributionRepository) GetContributionByID(id string) (*models.Contribution, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contribution), args.Error(1)
}

func (m *MockContributionRepository) GetContributionsByUserID(userID string) ([]*models.Contribution, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contribution), args.Error(1)
}

func (m *MockContributionRepository) MarkApproved(id, knowledgeID string, at time.Time) error {
	args := m.Called(id, knowledgeID, at)
	return args.Error(0)
}

func (m *MockContributionRepository) MarkRejected(id, reason string, at time.Time) error {
	args := m.Called(id, reason, at)
	return args.Error(0)
}

func (m *MockContributionRepository) CountCreatedSince(since time.Time) (int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Error(1)
}

// MockFavoriteRepository is a mock type for the FavoriteRepository interface
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) GetFavorite(userID, knowledgeID string) (*models.FavoriteLink, error) {
	args := m.Called(userID, knowledgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoriteLink), args.Error(1)
}

func (m *MockFavoriteRepository) CreateFavorite(favorite *models.FavoriteLink) error {
	args := m.Called(favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) DeleteFavorite(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByUser(userID string) ([]*models.FavoriteLink, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FavoriteLink), args.Error(1)
}

func (m *MockFavoriteRepository) CountCreatedSince(since time.Time) (int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Error(1)
}

// MockReportRepository is a mock type for the ReportRepository interface
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) CreateReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockReportRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) CountCreatedSince(since time.Time) (int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Error(1)
}

// MockStatsRepository is a mock type for the StatsRepository interface
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) SaveWeeklySummary(summary *models.WeeklySummary) error {
	args := m.Called(summary)
	return args.Error(0)
}

func (m *MockStatsRepository) UpsertRanking(ranking *models.Ranking) error {
	args := m.Called(ranking)
	return args.Error(0)
}

// MockNotificationService is a mock type for the NotificationService interface
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendPush(token, title, body string, data map[string]string) {
	m.Called(token, title, body, data)
}

func (m *MockNotificationService) SendAdminEmail(subject, htmlBody string) {
	m.Called(subject, htmlBody)
}
