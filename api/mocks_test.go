package api

import (
	"github.com/CassioNunes77/randomly/models"

	"github.com/stretchr/testify/mock"
)

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) SubmitContribution(userID, title, content string, category models.KnowledgeCategory, source string, isAdultContent bool) (*models.Contribution, error) {
	args := m.Called(userID, title, content, category, source, isAdultContent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contribution), args.Error(1)
}

func (m *MockModerationService) ApproveContribution(adminID, contributionID string) (string, error) {
	args := m.Called(adminID, contributionID)
	return args.String(0), args.Error(1)
}

func (m *MockModerationService) RejectContribution(adminID, contributionID, reason string) error {
	args := m.Called(adminID, contributionID, reason)
	return args.Error(0)
}

func (m *MockModerationService) ReportKnowledge(knowledgeID, reason, reportedBy string) (*models.Report, error) {
	args := m.Called(knowledgeID, reason, reportedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

type MockKnowledgeService struct {
	mock.Mock
}

func (m *MockKnowledgeService) RandomKnowledge(category models.KnowledgeCategory) (*models.KnowledgeItem, error) {
	args := m.Called(category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KnowledgeItem), args.Error(1)
}

func (m *MockKnowledgeService) FavoritesForUser(userID string) ([]*models.KnowledgeItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.KnowledgeItem), args.Error(1)
}

func (m *MockKnowledgeService) ToggleFavorite(userID, knowledgeID string) (bool, error) {
	args := m.Called(userID, knowledgeID)
	return args.Bool(0), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) EnsureProfile(userID, name, email, profileImageURL string) (*models.UserProfile, error) {
	args := m.Called(userID, name, email, profileImageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserService) UpdateDeviceToken(userID, token string) error {
	args := m.Called(userID, token)
	return args.Error(0)
}

func (m *MockUserService) SetNotificationsEnabled(userID string, enabled bool) error {
	args := m.Called(userID, enabled)
	return args.Error(0)
}
