package services

import (
	"sync"
	"testing"
	"time"

	"github.com/CassioNunes77/randomly/config"
	"github.com/CassioNunes77/randomly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSchedulerFixture() (*MockUserRepository, *MockKnowledgeRepository, *MockContributionRepository, *MockFavoriteRepository, *MockReportRepository, *MockStatsRepository, *MockNotificationService, SchedulerService) {
	userRepo := new(MockUserRepository)
	knowledgeRepo := new(MockKnowledgeRepository)
	contributionRepo := new(MockContributionRepository)
	favoriteRepo := new(MockFavoriteRepository)
	reportRepo := new(MockReportRepository)
	statsRepo := new(MockStatsRepository)
	notifier := new(MockNotificationService)
	service := NewSchedulerService(userRepo, knowledgeRepo, contributionRepo,
		favoriteRepo, reportRepo, statsRepo, notifier, config.ScheduleConfig{
			Timezone:         "America/Sao_Paulo",
			DailyDigestSpec:  "0 9,15 * * *",
			WeeklyReportSpec: "0 9 * * 1",
			CleanupSpec:      "0 2 * * 0",
		})
	return userRepo, knowledgeRepo, contributionRepo, favoriteRepo, reportRepo, statsRepo, notifier, service
}

func TestSchedulerService_RunDailyDigest(t *testing.T) {
	t.Run("Completes with no sends when no user enabled notifications", func(t *testing.T) {
		userRepo, knowledgeRepo, _, _, _, _, notifier, service := newSchedulerFixture()

		userRepo.On("ListNotifiable").Return([]*models.UserProfile{}, nil).Once()

		err := service.RunDailyDigest()

		assert.NoError(t, err)
		knowledgeRepo.AssertNotCalled(t, "RandomApproved", mock.Anything)
		notifier.AssertNotCalled(t, "SendPush", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Completes without error when no approved knowledge exists", func(t *testing.T) {
		userRepo, knowledgeRepo, _, _, _, _, notifier, service := newSchedulerFixture()

		userRepo.On("ListNotifiable").Return([]*models.UserProfile{
			{ID: "user-1", FCMToken: "token-1", NotificationsEnabled: true},
		}, nil).Once()
		knowledgeRepo.On("RandomApproved", models.KnowledgeCategory("")).Return(nil, nil).Once()

		err := service.RunDailyDigest()

		assert.NoError(t, err)
		notifier.AssertNotCalled(t, "SendPush", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fans out one push per eligible user, skipping users without tokens", func(t *testing.T) {
		userRepo, knowledgeRepo, _, _, _, _, notifier, service := newSchedulerFixture()

		users := []*models.UserProfile{
			{ID: "user-1", FCMToken: "token-1", NotificationsEnabled: true},
			{ID: "user-2", FCMToken: "", NotificationsEnabled: true},
			{ID: "user-3", FCMToken: "token-3", NotificationsEnabled: true},
		}
		item := &models.KnowledgeItem{ID: "know-1", Title: "Fato do dia", Category: models.CategoryScience, IsApproved: true}

		userRepo.On("ListNotifiable").Return(users, nil).Once()
		knowledgeRepo.On("RandomApproved", models.KnowledgeCategory("")).Return(item, nil).Once()

		var mu sync.Mutex
		var tokens []string
		notifier.On("SendPush", mock.AnythingOfType("string"), "🤓 Novo Conhecimento Aleatório!", "Fato do dia",
			mock.MatchedBy(func(data map[string]string) bool {
				return data["knowledgeId"] == "know-1" && data["category"] == string(models.CategoryScience)
			})).Run(func(args mock.Arguments) {
			mu.Lock()
			tokens = append(tokens, args.String(0))
			mu.Unlock()
		}).Twice()

		err := service.RunDailyDigest()

		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"token-1", "token-3"}, tokens)
		notifier.AssertExpectations(t)
	})
}

func TestSchedulerService_RunWeeklyReport(t *testing.T) {
	t.Run("Writes a zeroed summary with no top item when nothing qualifies", func(t *testing.T) {
		userRepo, knowledgeRepo, contributionRepo, favoriteRepo, reportRepo, statsRepo, _, service := newSchedulerFixture()

		userRepo.On("CountCreatedSince", mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
		contributionRepo.On("CountCreatedSince", mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
		favoriteRepo.On("CountCreatedSince", mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
		reportRepo.On("CountCreatedSince", mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
		knowledgeRepo.On("TopByFavoritesSince", mock.AnythingOfType("time.Time")).Return(nil, nil).Once()
		statsRepo.On("SaveWeeklySummary", mock.MatchedBy(func(s *models.WeeklySummary) bool {
			return s.ID == models.WeeklySummaryID &&
				s.NewUsers == 0 && s.NewContributions == 0 &&
				s.NewFavorites == 0 && s.NewReports == 0 &&
				s.TopKnowledgeID == "" && s.TopFavoriteCount == 0
		})).Return(nil).Once()

		err := service.RunWeeklyReport()

		assert.NoError(t, err)
		statsRepo.AssertExpectations(t)
	})

	t.Run("Records counts and the week's top knowledge item", func(t *testing.T) {
		userRepo, knowledgeRepo, contributionRepo, favoriteRepo, reportRepo, statsRepo, _, service := newSchedulerFixture()

		top := &models.KnowledgeItem{ID: "know-9", Title: "Campeão da semana", FavoriteCount: 42}

		userRepo.On("CountCreatedSince", mock.AnythingOfType("time.Time")).Return(int64(5), nil).Once()
		contributionRepo.On("CountCreatedSince", mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()
		favoriteRepo.On("CountCreatedSince", mock.AnythingOfType("time.Time")).Return(int64(17), nil).Once()
		reportRepo.On("CountCreatedSince", mock.AnythingOfType("time.Time")).Return(int64(1), nil).Once()
		knowledgeRepo.On("TopByFavoritesSince", mock.AnythingOfType("time.Time")).Return(top, nil).Once()
		statsRepo.On("SaveWeeklySummary", mock.MatchedBy(func(s *models.WeeklySummary) bool {
			return s.NewUsers == 5 && s.NewContributions == 3 &&
				s.NewFavorites == 17 && s.NewReports == 1 &&
				s.TopKnowledgeID == "know-9" && s.TopFavoriteCount == 42
		})).Return(nil).Once()

		err := service.RunWeeklyReport()

		assert.NoError(t, err)
		statsRepo.AssertExpectations(t)
	})

	t.Run("All four count queries use the same trailing 7-day window", func(t *testing.T) {
		userRepo, knowledgeRepo, contributionRepo, favoriteRepo, reportRepo, statsRepo, _, service := newSchedulerFixture()

		inWindow := func(since time.Time) bool {
			expected := time.Now().Add(-7 * 24 * time.Hour)
			diff := since.Sub(expected)
			return diff > -time.Minute && diff < time.Minute
		}
		userRepo.On("CountCreatedSince", mock.MatchedBy(inWindow)).Return(int64(0), nil).Once()
		contributionRepo.On("CountCreatedSince", mock.MatchedBy(inWindow)).Return(int64(0), nil).Once()
		favoriteRepo.On("CountCreatedSince", mock.MatchedBy(inWindow)).Return(int64(0), nil).Once()
		reportRepo.On("CountCreatedSince", mock.MatchedBy(inWindow)).Return(int64(0), nil).Once()
		knowledgeRepo.On("TopByFavoritesSince", mock.MatchedBy(inWindow)).Return(nil, nil).Once()
		statsRepo.On("SaveWeeklySummary", mock.AnythingOfType("*models.WeeklySummary")).Return(nil).Once()

		assert.NoError(t, service.RunWeeklyReport())
	})
}

func TestSchedulerService_RunCleanup(t *testing.T) {
	t.Run("Deletes reports strictly older than 30 days", func(t *testing.T) {
		_, _, _, _, reportRepo, _, _, service := newSchedulerFixture()

		reportRepo.On("DeleteOlderThan", mock.MatchedBy(func(cutoff time.Time) bool {
			expected := time.Now().Add(-30 * 24 * time.Hour)
			diff := cutoff.Sub(expected)
			return diff > -time.Minute && diff < time.Minute
		})).Return(int64(4), nil).Once()

		err := service.RunCleanup()

		assert.NoError(t, err)
		reportRepo.AssertExpectations(t)
	})

	t.Run("Propagates a store failure", func(t *testing.T) {
		_, _, _, _, reportRepo, _, _, service := newSchedulerFixture()

		reportRepo.On("DeleteOlderThan", mock.AnythingOfType("time.Time")).
			Return(int64(0), assert.AnError).Once()

		err := service.RunCleanup()

		assert.Error(t, err)
	})
}

func TestSchedulerService_Start(t *testing.T) {
	t.Run("Registers all jobs and stops cleanly", func(t *testing.T) {
		_, _, _, _, _, _, _, service := newSchedulerFixture()

		err := service.Start()

		assert.NoError(t, err)
		service.Stop()
	})

	t.Run("Fails on an invalid cron spec", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewSchedulerService(userRepo, new(MockKnowledgeRepository), new(MockContributionRepository),
			new(MockFavoriteRepository), new(MockReportRepository), new(MockStatsRepository),
			new(MockNotificationService), config.ScheduleConfig{
				Timezone:        "America/Sao_Paulo",
				DailyDigestSpec: "not a cron spec",
			})

		err := service.Start()

		assert.Error(t, err)
	})
}
