package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/CassioNunes77/randomly/config"
	"github.com/CassioNunes77/randomly/models"
	"github.com/CassioNunes77/randomly/repository"

	"github.com/robfig/cron/v3"
)

// Retention window for knowledge reports. Reports strictly older than this
// are purged by the cleanup job; a report exactly this old is kept.
const reportRetention = 30 * 24 * time.Hour

// Trailing window the weekly report aggregates over.
const weeklyWindow = 7 * 24 * time.Hour

// SchedulerService owns the three time-triggered jobs: the daily digest
// fan-out, the weekly activity summary, and the report retention cleanup.
// Each job is stateless and safe to rerun; the Run methods are exposed so the
// jobs can also be invoked directly.
type SchedulerService interface {
	Start() error
	Stop()
	RunDailyDigest() error
	RunWeeklyReport() error
	RunCleanup() error
}

type schedulerService struct {
	userRepo         repository.UserRepository
	knowledgeRepo    repository.KnowledgeRepository
	contributionRepo repository.ContributionRepository
	favoriteRepo     repository.FavoriteRepository
	reportRepo       repository.ReportRepository
	statsRepo        repository.StatsRepository
	notifier         NotificationService
	schedule         config.ScheduleConfig
	cron             *cron.Cron
}

// NewSchedulerService creates the scheduled jobs service.
func NewSchedulerService(
	userRepo repository.UserRepository,
	knowledgeRepo repository.KnowledgeRepository,
	contributionRepo repository.ContributionRepository,
	favoriteRepo repository.FavoriteRepository,
	reportRepo repository.ReportRepository,
	statsRepo repository.StatsRepository,
	notifier NotificationService,
	schedule config.ScheduleConfig,
) SchedulerService {
	return &schedulerService{
		userRepo:         userRepo,
		knowledgeRepo:    knowledgeRepo,
		contributionRepo: contributionRepo,
		favoriteRepo:     favoriteRepo,
		reportRepo:       reportRepo,
		statsRepo:        statsRepo,
		notifier:         notifier,
		schedule:         schedule,
	}
}

// Start registers the cron entries in the configured timezone and begins
// running them.
func (s *schedulerService) Start() error {
	loc, err := time.LoadLocation(s.schedule.Timezone)
	if err != nil {
		return fmt.Errorf("load scheduler timezone '%s': %w", s.schedule.Timezone, err)
	}

	c := cron.New(cron.WithLocation(loc))

	jobs := []struct {
		name string
		spec string
		run  func() error
	}{
		{"daily-digest", s.schedule.DailyDigestSpec, s.RunDailyDigest},
		{"weekly-report", s.schedule.WeeklyReportSpec, s.RunWeeklyReport},
		{"report-cleanup", s.schedule.CleanupSpec, s.RunCleanup},
	}
	for _, job := range jobs {
		job := job
		if _, err := c.AddFunc(job.spec, func() {
			if err := job.run(); err != nil {
				log.Printf("ERROR: [SchedulerService] Job '%s' failed: %v", job.name, err)
			}
		}); err != nil {
			return fmt.Errorf("register job '%s' (spec '%s'): %w", job.name, job.spec, err)
		}
		log.Printf("INFO: [SchedulerService] Registered job '%s' with spec '%s' (%s).", job.name, job.spec, s.schedule.Timezone)
	}

	c.Start()
	s.cron = c
	return nil
}

// Stop halts the cron scheduler. Running jobs finish on their own.
func (s *schedulerService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		log.Printf("INFO: [SchedulerService] Scheduler stopped.")
	}
}

// RunDailyDigest picks one random approved knowledge item and pushes it to
// every notification-enabled user with a registered device token. Sends are
// issued concurrently and awaited collectively; an individual failure does
// not abort the fan-out.
func (s *schedulerService) RunDailyDigest() error {
	users, err := s.userRepo.ListNotifiable()
	if err != nil {
		return fmt.Errorf("daily digest: %w", err)
	}
	if len(users) == 0 {
		log.Printf("INFO: [SchedulerService] Daily digest: no users with notifications enabled.")
		return nil
	}

	item, err := s.knowledgeRepo.RandomApproved("")
	if err != nil {
		return fmt.Errorf("daily digest: %w", err)
	}
	if item == nil {
		log.Printf("INFO: [SchedulerService] Daily digest: no approved knowledge available.")
		return nil
	}

	data := map[string]string{
		"knowledgeId":  item.ID,
		"category":     string(item.Category),
		"click_action": "FLUTTER_NOTIFICATION_CLICK",
	}

	var wg sync.WaitGroup
	sent := 0
	for _, user := range users {
		if user.FCMToken == "" {
			continue
		}
		sent++
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			s.notifier.SendPush(token, "🤓 Novo Conhecimento Aleatório!", item.Title, data)
		}(user.FCMToken)
	}
	wg.Wait()

	log.Printf("INFO: [SchedulerService] Daily digest: dispatched '%s' to %d of %d eligible users.", item.Title, sent, len(users))
	return nil
}

// RunWeeklyReport counts the trailing week's new users, contributions,
// favorites and reports, finds the week's top knowledge item by favorites,
// and overwrites the fixed-id weekly summary.
func (s *schedulerService) RunWeeklyReport() error {
	now := time.Now()
	since := now.Add(-weeklyWindow)

	newUsers, err := s.userRepo.CountCreatedSince(since)
	if err != nil {
		return fmt.Errorf("weekly report: %w", err)
	}
	newContributions, err := s.contributionRepo.CountCreatedSince(since)
	if err != nil {
		return fmt.Errorf("weekly report: %w", err)
	}
	newFavorites, err := s.favoriteRepo.CountCreatedSince(since)
	if err != nil {
		return fmt.Errorf("weekly report: %w", err)
	}
	newReports, err := s.reportRepo.CountCreatedSince(since)
	if err != nil {
		return fmt.Errorf("weekly report: %w", err)
	}

	summary := &models.WeeklySummary{
		ID:               models.WeeklySummaryID,
		WeekOf:           since,
		NewUsers:         newUsers,
		NewContributions: newContributions,
		NewFavorites:     newFavorites,
		NewReports:       newReports,
		GeneratedAt:      now,
	}

	top, err := s.knowledgeRepo.TopByFavoritesSince(since)
	if err != nil {
		return fmt.Errorf("weekly report: %w", err)
	}
	if top != nil {
		summary.TopKnowledgeID = top.ID
		summary.TopKnowledgeTitle = top.Title
		summary.TopFavoriteCount = top.FavoriteCount
	}

	if err := s.statsRepo.SaveWeeklySummary(summary); err != nil {
		return fmt.Errorf("weekly report: %w", err)
	}

	log.Printf("INFO: [SchedulerService] Weekly report: %d users, %d contributions, %d favorites, %d reports (week of %s).",
		newUsers, newContributions, newFavorites, newReports, since.Format("2006-01-02"))
	return nil
}

// RunCleanup permanently deletes every report strictly older than the
// retention window. No soft-delete, no archive.
func (s *schedulerService) RunCleanup() error {
	cutoff := time.Now().Add(-reportRetention)
	deleted, err := s.reportRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("report cleanup: %w", err)
	}
	log.Printf("INFO: [SchedulerService] Report cleanup: removed %d reports older than %s.", deleted, cutoff.Format(time.RFC3339))
	return nil
}
