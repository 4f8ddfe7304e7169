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

// Points granted to a user when one of their contributions is approved.
const approvalPoints = 100

// ModerationService moves contributions through the moderation workflow:
// submission, admin approval or rejection, and knowledge reporting.
//
// The approve/reject sequences are applied as independent writes, not one
// transaction; a crash between steps can leave an intermediate state (e.g. a
// knowledge item whose contribution is still pending). The pending-status
// guard keeps a retried decision from creating a duplicate knowledge item.
type ModerationService interface {
	SubmitContribution(userID, title, content string, category models.KnowledgeCategory, source string, isAdultContent bool) (*models.Contribution, error)
	ApproveContribution(adminID, contributionID string) (string, error)
	RejectContribution(adminID, contributionID, reason string) error
	ReportKnowledge(knowledgeID, reason, reportedBy string) (*models.Report, error)
}

type moderationService struct {
	contributionRepo repository.ContributionRepository
	knowledgeRepo    repository.KnowledgeRepository
	userRepo         repository.UserRepository
	reportRepo       repository.ReportRepository
	notifier         NotificationService
}

// NewModerationService creates the moderation workflow service.
func NewModerationService(
	contributionRepo repository.ContributionRepository,
	knowledgeRepo repository.KnowledgeRepository,
	userRepo repository.UserRepository,
	reportRepo repository.ReportRepository,
	notifier NotificationService,
) ModerationService {
	return &moderationService{
		contributionRepo: contributionRepo,
		knowledgeRepo:    knowledgeRepo,
		userRepo:         userRepo,
		reportRepo:       reportRepo,
		notifier:         notifier,
	}
}

// SubmitContribution inserts a pending contribution and notifies the admin by
// email. The caller validates title/content before invoking this; the email is
// best-effort and fires only after the insert has committed.
func (s *moderationService) SubmitContribution(userID, title, content string, category models.KnowledgeCategory, source string, isAdultContent bool) (*models.Contribution, error) {
	contribution := &models.Contribution{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          title,
		Content:        content,
		Category:       category,
		Source:         source,
		IsAdultContent: isAdultContent,
		Status:         models.ContributionStatusPending,
		CreatedAt:      time.Now(),
	}
	if err := s.contributionRepo.CreateContribution(contribution); err != nil {
		return nil, fmt.Errorf("submit contribution: %w", err)
	}

	s.notifier.SendAdminEmail("Nova Contribuição - Aleatoriamente", contributionEmailBody(contribution))
	return contribution, nil
}

// ApproveContribution applies the approval sequence: create the knowledge
// item, mark the contribution approved with a back-reference, credit the
// contributor, and push an "approved" notification if the contributor has a
// device token. Returns the new knowledge item id.
func (s *moderationService) ApproveContribution(adminID, contributionID string) (string, error) {
	if err := s.requireAdmin(adminID); err != nil {
		return "", err
	}

	contribution, err := s.contributionRepo.GetContributionByID(contributionID)
	if err != nil {
		return "", fmt.Errorf("approve contribution %s: %w", contributionID, err)
	}
	if contribution == nil {
		return "", fmt.Errorf("contribution %s: %w", contributionID, utils.ErrNotFound)
	}
	if contribution.Status != models.ContributionStatusPending {
		log.Printf("WARN: [ModerationService] Refusing to approve contribution %s: status is already '%s'.", contributionID, contribution.Status)
		return "", fmt.Errorf("contribution %s: %w", contributionID, utils.ErrAlreadyModerated)
	}

	contributor, err := s.userRepo.GetUserByID(contribution.UserID)
	if err != nil {
		return "", fmt.Errorf("approve contribution %s: %w", contributionID, err)
	}
	authorName := ""
	if contributor != nil {
		authorName = contributor.Name
	}

	item := &models.KnowledgeItem{
		ID:             uuid.NewString(),
		Title:          contribution.Title,
		Content:        contribution.Content,
		Category:       contribution.Category,
		Source:         contribution.Source,
		IsAdultContent: contribution.IsAdultContent,
		AuthorID:       contribution.UserID,
		AuthorName:     authorName,
		CreatedAt:      time.Now(),
		FavoriteCount:  0,
		IsApproved:     true,
	}
	if err := s.knowledgeRepo.CreateKnowledge(item); err != nil {
		return "", fmt.Errorf("approve contribution %s: %w", contributionID, err)
	}

	// From here on a failure leaves the knowledge item in place; the
	// operation does not roll it back.
	if err := s.contributionRepo.MarkApproved(contribution.ID, item.ID, time.Now()); err != nil {
		return "", fmt.Errorf("approve contribution %s: %w", contributionID, err)
	}
	if err := s.userRepo.IncrementContributionStats(contribution.UserID, 1, approvalPoints); err != nil {
		return "", fmt.Errorf("approve contribution %s: %w", contributionID, err)
	}

	if contributor != nil && contributor.FCMToken != "" {
		s.notifier.SendPush(
			contributor.FCMToken,
			"🎉 Sua Contribuição foi Aprovada!",
			fmt.Sprintf("\"%s\" foi adicionado à biblioteca", contribution.Title),
			map[string]string{
				"knowledgeId": item.ID,
				"type":        "contribution_approved",
			},
		)
	}

	log.Printf("INFO: [ModerationService] Admin %s approved contribution %s -> knowledge %s.", adminID, contributionID, item.ID)
	return item.ID, nil
}

// RejectContribution marks the contribution rejected with the admin's reason
// and pushes a "rejected" notification carrying it.
func (s *moderationService) RejectContribution(adminID, contributionID, reason string) error {
	if err := s.requireAdmin(adminID); err != nil {
		return err
	}

	contribution, err := s.contributionRepo.GetContributionByID(contributionID)
	if err != nil {
		return fmt.Errorf("reject contribution %s: %w", contributionID, err)
	}
	if contribution == nil {
		return fmt.Errorf("contribution %s: %w", contributionID, utils.ErrNotFound)
	}
	if contribution.Status != models.ContributionStatusPending {
		log.Printf("WARN: [ModerationService] Refusing to reject contribution %s: status is already '%s'.", contributionID, contribution.Status)
		return fmt.Errorf("contribution %s: %w", contributionID, utils.ErrAlreadyModerated)
	}

	if err := s.contributionRepo.MarkRejected(contribution.ID, reason, time.Now()); err != nil {
		return fmt.Errorf("reject contribution %s: %w", contributionID, err)
	}

	contributor, err := s.userRepo.GetUserByID(contribution.UserID)
	if err != nil {
		// The rejection itself has committed; the notification is an enhancement.
		log.Printf("WARN: [ModerationService] Contribution %s rejected but contributor lookup failed: %v", contributionID, err)
		return nil
	}
	if contributor != nil && contributor.FCMToken != "" {
		s.notifier.SendPush(
			contributor.FCMToken,
			"📝 Contribuição Revisada",
			fmt.Sprintf("\"%s\" não foi aprovado. Motivo: %s", contribution.Title, reason),
			map[string]string{
				"type":   "contribution_rejected",
				"reason": reason,
			},
		)
	}

	log.Printf("INFO: [ModerationService] Admin %s rejected contribution %s.", adminID, contributionID)
	return nil
}

// ReportKnowledge files a write-once report and notifies the admin by email.
// An unauthenticated caller is recorded as the anonymous marker.
func (s *moderationService) ReportKnowledge(knowledgeID, reason, reportedBy string) (*models.Report, error) {
	if reportedBy == "" {
		reportedBy = models.ReportedByAnonymous
	}

	report := &models.Report{
		ID:          uuid.NewString(),
		KnowledgeID: knowledgeID,
		Reason:      reason,
		ReportedAt:  time.Now(),
		ReportedBy:  reportedBy,
	}
	if err := s.reportRepo.CreateReport(report); err != nil {
		return nil, fmt.Errorf("report knowledge %s: %w", knowledgeID, err)
	}

	s.notifier.SendAdminEmail("Novo Report - Aleatoriamente", reportEmailBody(report))
	return report, nil
}

// requireAdmin resolves the caller to a profile with the admin flag.
func (s *moderationService) requireAdmin(adminID string) error {
	if adminID == "" {
		return utils.ErrUnauthenticated
	}
	admin, err := s.userRepo.GetUserByID(adminID)
	if err != nil {
		return fmt.Errorf("resolve admin %s: %w", adminID, err)
	}
	if admin == nil || !admin.IsAdmin {
		log.Printf("WARN: [ModerationService] Caller %s attempted an admin operation without the admin flag.", adminID)
		return utils.ErrPermissionDenied
	}
	return nil
}

func contributionEmailBody(c *models.Contribution) string {
	source := c.Source
	if source == "" {
		source = "Não informada"
	}
	return fmt.Sprintf(`
		<h2>Nova Contribuição Recebida</h2>
		<p><strong>Título:</strong> %s</p>
		<p><strong>Categoria:</strong> %s</p>
		<p><strong>Conteúdo:</strong> %s</p>
		<p><strong>Fonte:</strong> %s</p>
		<p><strong>Usuário:</strong> %s</p>
		<p><strong>Data:</strong> %s</p>
		<br>
		<p>Acesse o painel admin para revisar esta contribuição.</p>
	`, c.Title, c.Category, c.Content, source, c.UserID, c.CreatedAt.Format("02/01/2006 15:04:05"))
}

func reportEmailBody(r *models.Report) string {
	return fmt.Sprintf(`
		<h2>Novo Report Recebido</h2>
		<p><strong>Conhecimento ID:</strong> %s</p>
		<p><strong>Motivo:</strong> %s</p>
		<p><strong>Reportado por:</strong> %s</p>
		<p><strong>Data:</strong> %s</p>
		<br>
		<p>Acesse o painel admin para revisar este report.</p>
	`, r.KnowledgeID, r.Reason, r.ReportedBy, r.ReportedAt.Format("02/01/2006 15:04:05"))
}
