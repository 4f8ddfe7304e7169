package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/CassioNunes77/randomly/middleware"
	"github.com/CassioNunes77/randomly/models"
	"github.com/CassioNunes77/randomly/services"
	"github.com/CassioNunes77/randomly/utils"

	"github.com/gin-gonic/gin"
)

// minContentLength is the minimum contribution content length, in runes,
// counted after trimming. Enforced here, before the workflow is invoked.
const minContentLength = 50

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	moderationService services.ModerationService
	knowledgeService  services.KnowledgeService
	userService       services.UserService
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	moderationService services.ModerationService,
	knowledgeService services.KnowledgeService,
	userService services.UserService,
) *APIHandler {
	return &APIHandler{
		moderationService: moderationService,
		knowledgeService:  knowledgeService,
		userService:       userService,
	}
}

// SessionHandler resolves the caller's profile, creating it lazily on the
// first sign-in from the identity provider's claims.
func (h *APIHandler) SessionHandler(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Authentication required.", utils.ErrUnauthenticated)
		return
	}

	profile, err := h.userService.EnsureProfile(identity.SubjectID, identity.Name, identity.Email, identity.ProfileImageURL)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RandomKnowledgeHandler returns one random approved knowledge item,
// optionally restricted to a category via the "category" query parameter.
func (h *APIHandler) RandomKnowledgeHandler(c *gin.Context) {
	category := models.KnowledgeCategory(c.Query("category"))
	if category != "" && !category.IsValid() {
		utils.SendJSONError(c, http.StatusBadRequest, "Unknown category.", nil, string(category))
		return
	}

	item, err := h.knowledgeService.RandomKnowledge(category)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListFavoritesHandler returns the caller's favorited knowledge items.
func (h *APIHandler) ListFavoritesHandler(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Authentication required.", utils.ErrUnauthenticated)
		return
	}

	items, err := h.knowledgeService.FavoritesForUser(identity.SubjectID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": items})
}

// ToggleFavoriteHandler flips the favorite state for the caller and the
// knowledge item in the path.
func (h *APIHandler) ToggleFavoriteHandler(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Authentication required.", utils.ErrUnauthenticated)
		return
	}

	knowledgeID := c.Param("knowledgeID")
	favorited, err := h.knowledgeService.ToggleFavorite(identity.SubjectID, knowledgeID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

// SubmitContributionRequest is the payload for submitting a candidate fact.
type SubmitContributionRequest struct {
	Title          string `json:"title" binding:"required"`
	Content        string `json:"content" binding:"required"`
	Category       string `json:"category" binding:"required"`
	Source         string `json:"source"`
	IsAdultContent bool   `json:"isAdultContent"`
}

// SubmitContributionHandler validates and files a new pending contribution.
func (h *APIHandler) SubmitContributionHandler(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Authentication required.", utils.ErrUnauthenticated)
		return
	}

	var req SubmitContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Title must not be empty.", nil)
		return
	}
	if utf8.RuneCountInString(content) < minContentLength {
		utils.SendJSONError(c, http.StatusBadRequest, "Content must be at least 50 characters long.", nil)
		return
	}
	category := models.KnowledgeCategory(req.Category)
	if !category.IsValid() {
		utils.SendJSONError(c, http.StatusBadRequest, "Unknown category.", nil, req.Category)
		return
	}

	contribution, err := h.moderationService.SubmitContribution(
		identity.SubjectID, title, content, category, strings.TrimSpace(req.Source), req.IsAdultContent)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contribution)
}

// ReportKnowledgeRequest is the payload for reporting a knowledge item.
type ReportKnowledgeRequest struct {
	KnowledgeID string `json:"knowledgeId" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

// ReportKnowledgeHandler files a report. Anonymous callers are accepted and
// recorded with the anonymous marker.
func (h *APIHandler) ReportKnowledgeHandler(c *gin.Context) {
	var req ReportKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	reportedBy := ""
	if identity := middleware.IdentityFrom(c); identity != nil {
		reportedBy = identity.SubjectID
	}

	report, err := h.moderationService.ReportKnowledge(req.KnowledgeID, req.Reason, reportedBy)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// DeviceTokenRequest is the payload for registering a push token.
type DeviceTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdateDeviceTokenHandler stores the caller's push token.
func (h *APIHandler) UpdateDeviceTokenHandler(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Authentication required.", utils.ErrUnauthenticated)
		return
	}

	var req DeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	if err := h.userService.UpdateDeviceToken(identity.SubjectID, req.Token); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// NotificationsRequest is the payload for the digest opt-in preference.
type NotificationsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetNotificationsHandler records the caller's digest opt-in choice.
func (h *APIHandler) SetNotificationsHandler(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Authentication required.", utils.ErrUnauthenticated)
		return
	}

	var req NotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	if err := h.userService.SetNotificationsEnabled(identity.SubjectID, *req.Enabled); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// ApproveContributionHandler is the admin callable for approving a
// contribution. Returns the created knowledge item id.
func (h *APIHandler) ApproveContributionHandler(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Authentication required.", utils.ErrUnauthenticated)
		return
	}

	knowledgeID, err := h.moderationService.ApproveContribution(identity.SubjectID, c.Param("contributionID"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "knowledgeId": knowledgeID})
}

// RejectContributionRequest carries the admin's rejection reason.
type RejectContributionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectContributionHandler is the admin callable for rejecting a contribution.
func (h *APIHandler) RejectContributionHandler(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Authentication required.", utils.ErrUnauthenticated)
		return
	}

	var req RejectContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	if err := h.moderationService.RejectContribution(identity.SubjectID, c.Param("contributionID"), req.Reason); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondServiceError maps workflow sentinel errors to the error codes the
// admin endpoints surface: unauthenticated, permission-denied, not-found,
// already-moderated, internal.
func (h *APIHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrUnauthenticated):
		utils.SendJSONError(c, http.StatusUnauthorized, "Authentication required.", err)
	case errors.Is(err, utils.ErrPermissionDenied):
		utils.SendJSONError(c, http.StatusForbidden, "Access denied.", err)
	case errors.Is(err, utils.ErrNotFound):
		utils.SendJSONError(c, http.StatusNotFound, "Resource not found.", err)
	case errors.Is(err, utils.ErrAlreadyModerated):
		utils.SendJSONError(c, http.StatusConflict, "Contribution has already been moderated.", err)
	default:
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
	}
}
