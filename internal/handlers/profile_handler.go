package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
	"github.com/mentorconnect/mentorconnect-api/pkg/jwt"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	service      services.ProfileServiceInterface
	tokenManager *jwt.TokenManager
	cookieDomain string
	cookieSecure bool
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service services.ProfileServiceInterface, tokenManager *jwt.TokenManager, cookieDomain string, cookieSecure bool) *ProfileHandler {
	return &ProfileHandler{
		service:      service,
		tokenManager: tokenManager,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

// GetMe handles GET /api/v1/profiles/me
func (h *ProfileHandler) GetMe(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), session.ProfileID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetByID handles GET /api/v1/profiles/:id
func (h *ProfileHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "Invalid profile ID", nil)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SelectRole handles POST /api/v1/profiles/me/role
// One-shot: the stored role must still be unset.
func (h *ProfileHandler) SelectRole(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.SelectRoleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	profile, err := h.service.SelectRole(c.Request.Context(), session, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to select role")
		return
	}

	// The role lives in the session token; reissue the cookie so the new
	// role takes effect immediately instead of after the old token expires.
	token, err := h.tokenManager.GenerateToken(profile.ID, profile.Email, profile.Name, string(profile.Role))
	if err != nil {
		logger.Error("Failed to reissue session after role selection",
			zap.String("profile_id", profile.ID),
			zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to refresh session", err)
		return
	}
	ttlSeconds := int(h.tokenManager.GetExpirationTime().Seconds())
	middleware.SetSessionCookie(c, token, ttlSeconds, h.cookieDomain, h.cookieSecure)

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/profiles/me
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.SelectRoleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), session, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadAvatar handles POST /api/v1/profiles/me/avatar
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.UploadAvatarRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	url, err := h.service.UploadAvatar(c.Request.Context(), session, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to upload avatar")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}
