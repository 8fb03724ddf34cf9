package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
	"github.com/mentorconnect/mentorconnect-api/pkg/jwt"
)

// AuthHandler issues and clears session cookies. There is no password flow:
// identity arrives from the upstream SSO proxy, so signup just records the
// profile and mints the session. The login-by-email endpoint is wired only
// in development.
type AuthHandler struct {
	profiles     services.ProfileServiceInterface
	tokenManager *jwt.TokenManager
	cookieDomain string
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(profiles services.ProfileServiceInterface, tokenManager *jwt.TokenManager, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		profiles:     profiles,
		tokenManager: tokenManager,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.CreateProfileRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	profile, err := h.profiles.CreateProfile(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create profile")
		return
	}

	if err := h.issueSession(c, profile); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// DevLogin handles POST /api/v1/auth/dev-login
// Mints a session for an existing profile by email. Registered only in
// development environments.
func (h *AuthHandler) DevLogin(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	profile, err := h.profiles.GetProfileByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch profile")
		return
	}

	if err := h.issueSession(c, profile); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookieDomain, h.cookieSecure)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) issueSession(c *gin.Context, profile *models.Profile) error {
	token, err := h.tokenManager.GenerateToken(profile.ID, profile.Email, profile.Name, string(profile.Role))
	if err != nil {
		return err
	}

	ttlSeconds := int(h.tokenManager.GetExpirationTime().Seconds())
	middleware.SetSessionCookie(c, token, ttlSeconds, h.cookieDomain, h.cookieSecure)
	return nil
}
