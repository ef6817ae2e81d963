package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studymate/studymate-api/internal/middleware"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/services"
)

// AuthHandler handles login token issuance and logout
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// IssueToken handles POST /jwt
// Signs a token for the supplied payload and sets it as an httpOnly cookie.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req models.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	token, err := h.service.IssueToken(&req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	middleware.SetSessionCookie(c, token,
		h.service.GetCookieTTLSeconds(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout handles GET /logout
// Clears the login cookie. Always succeeds, even without a cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c,
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
