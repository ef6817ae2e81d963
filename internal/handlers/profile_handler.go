package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studymate/studymate-api/internal/middleware"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/services"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
)

// ProfileHandler handles profile media HTTP requests
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// UploadAvatar handles POST /api/v1/profile/avatar
// Uploads a base64-encoded avatar for the logged-in user and stores the
// resulting URL on their record.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized access", err)
		return
	}

	var req models.UploadAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	url, err := h.service.UploadAvatar(c.Request.Context(), session.Email, &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			respondError(c, http.StatusNotFound, "User not found", err)
		case errors.Is(err, apperrors.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, err.Error(), err)
		default:
			respondError(c, http.StatusInternalServerError, "Failed to upload avatar", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "photoURL": url})
}
