package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/services"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
)

// ReviewHandler handles review HTTP requests
type ReviewHandler struct {
	service services.ReviewServiceInterface
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service services.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// SubmitReview handles POST /review
// A student reviewing the same session again replaces their earlier review.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	result, err := h.service.SubmitReview(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to submit review", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SessionReviews handles GET /reviews/:sessionId
func (h *ReviewHandler) SessionReviews(c *gin.Context) {
	reviews, err := h.service.SessionReviews(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Invalid session id", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch reviews", err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
