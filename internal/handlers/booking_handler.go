package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/services"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	service services.BookingServiceInterface
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service services.BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: service}
}

// BookSession handles POST /book-session
// Rejects bodies carrying role admin or tutor with 401 before any field
// validation, so an elevated role fails the same way no matter what else
// the body carries. Booking the same session twice is idempotent.
func (h *BookingHandler) BookSession(c *gin.Context) {
	var roleOnly struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindBodyWith(&roleOnly, binding.JSON); err == nil {
		if roleOnly.Role == models.RoleAdmin || roleOnly.Role == models.RoleTutor {
			respondError(c, http.StatusUnauthorized, "Unauthorized access",
				apperrors.ErrUnauthorized)
			return
		}
	}

	var req models.BookSessionRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	result, err := h.service.BookSession(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			respondError(c, http.StatusUnauthorized, "Unauthorized access", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to book session", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StudentBookings handles GET /booked-sessions/:email
// Requires a valid session cookie whose email resolves to a stored student.
func (h *BookingHandler) StudentBookings(c *gin.Context) {
	bookings, err := h.service.StudentBookings(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch bookings", err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ViewBookedSession handles GET /view-booked-session/:id
// Resolves a booking back to its study session; a missing session is JSON
// null.
func (h *BookingHandler) ViewBookedSession(c *gin.Context) {
	session, err := h.service.ViewBookedSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Invalid session id", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch session", err)
		return
	}

	c.JSON(http.StatusOK, session)
}
