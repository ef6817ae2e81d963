package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/services"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
)

// SessionHandler handles study session HTTP requests
type SessionHandler struct {
	service services.SessionServiceInterface
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service services.SessionServiceInterface) *SessionHandler {
	return &SessionHandler{service: service}
}

// tutorSessionKey extracts the (tutorEmail, sessionID) pair from the nested
// session routes. The router shares the ":id" wildcard name across every
// /session/* route, so on the two-segment routes ":id" carries the tutor
// email and ":sessionId" the session id.
func tutorSessionKey(c *gin.Context) (string, string) {
	return c.Param("id"), c.Param("sessionId")
}

// ApprovedSessions handles GET /approved-sessions
// Returns at most six approved sessions for the landing page.
func (h *SessionHandler) ApprovedSessions(c *gin.Context) {
	sessions, err := h.service.ApprovedSessions(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch sessions", err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// ListSessions handles GET /sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.service.ListSessions(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch sessions", err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// GetSession handles GET /session/:id
// A missing session is not an error; the response body is JSON null.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
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

// CreateSession handles POST /create-session/:email
// Succeeds only when :email resolves to a stored user with role tutor.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	email := c.Param("email")

	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	result, err := h.service.CreateSession(c.Request.Context(), email, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			respondError(c, http.StatusUnauthorized, "Unauthorized access", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// TutorSessions handles GET /view-sessions/:email
func (h *SessionHandler) TutorSessions(c *gin.Context) {
	sessions, err := h.service.TutorSessions(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch sessions", err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// GetTutorSession handles GET /session/:id/:sessionId
// Fetches one session owned by the tutor; a missing or foreign session is
// JSON null.
func (h *SessionHandler) GetTutorSession(c *gin.Context) {
	tutorEmail, sessionID := tutorSessionKey(c)

	session, err := h.service.GetTutorSession(c.Request.Context(), tutorEmail, sessionID)
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

// UpdateTutorSession handles PUT /session/:id/:sessionId
func (h *SessionHandler) UpdateTutorSession(c *gin.Context) {
	tutorEmail, sessionID := tutorSessionKey(c)

	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	result, err := h.service.UpdateTutorSession(c.Request.Context(), tutorEmail, sessionID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Invalid session id", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update session", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTutorSession handles DELETE /session/:id/:sessionId
// Deleting a missing session succeeds with zero matches.
func (h *SessionHandler) DeleteTutorSession(c *gin.Context) {
	tutorEmail, sessionID := tutorSessionKey(c)

	result, err := h.service.DeleteTutorSession(c.Request.Context(), tutorEmail, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Invalid session id", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete session", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
