package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/services"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
)

// NoteHandler handles personal note HTTP requests
type NoteHandler struct {
	service services.NoteServiceInterface
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service services.NoteServiceInterface) *NoteHandler {
	return &NoteHandler{service: service}
}

// noteKey extracts the (studentEmail, noteID) pair the note routes are keyed
// by. The owner and id always come from the route, never from the body.
func noteKey(c *gin.Context) (string, string) {
	return c.Param("email"), c.Param("id")
}

// CreateNote handles POST /create-note
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	result, err := h.service.CreateNote(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create note", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StudentNotes handles GET /notes/:email
func (h *NoteHandler) StudentNotes(c *gin.Context) {
	notes, err := h.service.StudentNotes(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch notes", err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// GetNote handles GET /note/:email/:id
// A missing note is not an error; the response body is JSON null.
func (h *NoteHandler) GetNote(c *gin.Context) {
	email, id := noteKey(c)

	note, err := h.service.GetNote(c.Request.Context(), email, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Invalid note id", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch note", err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// UpdateNote handles PUT /note/:email/:id
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	email, id := noteKey(c)

	var req models.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	result, err := h.service.UpdateNote(c.Request.Context(), email, id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Invalid note id", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update note", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteNote handles DELETE /note/:email/:id
// Deleting a missing note succeeds with zero matches.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	email, id := noteKey(c)

	result, err := h.service.DeleteNote(c.Request.Context(), email, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Invalid note id", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete note", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
