package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/services"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	service services.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(service services.UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// SaveUser handles PUT /user
// First login inserts the user; an existing user submitting status
// "Requested" gets the status updated; any other re-submission returns the
// stored record unchanged.
func (h *UserHandler) SaveUser(c *gin.Context) {
	var req models.SaveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	user, result, err := h.service.SaveUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save user", err)
		return
	}

	if user != nil {
		c.JSON(http.StatusOK, user)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUser handles GET /user/:email
// A missing user is not an error; the response body is JSON null.
func (h *UserHandler) GetUser(c *gin.Context) {
	email := c.Param("email")

	user, err := h.service.GetUser(c.Request.Context(), email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ListTutors handles GET /tutors
// Returns verified tutors only.
func (h *UserHandler) ListTutors(c *gin.Context) {
	tutors, err := h.service.ListTutors(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch tutors", err)
		return
	}

	c.JSON(http.StatusOK, tutors)
}
