package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/studymate/studymate-api/internal/models"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
)

func newReviewRouter(svc *stubReviewService) *gin.Engine {
	h := NewReviewHandler(svc)
	router := gin.New()
	router.POST("/review", h.SubmitReview)
	router.GET("/reviews/:sessionId", h.SessionReviews)
	return router
}

func TestReviewHandler_SubmitReview(t *testing.T) {
	svc := &stubReviewService{
		submitReview: func(_ context.Context, req *models.SubmitReviewRequest) (*models.WriteResult, error) {
			assert.Equal(t, 5, req.Rating)
			return models.Inserted("review-1"), nil
		},
	}
	router := newReviewRouter(svc)

	w := httptest.NewRecorder()
	body := `{"sessionId":"f6b9c1f2-1111-4222-8333-444455556666","studentEmail":"student@example.com","rating":5,"comment":"great"}`
	req := httptest.NewRequest("POST", "/review", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestReviewHandler_SubmitReview_ValidationFailure(t *testing.T) {
	router := newReviewRouter(&stubReviewService{})

	w := httptest.NewRecorder()
	body := `{"sessionId":"not-a-uuid","studentEmail":"student@example.com"}`
	req := httptest.NewRequest("POST", "/review", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
}

func TestReviewHandler_SessionReviews(t *testing.T) {
	svc := &stubReviewService{
		sessionReviews: func(_ context.Context, sessionID string) ([]*models.Review, error) {
			return []*models.Review{{SessionID: sessionID, StudentEmail: "student@example.com", Rating: 4}}, nil
		},
	}
	router := newReviewRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/reviews/f6b9c1f2-1111-4222-8333-444455556666", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "student@example.com")
}

func TestReviewHandler_SessionReviews_BadID(t *testing.T) {
	svc := &stubReviewService{
		sessionReviews: func(_ context.Context, _ string) ([]*models.Review, error) {
			return nil, apperrors.InvalidInputError("id", "must be a valid document id")
		},
	}
	router := newReviewRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/reviews/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid session id")
}
