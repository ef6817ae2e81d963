package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/repository"
	"github.com/studymate/studymate-api/pkg/logger"
	"github.com/studymate/studymate-api/pkg/metrics"
	"go.uber.org/zap"
)

// ReviewService handles session review operations
type ReviewService struct {
	reviewRepo repository.ReviewStore
}

// NewReviewService creates a new review service instance
func NewReviewService(reviewRepo repository.ReviewStore) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

// SubmitReview stores a review for a session. A student reviewing the same
// session again replaces their previous review.
func (s *ReviewService) SubmitReview(ctx context.Context, req *models.SubmitReviewRequest) (*models.WriteResult, error) {
	review := &models.Review{
		SessionID:    req.SessionID,
		StudentEmail: req.StudentEmail,
		StudentName:  req.StudentName,
		Rating:       req.Rating,
		Comment:      req.Comment,
		Timestamp:    time.Now().UnixMilli(),
	}

	result, err := s.reviewRepo.Upsert(ctx, review)
	if err != nil {
		metrics.ReviewSubmissions.WithLabelValues("db_error").Inc()
		logger.Error("Failed to submit review",
			zap.String("session_id", req.SessionID),
			zap.String("student_email", req.StudentEmail),
			zap.Error(err))
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	metrics.ReviewSubmissions.WithLabelValues("success").Inc()
	logger.Info("Review submitted",
		zap.String("session_id", req.SessionID),
		zap.String("student_email", req.StudentEmail),
		zap.Int("rating", req.Rating))
	return result, nil
}

// SessionReviews returns the reviews left for one session.
func (s *ReviewService) SessionReviews(ctx context.Context, sessionID string) ([]*models.Review, error) {
	return s.reviewRepo.ListBySession(ctx, sessionID)
}
