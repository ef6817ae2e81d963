package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/repository"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
	"github.com/studymate/studymate-api/pkg/logger"
	"github.com/studymate/studymate-api/pkg/metrics"
	"go.uber.org/zap"
)

// BookingService handles session booking operations
type BookingService struct {
	bookingRepo repository.BookingStore
	sessionRepo repository.SessionStore
}

// NewBookingService creates a new booking service instance
func NewBookingService(bookingRepo repository.BookingStore, sessionRepo repository.SessionStore) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		sessionRepo: sessionRepo,
	}
}

// BookSession records a booking for a student. Admins and tutors cannot book
// sessions; booking the same session twice is idempotent.
func (s *BookingService) BookSession(ctx context.Context, req *models.BookSessionRequest) (*models.WriteResult, error) {
	if req.Role == models.RoleAdmin || req.Role == models.RoleTutor {
		metrics.BookingSubmissions.WithLabelValues("rejected_role").Inc()
		logger.Warn("Booking rejected for non-student role",
			zap.String("student_email", req.StudentEmail),
			zap.String("role", req.Role))
		return nil, apperrors.ErrUnauthorized
	}

	booking := &models.BookedSession{
		StudentEmail: req.StudentEmail,
		SessionID:    req.SessionID,
		TutorEmail:   req.TutorEmail,
		SessionTitle: req.SessionTitle,
		Fee:          req.Fee,
		Timestamp:    time.Now().UnixMilli(),
	}

	result, err := s.bookingRepo.Upsert(ctx, booking)
	if err != nil {
		metrics.BookingSubmissions.WithLabelValues("db_error").Inc()
		logger.Error("Failed to book session",
			zap.String("student_email", req.StudentEmail),
			zap.String("session_id", req.SessionID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to book session: %w", err)
	}

	metrics.BookingSubmissions.WithLabelValues("success").Inc()
	logger.Info("Session booked",
		zap.String("student_email", req.StudentEmail),
		zap.String("session_id", req.SessionID),
		zap.Bool("first_booking", result.Matched == 0))
	return result, nil
}

// StudentBookings returns every session a student has booked.
func (s *BookingService) StudentBookings(ctx context.Context, studentEmail string) ([]*models.BookedSession, error) {
	return s.bookingRepo.ListByStudent(ctx, studentEmail)
}

// ViewBookedSession resolves a booked session back to the underlying study
// session; a missing session yields (nil, nil).
func (s *BookingService) ViewBookedSession(ctx context.Context, sessionID string) (*models.StudySession, error) {
	return s.sessionRepo.GetByID(ctx, sessionID)
}
