package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studymate/studymate-api/internal/cache"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/repository"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
	"github.com/studymate/studymate-api/pkg/logger"
	"github.com/studymate/studymate-api/pkg/metrics"
	"go.uber.org/zap"
)

// ApprovedSessionsLimit caps the public approved-sessions listing.
const ApprovedSessionsLimit = 6

// SessionService handles study session operations
type SessionService struct {
	sessionRepo  repository.SessionStore
	userRepo     repository.UserStore
	listingCache *cache.ListingCache
}

// NewSessionService creates a new session service instance
func NewSessionService(sessionRepo repository.SessionStore, userRepo repository.UserStore, listingCache *cache.ListingCache) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		listingCache: listingCache,
	}
}

func sessionFromRequest(tutorEmail string, req *models.CreateSessionRequest) *models.StudySession {
	return &models.StudySession{
		TutorEmail:        tutorEmail,
		TutorName:         req.TutorName,
		Title:             req.Title,
		Description:       req.Description,
		Status:            req.Status,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		ClassStart:        req.ClassStart,
		ClassEnd:          req.ClassEnd,
		Duration:          req.Duration,
		RegistrationFee:   req.RegistrationFee,
		Image:             req.Image,
		Timestamp:         time.Now().UnixMilli(),
	}
}

// CreateSession creates a study session for the tutor identified by email.
// The caller's email must resolve to a stored user with role tutor; nothing
// is written otherwise.
func (s *SessionService) CreateSession(ctx context.Context, tutorEmail string, req *models.CreateSessionRequest) (*models.WriteResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, tutorEmail)
	if err != nil {
		metrics.SessionCreations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to look up tutor: %w", err)
	}
	if user == nil || user.Role != models.RoleTutor {
		metrics.SessionCreations.WithLabelValues("not_tutor").Inc()
		logger.Warn("Session creation rejected: caller is not a stored tutor",
			zap.String("email", tutorEmail))
		return nil, apperrors.ErrUnauthorized
	}

	session := sessionFromRequest(tutorEmail, req)
	if session.TutorName == "" {
		session.TutorName = user.Name
	}

	id, err := s.sessionRepo.Insert(ctx, session)
	if err != nil {
		metrics.SessionCreations.WithLabelValues("db_error").Inc()
		logger.Error("Failed to create session",
			zap.String("tutor_email", tutorEmail),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.listingCache.InvalidateSessions()
	metrics.SessionCreations.WithLabelValues("success").Inc()
	logger.Info("Study session created",
		zap.String("session_id", id),
		zap.String("tutor_email", tutorEmail),
		zap.String("title", req.Title))
	return models.Inserted(id), nil
}

// ApprovedSessions returns up to ApprovedSessionsLimit approved sessions,
// served from cache.
func (s *SessionService) ApprovedSessions(ctx context.Context) ([]*models.StudySession, error) {
	return s.listingCache.ApprovedSessions(ctx)
}

// ListSessions returns every study session.
func (s *SessionService) ListSessions(ctx context.Context) ([]*models.StudySession, error) {
	return s.sessionRepo.ListAll(ctx)
}

// GetSession fetches one session by id; a missing session yields (nil, nil).
func (s *SessionService) GetSession(ctx context.Context, id string) (*models.StudySession, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

// TutorSessions returns the sessions created by one tutor.
func (s *SessionService) TutorSessions(ctx context.Context, tutorEmail string) ([]*models.StudySession, error) {
	return s.sessionRepo.ListByTutor(ctx, tutorEmail)
}

// GetTutorSession fetches one session owned by (tutorEmail, id).
func (s *SessionService) GetTutorSession(ctx context.Context, tutorEmail, id string) (*models.StudySession, error) {
	return s.sessionRepo.GetByTutorAndID(ctx, tutorEmail, id)
}

// UpdateTutorSession upserts a session under (tutorEmail, id).
func (s *SessionService) UpdateTutorSession(ctx context.Context, tutorEmail, id string, req *models.CreateSessionRequest) (*models.WriteResult, error) {
	session := sessionFromRequest(tutorEmail, req)
	session.ID = id

	result, err := s.sessionRepo.UpsertByTutorAndID(ctx, session)
	if err != nil {
		logger.Error("Failed to update session",
			zap.String("session_id", id),
			zap.String("tutor_email", tutorEmail),
			zap.Error(err))
		return nil, err
	}

	s.listingCache.InvalidateSessions()
	logger.Info("Study session updated",
		zap.String("session_id", id),
		zap.String("tutor_email", tutorEmail))
	return result, nil
}

// DeleteTutorSession deletes a session owned by (tutorEmail, id). Deleting a
// missing session is not an error; the result reports zero matches.
func (s *SessionService) DeleteTutorSession(ctx context.Context, tutorEmail, id string) (*models.WriteResult, error) {
	deleted, err := s.sessionRepo.DeleteByTutorAndID(ctx, tutorEmail, id)
	if err != nil {
		logger.Error("Failed to delete session",
			zap.String("session_id", id),
			zap.String("tutor_email", tutorEmail),
			zap.Error(err))
		return nil, err
	}

	s.listingCache.InvalidateSessions()
	logger.Info("Study session deleted",
		zap.String("session_id", id),
		zap.String("tutor_email", tutorEmail),
		zap.Int64("deleted", deleted))
	return &models.WriteResult{Ok: true, ID: id, Matched: deleted, Modified: deleted}, nil
}
