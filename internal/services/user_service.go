package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studymate/studymate-api/internal/cache"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/repository"
	"github.com/studymate/studymate-api/pkg/logger"
	"github.com/studymate/studymate-api/pkg/metrics"
	"go.uber.org/zap"
)

// UserService handles user records and the verified-tutors listing
type UserService struct {
	userRepo     repository.UserStore
	listingCache *cache.ListingCache
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repository.UserStore, listingCache *cache.ListingCache) *UserService {
	return &UserService{
		userRepo:     userRepo,
		listingCache: listingCache,
	}
}

// SaveUser saves a user keyed by email, preserving the login flow's
// semantics: a first login inserts the document; an existing user sending
// status "Requested" gets only the status updated; any other re-submission
// leaves the record untouched and returns it as-is. Exactly one of the two
// return values is non-nil on success.
func (s *UserService) SaveUser(ctx context.Context, req *models.SaveUserRequest) (*models.User, *models.WriteResult, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		metrics.UserUpserts.WithLabelValues("error").Inc()
		logger.Error("Failed to look up user", zap.String("email", req.Email), zap.Error(err))
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if existing != nil {
		if req.Status == models.StatusRequested {
			matched, err := s.userRepo.UpdateStatus(ctx, req.Email, req.Status)
			if err != nil {
				metrics.UserUpserts.WithLabelValues("error").Inc()
				logger.Error("Failed to update user status", zap.String("email", req.Email), zap.Error(err))
				return nil, nil, fmt.Errorf("failed to update user status: %w", err)
			}

			s.listingCache.InvalidateTutors()
			metrics.UserUpserts.WithLabelValues("status_updated").Inc()
			logger.Info("User status updated",
				zap.String("email", req.Email),
				zap.String("status", req.Status))
			return nil, models.Updated(existing.ID, matched), nil
		}

		// existing user logging in again
		metrics.UserUpserts.WithLabelValues("unchanged").Inc()
		return existing, nil, nil
	}

	user := &models.User{
		Email:     req.Email,
		Name:      req.Name,
		PhotoURL:  req.PhotoURL,
		Role:      req.Role,
		Status:    req.Status,
		Timestamp: time.Now().UnixMilli(),
	}

	result, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		metrics.UserUpserts.WithLabelValues("error").Inc()
		logger.Error("Failed to save user", zap.String("email", req.Email), zap.Error(err))
		return nil, nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.listingCache.InvalidateTutors()
	metrics.UserUpserts.WithLabelValues("created").Inc()
	logger.Info("User created",
		zap.String("email", req.Email),
		zap.String("role", user.Role))
	return nil, result, nil
}

// GetUser fetches one user by email; a missing user yields (nil, nil).
func (s *UserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// ListUsers returns every user.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListAll(ctx)
}

// ListTutors returns the verified tutors listing, served from cache.
func (s *UserService) ListTutors(ctx context.Context) ([]*models.User, error) {
	return s.listingCache.VerifiedTutors(ctx)
}
