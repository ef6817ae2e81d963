package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studymate/studymate-api/internal/cache"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/internal/repository"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
	"github.com/studymate/studymate-api/pkg/logger"
	"github.com/studymate/studymate-api/pkg/metrics"
	"go.uber.org/zap"
)

// ImageStorage is the object storage surface profile uploads need.
type ImageStorage interface {
	UploadImage(ctx context.Context, imageData, key, contentType string) (string, error)
	ValidateImageType(contentType string) error
	ValidateImageSize(imageData string) error
}

// ProfileService handles tutor profile media
type ProfileService struct {
	userRepo     repository.UserStore
	storage      ImageStorage
	listingCache *cache.ListingCache
}

// NewProfileService creates a new profile service instance
func NewProfileService(userRepo repository.UserStore, storage ImageStorage, listingCache *cache.ListingCache) *ProfileService {
	return &ProfileService{
		userRepo:     userRepo,
		storage:      storage,
		listingCache: listingCache,
	}
}

// UploadAvatar validates and uploads an avatar image for the user identified
// by email, then stores the resulting public URL on the user record.
func (s *ProfileService) UploadAvatar(ctx context.Context, email string, req *models.UploadAvatarRequest) (string, error) {
	if s.storage == nil {
		return "", apperrors.InternalError("avatar storage is not configured")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", apperrors.ErrNotFound
	}

	if err := s.storage.ValidateImageType(req.ContentType); err != nil {
		metrics.AvatarUploads.WithLabelValues("invalid_type").Inc()
		return "", apperrors.InvalidInputError("contentType", err.Error())
	}
	if err := s.storage.ValidateImageSize(req.ImageData); err != nil {
		metrics.AvatarUploads.WithLabelValues("invalid_size").Inc()
		return "", apperrors.InvalidInputError("imageData", err.Error())
	}

	key := avatarKey(email, req.FileName)
	url, err := s.storage.UploadImage(ctx, req.ImageData, key, req.ContentType)
	if err != nil {
		metrics.AvatarUploads.WithLabelValues("upload_error").Inc()
		logger.Error("Avatar upload failed",
			zap.String("email", email),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if _, err := s.userRepo.UpdatePhotoURL(ctx, email, url); err != nil {
		metrics.AvatarUploads.WithLabelValues("db_error").Inc()
		return "", fmt.Errorf("failed to store avatar url: %w", err)
	}

	s.listingCache.InvalidateTutors()
	metrics.AvatarUploads.WithLabelValues("success").Inc()
	logger.Info("Avatar uploaded",
		zap.String("email", email),
		zap.String("key", key))
	return url, nil
}

// avatarKey builds a collision-free object key that keeps the original file
// extension.
func avatarKey(email, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		ext = ".png"
	}
	prefix := strings.NewReplacer("@", "_", ".", "_").Replace(email)
	return fmt.Sprintf("avatars/%s/%d-%s%s", prefix, time.Now().Unix(), uuid.NewString()[:8], ext)
}
