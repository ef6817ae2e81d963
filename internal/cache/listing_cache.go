package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/pkg/logger"
	"github.com/studymate/studymate-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	approvedSessionsKey = "sessions:approved"
	verifiedTutorsKey   = "tutors:verified"
	cacheCheckPeriod    = 10 * time.Second
)

// SessionFetcher loads the approved-sessions listing from the store.
type SessionFetcher func(ctx context.Context) ([]*models.StudySession, error)

// TutorFetcher loads the verified-tutors listing from the store.
type TutorFetcher func(ctx context.Context) ([]*models.User, error)

// ListingCache is a read-through TTL cache for the two hot public listings:
// the approved-sessions carousel and the verified-tutors page. Writes to
// sessions or users invalidate it.
type ListingCache struct {
	cache         *gocache.Cache
	fetchSessions SessionFetcher
	fetchTutors   TutorFetcher
	disabled      bool
}

// NewListingCache creates a listing cache with the given TTL. When disabled,
// every read goes straight to the store.
func NewListingCache(fetchSessions SessionFetcher, fetchTutors TutorFetcher, ttlSeconds int, disabled bool) *ListingCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &ListingCache{
		cache:         gocache.New(ttl, cacheCheckPeriod),
		fetchSessions: fetchSessions,
		fetchTutors:   fetchTutors,
		disabled:      disabled,
	}
}

// ApprovedSessions returns the approved-sessions listing, from cache when
// fresh.
func (lc *ListingCache) ApprovedSessions(ctx context.Context) ([]*models.StudySession, error) {
	if lc.disabled {
		return lc.fetchSessions(ctx)
	}

	if data, found := lc.cache.Get(approvedSessionsKey); found {
		if sessions, ok := data.([]*models.StudySession); ok {
			metrics.CacheHits.WithLabelValues("approved_sessions").Inc()
			return sessions, nil
		}
		// wrong type means a stale writer bug; drop the entry and refetch
		lc.cache.Delete(approvedSessionsKey)
	}

	metrics.CacheMisses.WithLabelValues("approved_sessions").Inc()
	sessions, err := lc.fetchSessions(ctx)
	if err != nil {
		return nil, err
	}
	lc.cache.SetDefault(approvedSessionsKey, sessions)
	return sessions, nil
}

// VerifiedTutors returns the verified-tutors listing, from cache when fresh.
func (lc *ListingCache) VerifiedTutors(ctx context.Context) ([]*models.User, error) {
	if lc.disabled {
		return lc.fetchTutors(ctx)
	}

	if data, found := lc.cache.Get(verifiedTutorsKey); found {
		if tutors, ok := data.([]*models.User); ok {
			metrics.CacheHits.WithLabelValues("verified_tutors").Inc()
			return tutors, nil
		}
		lc.cache.Delete(verifiedTutorsKey)
	}

	metrics.CacheMisses.WithLabelValues("verified_tutors").Inc()
	tutors, err := lc.fetchTutors(ctx)
	if err != nil {
		return nil, err
	}
	lc.cache.SetDefault(verifiedTutorsKey, tutors)
	return tutors, nil
}

// InvalidateSessions drops the cached approved-sessions listing.
func (lc *ListingCache) InvalidateSessions() {
	lc.cache.Delete(approvedSessionsKey)
	logger.Debug("Listing cache invalidated", zap.String("key", approvedSessionsKey))
}

// InvalidateTutors drops the cached verified-tutors listing.
func (lc *ListingCache) InvalidateTutors() {
	lc.cache.Delete(verifiedTutorsKey)
	logger.Debug("Listing cache invalidated", zap.String("key", verifiedTutorsKey))
}
