package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

const snapshotKey = "announcements:snapshot"

type announcementSource interface {
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type metricsObserver interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveUpstreamCall(target string, duration time.Duration, err error)
}

// AnnouncementRepository hands out announcement snapshots. The record source
// of truth lives in Airtable; Redis only shortens the distance to it. A cache
// failure degrades to a direct fetch and never fails the request.
type AnnouncementRepository struct {
	source  announcementSource
	cache   snapshotCache
	ttl     time.Duration
	logger  *zap.Logger
	metrics metricsObserver
}

// NewAnnouncementRepository constructs the repository.
func NewAnnouncementRepository(source announcementSource, cache snapshotCache, ttl time.Duration, logger *zap.Logger) *AnnouncementRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementRepository{source: source, cache: cache, ttl: ttl, logger: logger}
}

// WithMetrics attaches an observer for cache and upstream instrumentation.
func (r *AnnouncementRepository) WithMetrics(m metricsObserver) *AnnouncementRepository {
	r.metrics = m
	return r
}

// Snapshot returns the current announcement list, cache first.
func (r *AnnouncementRepository) Snapshot(ctx context.Context) ([]models.Announcement, error) {
	if r.cache != nil {
		var cached []models.Announcement
		start := time.Now()
		err := r.cache.Get(ctx, snapshotKey, &cached)
		if r.metrics != nil {
			r.metrics.RecordCacheOperation(err == nil, time.Since(start))
		}
		if err == nil {
			return cached, nil
		}
		if appErrors.FromError(err).Code != appErrors.ErrCacheMiss.Code {
			r.logger.Warn("snapshot cache read failed", zap.Error(err))
		}
	}

	return r.Refresh(ctx)
}

// Refresh fetches a fresh snapshot from the source and repopulates the cache.
func (r *AnnouncementRepository) Refresh(ctx context.Context) ([]models.Announcement, error) {
	start := time.Now()
	records, err := r.source.ListAnnouncements(ctx)
	if r.metrics != nil {
		r.metrics.ObserveUpstreamCall("airtable", time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, snapshotKey, records, r.ttl); err != nil {
			r.logger.Warn("snapshot cache write failed", zap.Error(err))
		}
	}

	r.logger.Debug("announcement snapshot refreshed", zap.Int("count", len(records)))
	return records, nil
}
