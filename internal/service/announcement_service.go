package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/schoolconnect/schoolconnect-api/internal/dates"
	"github.com/schoolconnect/schoolconnect-api/internal/models"
	"github.com/schoolconnect/schoolconnect-api/internal/search"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

type snapshotProvider interface {
	Snapshot(ctx context.Context) ([]models.Announcement, error)
}

type searchEngine interface {
	Search(records []models.Announcement, q models.SearchQuery) ([]models.ScoredResult, error)
}

// AnnouncementService implements the announcement tool computations: ranked
// search, recent listing and date-range listing over record snapshots.
type AnnouncementService struct {
	provider  snapshotProvider
	engine    searchEngine
	resolver  *dates.Resolver
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time

	defaultLimit int
	maxLimit     int
}

// AnnouncementServiceConfig carries service tuning.
type AnnouncementServiceConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(provider snapshotProvider, engine searchEngine, resolver *dates.Resolver, cfg AnnouncementServiceConfig, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = search.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = search.MaxLimit
	}
	return &AnnouncementService{
		provider:     provider,
		engine:       engine,
		resolver:     resolver,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
		defaultLimit: cfg.DefaultLimit,
		maxLimit:     cfg.MaxLimit,
	}
}

// SearchRequest describes a ranked search call.
type SearchRequest struct {
	Query  string `json:"query" validate:"required"`
	Sender string `json:"sender"`
	Date   string `json:"date"`
	Limit  int    `json:"limit" validate:"omitempty,gte=1"`
}

// Search runs the ranked search over the current snapshot.
func (s *AnnouncementService) Search(ctx context.Context, req SearchRequest) ([]models.ScoredResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid search request")
	}

	records, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.engine.Search(records, models.SearchQuery{
		Text:         req.Query,
		SenderFilter: req.Sender,
		DateFilter:   req.Date,
		Limit:        s.clampLimit(req.Limit),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("announcement search",
		zap.String("query", req.Query),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// recentDefaultLimit applies to the recent listing when no limit is given. It
// is tighter than the search default because the listing has no relevance cut.
const recentDefaultLimit = 10

// Recent returns the most recent announcements; the snapshot already arrives
// most recent first.
func (s *AnnouncementService) Recent(ctx context.Context, limit int) ([]models.Announcement, error) {
	records, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = recentDefaultLimit
	}
	limit = s.clampLimit(limit)
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// ByDateResult carries date-range listing output with the resolved interval.
type ByDateResult struct {
	Range         dates.Range           `json:"range"`
	Announcements []models.Announcement `json:"announcements"`
}

// ByDate lists announcements whose creation date falls inside the range the
// phrase resolves to. No relevance ranking; snapshot order (recency) holds.
func (s *AnnouncementService) ByDate(ctx context.Context, phrase string, limit int) (*ByDateResult, error) {
	rng, err := s.resolver.Resolve(phrase, s.now())
	if err != nil {
		return nil, err
	}

	records, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	limit = s.clampLimit(limit)
	matched := make([]models.Announcement, 0, limit)
	for _, rec := range records {
		if !rng.Contains(rec.CreatedAt) {
			continue
		}
		matched = append(matched, rec)
		if len(matched) == limit {
			break
		}
	}

	return &ByDateResult{Range: rng, Announcements: matched}, nil
}

func (s *AnnouncementService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
