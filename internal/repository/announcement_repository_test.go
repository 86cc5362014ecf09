package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

type sourceStub struct {
	records []models.Announcement
	err     error
	calls   int
}

func (s *sourceStub) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type cacheStub struct {
	values map[string][]byte
	getErr error
	sets   int
}

func newCacheStub() *cacheStub {
	return &cacheStub{values: map[string][]byte{}}
}

func (c *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	if c.getErr != nil {
		return c.getErr
	}
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func sampleSnapshot() []models.Announcement {
	return []models.Announcement{
		{ID: "rec1", Title: "Field Trip", Sender: "Ms. Lee", CreatedAt: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func TestSnapshotFetchesAndPopulatesCache(t *testing.T) {
	source := &sourceStub{records: sampleSnapshot()}
	cache := newCacheStub()
	repo := NewAnnouncementRepository(source, cache, time.Minute, nil)

	records, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1, cache.sets)

	// second call is served from cache
	records, err = repo.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, source.calls)
}

func TestSnapshotCacheFailureDegradesToFetch(t *testing.T) {
	source := &sourceStub{records: sampleSnapshot()}
	cache := newCacheStub()
	cache.getErr = errors.New("redis down")
	repo := NewAnnouncementRepository(source, cache, time.Minute, nil)

	records, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, source.calls)
}

func TestRefreshBypassesCache(t *testing.T) {
	source := &sourceStub{records: sampleSnapshot()}
	cache := newCacheStub()
	repo := NewAnnouncementRepository(source, cache, time.Minute, nil)

	_, err := repo.Snapshot(context.Background())
	require.NoError(t, err)

	_, err = repo.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
	assert.Equal(t, 2, cache.sets)
}

func TestSnapshotSourceFailurePropagates(t *testing.T) {
	source := &sourceStub{err: appErrors.Clone(appErrors.ErrUpstream, "airtable responded with status 500")}
	repo := NewAnnouncementRepository(source, newCacheStub(), time.Minute, nil)

	_, err := repo.Snapshot(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
