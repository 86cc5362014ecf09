package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	"github.com/schoolconnect/schoolconnect-api/pkg/config"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

// Client fetches announcement records from an Airtable base. It is a thin
// read-only collaborator: no caching, no mutation, one snapshot per call.
type Client struct {
	baseURL string
	apiKey  string
	baseID  string
	table   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.AirtableConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		baseID:  cfg.BaseID,
		table:   cfg.Table,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset"`
}

type record struct {
	ID     string `json:"id"`
	Fields struct {
		Title       string `json:"Title"`
		Description string `json:"Description"`
		SentBy      string `json:"SentBy"`
		SentTime    string `json:"SentTime"`
	} `json:"fields"`
}

// ListAnnouncements retrieves every announcement in the table, following
// Airtable's offset pagination, and returns them most recent first.
func (c *Client) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var all []models.Announcement
	offset := ""

	for {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		for _, rec := range page.Records {
			all = append(all, toAnnouncement(rec))
		}
		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	c.logger.Debug("fetched announcements", zap.Int("count", len(all)))
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, offset string) (*listResponse, error) {
	endpoint := fmt.Sprintf("%s/v0/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(c.table))
	if offset != "" {
		endpoint += "?offset=" + url.QueryEscape(offset)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "build airtable request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "airtable request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("airtable responded with status %d", resp.StatusCode))
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode airtable response")
	}
	return &page, nil
}

func toAnnouncement(rec record) models.Announcement {
	createdAt, err := time.Parse(time.RFC3339, rec.Fields.SentTime)
	if err != nil {
		// Some rows carry a bare date instead of a timestamp.
		createdAt, _ = time.Parse("2006-01-02", rec.Fields.SentTime)
	}
	return models.Announcement{
		ID:        rec.ID,
		Title:     rec.Fields.Title,
		Body:      rec.Fields.Description,
		Sender:    rec.Fields.SentBy,
		CreatedAt: createdAt,
	}
}
