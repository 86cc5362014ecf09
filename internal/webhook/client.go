package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

// EventPayload is the document posted to the n8n calendar webhook. It carries
// both date and datetime representations so all-day and timed automations can
// consume the same payload.
type EventPayload struct {
	RequestID     string `json:"request_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Location      string `json:"location,omitempty"`
	AllDay        bool   `json:"all_day"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartDateTime string `json:"start_datetime"`
	EndDateTime   string `json:"end_datetime"`
}

// DeliveryResult reports the webhook's answer for a delivered event.
type DeliveryResult struct {
	EventID   string `json:"event_id,omitempty"`
	RequestID string `json:"request_id"`
}

// Client posts finished calendar events to the configured webhook. It never
// shapes events itself; payload construction happens in PayloadFor.
type Client struct {
	webhookURL string
	http       *http.Client
	logger     *zap.Logger
}

// NewClient builds a delivery client.
func NewClient(webhookURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// PayloadFor shapes a validated event into the webhook document. All-day
// events span [date, date+1) per calendar convention; timed events run from
// the start time for the event's duration.
func PayloadFor(event models.CalendarEvent) EventPayload {
	payload := EventPayload{
		RequestID:   uuid.NewString(),
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
	}

	if event.EventType == models.EventTypeAllDay {
		payload.AllDay = true
		payload.StartDate = event.StartDate.Format("2006-01-02")
		payload.EndDate = event.StartDate.AddDate(0, 0, 1).Format("2006-01-02")
		payload.StartDateTime = event.StartDate.Format("2006-01-02T15:04:05")
		payload.EndDateTime = event.StartDate.AddDate(0, 0, 1).Format("2006-01-02T15:04:05")
		return payload
	}

	start, _ := time.Parse("2006-01-02 15:04",
		event.StartDate.Format("2006-01-02")+" "+event.StartTime)
	end := start.Add(time.Duration(event.DurationHours * float64(time.Hour)))

	payload.StartDate = event.StartDate.Format("2006-01-02")
	payload.EndDate = event.StartDate.Format("2006-01-02")
	payload.StartDateTime = start.Format("2006-01-02T15:04:05")
	payload.EndDateTime = end.Format("2006-01-02T15:04:05")
	return payload
}

// Deliver posts the payload and extracts an event id from the response when
// the automation returns one.
func (c *Client) Deliver(ctx context.Context, payload EventPayload) (*DeliveryResult, error) {
	if c.webhookURL == "" {
		return nil, appErrors.Clone(appErrors.ErrUpstream, "no calendar webhook configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "marshal webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "calendar webhook call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("calendar webhook responded with status %d", resp.StatusCode))
	}

	result := &DeliveryResult{RequestID: payload.RequestID}

	var answer map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&answer); err == nil {
		result.EventID = extractEventID(answer)
	}

	c.logger.Info("calendar event delivered",
		zap.String("title", payload.Title),
		zap.Bool("all_day", payload.AllDay),
		zap.String("event_id", result.EventID),
	)
	return result, nil
}

// extractEventID digs through the known response shapes the automation has
// used for the created event's id.
func extractEventID(answer map[string]interface{}) string {
	for _, key := range []string{"event_id", "eventId", "id"} {
		if v, ok := answer[key].(string); ok && v != "" {
			return v
		}
	}
	if nested, ok := answer["event"].(map[string]interface{}); ok {
		if v, ok := nested["id"].(string); ok {
			return v
		}
	}
	return ""
}
