package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

func allDayEvent() models.CalendarEvent {
	return models.CalendarEvent{
		Title:     "Sports Day",
		EventType: models.EventTypeAllDay,
		StartDate: time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC),
	}
}

func timedEvent() models.CalendarEvent {
	return models.CalendarEvent{
		Title:         "Recital",
		EventType:     models.EventTypeTimed,
		StartDate:     time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
		StartTime:     "18:00",
		DurationHours: 1.5,
		Location:      "Auditorium",
	}
}

func TestPayloadForAllDay(t *testing.T) {
	payload := PayloadFor(allDayEvent())

	assert.True(t, payload.AllDay)
	assert.Equal(t, "2025-04-20", payload.StartDate)
	assert.Equal(t, "2025-04-21", payload.EndDate)
	assert.Equal(t, "2025-04-20T00:00:00", payload.StartDateTime)
	assert.Equal(t, "2025-04-21T00:00:00", payload.EndDateTime)
	assert.NotEmpty(t, payload.RequestID)
}

func TestPayloadForTimed(t *testing.T) {
	payload := PayloadFor(timedEvent())

	assert.False(t, payload.AllDay)
	assert.Equal(t, "2025-06-20", payload.StartDate)
	assert.Equal(t, "2025-06-20", payload.EndDate)
	assert.Equal(t, "2025-06-20T18:00:00", payload.StartDateTime)
	assert.Equal(t, "2025-06-20T19:30:00", payload.EndDateTime)
	assert.Equal(t, "Auditorium", payload.Location)
}

func TestDeliverPostsAndExtractsEventID(t *testing.T) {
	var received EventPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		fmt.Fprint(w, `{"event_id":"evt-123"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)
	result, err := client.Deliver(context.Background(), PayloadFor(timedEvent()))
	require.NoError(t, err)

	assert.Equal(t, "evt-123", result.EventID)
	assert.Equal(t, "Recital", received.Title)
	assert.Equal(t, received.RequestID, result.RequestID)
}

func TestDeliverNestedEventID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"event":{"id":"evt-456"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)
	result, err := client.Deliver(context.Background(), PayloadFor(allDayEvent()))
	require.NoError(t, err)
	assert.Equal(t, "evt-456", result.EventID)
}

func TestDeliverUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)
	_, err := client.Deliver(context.Background(), PayloadFor(allDayEvent()))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}

func TestDeliverWithoutWebhookURL(t *testing.T) {
	client := NewClient("", 5*time.Second, nil)
	_, err := client.Deliver(context.Background(), PayloadFor(allDayEvent()))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
