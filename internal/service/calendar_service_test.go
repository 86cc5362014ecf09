package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolconnect/schoolconnect-api/internal/calendar"
	"github.com/schoolconnect/schoolconnect-api/internal/models"
	"github.com/schoolconnect/schoolconnect-api/internal/webhook"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

type delivererStub struct {
	payloads []webhook.EventPayload
	eventIDs []string
	errs     []error
}

func (d *delivererStub) Deliver(ctx context.Context, payload webhook.EventPayload) (*webhook.DeliveryResult, error) {
	idx := len(d.payloads)
	d.payloads = append(d.payloads, payload)
	if idx < len(d.errs) && d.errs[idx] != nil {
		return nil, d.errs[idx]
	}
	id := ""
	if idx < len(d.eventIDs) {
		id = d.eventIDs[idx]
	}
	return &webhook.DeliveryResult{EventID: id}, nil
}

func newCalendarService(deliverer eventDeliverer) *CalendarService {
	return NewCalendarService(deliverer, calendar.DefaultSettings(), nil, nil)
}

func TestCalendarServiceCreateEventDelivers(t *testing.T) {
	deliverer := &delivererStub{eventIDs: []string{"evt_1"}}
	svc := newCalendarService(deliverer)

	created, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		Title: "Science Fair",
		Date:  "2025-06-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "evt_1", created.EventID)
	assert.Equal(t, models.EventTypeAllDay, created.Event.EventType)
	require.Len(t, deliverer.payloads, 1)
	assert.True(t, deliverer.payloads[0].AllDay)
}

func TestCalendarServiceCreateEventRejectsMissingTitle(t *testing.T) {
	svc := newCalendarService(&delivererStub{})

	_, err := svc.CreateEvent(context.Background(), CreateEventRequest{Date: "2025-06-10"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCalendarServiceCreateEventWithReminder(t *testing.T) {
	deliverer := &delivererStub{eventIDs: []string{"evt_1", "evt_2"}}
	svc := newCalendarService(deliverer)

	created, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		Title:        "Science Fair",
		Date:         "2025-06-10",
		WithReminder: true,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Reminder)
	assert.Equal(t, "evt_2", created.Reminder.EventID)
	assert.Equal(t, "REMINDER: Science Fair", created.Reminder.Event.Title)
	// Default settings put the reminder three days ahead of the event.
	assert.Equal(t, time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC), created.Reminder.Event.StartDate)
	require.Len(t, deliverer.payloads, 2)
}

func TestCalendarServiceCreateEventReminderFailureKeepsEvent(t *testing.T) {
	deliverer := &delivererStub{
		eventIDs: []string{"evt_1"},
		errs:     []error{nil, appErrors.Clone(appErrors.ErrUpstream, "webhook rejected reminder")},
	}
	svc := newCalendarService(deliverer)

	created, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		Title:        "Science Fair",
		Date:         "2025-06-10",
		WithReminder: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "evt_1", created.EventID)
	assert.Nil(t, created.Reminder)
	assert.Equal(t, "webhook rejected reminder", created.ReminderError)
}

func TestCalendarServiceCreateEventDeliveryFailure(t *testing.T) {
	deliverer := &delivererStub{errs: []error{appErrors.Clone(appErrors.ErrUpstream, "webhook down")}}
	svc := newCalendarService(deliverer)

	_, err := svc.CreateEvent(context.Background(), CreateEventRequest{Title: "Science Fair", Date: "2025-06-10"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
	// Reminder delivery must not be attempted after a failed event.
	assert.Len(t, deliverer.payloads, 1)
}

func TestCalendarServiceCreateReminderCustomDays(t *testing.T) {
	deliverer := &delivererStub{eventIDs: []string{"evt_9"}}
	svc := newCalendarService(deliverer)

	days := 7
	created, err := svc.CreateReminder(context.Background(), CreateReminderRequest{
		Title:              "Permission Slips Due",
		MainEventDate:      "2025-06-10",
		ReminderDaysBefore: &days,
	})
	require.NoError(t, err)
	assert.Equal(t, "evt_9", created.EventID)
	assert.Equal(t, "REMINDER: Permission Slips Due", created.Event.Title)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), created.Event.StartDate)
	// Only the reminder itself is delivered, never the main event.
	assert.Len(t, deliverer.payloads, 1)
}

func TestCalendarServiceCreateReminderRejectsBadDate(t *testing.T) {
	svc := newCalendarService(&delivererStub{})

	_, err := svc.CreateReminder(context.Background(), CreateReminderRequest{
		Title:         "Permission Slips Due",
		MainEventDate: "June tenth",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCalendarServiceCreateReminderRejectsNegativeDays(t *testing.T) {
	svc := newCalendarService(&delivererStub{})

	days := -1
	_, err := svc.CreateReminder(context.Background(), CreateReminderRequest{
		Title:              "Permission Slips Due",
		MainEventDate:      "2025-06-10",
		ReminderDaysBefore: &days,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
