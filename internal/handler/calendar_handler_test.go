package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	"github.com/schoolconnect/schoolconnect-api/internal/service"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

type fakeCalendarSrv struct {
	created      *service.CreatedEvent
	err          error
	lastEvent    service.CreateEventRequest
	lastReminder service.CreateReminderRequest
}

func (f *fakeCalendarSrv) CreateEvent(_ context.Context, req service.CreateEventRequest) (*service.CreatedEvent, error) {
	f.lastEvent = req
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeCalendarSrv) CreateReminder(_ context.Context, req service.CreateReminderRequest) (*service.CreatedEvent, error) {
	f.lastReminder = req
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func postJSON(rec *httptest.ResponseRecorder, path, body string) *gin.Context {
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestCalendarHandlerCreateEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeCalendarSrv{created: &service.CreatedEvent{
		Event:   models.CalendarEvent{Title: "Science Fair", EventType: models.EventTypeTimed},
		EventID: "evt_1",
	}}
	handler := NewCalendarHandler(srv)

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/calendar/events", `{"title":"Science Fair","date":"2025-06-10","start_time":"14:30"}`)

	handler.CreateEvent(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Science Fair", srv.lastEvent.Title)
	assert.Equal(t, "14:30", srv.lastEvent.StartTime)
}

func TestCalendarHandlerCreateEventMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCalendarHandler(&fakeCalendarSrv{})

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/calendar/events", `{"title":`)

	handler.CreateEvent(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarHandlerCreateEventUpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCalendarHandler(&fakeCalendarSrv{err: appErrors.Clone(appErrors.ErrUpstream, "webhook down")})

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/calendar/events", `{"title":"Science Fair","date":"2025-06-10"}`)

	handler.CreateEvent(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCalendarHandlerCreateReminder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeCalendarSrv{created: &service.CreatedEvent{
		Event:   models.CalendarEvent{Title: "REMINDER: Science Fair", EventType: models.EventTypeAllDay},
		EventID: "evt_2",
	}}
	handler := NewCalendarHandler(srv)

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/calendar/reminders", `{"title":"Science Fair","main_event_date":"2025-06-10","reminder_days_before":5}`)

	handler.CreateReminder(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Science Fair", srv.lastReminder.Title)
	assert.NotNil(t, srv.lastReminder.ReminderDaysBefore)
	assert.Equal(t, 5, *srv.lastReminder.ReminderDaysBefore)
}
