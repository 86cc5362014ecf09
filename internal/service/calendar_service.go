package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/schoolconnect/schoolconnect-api/internal/calendar"
	"github.com/schoolconnect/schoolconnect-api/internal/models"
	"github.com/schoolconnect/schoolconnect-api/internal/webhook"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

type eventDeliverer interface {
	Deliver(ctx context.Context, payload webhook.EventPayload) (*webhook.DeliveryResult, error)
}

// CalendarService turns raw event parameters into validated events and hands
// them to the delivery collaborator. Classification itself lives in the
// calendar package; this service only orchestrates.
type CalendarService struct {
	deliverer eventDeliverer
	settings  calendar.Settings
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(deliverer eventDeliverer, settings calendar.Settings, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{deliverer: deliverer, settings: settings, validator: validate, logger: logger}
}

// CreateEventRequest describes an event creation payload.
type CreateEventRequest struct {
	Title              string  `json:"title" validate:"required"`
	Date               string  `json:"date" validate:"required"`
	Description        string  `json:"description"`
	Location           string  `json:"location"`
	EventType          string  `json:"event_type"`
	StartTime          string  `json:"start_time"`
	DurationHours      float64 `json:"duration_hours" validate:"omitempty,gt=0"`
	WithReminder       bool    `json:"with_reminder"`
	ReminderDaysBefore *int    `json:"reminder_days_before" validate:"omitempty,gte=0"`
}

// CreateReminderRequest describes a standalone reminder payload.
type CreateReminderRequest struct {
	Title              string `json:"title" validate:"required"`
	MainEventDate      string `json:"main_event_date" validate:"required"`
	Description        string `json:"description"`
	ReminderDaysBefore *int   `json:"reminder_days_before" validate:"omitempty,gte=0"`
}

// CreatedEvent reports a delivered event back to the caller.
type CreatedEvent struct {
	Event         models.CalendarEvent `json:"event"`
	EventID       string               `json:"event_id,omitempty"`
	Reminder      *CreatedEvent        `json:"reminder,omitempty"`
	ReminderError string               `json:"reminder_error,omitempty"`
}

// CreateEvent classifies, formats and delivers one calendar event. When the
// request asks for a reminder too, a reminder failure is reported alongside
// the created event rather than rolling it back.
func (s *CalendarService) CreateEvent(ctx context.Context, req CreateEventRequest) (*CreatedEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event request")
	}

	event, err := calendar.ClassifyAndFormat(calendar.EventParams{
		Title:         req.Title,
		Date:          req.Date,
		Description:   req.Description,
		Location:      req.Location,
		EventType:     models.EventType(req.EventType),
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
	}, s.settings)
	if err != nil {
		return nil, err
	}

	result, err := s.deliverer.Deliver(ctx, webhook.PayloadFor(event))
	if err != nil {
		return nil, err
	}

	created := &CreatedEvent{Event: event, EventID: result.EventID}
	s.logger.Info("calendar event created",
		zap.String("title", event.Title),
		zap.String("event_type", string(event.EventType)),
	)

	if !req.WithReminder {
		return created, nil
	}

	reminder, err := s.deliverReminder(ctx, event, s.daysBefore(req.ReminderDaysBefore))
	if err != nil {
		s.logger.Warn("reminder delivery failed", zap.String("title", event.Title), zap.Error(err))
		created.ReminderError = appErrors.FromError(err).Message
		return created, nil
	}
	created.Reminder = reminder
	return created, nil
}

// CreateReminder derives and delivers a reminder for an event that already
// exists on the calendar.
func (s *CalendarService) CreateReminder(ctx context.Context, req CreateReminderRequest) (*CreatedEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reminder request")
	}

	// Validate the main event shape without delivering it.
	mainEvent, err := calendar.ClassifyAndFormat(calendar.EventParams{
		Title:       req.Title,
		Date:        req.MainEventDate,
		Description: req.Description,
		EventType:   models.EventTypeAllDay,
	}, s.settings)
	if err != nil {
		return nil, err
	}

	return s.deliverReminder(ctx, mainEvent, s.daysBefore(req.ReminderDaysBefore))
}

func (s *CalendarService) deliverReminder(ctx context.Context, event models.CalendarEvent, daysBefore int) (*CreatedEvent, error) {
	reminder, err := calendar.DeriveReminder(event, daysBefore)
	if err != nil {
		return nil, err
	}

	result, err := s.deliverer.Deliver(ctx, webhook.PayloadFor(reminder.Event))
	if err != nil {
		return nil, err
	}

	s.logger.Info("reminder created",
		zap.String("title", reminder.Event.Title),
		zap.Int("days_before", reminder.DaysBefore),
	)
	return &CreatedEvent{Event: reminder.Event, EventID: result.EventID}, nil
}

func (s *CalendarService) daysBefore(requested *int) int {
	if requested == nil {
		return s.settings.ReminderDaysBefore
	}
	return *requested
}
