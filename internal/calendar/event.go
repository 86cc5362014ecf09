package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Settings are the event defaults applied during classification. The value is
// immutable and passed explicitly; nothing in this package holds state.
type Settings struct {
	DefaultStartTime     string
	DefaultDurationHours float64
	ReminderDaysBefore   int
}

// DefaultSettings mirrors the configuration defaults.
func DefaultSettings() Settings {
	return Settings{
		DefaultStartTime:     "09:00",
		DefaultDurationHours: 1,
		ReminderDaysBefore:   3,
	}
}

// EventParams are the raw, untrusted parameters of an event request.
type EventParams struct {
	Title         string
	Date          string
	Description   string
	Location      string
	EventType     models.EventType
	StartTime     string
	DurationHours float64
}

// ClassifyAndFormat validates the parameters, decides the event shape and
// returns a delivery-ready CalendarEvent.
//
// With event_type "auto" (or omitted) the event is timed exactly when a start
// time was supplied. An explicit "timed" request without a start time is a
// validation error; an explicit "all_day" request silently drops any supplied
// time or duration so callers passing extra fields are not punished.
func ClassifyAndFormat(params EventParams, s Settings) (models.CalendarEvent, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return models.CalendarEvent{}, appErrors.Clone(appErrors.ErrValidation, "title must not be empty")
	}

	startDate, err := time.Parse(dateLayout, params.Date)
	if err != nil {
		return models.CalendarEvent{},
			appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("date %q is not a valid YYYY-MM-DD date", params.Date))
	}

	startTime := strings.TrimSpace(params.StartTime)

	eventType := params.EventType
	switch eventType {
	case models.EventTypeAuto, "":
		if startTime != "" {
			eventType = models.EventTypeTimed
		} else {
			eventType = models.EventTypeAllDay
		}
	case models.EventTypeAllDay, models.EventTypeTimed:
	default:
		return models.CalendarEvent{},
			appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("event_type %q is not one of auto, all_day, timed", params.EventType))
	}

	event := models.CalendarEvent{
		Title:       title,
		EventType:   eventType,
		StartDate:   startDate,
		Description: params.Description,
		Location:    params.Location,
	}

	if eventType == models.EventTypeAllDay {
		return event, nil
	}

	if startTime == "" {
		return models.CalendarEvent{}, appErrors.Clone(appErrors.ErrValidation, "timed event requires start_time")
	}
	if _, err := time.Parse(timeLayout, startTime); err != nil {
		return models.CalendarEvent{},
			appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("start_time %q is not a valid HH:MM time", startTime))
	}

	duration := params.DurationHours
	if duration == 0 {
		duration = s.DefaultDurationHours
	}
	if duration <= 0 {
		return models.CalendarEvent{},
			appErrors.Clone(appErrors.ErrValidation, "duration_hours must be a positive number")
	}

	event.StartTime = startTime
	event.DurationHours = duration
	return event, nil
}

// DeriveReminder builds the always-all-day reminder for a main event, dated
// exactly daysBefore days earlier. Negative values are rejected; defaulting
// when the field is omitted is the caller's concern. Subtracting days from a
// valid date cannot produce an invalid one, so derivation itself never fails
// past that check.
func DeriveReminder(event models.CalendarEvent, daysBefore int) (models.Reminder, error) {
	if daysBefore < 0 {
		return models.Reminder{}, appErrors.Clone(appErrors.ErrValidation, "reminder_days_before must be >= 0")
	}

	description := fmt.Sprintf("Reminder for upcoming event: %s\nMain event date: %s",
		event.Title, event.StartDate.Format(dateLayout))
	if event.Description != "" {
		description += "\n\n" + event.Description
	}

	return models.Reminder{
		Event: models.CalendarEvent{
			Title:       "REMINDER: " + event.Title,
			EventType:   models.EventTypeAllDay,
			StartDate:   event.StartDate.AddDate(0, 0, -daysBefore),
			Description: description,
			Location:    event.Location,
		},
		MainEventDate: event.StartDate,
		DaysBefore:    daysBefore,
	}, nil
}
