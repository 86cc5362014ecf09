package models

import "time"

// EventType distinguishes all-day entries from timed ones.
type EventType string

const (
	EventTypeAuto   EventType = "auto"
	EventTypeAllDay EventType = "all_day"
	EventTypeTimed  EventType = "timed"
)

// CalendarEvent is a validated calendar entry ready for delivery.
// A timed event always carries StartTime; an all-day event never does.
type CalendarEvent struct {
	Title         string    `json:"title"`
	EventType     EventType `json:"event_type"`
	StartDate     time.Time `json:"start_date"`
	StartTime     string    `json:"start_time,omitempty"`
	DurationHours float64   `json:"duration_hours,omitempty"`
	Description   string    `json:"description,omitempty"`
	Location      string    `json:"location,omitempty"`
}

// Reminder is an all-day event derived from a main event, dated a number of
// days before it. Constructed on demand and handed straight to delivery.
type Reminder struct {
	Event         CalendarEvent `json:"event"`
	MainEventDate time.Time     `json:"main_event_date"`
	DaysBefore    int           `json:"days_before"`
}
