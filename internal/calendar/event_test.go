package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

func requireValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClassifyAutoWithStartTimeIsTimed(t *testing.T) {
	event, err := ClassifyAndFormat(EventParams{
		Title:     "Parent Teacher Conference",
		Date:      "2025-02-15",
		EventType: models.EventTypeAuto,
		StartTime: "14:30",
	}, DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, models.EventTypeTimed, event.EventType)
	assert.Equal(t, "14:30", event.StartTime)
	assert.Equal(t, 1.0, event.DurationHours)
	assert.Equal(t, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC), event.StartDate)
}

func TestClassifyAutoWithoutStartTimeIsAllDay(t *testing.T) {
	event, err := ClassifyAndFormat(EventParams{
		Title: "School Holiday",
		Date:  "2025-03-01",
	}, DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, models.EventTypeAllDay, event.EventType)
	assert.Empty(t, event.StartTime)
	assert.Zero(t, event.DurationHours)
}

func TestClassifyTimedWithoutStartTimeFails(t *testing.T) {
	_, err := ClassifyAndFormat(EventParams{
		Title:     "PTC",
		Date:      "2025-02-15",
		EventType: models.EventTypeTimed,
	}, DefaultSettings())
	requireValidationError(t, err)
}

func TestClassifyAllDayIgnoresTimeFields(t *testing.T) {
	event, err := ClassifyAndFormat(EventParams{
		Title:         "Sports Day",
		Date:          "2025-04-20",
		EventType:     models.EventTypeAllDay,
		StartTime:     "10:00",
		DurationHours: 2,
	}, DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, models.EventTypeAllDay, event.EventType)
	assert.Empty(t, event.StartTime)
	assert.Zero(t, event.DurationHours)
}

func TestClassifyValidationRules(t *testing.T) {
	settings := DefaultSettings()

	_, err := ClassifyAndFormat(EventParams{Title: "   ", Date: "2025-02-15"}, settings)
	requireValidationError(t, err)

	_, err = ClassifyAndFormat(EventParams{Title: "X", Date: "15-02-2025"}, settings)
	requireValidationError(t, err)

	_, err = ClassifyAndFormat(EventParams{Title: "X", Date: "2025-02-15", EventType: "weekly"}, settings)
	requireValidationError(t, err)

	_, err = ClassifyAndFormat(EventParams{Title: "X", Date: "2025-02-15", StartTime: "25:99"}, settings)
	requireValidationError(t, err)

	_, err = ClassifyAndFormat(EventParams{Title: "X", Date: "2025-02-15", StartTime: "10:00", DurationHours: -1}, settings)
	requireValidationError(t, err)
}

func TestClassifyDurationDefaultAndOverride(t *testing.T) {
	settings := Settings{DefaultStartTime: "09:00", DefaultDurationHours: 2, ReminderDaysBefore: 3}

	event, err := ClassifyAndFormat(EventParams{Title: "X", Date: "2025-02-15", StartTime: "10:00"}, settings)
	require.NoError(t, err)
	assert.Equal(t, 2.0, event.DurationHours)

	event, err = ClassifyAndFormat(EventParams{Title: "X", Date: "2025-02-15", StartTime: "10:00", DurationHours: 0.5}, settings)
	require.NoError(t, err)
	assert.Equal(t, 0.5, event.DurationHours)
}

func TestDeriveReminder(t *testing.T) {
	event, err := ClassifyAndFormat(EventParams{
		Title:       "Science Fair",
		Date:        "2025-05-10",
		Description: "Bring your project board.",
	}, DefaultSettings())
	require.NoError(t, err)

	reminder, err := DeriveReminder(event, 3)
	require.NoError(t, err)

	assert.Equal(t, models.EventTypeAllDay, reminder.Event.EventType)
	assert.Equal(t, time.Date(2025, time.May, 7, 0, 0, 0, 0, time.UTC), reminder.Event.StartDate)
	assert.Equal(t, "REMINDER: Science Fair", reminder.Event.Title)
	assert.Contains(t, reminder.Event.Description, "Science Fair")
	assert.Contains(t, reminder.Event.Description, "2025-05-10")
	assert.Contains(t, reminder.Event.Description, "Bring your project board.")
	assert.Equal(t, event.StartDate, reminder.MainEventDate)
	assert.Equal(t, 3, reminder.DaysBefore)
}

func TestDeriveReminderAcrossMonthBoundary(t *testing.T) {
	event, err := ClassifyAndFormat(EventParams{Title: "Trip", Date: "2025-03-02"}, DefaultSettings())
	require.NoError(t, err)

	reminder, err := DeriveReminder(event, 5)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.February, 25, 0, 0, 0, 0, time.UTC), reminder.Event.StartDate)
}

func TestDeriveReminderSameDay(t *testing.T) {
	event, err := ClassifyAndFormat(EventParams{Title: "Trip", Date: "2025-03-02"}, DefaultSettings())
	require.NoError(t, err)

	reminder, err := DeriveReminder(event, 0)
	require.NoError(t, err)
	assert.Equal(t, event.StartDate, reminder.Event.StartDate)
}

func TestDeriveReminderNegativeDaysFails(t *testing.T) {
	event, err := ClassifyAndFormat(EventParams{Title: "Trip", Date: "2025-03-02"}, DefaultSettings())
	require.NoError(t, err)

	_, err = DeriveReminder(event, -1)
	requireValidationError(t, err)
}

func TestClassifyTimedReminderIsStillAllDay(t *testing.T) {
	event, err := ClassifyAndFormat(EventParams{
		Title:     "Recital",
		Date:      "2025-06-20",
		StartTime: "18:00",
	}, DefaultSettings())
	require.NoError(t, err)
	require.Equal(t, models.EventTypeTimed, event.EventType)

	reminder, err := DeriveReminder(event, 2)
	require.NoError(t, err)
	assert.Equal(t, models.EventTypeAllDay, reminder.Event.EventType)
	assert.Empty(t, reminder.Event.StartTime)
}
