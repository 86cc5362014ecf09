package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/schoolconnect/schoolconnect-api/internal/service"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
	"github.com/schoolconnect/schoolconnect-api/pkg/response"
)

type calendarService interface {
	CreateEvent(ctx context.Context, req service.CreateEventRequest) (*service.CreatedEvent, error)
	CreateReminder(ctx context.Context, req service.CreateReminderRequest) (*service.CreatedEvent, error)
}

// CalendarHandler wires the calendar service to HTTP endpoints.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// CreateEvent godoc
// @Summary Create a calendar event
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /calendar/events [post]
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	created, err := h.service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// CreateReminder godoc
// @Summary Create a standalone reminder for an existing event
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.CreateReminderRequest true "Reminder payload"
// @Success 201 {object} response.Envelope
// @Router /calendar/reminders [post]
func (h *CalendarHandler) CreateReminder(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	created, err := h.service.CreateReminder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}
