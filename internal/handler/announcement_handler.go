package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	"github.com/schoolconnect/schoolconnect-api/internal/service"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
	"github.com/schoolconnect/schoolconnect-api/pkg/response"
)

type announcementService interface {
	Search(ctx context.Context, req service.SearchRequest) ([]models.ScoredResult, error)
	Recent(ctx context.Context, limit int) ([]models.Announcement, error)
	ByDate(ctx context.Context, phrase string, limit int) (*service.ByDateResult, error)
}

// AnnouncementHandler wires the announcement service to HTTP endpoints.
type AnnouncementHandler struct {
	service announcementService
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// Search godoc
// @Summary Ranked announcement search
// @Tags Announcements
// @Produce json
// @Param query query string true "Search text"
// @Param sender query string false "Sender substring filter"
// @Param date query string false "Natural-language date filter, e.g. 'this week'"
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Envelope
// @Router /announcements/search [get]
func (h *AnnouncementHandler) Search(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	req := service.SearchRequest{
		Query:  strings.TrimSpace(c.Query("query")),
		Sender: strings.TrimSpace(c.Query("sender")),
		Date:   strings.TrimSpace(c.Query("date")),
	}
	if req.Query == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "query is required"))
		return
	}
	limit, err := parseLimit(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req.Limit = limit

	start := time.Now()
	results, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, map[string]interface{}{
		"count":              len(results),
		"processing_time_ms": time.Since(start).Milliseconds(),
	})
}

// Recent godoc
// @Summary Most recent announcements
// @Tags Announcements
// @Produce json
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Envelope
// @Router /announcements/recent [get]
func (h *AnnouncementHandler) Recent(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	limit, err := parseLimit(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, map[string]interface{}{"count": len(records)})
}

// ByDate godoc
// @Summary Announcements within a date range
// @Tags Announcements
// @Produce json
// @Param date query string true "Natural-language date phrase, e.g. 'last week'"
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Envelope
// @Router /announcements/by-date [get]
func (h *AnnouncementHandler) ByDate(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	phrase := strings.TrimSpace(c.Query("date"))
	if phrase == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	limit, err := parseLimit(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.ByDate(c.Request.Context(), phrase, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, map[string]interface{}{"count": len(result.Announcements)})
}

func parseLimit(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "limit must be a positive integer")
	}
	return limit, nil
}
