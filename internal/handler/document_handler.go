package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
	"github.com/schoolconnect/schoolconnect-api/pkg/response"
)

type documentService interface {
	Analyze(ctx context.Context, text string, analysisType models.AnalysisType) (*models.DocumentAnalysis, error)
}

// DocumentHandler wires the document analysis service to HTTP endpoints.
type DocumentHandler struct {
	service documentService
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service documentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

type analyzeRequest struct {
	Text         string `json:"text" binding:"required"`
	AnalysisType string `json:"analysis_type"`
}

// Analyze godoc
// @Summary Analyze document text
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body analyzeRequest true "Document payload"
// @Success 200 {object} response.Envelope
// @Router /documents/analyze [post]
func (h *DocumentHandler) Analyze(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "text is required"))
		return
	}
	analysis, err := h.service.Analyze(c.Request.Context(), req.Text, models.AnalysisType(req.AnalysisType))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, analysis)
}
