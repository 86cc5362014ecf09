package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

type fakeDocumentSrv struct {
	analysis *models.DocumentAnalysis
	err      error
	lastText string
	lastMode models.AnalysisType
}

func (f *fakeDocumentSrv) Analyze(_ context.Context, text string, analysisType models.AnalysisType) (*models.DocumentAnalysis, error) {
	f.lastText = text
	f.lastMode = analysisType
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

func TestDocumentHandlerAnalyze(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDocumentSrv{analysis: &models.DocumentAnalysis{
		AnalysisType: models.AnalysisSummary,
		Result:       "A short summary.",
		Model:        "gpt-4o-mini",
	}}
	handler := NewDocumentHandler(srv)

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/documents/analyze", `{"text":"The newsletter covers next week.","analysis_type":"summary"}`)

	handler.Analyze(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.AnalysisSummary, srv.lastMode)
}

func TestDocumentHandlerAnalyzeRequiresText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDocumentHandler(&fakeDocumentSrv{})

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/documents/analyze", `{"analysis_type":"summary"}`)

	handler.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentHandlerAnalyzeUpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDocumentHandler(&fakeDocumentSrv{err: appErrors.Clone(appErrors.ErrUpstream, "openai unavailable")})

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/documents/analyze", `{"text":"The newsletter covers next week."}`)

	handler.Analyze(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
