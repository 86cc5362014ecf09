package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

const minDocumentChars = 10

type documentAnalyzer interface {
	Analyze(ctx context.Context, text string, mode models.AnalysisType) (string, error)
	ModelName() string
}

// DocumentService shapes inputs and outputs around the AI analysis
// collaborator. The analysis itself happens upstream; this service only
// validates, truncates and passes through.
type DocumentService struct {
	analyzer documentAnalyzer
	maxChars int
	logger   *zap.Logger
}

// NewDocumentService constructs the service. maxChars caps the text sent to
// the analysis API; longer documents are truncated, not rejected.
func NewDocumentService(analyzer documentAnalyzer, maxChars int, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxChars <= 0 {
		maxChars = 10000
	}
	return &DocumentService{analyzer: analyzer, maxChars: maxChars, logger: logger}
}

// Analyze validates the request and runs the selected analysis.
func (s *DocumentService) Analyze(ctx context.Context, text string, analysisType models.AnalysisType) (*models.DocumentAnalysis, error) {
	switch analysisType {
	case models.AnalysisSummary, models.AnalysisEvents, models.AnalysisActionItems:
	case "":
		analysisType = models.AnalysisSummary
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("analysis_type %q is not one of summary, events, action_items", analysisType))
	}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minDocumentChars {
		return nil, appErrors.Clone(appErrors.ErrValidation, "document text is too short for meaningful analysis")
	}

	truncated := false
	if len(trimmed) > s.maxChars {
		trimmed = trimmed[:s.maxChars] + "... [truncated]"
		truncated = true
		s.logger.Warn("document truncated before analysis", zap.Int("max_chars", s.maxChars))
	}

	result, err := s.analyzer.Analyze(ctx, trimmed, analysisType)
	if err != nil {
		return nil, err
	}

	return &models.DocumentAnalysis{
		AnalysisType: analysisType,
		Result:       result,
		Model:        s.analyzer.ModelName(),
		Truncated:    truncated,
	}, nil
}
