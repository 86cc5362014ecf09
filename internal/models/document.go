package models

// AnalysisType selects the kind of document analysis to run.
type AnalysisType string

const (
	AnalysisSummary     AnalysisType = "summary"
	AnalysisEvents      AnalysisType = "events"
	AnalysisActionItems AnalysisType = "action_items"
)

// DocumentAnalysis is the outcome of an AI analysis call.
type DocumentAnalysis struct {
	AnalysisType AnalysisType `json:"analysis_type"`
	Result       string       `json:"result"`
	Model        string       `json:"model"`
	Truncated    bool         `json:"truncated,omitempty"`
}
