package sdk

import "github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"

// EvaluateRequest selects the project to evaluate. An empty Path means the
// directory the server was started for.
type EvaluateRequest struct {
	Path       string
	SaveReport bool
}

// EvaluateResult is the condensed answer of stackaudit_evaluate.
type EvaluateResult struct {
	ProjectID  string             `json:"project_id"`
	Summary    evaluation.Summary `json:"summary"`
	ReportFile string             `json:"report_file,omitempty"`
}

// SchemaInfo is the content of the stackaudit://schema resource.
type SchemaInfo struct {
	SchemaVersion         string `json:"schema_version"`
	ServerVersion         string `json:"server_version"`
	EvaluatorVersion      string `json:"evaluator_version"`
	SpecificationsVersion string `json:"specifications_version"`
}
