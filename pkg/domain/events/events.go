// Package events defines the events emitted while a project is evaluated.
package events

import "time"

const (
	EventTypeEvaluationStarted   = "evaluation.started"
	EventTypeStageCompleted      = "evaluation.stage_completed"
	EventTypeEvaluationCompleted = "evaluation.completed"
	EventTypeEvaluationFailed    = "evaluation.failed"
	EventTypeReportSaved         = "report.saved"
)

// DomainEvent is the base interface for all evaluation events.
type DomainEvent interface {
	EventType() string
	ProjectID() string
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type        string    `json:"type"`
	Project     string    `json:"project_id"`
	ProjectPath string    `json:"project_path"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) ProjectID() string     { return e.Project }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// EvaluationStarted is emitted once the project path has been validated.
type EvaluationStarted struct {
	BaseEvent
	Catalog string `json:"catalog,omitempty"`
}

// StageCompleted is emitted after each component has produced its section.
type StageCompleted struct {
	BaseEvent
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// EvaluationCompleted is emitted when the record is fully assembled.
type EvaluationCompleted struct {
	BaseEvent
	OverallCompliance float64       `json:"overall_compliance"`
	CriticalMissing   int           `json:"critical_missing"`
	FilesRead         int           `json:"files_read"`
	FilesSkipped      int           `json:"files_skipped"`
	Duration          time.Duration `json:"duration"`
}

// EvaluationFailed is emitted when a run stops before producing a record.
type EvaluationFailed struct {
	BaseEvent
	Reason string `json:"reason"`
}

// ReportSaved is emitted after the report file has been written.
type ReportSaved struct {
	BaseEvent
	File string `json:"file"`
}
