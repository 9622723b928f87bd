package events

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// LoggingHandler is a catch-all handler that logs all events.
type LoggingHandler struct {
	logger *slog.Logger
}

// NewLoggingHandler creates a new LoggingHandler.
func NewLoggingHandler(logger *slog.Logger) *LoggingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingHandler{logger: logger}
}

// Handle logs the event details. Failures are logged at warn level.
func (h *LoggingHandler) Handle(ctx context.Context, event DomainEvent) error {
	attrs := []any{
		"event_type", event.EventType(),
		"project_id", event.ProjectID(),
		"occurred_at", event.OccurredAt(),
	}

	switch e := event.(type) {
	case *StageCompleted:
		h.logger.DebugContext(ctx, "stage completed", append(attrs, "stage", e.Stage)...)
	case *EvaluationCompleted:
		h.logger.InfoContext(ctx, "evaluation completed", append(attrs,
			"overall_compliance", e.OverallCompliance,
			"files_read", e.FilesRead,
			"files_skipped", e.FilesSkipped,
			"duration", e.Duration)...)
	case *EvaluationFailed:
		h.logger.WarnContext(ctx, "evaluation failed", append(attrs, "reason", e.Reason)...)
	case *ReportSaved:
		h.logger.InfoContext(ctx, "report saved", append(attrs, "file", e.File)...)
	default:
		h.logger.DebugContext(ctx, "domain event", attrs...)
	}
	return nil
}

// Registration returns the HandlerRegistration for this handler.
func (h *LoggingHandler) Registration() HandlerRegistration {
	return HandlerRegistration{
		Name:       "LoggingHandler",
		Handler:    h.Handle,
		EventTypes: []string{"*"},
	}
}

// ProgressHandler writes one line per completed stage and a closing line
// when the run completes.
type ProgressHandler struct {
	out io.Writer
}

// NewProgressHandler creates a ProgressHandler writing to out.
func NewProgressHandler(out io.Writer) *ProgressHandler {
	return &ProgressHandler{out: out}
}

func (h *ProgressHandler) Handle(ctx context.Context, event DomainEvent) error {
	var line string
	switch e := event.(type) {
	case *StageCompleted:
		line = e.Message
	case *EvaluationCompleted:
		line = "Evaluation completed."
	default:
		return nil
	}
	_, err := fmt.Fprintln(h.out, line)
	return err
}

// Registration returns the registration for the stage and completion events.
func (h *ProgressHandler) Registration() HandlerRegistration {
	return HandlerRegistration{
		Name:       "ProgressHandler",
		Handler:    h.Handle,
		EventTypes: []string{EventTypeStageCompleted, EventTypeEvaluationCompleted},
	}
}
