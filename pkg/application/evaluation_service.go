package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/events"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/inspect"
	"github.com/felixgeelhaar/stackaudit/pkg/storage"
	"github.com/google/uuid"
)

var (
	ErrProjectNotFound = errors.New("project path does not exist")
	ErrNotADirectory   = errors.New("project path is not a directory")
)

// Stages of a run, in execution order.
const (
	StageStructure       = "structure"
	StageDependencies    = "dependencies"
	StageFeatures        = "features"
	StageUI              = "ui"
	StageSecurity        = "security"
	StageBusiness        = "business"
	StageGaps            = "gaps"
	StageRecommendations = "recommendations"
)

var stageMessages = map[string]string{
	StageStructure:       "Analyzing project structure...",
	StageDependencies:    "Checking technology stack...",
	StageFeatures:        "Detecting feature implementation...",
	StageUI:              "Evaluating UI/UX...",
	StageSecurity:        "Checking security practices...",
	StageBusiness:        "Reviewing business model...",
	StageGaps:            "Identifying missing requirements...",
	StageRecommendations: "Generating recommendations...",
}

// WorkspaceOpener opens the project rooted at an absolute path.
type WorkspaceOpener func(root string) inspect.Workspace

// Result is the outcome of one run.
type Result struct {
	Record  *evaluation.Record
	Summary evaluation.Summary
	Stats   inspect.RunStats
}

type EvaluationService struct {
	catalog    *catalog.Catalog
	open       WorkspaceOpener
	dispatcher *events.EventDispatcher
	logger     *slog.Logger
	now        func() time.Time

	structure *inspect.StructureScanner
	deps      *inspect.DependencyInspector
	features  *inspect.FeatureDetector
	ui        *inspect.UIInspector
	security  *inspect.SecurityInspector
	business  *inspect.BusinessInspector
	gaps      *inspect.GapAnalyzer
	recommend *inspect.RecommendationGenerator
}

// Option configures an EvaluationService.
type Option func(*EvaluationService)

// WithWorkspaceOpener replaces the on-disk workspace.
func WithWorkspaceOpener(open WorkspaceOpener) Option {
	return func(s *EvaluationService) { s.open = open }
}

// WithDispatcher publishes run events to d.
func WithDispatcher(d *events.EventDispatcher) Option {
	return func(s *EvaluationService) { s.dispatcher = d }
}

// WithClock overrides the clock used for the record timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *EvaluationService) { s.now = now }
}

// WithLogger sets the logger used for run and stage records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *EvaluationService) { s.logger = logger }
}

// NewEvaluationService builds a service for cat. A nil catalog selects the
// built-in one.
func NewEvaluationService(cat *catalog.Catalog, opts ...Option) *EvaluationService {
	if cat == nil {
		cat = catalog.Default()
	}
	s := &EvaluationService{
		catalog:   cat,
		now:       time.Now,
		structure: inspect.NewStructureScanner(),
		deps:      inspect.NewDependencyInspector(),
		features:  inspect.NewFeatureDetector(),
		ui:        inspect.NewUIInspector(),
		security:  inspect.NewSecurityInspector(),
		business:  inspect.NewBusinessInspector(),
		gaps:      inspect.NewGapAnalyzer(),
		recommend: inspect.NewRecommendationGenerator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.open == nil {
		segments := cat.Sources.Ignore
		s.open = func(root string) inspect.Workspace {
			return storage.NewWorkspace(root, storage.WithIgnoreSegments(segments...))
		}
	}
	return s
}

// Catalog returns the catalog the service evaluates against.
func (s *EvaluationService) Catalog() *catalog.Catalog {
	return s.catalog
}

// ProjectID derives a stable identifier from an absolute project path.
func ProjectID(absPath string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(absPath))).String()
}

// ResolveProject returns the absolute path of projectPath after checking
// that it is an existing directory.
func ResolveProject(projectPath string) (string, error) {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", projectPath, err)
	}
	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrProjectNotFound, projectPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", projectPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotADirectory, projectPath)
	}
	return abs, nil
}

// Evaluate runs every component against the project and assembles the
// record. The project is never modified. Every failure after the call
// starts, cancellation included, is published as evaluation.failed.
func (s *EvaluationService) Evaluate(ctx context.Context, projectPath string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		s.fail(ctx, "", projectPath, err)
		return nil, err
	}

	root, err := ResolveProject(projectPath)
	if err != nil {
		s.fail(ctx, "", projectPath, err)
		return nil, err
	}

	projectID := ProjectID(root)
	res, err := s.run(ctx, projectID, root)
	if err != nil {
		s.fail(ctx, projectID, root, err)
		return nil, err
	}
	return res, nil
}

func (s *EvaluationService) run(ctx context.Context, projectID, root string) (*Result, error) {
	started := s.now()
	logger := s.logger.With("project_id", projectID)

	lifecycle, err := evaluation.NewLifecycle(root)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &events.EvaluationStarted{BaseEvent: s.base(events.EventTypeEvaluationStarted, projectID, root)})

	record := evaluation.NewRecord(root, projectID, started)
	rc := inspect.NewRunContext(s.open(root), s.catalog, logger)

	if err := lifecycle.Advance(evaluation.EventInspect); err != nil {
		return nil, err
	}

	steps := []struct {
		stage string
		run   func()
	}{
		{StageStructure, func() {
			structure := s.structure.Scan(rc)
			record.ArchitectureEvaluation.Structure = &structure
		}},
		{StageDependencies, func() { record.TechnologyStack = s.deps.Inspect(rc) }},
		{StageFeatures, func() { record.Features = s.features.Detect(rc) }},
		{StageUI, func() { record.UI = s.ui.Inspect(rc) }},
		{StageSecurity, func() { record.Security = s.security.Inspect(rc) }},
		{StageBusiness, func() { record.Business = s.business.Inspect(rc) }},
	}
	for _, step := range steps {
		if err := s.runStage(ctx, logger, projectID, root, step.stage, step.run); err != nil {
			return nil, err
		}
	}

	if err := lifecycle.Advance(evaluation.EventAnalyze); err != nil {
		return nil, err
	}
	if err := s.runStage(ctx, logger, projectID, root, StageGaps, func() {
		record.MissingRequirements = s.gaps.Analyze(rc)
	}); err != nil {
		return nil, err
	}
	if err := s.runStage(ctx, logger, projectID, root, StageRecommendations, func() {
		record.Recommendations = s.recommend.Generate(record.TechnologyStack, record.ArchitectureEvaluation, record.MissingRequirements)
	}); err != nil {
		return nil, err
	}

	if err := lifecycle.Advance(evaluation.EventReport); err != nil {
		return nil, err
	}

	res := &Result{
		Record:  record,
		Summary: evaluation.Summarize(record),
		Stats:   rc.Stats(),
	}

	if err := lifecycle.Advance(evaluation.EventComplete); err != nil {
		return nil, err
	}

	s.publish(ctx, &events.EvaluationCompleted{
		BaseEvent:         s.base(events.EventTypeEvaluationCompleted, projectID, root),
		OverallCompliance: res.Summary.OverallCompliance,
		CriticalMissing:   len(res.Summary.CriticalIssues),
		FilesRead:         res.Stats.FilesRead,
		FilesSkipped:      res.Stats.SkippedTotal(),
		Duration:          s.now().Sub(started),
	})

	return res, nil
}

// SaveReport writes the record to filename in the project root.
func (s *EvaluationService) SaveReport(ctx context.Context, res *Result, filename string) (string, error) {
	if res == nil || res.Record == nil {
		return "", fmt.Errorf("no evaluation to save")
	}
	meta := res.Record.Metadata
	path, err := storage.NewReportWriter(meta.ProjectPath).Save(res.Record, filename)
	if err != nil {
		return "", err
	}
	s.publish(ctx, &events.ReportSaved{
		BaseEvent: s.base(events.EventTypeReportSaved, meta.ProjectID, meta.ProjectPath),
		File:      path,
	})
	return path, nil
}

func (s *EvaluationService) runStage(ctx context.Context, logger *slog.Logger, projectID, root, stage string, run func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	run()
	logger.Debug("stage completed", "stage", stage, "duration", time.Since(start))
	s.publish(ctx, &events.StageCompleted{
		BaseEvent: s.base(events.EventTypeStageCompleted, projectID, root),
		Stage:     stage,
		Message:   stageMessages[stage],
	})
	return nil
}

func (s *EvaluationService) fail(ctx context.Context, projectID, path string, err error) {
	s.logger.Debug("evaluation failed", "project_id", projectID, "error", err)
	s.publish(ctx, &events.EvaluationFailed{
		BaseEvent: s.base(events.EventTypeEvaluationFailed, projectID, path),
		Reason:    err.Error(),
	})
}

func (s *EvaluationService) base(eventType, projectID, path string) events.BaseEvent {
	return events.BaseEvent{
		Type:        eventType,
		Project:     projectID,
		ProjectPath: path,
		Timestamp:   s.now(),
	}
}

// publish delivers an event. Handler failures never fail the run.
func (s *EvaluationService) publish(ctx context.Context, event events.DomainEvent) {
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		s.logger.Warn("event handler failed", "event_type", event.EventType(), "error", err)
	}
}
