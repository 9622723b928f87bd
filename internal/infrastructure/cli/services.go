package cli

import (
	"io"
	"log/slog"

	"github.com/felixgeelhaar/stackaudit/internal/infrastructure/config"
	"github.com/felixgeelhaar/stackaudit/pkg/application"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/events"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/inspect"
	"github.com/felixgeelhaar/stackaudit/pkg/storage"
)

// evaluationEnv bundles what every command needs for one project.
type evaluationEnv struct {
	root    string
	cfg     *config.Config
	catalog *catalog.Catalog
	logger  *slog.Logger
	events  *events.EventDispatcher
	svc     *application.EvaluationService
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadEnv validates the project path, reads its config and builds the
// service. Progress lines go to progress when it is non-nil.
func loadEnv(path string, progress io.Writer, logOut io.Writer) (*evaluationEnv, error) {
	root, err := application.ResolveProject(path)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	// The --catalog flag is relative to the working directory; the config
	// entry is relative to the project root.
	var cat *catalog.Catalog
	if catalogFile != "" {
		cat, err = catalog.Load(catalogFile)
	} else {
		cat, err = cfg.LoadCatalog(root)
	}
	if err != nil {
		return nil, err
	}

	logger := newLogger(logOut, cfg)

	dispatcher := events.NewEventDispatcher()
	dispatcher.ContinueOnError = true
	dispatcher.Register(events.NewLoggingHandler(logger).Registration())
	if progress != nil {
		dispatcher.Register(events.NewProgressHandler(progress).Registration())
	}

	segments := cfg.IgnoreSegments(cat)
	ignoreFile := cfg.IgnoreFile
	open := func(root string) inspect.Workspace {
		return storage.NewWorkspace(root,
			storage.WithIgnoreSegments(segments...),
			storage.WithIgnoreFile(ignoreFile))
	}

	svc := application.NewEvaluationService(cat,
		application.WithWorkspaceOpener(open),
		application.WithDispatcher(dispatcher),
		application.WithLogger(logger))

	return &evaluationEnv{
		root:    root,
		cfg:     cfg,
		catalog: cat,
		logger:  logger,
		events:  dispatcher,
		svc:     svc,
	}, nil
}

func (e *evaluationEnv) reportFile() string {
	if outputFile != "" {
		return outputFile
	}
	return e.cfg.ReportFile
}
