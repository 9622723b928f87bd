package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/felixgeelhaar/stackaudit/internal/infrastructure/sse"
	"github.com/felixgeelhaar/stackaudit/internal/infrastructure/watch"
	"github.com/spf13/cobra"
)

var watchEventsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-evaluate the project whenever its files change",
	Long: heredoc.Doc(`
		Evaluate the project once, then again after every burst of file changes.
		Each run is a fresh evaluation; nothing is carried over between runs.

		Changes to the report file and to ignored directories (node_modules,
		.git, dist, build and any configured extras) do not trigger a run.

		With --events-addr the evaluation events are also streamed as
		Server-Sent Events on http://<addr>/events.
	`),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Report file name, written to the project root")
	watchCmd.Flags().BoolVar(&noReport, "no-report", false, "Do not write the report file")
	watchCmd.Flags().StringVar(&watchEventsAddr, "events-addr", "", "Serve evaluation events as Server-Sent Events on this address")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	out := cmd.OutOrStdout()

	env, err := loadEnv(path, nil, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	evaluate := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			fmt.Fprintf(out, "\nChange detected at %s (%d files)\n", time.Now().Format("15:04:05"), len(changed))
		}
		res, err := env.svc.Evaluate(ctx, env.root)
		if err != nil {
			return err
		}
		reportPath := ""
		if !noReport {
			if reportPath, err = env.svc.SaveReport(ctx, res, env.reportFile()); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
		}
		renderSummary(out, res.Summary, reportPath)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if watchEventsAddr != "" {
		stream := sse.NewHandler()
		env.events.Register(stream.Registration())
		srv, err := serveEvents(ctx, watchEventsAddr, stream)
		if err != nil {
			return err
		}
		defer func() { _ = srv.Close() }()
		fmt.Fprintf(out, "Streaming events on http://%s/events\n", watchEventsAddr)
	}

	fmt.Fprintf(out, "Watching %s for changes...\n", env.root)
	if err := evaluate(ctx, nil); err != nil {
		return err
	}
	if os.Getenv("STACKAUDIT_WATCH_ONCE") == "true" {
		return nil
	}

	filter := watch.NewPatternFilter(nil, []string{env.reportFile()}, env.cfg.IgnoreSegments(env.catalog))
	trigger := make(chan []string, 1)
	w, err := watch.NewFSWatcher(env.root, filter, env.cfg.Watch.Debounce, func(paths []string) {
		// A run is already queued; it will see these changes too.
		select {
		case trigger <- paths:
		default:
		}
	})
	if err != nil {
		return err
	}
	if err := w.WatchRecursive(env.root); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err == context.Canceled {
				return nil
			}
			return err
		case changed := <-trigger:
			if err := evaluate(ctx, changed); err != nil {
				env.logger.Warn("evaluation failed", "error", err)
			}
		}
	}
}

// serveEvents starts the event stream server in the background. It stops
// when ctx is done.
func serveEvents(ctx context.Context, addr string, stream http.Handler) (*http.Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/events", stream)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "event stream stopped: %v\n", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	return srv, nil
}
