package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/stackaudit/pkg/storage"
	"github.com/spf13/cobra"
)

func runEvaluate(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	asJSON := false
	switch strings.ToLower(format) {
	case "text", "":
	case "json":
		asJSON = true
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	out := cmd.OutOrStdout()

	var progress io.Writer
	if !asJSON {
		renderBanner(out)
		progress = out
	}

	env, err := loadEnv(path, progress, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	res, err := env.svc.Evaluate(cmd.Context(), env.root)
	if err != nil {
		return err
	}

	reportPath := ""
	if !noReport {
		reportPath, err = env.svc.SaveReport(cmd.Context(), res, env.reportFile())
		if err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
	}

	if asJSON {
		data, err := storage.EncodeReport(res.Record)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	renderSummary(out, res.Summary, reportPath)
	return nil
}
