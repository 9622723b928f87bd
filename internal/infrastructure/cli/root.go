package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	outputFile  string
	format      string
	catalogFile string
	noReport    bool
	verbose     bool
)

// RootCmd evaluates a project when called without a subcommand.
var RootCmd = &cobra.Command{
	Use:     "stackaudit [path]",
	Version: Version,
	Short:   "Evaluate a project against the Armonia technical specifications",
	Long: heredoc.Doc(`
		StackAudit inspects a project directory and reports how far it is from
		the Armonia residential-complex platform requirements (specifications v15).

		It checks the folder structure, the declared technology stack, keyword
		coverage of every required feature, UI/UX, security and business-model
		markers, and lists the missing critical requirements.

		The project is never modified. A JSON report is written to the project
		root unless --no-report is given.
	`),
	Example: heredoc.Doc(`
		$ stackaudit
		$ stackaudit ../armonia --format json --no-report
		$ stackaudit ./app -o audit.json --catalog requirements.yaml
	`),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEvaluate,
}

// Execute runs the root command. Errors are mapped to CLIErrors.
func Execute() error {
	return MapError(RootCmd.Execute())
}

func init() {
	RootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Report file name, written to the project root (default from config, else armonia_evaluation_report.json)")
	RootCmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	RootCmd.Flags().BoolVar(&noReport, "no-report", false, "Do not write the report file")
	RootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "Path to a custom requirement catalog (YAML)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}
