package cli

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/stackaudit/internal/infrastructure/config"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the requirement catalog",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective catalog as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := effectiveCatalog()
		if err != nil {
			return err
		}
		data, err := cat.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		features := 0
		for _, c := range cat.Categories {
			features += len(c.Features)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog is valid: %d categories, %d features, %d technologies\n",
			len(cat.Categories), features, len(cat.Technologies))
		return nil
	},
}

// effectiveCatalog resolves --catalog, then the config of the working
// directory, then the built-in catalog.
func effectiveCatalog() (*catalog.Catalog, error) {
	if catalogFile != "" {
		return catalog.Load(catalogFile)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	return cfg.LoadCatalog(cwd)
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	RootCmd.AddCommand(catalogCmd)
}
