package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hydro-pipeline/hydro/internal/schema"
	"github.com/hydro-pipeline/hydro/internal/template"
)

var (
	schemaPath string
	rootPath   string
)

var rootCmd = &cobra.Command{
	Use:   "hydro",
	Short: "Hydro: schema-driven path construction for production pipelines",
	Long: `Hydro builds filesystem paths from a declarative naming schema.
The schema declares a hierarchy of path segments whose names are template
patterns like '{sequence}_{shot}_v{version:03}'; paths are resolved by
logical key plus a set of token values.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "path to the naming schema (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "root path prepended to every built path")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadTree compiles the template tree from the --schema flag.
func loadTree() (*template.Tree, error) {
	if schemaPath == "" {
		return nil, fmt.Errorf("no schema given: set --schema")
	}
	return template.New(
		template.WithSource(schema.NewFileSource(schemaPath)),
		template.WithRootPath(rootPath),
	)
}
