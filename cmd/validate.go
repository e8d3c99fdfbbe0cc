package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydro-pipeline/hydro/internal/schema"
	"github.com/hydro-pipeline/hydro/internal/template"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema>",
	Short: "Validate a naming schema file",
	Long: `Load and compile a schema file, reporting shape problems and
invalid naming patterns. On success prints the number of addressable
keys.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := template.New(
			template.WithSource(schema.NewFileSource(args[0])),
		)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d addressable keys\n", args[0], len(tree.Keys()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
