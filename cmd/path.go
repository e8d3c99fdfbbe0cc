package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hydro-pipeline/hydro/internal/manifest"
	"github.com/hydro-pipeline/hydro/internal/template"
)

var (
	tokenFlags   []string
	manifestPath string
)

var pathCmd = &cobra.Command{
	Use:   "path <key>",
	Short: "Build the path for a logical key",
	Long: `Build the path registered under a logical key, substituting the
supplied tokens at every level of the hierarchy.

Tokens are given as repeated --token name=value flags. Integer-looking
values are passed as integers so padded placeholders like {version:03}
format correctly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree()
		if err != nil {
			return err
		}

		tokens, err := parseTokens(tokenFlags)
		if err != nil {
			return err
		}

		key := args[0]
		built, err := tree.BuildPath(key, tokens)
		if err != nil {
			return err
		}

		if manifestPath != "" {
			store, err := manifest.Open(manifestPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.Record(key, built, tokens); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), built)
		return nil
	},
}

func init() {
	pathCmd.Flags().StringArrayVarP(&tokenFlags, "token", "t", nil, "token as name=value (repeatable)")
	pathCmd.Flags().StringVar(&manifestPath, "record", "", "record the built path in this manifest database")
	rootCmd.AddCommand(pathCmd)
}

// parseTokens converts name=value flags into a token map. Values that
// parse as integers are kept as integers.
func parseTokens(flags []string) (template.Tokens, error) {
	tokens := make(template.Tokens, len(flags))
	for _, f := range flags {
		name, value, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed token %q: want name=value", f)
		}
		if n, err := strconv.Atoi(value); err == nil {
			tokens[name] = n
		} else {
			tokens[name] = value
		}
	}
	return tokens, nil
}
