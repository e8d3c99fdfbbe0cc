package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydro-pipeline/hydro/internal/template"
)

var withTokens []string

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the logical keys of the compiled schema",
	Long: `List every addressable logical key. With --with-token flags, only
keys whose full ancestor chain can be resolved from the named tokens are
listed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree()
		if err != nil {
			return err
		}

		keys := tree.Keys()
		if len(withTokens) > 0 {
			available := make(template.Tokens, len(withTokens))
			for _, name := range withTokens {
				available[name] = nil
			}
			keys = tree.ResolvableKeys(available)
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens <key>",
	Short: "List the tokens required to build a key's path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree()
		if err != nil {
			return err
		}
		required, err := tree.RequiredTokens(args[0])
		if err != nil {
			return err
		}
		for _, name := range required {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	keysCmd.Flags().StringArrayVar(&withTokens, "with-token", nil, "token name available to the caller (repeatable)")
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(tokensCmd)
}
