package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/keyalign/internal/adapters/outbound/tui"
)

func newOptionsCmd(opts *rootOptions) *cobra.Command {
	var (
		root       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show the effective spacing policy",
		Long:  "Load the project configuration and print the policy its options normalize to.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absRoot, _, err := projectPaths(root, nil)
			if err != nil {
				return err
			}
			cfg, err := opts.checkService().Config(absRoot)
			if err != nil {
				return err
			}

			policy := cfg.Policy()
			if jsonOutput {
				return renderJSON(cmd, policy)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderPolicy(policy))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Project root")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the policy as JSON")

	return cmd
}
