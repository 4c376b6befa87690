package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/keyalign/internal/adapters/outbound/tui"
	"github.com/abdidvp/keyalign/internal/application"
	"github.com/abdidvp/keyalign/internal/domain"
)

func newFixCmd(opts *rootOptions) *cobra.Command {
	var (
		root        string
		dryRun      bool
		jsonOutput  bool
		maxPasses   int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Rewrite key spacing in place",
		Long:  "Apply every spacing fix, re-checking after each pass until the files are clean or the pass limit is reached.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absRoot, paths, err := projectPaths(root, args)
			if err != nil {
				return err
			}

			result, err := opts.fixService().FixProject(cmd.Context(), application.FixRequest{
				ProjectPath: absRoot,
				Paths:       paths,
				Options:     domain.FixOptions{DryRun: dryRun, MaxPasses: maxPasses},
				Concurrency: concurrency,
			})
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Project root")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing files")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the fix result as JSON")
	cmd.Flags().IntVar(&maxPasses, "max-passes", domain.MaxFixPasses, "Maximum check-and-fix passes per file")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Files fixed in parallel")

	return cmd
}
