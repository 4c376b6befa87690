package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/keyalign/internal/adapters/outbound/tui"
	"github.com/abdidvp/keyalign/internal/application"
	"github.com/abdidvp/keyalign/internal/domain"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		root        string
		jsonOutput  bool
		fixDryRun   bool
		changed     bool
		useCache    bool
		record      bool
		history     bool
		maxWarnings int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report key spacing problems",
		Long: "Check interface and enum members below the project root and report every spacing deviation. " +
			"Exits with an error when more problems are found than --max-warnings allows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absRoot, paths, err := projectPaths(root, args)
			if err != nil {
				return err
			}
			svc := opts.checkService()

			if history {
				entries, err := svc.History(absRoot)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			cfg, err := svc.Config(absRoot)
			if err != nil {
				return err
			}

			report, err := svc.CheckProject(cmd.Context(), application.CheckRequest{
				ProjectPath: absRoot,
				Paths:       paths,
				Changed:     changed,
				UseCache:    useCache,
				Record:      record,
				Concurrency: concurrency,
			})
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			if jsonOutput || cfg.EffectiveFormat() == domain.FormatJSON {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if fixDryRun && report.FixableCount() > 0 {
				result, err := opts.fixService().FixProject(cmd.Context(), application.FixRequest{
					ProjectPath: absRoot,
					Paths:       paths,
					Options:     domain.FixOptions{DryRun: true},
					Concurrency: concurrency,
				})
				if err != nil {
					return fmt.Errorf("fix preview failed: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), "\n"+tui.RenderFixResult(result))
			}

			if maxWarnings >= 0 && report.DiagnosticCount() > maxWarnings {
				return fmt.Errorf("found %d spacing problems (max %d)", report.DiagnosticCount(), maxWarnings)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Project root")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run report as JSON")
	cmd.Flags().BoolVar(&fixDryRun, "fix-dry-run", false, "Also show what `keyalign fix` would change")
	cmd.Flags().BoolVar(&changed, "changed", false, "Only check files git reports as changed")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Reuse results for unchanged files")
	cmd.Flags().BoolVar(&record, "record", false, "Append a summary of this run to the history")
	cmd.Flags().BoolVar(&history, "history", false, "Show recorded runs instead of checking")
	cmd.Flags().IntVar(&maxWarnings, "max-warnings", 0, "Number of problems tolerated before failing (-1 never fails)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Files checked in parallel (default: config value, then CPU count)")

	return cmd
}
