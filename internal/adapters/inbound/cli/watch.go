package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abdidvp/keyalign/internal/adapters/inbound/watcher"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/parser"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/tui"
	"github.com/abdidvp/keyalign/internal/application"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-check files as they change",
		Long:  "Run a full check, then watch the project and re-check every changed file until interrupted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absRoot, _, err := projectPaths(path, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc := opts.checkService()
			fixSvc := opts.fixService()
			run := func(ctx context.Context, paths []string) error {
				if fix && len(paths) > 0 {
					if _, err := fixSvc.FixProject(ctx, application.FixRequest{ProjectPath: absRoot, Paths: paths}); err != nil {
						return err
					}
				}
				report, err := svc.CheckProject(ctx, application.CheckRequest{
					ProjectPath: absRoot,
					Paths:       paths,
					UseCache:    true,
				})
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
				return nil
			}

			if err := run(ctx, nil); err != nil {
				return fmt.Errorf("check failed: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", absRoot)

			par := parser.New()
			w := watcher.New(absRoot, par.Supports, watcher.WithLogger(opts.logger))
			return w.Run(ctx, func(ctx context.Context, changed []string) error {
				var paths []string
				for _, p := range changed {
					rel, err := filepath.Rel(absRoot, p)
					if err != nil {
						continue
					}
					if fileExists(p) {
						paths = append(paths, filepath.ToSlash(rel))
					}
				}
				if len(paths) == 0 {
					return nil
				}
				return run(ctx, paths)
			})
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Fix changed files before re-checking them")

	return cmd
}
