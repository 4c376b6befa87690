package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdidvp/keyalign/internal/adapters/outbound/tui"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	verbose    bool
	noColor    bool
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "keyalign",
		Short: "Check and fix key spacing in TypeScript declarations",
		Long: "keyalign verifies the whitespace around ':' in interface members and '=' in enum members, " +
			"optionally aligned across a declaration, and rewrites files to match.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath == "" {
				opts.configPath = os.Getenv("KEYALIGN_CONFIG")
			}
			if os.Getenv("KEYALIGN_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "" {
				opts.noColor = true
			}
			tui.SetColor(!opts.noColor)

			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a config file (default: .keyalign.yaml in the project root, or $KEYALIGN_CONFIG)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log cache, scan and watch activity to stderr")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable styled output (also $KEYALIGN_NO_COLOR)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newFixCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newOptionsCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
