package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/keyalign/internal/adapters/outbound/config"
)

func newInitCmd() *cobra.Command {
	var (
		align string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .keyalign.yaml configuration file",
		Long:  "Create a .keyalign.yaml with the default spacing policy, optionally aligning members on the colon or the value.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			switch align {
			case "none", "colon", "value":
			default:
				return fmt.Errorf("unknown alignment %q (valid: none, colon, value)", align)
			}

			content := generateConfig(align)
			// the generated file must load cleanly
			if _, err := config.Parse(config.FileName, []byte(content)); err != nil {
				return fmt.Errorf("generated config: %w", err)
			}

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&align, "align", "none", "Group alignment (none, colon, value)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .keyalign.yaml")

	return cmd
}

func generateConfig(align string) string {
	result := "# keyalign configuration\n\noptions:\n"
	if align != "none" {
		result += fmt.Sprintf("  align: %s\n", align)
	}
	result += `  mode: strict
  beforeColon: 0
  afterColon: 1
  # singleLine:
  #   afterColon: 1
  # multiLine:
  #   align:
  #     on: colon
  #     beforeColon: 1

# include:
#   - src

exclude:
  - node_modules
  - dist

# concurrency: 4
# format: stylish
# cache: true
`
	return result
}
