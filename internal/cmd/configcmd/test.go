package configcmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/elunadoc/internal/config"
	"github.com/open-cli-collective/elunadoc/internal/site"
	"github.com/open-cli-collective/elunadoc/pkg/luadoc"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check that the configured sources can be read",
		Long: `Check that the methods directory contains method headers and that the
hooks file, if configured, parses into hook tables.`,
		Example: `  # Test configuration
  elunadoc config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(cmd.OutOrStdout(), configPath(cmd), noColor, nil)
		},
	}

	return cmd
}

func runTest(w io.Writer, path string, noColor bool, cfg *config.Config) error {
	if noColor {
		color.NoColor = true
	}

	if cfg == nil {
		var err error
		cfg, err = config.LoadWithEnv(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w (run 'elunadoc init' to configure)", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'elunadoc init' to configure)", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	fmt.Fprintf(w, "Checking methods directory %s...\n", cfg.MethodsDir)
	files, err := site.Discover(cfg.MethodsDir, cfg.FileSuffix, cfg.Exclude)
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Methods directory is not readable:", err)
		return err
	}
	if len(files) == 0 {
		_, _ = red.Fprintf(w, "✗ No *%s files found\n", cfg.FileSuffix)
		return errors.New("no method headers found")
	}
	_, _ = green.Fprintf(w, "✓ Found %d method headers\n", len(files))

	if cfg.HooksFile == "" {
		fmt.Fprintln(w, "\nNo hooks file configured; @hook tables will not be resolved.")
		return nil
	}

	fmt.Fprintf(w, "Checking hooks file %s...\n", cfg.HooksFile)
	hooks, diags, err := luadoc.LoadHookMap(cfg.HooksFile)
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Hooks file could not be read:", err)
		return err
	}
	if len(hooks) == 0 {
		_, _ = red.Fprintln(w, "✗ No HookTypeTable entries found")
		return errors.New("no hook categories found")
	}
	_, _ = green.Fprintf(w, "✓ Loaded %d hook categories\n", len(hooks))
	for _, d := range diags {
		_, _ = yellow.Fprintln(w, "! "+d.String())
	}

	return nil
}
