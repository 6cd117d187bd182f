package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/elunadoc/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective elunadoc configuration and where each value comes from.`,
		Example: `  # Show current config
  elunadoc config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmd.OutOrStdout(), configPath(cmd), noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, path string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	fileCfg, fileErr := config.Load(path)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-14s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		fmt.Fprint(w, value)

		source := "default"
		switch {
		case envVar != "" && os.Getenv(envVar) != "":
			source = envVar
		case fileErr == nil && fileValue == value:
			source = "config"
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Methods dir", cfg.MethodsDir, fileCfg.MethodsDir, "ELUNADOC_METHODS_DIR")
	printField("Hooks file", cfg.HooksFile, fileCfg.HooksFile, "ELUNADOC_HOOKS_FILE")
	printField("Output dir", cfg.OutputDir, fileCfg.OutputDir, "ELUNADOC_OUTPUT_DIR")
	printField("Global class", cfg.GlobalClass, fileCfg.GlobalClass, "ELUNADOC_GLOBAL_CLASS")
	printField("File suffix", cfg.FileSuffix, fileCfg.FileSuffix, "")
	printField("Exclude", strings.Join(cfg.Exclude, ", "), strings.Join(fileCfg.Exclude, ", "), "ELUNADOC_EXCLUDE")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", path)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}
