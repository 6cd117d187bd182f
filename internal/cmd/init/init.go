// Package init provides the init command for elunadoc.
package init

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/elunadoc/internal/config"
	"github.com/open-cli-collective/elunadoc/internal/site"
	"github.com/open-cli-collective/elunadoc/pkg/luadoc"
)

type initOptions struct {
	methodsDir string
	hooksFile  string
	outputDir  string
	noVerify   bool
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize elunadoc configuration",
		Long: `Initialize elunadoc with the location of your Eluna sources.

This command will guide you through setting up the directory holding the
*Methods.h headers, the Hooks.h file used to resolve @hook tables, and the
output directory. The configuration will be saved to
~/.config/elunadoc/config.yml.`,
		Example: `  # Interactive setup
  elunadoc init

  # Pre-populate the methods directory
  elunadoc init --methods-dir src/LuaEngine/methods/TrinityCore`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runInit(cmd.OutOrStdout(), path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.methodsDir, "methods-dir", "", "Directory containing the *Methods.h headers")
	cmd.Flags().StringVar(&opts.hooksFile, "hooks-file", "", "Path to Hooks.h")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory the documentation is written to")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip source verification")

	return cmd
}

func runInit(w io.Writer, configPath string, opts *initOptions) error {
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(w, "Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		MethodsDir: opts.methodsDir,
		HooksFile:  opts.hooksFile,
		OutputDir:  opts.outputDir,
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = config.DefaultOutputDir
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Methods directory").
				Description("Directory containing the *Methods.h headers").
				Placeholder("src/LuaEngine/methods/TrinityCore").
				Value(&cfg.MethodsDir).
				Validate(validateDir),

			huh.NewInput().
				Title("Hooks file (optional)").
				Description("Hooks.h, used to resolve @hook tables").
				Placeholder("src/LuaEngine/hooks/Hooks.h").
				Value(&cfg.HooksFile).
				Validate(validateOptionalFile),

			huh.NewInput().
				Title("Output directory").
				Description("Where classes.json and search-index.json are written").
				Value(&cfg.OutputDir),

			huh.NewInput().
				Title("Global class").
				Description("Class whose methods are documented without a receiver").
				Placeholder(config.DefaultGlobalClass).
				Value(&cfg.GlobalClass),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if err := finalize(cfg); err != nil {
		return err
	}

	if !opts.noVerify {
		fmt.Fprint(w, "Verifying sources... ")
		count, err := verifySources(cfg)
		if err != nil {
			fmt.Fprintln(w, "failed!")
			return fmt.Errorf("source verification failed: %w", err)
		}
		fmt.Fprintf(w, "found %d method headers.\n", count)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  elunadoc parse <file>")
	fmt.Fprintln(w, "  elunadoc build")

	return nil
}

// finalize fills defaults and validates the collected answers.
func finalize(cfg *config.Config) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func validateDir(s string) error {
	if s == "" {
		return errors.New("directory is required")
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("cannot read %s", s)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s)
	}
	return nil
}

func validateOptionalFile(s string) error {
	if s == "" {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("cannot read %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}

// verifySources checks that the methods directory holds headers and that
// the hooks file parses. It returns the number of headers found.
func verifySources(cfg *config.Config) (int, error) {
	files, err := site.Discover(cfg.MethodsDir, cfg.FileSuffix, cfg.Exclude)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no *%s files in %s", cfg.FileSuffix, cfg.MethodsDir)
	}

	if cfg.HooksFile != "" {
		hooks, _, err := luadoc.LoadHookMap(cfg.HooksFile)
		if err != nil {
			return 0, err
		}
		if len(hooks) == 0 {
			return 0, fmt.Errorf("no HookTypeTable entries in %s", cfg.HooksFile)
		}
	}

	return len(files), nil
}
