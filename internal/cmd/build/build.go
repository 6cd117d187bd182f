// Package build provides the build command.
package build

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/elunadoc/internal/config"
	"github.com/open-cli-collective/elunadoc/internal/site"
	"github.com/open-cli-collective/elunadoc/internal/view"
)

type buildOptions struct {
	methodsDir  string
	hooksFile   string
	outputDir   string
	concurrency int
	output      string
	noColor     bool
	verbose     bool
	out         io.Writer
	errOut      io.Writer
}

// summary is the JSON form of a finished build.
type summary struct {
	Classes     int    `json:"classes"`
	Methods     int    `json:"methods"`
	Documented  int    `json:"documented"`
	Diagnostics int    `json:"diagnostics"`
	OutputDir   string `json:"output_dir"`
}

// NewCmdBuild creates the build command.
func NewCmdBuild() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate documentation for every method header",
		Long: `Parse every *Methods.h header in the methods directory and write the
documentation data used by the site templates:

  classes.json       every class with its methods, references linked
  search-index.json  one entry per class and method

Headers are parsed concurrently. A malformed tag in any header aborts the
build; diagnostics are printed as warnings and do not.`,
		Example: `  # Build using the configured directories
  elunadoc build

  # Override the sources
  elunadoc build --methods-dir methods/TrinityCore --hooks-file hooks/Hooks.h --output-dir docs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.out = cmd.OutOrStdout()
			opts.errOut = cmd.ErrOrStderr()

			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultConfigPath()
			}
			cfg, err := config.LoadWithEnv(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runBuild(cmd.Context(), opts, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.methodsDir, "methods-dir", "", "Directory containing the *Methods.h headers (default: from config)")
	cmd.Flags().StringVar(&opts.hooksFile, "hooks-file", "", "Hooks.h used to resolve @hook tables (default: from config)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory to write to (default: from config)")
	cmd.Flags().IntVarP(&opts.concurrency, "jobs", "j", 0, "Number of headers parsed at once (default: number of CPUs)")

	return cmd
}

func runBuild(ctx context.Context, opts *buildOptions, cfg *config.Config) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.methodsDir != "" {
		cfg.MethodsDir = opts.methodsDir
	}
	if opts.hooksFile != "" {
		cfg.HooksFile = opts.hooksFile
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'elunadoc init' to configure)", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}
	if opts.errOut != nil {
		renderer.SetErrWriter(opts.errOut)
	}
	renderer.SetVerbose(opts.verbose)

	s, err := site.Build(ctx, site.Options{
		MethodsDir:  cfg.MethodsDir,
		HooksFile:   cfg.HooksFile,
		GlobalClass: cfg.GlobalClass,
		FileSuffix:  cfg.FileSuffix,
		Exclude:     cfg.Exclude,
		Concurrency: opts.concurrency,
		Progress:    renderer.Progress,
	})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	for _, d := range s.Diagnostics {
		renderer.Warning(d.String())
	}

	if err := s.Write(cfg.OutputDir); err != nil {
		return err
	}

	counts := s.Count()
	if view.Format(opts.output) == view.FormatJSON {
		return renderer.RenderJSON(summary{
			Classes:     counts.Classes,
			Methods:     counts.Methods,
			Documented:  counts.Documented,
			Diagnostics: len(s.Diagnostics),
			OutputDir:   cfg.OutputDir,
		})
	}

	renderer.Success(fmt.Sprintf("Documented %d of %d methods in %d classes", counts.Documented, counts.Methods, counts.Classes))
	renderer.Success(fmt.Sprintf("Wrote %s and %s to %s", site.ClassesFile, site.SearchIndexFile, cfg.OutputDir))
	if n := len(s.Diagnostics); n > 0 {
		renderer.Warning(fmt.Sprintf("%d warnings", n))
	}
	return nil
}
