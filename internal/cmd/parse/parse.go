// Package parse provides the parse command.
package parse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/elunadoc/internal/config"
	"github.com/open-cli-collective/elunadoc/internal/view"
	"github.com/open-cli-collective/elunadoc/pkg/luadoc"
)

type parseOptions struct {
	files       []string
	className   string
	hooksFile   string
	globalClass string
	output      string
	noColor     bool
	verbose     bool
	out         io.Writer
	errOut      io.Writer
}

// NewCmdParse creates the parse command.
func NewCmdParse() *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse method headers and list their methods",
		Long: `Parse one or more *Methods.h headers and print the documented methods.

The class name is taken from the file name (PlayerMethods.h documents Player)
unless --class is given. Parser diagnostics are printed as warnings.`,
		Example: `  # List the methods of one class
  elunadoc parse src/LuaEngine/methods/TrinityCore/PlayerMethods.h

  # Full records as JSON
  elunadoc parse PlayerMethods.h UnitMethods.h -o json

  # Resolve @hook tables
  elunadoc parse GlobalMethods.h --hooks-file src/LuaEngine/hooks/Hooks.h`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.files = args
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
			return runParse(opts, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.className, "class", "", "Class name to document the file as (single file only)")
	cmd.Flags().StringVar(&opts.hooksFile, "hooks-file", "", "Hooks.h used to resolve @hook tables (default: from config)")
	cmd.Flags().StringVar(&opts.globalClass, "global-class", "", "Class documented without a receiver (default: from config)")

	return cmd
}

func runParse(opts *parseOptions, cfg *config.Config) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if opts.className != "" && len(opts.files) > 1 {
		return errors.New("--class can only be used with a single file")
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}
	if opts.errOut != nil {
		renderer.SetErrWriter(opts.errOut)
	}
	renderer.SetVerbose(opts.verbose)

	parserOpts := luadoc.Options{
		GlobalClass: firstNonEmpty(opts.globalClass, cfg.GlobalClass),
		FileSuffix:  cfg.FileSuffix,
	}

	if hooksFile := firstNonEmpty(opts.hooksFile, cfg.HooksFile); hooksFile != "" {
		renderer.Progress("Loading hooks from %s...", hooksFile)
		hooks, diags, err := luadoc.LoadHookMap(hooksFile)
		if err != nil {
			return err
		}
		for _, d := range diags {
			renderer.Warning(d.String())
		}
		parserOpts.Hooks = hooks
	}

	var results []*luadoc.Result
	for _, path := range opts.files {
		renderer.Progress("Parsing file %s...", filepath.Base(path))
		result, err := parseOne(path, opts.className, parserOpts)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, d := range result.Diagnostics {
			renderer.Warning(d.String())
		}
		results = append(results, result)
	}

	if view.Format(opts.output) == view.FormatJSON {
		return renderer.RenderJSON(results)
	}

	headers := []string{"CLASS", "METHOD", "DOCUMENTED", "PROTOTYPE"}
	var rows [][]string
	for _, r := range results {
		for _, m := range r.Class.Methods {
			documented := "no"
			if m.Documented {
				documented = "yes"
			}
			rows = append(rows, []string{
				r.Class.Name,
				m.Name,
				documented,
				view.Truncate(strings.Join(m.Prototypes, "; "), 80),
			})
		}
	}

	if len(rows) == 0 {
		renderer.RenderText("No methods found.")
		return nil
	}
	renderer.RenderTable(headers, rows)
	return nil
}

func parseOne(path, className string, opts luadoc.Options) (*luadoc.Result, error) {
	if className == "" {
		return luadoc.ParseFile(path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open header: %w", err)
	}
	defer func() { _ = f.Close() }()

	return luadoc.Parse(className, path, f, opts)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
