// Package hooks provides the hooks command.
package hooks

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/elunadoc/internal/config"
	"github.com/open-cli-collective/elunadoc/internal/view"
	"github.com/open-cli-collective/elunadoc/pkg/luadoc"
)

type hooksOptions struct {
	file     string
	category string
	output   string
	noColor  bool
	out      io.Writer
	errOut   io.Writer
}

// NewCmdHooks creates the hooks command.
func NewCmdHooks() *cobra.Command {
	opts := &hooksOptions{}

	cmd := &cobra.Command{
		Use:   "hooks [file]",
		Short: "List hook categories and their events",
		Long: `List the hook categories exported by HookTypeTable in a Hooks.h header.

With --category, list the events of one category as they appear in @hook
tables: the numeric ID, the C++ enum name, and the Lua event name.`,
		Example: `  # List categories from the configured hooks file
  elunadoc hooks

  # Events of one category
  elunadoc hooks src/LuaEngine/hooks/Hooks.h --category player`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			opts.errOut = cmd.ErrOrStderr()

			if opts.file == "" {
				path, _ := cmd.Flags().GetString("config")
				if path == "" {
					path = config.DefaultConfigPath()
				}
				cfg, err := config.LoadWithEnv(path)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				opts.file = cfg.HooksFile
			}
			return runHooks(opts)
		},
	}

	cmd.Flags().StringVar(&opts.category, "category", "", "Show the events of one category")

	return cmd
}

func runHooks(opts *hooksOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if opts.file == "" {
		return errors.New("no hooks file given (pass one or set hooks_file with 'elunadoc init')")
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}
	if opts.errOut != nil {
		renderer.SetErrWriter(opts.errOut)
	}

	hooks, diags, err := luadoc.LoadHookMap(opts.file)
	if err != nil {
		return err
	}
	for _, d := range diags {
		renderer.Warning(d.String())
	}

	if opts.category == "" {
		return renderCategories(renderer, hooks)
	}

	table, ok := hooks[strings.ToLower(opts.category)]
	if !ok {
		return fmt.Errorf("unknown hook category %q", opts.category)
	}
	return renderEvents(renderer, strings.ToLower(opts.category), table)
}

func renderCategories(renderer *view.Renderer, hooks luadoc.HookMap) error {
	if len(hooks) == 0 {
		renderer.RenderText("No hook categories found.")
		return nil
	}

	categories := make([]string, 0, len(hooks))
	for c := range hooks {
		categories = append(categories, c)
	}
	slices.Sort(categories)

	var rows [][]string
	for _, c := range categories {
		rows = append(rows, []string{c, strconv.Itoa(len(hooks[c].ByEnum))})
	}
	renderer.RenderTable([]string{"CATEGORY", "EVENTS"}, rows)
	return nil
}

func renderEvents(renderer *view.Renderer, category string, table luadoc.HookTable) error {
	if len(table.ByEnum) == 0 {
		renderer.RenderText("No events found.")
		return nil
	}

	type event struct {
		enum string
		luadoc.HookEvent
	}
	events := make([]event, 0, len(table.ByEnum))
	for enum, ev := range table.ByEnum {
		events = append(events, event{enum: enum, HookEvent: ev})
	}
	slices.SortFunc(events, func(a, b event) int {
		if a.ID != b.ID {
			return a.ID - b.ID
		}
		return strings.Compare(a.enum, b.enum)
	})

	var rows [][]string
	for _, ev := range events {
		rows = append(rows, []string{
			strconv.Itoa(ev.ID),
			ev.enum,
			"events." + category + "." + ev.LuaName,
		})
	}
	renderer.RenderTable([]string{"ID", "ENUM", "NAME"}, rows)
	return nil
}
