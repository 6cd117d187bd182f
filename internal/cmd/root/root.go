// Package root provides the root command for the elunadoc CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/elunadoc/internal/cmd/build"
	"github.com/open-cli-collective/elunadoc/internal/cmd/completion"
	"github.com/open-cli-collective/elunadoc/internal/cmd/configcmd"
	"github.com/open-cli-collective/elunadoc/internal/cmd/hooks"
	initcmd "github.com/open-cli-collective/elunadoc/internal/cmd/init"
	"github.com/open-cli-collective/elunadoc/internal/cmd/parse"
	"github.com/open-cli-collective/elunadoc/internal/version"
)

// NewCmdRoot creates the root command for elunadoc.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elunadoc",
		Short: "Generate Lua API documentation from Eluna method headers",
		Long: `elunadoc reads the doc comments in Eluna's *Methods.h headers and turns
them into structured documentation for the Lua API.

It understands the @param, @return, @proto, @table, @hook and @warning tags,
resolves hook tables against Hooks.h, and writes JSON for the site templates.

Get started by running: elunadoc init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/elunadoc/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "print progress while parsing")

	cmd.SetVersionTemplate("elunadoc version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(parse.NewCmdParse())
	cmd.AddCommand(hooks.NewCmdHooks())
	cmd.AddCommand(build.NewCmdBuild())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
