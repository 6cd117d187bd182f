// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

// shells maps each supported shell to its cobra generator.
var shells = []struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}{
	{
		name:    "bash",
		install: "elunadoc completion bash > /etc/bash_completion.d/elunadoc",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletion(w) },
	},
	{
		name:    "zsh",
		install: `elunadoc completion zsh > "${fpath[1]}/_elunadoc"`,
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	{
		name:    "fish",
		install: "elunadoc completion fish > ~/.config/fish/completions/elunadoc.fish",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	{
		name:    "powershell",
		install: "elunadoc completion powershell >> $PROFILE",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for elunadoc.

These scripts enable tab-completion for commands, flags, and arguments.
See each sub-command's help for installation instructions.`,
	}

	for _, shell := range shells {
		gen := shell.gen
		cmd.AddCommand(&cobra.Command{
			Use:   shell.name,
			Short: "Generate " + shell.name + " completion script",
			Long: "Generate " + shell.name + ` completion script for elunadoc.

To load completions for every new session:

  ` + shell.install,
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return gen(cmd.Root(), cmd.OutOrStdout())
			},
		})
	}

	return cmd
}
