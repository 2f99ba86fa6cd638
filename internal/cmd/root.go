package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Running it without a subcommand
// launches the target.
func NewRootCmd(env *Env, version string) *cobra.Command {
	var opts launchOptions

	cmd := &cobra.Command{
		Use:   "qlaunch",
		Short: "Quick launcher for multi-instance desktop apps",
		Long: `qlaunch finds an installed application and starts several instances of it,
or opens every shortcut in a folder at once.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLaunch(env, opts)
		},
	}

	addLaunchFlags(cmd, &opts)

	cmd.AddCommand(NewLaunchCmd(env))
	cmd.AddCommand(NewBatchCmd(env))
	cmd.AddCommand(NewSourcesCmd(env))
	cmd.AddCommand(NewOverrideCmd(env))
	cmd.AddCommand(NewCompletionCmd(env))
	cmd.AddCommand(NewVersionCmd(version))

	return cmd
}
