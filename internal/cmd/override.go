package cmd

import (
	"errors"
	"fmt"

	"github.com/quantmind-br/qlaunch/internal/core"
	"github.com/quantmind-br/qlaunch/internal/fsops"
	"github.com/quantmind-br/qlaunch/internal/resolver"
	"github.com/spf13/cobra"
)

// NewOverrideCmd creates the override command
func NewOverrideCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Inspect or set the saved executable path",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the saved executable path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer env.Close()

			st := env.Store()
			if st == nil {
				return errors.New("settings store unavailable")
			}

			t := env.Config.Target
			value, ok, err := st.Get(t.AppID, t.OverrideKey)
			if err != nil {
				return fmt.Errorf("read override: %w", err)
			}
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "no override saved")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			switch {
			case !fsops.Exists(env.Fs, value):
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: saved path does not exist and will be skipped")
			case !fsops.IsFile(env.Fs, value):
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: saved path is not a file and will be skipped")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <path>",
		Short: "Save the executable path used by launch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer env.Close()

			r := resolver.NewDefault(env.Config, env.Store(), env.Registry, env.Paths, env.Fs, env.Log)
			path, err := r.Remember(args[0])
			if err != nil {
				if errors.Is(err, resolver.ErrInvalidManualPath) {
					return core.NewExitError(core.ExitManualInvalid, err)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "override saved: %s\n", path)
			return nil
		},
	})

	return cmd
}
