package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/qlaunch/internal/core"
	"github.com/quantmind-br/qlaunch/internal/launcher"
	"github.com/quantmind-br/qlaunch/internal/resolver"
	"github.com/spf13/cobra"
)

type launchOptions struct {
	count    int
	noPrompt bool
}

// NewLaunchCmd creates the launch command
func NewLaunchCmd(env *Env) *cobra.Command {
	var opts launchOptions

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Find the target application and start it",
		Long: `Find the target executable and start it several times.

The search stops at the first hit, in this order:
  1. the override saved by a previous manual selection
  2. the current user's registry entries
  3. well-known install directories
  4. machine-wide registry entries

When nothing is found you are offered a manual selection, which is saved
for the next run. The launch count comes from --count, then the
launch.count setting, then the program's own file name ("3.exe" starts
three instances), defaulting to 2.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLaunch(env, opts)
		},
	}

	addLaunchFlags(cmd, &opts)
	return cmd
}

func addLaunchFlags(cmd *cobra.Command, opts *launchOptions) {
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of instances to start (1-10)")
	cmd.Flags().BoolVar(&opts.noPrompt, "no-prompt", false, "exit instead of asking for the path when the search fails")
}

func runLaunch(env *Env, opts launchOptions) error {
	cfg := env.Config
	target := cfg.Target.Name
	defer env.Close()

	r := resolver.NewDefault(cfg, env.Store(), env.Registry, env.Paths, env.Fs, env.Log)

	path, attempt := r.Resolve()
	if !attempt.Found() {
		if opts.noPrompt {
			msg := resolver.FailureMessage(target, attempt)
			env.Dialog.Alert(fmt.Sprintf("%s not found", target), msg)
			return core.NewExitError(core.ExitResolutionFailed, fmt.Errorf("%s not found", target))
		}

		var err error
		path, err = manualResolve(env, r, attempt)
		if err != nil {
			return err
		}
	}

	if !r.Verify(path) {
		env.Dialog.Alert("Warning", fmt.Sprintf("The path %q no longer points to a file.", path))
		return core.NewExitError(core.ExitResolvedInvalid, fmt.Errorf("resolved path %s is not a file", path))
	}

	count := repeatCount(opts.count, cfg.Launch.Count)
	env.Log.Info().Str("path", path).Int("count", count).Msg("launching")

	l := launcher.New(env.Spawner, launcher.Options{
		Hidden: cfg.Launch.Hidden,
		Fs:     env.Fs,
		Logger: env.Log,
		OnSpawnError: func(p string, err error) {
			env.Dialog.Alert("Error", fmt.Sprintf("Failed to start %s: %v", filepath.Base(p), err))
		},
	})
	l.LaunchRepeated(path, count)

	return nil
}

// manualResolve offers the user a file picker after a failed search.
func manualResolve(env *Env, r *resolver.Resolver, attempt *resolver.Attempt) (string, error) {
	target := env.Config.Target.Name

	ok := env.Dialog.Confirm(
		fmt.Sprintf("%s not found", target),
		resolver.FailureMessage(target, attempt)+"\nSelect the executable manually?",
	)
	if !ok {
		return "", core.NewExitError(core.ExitDeclined, errors.New("manual selection declined"))
	}

	picked, ok := env.Dialog.PickFile(fmt.Sprintf("Select the %s executable", target), []string{".exe"})
	if !ok {
		env.Dialog.Alert("Error", "No path selected.")
		return "", core.NewExitError(core.ExitNoSelection, errors.New("no path selected"))
	}

	path, err := r.Remember(picked)
	switch {
	case errors.Is(err, resolver.ErrInvalidManualPath):
		env.Dialog.Alert("Error", fmt.Sprintf("The path %q is invalid or the file does not exist.", picked))
		return "", core.NewExitError(core.ExitManualInvalid, err)
	case errors.Is(err, resolver.ErrPersist):
		env.Dialog.Alert("Warning", fmt.Sprintf("Could not save the selected path: %v", err))
	}

	return path, nil
}

// repeatCount picks the launch count: flag, then config, then the
// executable name. Out-of-range explicit values fall back to the default.
func repeatCount(flag, configured int) int {
	switch {
	case flag != 0:
		return launcher.ClampRepeat(flag)
	case configured != 0:
		return launcher.ClampRepeat(configured)
	default:
		return launcher.ExecutableRepeatCount()
	}
}
