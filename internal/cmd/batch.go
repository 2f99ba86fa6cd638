package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/quantmind-br/qlaunch/internal/core"
	"github.com/quantmind-br/qlaunch/internal/fsops"
	"github.com/quantmind-br/qlaunch/internal/launcher"
	"github.com/quantmind-br/qlaunch/internal/security"
	"github.com/quantmind-br/qlaunch/internal/ui"
	"github.com/spf13/cobra"
)

// NewBatchCmd creates the batch command
func NewBatchCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [dir]",
		Short: "Open every shortcut in a folder at once",
		Long: `Open every shortcut file in a folder concurrently and report each
failure separately.

Without an argument the folder saved on the first run is used. On the
first run you are asked to pick the folder, which is then saved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = security.SanitizePath(args[0])
				if !fsops.IsDir(env.Fs, dir) {
					return core.NewExitError(core.ExitManualInvalid, fmt.Errorf("%s is not a directory", args[0]))
				}
			}
			return runBatch(env, dir)
		},
	}

	return cmd
}

func runBatch(env *Env, dir string) error {
	defer env.Close()

	if dir == "" {
		dir = storedShortcutDir(env)
	}
	if dir == "" {
		var err error
		if dir, err = pickShortcutDir(env); err != nil {
			return err
		}
	}

	return launchShortcuts(env, dir)
}

// storedShortcutDir returns the saved folder if it still exists.
func storedShortcutDir(env *Env) string {
	st := env.Store()
	if st == nil {
		return ""
	}

	bc := env.Config.Batch
	raw, ok, err := st.Get(bc.AppID, bc.DirKey)
	if err != nil {
		env.Dialog.Alert("Error", fmt.Sprintf("Failed to read the saved folder: %v", err))
		return ""
	}
	if !ok {
		return ""
	}

	dir := security.SanitizePath(raw)
	if dir == "" || !fsops.IsDir(env.Fs, dir) {
		env.Log.Debug().Str("dir", raw).Msg("saved shortcut folder is gone")
		return ""
	}
	return dir
}

// pickShortcutDir runs the first-run flow and saves the chosen folder.
func pickShortcutDir(env *Env) (string, error) {
	env.Dialog.Alert("First run", "Please choose the folder that holds your shortcuts.")

	if !env.Dialog.Confirm("Choose shortcut folder", "Select the folder containing the shortcuts?") {
		env.Dialog.Alert("Info", "No folder selected, exiting.")
		return "", core.NewExitError(core.ExitDeclined, errors.New("folder selection declined"))
	}

	picked, ok := env.Dialog.PickDirectory("Choose shortcut folder")
	if !ok {
		env.Dialog.Alert("Info", "No folder selected, exiting.")
		return "", core.NewExitError(core.ExitNoSelection, errors.New("no folder selected"))
	}

	dir := security.SanitizePath(picked)
	if !fsops.IsDir(env.Fs, dir) {
		env.Dialog.Alert("Error", fmt.Sprintf("The path %q is not a folder.", picked))
		return "", core.NewExitError(core.ExitManualInvalid, fmt.Errorf("%s is not a directory", picked))
	}

	bc := env.Config.Batch
	if st := env.Store(); st == nil {
		env.Dialog.Alert("Warning", "Could not save the folder: settings store unavailable.")
	} else if err := st.Set(bc.AppID, bc.DirKey, dir); err != nil {
		env.Log.Warn().Err(err).Str("dir", dir).Msg("shortcut folder not saved")
		env.Dialog.Alert("Warning", fmt.Sprintf("Could not save the folder: %v", err))
	}

	return dir, nil
}

func launchShortcuts(env *Env, dir string) error {
	bc := env.Config.Batch

	opts := launcher.Options{
		Hidden:        bc.Hidden,
		MaxWorkers:    bc.MaxWorkers,
		Extension:     bc.Extension,
		CaseSensitive: bc.CaseSensitive,
		Fs:            env.Fs,
		Logger:        env.Log,
	}

	var bar *ui.ProgressBar
	opts.OnOutcome = func(launcher.Outcome) {
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	l := launcher.New(env.Spawner, opts)

	files, err := l.Shortcuts(dir)
	if err != nil {
		env.Dialog.Alert("Error", fmt.Sprintf("Failed to read the shortcut folder: %v", err))
		return fmt.Errorf("list shortcuts in %s: %w", dir, err)
	}
	env.Log.Info().Str("dir", dir).Int("shortcuts", len(files)).Msg("batch launch")

	if env.Console && len(files) > 0 {
		bar = ui.NewProgressBar(len(files), "Opening shortcuts", os.Stderr)
	}

	outcomes := l.LaunchFiles(files)
	if bar != nil && !bar.IsFinished() {
		_ = bar.Finish()
	}

	failures := launcher.Failures(outcomes)
	for _, f := range failures {
		env.Dialog.Alert("Error", f.Error())
	}

	env.Log.Info().
		Str("dir", dir).
		Int("opened", len(outcomes)-len(failures)).
		Int("failed", len(failures)).
		Msg("batch finished")
	return nil
}
