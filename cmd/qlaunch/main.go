package main

import (
	"context"
	"fmt"
	"os"

	"github.com/quantmind-br/qlaunch/internal/cmd"
	"github.com/quantmind-br/qlaunch/internal/config"
	"github.com/quantmind-br/qlaunch/internal/core"
	"github.com/quantmind-br/qlaunch/internal/logging"
	"github.com/quantmind-br/qlaunch/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return core.ExitFailure
	}

	console := cmd.ConsoleMode(cfg.UI.Mode)
	ui.InitColors(cfg.Logging.Color)

	// Initialize logger. Without a console window stderr is discarded, so
	// only the log file is written.
	log := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		LogFile: cfg.Paths.LogFile,
		NoColor: cfg.Logging.Color == "never",
		Quiet:   !console,
	})

	env := cmd.NewEnv(cfg, log)

	// Execute root command
	rootCmd := cmd.NewRootCmd(env, version)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		code := core.ExitCode(err)
		log.Error().Err(err).Int("exit_code", code).Msg("command failed")
		if console {
			ui.PrintError("%v", err)
		}
		return code
	}

	return core.ExitSuccess
}
