package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"fontset/config"
	"fontset/misc"
	"fontset/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()
	return nil
}

// Ignore urfave/cli default error handling - cli.Exit() looks non-transparent
// and unnecessary, subcommands return regular errors.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func descriptorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "family", Aliases: []string{"f"}, Required: true, Usage: "font family `NAME` to resolve"},
		&cli.StringFlag{Name: "style", Usage: "font-style shorthand (normal, italic, oblique [ANGLE [ANGLE]])"},
		&cli.StringFlag{Name: "weight", Usage: "font-weight shorthand (keyword, number or range)"},
		&cli.StringFlag{Name: "stretch", Usage: "font-stretch shorthand (keyword, percentage or range)"},
	}
}

func main() {

	// allow graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "resolves font requests against registered font faces",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "verbose console logging to help troubleshooting"},
		},
		Commands: []*cli.Command{
			{
				Name:         "parse",
				Usage:        "Normalizes a single descriptor shorthand",
				OnUsageError: usageErrorHandler,
				Action:       runParse,
				ArgsUsage:    "KIND VALUE",
				CustomHelpTemplate: fmt.Sprintf(`%s
KIND:
    one of "style", "weight" or "stretch"

VALUE:
    the shorthand to normalize, quoted when it contains spaces,
    for example: fontq parse style "oblique -20deg 20deg"
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "find",
				Usage:        "Resolves a font request against @font-face declarations of stylesheet(s)",
				OnUsageError: usageErrorHandler,
				Action:       runFind,
				Flags:        descriptorFlags(),
				ArgsUsage:    "CSSFILE...",
				CustomHelpTemplate: fmt.Sprintf(`%s
CSSFILE:
    stylesheet(s) to scan for @font-face declarations, in the order the
    registry should consider them (resolution is first match)
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "load",
				Usage:        "Resolves a font request against the persistent face store, registering and loading on miss",
				OnUsageError: usageErrorHandler,
				Action:       runLoad,
				Flags: append(descriptorFlags(),
					&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "font `FILE` to register when nothing matches"},
					&cli.StringFlag{Name: "db", Usage: "face store `FILE` (overrides configuration)"},
				),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       runDumpConfig,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
