package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	missioncontrol "github.com/alnah/mission-control"
	"github.com/alnah/mission-control/internal/assets"
	"github.com/alnah/mission-control/internal/config"
	"github.com/alnah/mission-control/internal/dashboard"
	"github.com/alnah/mission-control/internal/hints"
	"github.com/alnah/mission-control/internal/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdServe      = "serve"
	cmdRender     = "render"
	cmdExplainers = "explainers"
	cmdActivity   = "activity"
	cmdVersion    = "version"
	cmdHelp       = "help"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrWriteOutput    = errors.New("failed to write output")
)

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr)

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case cmdServe:
		err = runServe(ctx, rest, env)
	case cmdRender:
		err = runRender(ctx, rest, env)
	case cmdExplainers:
		err = runExplainers(rest, env)
	case cmdActivity:
		err = runActivity(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "missionctl %s\n", Version)
	case cmdHelp:
		err = printHelp(env.Stdout, rest)
	case "-h", "--help":
		printUsage(env.Stdout)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		printError(env.Stderr, err)
		if errors.Is(err, ErrUnknownCommand) {
			fmt.Fprintln(env.Stderr)
			printUsage(env.Stderr)
		}
	}
	return exitCodeFor(err)
}

// printError writes err with an actionable hint when one applies.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
}

// hintFor picks a hint for well-known failures.
func hintFor(err error) string {
	var hint *hintError
	if errors.As(err, &hint) {
		return hint.hint
	}
	switch {
	case errors.Is(err, missioncontrol.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, missioncontrol.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().ListStyles())
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configSearchPaths())
	case errors.Is(err, dashboard.ErrMissingData), errors.Is(err, dashboard.ErrInvalidData):
		return hints.ForDataDir()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	}
	return ""
}

// hintError attaches a hint computed where the context is known, such as
// the address that failed to bind.
type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() }
func (e *hintError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintError{err: err, hint: hint}
}

// configSearchPaths lists where a named config file would be looked up.
func configSearchPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.DirName, "missionctl.yaml")}
}

// listenHint wraps listen failures with the address in use.
func listenHint(err error, addr string) error {
	if errors.Is(err, server.ErrListen) {
		return withHint(err, hints.ForAddressInUse(addr))
	}
	return err
}
