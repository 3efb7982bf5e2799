// Package cli implements the audx command-line surface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audx/internal/config"
	"audx/internal/pipe"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitOpErr    = 1
	ExitUsageErr = 2
	ExitInternal = 3
)

const version = "0.1.0"

// Run is the main CLI entry point. Returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage(os.Stdout)
		return ExitOK
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage(os.Stdout)
		return ExitOK
	case "-V", "--version", "version":
		fmt.Printf("audx %s\n", version)
		return ExitOK
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audx: %v\n", err)
		return ExitInternal
	}
	if verr := config.Validate(cfg); verr != nil {
		fmt.Fprintf(os.Stderr, "audx: invalid config: %v\n", verr)
		return ExitUsageErr
	}

	// An interrupt cancels the in-flight command at its next poll; the
	// export workflows still run their restore pass before exiting.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "ping":
		return runPing(ctx, cfg, args[1:])
	case "tracks":
		return runTracks(ctx, cfg, args[1:])
	case "clips":
		return runClips(ctx, cfg, args[1:])
	case "cmd":
		return runCmd(ctx, cfg, args[1:])
	case "wait":
		return runWait(ctx, cfg, args[1:])
	case "export":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "audx: export needs a target: tracks or clips")
			return ExitUsageErr
		}
		switch args[1] {
		case "tracks":
			return runExportTracks(ctx, cfg, args[2:])
		case "clips":
			return runExportClips(ctx, cfg, args[2:])
		default:
			fmt.Fprintf(os.Stderr, "audx: unknown export target: %s\n", args[1])
			return ExitUsageErr
		}
	default:
		fmt.Fprintf(os.Stderr, "audx: unknown command: %s\n", args[0])
		printUsage(os.Stderr)
		return ExitUsageErr
	}
}

func printUsage(w *os.File) {
	fmt.Fprintf(w, `audx %s - automate a running Audacity over mod-script-pipe

Usage: audx COMMAND [FLAGS]

Commands:
  ping                 Check the scripting connection
  wait                 Block until the scripting pipes appear
  tracks               List the project's tracks
  clips                List the project's clips
  export tracks        Export every track to its own file
  export clips         Export every clip on an unmuted track to its own file
  cmd TEXT...          Send a raw scripting command and print the reply
  version              Print the audx version

Common flags:
  --timeout DURATION   Per-command response budget (default 10s)

Export flags:
  --dir PATH           Output directory (created if missing)
  --format EXT         Output format extension (default wav)
  --channels N         1 = mono, 2 = stereo (default 2)
  --base NAME          Track export: filename base (default track)
  --prefix TEXT        Clip export: filename prefix
  --rm-scratch         Clip export: remove the staging track afterwards

Config file: %s
`, version, config.ExampleConfigPath())
}

// newConn builds the pipe connection for a command invocation.
func newConn(cfg *config.Config, timeout time.Duration) *pipe.Conn {
	if timeout <= 0 {
		timeout = cfg.Pipe.TimeoutDuration()
	}
	return pipe.New(pipe.Options{
		To:           cfg.Pipe.To,
		From:         cfg.Pipe.From,
		Timeout:      timeout,
		PollInterval: cfg.Pipe.PollIntervalDuration(),
	})
}

// reportErr prints err with remediation guidance where audx knows any, and
// picks the matching exit code.
func reportErr(err error) int {
	switch {
	case errors.Is(err, pipe.ErrNotRunning):
		fmt.Fprintf(os.Stderr, "audx: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Make sure:")
		fmt.Fprintln(os.Stderr, "  1. Audacity is running")
		fmt.Fprintln(os.Stderr, "  2. mod-script-pipe is enabled (Edit > Preferences > Modules)")
		fmt.Fprintln(os.Stderr, "  3. Audacity was restarted after enabling it")
		return ExitOpErr
	case errors.Is(err, pipe.ErrSessionHeld):
		fmt.Fprintf(os.Stderr, "audx: %v\n", err)
		fmt.Fprintln(os.Stderr, "Close the other audx process first; the pipes cannot be shared.")
		return ExitOpErr
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "audx: interrupted")
		return ExitOpErr
	default:
		fmt.Fprintf(os.Stderr, "audx: %v\n", err)
		return ExitOpErr
	}
}
