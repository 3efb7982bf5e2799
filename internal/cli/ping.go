package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"audx/internal/config"
	"audx/internal/script"
)

// runPing verifies the scripting connection end to end with a Help command.
func runPing(ctx context.Context, cfg *config.Config, args []string) int {
	timeout, ok := parseCommonFlags(args)
	if !ok {
		return ExitUsageErr
	}

	conn := newConn(cfg, timeout)
	defer conn.Close()

	s := script.NewSession(conn)
	start := time.Now()
	reply, err := s.Help(ctx, "Help")
	if err != nil {
		return reportErr(err)
	}
	if reply == "" {
		fmt.Fprintln(os.Stderr, "audx: connected, but the Help reply was empty")
		return ExitOpErr
	}

	fmt.Printf("ok: audacity answered in %s (%d bytes)\n",
		time.Since(start).Round(time.Millisecond), len(reply))
	return ExitOK
}

// runCmd sends a raw command line and prints the reply verbatim.
func runCmd(ctx context.Context, cfg *config.Config, args []string) int {
	var rest []string
	var timeout time.Duration
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if isFlag(arg, "--timeout") {
			d, err := durationFlag(args, &i, arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "audx: %v\n", err)
				return ExitUsageErr
			}
			timeout = d
			continue
		}
		rest = append(rest, arg)
	}
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "audx: cmd needs a command, e.g. audx cmd 'Help: Command=Amplify'")
		return ExitUsageErr
	}

	conn := newConn(cfg, timeout)
	defer conn.Close()

	s := script.NewSession(conn)
	reply, err := s.Raw(ctx, strings.Join(rest, " "))
	if err != nil {
		return reportErr(err)
	}
	if reply != "" {
		fmt.Println(reply)
	}
	return ExitOK
}

// parseCommonFlags handles the flags every read-only command shares.
func parseCommonFlags(args []string) (timeout time.Duration, ok bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case isFlag(arg, "--timeout"):
			d, err := durationFlag(args, &i, arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "audx: %v\n", err)
				return 0, false
			}
			timeout = d
		default:
			fmt.Fprintf(os.Stderr, "audx: unknown flag: %s\n", arg)
			return 0, false
		}
	}
	return timeout, true
}
