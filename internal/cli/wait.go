package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"audx/internal/config"
	"audx/internal/paths"
)

const defaultWaitTimeout = 2 * time.Minute

// runWait blocks until both scripting pipe endpoints exist, then returns.
// Useful in scripts that launch Audacity and want to drive it as soon as
// the bridge is up.
func runWait(ctx context.Context, cfg *config.Config, args []string) int {
	timeout := defaultWaitTimeout
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !isFlag(arg, "--timeout") {
			fmt.Fprintf(os.Stderr, "audx: unknown flag: %s\n", arg)
			return ExitUsageErr
		}
		d, err := durationFlag(args, &i, arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "audx: %v\n", err)
			return ExitUsageErr
		}
		timeout = d
	}

	to, from := cfg.Pipe.To, cfg.Pipe.From
	if to == "" {
		to = paths.ToPipe()
	}
	if from == "" {
		from = paths.FromPipe()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := waitForEndpoints(ctx, to, from); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintf(os.Stderr, "audx: scripting pipes did not appear within %s\n", timeout)
			fmt.Fprintln(os.Stderr, "Is Audacity starting, and is mod-script-pipe enabled?")
			return ExitOpErr
		}
		fmt.Fprintf(os.Stderr, "audx: %v\n", err)
		return ExitOpErr
	}

	fmt.Println("scripting pipes are ready")
	return ExitOK
}

func bothExist(to, from string) bool {
	for _, p := range []string{to, from} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// waitForEndpoints watches the pipe parent directories for the endpoints to
// appear, falling back to polling where they cannot be watched (Windows
// named pipes have no watchable parent).
func waitForEndpoints(ctx context.Context, to, from string) error {
	if bothExist(to, from) {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return pollForEndpoints(ctx, to, from)
	}
	defer watcher.Close()

	// Config overrides may place the two endpoints in different
	// directories; each needs its own watch.
	dirs := []string{filepath.Dir(to)}
	if d := filepath.Dir(from); d != dirs[0] {
		dirs = append(dirs, d)
	}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			return pollForEndpoints(ctx, to, from)
		}
	}

	// The endpoints may have appeared between the first check and the
	// watch being registered.
	if bothExist(to, from) {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-watcher.Events:
			if !ok {
				return pollForEndpoints(ctx, to, from)
			}
			if bothExist(to, from) {
				return nil
			}
		case werr, ok := <-watcher.Errors:
			if !ok || werr != nil {
				return pollForEndpoints(ctx, to, from)
			}
		}
	}
}

func pollForEndpoints(ctx context.Context, to, from string) error {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if bothExist(to, from) {
				return nil
			}
		}
	}
}
