package pipe

import "errors"

var (
	// ErrNotRunning means a pipe endpoint does not exist: Audacity is not
	// running or mod-script-pipe is disabled.
	ErrNotRunning = errors.New("audacity scripting pipe not found")

	// ErrTimeout means no response terminator arrived within the budget.
	// The connection stays usable for the next command.
	ErrTimeout = errors.New("timed out waiting for audacity response")

	// ErrSessionHeld means another process already holds the pipe pair.
	// The pipes carry no request IDs, so a second concurrent client would
	// corrupt response correlation.
	ErrSessionHeld = errors.New("scripting pipes are in use by another audx session")
)
