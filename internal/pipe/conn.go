// Package pipe implements the client side of Audacity's mod-script-pipe
// channel: a pair of half-duplex OS pipes carrying newline-terminated
// command text one way and blank-line-framed response text the other.
package pipe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"audx/internal/paths"
)

// Options configures a Conn. Zero fields take the stock defaults.
type Options struct {
	To           string        // command endpoint, default per platform
	From         string        // response endpoint, default per platform
	Timeout      time.Duration // per-command budget, default 10s
	PollInterval time.Duration // sleep between empty reads, default 100ms
}

// Conn is a connection to a running Audacity instance. The channel carries
// no request identifiers, so replies correlate with commands purely by
// position; Do holds an internal mutex to keep exactly one command in
// flight. A process-wide advisory lock keeps a second audx process off the
// same user-scoped pipe pair.
type Conn struct {
	to           string
	from         string
	timeout      time.Duration
	pollInterval time.Duration

	mu      sync.Mutex
	t       transport
	release func() error
}

// New creates a disconnected Conn. The first Do connects on demand.
func New(opts Options) *Conn {
	c := &Conn{
		to:           opts.To,
		from:         opts.From,
		timeout:      opts.Timeout,
		pollInterval: opts.PollInterval,
	}
	if c.to == "" {
		c.to = paths.ToPipe()
	}
	if c.from == "" {
		c.from = paths.FromPipe()
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	if c.pollInterval <= 0 {
		c.pollInterval = 100 * time.Millisecond
	}
	return c
}

// Connect opens both pipe endpoints. Idempotent if already connected.
func (c *Conn) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Conn) connectLocked() error {
	if c.t != nil {
		return nil
	}

	release, err := acquireSessionLockFn()
	if err != nil {
		return err
	}

	t, err := openTransportFn(c.to, c.from)
	if err != nil {
		release() //nolint:errcheck
		return err
	}

	c.t = t
	c.release = release
	return nil
}

// Close tears down both endpoints and releases the session lock. Close
// errors are swallowed; the Conn always ends up disconnected and may be
// reconnected with Connect or the next Do.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.t != nil {
		c.t.Close() //nolint:errcheck
		c.t = nil
	}
	if c.release != nil {
		c.release() //nolint:errcheck
		c.release = nil
	}
}

// Do sends one command line and blocks until the complete response arrives,
// the timeout budget is spent, or ctx is canceled. Connects first if
// needed. A timeout fails the command but leaves the connection reusable.
func (c *Conn) Do(ctx context.Context, command string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connectLocked(); err != nil {
		return "", err
	}

	if err := c.t.WriteString(command + "\n"); err != nil {
		return "", err
	}

	return c.readResponse(ctx)
}

func (c *Conn) readResponse(ctx context.Context) (string, error) {
	deadline := time.Now().Add(c.timeout)
	var buf []byte
	chunk := make([]byte, 4096)

	for {
		n, err := c.t.Read(chunk)
		switch {
		case err == errNoData:
			// Cancellation and the deadline are only checked while the
			// channel is idle; once bytes are flowing the response is
			// close behind.
			if cerr := ctx.Err(); cerr != nil {
				return "", cerr
			}
			if time.Now().After(deadline) {
				return "", fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
			}
			time.Sleep(c.pollInterval)
		case err != nil:
			return "", err
		default:
			buf = append(buf, chunk[:n]...)
			if body, ok := extractResponse(buf); ok {
				return body, nil
			}
		}
	}
}

// Seam for tests.
var acquireSessionLockFn = acquireSessionLock

// acquireSessionLock takes the per-user advisory lock guarding the pipe
// pair. Returns a release func.
func acquireSessionLock() (func() error, error) {
	if err := paths.EnsureDir(paths.RuntimeDir()); err != nil {
		return nil, fmt.Errorf("creating runtime dir: %w", err)
	}

	lock := flock.New(paths.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", paths.LockPath(), err)
	}
	if !locked {
		return nil, ErrSessionHeld
	}
	return lock.Unlock, nil
}
