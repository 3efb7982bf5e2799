//go:build !windows

package pipe

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// fifoTransport speaks to Audacity over the per-user FIFO pair under /tmp.
// The read side is opened O_NONBLOCK so a poll never blocks past the
// caller's deadline.
type fifoTransport struct {
	to     *os.File
	fromFd int
}

func openTransport(to, from string) (transport, error) {
	for _, path := range []string{to, from} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotRunning, path)
		}
	}

	// Opening the write side blocks until the host has the read end open;
	// the endpoint existing means mod-script-pipe created it, so this
	// returns promptly when Audacity is alive.
	w, err := os.OpenFile(to, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening command pipe %s: %w", to, err)
	}

	fd, err := unix.Open(from, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("opening response pipe %s: %w", from, err)
	}

	return &fifoTransport{to: w, fromFd: fd}, nil
}

func (t *fifoTransport) WriteString(s string) error {
	if _, err := t.to.WriteString(s); err != nil {
		return fmt.Errorf("writing command: %w", err)
	}
	return nil
}

func (t *fifoTransport) Read(p []byte) (int, error) {
	n, err := unix.Read(t.fromFd, p)
	if err == unix.EAGAIN {
		return 0, errNoData
	}
	if err != nil {
		return 0, fmt.Errorf("reading response pipe: %w", err)
	}
	if n == 0 {
		// EOF on a FIFO means the writer is not attached (yet); the host
		// re-opens its end between replies on some platforms.
		return 0, errNoData
	}
	return n, nil
}

func (t *fifoTransport) Close() error {
	err := t.to.Close()
	if cerr := unix.Close(t.fromFd); err == nil {
		err = cerr
	}
	return err
}
