//go:build windows

package pipe

import (
	"fmt"
	"os"
)

// namedPipeTransport speaks to Audacity over \\.\pipe\ToSrvPipe and
// \\.\pipe\FromSrvPipe. Windows named pipe reads block until the server
// writes, and mod-script-pipe replies in message-sized chunks, so the
// blocking read stands in for the Unix poll loop. A blocked read does not
// observe the deadline or cancellation until bytes arrive.
// TODO: open the response pipe with FILE_FLAG_OVERLAPPED and use overlapped
// reads so deadlines and cancellation apply mid-read.
type namedPipeTransport struct {
	to   *os.File
	from *os.File
}

func openTransport(to, from string) (transport, error) {
	w, err := os.OpenFile(to, os.O_WRONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotRunning, to)
		}
		return nil, fmt.Errorf("opening command pipe %s: %w", to, err)
	}

	r, err := os.OpenFile(from, os.O_RDONLY, 0)
	if err != nil {
		w.Close()
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotRunning, from)
		}
		return nil, fmt.Errorf("opening response pipe %s: %w", from, err)
	}

	return &namedPipeTransport{to: w, from: r}, nil
}

func (t *namedPipeTransport) WriteString(s string) error {
	if _, err := t.to.WriteString(s); err != nil {
		return fmt.Errorf("writing command: %w", err)
	}
	return nil
}

func (t *namedPipeTransport) Read(p []byte) (int, error) {
	n, err := t.from.Read(p)
	if err != nil {
		return 0, fmt.Errorf("reading response pipe: %w", err)
	}
	return n, nil
}

func (t *namedPipeTransport) Close() error {
	err := t.to.Close()
	if cerr := t.from.Close(); err == nil {
		err = cerr
	}
	return err
}
