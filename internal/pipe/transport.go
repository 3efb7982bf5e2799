package pipe

import "errors"

// errNoData is returned by transport.Read when the channel is open but has
// nothing buffered yet. The caller backs off and retries instead of blocking.
var errNoData = errors.New("no data available")

// transport is the raw byte channel to the host application: one
// write-only endpoint for commands, one read-only endpoint for replies.
type transport interface {
	WriteString(s string) error
	Read(p []byte) (int, error)
	Close() error
}

// Seam for tests; the real constructor is platform-specific.
var openTransportFn = openTransport
