//go:build !windows

package paths

import (
	"os"
	"os/user"
)

// Audacity's mod-script-pipe creates one FIFO pair per user under /tmp.
func username() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// ToPipe returns the endpoint Audacity reads commands from.
func ToPipe() string {
	return "/tmp/audacity_script_pipe.to." + username()
}

// FromPipe returns the endpoint Audacity writes responses to.
func FromPipe() string {
	return "/tmp/audacity_script_pipe.from." + username()
}
