//go:build windows

package paths

// Windows named pipes are global per session; no per-user suffix.

// ToPipe returns the endpoint Audacity reads commands from.
func ToPipe() string {
	return `\\.\pipe\ToSrvPipe`
}

// FromPipe returns the endpoint Audacity writes responses to.
func FromPipe() string {
	return `\\.\pipe\FromSrvPipe`
}
