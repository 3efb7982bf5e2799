// Package fsutil holds filename and path helpers for export destinations.
package fsutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const maxNameLen = 200

// invalid covers the characters rejected by at least one common filesystem.
const invalid = `<>:"/\|?*`

// Sanitize converts an arbitrary clip or track name into a filename that is
// valid on common filesystems. Applying it twice yields the same result.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(invalid, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	s := strings.Trim(b.String(), ". ")
	if runes := []rune(s); len(runes) > maxNameLen {
		// Truncation can expose a trailing dot or space; trim again so a
		// second pass changes nothing.
		s = strings.Trim(string(runes[:maxNameLen]), ". ")
	}
	if s == "" {
		return "unnamed"
	}
	return s
}

// UniquePath returns dir/stem.ext, or the first dir/stem_N.ext (N = 1, 2, …)
// that does not exist. Existence is re-checked for every candidate so a
// concurrent writer is noticed on the next collision probe.
func UniquePath(dir, stem, ext string) string {
	path := filepath.Join(dir, stem+"."+ext)
	for n := 1; exists(path); n++ {
		path = filepath.Join(dir, stem+"_"+strconv.Itoa(n)+"."+ext)
	}
	return path
}

// EnsureDir creates the export directory and parents if needed.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
