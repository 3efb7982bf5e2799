package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "vocals", "vocals"},
		{"invalid chars", `My:Clip*`, "My_Clip_"},
		{"path separators", `a/b\c`, "a_b_c"},
		{"trim dots and spaces", "  take 3. ", "take 3"},
		{"empty", "", "unnamed"},
		{"only invalid trim", " .. ", "unnamed"},
		{"windows reserved chars", `<guitar>|"solo"?`, `_guitar___solo__`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		`My:Clip*`,
		"  take 3. ",
		"",
		"plain",
		`a/b\c`,
		strings.Repeat("x", 300),
		// Truncation lands exactly on the dot.
		strings.Repeat("a", 199) + "." + strings.Repeat("b", 50),
		strings.Repeat("a", 199) + " " + strings.Repeat("b", 50),
	}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("Sanitize(Sanitize(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestSanitizeTruncatesLongNames(t *testing.T) {
	got := Sanitize(strings.Repeat("a", 300))
	if len([]rune(got)) != maxNameLen {
		t.Fatalf("Sanitize(long) length = %d, want %d", len([]rune(got)), maxNameLen)
	}
}

func TestSanitizeTruncationLeavesNoTrailingDot(t *testing.T) {
	in := strings.Repeat("a", 199) + "." + strings.Repeat("b", 50)
	got := Sanitize(in)
	want := strings.Repeat("a", 199)
	if got != want {
		t.Fatalf("Sanitize(boundary dot) = %q, want %q", got, want)
	}
	if strings.HasSuffix(got, ".") || strings.HasSuffix(got, " ") {
		t.Fatalf("Sanitize(boundary dot) = %q, ends with a trimmed character", got)
	}
}

func TestUniquePathNoCollision(t *testing.T) {
	dir := t.TempDir()
	got := UniquePath(dir, "clip", "wav")
	want := filepath.Join(dir, "clip.wav")
	if got != want {
		t.Fatalf("UniquePath() = %q, want %q", got, want)
	}
}

func TestUniquePathSuffixesPastExistingFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"clip.wav", "clip_1.wav", "clip_2.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	got := UniquePath(dir, "clip", "wav")
	want := filepath.Join(dir, "clip_3.wav")
	if got != want {
		t.Fatalf("UniquePath() = %q, want %q", got, want)
	}
}

func TestEnsureDirCreatesParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("stat %s: %v, IsDir = %v", dir, err, info != nil && info.IsDir())
	}
}
