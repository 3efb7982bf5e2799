package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWaitForEndpointsAlreadyPresent(t *testing.T) {
	dir := t.TempDir()
	to := filepath.Join(dir, "to.pipe")
	from := filepath.Join(dir, "from.pipe")
	for _, p := range []string{to, from} {
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatalf("create %s: %v", p, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := waitForEndpoints(ctx, to, from); err != nil {
		t.Fatalf("waitForEndpoints() error = %v", err)
	}
}

func TestWaitForEndpointsAcrossSeparateDirs(t *testing.T) {
	// Config overrides can put the endpoints in different directories; the
	// wait must notice the second endpoint appearing in its own directory.
	to := filepath.Join(t.TempDir(), "to.pipe")
	from := filepath.Join(t.TempDir(), "from.pipe")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- waitForEndpoints(ctx, to, from) }()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(to, nil, 0644); err != nil {
		t.Fatalf("create to: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(from, nil, 0644); err != nil {
		t.Fatalf("create from: %v", err)
	}

	if err := <-errc; err != nil {
		t.Fatalf("waitForEndpoints() error = %v", err)
	}
}

func TestWaitForEndpointsTimesOut(t *testing.T) {
	to := filepath.Join(t.TempDir(), "to.pipe")
	from := filepath.Join(t.TempDir(), "from.pipe")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := waitForEndpoints(ctx, to, from)
	if err != context.DeadlineExceeded {
		t.Fatalf("waitForEndpoints() error = %v, want context.DeadlineExceeded", err)
	}
}
