package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchSignalsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte("id_insiden\nA\n"), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	err := Watch(ctx, path, func() {
		changed <- struct{}{}
	}, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte("id_insiden\nA\nB\n"), 0o644); err != nil {
		t.Fatalf("rewrite dataset: %v", err)
	}
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected change notification")
	}
}
