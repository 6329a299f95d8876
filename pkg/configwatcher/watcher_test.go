package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFileDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roles.yaml")
	if err := os.WriteFile(path, []byte("roles: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 10)
	if err := WatchFile(ctx, path, 50*time.Millisecond, func() { changed <- struct{}{} }); err != nil {
		t.Fatalf("WatchFile: %v", err)
	}

	// 其他文件的变更不触发回调
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("roles: []\n# edit\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case <-changed:
		t.Fatal("burst of writes produced more than one notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchFileMissingDir(t *testing.T) {
	err := WatchFile(context.Background(), filepath.Join(t.TempDir(), "nope", "roles.yaml"), 0, func() {})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
