package warmup

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mercyblade/roomhost-go/internal/logger"
	"github.com/mercyblade/roomhost-go/internal/storage"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter("error", io.Discard)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", name, err)
	}
}

func TestRun(t *testing.T) {
	db, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	dir := t.TempDir()
	writeFile(t, dir, "sleep.json", `{"keywords": {"sleep": {"en": ["sleep"]}}}`)
	writeFile(t, dir, "anger.json", `{"keywords": {"anger": {"en": ["angry"]}}}`)
	writeFile(t, dir, "broken.json", `{"keywords":`)
	writeFile(t, dir, "notes.txt", `ignored`)

	stats, err := Run(context.Background(), db, testLogger(), Options{DataDir: dir})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if got := stats.Imported.Load(); got != 2 {
		t.Errorf("Expected 2 imported, got %d", got)
	}
	if got := stats.Failed.Load(); got != 1 {
		t.Errorf("Expected 1 failed, got %d", got)
	}

	count, err := db.CountRooms(context.Background())
	if err != nil {
		t.Fatalf("CountRooms() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 stored rooms, got %d", count)
	}

	// A broken file must never reach storage
	if _, err := db.GetRoomJSON(context.Background(), "broken"); err == nil {
		t.Error("Expected broken room to be absent from storage")
	}
}

func TestRunSkipsUnchanged(t *testing.T) {
	db, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	dir := t.TempDir()
	writeFile(t, dir, "sleep.json", `{"keywords": {}}`)

	if _, err := Run(context.Background(), db, testLogger(), Options{DataDir: dir}); err != nil {
		t.Fatalf("First Run() failed: %v", err)
	}

	stats, err := Run(context.Background(), db, testLogger(), Options{DataDir: dir})
	if err != nil {
		t.Fatalf("Second Run() failed: %v", err)
	}
	if got := stats.Skipped.Load(); got != 1 {
		t.Errorf("Expected 1 skipped, got %d", got)
	}
	if got := stats.Imported.Load(); got != 0 {
		t.Errorf("Expected 0 imported, got %d", got)
	}
}

func TestRunEmptyDir(t *testing.T) {
	db, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	stats, err := Run(context.Background(), db, testLogger(), Options{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got := stats.Imported.Load(); got != 0 {
		t.Errorf("Expected 0 imported, got %d", got)
	}
}
