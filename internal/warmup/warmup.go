// Package warmup imports room content files into the database so the
// server starts with every room ready to serve.
package warmup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mercyblade/roomhost-go/internal/logger"
	"github.com/mercyblade/roomhost-go/internal/metrics"
	"github.com/mercyblade/roomhost-go/internal/room"
	"github.com/mercyblade/roomhost-go/internal/storage"
)

// importConcurrency bounds concurrent file imports to keep SQLite write
// contention low.
const importConcurrency = 4

// Stats tracks import statistics.
// All fields use atomic operations for concurrent access
type Stats struct {
	Imported atomic.Int64
	Skipped  atomic.Int64
	Failed   atomic.Int64
}

// Options configures an import pass
type Options struct {
	DataDir string           // Directory holding <roomId>.json files
	Metrics *metrics.Metrics // Optional metrics recorder
}

// Run imports every room JSON file under DataDir. Files whose stored
// checksum is unchanged are skipped; files that fail validation are
// logged and counted but do not abort the pass.
func Run(ctx context.Context, db *storage.DB, log *logger.Logger, opts Options) (*Stats, error) {
	stats := &Stats{}
	startTime := time.Now()

	paths, err := filepath.Glob(filepath.Join(opts.DataDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan data directory: %w", err)
	}

	log.Info("Starting room import",
		"data_dir", opts.DataDir,
		"files", len(paths),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			roomID := strings.TrimSuffix(filepath.Base(path), ".json")
			status := importFile(ctx, db, log, roomID, path, stats)
			if opts.Metrics != nil {
				opts.Metrics.ImportRoomsTotal.WithLabelValues(status).Inc()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("room import interrupted: %w", err)
	}

	duration := time.Since(startTime)
	if opts.Metrics != nil {
		opts.Metrics.ImportDuration.Observe(duration.Seconds())
	}

	log.Info("Room import complete",
		"imported", stats.Imported.Load(),
		"skipped", stats.Skipped.Load(),
		"failed", stats.Failed.Load(),
		"duration", duration.String(),
	)
	return stats, nil
}

func importFile(ctx context.Context, db *storage.DB, log *logger.Logger, roomID, path string, stats *Stats) string {
	body, err := os.ReadFile(path)
	if err != nil {
		stats.Failed.Add(1)
		log.WithError(err).Error("Failed to read room file", "room", roomID, "path", path)
		return "error"
	}

	// Validate before storing so a bad file never reaches serving.
	if _, err := room.Parse(roomID, body); err != nil {
		stats.Failed.Add(1)
		log.WithError(err).Error("Room file failed validation", "room", roomID, "path", path)
		return "error"
	}

	written, err := db.UpsertRoom(ctx, roomID, body)
	if err != nil {
		stats.Failed.Add(1)
		log.WithError(err).Error("Failed to store room", "room", roomID)
		return "error"
	}
	if !written {
		stats.Skipped.Add(1)
		return "skipped"
	}

	stats.Imported.Add(1)
	log.Debug("Imported room", "room", roomID)
	return "imported"
}

// RunPeriodic re-runs the import on a fixed period until the context is
// cancelled. Changed rooms are invalidated in the store so the next
// request reparses them.
func RunPeriodic(ctx context.Context, db *storage.DB, store *storage.RoomStore, log *logger.Logger, period time.Duration, opts Options) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := Run(ctx, db, log, opts)
			if err != nil {
				log.WithError(err).Error("Periodic room import failed")
				continue
			}
			if stats.Imported.Load() > 0 {
				// Cheap relative to reparsing a handful of rooms on demand.
				store.Purge()
			}
		}
	}
}
