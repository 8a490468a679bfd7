// Command warmup imports room content files into the database ahead of
// server startup, so deployments can bake a ready database into the
// image or volume.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mercyblade/roomhost-go/internal/config"
	"github.com/mercyblade/roomhost-go/internal/logger"
	"github.com/mercyblade/roomhost-go/internal/storage"
	"github.com/mercyblade/roomhost-go/internal/warmup"
)

// CLI flags
var (
	dataDirFlag = flag.String("data-dir", "", "Room content directory (default: DATA_DIR from environment)")
	pruneFlag   = flag.Bool("prune", false, "Delete stored rooms whose content file no longer exists")
	timeoutFlag = flag.Duration("timeout", 5*time.Minute, "Overall import timeout")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	dataDir := cfg.DataDir
	if *dataDirFlag != "" {
		dataDir = *dataDirFlag
	}

	log := logger.New(cfg.LogLevel)
	log.Info("Starting room import tool")

	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	stats, err := warmup.Run(ctx, db, log, warmup.Options{DataDir: dataDir})
	if err != nil {
		log.WithError(err).Error("Room import failed")
		os.Exit(1)
	}

	if *pruneFlag {
		if err := pruneMissing(ctx, db, dataDir, log); err != nil {
			log.WithError(err).Error("Prune failed")
			os.Exit(1)
		}
	}

	if stats.Failed.Load() > 0 {
		log.Warn("Some room files failed to import; see errors above")
		os.Exit(1)
	}
	log.Info("Room import finished")
}

// pruneMissing removes stored rooms that no longer have a content file.
func pruneMissing(ctx context.Context, db *storage.DB, dataDir string, log *logger.Logger) error {
	ids, err := db.ListRoomIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		path := filepath.Join(dataDir, id+".json")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := db.DeleteRoom(ctx, id); err != nil {
			return err
		}
		log.Info("Pruned room without content file", "room", id)
	}
	return nil
}
