package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/harborcrm/harbor/config"
	"github.com/harborcrm/harbor/internal/database"
	"github.com/harborcrm/harbor/internal/domain"
	"github.com/harborcrm/harbor/internal/repository"
	"github.com/harborcrm/harbor/pkg/logger"
)

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

func main() {
	initDB := flag.Bool("init-db", false, "apply the database schema and exit")
	cursors := flag.Bool("cursors", false, "print per-source sync cursor status and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		osExit(1)
		return
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	log.WithField("version", cfg.Version).Info("Starting harbor")

	db, err := database.Connect(&cfg.Database)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Failed to connect to database")
		return
	}
	defer db.Close()

	if *initDB {
		if err := database.InitializeDatabase(db); err != nil {
			log.WithField("error", err.Error()).Fatal("Failed to initialize database")
			return
		}
		log.Info("Database schema applied")
		return
	}

	if *cursors {
		cursorRepo := repository.NewCursorRepository(db)
		list, err := cursorRepo.ListCursors(context.Background())
		if err != nil {
			log.WithField("error", err.Error()).Fatal("Failed to list cursors")
			return
		}
		for _, c := range list {
			log.WithFields(map[string]interface{}{
				"source":       c.SourceType,
				"position":     cursorPosition(c),
				"items_synced": c.ItemsSynced,
				"last_error":   c.LastError.StringValue(),
				"updated_at":   c.UpdatedAt,
			}).Info("Sync cursor")
		}
		return
	}

	flag.Usage()
	osExit(2)
}

// cursorPosition extracts a human-readable watermark from the opaque cursor
// value. Each connector stores its own shape, so try the known field names
// in order.
func cursorPosition(c *domain.SyncCursor) string {
	for _, field := range []string{"page_token", "watermark", "last_id"} {
		if v := c.CursorField(field); v != "" {
			return v
		}
	}
	return ""
}
