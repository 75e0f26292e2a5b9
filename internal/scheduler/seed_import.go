package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/seekmark/seekmark/internal/codec"
	"github.com/seekmark/seekmark/internal/logger"
	"github.com/seekmark/seekmark/internal/notify"
	redisstore "github.com/seekmark/seekmark/internal/store/redis"
)

// SeedImporter periodically merges a seed file into the bookmark
// record. The file uses the export format, so a previous export can be
// dropped in as-is. Merges are additive only.
type SeedImporter struct {
	seedFile      string
	store         *redisstore.Store
	hub           *notify.Hub
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSeedImporter creates a new seed importer
func NewSeedImporter(
	seedFile string,
	store *redisstore.Store,
	hub *notify.Hub,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedImporter {
	return &SeedImporter{
		seedFile:      seedFile,
		store:         store,
		hub:           hub,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic import process
func (si *SeedImporter) Start(ctx context.Context) error {
	// Import immediately on start
	if err := si.Import(ctx); err != nil {
		return fmt.Errorf("initial seed import failed: %w", err)
	}

	// Start periodic import
	ticker := time.NewTicker(si.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := si.Import(ctx); err != nil {
					si.logger.Error("failed to import seed file",
						logger.Error(err))
				}
			case <-si.manualTrigger:
				si.logger.Info("manual seed import triggered")
				if err := si.Import(ctx); err != nil {
					si.logger.Error("failed to import seed file",
						logger.Error(err))
				}
			case <-si.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the importer
func (si *SeedImporter) Stop() {
	close(si.stopCh)
}

// Import reads the seed file and merges its bookmarks into the store.
func (si *SeedImporter) Import(ctx context.Context) error {
	si.logger.Info("importing seed file",
		logger.String("file", si.seedFile))

	data, err := os.ReadFile(si.seedFile)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	incoming, err := codec.ParseImport(data)
	if err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	added, err := si.store.ImportMerge(ctx, incoming)
	if err != nil {
		return fmt.Errorf("failed to merge seed bookmarks: %w", err)
	}

	if added > 0 {
		si.logger.Info("seed bookmarks merged",
			logger.Int("added", added))
		si.hub.Publish(notify.Event{Action: "bookmarksImported", Payload: map[string]int{"added": added}})
	} else {
		si.logger.Debug("seed file already fully imported")
	}

	return nil
}
