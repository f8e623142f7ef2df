package service

import (
	"context"
	"log"
	"time"
)

// ExportCleanupConfig holds settings for the export cleanup worker.
type ExportCleanupConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// ExportCleanupWorker polls for expired staged exports and releases their
// storage objects.
type ExportCleanupWorker struct {
	exportService ExportService
	cfg           ExportCleanupConfig
}

// NewExportCleanupWorker creates a new ExportCleanupWorker.
func NewExportCleanupWorker(exportService ExportService, cfg ExportCleanupConfig) *ExportCleanupWorker {
	return &ExportCleanupWorker{
		exportService: exportService,
		cfg:           cfg,
	}
}

// Start runs the polling loop until ctx is canceled.
func (w *ExportCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	log.Printf("exportCleanupWorker: started (poll=%s, batch=%d)", w.cfg.PollInterval, w.cfg.BatchSize)

	for {
		select {
		case <-ctx.Done():
			log.Printf("exportCleanupWorker: shutdown complete")
			return
		case <-ticker.C:
			released, err := w.exportService.ReleaseExpired(ctx, w.cfg.BatchSize)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("exportCleanupWorker: ReleaseExpired error: %v", err)
				continue
			}
			if released > 0 {
				log.Printf("exportCleanupWorker: released %d expired exports", released)
			}
		}
	}
}
