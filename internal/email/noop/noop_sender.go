package noop

import (
	"context"
	"log"

	"fraudlens/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs download URLs to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendExportEmail(_ context.Context, email port.ExportEmail) error {
	log.Printf("[NOOP EMAIL] Export %s for %s (expires %s): %s",
		email.FileName, email.ToEmail, email.ExpiresAt.UTC().Format("2006-01-02 15:04 UTC"), email.DownloadURL)
	return nil
}
