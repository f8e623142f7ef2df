package port

import (
	"context"
	"time"
)

// ExportEmail describes one staged-export notification.
type ExportEmail struct {
	ToEmail     string
	FileName    string
	DownloadURL string
	ExpiresAt   time.Time
}

// EmailSender defines the contract for sending export notifications.
type EmailSender interface {
	SendExportEmail(ctx context.Context, email ExportEmail) error
}
