package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fraudlens/internal/domain"
)

// AnalysisExportRepository defines the contract for staged-export records.
type AnalysisExportRepository interface {
	Create(ctx context.Context, export *domain.AnalysisExport) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisExport, error)
	ListByAnalysis(ctx context.Context, analysisID uuid.UUID) ([]domain.AnalysisExport, error)
	// ListExpired returns unreleased exports whose expiry is at or before the
	// cutoff, oldest first.
	ListExpired(ctx context.Context, cutoff time.Time, limit int) ([]domain.AnalysisExport, error)
	MarkReleased(ctx context.Context, id uuid.UUID) error
	CountLive(ctx context.Context) (int, error)
}
