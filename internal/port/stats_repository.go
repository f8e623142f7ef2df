package port

import (
	"context"

	"fraudlens/internal/domain"
)

// StatsRepository provides aggregate statistics queries.
type StatsRepository interface {
	GetOverview(ctx context.Context) (*domain.AnalysisStats, error)
}
