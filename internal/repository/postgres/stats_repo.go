package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"fraudlens/internal/domain"
	"fraudlens/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const analysisStatsQuery = `SELECT
	COUNT(*) AS total_analyses,
	COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed,
	COUNT(CASE WHEN status = 'failed' THEN 1 END) AS failed,
	COALESCE(AVG(CASE WHEN status = 'completed' THEN risk_score_pct END), 0) AS avg_risk_score_pct
FROM analyses`

func (r *statsRepo) GetOverview(ctx context.Context) (*domain.AnalysisStats, error) {
	var stats domain.AnalysisStats
	if err := r.db.GetContext(ctx, &stats, analysisStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetOverview totals: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.ByKind,
		`SELECT document_kind, COUNT(*) AS count FROM analyses
		 GROUP BY document_kind ORDER BY document_kind`); err != nil {
		return nil, fmt.Errorf("statsRepo.GetOverview by kind: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.ByRiskLevel,
		`SELECT risk_level, COUNT(*) AS count FROM analyses
		 WHERE risk_level <> '' GROUP BY risk_level ORDER BY count DESC`); err != nil {
		return nil, fmt.Errorf("statsRepo.GetOverview by risk level: %w", err)
	}

	if err := r.db.GetContext(ctx, &stats.LiveExports,
		`SELECT COUNT(*) FROM analysis_exports
		 WHERE released_at IS NULL AND expires_at > $1`, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("statsRepo.GetOverview live exports: %w", err)
	}

	return &stats, nil
}
