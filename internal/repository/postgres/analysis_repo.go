package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fraudlens/internal/domain"
	"fraudlens/internal/port"
)

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, analysis *domain.Analysis) error {
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO analyses (
		id, document_kind, status, source_file, envelope_shape,
		result_data, failure_message, risk_level, risk_score_pct,
		recommendation, anomaly_count, critical_factors, created_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12, $13
	)`

	_, err := r.db.ExecContext(ctx, query,
		analysis.ID, analysis.DocumentKind, analysis.Status, analysis.SourceFile, analysis.EnvelopeShape,
		analysis.ResultData, analysis.FailureMessage, analysis.RiskLevel, analysis.RiskScorePct,
		analysis.Recommendation, analysis.AnomalyCount, analysis.CriticalFactors, analysis.CreatedAt)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	var analysis domain.Analysis
	err := r.db.GetContext(ctx, &analysis, "SELECT * FROM analyses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByID: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepo) List(ctx context.Context, filter domain.AnalysisFilter, offset, limit int) ([]domain.Analysis, int, error) {
	where, args := buildAnalysisFilter(filter)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM analyses"+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM analyses%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var analyses []domain.Analysis
	if err := r.db.SelectContext(ctx, &analyses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List: %w", err)
	}
	return analyses, total, nil
}

func (r *analysisRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("analysisRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// buildAnalysisFilter renders the optional filter as a WHERE clause with
// positional args starting at $1.
func buildAnalysisFilter(filter domain.AnalysisFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.DocumentKind != "" {
		args = append(args, filter.DocumentKind)
		conds = append(conds, fmt.Sprintf("document_kind = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.RiskLevel != "" {
		args = append(args, filter.RiskLevel)
		conds = append(conds, fmt.Sprintf("risk_level = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
