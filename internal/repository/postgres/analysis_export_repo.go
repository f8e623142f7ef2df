package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fraudlens/internal/domain"
	"fraudlens/internal/port"
)

type analysisExportRepo struct {
	db *sqlx.DB
}

// NewAnalysisExportRepo creates a new PostgreSQL-backed AnalysisExportRepository.
func NewAnalysisExportRepo(db *sqlx.DB) port.AnalysisExportRepository {
	return &analysisExportRepo{db: db}
}

func (r *analysisExportRepo) Create(ctx context.Context, export *domain.AnalysisExport) error {
	if export.CreatedAt.IsZero() {
		export.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO analysis_exports (
		id, analysis_id, format, file_name, storage_key,
		size_bytes, expires_at, released_at, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		export.ID, export.AnalysisID, export.Format, export.FileName, export.StorageKey,
		export.SizeBytes, export.ExpiresAt, export.ReleasedAt, export.CreatedAt)
	if err != nil {
		return fmt.Errorf("analysisExportRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisExportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisExport, error) {
	var export domain.AnalysisExport
	err := r.db.GetContext(ctx, &export, "SELECT * FROM analysis_exports WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("analysisExportRepo.GetByID: %w", err)
	}
	return &export, nil
}

func (r *analysisExportRepo) ListByAnalysis(ctx context.Context, analysisID uuid.UUID) ([]domain.AnalysisExport, error) {
	var exports []domain.AnalysisExport
	err := r.db.SelectContext(ctx, &exports,
		"SELECT * FROM analysis_exports WHERE analysis_id = $1 ORDER BY created_at DESC", analysisID)
	if err != nil {
		return nil, fmt.Errorf("analysisExportRepo.ListByAnalysis: %w", err)
	}
	return exports, nil
}

func (r *analysisExportRepo) ListExpired(ctx context.Context, cutoff time.Time, limit int) ([]domain.AnalysisExport, error) {
	var exports []domain.AnalysisExport
	err := r.db.SelectContext(ctx, &exports,
		`SELECT * FROM analysis_exports
		 WHERE released_at IS NULL AND expires_at <= $1
		 ORDER BY expires_at ASC LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("analysisExportRepo.ListExpired: %w", err)
	}
	return exports, nil
}

func (r *analysisExportRepo) MarkReleased(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE analysis_exports SET released_at = $1 WHERE id = $2 AND released_at IS NULL",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("analysisExportRepo.MarkReleased: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *analysisExportRepo) CountLive(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM analysis_exports WHERE released_at IS NULL AND expires_at > $1",
		time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("analysisExportRepo.CountLive: %w", err)
	}
	return count, nil
}
