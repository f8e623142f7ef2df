// Command backfill recomputes the derived risk columns and critical factors
// for completed analyses from their stored result payloads. Run it after a
// rule change so older rows match the current derivation rules.
// Usage: go run ./cmd/backfill
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"fraudlens/internal/analysis"
	"fraudlens/internal/config"
	"fraudlens/internal/domain"
	"fraudlens/internal/repository/postgres"
)

const batchSize = 100

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	offset := 0
	total := 0

	for {
		var records []domain.Analysis
		err := db.SelectContext(ctx, &records,
			`SELECT id, document_kind, status, result_data, created_at
			 FROM analyses
			 WHERE status = 'completed' AND result_data IS NOT NULL
			 ORDER BY created_at
			 LIMIT $1 OFFSET $2`, batchSize, offset)
		if err != nil {
			return fmt.Errorf("querying analyses at offset %d: %w", offset, err)
		}
		if len(records) == 0 {
			break
		}

		for i := range records {
			rec := &records[i]

			result := analysis.DecodeResult(rec.ResultData)
			anomalies := result.AnomalyList()
			factors := analysis.DeriveFactors(result, anomalies)
			factorJSON, merr := json.Marshal(factors)
			if merr != nil {
				log.Printf("WARN: skipping analysis %s: marshal factors: %v", rec.ID, merr)
				continue
			}

			_, err := db.ExecContext(ctx,
				`UPDATE analyses
				 SET risk_level = $1, risk_score_pct = $2, recommendation = $3,
				     anomaly_count = $4, critical_factors = $5
				 WHERE id = $6`,
				strings.ToLower(strings.TrimSpace(result.RiskLevel().String())),
				analysis.ToPercent(result.FraudRiskScore()),
				result.Recommendation().String(),
				len(anomalies),
				factorJSON,
				rec.ID)
			if err != nil {
				log.Printf("WARN: failed to update analysis %s: %v", rec.ID, err)
				continue
			}
			total++
		}

		if total > 0 && total%batchSize == 0 {
			log.Printf("Progress: %d analyses processed", total)
		}

		offset += len(records)
	}

	log.Printf("Backfill complete: %d analyses updated", total)
	return nil
}
