// Command seed loads sample classifier payloads through the ingest pipeline
// for local development: one completed analysis per document kind, one failed
// run, and one transport error.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fraudlens/internal/config"
	"fraudlens/internal/domain"
	"fraudlens/internal/repository/postgres"
	"fraudlens/internal/service"
)

type sample struct {
	kind           domain.DocumentKind
	sourceFile     string
	payload        string
	transportError string
}

var samples = []sample{
	{
		kind:       domain.KindBankStatement,
		sourceFile: "acme_statement_march.pdf",
		payload: `{
			"success": true,
			"data": {
				"document_type": "bank_statement",
				"bank_name": "First National Bank",
				"account_holder": "Acme Trading LLC",
				"account_number": "****4821",
				"statement_period": "2025-03-01 to 2025-03-31",
				"balances": {
					"opening": 14250.75,
					"ending": 9824.10,
					"available": 9824.10
				},
				"summary": {
					"transaction_count": 47,
					"total_credits": 22000.00,
					"total_debits": 26426.65,
					"net_activity": -4426.65
				},
				"ml_analysis": {
					"fraud_risk_score": 0.62,
					"risk_level": "high",
					"model_confidence": 0.88
				},
				"ai_analysis": {
					"recommendation": "Manual review recommended",
					"confidence": 91,
					"reasoning": "Several debits cluster just under the reporting threshold."
				},
				"anomalies": [
					"Unusual transaction pattern detected",
					"Round-figure withdrawals repeated on consecutive days"
				],
				"transactions": [
					{"date": "2025-03-03", "description": "Wire transfer out", "amount": -9000, "balance": 5250.75},
					{"date": "2025-03-04", "description": "Wire transfer out", "amount": -9000, "balance": -3749.25},
					{"date": "2025-03-05", "description": "Deposit", "amount": 22000, "balance": 18250.75}
				]
			}
		}`,
	},
	{
		kind:       domain.KindCheck,
		sourceFile: "check_00412.png",
		payload: `{
			"data": {
				"document_type": "check",
				"bank_name": "Commerce Bank",
				"check_number": "00412",
				"date_written": "2025-02-14",
				"payee_name": "Northwind Supplies",
				"amount_numeric": 1250.00,
				"amount_words": "One thousand two hundred fifty and 00/100",
				"routing_number": "021000021",
				"micr_code": "⑆021000021⑆ 00412"
			},
			"risk_assessment": {
				"fraud_risk_score": 0.18,
				"risk_level": "low",
				"confidence": 0.93,
				"recommendation": "Approve",
				"anomalies": []
			}
		}`,
	},
	{
		kind:       domain.KindStatement,
		sourceFile: "generic_statement.pdf",
		payload: `{
			"document_type": "statement",
			"bank_name": "Pacific Credit Union",
			"account_holder": "J. Rivera",
			"statement_period": "2025-01",
			"summary": {
				"transaction_count": "12"
			},
			"ml_analysis": {
				"fraud_risk_score": 35,
				"risk_level": "medium",
				"model_confidence": 0.74
			},
			"anomalies": ["Missing account number"]
		}`,
	},
	{
		kind:       domain.KindBankStatement,
		sourceFile: "corrupt_scan.pdf",
		payload:    `{"success": false, "error": "File unreadable"}`,
	},
	{
		kind:           domain.KindCheck,
		sourceFile:     "timeout_check.png",
		transportError: `{"message": "Request timed out", "response": {"data": {"error": "upstream timeout"}}}`,
	},
}

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

	analysisRepo := postgres.NewAnalysisRepo(db)
	exportRepo := postgres.NewAnalysisExportRepo(db)

	// Ingest never touches object storage, so the seed runs without one.
	svc := service.NewAnalysisService(analysisRepo, exportRepo, nil, "")

	ctx := context.Background()
	for _, s := range samples {
		input := service.IngestAnalysisInput{
			DocumentKind: s.kind,
			SourceFile:   s.sourceFile,
		}
		if s.payload != "" {
			input.Payload = json.RawMessage(s.payload)
		}
		if s.transportError != "" {
			input.TransportError = json.RawMessage(s.transportError)
		}

		record, err := svc.Ingest(ctx, input)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", s.sourceFile, err)
		}
		log.Printf("seeded %s analysis %s (%s)", record.DocumentKind, record.ID, record.Status)
	}

	log.Printf("Seed complete: %d analyses", len(samples))
	return nil
}
