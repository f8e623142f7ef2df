package handler

import (
	"encoding/json"
	"time"

	"fraudlens/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// IngestAnalysisRequest represents the analysis ingest request body.
// Exactly one of payload / transport_error should be set; a transport_error
// records the upstream call failure instead of a classifier result.
type IngestAnalysisRequest struct {
	DocumentKind   domain.DocumentKind `json:"document_kind" binding:"required" example:"bank_statement"`
	SourceFile     string              `json:"source_file" example:"statement_march.pdf"`
	Payload        json.RawMessage     `json:"payload" swaggertype:"object"`
	TransportError json.RawMessage     `json:"transport_error" swaggertype:"object"`
}

// StageExportRequest represents the stage export request body.
type StageExportRequest struct {
	Format      domain.ExportFormat `json:"format" binding:"required" example:"csv"`
	NotifyEmail string              `json:"notify_email" example:"analyst@example.com"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// FactorsResponse carries the derived critical factor list for one analysis.
type FactorsResponse struct {
	CriticalFactors []string `json:"critical_factors"`
}

// StagedExportResponse represents a staged export with its download URL.
type StagedExportResponse struct {
	Export      domain.AnalysisExport `json:"export"`
	DownloadURL string                `json:"download_url" example:"https://s3.amazonaws.com/fraudlens-exports/...?X-Amz-Signature=..."`
	ExpiresAt   time.Time             `json:"expires_at" example:"2025-03-10T15:30:00Z"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// --- Canonical Result Schema (for documentation) ---

// FraudAnalysisResult documents the canonical classifier result shape, shared
// by all document kinds; every field is optional. Leaves are strings: upstream
// emits numbers, nulls, and free text interchangeably, and ingest preserves
// the literal form.
type FraudAnalysisResult struct {
	BankName        string           `json:"bank_name" example:"First National Bank"`
	AccountHolder   string           `json:"account_holder" example:"Jane Smith"`
	AccountNumber   string           `json:"account_number" example:"****4821"`
	StatementPeriod string           `json:"statement_period" example:"2025-02-01 to 2025-02-28"`
	Balances        BalancesDoc      `json:"balances"`
	Summary         SummaryDoc       `json:"summary"`
	Transactions    []TransactionDoc `json:"transactions"`
	MLAnalysis      MLAnalysisDoc    `json:"ml_analysis"`
	AIAnalysis      AIAnalysisDoc    `json:"ai_analysis"`
	Anomalies       []string         `json:"anomalies" example:"Unusual transaction pattern detected"`

	// Check documents.
	PayeeName     string `json:"payee_name" example:"Northwind Supplies"`
	AmountNumeric string `json:"amount_numeric" example:"1250.00"`
	AmountWords   string `json:"amount_words" example:"One thousand two hundred fifty and 00/100"`
	CheckNumber   string `json:"check_number" example:"00412"`
	RoutingNumber string `json:"routing_number" example:"021000021"`
	MICRCode      string `json:"micr_code" example:"021000021 00412"`
	DateWritten   string `json:"date_written" example:"2025-02-14"`
	Memo          string `json:"memo" example:"Invoice 8841"`
}

// BalancesDoc documents the statement balance group.
type BalancesDoc struct {
	Opening   string `json:"opening" example:"1000.00"`
	Ending    string `json:"ending" example:"1250.50"`
	Available string `json:"available" example:"1250.50"`
	Current   string `json:"current" example:"1250.50"`
}

// SummaryDoc documents the activity totals group.
type SummaryDoc struct {
	TransactionCount string `json:"transaction_count" example:"42"`
	TotalCredits     string `json:"total_credits" example:"5000.00"`
	TotalDebits      string `json:"total_debits" example:"4749.50"`
	NetActivity      string `json:"net_activity" example:"250.50"`
}

// TransactionDoc documents one statement line.
type TransactionDoc struct {
	Date        string `json:"date" example:"02/14/2025"`
	Description string `json:"description" example:"Payroll deposit"`
	Amount      string `json:"amount" example:"+1200.00"`
	Balance     string `json:"balance" example:"2450.50"`
}

// MLAnalysisDoc documents the model scoring block.
type MLAnalysisDoc struct {
	RiskLevel       string `json:"risk_level" example:"medium"`
	FraudRiskScore  string `json:"fraud_risk_score" example:"0.42"`
	ModelConfidence string `json:"model_confidence" example:"0.91"`
}

// AIAnalysisDoc documents the reviewer assessment block.
type AIAnalysisDoc struct {
	Confidence     string `json:"confidence" example:"88"`
	Recommendation string `json:"recommendation" example:"Manual review recommended"`
	Reasoning      string `json:"reasoning" example:"Several debits cluster just under the reporting threshold"`
}
