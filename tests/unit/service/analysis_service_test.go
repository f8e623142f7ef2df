package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fraudlens/internal/domain"
	"fraudlens/internal/service"
	"fraudlens/mocks"
)

const testBucket = "fraudlens-test"

func setupAnalysisService() (
	service.AnalysisService,
	*mocks.MockAnalysisRepo,
	*mocks.MockAnalysisExportRepo,
	*mocks.MockObjectStorage,
) {
	analysisRepo := new(mocks.MockAnalysisRepo)
	exportRepo := new(mocks.MockAnalysisExportRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewAnalysisService(analysisRepo, exportRepo, storage, testBucket)
	return svc, analysisRepo, exportRepo, storage
}

// --- Ingest ---

func TestAnalysisService_Ingest_FlaggedSuccess(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	payload := `{
		"success": true,
		"data": {
			"bank_name": "First National Bank",
			"account_holder": "Jane Smith",
			"account_number": "****1234",
			"statement_period": "Jan 1 - Jan 31, 2024",
			"balances": {"opening": "5000.00", "ending": "4200.00"},
			"summary": {"transaction_count": 4, "total_credits": "1200.00", "total_debits": "2000.00"},
			"transactions": [
				{"date": "01/03/2024", "description": "Payroll", "amount": "+1200.00", "balance": "6200.00"},
				{"date": "01/10/2024", "description": "Rent", "amount": "-1500.00", "balance": "4700.00"},
				{"date": "01/17/2024", "description": "Groceries", "amount": "-300.00", "balance": "4400.00"},
				{"date": "01/24/2024", "description": "Utilities", "amount": "-200.00", "balance": "4200.00"}
			],
			"ml_analysis": {"risk_level": "HIGH", "fraud_risk_score": 0.62, "model_confidence": 0.88},
			"ai_analysis": {"confidence": 91, "recommendation": "Manual review recommended"},
			"anomalies": ["Balances inconsistent with transaction totals", "Unusual deposit pattern"]
		}
	}`

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.KindBankStatement,
		SourceFile:   "statement_jan.pdf",
		Payload:      json.RawMessage(payload),
	})

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, domain.AnalysisStatusCompleted, record.Status)
	assert.Equal(t, "flagged", record.EnvelopeShape)
	assert.Equal(t, domain.RiskLevel("high"), record.RiskLevel)
	assert.InDelta(t, 62.0, record.RiskScorePct, 0.0001)
	assert.Equal(t, "Manual review recommended", record.Recommendation)
	assert.Equal(t, 2, record.AnomalyCount)
	assert.Equal(t, "statement_jan.pdf", record.SourceFile)
	assert.NotEmpty(t, record.ResultData)

	// A fully captured statement triggers only the anomaly-text rule.
	factors := record.FactorList()
	require.Len(t, factors, 1)
	assert.Equal(t, "Balance math inconsistent with net activity per ML review.", factors[0])
	analysisRepo.AssertExpectations(t)
}

func TestAnalysisService_Ingest_SplitShape(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	payload := `{
		"data": {
			"payee_name": "Acme Corp",
			"amount_numeric": "1250.00",
			"amount_words": "One thousand two hundred fifty",
			"check_number": "1047",
			"date_written": "02/14/2024"
		},
		"risk_assessment": {
			"risk_level": "Low",
			"fraud_risk_score": 0.18,
			"confidence": 0.8,
			"recommendation": "Approve"
		}
	}`

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.KindCheck,
		Payload:      json.RawMessage(payload),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisStatusCompleted, record.Status)
	assert.Equal(t, "split", record.EnvelopeShape)
	assert.Equal(t, domain.RiskLevel("low"), record.RiskLevel)
	assert.InDelta(t, 18.0, record.RiskScorePct, 0.0001)
	assert.Equal(t, "Approve", record.Recommendation)
	assert.Equal(t, 0, record.AnomalyCount)

	// The merged result keeps the risk assessment alongside the extraction.
	var merged map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(record.ResultData, &merged))
	assert.Contains(t, merged, "payee_name")
	assert.Contains(t, merged, "risk_assessment")
	analysisRepo.AssertExpectations(t)
}

func TestAnalysisService_Ingest_BareShape(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	payload := `{
		"account_holder": "John Davis",
		"ml_analysis": {"risk_level": "Medium", "fraud_risk_score": 35},
		"anomalies": ["Missing account number"]
	}`

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.KindStatement,
		Payload:      json.RawMessage(payload),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisStatusCompleted, record.Status)
	assert.Equal(t, "bare", record.EnvelopeShape)
	assert.Equal(t, domain.RiskLevel("medium"), record.RiskLevel)
	// Scores above 1 are already on the percent scale.
	assert.InDelta(t, 35.0, record.RiskScorePct, 0.0001)
	assert.Equal(t, 1, record.AnomalyCount)

	// Sparse capture fires the structural rules in table order.
	assert.Equal(t, []string{
		"Bank name missing — issuing institution cannot be confirmed.",
		"Account number unavailable — no way to reference the account.",
		"Statement period missing — coverage window unclear.",
		"Opening/ending balances not captured — balance movement cannot be reconciled.",
		"Too few transactions detected — insufficient activity for validation.",
	}, record.FactorList())
	analysisRepo.AssertExpectations(t)
}

func TestAnalysisService_Ingest_FailureEnvelope(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.KindBankStatement,
		Payload:      json.RawMessage(`{"success": false, "error": "File unreadable"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisStatusFailed, record.Status)
	assert.Equal(t, "File unreadable", record.FailureMessage)
	assert.Empty(t, record.EnvelopeShape)
	assert.Empty(t, record.ResultData)
	assert.Zero(t, record.RiskScorePct)
	analysisRepo.AssertExpectations(t)
}

func TestAnalysisService_Ingest_FailureEnvelopeDefaultMessage(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.KindCheck,
		Payload:      json.RawMessage(`{"success": false}`),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisStatusFailed, record.Status)
	assert.Equal(t, "Analysis failed. Please try again.", record.FailureMessage)
}

func TestAnalysisService_Ingest_NonObjectPayload(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.KindStatement,
		Payload:      json.RawMessage(`"not an object"`),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisStatusFailed, record.Status)
	assert.Equal(t, "Unexpected response format from analysis service.", record.FailureMessage)
}

func TestAnalysisService_Ingest_TransportError(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind:   domain.KindBankStatement,
		TransportError: json.RawMessage(`{"response": {"data": {"error": "upstream timeout"}}}`),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisStatusFailed, record.Status)
	assert.Equal(t, "upstream timeout", record.FailureMessage)
}

func TestAnalysisService_Ingest_TransportErrorMessagePrecedence(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind:   domain.KindCheck,
		TransportError: json.RawMessage(`{"message": "Request timed out", "response": {"data": {"error": "upstream timeout"}}}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "Request timed out", record.FailureMessage)
}

// Persisted rows must satisfy the schema's outcome check constraint: result
// data and a failure message are mutually exclusive, and one is always set.
func TestAnalysisService_Ingest_OutcomeExclusivity(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	var persisted []*domain.Analysis
	analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).
		Run(func(args mock.Arguments) {
			persisted = append(persisted, args.Get(1).(*domain.Analysis))
		}).
		Return(nil)

	_, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.KindBankStatement,
		Payload:      json.RawMessage(`{"success": true, "data": {"bank_name": "First National Bank"}}`),
	})
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.KindBankStatement,
		Payload:      json.RawMessage(`{"success": false, "error": "File unreadable"}`),
	})
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind:   domain.KindCheck,
		TransportError: json.RawMessage(`{"message": "Request timed out"}`),
	})
	require.NoError(t, err)

	require.Len(t, persisted, 3)
	for _, record := range persisted {
		hasResult := len(record.ResultData) > 0
		hasFailure := record.FailureMessage != ""
		assert.NotEqual(t, hasResult, hasFailure,
			"exactly one of result data / failure message for status %s", record.Status)
	}
}

func TestAnalysisService_Ingest_UnsupportedKind(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.DocumentKind("invoice"),
		Payload:      json.RawMessage(`{"success": true, "data": {}}`),
	})

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
	analysisRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalysisService_Ingest_EmptyInput(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.KindBankStatement,
	})

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	analysisRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalysisService_Ingest_RepoError(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Analysis")).
		Return(errors.New("db error"))

	record, err := svc.Ingest(context.Background(), service.IngestAnalysisInput{
		DocumentKind: domain.KindCheck,
		Payload:      json.RawMessage(`{"success": true, "data": {"payee_name": "Acme"}}`),
	})

	assert.Nil(t, record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storing analysis")
}

// --- View ---

func TestAnalysisService_View_Completed(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisID := uuid.New()
	stored := &domain.Analysis{
		ID:            analysisID,
		DocumentKind:  domain.KindBankStatement,
		Status:        domain.AnalysisStatusCompleted,
		EnvelopeShape: "flagged",
		RiskLevel:     "high",
		ResultData: json.RawMessage(`{
			"bank_name": "First National Bank",
			"ml_analysis": {"fraud_risk_score": 0.62, "model_confidence": 0.88},
			"ai_analysis": {"confidence": 91},
			"anomalies": ["Missing account number", "Unusual deposit pattern"]
		}`),
		CriticalFactors: json.RawMessage(`["Account number unavailable — no way to reference the account."]`),
		CreatedAt:       time.Now().UTC(),
	}

	analysisRepo.On("GetByID", mock.Anything, analysisID).Return(stored, nil)

	view, err := svc.View(context.Background(), analysisID)

	require.NoError(t, err)
	assert.InDelta(t, 62.0, view.RiskScorePct, 0.0001)
	assert.InDelta(t, 88.0, view.ModelConfidencePct, 0.0001)
	assert.InDelta(t, 91.0, view.AIConfidencePct, 0.0001)

	require.Len(t, view.Anomalies, 2)
	assert.True(t, view.Anomalies[0].Emphasize)
	assert.False(t, view.Anomalies[1].Emphasize)

	assert.Equal(t, []string{"Account number unavailable — no way to reference the account."}, view.CriticalFactors)
	assert.NotEmpty(t, view.Sections)
	assert.Equal(t, json.RawMessage(stored.ResultData), view.Result)
	analysisRepo.AssertExpectations(t)
}

func TestAnalysisService_View_Failed(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisID := uuid.New()
	stored := &domain.Analysis{
		ID:             analysisID,
		DocumentKind:   domain.KindCheck,
		Status:         domain.AnalysisStatusFailed,
		FailureMessage: "File unreadable",
	}

	analysisRepo.On("GetByID", mock.Anything, analysisID).Return(stored, nil)

	view, err := svc.View(context.Background(), analysisID)

	require.NoError(t, err)
	assert.Equal(t, "File unreadable", view.FailureMessage)
	assert.Zero(t, view.RiskScorePct)
	assert.Empty(t, view.Sections)
	assert.NotNil(t, view.Anomalies)
	assert.Empty(t, view.Anomalies)
}

func TestAnalysisService_View_NotFound(t *testing.T) {
	svc, analysisRepo, _, _ := setupAnalysisService()

	analysisID := uuid.New()
	analysisRepo.On("GetByID", mock.Anything, analysisID).Return(nil, domain.ErrNotFound)

	view, err := svc.View(context.Background(), analysisID)

	assert.Nil(t, view)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- Delete ---

func TestAnalysisService_Delete_ReleasesLiveExports(t *testing.T) {
	svc, analysisRepo, exportRepo, storage := setupAnalysisService()

	analysisID := uuid.New()
	releasedAt := time.Now().Add(-time.Hour)
	liveExport := domain.AnalysisExport{
		ID:         uuid.New(),
		AnalysisID: analysisID,
		StorageKey: "exports/" + analysisID.String() + "/live.json",
	}
	releasedExport := domain.AnalysisExport{
		ID:         uuid.New(),
		AnalysisID: analysisID,
		StorageKey: "exports/" + analysisID.String() + "/old.csv",
		ReleasedAt: &releasedAt,
	}

	exportRepo.On("ListByAnalysis", mock.Anything, analysisID).
		Return([]domain.AnalysisExport{releasedExport, liveExport}, nil)
	storage.On("Delete", mock.Anything, testBucket, liveExport.StorageKey).Return(nil)
	exportRepo.On("MarkReleased", mock.Anything, liveExport.ID).Return(nil)
	analysisRepo.On("Delete", mock.Anything, analysisID).Return(nil)

	err := svc.Delete(context.Background(), analysisID)

	assert.NoError(t, err)
	// The already-released export is not touched again.
	storage.AssertNumberOfCalls(t, "Delete", 1)
	analysisRepo.AssertExpectations(t)
	exportRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestAnalysisService_Delete_StorageErrorStillDeletesRecord(t *testing.T) {
	svc, analysisRepo, exportRepo, storage := setupAnalysisService()

	analysisID := uuid.New()
	liveExport := domain.AnalysisExport{
		ID:         uuid.New(),
		AnalysisID: analysisID,
		StorageKey: "exports/" + analysisID.String() + "/live.json",
	}

	exportRepo.On("ListByAnalysis", mock.Anything, analysisID).
		Return([]domain.AnalysisExport{liveExport}, nil)
	storage.On("Delete", mock.Anything, testBucket, liveExport.StorageKey).
		Return(errors.New("s3 unavailable"))
	analysisRepo.On("Delete", mock.Anything, analysisID).Return(nil)

	err := svc.Delete(context.Background(), analysisID)

	assert.NoError(t, err)
	// A failed object delete leaves the record unreleased for the cleanup worker.
	exportRepo.AssertNotCalled(t, "MarkReleased", mock.Anything, mock.Anything)
	analysisRepo.AssertExpectations(t)
}

func TestAnalysisService_Delete_NotFound(t *testing.T) {
	svc, analysisRepo, exportRepo, _ := setupAnalysisService()

	analysisID := uuid.New()
	exportRepo.On("ListByAnalysis", mock.Anything, analysisID).
		Return([]domain.AnalysisExport{}, nil)
	analysisRepo.On("Delete", mock.Anything, analysisID).Return(domain.ErrNotFound)

	err := svc.Delete(context.Background(), analysisID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
