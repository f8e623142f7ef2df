package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fraudlens/internal/config"
	"fraudlens/internal/domain"
	"fraudlens/internal/port"
	"fraudlens/internal/service"
	"fraudlens/mocks"
)

const testExportTTL = 24 * time.Hour

func testS3Config() config.S3Config {
	return config.S3Config{
		Region: "us-east-1",
		Bucket: "test-bucket",
	}
}

func setupExportService() (
	service.ExportService,
	*mocks.MockAnalysisRepo,
	*mocks.MockAnalysisExportRepo,
	*mocks.MockObjectStorage,
	*mocks.MockEmailSender,
) {
	analysisRepo := new(mocks.MockAnalysisRepo)
	exportRepo := new(mocks.MockAnalysisExportRepo)
	storage := new(mocks.MockObjectStorage)
	email := new(mocks.MockEmailSender)
	cfg := testS3Config()
	svc := service.NewExportService(analysisRepo, exportRepo, storage, email, &cfg, testExportTTL)
	return svc, analysisRepo, exportRepo, storage, email
}

// completedBankAnalysis returns a stored bank statement analysis with result data.
func completedBankAnalysis() *domain.Analysis {
	return &domain.Analysis{
		ID:            uuid.New(),
		DocumentKind:  domain.KindBankStatement,
		Status:        domain.AnalysisStatusCompleted,
		EnvelopeShape: "flagged",
		RiskLevel:     "medium",
		RiskScorePct:  44,
		ResultData: json.RawMessage(`{
			"bank_name": "First National Bank",
			"account_holder": "Jane Smith",
			"transactions": [
				{"date": "01/03/2024", "description": "Payroll", "amount": "+1200.00", "balance": "6200.00"}
			],
			"ml_analysis": {"risk_level": "Medium", "fraud_risk_score": 0.44, "model_confidence": 0.9},
			"anomalies": ["Unusual deposit pattern"]
		}`),
		CriticalFactors: json.RawMessage(`[]`),
		CreatedAt:       time.Now().UTC(),
	}
}

// --- Render ---

func TestExportService_Render_JSON(t *testing.T) {
	svc, analysisRepo, _, _, _ := setupExportService()

	record := completedBankAnalysis()
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	rendered, err := svc.Render(context.Background(), record.ID, domain.ExportFormatJSON)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rendered.FileName, "bank_statement_analysis_"))
	assert.True(t, strings.HasSuffix(rendered.FileName, ".json"))
	assert.Equal(t, "application/json", rendered.ContentType)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rendered.Data, &doc))
	assert.Contains(t, doc, "extracted_sections")
	analysisRepo.AssertExpectations(t)
}

func TestExportService_Render_TransactionsCSV(t *testing.T) {
	svc, analysisRepo, _, _, _ := setupExportService()

	record := completedBankAnalysis()
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	rendered, err := svc.Render(context.Background(), record.ID, domain.ExportFormatTransactionsCSV)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rendered.FileName, "bank_statement_analysis_transactions_"))
	assert.Equal(t, "text/csv; charset=utf-8", rendered.ContentType)
	assert.Contains(t, string(rendered.Data), "Payroll")
}

func TestExportService_Render_UnsupportedFormat(t *testing.T) {
	svc, analysisRepo, _, _, _ := setupExportService()

	record := completedBankAnalysis()
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	rendered, err := svc.Render(context.Background(), record.ID, domain.ExportFormat("pdf"))

	assert.Nil(t, rendered)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExportService_Render_TransactionsForCheck(t *testing.T) {
	svc, analysisRepo, _, _, _ := setupExportService()

	record := completedBankAnalysis()
	record.DocumentKind = domain.KindCheck
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	rendered, err := svc.Render(context.Background(), record.ID, domain.ExportFormatTransactionsCSV)

	assert.Nil(t, rendered)
	assert.ErrorIs(t, err, domain.ErrFormatKindMismatch)
}

func TestExportService_Render_TransactionsForStatement(t *testing.T) {
	svc, analysisRepo, _, _, _ := setupExportService()

	record := completedBankAnalysis()
	record.DocumentKind = domain.KindStatement
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	rendered, err := svc.Render(context.Background(), record.ID, domain.ExportFormatTransactionsCSV)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rendered.FileName, "statement_analysis_transactions_"))
	assert.Equal(t, "text/csv; charset=utf-8", rendered.ContentType)
	assert.Contains(t, string(rendered.Data), "Payroll")
}

func TestExportService_Render_FailedAnalysis(t *testing.T) {
	svc, analysisRepo, _, _, _ := setupExportService()

	record := &domain.Analysis{
		ID:             uuid.New(),
		DocumentKind:   domain.KindCheck,
		Status:         domain.AnalysisStatusFailed,
		FailureMessage: "File unreadable",
	}
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	rendered, err := svc.Render(context.Background(), record.ID, domain.ExportFormatJSON)

	assert.Nil(t, rendered)
	assert.ErrorIs(t, err, domain.ErrNoResultData)
}

func TestExportService_Render_NotFound(t *testing.T) {
	svc, analysisRepo, _, _, _ := setupExportService()

	analysisID := uuid.New()
	analysisRepo.On("GetByID", mock.Anything, analysisID).Return(nil, domain.ErrNotFound)

	rendered, err := svc.Render(context.Background(), analysisID, domain.ExportFormatJSON)

	assert.Nil(t, rendered)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- Stage ---

func TestExportService_Stage_Success(t *testing.T) {
	svc, analysisRepo, exportRepo, storage, email := setupExportService()

	record := completedBankAnalysis()
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(input port.UploadInput) bool {
		return input.Bucket == "test-bucket" && strings.HasPrefix(input.Key, "exports/"+record.ID.String()+"/")
	})).Return(&port.UploadOutput{Location: "s3://test-bucket/key"}, nil)
	exportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AnalysisExport")).Return(nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.AnythingOfType("string"), int64(testExportTTL.Seconds())).
		Return("https://storage.example.com/presigned", nil)

	staged, err := svc.Stage(context.Background(), service.StageExportInput{
		AnalysisID: record.ID,
		Format:     domain.ExportFormatCSV,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/presigned", staged.DownloadURL)
	assert.Equal(t, domain.ExportFormatCSV, staged.Export.Format)
	assert.Equal(t, record.ID, staged.Export.AnalysisID)
	assert.True(t, strings.HasSuffix(staged.Export.FileName, ".csv"))
	assert.Greater(t, staged.Export.SizeBytes, int64(0))
	assert.WithinDuration(t, time.Now().Add(testExportTTL), staged.Export.ExpiresAt, 2*time.Second)
	assert.Equal(t, staged.Export.ExpiresAt, staged.ExpiresAt)
	assert.Nil(t, staged.Export.ReleasedAt)

	email.AssertNotCalled(t, "SendExportEmail", mock.Anything, mock.Anything)
	analysisRepo.AssertExpectations(t)
	exportRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestExportService_Stage_KeyKeepsSourceFileStem(t *testing.T) {
	svc, analysisRepo, exportRepo, storage, _ := setupExportService()

	record := completedBankAnalysis()
	record.SourceFile = "Q1 Statement (final).pdf"
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	var uploadedKey string
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Run(func(args mock.Arguments) {
			uploadedKey = args.Get(1).(port.UploadInput).Key
		}).
		Return(&port.UploadOutput{}, nil)
	exportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AnalysisExport")).Return(nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.AnythingOfType("string"), mock.AnythingOfType("int64")).
		Return("https://storage.example.com/presigned", nil)

	staged, err := svc.Stage(context.Background(), service.StageExportInput{
		AnalysisID: record.ID,
		Format:     domain.ExportFormatJSON,
	})

	require.NoError(t, err)
	assert.Equal(t, uploadedKey, staged.Export.StorageKey)
	assert.True(t, strings.HasPrefix(uploadedKey, "exports/"+record.ID.String()+"/"), uploadedKey)
	assert.Contains(t, uploadedKey, "Q1_Statement")
	assert.NotContains(t, uploadedKey, "(")
}

func TestExportService_Stage_SendsEmail(t *testing.T) {
	svc, analysisRepo, exportRepo, storage, email := setupExportService()

	record := completedBankAnalysis()
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	exportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AnalysisExport")).Return(nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.AnythingOfType("string"), mock.AnythingOfType("int64")).
		Return("https://storage.example.com/presigned", nil)
	email.On("SendExportEmail", mock.Anything, mock.MatchedBy(func(mail port.ExportEmail) bool {
		return mail.ToEmail == "auditor@example.com" && mail.DownloadURL == "https://storage.example.com/presigned"
	})).Return(nil)

	_, err := svc.Stage(context.Background(), service.StageExportInput{
		AnalysisID:  record.ID,
		Format:      domain.ExportFormatXLSX,
		NotifyEmail: "auditor@example.com",
	})

	require.NoError(t, err)
	email.AssertExpectations(t)
}

func TestExportService_Stage_EmailFailureNotFatal(t *testing.T) {
	svc, analysisRepo, exportRepo, storage, email := setupExportService()

	record := completedBankAnalysis()
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	exportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AnalysisExport")).Return(nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.AnythingOfType("string"), mock.AnythingOfType("int64")).
		Return("https://storage.example.com/presigned", nil)
	email.On("SendExportEmail", mock.Anything, mock.AnythingOfType("port.ExportEmail")).
		Return(errors.New("ses throttled"))

	staged, err := svc.Stage(context.Background(), service.StageExportInput{
		AnalysisID:  record.ID,
		Format:      domain.ExportFormatJSON,
		NotifyEmail: "auditor@example.com",
	})

	require.NoError(t, err)
	assert.NotNil(t, staged)
}

func TestExportService_Stage_UploadFailure(t *testing.T) {
	svc, analysisRepo, exportRepo, storage, _ := setupExportService()

	record := completedBankAnalysis()
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, errors.New("s3 unavailable"))

	staged, err := svc.Stage(context.Background(), service.StageExportInput{
		AnalysisID: record.ID,
		Format:     domain.ExportFormatJSON,
	})

	assert.Nil(t, staged)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	exportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExportService_Stage_CreateFailureReleasesObject(t *testing.T) {
	svc, analysisRepo, exportRepo, storage, _ := setupExportService()

	record := completedBankAnalysis()
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	var uploadedKey string
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Run(func(args mock.Arguments) {
			uploadedKey = args.Get(1).(port.UploadInput).Key
		}).
		Return(&port.UploadOutput{}, nil)
	exportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AnalysisExport")).
		Return(errors.New("db error"))
	storage.On("Delete", mock.Anything, "test-bucket", mock.AnythingOfType("string")).Return(nil)

	staged, err := svc.Stage(context.Background(), service.StageExportInput{
		AnalysisID: record.ID,
		Format:     domain.ExportFormatCSV,
	})

	assert.Nil(t, staged)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storing export record")
	storage.AssertCalled(t, "Delete", mock.Anything, "test-bucket", uploadedKey)
}

func TestExportService_Stage_PresignFailureReleasesObject(t *testing.T) {
	svc, analysisRepo, exportRepo, storage, _ := setupExportService()

	record := completedBankAnalysis()
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	exportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AnalysisExport")).Return(nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.AnythingOfType("string"), mock.AnythingOfType("int64")).
		Return("", errors.New("presign failed"))
	storage.On("Delete", mock.Anything, "test-bucket", mock.AnythingOfType("string")).Return(nil)
	exportRepo.On("MarkReleased", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)

	staged, err := svc.Stage(context.Background(), service.StageExportInput{
		AnalysisID: record.ID,
		Format:     domain.ExportFormatJSON,
	})

	assert.Nil(t, staged)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presigning export")
	storage.AssertCalled(t, "Delete", mock.Anything, "test-bucket", mock.AnythingOfType("string"))
	exportRepo.AssertCalled(t, "MarkReleased", mock.Anything, mock.AnythingOfType("uuid.UUID"))
}

func TestExportService_Stage_FailedAnalysis(t *testing.T) {
	svc, analysisRepo, _, storage, _ := setupExportService()

	record := &domain.Analysis{
		ID:           uuid.New(),
		DocumentKind: domain.KindStatement,
		Status:       domain.AnalysisStatusFailed,
	}
	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	staged, err := svc.Stage(context.Background(), service.StageExportInput{
		AnalysisID: record.ID,
		Format:     domain.ExportFormatJSON,
	})

	assert.Nil(t, staged)
	assert.ErrorIs(t, err, domain.ErrNoResultData)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

// --- ListByAnalysis ---

func TestExportService_ListByAnalysis_Success(t *testing.T) {
	svc, analysisRepo, exportRepo, _, _ := setupExportService()

	record := completedBankAnalysis()
	exports := []domain.AnalysisExport{
		{ID: uuid.New(), AnalysisID: record.ID, Format: domain.ExportFormatJSON},
	}

	analysisRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	exportRepo.On("ListByAnalysis", mock.Anything, record.ID).Return(exports, nil)

	got, err := svc.ListByAnalysis(context.Background(), record.ID)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	exportRepo.AssertExpectations(t)
}

func TestExportService_ListByAnalysis_AnalysisNotFound(t *testing.T) {
	svc, analysisRepo, exportRepo, _, _ := setupExportService()

	analysisID := uuid.New()
	analysisRepo.On("GetByID", mock.Anything, analysisID).Return(nil, domain.ErrNotFound)

	got, err := svc.ListByAnalysis(context.Background(), analysisID)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	exportRepo.AssertNotCalled(t, "ListByAnalysis", mock.Anything, mock.Anything)
}

// --- ReleaseExpired ---

func TestExportService_ReleaseExpired_ReleasesBatch(t *testing.T) {
	svc, _, exportRepo, storage, _ := setupExportService()

	expired := []domain.AnalysisExport{
		{ID: uuid.New(), StorageKey: "exports/a/one.json"},
		{ID: uuid.New(), StorageKey: "exports/b/two.csv"},
	}

	exportRepo.On("ListExpired", mock.Anything, mock.AnythingOfType("time.Time"), 50).
		Return(expired, nil)
	storage.On("Delete", mock.Anything, "test-bucket", expired[0].StorageKey).Return(nil)
	storage.On("Delete", mock.Anything, "test-bucket", expired[1].StorageKey).Return(nil)
	exportRepo.On("MarkReleased", mock.Anything, expired[0].ID).Return(nil)
	exportRepo.On("MarkReleased", mock.Anything, expired[1].ID).Return(nil)

	released, err := svc.ReleaseExpired(context.Background(), 50)

	require.NoError(t, err)
	assert.Equal(t, 2, released)
	exportRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestExportService_ReleaseExpired_SkipsFailedDeletes(t *testing.T) {
	svc, _, exportRepo, storage, _ := setupExportService()

	expired := []domain.AnalysisExport{
		{ID: uuid.New(), StorageKey: "exports/a/one.json"},
		{ID: uuid.New(), StorageKey: "exports/b/two.csv"},
	}

	exportRepo.On("ListExpired", mock.Anything, mock.AnythingOfType("time.Time"), 50).
		Return(expired, nil)
	storage.On("Delete", mock.Anything, "test-bucket", expired[0].StorageKey).
		Return(errors.New("s3 unavailable"))
	storage.On("Delete", mock.Anything, "test-bucket", expired[1].StorageKey).Return(nil)
	exportRepo.On("MarkReleased", mock.Anything, expired[1].ID).Return(nil)

	released, err := svc.ReleaseExpired(context.Background(), 50)

	require.NoError(t, err)
	assert.Equal(t, 1, released)
	// The failed object stays unreleased and is retried on the next poll.
	exportRepo.AssertNotCalled(t, "MarkReleased", mock.Anything, expired[0].ID)
}

func TestExportService_ReleaseExpired_ListError(t *testing.T) {
	svc, _, exportRepo, _, _ := setupExportService()

	exportRepo.On("ListExpired", mock.Anything, mock.AnythingOfType("time.Time"), 50).
		Return(nil, errors.New("db error"))

	released, err := svc.ReleaseExpired(context.Background(), 50)

	assert.Zero(t, released)
	assert.Error(t, err)
}
