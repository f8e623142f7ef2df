package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"fraudlens/internal/analysis"
	"fraudlens/internal/domain"
	"fraudlens/internal/envelope"
	"fraudlens/internal/port"
)

// IngestAnalysisInput is the DTO for analysis ingest requests. Exactly one of
// Payload / TransportError should be set: Payload carries the classifier's
// response body, TransportError carries the error object from a request that
// never produced one.
type IngestAnalysisInput struct {
	DocumentKind   domain.DocumentKind
	SourceFile     string
	Payload        json.RawMessage
	TransportError json.RawMessage
}

// AnalysisService defines the analysis ingest and read contract.
type AnalysisService interface {
	Ingest(ctx context.Context, input IngestAnalysisInput) (*domain.Analysis, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, filter domain.AnalysisFilter, offset, limit int) ([]domain.Analysis, int, error)
	View(ctx context.Context, id uuid.UUID) (*domain.AnalysisView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type analysisService struct {
	analysisRepo port.AnalysisRepository
	exportRepo   port.AnalysisExportRepository
	storage      port.ObjectStorage
	bucket       string
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(
	analysisRepo port.AnalysisRepository,
	exportRepo port.AnalysisExportRepository,
	storage port.ObjectStorage,
	bucket string,
) AnalysisService {
	return &analysisService{
		analysisRepo: analysisRepo,
		exportRepo:   exportRepo,
		storage:      storage,
		bucket:       bucket,
	}
}

func (s *analysisService) Ingest(ctx context.Context, input IngestAnalysisInput) (*domain.Analysis, error) {
	if !input.DocumentKind.Valid() {
		return nil, domain.ErrUnsupportedKind
	}
	if len(input.Payload) == 0 && len(input.TransportError) == 0 {
		return nil, domain.ErrInvalidInput
	}

	record := &domain.Analysis{
		ID:              uuid.New(),
		DocumentKind:    input.DocumentKind,
		SourceFile:      input.SourceFile,
		CriticalFactors: json.RawMessage("[]"),
		CreatedAt:       time.Now().UTC(),
	}

	if len(input.Payload) == 0 {
		record.Status = domain.AnalysisStatusFailed
		record.FailureMessage = envelope.TransportMessage(input.TransportError)
	} else {
		s.resolvePayload(record, input.Payload)
	}

	if err := s.analysisRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("storing analysis: %w", err)
	}

	log.Printf("analysisService.Ingest: stored %s analysis %s (status=%s, shape=%s, factors=%d)",
		record.DocumentKind, record.ID, record.Status, record.EnvelopeShape, len(record.FactorList()))
	return record, nil
}

// resolvePayload classifies the classifier response and fills the record's
// outcome fields. Exactly one of result data / failure message ends up set.
func (s *analysisService) resolvePayload(record *domain.Analysis, payload json.RawMessage) {
	env, err := envelope.Parse(payload)
	if err != nil {
		var failure *envelope.FailureError
		if !errors.As(err, &failure) {
			// envelope.Parse only fails with *FailureError; anything else
			// would be a programming error, so fold it into the default.
			failure = &envelope.FailureError{Message: envelope.DefaultFailureMessage}
		}
		record.Status = domain.AnalysisStatusFailed
		record.FailureMessage = failure.Message
		return
	}

	result := analysis.DecodeResult(env.Result)
	anomalies := result.AnomalyList()
	factors := analysis.DeriveFactors(result, anomalies)
	factorJSON, merr := json.Marshal(factors)
	if merr != nil {
		factorJSON = json.RawMessage("[]")
	}

	record.Status = domain.AnalysisStatusCompleted
	record.EnvelopeShape = string(env.Shape)
	record.ResultData = env.Result
	record.RiskLevel = domain.RiskLevel(strings.ToLower(strings.TrimSpace(result.RiskLevel().String())))
	record.RiskScorePct = analysis.ToPercent(result.FraudRiskScore())
	record.Recommendation = result.Recommendation().String()
	record.AnomalyCount = len(anomalies)
	record.CriticalFactors = factorJSON
}

func (s *analysisService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	return s.analysisRepo.GetByID(ctx, id)
}

func (s *analysisService) List(ctx context.Context, filter domain.AnalysisFilter, offset, limit int) ([]domain.Analysis, int, error) {
	return s.analysisRepo.List(ctx, filter, offset, limit)
}

func (s *analysisService) View(ctx context.Context, id uuid.UUID) (*domain.AnalysisView, error) {
	record, err := s.analysisRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildAnalysisView(record), nil
}

func (s *analysisService) Delete(ctx context.Context, id uuid.UUID) error {
	log.Printf("analysisService.Delete: deleting analysis %s", id)

	exports, err := s.exportRepo.ListByAnalysis(ctx, id)
	if err != nil {
		return err
	}
	for i := range exports {
		exp := &exports[i]
		if exp.ReleasedAt != nil {
			continue
		}
		if err := s.storage.Delete(ctx, s.bucket, exp.StorageKey); err != nil {
			log.Printf("analysisService.Delete: failed to delete staged export %s: %v", exp.ID, err)
			continue
		}
		if err := s.exportRepo.MarkReleased(ctx, exp.ID); err != nil {
			log.Printf("analysisService.Delete: failed to mark export %s released: %v", exp.ID, err)
		}
	}

	return s.analysisRepo.Delete(ctx, id)
}

// BuildAnalysisView normalizes a stored analysis into its display model:
// percent fields on the 0-100 scale, anomalies with emphasis flags, and the
// extracted sections for the record's document kind.
func BuildAnalysisView(record *domain.Analysis) *domain.AnalysisView {
	view := &domain.AnalysisView{
		ID:              record.ID,
		DocumentKind:    record.DocumentKind,
		Status:          record.Status,
		SourceFile:      record.SourceFile,
		EnvelopeShape:   record.EnvelopeShape,
		FailureMessage:  record.FailureMessage,
		RiskLevel:       record.RiskLevel,
		Recommendation:  record.Recommendation,
		AnomalyCount:    record.AnomalyCount,
		Anomalies:       []domain.AnomalyView{},
		CriticalFactors: record.FactorList(),
		Sections:        domain.Sections{},
		Result:          record.ResultData,
		CreatedAt:       record.CreatedAt,
	}
	if record.Status != domain.AnalysisStatusCompleted {
		return view
	}

	result := analysis.DecodeResult(record.ResultData)
	view.RiskScorePct = analysis.ToPercent(result.FraudRiskScore())
	view.ModelConfidencePct = analysis.ToPercent(result.ModelConfidence())
	view.AIConfidencePct = analysis.ToPercent(result.AIConfidence())
	view.Sections = analysis.BuildSections(record.DocumentKind, result)
	for _, text := range result.AnomalyList() {
		view.Anomalies = append(view.Anomalies, domain.AnomalyView{
			Text:      text,
			Emphasize: analysis.ShouldEmphasize(text),
		})
	}
	return view
}
