package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"fraudlens/internal/analysis"
	"fraudlens/internal/config"
	"fraudlens/internal/domain"
	"fraudlens/internal/export"
	"fraudlens/internal/port"
)

// RenderedExport is an encoded export buffer ready for direct download.
type RenderedExport struct {
	FileName    string
	ContentType string
	Data        []byte
}

// StageExportInput is the DTO for staged-export requests.
type StageExportInput struct {
	AnalysisID  uuid.UUID
	Format      domain.ExportFormat
	NotifyEmail string
}

// StagedExport pairs a stored export record with its time-limited URL.
type StagedExport struct {
	Export      *domain.AnalysisExport
	DownloadURL string
	ExpiresAt   time.Time
}

// ExportService defines the export rendering and staging contract.
type ExportService interface {
	Render(ctx context.Context, analysisID uuid.UUID, format domain.ExportFormat) (*RenderedExport, error)
	Stage(ctx context.Context, input StageExportInput) (*StagedExport, error)
	ListByAnalysis(ctx context.Context, analysisID uuid.UUID) ([]domain.AnalysisExport, error)
	ReleaseExpired(ctx context.Context, batchSize int) (int, error)
}

type exportService struct {
	analysisRepo port.AnalysisRepository
	exportRepo   port.AnalysisExportRepository
	storage      port.ObjectStorage
	email        port.EmailSender
	s3cfg        *config.S3Config
	ttl          time.Duration
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	analysisRepo port.AnalysisRepository,
	exportRepo port.AnalysisExportRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	s3cfg *config.S3Config,
	ttl time.Duration,
) ExportService {
	return &exportService{
		analysisRepo: analysisRepo,
		exportRepo:   exportRepo,
		storage:      storage,
		email:        email,
		s3cfg:        s3cfg,
		ttl:          ttl,
	}
}

func (s *exportService) Render(ctx context.Context, analysisID uuid.UUID, format domain.ExportFormat) (*RenderedExport, error) {
	record, err := s.analysisRepo.GetByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	return renderAnalysis(record, format, time.Now().UTC())
}

func (s *exportService) Stage(ctx context.Context, input StageExportInput) (*StagedExport, error) {
	record, err := s.analysisRepo.GetByID(ctx, input.AnalysisID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rendered, err := renderAnalysis(record, input.Format, now)
	if err != nil {
		return nil, err
	}

	exp := &domain.AnalysisExport{
		ID:         uuid.New(),
		AnalysisID: record.ID,
		Format:     input.Format,
		FileName:   rendered.FileName,
		StorageKey: storageKey(record, rendered.FileName),
		SizeBytes:  int64(len(rendered.Data)),
		ExpiresAt:  now.Add(s.ttl),
		CreatedAt:  now,
	}

	// The staged object is a scoped resource: every failure path after the
	// upload deletes it again so nothing leaks past this call.
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         exp.StorageKey,
		Body:        bytes.NewReader(rendered.Data),
		ContentType: rendered.ContentType,
		Size:        exp.SizeBytes,
	})
	if err != nil {
		log.Printf("exportService.Stage: upload failed for analysis %s: %v", record.ID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.exportRepo.Create(ctx, exp); err != nil {
		s.release(ctx, exp.StorageKey)
		return nil, fmt.Errorf("storing export record: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, exp.StorageKey, int64(s.ttl.Seconds()))
	if err != nil {
		s.release(ctx, exp.StorageKey)
		_ = s.exportRepo.MarkReleased(ctx, exp.ID)
		return nil, fmt.Errorf("presigning export: %w", err)
	}

	log.Printf("exportService.Stage: staged %s export %s for analysis %s (%d bytes, expires %s)",
		exp.Format, exp.ID, record.ID, exp.SizeBytes, exp.ExpiresAt.Format(time.RFC3339))

	if input.NotifyEmail != "" {
		mail := port.ExportEmail{
			ToEmail:     input.NotifyEmail,
			FileName:    exp.FileName,
			DownloadURL: url,
			ExpiresAt:   exp.ExpiresAt,
		}
		if err := s.email.SendExportEmail(ctx, mail); err != nil {
			// The export itself succeeded; a failed notification is not fatal.
			log.Printf("exportService.Stage: failed to email export link to %s: %v", input.NotifyEmail, err)
		}
	}

	return &StagedExport{Export: exp, DownloadURL: url, ExpiresAt: exp.ExpiresAt}, nil
}

func (s *exportService) ListByAnalysis(ctx context.Context, analysisID uuid.UUID) ([]domain.AnalysisExport, error) {
	if _, err := s.analysisRepo.GetByID(ctx, analysisID); err != nil {
		return nil, err
	}
	return s.exportRepo.ListByAnalysis(ctx, analysisID)
}

func (s *exportService) ReleaseExpired(ctx context.Context, batchSize int) (int, error) {
	expired, err := s.exportRepo.ListExpired(ctx, time.Now().UTC(), batchSize)
	if err != nil {
		return 0, err
	}

	released := 0
	for i := range expired {
		exp := &expired[i]
		if err := s.storage.Delete(ctx, s.s3cfg.Bucket, exp.StorageKey); err != nil {
			log.Printf("exportService.ReleaseExpired: failed to delete %s: %v", exp.StorageKey, err)
			continue
		}
		if err := s.exportRepo.MarkReleased(ctx, exp.ID); err != nil {
			log.Printf("exportService.ReleaseExpired: failed to mark %s released: %v", exp.ID, err)
			continue
		}
		released++
	}
	return released, nil
}

func (s *exportService) release(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, s.s3cfg.Bucket, key); err != nil {
		log.Printf("exportService: failed to release staged object %s: %v", key, err)
	}
}

// renderAnalysis encodes one stored analysis in the requested format.
func renderAnalysis(record *domain.Analysis, format domain.ExportFormat, at time.Time) (*RenderedExport, error) {
	if !format.Valid() {
		return nil, domain.ErrUnsupportedFormat
	}
	// Checks carry no transaction table; the statement kinds do.
	if format == domain.ExportFormatTransactionsCSV && record.DocumentKind == domain.KindCheck {
		return nil, domain.ErrFormatKindMismatch
	}
	if record.Status != domain.AnalysisStatusCompleted {
		return nil, domain.ErrNoResultData
	}

	result := analysis.DecodeResult(record.ResultData)
	rec := &export.Record{
		Kind:      record.DocumentKind,
		Result:    result,
		Raw:       record.ResultData,
		CreatedAt: record.CreatedAt,
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case domain.ExportFormatJSON:
		data, err = export.EncodeJSON(rec, analysis.BuildSections(record.DocumentKind, result))
	case domain.ExportFormatCSV:
		data, err = export.EncodeCSV(rec)
	case domain.ExportFormatTransactionsCSV:
		data, err = export.EncodeTransactionsCSV(rec)
	case domain.ExportFormatXLSX:
		data, err = export.EncodeXLSX(rec, analysis.BuildSections(record.DocumentKind, result))
	default:
		return nil, domain.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s export: %w", format, err)
	}

	return &RenderedExport{
		FileName:    export.BuildFilename(record.DocumentKind, format, at),
		ContentType: domain.ExportContentTypes[format],
		Data:        data,
	}, nil
}

// storageKey builds the S3 key for a staged export. The sanitized source
// file stem is kept in the key so staged objects trace back to the upload.
func storageKey(record *domain.Analysis, fileName string) string {
	if record.SourceFile != "" {
		ext := filepath.Ext(record.SourceFile)
		stem := export.SanitizeFilename(strings.TrimSuffix(record.SourceFile, ext))
		if stem != "" {
			return fmt.Sprintf("exports/%s/%s_%s", record.ID, stem, fileName)
		}
	}
	return fmt.Sprintf("exports/%s/%s", record.ID, fileName)
}
