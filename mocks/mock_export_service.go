package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fraudlens/internal/domain"
	"fraudlens/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Render(ctx context.Context, analysisID uuid.UUID, format domain.ExportFormat) (*service.RenderedExport, error) {
	args := m.Called(ctx, analysisID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderedExport), args.Error(1)
}

func (m *MockExportService) Stage(ctx context.Context, input service.StageExportInput) (*service.StagedExport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StagedExport), args.Error(1)
}

func (m *MockExportService) ListByAnalysis(ctx context.Context, analysisID uuid.UUID) ([]domain.AnalysisExport, error) {
	args := m.Called(ctx, analysisID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalysisExport), args.Error(1)
}

func (m *MockExportService) ReleaseExpired(ctx context.Context, batchSize int) (int, error) {
	args := m.Called(ctx, batchSize)
	return args.Int(0), args.Error(1)
}
