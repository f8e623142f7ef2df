package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fraudlens/internal/domain"
)

// MockAnalysisExportRepo is a mock implementation of port.AnalysisExportRepository.
type MockAnalysisExportRepo struct {
	mock.Mock
}

func (m *MockAnalysisExportRepo) Create(ctx context.Context, export *domain.AnalysisExport) error {
	args := m.Called(ctx, export)
	return args.Error(0)
}

func (m *MockAnalysisExportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisExport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisExport), args.Error(1)
}

func (m *MockAnalysisExportRepo) ListByAnalysis(ctx context.Context, analysisID uuid.UUID) ([]domain.AnalysisExport, error) {
	args := m.Called(ctx, analysisID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalysisExport), args.Error(1)
}

func (m *MockAnalysisExportRepo) ListExpired(ctx context.Context, cutoff time.Time, limit int) ([]domain.AnalysisExport, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalysisExport), args.Error(1)
}

func (m *MockAnalysisExportRepo) MarkReleased(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnalysisExportRepo) CountLive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
