package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fraudlens/internal/domain"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) GetOverview(ctx context.Context) (*domain.AnalysisStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisStats), args.Error(1)
}
