package service

import (
	"context"

	"fraudlens/internal/domain"
	"fraudlens/internal/port"
)

// StatsService provides aggregate statistics.
type StatsService interface {
	Overview(ctx context.Context) (*domain.AnalysisStats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Overview(ctx context.Context) (*domain.AnalysisStats, error) {
	return s.statsRepo.GetOverview(ctx)
}
