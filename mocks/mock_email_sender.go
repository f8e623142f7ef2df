package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fraudlens/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendExportEmail(ctx context.Context, email port.ExportEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
