package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// MockDuplicateInvoiceFinder is a mock implementation of port.DuplicateInvoiceFinder.
type MockDuplicateInvoiceFinder struct {
	mock.Mock
}

func (m *MockDuplicateInvoiceFinder) FindDuplicates(ctx context.Context, excludeID uuid.UUID, vendor, invoiceNumber string) ([]domain.DuplicateMatch, error) {
	args := m.Called(ctx, excludeID, vendor, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DuplicateMatch), args.Error(1)
}
