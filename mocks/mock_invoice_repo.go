package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// MockInvoiceRepository is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Invoice, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context, vendor string, offset, limit int) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, vendor, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepository) UpdateJobName(ctx context.Context, id uuid.UUID, jobName string) error {
	args := m.Called(ctx, id, jobName)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateReviewStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string) error {
	args := m.Called(ctx, id, status, notes)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
