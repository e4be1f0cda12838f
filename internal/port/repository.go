package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence. Line items
// travel with their invoice; they are never written or read on their own.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Invoice, error)
	List(ctx context.Context, vendor string, offset, limit int) ([]domain.Invoice, int, error)
	UpdateJobName(ctx context.Context, id uuid.UUID, jobName string) error
	UpdateReviewStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BatchRepository defines the contract for batch run persistence.
type BatchRepository interface {
	Create(ctx context.Context, b *domain.Batch) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Batch, error)
	List(ctx context.Context, offset, limit int) ([]domain.Batch, int, error)
	Finish(ctx context.Context, b *domain.Batch) error
}

// DuplicateInvoiceFinder checks for stored invoices with the same vendor and
// invoice number, for warning before an invoice is filed twice.
type DuplicateInvoiceFinder interface {
	FindDuplicates(ctx context.Context, excludeID uuid.UUID,
		vendor, invoiceNumber string) ([]domain.DuplicateMatch, error)
}
