package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Itsforsale2/Billdozer2/internal/config"
	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/internal/port"
)

// Presigned archive links stay valid long enough for a reviewer to open the
// PDF, not long enough to be worth sharing.
const archiveURLExpirySeconds = 900

// InvoiceService provides read, review and removal operations over stored
// invoices.
type InvoiceService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, vendor string, offset, limit int) ([]domain.Invoice, int, error)
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Invoice, error)
	AssignJobName(ctx context.Context, id uuid.UUID, jobName string) error
	Review(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string) error
	FindDuplicates(ctx context.Context, id uuid.UUID) ([]domain.DuplicateMatch, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ArchiveURL(ctx context.Context, id uuid.UUID) (string, error)
}

type invoiceService struct {
	invoices port.InvoiceRepository
	dupes    port.DuplicateInvoiceFinder
	archive  port.ObjectStorage // nil when archiving is disabled
	archCfg  config.ArchiveConfig
}

// NewInvoiceService creates a new InvoiceService implementation. archive may
// be nil.
func NewInvoiceService(
	invoices port.InvoiceRepository,
	dupes port.DuplicateInvoiceFinder,
	archive port.ObjectStorage,
	archCfg config.ArchiveConfig,
) InvoiceService {
	return &invoiceService{invoices: invoices, dupes: dupes, archive: archive, archCfg: archCfg}
}

func (s *invoiceService) Get(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, vendor string, offset, limit int) ([]domain.Invoice, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.invoices.List(ctx, vendor, offset, limit)
}

func (s *invoiceService) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Invoice, error) {
	return s.invoices.ListByBatch(ctx, batchID)
}

// AssignJobName fills in a job name the extraction could not find, or
// corrects one it got wrong.
func (s *invoiceService) AssignJobName(ctx context.Context, id uuid.UUID, jobName string) error {
	jobName = strings.TrimSpace(jobName)
	if jobName == "" {
		return fmt.Errorf("job name must not be empty")
	}
	return s.invoices.UpdateJobName(ctx, id, jobName)
}

func (s *invoiceService) Review(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string) error {
	if !domain.ValidReviewStatuses[status] {
		return fmt.Errorf("invalid review status %q", status)
	}
	return s.invoices.UpdateReviewStatus(ctx, id, status, notes)
}

func (s *invoiceService) FindDuplicates(ctx context.Context, id uuid.UUID) ([]domain.DuplicateMatch, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.InvoiceNumber == "" {
		return nil, nil
	}
	return s.dupes.FindDuplicates(ctx, inv.ID, inv.Vendor, inv.InvoiceNumber)
}

// Delete removes the invoice row and its items, and best-effort removes the
// archived copy. A failed archive delete is logged, not surfaced: the row is
// already gone.
func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.invoices.Delete(ctx, id); err != nil {
		return err
	}
	if s.archive != nil && inv.OutputFile != "" {
		key := s.archCfg.ObjectKey(filepath.Base(inv.OutputFile))
		if err := s.archive.Delete(ctx, s.archCfg.Bucket, key); err != nil {
			log.Printf("archive delete %s: %v", key, err)
		}
	}
	return nil
}

// ArchiveURL returns a short-lived presigned link to the invoice's archived
// PDF.
func (s *invoiceService) ArchiveURL(ctx context.Context, id uuid.UUID) (string, error) {
	if s.archive == nil {
		return "", domain.ErrArchiveDisabled
	}
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	key := s.archCfg.ObjectKey(filepath.Base(inv.OutputFile))
	return s.archive.GetPresignedURL(ctx, s.archCfg.Bucket, key, archiveURLExpirySeconds)
}
