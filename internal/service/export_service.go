package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/internal/export"
	"github.com/Itsforsale2/Billdozer2/internal/port"
)

// ExportService writes stored invoices back out as spreadsheet data.
type ExportService interface {
	WriteBatchCSV(ctx context.Context, batchID uuid.UUID, w io.Writer) error
}

type exportService struct {
	invoices port.InvoiceRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(invoices port.InvoiceRepository) ExportService {
	return &exportService{invoices: invoices}
}

// WriteBatchCSV streams the batch's invoices as a BOM-prefixed CSV, one row
// per invoice.
func (s *exportService) WriteBatchCSV(ctx context.Context, batchID uuid.UUID, w io.Writer) error {
	invs, err := s.invoices.ListByBatch(ctx, batchID)
	if err != nil {
		return err
	}

	if _, err := w.Write(export.BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := export.NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	records := make([]domain.InvoiceRecord, 0, len(invs))
	for i := range invs {
		records = append(records, invoiceToRecord(&invs[i]))
	}
	if err := cw.WriteRecords(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// invoiceToRecord converts a stored invoice back to its extraction shape for
// the CSV row writer.
func invoiceToRecord(inv *domain.Invoice) domain.InvoiceRecord {
	rec := domain.InvoiceRecord{
		Vendor:        inv.Vendor,
		InvoiceNumber: inv.InvoiceNumber,
		JobName:       inv.JobName,
		Date:          inv.Date,
		Total:         inv.Total,
		Page:          inv.Page,
		SourceFile:    inv.SourceFile,
	}
	for _, it := range inv.Items {
		rec.Items = append(rec.Items, domain.LineItem{
			Date:          it.ItemDate,
			Description:   it.Description,
			TicketNumber:  it.TicketNumber,
			TruckCode:     it.TruckCode,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			ExtendedPrice: it.ExtendedPrice,
		})
	}
	return rec
}
