package batch

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/Itsforsale2/Billdozer2/internal/config"
	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/internal/export"
	"github.com/Itsforsale2/Billdozer2/internal/extract"
	"github.com/Itsforsale2/Billdozer2/internal/port"
	"github.com/Itsforsale2/Billdozer2/internal/validator"
)

// Processor drives one batch over an inbox folder. Each document fails or
// succeeds on its own; a bad PDF or an unknown vendor folder never aborts the
// rest of the run.
type Processor struct {
	registry *extract.Registry
	source   port.PageSource
	split    port.DocumentSplitter
	invoices port.InvoiceRepository
	batches  port.BatchRepository
	dupes    port.DuplicateInvoiceFinder
	workbook *export.Workbook
	archive  port.ObjectStorage // nil disables archiving
	checks   *validator.Registry
	cfg      config.BatchConfig
	archCfg  config.ArchiveConfig
}

// NewProcessor wires a Processor. archive may be nil.
func NewProcessor(
	registry *extract.Registry,
	source port.PageSource,
	split port.DocumentSplitter,
	invoices port.InvoiceRepository,
	batches port.BatchRepository,
	dupes port.DuplicateInvoiceFinder,
	workbook *export.Workbook,
	archive port.ObjectStorage,
	cfg config.BatchConfig,
	archCfg config.ArchiveConfig,
) *Processor {
	return &Processor{
		registry: registry,
		source:   source,
		split:    split,
		invoices: invoices,
		batches:  batches,
		dupes:    dupes,
		workbook: workbook,
		archive:  archive,
		checks:   validator.NewBuiltinRegistry(),
		cfg:      cfg,
		archCfg:  archCfg,
	}
}

// Run scans the inbox and processes every document, returning the finished
// batch row.
func (p *Processor) Run(ctx context.Context) (*domain.Batch, error) {
	docs, err := Scan(p.cfg.InboxDir)
	if err != nil {
		return nil, err
	}

	b := &domain.Batch{
		ID:       uuid.New(),
		InboxDir: p.cfg.InboxDir,
		Status:   domain.BatchStatusRunning,
	}
	if err := p.batches.Create(ctx, b); err != nil {
		return nil, err
	}

	var records []domain.InvoiceRecord
	for _, doc := range docs {
		b.DocumentsTotal++
		recs, err := p.processDocument(ctx, b, doc)
		if err != nil {
			b.DocumentsFailed++
			if errors.Is(err, domain.ErrUnknownVendor) {
				log.Printf("batch %s: %s: no rule set for this vendor folder, skipping", b.ID, doc.Path)
			} else {
				log.Printf("batch %s: %s: %v", b.ID, doc.Path, err)
			}
			continue
		}
		b.InvoicesFound += len(recs)
		records = append(records, recs...)
	}

	if len(records) > 0 {
		added, err := p.workbook.Append(records)
		if err != nil {
			log.Printf("batch %s: workbook append: %v", b.ID, err)
		} else {
			log.Printf("batch %s: appended %d rows to %s", b.ID, added, p.workbook.Path)
		}
	}

	b.Status = domain.BatchStatusCompleted
	if b.DocumentsFailed > 0 {
		b.Status = domain.BatchStatusPartial
	}
	if err := p.batches.Finish(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// processDocument parses one PDF and persists, splits and optionally archives
// every invoice found in it.
func (p *Processor) processDocument(ctx context.Context, b *domain.Batch, doc Document) ([]domain.InvoiceRecord, error) {
	rs, err := p.registry.Resolve(doc.VendorKey)
	if err != nil {
		return nil, err
	}

	pages, err := p.source.Pages(doc.Path)
	if err != nil {
		return nil, err
	}

	records, err := extract.ParseDocument(p.registry, doc.VendorKey, pages)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if err := p.fileRecord(ctx, b, doc, rs.PerPage, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// fileRecord writes the split PDF, stores the invoice row, and warns on
// likely duplicates.
func (p *Processor) fileRecord(ctx context.Context, b *domain.Batch, doc Document, perPage bool, rec *domain.InvoiceRecord) error {
	var outPath string
	var err error
	if perPage {
		outPath, err = p.split.SplitPage(doc.Path, *rec, p.cfg.ProcessedDir)
	} else {
		outPath, err = p.split.CopyDocument(doc.Path, *rec, p.cfg.ProcessedDir)
	}
	if err != nil {
		return err
	}

	for _, res := range p.checks.Failures(rec) {
		log.Printf("check %s on %s page %d: %s", res.RuleKey, doc.Path, rec.Page, res.Message)
	}

	inv := recordToInvoice(b.ID, rec, outPath)
	if err := p.invoices.Create(ctx, inv); err != nil {
		return err
	}

	if rec.InvoiceNumber != "" {
		matches, err := p.dupes.FindDuplicates(ctx, inv.ID, rec.Vendor, rec.InvoiceNumber)
		if err != nil {
			log.Printf("duplicate check for %s %s: %v", rec.Vendor, rec.InvoiceNumber, err)
		} else if len(matches) > 0 {
			log.Printf("invoice %s %s already filed from %s at %s",
				rec.Vendor, rec.InvoiceNumber, matches[0].SourceFile, matches[0].CreatedAt)
		}
	}

	if p.archive != nil {
		if err := p.archiveFile(ctx, outPath); err != nil {
			log.Printf("archive %s: %v", outPath, err)
		}
	}
	return nil
}

func (p *Processor) archiveFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}

	key := p.archCfg.ObjectKey(st.Name())
	_, err = p.archive.Upload(ctx, port.UploadInput{
		Bucket:      p.archCfg.Bucket,
		Key:         key,
		Body:        f,
		ContentType: "application/pdf",
		Size:        st.Size(),
	})
	return err
}

// recordToInvoice converts an extraction record into its persisted form.
func recordToInvoice(batchID uuid.UUID, rec *domain.InvoiceRecord, outPath string) *domain.Invoice {
	inv := &domain.Invoice{
		ID:            uuid.New(),
		BatchID:       batchID,
		Vendor:        rec.Vendor,
		InvoiceNumber: rec.InvoiceNumber,
		JobName:       rec.JobName,
		Date:          rec.Date,
		Total:         rec.Total,
		Page:          rec.Page,
		SourceFile:    rec.SourceFile,
		OutputFile:    outPath,
		ReviewStatus:  domain.ReviewStatusPending,
	}
	for i, it := range rec.Items {
		inv.Items = append(inv.Items, domain.InvoiceItem{
			Position:      i,
			ItemDate:      it.Date,
			Description:   it.Description,
			TicketNumber:  it.TicketNumber,
			TruckCode:     it.TruckCode,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			ExtendedPrice: it.ExtendedPrice,
		})
	}
	return inv
}
