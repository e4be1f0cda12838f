// Command sorter processes an inbox of vendor folders once, or keeps
// watching it with -watch. Each PDF is parsed with its folder's vendor rule
// set; results land in the database, the export workbook, and the processed
// folder as renamed single-invoice PDFs.
//
// Usage:
//
//	sorter            process the configured inbox once
//	sorter -watch     process now, then reprocess whenever new PDFs settle
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/Itsforsale2/Billdozer2/internal/batch"
	"github.com/Itsforsale2/Billdozer2/internal/config"
	"github.com/Itsforsale2/Billdozer2/internal/export"
	"github.com/Itsforsale2/Billdozer2/internal/extract/vendors"
	"github.com/Itsforsale2/Billdozer2/internal/pdftext"
	"github.com/Itsforsale2/Billdozer2/internal/port"
	"github.com/Itsforsale2/Billdozer2/internal/repository"
	"github.com/Itsforsale2/Billdozer2/internal/service"
	"github.com/Itsforsale2/Billdozer2/internal/splitter"
	s3storage "github.com/Itsforsale2/Billdozer2/internal/storage/s3"
)

func main() {
	watch := flag.Bool("watch", false, "keep watching the inbox after the first run")
	flag.Parse()

	if err := run(*watch); err != nil {
		log.Fatal(err)
	}
}

func run(watch bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := repository.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var archive port.ObjectStorage
	if cfg.Archive.Enabled() {
		archive, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	invoiceRepo := repository.NewInvoiceRepo(db)
	processor := batch.NewProcessor(
		vendors.NewRegistry(),
		pdftext.NewSource(),
		splitter.New(),
		invoiceRepo,
		repository.NewBatchRepo(db),
		repository.NewDuplicateFinderRepo(db),
		export.NewWorkbook(cfg.Export.WorkbookPath),
		archive,
		cfg.Batch,
		cfg.Archive,
	)
	exportSvc := service.NewExportService(invoiceRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runOnce(ctx, processor, exportSvc, cfg.Export.CSVDir); err != nil {
		return err
	}
	if !watch && !cfg.Batch.Watch {
		return nil
	}

	trigger, err := batch.Watch(ctx, batch.WatchConfig{
		Root:        cfg.Batch.InboxDir,
		SettleDelay: cfg.Batch.SettleDelay,
	})
	if err != nil {
		return fmt.Errorf("failed to watch inbox: %w", err)
	}
	log.Printf("watching %s", cfg.Batch.InboxDir)

	for range trigger {
		if err := runOnce(ctx, processor, exportSvc, cfg.Export.CSVDir); err != nil {
			log.Printf("batch run failed: %v", err)
		}
	}
	return nil
}

func runOnce(ctx context.Context, p *batch.Processor, exports service.ExportService, csvDir string) error {
	b, err := p.Run(ctx)
	if err != nil {
		return err
	}
	log.Printf("batch %s %s: %d documents, %d failed, %d invoices",
		b.ID, b.Status, b.DocumentsTotal, b.DocumentsFailed, b.InvoicesFound)

	if b.InvoicesFound > 0 {
		if err := writeBatchCSV(ctx, exports, csvDir, b.ID); err != nil {
			log.Printf("batch %s: csv export: %v", b.ID, err)
		}
	}
	return nil
}

func writeBatchCSV(ctx context.Context, exports service.ExportService, csvDir string, batchID uuid.UUID) error {
	if err := os.MkdirAll(csvDir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(csvDir, fmt.Sprintf("batch_%s.csv", batchID)))
	if err != nil {
		return err
	}
	defer f.Close()

	return exports.WriteBatchCSV(ctx, batchID, f)
}
