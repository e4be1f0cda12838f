// Command server runs the invoice review API over the batch database.
package main

import (
	"fmt"
	"log"

	"github.com/Itsforsale2/Billdozer2/internal/batch"
	"github.com/Itsforsale2/Billdozer2/internal/config"
	"github.com/Itsforsale2/Billdozer2/internal/export"
	"github.com/Itsforsale2/Billdozer2/internal/extract/vendors"
	"github.com/Itsforsale2/Billdozer2/internal/handler"
	"github.com/Itsforsale2/Billdozer2/internal/pdftext"
	"github.com/Itsforsale2/Billdozer2/internal/port"
	"github.com/Itsforsale2/Billdozer2/internal/repository"
	"github.com/Itsforsale2/Billdozer2/internal/router"
	"github.com/Itsforsale2/Billdozer2/internal/service"
	"github.com/Itsforsale2/Billdozer2/internal/splitter"
	s3storage "github.com/Itsforsale2/Billdozer2/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := repository.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepo(db)
	batchRepo := repository.NewBatchRepo(db)
	dupeRepo := repository.NewDuplicateFinderRepo(db)

	// Optional archive storage
	var archive port.ObjectStorage
	if cfg.Archive.Enabled() {
		archive, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize the intake pipeline
	registry := vendors.NewRegistry()
	processor := batch.NewProcessor(
		registry,
		pdftext.NewSource(),
		splitter.New(),
		invoiceRepo,
		batchRepo,
		dupeRepo,
		export.NewWorkbook(cfg.Export.WorkbookPath),
		archive,
		cfg.Batch,
		cfg.Archive,
	)

	// Initialize services
	invoiceSvc := service.NewInvoiceService(invoiceRepo, dupeRepo, archive, cfg.Archive)
	batchSvc := service.NewBatchService(processor, batchRepo)
	exportSvc := service.NewExportService(invoiceRepo)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	batchH := handler.NewBatchHandler(batchSvc, invoiceSvc, exportSvc)
	vendorH := handler.NewVendorHandler(registry)
	exportH := handler.NewExportHandler(cfg.Export.WorkbookPath)
	healthH := handler.NewHealthHandler(db, cfg.Batch.InboxDir)

	// Setup router
	r := router.Setup(invoiceH, batchH, vendorH, exportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
