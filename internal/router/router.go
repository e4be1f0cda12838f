package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Itsforsale2/Billdozer2/internal/handler"
	"github.com/Itsforsale2/Billdozer2/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	invoiceH *handler.InvoiceHandler,
	batchH *handler.BatchHandler,
	vendorH *handler.VendorHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Vendor rule sets
	v1.GET("/vendors", vendorH.List)

	// Export workbook download
	v1.GET("/export/workbook", exportH.DownloadWorkbook)

	// Invoice review
	invoices := v1.Group("/invoices")
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.Get)
	invoices.GET("/:id/duplicates", invoiceH.Duplicates)
	invoices.GET("/:id/archive-url", invoiceH.ArchiveURL)
	invoices.PATCH("/:id/job-name", invoiceH.AssignJobName)
	invoices.PATCH("/:id/review", invoiceH.Review)
	invoices.DELETE("/:id", invoiceH.Delete)

	// Batch runs
	batches := v1.Group("/batches")
	batches.POST("", batchH.Run)
	batches.GET("", batchH.List)
	batches.GET("/:id", batchH.Get)
	batches.GET("/:id/invoices", batchH.Invoices)
	batches.GET("/:id/export.csv", batchH.ExportCSV)

	return r
}
