package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Itsforsale2/Billdozer2/internal/service"
)

// BatchHandler handles batch run endpoints.
type BatchHandler struct {
	batches  service.BatchService
	invoices service.InvoiceService
	exports  service.ExportService
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batches service.BatchService, invoices service.InvoiceService, exports service.ExportService) *BatchHandler {
	return &BatchHandler{batches: batches, invoices: invoices, exports: exports}
}

// Run handles POST /api/v1/batches. Processes the configured inbox now.
func (h *BatchHandler) Run(c *gin.Context) {
	b, err := h.batches.Run(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, b)
}

// List handles GET /api/v1/batches?offset=&limit=
func (h *BatchHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	batches, total, err := h.batches.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, batches, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/batches/:id
func (h *BatchHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch id")
		return
	}

	b, err := h.batches.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, b)
}

// Invoices handles GET /api/v1/batches/:id/invoices
func (h *BatchHandler) Invoices(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch id")
		return
	}

	invs, err := h.invoices.ListByBatch(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invs)
}

// ExportCSV handles GET /api/v1/batches/:id/export.csv, streaming the batch
// as a BOM-prefixed CSV download.
func (h *BatchHandler) ExportCSV(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch id")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=batch_%s.csv", id))

	if err := h.exports.WriteBatchCSV(c.Request.Context(), id, c.Writer); err != nil {
		HandleError(c, err)
		return
	}
}
