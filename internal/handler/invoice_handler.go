package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/internal/service"
)

// InvoiceHandler handles invoice review endpoints.
type InvoiceHandler struct {
	invoices service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// List handles GET /api/v1/invoices?vendor=&offset=&limit=
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	vendor := c.Query("vendor")

	invs, total, err := h.invoices.List(c.Request.Context(), vendor, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, invs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	inv, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

type assignJobNameRequest struct {
	JobName string `json:"job_name" binding:"required"`
}

// AssignJobName handles PATCH /api/v1/invoices/:id/job-name
func (h *InvoiceHandler) AssignJobName(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	var req assignJobNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "job_name is required")
		return
	}

	if err := h.invoices.AssignJobName(c.Request.Context(), id, req.JobName); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": id, "job_name": req.JobName})
}

type reviewRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// Review handles PATCH /api/v1/invoices/:id/review
func (h *InvoiceHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	status := domain.ReviewStatus(req.Status)
	if !domain.ValidReviewStatuses[status] {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS",
			"status must be one of: pending, approved, flagged")
		return
	}

	if err := h.invoices.Review(c.Request.Context(), id, status, req.Notes); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": id, "review_status": status})
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	if err := h.invoices.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": id})
}

// ArchiveURL handles GET /api/v1/invoices/:id/archive-url
func (h *InvoiceHandler) ArchiveURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	url, err := h.invoices.ArchiveURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// Duplicates handles GET /api/v1/invoices/:id/duplicates
func (h *InvoiceHandler) Duplicates(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	matches, err := h.invoices.FindDuplicates(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, matches)
}
