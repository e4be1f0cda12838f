package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves the export workbook the batch pipeline maintains.
type ExportHandler struct {
	workbookPath string
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(workbookPath string) *ExportHandler {
	return &ExportHandler{workbookPath: workbookPath}
}

// DownloadWorkbook handles GET /api/v1/export/workbook
func (h *ExportHandler) DownloadWorkbook(c *gin.Context) {
	if _, err := os.Stat(h.workbookPath); err != nil {
		RespondError(c, http.StatusNotFound, "WORKBOOK_NOT_FOUND",
			"no export workbook has been written yet")
		return
	}
	c.FileAttachment(h.workbookPath, filepath.Base(h.workbookPath))
}
