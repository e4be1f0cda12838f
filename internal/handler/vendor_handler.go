package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Itsforsale2/Billdozer2/internal/extract"
)

// VendorHandler exposes the registered vendor rule sets.
type VendorHandler struct {
	registry *extract.Registry
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(registry *extract.Registry) *VendorHandler {
	return &VendorHandler{registry: registry}
}

// List handles GET /api/v1/vendors. Returns the keys a vendor folder may use.
func (h *VendorHandler) List(c *gin.Context) {
	RespondOK(c, h.registry.Keys())
}
