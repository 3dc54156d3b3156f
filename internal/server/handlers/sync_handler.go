package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gestock/internal/service/syncsvc"
)

// SyncHandler exposes the cloud sync status and trigger endpoints.
type SyncHandler struct {
	svc    *syncsvc.Service
	logger *zap.Logger
}

// NewSyncHandler constructs the HTTP handler adapter.
func NewSyncHandler(svc *syncsvc.Service, logger *zap.Logger) *SyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncHandler{svc: svc, logger: logger}
}

// Status returns the current sync badge state.
func (h *SyncHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Status())
}

// SyncNow triggers an immediate push to the cloud copy.
func (h *SyncHandler) SyncNow(c *gin.Context) {
	result := h.svc.SyncNow(c.Request.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, result)
}

// Restore pulls the cloud copy over the local data.
func (h *SyncHandler) Restore(c *gin.Context) {
	result := h.svc.Restore(c.Request.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, result)
}
