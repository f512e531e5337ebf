package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pasarmart/pasarmart/internal/worker"
)

// SweepRunner triggers one sweep pass on demand.
type SweepRunner interface {
	RunOnce(ctx context.Context) worker.Report
}

// SweepHandler exposes the manual sweep trigger.
type SweepHandler struct {
	runner SweepRunner
}

// NewSweepHandler constructs SweepHandler.
func NewSweepHandler(runner SweepRunner) *SweepHandler {
	return &SweepHandler{runner: runner}
}

// Trigger handles POST /api/internal/sweep.
func (h *SweepHandler) Trigger(c *gin.Context) {
	report := h.runner.RunOnce(c.Request.Context())
	c.JSON(http.StatusOK, report)
}
