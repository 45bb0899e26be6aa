package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/service"
)

// SubscriptionHandler hosts the subscription billing scheduled jobs
type SubscriptionHandler struct {
	billing service.BillingService
	logger  *logger.Logger
}

// NewSubscriptionHandler creates a new subscription cron handler
func NewSubscriptionHandler(billing service.BillingService, logger *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{billing: billing, logger: logger}
}

// ProcessBillingCycles rolls due subscriptions into their next period
func (h *SubscriptionHandler) ProcessBillingCycles(c *gin.Context) {
	result, err := h.billing.ProcessDueSubscriptions(c.Request.Context())
	if err != nil {
		h.logger.Errorw("billing cycle run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "billing cycle run complete",
		"results": result,
	})
}

// SweepPastDue cancels subscriptions past_due beyond the grace window
func (h *SubscriptionHandler) SweepPastDue(c *gin.Context) {
	result, err := h.billing.SweepPastDue(c.Request.Context())
	if err != nil {
		h.logger.Errorw("past-due sweep failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "past-due sweep complete",
		"results": result,
	})
}
