package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/service"
)

// InvoiceHandler hosts the invoice-related scheduled jobs, fired over
// HTTP by the external scheduler
type InvoiceHandler struct {
	recurring service.RecurringInvoiceService
	reminders service.ReminderService
	logger    *logger.Logger
}

// NewInvoiceHandler creates a new invoice cron handler
func NewInvoiceHandler(
	recurring service.RecurringInvoiceService,
	reminders service.ReminderService,
	logger *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		recurring: recurring,
		reminders: reminders,
		logger:    logger,
	}
}

// GenerateRecurringInvoices spawns invoices from due recurring schedules
func (h *InvoiceHandler) GenerateRecurringInvoices(c *gin.Context) {
	result, err := h.recurring.GenerateDueInvoices(c.Request.Context())
	if err != nil {
		h.logger.Errorw("recurring invoice run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "recurring invoice run complete",
		"results": result,
	})
}

// SendPaymentReminders escalates reminders for overdue invoices
func (h *InvoiceHandler) SendPaymentReminders(c *gin.Context) {
	result, err := h.reminders.EscalateReminders(c.Request.Context())
	if err != nil {
		h.logger.Errorw("reminder run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "reminder run complete",
		"results": result,
	})
}
