package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/service"
)

type WebhookHandler struct {
	service service.WebhookService
	log     *logger.Logger
}

func NewWebhookHandler(service service.WebhookService, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, log: log}
}

// HandlePaystack receives gateway webhooks. A bad signature is the only
// 400; processed and dropped events both ack with 200 so the gateway
// stops retrying, and only unexpected internal failures return 500 to
// request a redelivery.
func (h *WebhookHandler) HandlePaystack(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Errorw("failed to read webhook body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable request body"})
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if err := h.service.ProcessPaystackWebhook(c.Request.Context(), payload, signature); err != nil {
		if ierr.IsSignature(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid signature"})
			return
		}
		h.log.Errorw("webhook processing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
