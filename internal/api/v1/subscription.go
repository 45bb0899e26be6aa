package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/service"
)

type SubscriptionHandler struct {
	payments service.PaymentService
	log      *logger.Logger
}

func NewSubscriptionHandler(payments service.PaymentService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{payments: payments, log: log}
}

// Subscribe starts a hosted checkout for a paid plan; the subscription
// activates when the gateway webhook confirms payment
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
		return
	}

	resp, err := h.payments.Subscribe(c.Request.Context(), &req)
	if err != nil {
		NewErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
