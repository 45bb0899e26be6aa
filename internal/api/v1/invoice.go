package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/service"
)

type InvoiceHandler struct {
	service  service.InvoiceService
	payments service.PaymentService
	log      *logger.Logger
}

func NewInvoiceHandler(service service.InvoiceService, payments service.PaymentService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, payments: payments, log: log}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
		return
	}

	resp, err := h.service.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		NewErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	resp, err := h.service.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	resp, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
		return
	}

	resp, err := h.service.UpdateInvoiceStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InitiatePayment starts a hosted checkout for the invoice
func (h *InvoiceHandler) InitiatePayment(c *gin.Context) {
	resp, err := h.payments.InitiateInvoicePayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
