package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ardentinvoicing/ardent/internal/exchangerate"
	"github.com/ardentinvoicing/ardent/internal/logger"
)

type ExchangeRateHandler struct {
	service exchangerate.Service
	log     *logger.Logger
}

func NewExchangeRateHandler(service exchangerate.Service, log *logger.Logger) *ExchangeRateHandler {
	return &ExchangeRateHandler{service: service, log: log}
}

// GetRate returns the cached conversion rate for ?from=&to=
func (h *ExchangeRateHandler) GetRate(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from and to are required"})
		return
	}

	rate, err := h.service.GetRate(c.Request.Context(), from, to)
	if err != nil {
		NewErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "rate": rate})
}

// Convert converts ?amount= between ?from= and ?to=
func (h *ExchangeRateHandler) Convert(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || from == "" || to == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from, to and a numeric amount are required"})
		return
	}

	converted, err := h.service.Convert(c.Request.Context(), amount, from, to)
	if err != nil {
		NewErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":      from,
		"to":        to,
		"amount":    amount,
		"converted": converted,
	})
}
