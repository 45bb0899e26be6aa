package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/service"
)

type ExpenseHandler struct {
	service service.ExpenseService
	log     *logger.Logger
}

func NewExpenseHandler(service service.ExpenseService, log *logger.Logger) *ExpenseHandler {
	return &ExpenseHandler{service: service, log: log}
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
		return
	}

	resp, err := h.service.CreateExpense(c.Request.Context(), &req)
	if err != nil {
		NewErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	resp, err := h.service.GetExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	resp, err := h.service.ListExpenses(c.Request.Context())
	if err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	if err := h.service.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
