package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/service"
)

type AuthHandler struct {
	service service.AuthService
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		NewErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload"})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		NewErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
