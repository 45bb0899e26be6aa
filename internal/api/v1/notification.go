package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/service"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type NotificationHandler struct {
	service service.NotificationService
	log     *logger.Logger
}

func NewNotificationHandler(service service.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, log: log}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	unreadOnly := c.Query("unread") == "true"

	items, err := h.service.ListForUser(ctx, types.GetUserID(ctx), unreadOnly)
	if err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.service.MarkAllRead(ctx, types.GetUserID(ctx)); err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
