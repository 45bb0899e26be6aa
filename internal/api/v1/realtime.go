package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/realtime"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type RealtimeHandler struct {
	hub *realtime.Hub
	log *logger.Logger
}

func NewRealtimeHandler(hub *realtime.Hub, log *logger.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, log: log}
}

// Subscribe upgrades to a websocket scoped to the caller's user and
// tenant channels
func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	if !h.hub.Enabled() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "realtime delivery is not available"})
		return
	}

	ctx := c.Request.Context()
	channels := []string{realtime.UserChannel(types.GetUserID(ctx))}
	if tenantID := types.GetTenantID(ctx); tenantID != "" {
		channels = append(channels, realtime.TenantChannel(tenantID))
	}

	if err := h.hub.ServeWS(c.Writer, c.Request, channels); err != nil {
		h.log.Errorw("websocket upgrade failed", "error", err)
	}
}
