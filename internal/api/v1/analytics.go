package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/service"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
	log     *logger.Logger
}

func NewAnalyticsHandler(service service.AnalyticsService, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, log: log}
}

// ListSnapshots returns the caller's daily rollups for ?from=&to=
// (YYYY-MM-DD); defaults to the trailing 30 days
func (h *AnalyticsHandler) ListSnapshots(c *gin.Context) {
	ctx := c.Request.Context()

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must be YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "to must be YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	snaps, err := h.service.ListSnapshots(ctx, types.GetTenantID(ctx), from, to)
	if err != nil {
		NewErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": snaps, "total": len(snaps)})
}
