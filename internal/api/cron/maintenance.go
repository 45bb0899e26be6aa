package cron

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/exchangerate"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/service"
)

// refreshCurrencies are warmed against the base currency on each rate
// refresh run
var refreshCurrencies = []string{"USD", "EUR", "GBP", "NGN", "ZAR", "KES"}

// MaintenanceHandler hosts the operational scheduled jobs: health probes,
// backups, retention cleanup, analytics rollups and rate refreshes
type MaintenanceHandler struct {
	maintenance service.MaintenanceService
	analytics   service.AnalyticsService
	rates       exchangerate.Service
	base        string
	logger      *logger.Logger
}

// NewMaintenanceHandler creates a new maintenance cron handler
func NewMaintenanceHandler(
	maintenance service.MaintenanceService,
	analytics service.AnalyticsService,
	rates exchangerate.Service,
	baseCurrency string,
	logger *logger.Logger,
) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenance: maintenance,
		analytics:   analytics,
		rates:       rates,
		base:        baseCurrency,
		logger:      logger,
	}
}

// CheckHealth probes the service dependencies
func (h *MaintenanceHandler) CheckHealth(c *gin.Context) {
	status := h.maintenance.CheckHealth(c.Request.Context())
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"success": status.Healthy,
		"message": "health check complete",
		"results": status,
	})
}

// BackupTables dumps the core tables to object storage
func (h *MaintenanceHandler) BackupTables(c *gin.Context) {
	result, err := h.maintenance.BackupTables(c.Request.Context())
	if err != nil {
		h.logger.Errorw("backup run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "backup run complete",
		"results": result,
	})
}

// CleanupRetention prunes aged notifications, dedup rows and backups
func (h *MaintenanceHandler) CleanupRetention(c *gin.Context) {
	result, err := h.maintenance.CleanupRetention(c.Request.Context())
	if err != nil {
		h.logger.Errorw("retention cleanup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "retention cleanup complete",
		"results": result,
	})
}

// BuildAnalyticsSnapshots rolls up yesterday's per-tenant metrics
func (h *MaintenanceHandler) BuildAnalyticsSnapshots(c *gin.Context) {
	day := time.Now().UTC().AddDate(0, 0, -1)
	if v := c.Query("day"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "day must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	result, err := h.analytics.BuildDailySnapshots(c.Request.Context(), day)
	if err != nil {
		h.logger.Errorw("analytics snapshot run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "analytics snapshot run complete",
		"results": result,
	})
}

// RefreshExchangeRates warms the rate cache for the common pairs
func (h *MaintenanceHandler) RefreshExchangeRates(c *gin.Context) {
	var pairs [][2]string
	for _, cur := range refreshCurrencies {
		pairs = append(pairs, [2]string{h.base, cur}, [2]string{cur, h.base})
	}

	refreshed, failed := h.rates.Refresh(c.Request.Context(), pairs)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "exchange rate refresh complete",
		"results": gin.H{
			"processed": len(pairs),
			"succeeded": refreshed,
			"errors":    failed,
		},
	})
}
