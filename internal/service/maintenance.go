package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ardentinvoicing/ardent/internal/email"
)

// backupTables are the tables dumped by the nightly backup job
var backupTables = []string{
	"tenants",
	"users",
	"invoices",
	"invoice_line_items",
	"expenses",
	"subscriptions",
	"recurring_schedules",
}

// HealthStatus is the per-dependency outcome of a health probe
type HealthStatus struct {
	Healthy bool              `json:"healthy"`
	Checks  map[string]string `json:"checks"`
}

// MaintenanceService hosts the operational jobs: dependency health
// probes, nightly table backups and retention cleanup.
type MaintenanceService interface {
	CheckHealth(ctx context.Context) *HealthStatus
	BackupTables(ctx context.Context) (*JobResult, error)
	CleanupRetention(ctx context.Context) (*JobResult, error)
}

type maintenanceService struct {
	ServiceParams
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(params ServiceParams) MaintenanceService {
	return &maintenanceService{ServiceParams: params}
}

func (s *maintenanceService) CheckHealth(ctx context.Context) *HealthStatus {
	status := &HealthStatus{Healthy: true, Checks: map[string]string{}}

	if err := s.DB.Ping(ctx); err != nil {
		status.Healthy = false
		status.Checks["postgres"] = err.Error()
	} else {
		status.Checks["postgres"] = "ok"
	}

	// Redis and gateway outages degrade features but the API stays up
	if err := s.Realtime.Ping(ctx); err != nil {
		status.Checks["redis"] = err.Error()
	} else {
		status.Checks["redis"] = "ok"
	}

	if err := s.Paystack.Ping(ctx); err != nil {
		status.Checks["paystack"] = err.Error()
	} else {
		status.Checks["paystack"] = "ok"
	}

	if !status.Healthy {
		s.Logger.Errorw("health check failed", "checks", status.Checks)
		s.alertAdmin(ctx, "health", status.Checks)
	}
	return status
}

func (s *maintenanceService) BackupTables(ctx context.Context) (*JobResult, error) {
	result := &JobResult{Processed: len(backupTables)}
	if !s.S3.IsEnabled() {
		s.Logger.Warnw("backup storage is not configured, skipping backup run")
		for _, table := range backupTables {
			result.skip(table, "s3 disabled")
		}
		return result, nil
	}

	day := time.Now().UTC()
	for _, table := range backupTables {
		var rows []map[string]any
		if err := s.DB.Querier(ctx).Table(table).Find(&rows).Error; err != nil {
			s.Logger.Errorw("failed to read table for backup",
				"table", table,
				"error", err)
			result.fail(table, err)
			continue
		}

		body, err := json.Marshal(rows)
		if err != nil {
			result.fail(table, err)
			continue
		}

		key, err := s.S3.UploadBackup(ctx, table, day, body)
		if err != nil {
			result.fail(table, err)
			continue
		}
		result.ok(table, fmt.Sprintf("%d rows to %s", len(rows), key))
	}

	if result.Errors > 0 {
		s.alertAdmin(ctx, "backup", map[string]string{"errors": fmt.Sprint(result.Errors)})
	}

	s.Logger.Infow("backup run complete",
		"tables", result.Processed,
		"succeeded", result.Succeeded,
		"errors", result.Errors)
	return result, nil
}

func (s *maintenanceService) CleanupRetention(ctx context.Context) (*JobResult, error) {
	now := time.Now().UTC()
	result := &JobResult{}

	notifCutoff := now.AddDate(0, 0, -s.Config.Cron.NotificationRetentionDays)
	result.Processed++
	if deleted, err := s.NotificationRepo.DeleteReadOlderThan(ctx, notifCutoff); err != nil {
		result.fail("notifications", err)
	} else {
		result.ok("notifications", fmt.Sprintf("%d deleted", deleted))
	}

	webhookCutoff := now.AddDate(0, 0, -s.Config.Cron.WebhookRetentionDays)
	result.Processed++
	if deleted, err := s.WebhookEventRepo.DeleteOlderThan(ctx, webhookCutoff); err != nil {
		result.fail("processed_webhook_events", err)
	} else {
		result.ok("processed_webhook_events", fmt.Sprintf("%d deleted", deleted))
	}

	if s.S3.IsEnabled() {
		backupCutoff := now.AddDate(0, 0, -s.Config.S3.BackupRetentionDays)
		result.Processed++
		if deleted, err := s.S3.DeleteBackupsBefore(ctx, backupCutoff); err != nil {
			result.fail("backups", err)
		} else {
			result.ok("backups", fmt.Sprintf("%d deleted", deleted))
		}
	}

	s.Logger.Infow("retention cleanup complete",
		"processed", result.Processed,
		"succeeded", result.Succeeded,
		"errors", result.Errors)
	return result, nil
}

func (s *maintenanceService) alertAdmin(ctx context.Context, job string, detail map[string]string) {
	admin := s.Config.Email.AdminAddress
	if admin == "" {
		return
	}
	body, _ := json.Marshal(detail)
	_ = s.Email.SendTemplate(ctx, admin, "Ardent Invoicing alert: "+job,
		email.TemplateAdminAlert, map[string]any{
			"Job":        job,
			"ErrorCount": len(detail),
			"Timestamp":  time.Now().UTC().Format(time.RFC3339),
			"Detail":     string(body),
		})
}
