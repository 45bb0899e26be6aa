package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ardentinvoicing/ardent/internal/config"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
)

// Service stores table backup dumps and expense receipts. Disabled when
// no S3 configuration is present; callers must check IsEnabled before
// relying on stored artifacts.
type Service interface {
	IsEnabled() bool

	// UploadBackup writes a table dump under backups/<date>/<table>.json
	// and returns the object key
	UploadBackup(ctx context.Context, table string, day time.Time, body []byte) (string, error)

	// DeleteBackupsBefore removes dump objects older than the cutoff and
	// returns how many were deleted
	DeleteBackupsBefore(ctx context.Context, cutoff time.Time) (int, error)

	// UploadReceipt stores an expense receipt and returns its object key
	UploadReceipt(ctx context.Context, tenantID, expenseID, contentType string, body []byte) (string, error)

	// PresignReceipt returns a short-lived download URL for a receipt
	PresignReceipt(ctx context.Context, key string) (string, error)
}

type service struct {
	cfg     *config.S3Config
	client  *s3.Client
	presign *s3.PresignClient
	logger  *logger.Logger
}

// NewService creates the S3 service. Credentials come from the default
// AWS chain (env, shared config, instance role).
func NewService(cfg *config.Configuration, log *logger.Logger) (Service, error) {
	if !cfg.S3.Enabled {
		return &service{cfg: &cfg.S3, logger: log}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to load AWS configuration").
			Mark(ierr.ErrSystem)
	}

	client := s3.NewFromConfig(awsCfg)
	return &service{
		cfg:     &cfg.S3,
		client:  client,
		presign: s3.NewPresignClient(client),
		logger:  log,
	}, nil
}

func (s *service) IsEnabled() bool {
	return s.client != nil
}

func backupKey(day time.Time, table string) string {
	return fmt.Sprintf("backups/%s/%s.json", day.Format("2006-01-02"), table)
}

func (s *service) UploadBackup(ctx context.Context, table string, day time.Time, body []byte) (string, error) {
	if !s.IsEnabled() {
		return "", ierr.NewError("s3 is disabled").
			WithHint("backup storage is not configured").
			Mark(ierr.ErrInvalidOperation)
	}

	key := backupKey(day, table)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BackupBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHintf("failed to upload backup for table %s", table).
			Mark(ierr.ErrSystem)
	}

	s.logger.Infow("uploaded backup", "key", key, "bytes", len(body))
	return key, nil
}

func (s *service) DeleteBackupsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if !s.IsEnabled() {
		return 0, nil
	}

	deleted := 0
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.BackupBucket),
		Prefix: aws.String("backups/"),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return deleted, ierr.WithError(err).
				WithHint("failed to list backup objects").
				Mark(ierr.ErrSystem)
		}
		for _, obj := range page.Contents {
			if obj.LastModified == nil || !obj.LastModified.Before(cutoff) {
				continue
			}
			if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(s.cfg.BackupBucket),
				Key:    obj.Key,
			}); err != nil {
				s.logger.Errorw("failed to delete expired backup",
					"key", aws.ToString(obj.Key),
					"error", err)
				continue
			}
			deleted++
		}
	}
	return deleted, nil
}

func (s *service) UploadReceipt(ctx context.Context, tenantID, expenseID, contentType string, body []byte) (string, error) {
	if !s.IsEnabled() {
		return "", ierr.NewError("s3 is disabled").
			WithHint("receipt storage is not configured").
			Mark(ierr.ErrInvalidOperation)
	}

	key := fmt.Sprintf("receipts/%s/%s", tenantID, expenseID)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.ReceiptBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to upload receipt").
			Mark(ierr.ErrSystem)
	}
	return key, nil
}

func (s *service) PresignReceipt(ctx context.Context, key string) (string, error) {
	if !s.IsEnabled() {
		return "", ierr.NewError("s3 is disabled").
			WithHint("receipt storage is not configured").
			Mark(ierr.ErrInvalidOperation)
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.ReceiptBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to presign receipt URL").
			Mark(ierr.ErrSystem)
	}
	return req.URL, nil
}
