package email

import (
	"context"

	"github.com/ardentinvoicing/ardent/internal/logger"
)

// Sender is the outbound email surface used by services and scheduled
// jobs. Implementations must be safe to call with a disabled transport:
// sends are then logged and skipped without error, because notification
// delivery is always best-effort.
type Sender interface {
	SendTemplate(ctx context.Context, to, subject string, name TemplateName, data any) error
}

// Service renders templates and dispatches them through the client
type Service struct {
	client *Client
	logger *logger.Logger
}

// NewService creates a new email service
func NewService(client *Client, log *logger.Logger) *Service {
	return &Service{client: client, logger: log}
}

func (s *Service) SendTemplate(ctx context.Context, to, subject string, name TemplateName, data any) error {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping send",
			"to", to,
			"template", name)
		return nil
	}

	html, err := Render(name, data)
	if err != nil {
		s.logger.Errorw("failed to render email template",
			"error", err,
			"template", name)
		return err
	}

	messageID, err := s.client.Send(ctx, to, subject, html)
	if err != nil {
		s.logger.Errorw("failed to send email",
			"error", err,
			"to", to,
			"template", name)
		return err
	}

	s.logger.Infow("email sent",
		"message_id", messageID,
		"to", to,
		"template", name)
	return nil
}
