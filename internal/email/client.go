package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/ardentinvoicing/ardent/internal/config"
)

// Client wraps the resend API client. A disabled client is a valid no-op
// sender so local runs and tests never need credentials.
type Client struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
	replyTo     string
}

// NewClient creates a new email client
func NewClient(cfg *config.Configuration) *Client {
	if !cfg.Email.Enabled || cfg.Email.APIKey == "" {
		return &Client{enabled: false}
	}

	return &Client{
		client:      resend.NewClient(cfg.Email.APIKey),
		enabled:     true,
		fromAddress: cfg.Email.FromAddress,
		replyTo:     cfg.Email.ReplyTo,
	}
}

// IsEnabled returns whether the email client is enabled
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// GetFromAddress returns the default from address
func (c *Client) GetFromAddress() string {
	return c.fromAddress
}

// Send sends an HTML email
func (c *Client) Send(ctx context.Context, to, subject, htmlContent string) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("email client is disabled")
	}

	params := &resend.SendEmailRequest{
		From:    c.fromAddress,
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent,
	}
	if c.replyTo != "" {
		params.ReplyTo = c.replyTo
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}
