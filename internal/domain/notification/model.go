package notification

import (
	"context"
	"time"

	"github.com/ardentinvoicing/ardent/internal/types"
)

// Notification is an in-app message delivered to a user, optionally
// broadcast tenant-wide, and pushed over the realtime fan-out on insert.
type Notification struct {
	ID        string                 `json:"id" gorm:"primaryKey"`
	UserID    string                 `json:"user_id" gorm:"index"`
	TenantID  *string                `json:"tenant_id,omitempty" gorm:"index"`
	Type      types.NotificationType `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// New returns an unread notification for the given user
func New(ctx context.Context, userID string, typ types.NotificationType, title, message string) *Notification {
	n := &Notification{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTIFICATION),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" {
		n.TenantID = &tenantID
	}
	return n
}
