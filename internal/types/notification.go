package types

import ierr "github.com/ardentinvoicing/ardent/internal/errors"

// NotificationType is the severity band of an in-app notification
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) Validate() error {
	allowed := []NotificationType{
		NotificationTypeInfo,
		NotificationTypeSuccess,
		NotificationTypeWarning,
		NotificationTypeError,
	}
	for _, typ := range allowed {
		if t == typ {
			return nil
		}
	}
	return ierr.NewError("invalid notification type").
		WithHintf("notification type must be one of %v", allowed).
		Mark(ierr.ErrValidation)
}
