package shared

import (
	"context"

	"github.com/google/uuid"
)

// NotificationLevel mirrors the severity shown to the initiating user
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationWarning NotificationLevel = "warning"
	NotificationDanger  NotificationLevel = "danger"
)

// Notification is a fire-and-forget message to the user who triggered a
// long-running operation. Delivery is best effort; workflow state never
// depends on it.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Sticky  bool              `json:"sticky"`
}

// Notifier is the port for the user notification side-channel.
// Implementations must not block the calling workflow on delivery failures.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, n Notification)
}
