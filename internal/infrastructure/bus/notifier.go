// Package bus delivers user-facing notifications emitted by long-running
// workflows. Delivery is best effort: implementations log failures and
// never surface them to the caller.
package bus

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// LogNotifier writes notifications to the application log. It is the
// default sink for development and for deployments without Redis.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notify")}
}

// Notify logs the notification at a level matching its severity
func (n *LogNotifier) Notify(_ context.Context, userID uuid.UUID, notification shared.Notification) {
	fields := []zap.Field{
		zap.String("user_id", userID.String()),
		zap.String("title", notification.Title),
		zap.String("message", notification.Message),
		zap.Bool("sticky", notification.Sticky),
	}
	switch notification.Level {
	case shared.NotificationDanger:
		n.logger.Error("user notification", fields...)
	case shared.NotificationWarning:
		n.logger.Warn("user notification", fields...)
	default:
		n.logger.Info("user notification", fields...)
	}
}

// Ensure LogNotifier implements Notifier
var _ shared.Notifier = (*LogNotifier)(nil)
