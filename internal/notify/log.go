package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes events to the service log. It is the default when no
// webhook URL is configured.
type LogNotifier struct {
	logger *zap.SugaredLogger
}

func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(ctx context.Context, event Event) error {
	n.logger.Infow("new feedback received", "id", event.ID, "user", event.User, "sentiment", event.Label)
	return nil
}
