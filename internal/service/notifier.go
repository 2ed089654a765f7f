package service

import (
	"context"
	"encoding/json"

	"github.com/ElSheemy11/High-Up/internal/metrics"
	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/rabbitmq"
	"go.uber.org/zap"
)

// notifier fans committed notifications out to the broker. Delivery is best effort.
type notifier struct {
	logger    *zap.Logger
	publisher rabbitmq.Publisher
}

func newNotifier(logger *zap.Logger, publisher rabbitmq.Publisher) *notifier {
	return &notifier{
		logger:    logger,
		publisher: publisher,
	}
}

func (n *notifier) committed(ctx context.Context, notification *model.Notification) {
	if notification == nil {
		return
	}
	metrics.NotificationsAppended.WithLabelValues(string(notification.Type)).Inc()

	if n.publisher == nil {
		return
	}

	queue, ok := rabbitmq.QueueFor(string(notification.Type))
	if !ok {
		return
	}

	data, err := json.Marshal(notification)
	if err != nil {
		n.logger.Sugar().Errorf("failed to marshal notification(id: %s): %s", notification.ID, err.Error())
		return
	}

	if err := n.publisher.Publish(ctx, queue, data); err != nil {
		n.logger.Sugar().Errorf("failed to publish notification(id: %s) to %s: %s", notification.ID, queue, err.Error())
	}
}
