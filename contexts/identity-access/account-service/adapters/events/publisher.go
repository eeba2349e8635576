package events

import (
	"context"
	"log/slog"

	"vesalius/contexts/identity-access/account-service/ports"
	"vesalius/internal/platform/messaging"
)

// Publisher forwards identity lifecycle events onto the platform bus.
// The outbox relay is the only caller, so delivery retries stay with
// the relay loop rather than here.
type Publisher struct {
	bus    messaging.Publisher
	topic  string
	logger *slog.Logger
}

func NewPublisher(bus messaging.Publisher, topic string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{bus: bus, topic: topic, logger: logger}
}

func (p Publisher) PublishIdentityEvent(ctx context.Context, event ports.IdentityEvent) error {
	if err := p.bus.Publish(ctx, p.topic, event); err != nil {
		return err
	}
	p.logger.Info("identity event published",
		"event", "accounts_event_published",
		"module", "identity-access/account-service",
		"layer", "adapter",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"partition_key", event.PartitionKey,
	)
	return nil
}
