package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "vesalius/contexts/identity-access/account-service/application"
	"vesalius/contexts/identity-access/account-service/ports"
)

// OutboxRelay drains pending outbox rows and publishes them to the event
// bus. Rows are acknowledged only after a successful publish, so delivery
// is at-least-once.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.IdentityEventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list failed",
			"event", "accounts_outbox_list_failed",
			"module", "identity-access/account-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.IdentityEvent
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			return err
		}
		if err := r.Publisher.PublishIdentityEvent(ctx, event); err != nil {
			logger.Error("outbox publish failed",
				"event", "accounts_outbox_publish_failed",
				"module", "identity-access/account-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			return err
		}
	}
	return nil
}
