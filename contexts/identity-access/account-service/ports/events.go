package ports

import (
	"encoding/json"
	"time"
)

const eventSourceService = "vesalius-identity"

// NewIdentityEvent builds the canonical envelope persisted into outbox
// rows. The outbox id doubles as the event id so replays stay traceable.
func NewIdentityEvent(outboxID string, eventType string, partitionKey string, occurredAt time.Time, data any) (IdentityEvent, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return IdentityEvent{}, err
	}
	return IdentityEvent{
		EventID:       outboxID,
		EventType:     eventType,
		OccurredAt:    occurredAt.UTC(),
		SourceService: eventSourceService,
		SchemaVersion: 1,
		PartitionKey:  partitionKey,
		Data:          payload,
	}, nil
}
