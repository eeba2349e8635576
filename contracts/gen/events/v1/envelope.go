package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned event envelope for cross-runtime use.
// This package is generated-contract-only and must stay backward compatible.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	TraceID       string          `json:"trace_id"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}

// Event types emitted by the identity-access context.
const (
	EventTypeAccountRegistered = "identity.account_registered.v1"
	EventTypeApprovalDecided   = "identity.approval_decided.v1"
	EventTypeApprovalReapplied = "identity.approval_reapplied.v1"
	EventTypeAccountErased     = "identity.account_erased.v1"
)
