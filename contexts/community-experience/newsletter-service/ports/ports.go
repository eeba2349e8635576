package ports

import (
	"context"
	"time"
)

// SubscriptionStatus is the closed double-opt-in state set.
type SubscriptionStatus string

const (
	StatusPending      SubscriptionStatus = "pending"
	StatusConfirmed    SubscriptionStatus = "confirmed"
	StatusUnsubscribed SubscriptionStatus = "unsubscribed"
)

// Subscription tracks one address through the double-opt-in flow. Token
// doubles as the confirmation and unsubscribe credential.
type Subscription struct {
	Email       string
	Token       string
	Status      SubscriptionStatus
	CreatedAt   time.Time
	ConfirmedAt *time.Time
}

type Repository interface {
	UpsertSubscription(ctx context.Context, subscription Subscription) (Subscription, error)
	GetByEmail(ctx context.Context, email string) (Subscription, bool, error)
	GetByToken(ctx context.Context, token string) (Subscription, bool, error)
	UpdateSubscription(ctx context.Context, subscription Subscription) error
}

type Clock interface {
	Now() time.Time
}

type TokenGenerator interface {
	NewID(ctx context.Context) (string, error)
}

const TemplateConfirmation = "newsletter_confirmation"

// Notification mirrors the platform email payload shape; the module
// keeps its own copy so no import crosses context boundaries.
type Notification struct {
	ToAddress    string
	TemplateKind string
	Data         map[string]any
}

type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}
