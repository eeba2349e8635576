package postgresadapter

import (
	"time"

	"vesalius/contexts/community-experience/newsletter-service/ports"
)

type subscriptionModel struct {
	Email       string     `gorm:"column:email;primaryKey"`
	Token       string     `gorm:"column:token;uniqueIndex"`
	Status      string     `gorm:"column:status;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at"`
}

func (subscriptionModel) TableName() string { return "newsletter_subscriptions" }

// Models exposes the gorm models for platform migration wiring.
func Models() []any {
	return []any{&subscriptionModel{}}
}

func fromEntity(subscription ports.Subscription) subscriptionModel {
	row := subscriptionModel{
		Email:     subscription.Email,
		Token:     subscription.Token,
		Status:    string(subscription.Status),
		CreatedAt: subscription.CreatedAt.UTC(),
	}
	if subscription.ConfirmedAt != nil {
		confirmed := subscription.ConfirmedAt.UTC()
		row.ConfirmedAt = &confirmed
	}
	return row
}

func (m subscriptionModel) toEntity() ports.Subscription {
	subscription := ports.Subscription{
		Email:     m.Email,
		Token:     m.Token,
		Status:    ports.SubscriptionStatus(m.Status),
		CreatedAt: m.CreatedAt.UTC(),
	}
	if m.ConfirmedAt != nil {
		confirmed := m.ConfirmedAt.UTC()
		subscription.ConfirmedAt = &confirmed
	}
	return subscription
}
