package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vesalius/contexts/community-experience/newsletter-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) UpsertSubscription(ctx context.Context, subscription ports.Subscription) (ports.Subscription, error) {
	row := fromEntity(subscription)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
	if err != nil {
		return ports.Subscription{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (ports.Subscription, bool, error) {
	var row subscriptionModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Subscription{}, false, nil
		}
		return ports.Subscription{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetByToken(ctx context.Context, token string) (ports.Subscription, bool, error) {
	var row subscriptionModel
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Subscription{}, false, nil
		}
		return ports.Subscription{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) UpdateSubscription(ctx context.Context, subscription ports.Subscription) error {
	row := fromEntity(subscription)
	return r.db.WithContext(ctx).
		Model(&subscriptionModel{}).
		Where("email = ?", row.Email).
		Updates(map[string]any{
			"token":        row.Token,
			"status":       row.Status,
			"confirmed_at": row.ConfirmedAt,
		}).
		Error
}
