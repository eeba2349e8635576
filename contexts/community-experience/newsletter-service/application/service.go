package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "vesalius/contexts/community-experience/newsletter-service/domain/errors"
	"vesalius/contexts/community-experience/newsletter-service/ports"
)

// Service drives the double-opt-in lifecycle. Subscribing an address
// that is already pending re-issues the confirmation email with the
// existing token; a previously unsubscribed address starts over.
type Service struct {
	Repo     ports.Repository
	Clock    ports.Clock
	Tokens   ports.TokenGenerator
	Notifier ports.Notifier
	Logger   *slog.Logger
}

func (s Service) Subscribe(ctx context.Context, email string) (ports.Subscription, error) {
	logger := s.logger()

	email = strings.ToLower(strings.TrimSpace(email))
	if !validEmail(email) {
		return ports.Subscription{}, domainerrors.ErrInvalidEmail
	}

	existing, found, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return ports.Subscription{}, err
	}
	if found && existing.Status == ports.StatusConfirmed {
		// Re-subscribing a confirmed address is a no-op.
		return existing, nil
	}

	subscription := existing
	if !found || existing.Status == ports.StatusUnsubscribed {
		token, err := s.Tokens.NewID(ctx)
		if err != nil {
			return ports.Subscription{}, err
		}
		subscription = ports.Subscription{
			Email:     email,
			Token:     token,
			Status:    ports.StatusPending,
			CreatedAt: s.now(),
		}
		if subscription, err = s.Repo.UpsertSubscription(ctx, subscription); err != nil {
			return ports.Subscription{}, err
		}
	}

	s.sendConfirmation(ctx, subscription, logger)
	return subscription, nil
}

func (s Service) Confirm(ctx context.Context, token string) (ports.Subscription, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ports.Subscription{}, domainerrors.ErrTokenNotFound
	}

	subscription, found, err := s.Repo.GetByToken(ctx, token)
	if err != nil {
		return ports.Subscription{}, err
	}
	if !found || subscription.Status == ports.StatusUnsubscribed {
		return ports.Subscription{}, domainerrors.ErrTokenNotFound
	}
	if subscription.Status == ports.StatusConfirmed {
		return subscription, domainerrors.ErrAlreadyConfirmed
	}

	now := s.now()
	subscription.Status = ports.StatusConfirmed
	subscription.ConfirmedAt = &now
	if err := s.Repo.UpdateSubscription(ctx, subscription); err != nil {
		return ports.Subscription{}, err
	}

	s.logger().Info("newsletter subscription confirmed",
		"event", "newsletter_confirmed",
		"module", "community-experience/newsletter-service",
		"layer", "application",
	)
	return subscription, nil
}

func (s Service) Unsubscribe(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domainerrors.ErrTokenNotFound
	}

	subscription, found, err := s.Repo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrTokenNotFound
	}
	if subscription.Status == ports.StatusUnsubscribed {
		return nil
	}

	subscription.Status = ports.StatusUnsubscribed
	return s.Repo.UpdateSubscription(ctx, subscription)
}

// sendConfirmation is best-effort; the pending row already exists and
// the client can re-subscribe to trigger another email.
func (s Service) sendConfirmation(ctx context.Context, subscription ports.Subscription, logger *slog.Logger) {
	if s.Notifier == nil {
		return
	}
	err := s.Notifier.Send(ctx, ports.Notification{
		ToAddress:    subscription.Email,
		TemplateKind: ports.TemplateConfirmation,
		Data: map[string]any{
			"token": subscription.Token,
		},
	})
	if err != nil {
		logger.Warn("confirmation email failed",
			"event", "newsletter_confirmation_email_failed",
			"module", "community-experience/newsletter-service",
			"layer", "application",
			"error", err.Error(),
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}
