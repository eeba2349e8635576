package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "vesalius/contexts/identity-access/account-service/application"
	domainerrors "vesalius/contexts/identity-access/account-service/domain/errors"
	"vesalius/contexts/identity-access/account-service/ports"
)

// DecideCommand captures one admin decision over a pending professional
// account. The caller is responsible for having authorized the reviewer
// as admin before invoking this use case.
type DecideCommand struct {
	AccountID  string
	ReviewerID string
	Decision   string
	Notes      string
}

// DecideResult is the committed outcome of the decision.
type DecideResult struct {
	Account ports.Account
	Request ports.ApprovalRequest
}

// DecideUseCase drives the pending -> approved/rejected transition. The
// account and queue mutation commit as one transaction; the decision
// email is dispatched afterwards and never rolls the decision back.
type DecideUseCase struct {
	Repository  ports.Repository
	Notifier    ports.Notifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u DecideUseCase) Execute(ctx context.Context, cmd DecideCommand) (DecideResult, error) {
	logger := application.ResolveLogger(u.Logger)

	accountID := strings.TrimSpace(cmd.AccountID)
	reviewerID := strings.TrimSpace(cmd.ReviewerID)
	if accountID == "" || reviewerID == "" {
		return DecideResult{}, domainerrors.ErrInvalidRequest
	}

	decision := strings.ToLower(strings.TrimSpace(cmd.Decision))
	if decision != ports.DecisionApproved && decision != ports.DecisionRejected {
		return DecideResult{}, domainerrors.ErrInvalidDecision
	}

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return DecideResult{}, err
	}

	now := u.now()
	mutation, err := u.Repository.DecideRequest(ctx, ports.DecideInput{
		AccountID:  accountID,
		ReviewerID: reviewerID,
		Decision:   decision,
		Notes:      strings.TrimSpace(cmd.Notes),
		OutboxID:   outboxID,
		DecidedAt:  now,
	})
	if err != nil {
		if err == domainerrors.ErrNotPending || err == domainerrors.ErrAccountNotFound {
			return DecideResult{}, err
		}
		logger.Error("approval decision write failed",
			"event", "accounts_decide_write_failed",
			"module", "identity-access/account-service",
			"layer", "application",
			"account_id", accountID,
			"reviewer_id", reviewerID,
			"decision", decision,
			"error", err.Error(),
		)
		return DecideResult{}, err
	}

	u.notify(ctx, mutation, logger)

	logger.Info("approval decision committed",
		"event", "accounts_decided",
		"module", "identity-access/account-service",
		"layer", "application",
		"account_id", accountID,
		"reviewer_id", reviewerID,
		"decision", decision,
	)
	return DecideResult{Account: mutation.Account, Request: mutation.Request}, nil
}

// notify dispatches the decision email. The decision is already durable;
// delivery failures are logged and swallowed.
func (u DecideUseCase) notify(ctx context.Context, mutation ports.DecideResult, logger *slog.Logger) {
	if u.Notifier == nil || mutation.Account.Anonymized || mutation.Account.Email == "" {
		return
	}

	data := map[string]any{
		"approved": mutation.Request.Decision == ports.DecisionApproved,
	}
	if mutation.Request.Decision == ports.DecisionRejected {
		data["reason"] = mutation.Request.Notes
	}

	err := u.Notifier.Send(ctx, ports.Notification{
		ToAddress:    mutation.Account.Email,
		TemplateKind: ports.TemplateApprovalDecision,
		Data:         data,
	})
	if err != nil {
		logger.Warn("decision notification failed",
			"event", "accounts_decide_notify_failed",
			"module", "identity-access/account-service",
			"layer", "application",
			"account_id", mutation.Account.AccountID,
			"error", err.Error(),
		)
	}
}

func (u DecideUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
