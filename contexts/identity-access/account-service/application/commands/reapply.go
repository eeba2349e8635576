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

// ReapplyUseCase lets a rejected professional re-enter the approval
// queue. The status flip and the fresh request row commit as one
// transaction; the rejected request stays resolved for auditing.
type ReapplyUseCase struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u ReapplyUseCase) Execute(ctx context.Context, accountID string) (ports.Account, error) {
	logger := application.ResolveLogger(u.Logger)

	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return ports.Account{}, domainerrors.ErrInvalidRequest
	}

	requestID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Account{}, err
	}
	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Account{}, err
	}

	account, err := u.Repository.ReapplyRequest(ctx, ports.ReapplyInput{
		AccountID: accountID,
		RequestID: requestID,
		OutboxID:  outboxID,
		Now:       u.now(),
	})
	if err != nil {
		if err == domainerrors.ErrNotRejected || err == domainerrors.ErrAccountNotFound {
			return ports.Account{}, err
		}
		logger.Error("reapplication write failed",
			"event", "accounts_reapply_write_failed",
			"module", "identity-access/account-service",
			"layer", "application",
			"account_id", accountID,
			"error", err.Error(),
		)
		return ports.Account{}, err
	}

	logger.Info("approval reapplication filed",
		"event", "accounts_reapplied",
		"module", "identity-access/account-service",
		"layer", "application",
		"account_id", account.AccountID,
		"request_id", requestID,
	)
	return account, nil
}

func (u ReapplyUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
