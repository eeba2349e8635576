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

// EraseUseCase anonymizes an account in place. The row survives so
// authored content keeps a stable author identifier.
type EraseUseCase struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u EraseUseCase) Execute(ctx context.Context, accountID string) (ports.Account, error) {
	logger := application.ResolveLogger(u.Logger)

	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return ports.Account{}, domainerrors.ErrInvalidRequest
	}

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Account{}, err
	}

	account, err := u.Repository.AnonymizeAccount(ctx, accountID, outboxID, u.now())
	if err != nil {
		if err == domainerrors.ErrAccountNotFound {
			return ports.Account{}, err
		}
		logger.Error("account erasure failed",
			"event", "accounts_erase_failed",
			"module", "identity-access/account-service",
			"layer", "application",
			"account_id", accountID,
			"error", err.Error(),
		)
		return ports.Account{}, err
	}

	logger.Info("account erased",
		"event", "accounts_erased",
		"module", "identity-access/account-service",
		"layer", "application",
		"account_id", accountID,
	)
	return account, nil
}

func (u EraseUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
