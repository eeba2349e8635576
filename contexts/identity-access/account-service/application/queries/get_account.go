package queries

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "vesalius/contexts/identity-access/account-service/domain/errors"
	"vesalius/contexts/identity-access/account-service/ports"
)

// GetAccountUseCase resolves one account by its provider-issued id.
// found=false is a normal outcome for verified identities that never
// registered; callers treat those as implicit patients.
type GetAccountUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u GetAccountUseCase) Execute(ctx context.Context, accountID string) (ports.Account, bool, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return ports.Account{}, false, domainerrors.ErrInvalidRequest
	}
	return u.Repository.GetAccount(ctx, accountID)
}
