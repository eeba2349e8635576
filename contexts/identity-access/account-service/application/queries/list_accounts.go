package queries

import (
	"context"
	"log/slog"

	"vesalius/contexts/identity-access/account-service/ports"
)

// ListAccountsUseCase backs the admin account listing.
type ListAccountsUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListAccountsUseCase) Execute(ctx context.Context) ([]ports.Account, error) {
	return u.Repository.ListAccounts(ctx)
}
