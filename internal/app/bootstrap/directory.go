package bootstrap

import (
	"context"

	accountsports "vesalius/contexts/identity-access/account-service/ports"
	authzports "vesalius/contexts/identity-access/authorization-service/ports"
)

// accountDirectory adapts the account repository to the authorization
// gate's Directory port. The mapping happens here so neither context
// imports the other.
type accountDirectory struct {
	accounts accountsports.Repository
}

func (d accountDirectory) Lookup(ctx context.Context, accountID string) (authzports.DirectoryRecord, bool, error) {
	account, found, err := d.accounts.GetAccount(ctx, accountID)
	if err != nil || !found {
		return authzports.DirectoryRecord{}, false, err
	}
	return authzports.DirectoryRecord{
		Role:     authzports.Role(account.Role),
		Approved: account.ApprovalStatus == accountsports.ApprovalApproved,
	}, true, nil
}
