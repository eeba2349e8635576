package queries

import (
	"context"
	"log/slog"

	"vesalius/contexts/identity-access/account-service/ports"
)

// OverviewResult combines account totals with the live pending queue.
type OverviewResult struct {
	Stats   ports.OverviewStats
	Pending []ports.ApprovalRequest
}

// OverviewUseCase backs the admin dashboard landing view.
type OverviewUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u OverviewUseCase) Execute(ctx context.Context) (OverviewResult, error) {
	stats, err := u.Repository.Overview(ctx)
	if err != nil {
		return OverviewResult{}, err
	}
	pending, err := u.Repository.ListPendingRequests(ctx)
	if err != nil {
		return OverviewResult{}, err
	}
	return OverviewResult{Stats: stats, Pending: pending}, nil
}
