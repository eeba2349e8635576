package commands

import (
	"context"
	"errors"
	"testing"

	"vesalius/contexts/identity-access/account-service/adapters/memory"
	domainerrors "vesalius/contexts/identity-access/account-service/domain/errors"
	"vesalius/contexts/identity-access/account-service/ports"
)

func rejectProfessional(t *testing.T, store *memory.Store, accountID string) {
	t.Helper()
	decide := DecideUseCase{Repository: store, Clock: store, IDGenerator: store}
	_, err := decide.Execute(context.Background(), DecideCommand{
		AccountID:  accountID,
		ReviewerID: "acc_admin",
		Decision:   "rejected",
		Notes:      "license could not be verified",
	})
	if err != nil {
		t.Fatalf("seed rejection failed: %v", err)
	}
}

func TestReapplyReopensRejectedProfessional(t *testing.T) {
	store := memory.NewStore()
	seedPendingProfessional(t, store, "acc_re_1")
	rejectProfessional(t, store, "acc_re_1")

	reapply := ReapplyUseCase{Repository: store, Clock: store, IDGenerator: store}
	account, err := reapply.Execute(context.Background(), "acc_re_1")
	if err != nil {
		t.Fatalf("reapply failed: %v", err)
	}
	if account.ApprovalStatus != ports.ApprovalPending {
		t.Fatalf("expected pending after reapply, got %s", account.ApprovalStatus)
	}

	pending, err := store.ListPendingRequests(context.Background())
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one fresh open request, got %d", len(pending))
	}
	if pending[0].AccountID != "acc_re_1" {
		t.Fatalf("open request must belong to the reapplicant, got %s", pending[0].AccountID)
	}
	if pending[0].ResolvedAt != nil {
		t.Fatal("fresh request must be unresolved")
	}
	if pending[0].SubmittedAt.IsZero() {
		t.Fatal("fresh request must carry a submission time")
	}
}

func TestReapplyThenApproveCompletesSecondReview(t *testing.T) {
	store := memory.NewStore()
	seedPendingProfessional(t, store, "acc_re_2")
	rejectProfessional(t, store, "acc_re_2")

	reapply := ReapplyUseCase{Repository: store, Clock: store, IDGenerator: store}
	if _, err := reapply.Execute(context.Background(), "acc_re_2"); err != nil {
		t.Fatalf("reapply failed: %v", err)
	}

	decide := DecideUseCase{Repository: store, Clock: store, IDGenerator: store}
	result, err := decide.Execute(context.Background(), DecideCommand{
		AccountID:  "acc_re_2",
		ReviewerID: "acc_admin",
		Decision:   "approved",
	})
	if err != nil {
		t.Fatalf("second review failed: %v", err)
	}
	if result.Account.ApprovalStatus != ports.ApprovalApproved {
		t.Fatalf("expected approved after second review, got %s", result.Account.ApprovalStatus)
	}
}

func TestReapplyWithoutRejectionReturnsNotRejected(t *testing.T) {
	store := memory.NewStore()
	seedPendingProfessional(t, store, "acc_re_3")

	reapply := ReapplyUseCase{Repository: store, Clock: store, IDGenerator: store}
	_, err := reapply.Execute(context.Background(), "acc_re_3")
	if !errors.Is(err, domainerrors.ErrNotRejected) {
		t.Fatalf("expected ErrNotRejected for a pending account, got %v", err)
	}

	decide := DecideUseCase{Repository: store, Clock: store, IDGenerator: store}
	if _, err := decide.Execute(context.Background(), DecideCommand{
		AccountID:  "acc_re_3",
		ReviewerID: "acc_admin",
		Decision:   "approved",
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	_, err = reapply.Execute(context.Background(), "acc_re_3")
	if !errors.Is(err, domainerrors.ErrNotRejected) {
		t.Fatalf("expected ErrNotRejected for an approved account, got %v", err)
	}
}

func TestReapplyUnknownAccountReturnsNotFound(t *testing.T) {
	store := memory.NewStore()
	reapply := ReapplyUseCase{Repository: store, Clock: store, IDGenerator: store}

	_, err := reapply.Execute(context.Background(), "acc_missing")
	if !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
