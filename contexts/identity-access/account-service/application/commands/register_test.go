package commands

import (
	"context"
	"errors"
	"testing"

	"vesalius/contexts/identity-access/account-service/adapters/memory"
	domainerrors "vesalius/contexts/identity-access/account-service/domain/errors"
	"vesalius/contexts/identity-access/account-service/ports"
)

func newRegisterUseCase(store *memory.Store) RegisterUseCase {
	return RegisterUseCase{
		Repository:  store,
		Clock:       store,
		IDGenerator: store,
	}
}

func TestRegisterPatientIsImmediatelyApproved(t *testing.T) {
	store := memory.NewStore()
	register := newRegisterUseCase(store)

	account, err := register.Execute(context.Background(), RegisterCommand{
		AccountID: "acc_patient_1",
		Email:     "patient@example.com",
		Role:      "patient",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if account.ApprovalStatus != ports.ApprovalApproved {
		t.Fatalf("expected approved, got %s", account.ApprovalStatus)
	}

	pending, err := store.ListPendingRequests(context.Background())
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("patient registration must not enqueue approval, got %d", len(pending))
	}
}

func TestRegisterProfessionalEntersPendingQueue(t *testing.T) {
	store := memory.NewStore()
	register := newRegisterUseCase(store)

	account, err := register.Execute(context.Background(), RegisterCommand{
		AccountID: "acc_prof_1",
		Email:     "doctor@example.com",
		Role:      "professional",
		ProfessionalMeta: &ports.ProfessionalMeta{
			LicenseNumber:  "MD-12345",
			Specialization: "cardiology",
		},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if account.ApprovalStatus != ports.ApprovalPending {
		t.Fatalf("expected pending, got %s", account.ApprovalStatus)
	}

	pending, err := store.ListPendingRequests(context.Background())
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].AccountID != "acc_prof_1" {
		t.Fatalf("expected one pending request for acc_prof_1, got %+v", pending)
	}
}

func TestRegisterProfessionalWithoutLicenseFails(t *testing.T) {
	store := memory.NewStore()
	register := newRegisterUseCase(store)

	_, err := register.Execute(context.Background(), RegisterCommand{
		AccountID: "acc_prof_2",
		Email:     "doctor2@example.com",
		Role:      "professional",
	})
	if !errors.Is(err, domainerrors.ErrMissingLicense) {
		t.Fatalf("expected ErrMissingLicense, got %v", err)
	}

	_, found, err := store.GetAccount(context.Background(), "acc_prof_2")
	if err != nil {
		t.Fatalf("get account failed: %v", err)
	}
	if found {
		t.Fatal("rejected registration must not persist an account")
	}
}

func TestRegisterAdminRoleIsRefused(t *testing.T) {
	store := memory.NewStore()
	register := newRegisterUseCase(store)

	_, err := register.Execute(context.Background(), RegisterCommand{
		AccountID: "acc_admin_1",
		Email:     "admin@example.com",
		Role:      "admin",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterDuplicateAccountFails(t *testing.T) {
	store := memory.NewStore()
	register := newRegisterUseCase(store)

	cmd := RegisterCommand{
		AccountID: "acc_dup_1",
		Email:     "dup@example.com",
	}
	if _, err := register.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := register.Execute(context.Background(), cmd)
	if !errors.Is(err, domainerrors.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestRegisterDefaultsMissingRoleToPatient(t *testing.T) {
	store := memory.NewStore()
	register := newRegisterUseCase(store)

	account, err := register.Execute(context.Background(), RegisterCommand{
		AccountID: "acc_norole_1",
		Email:     "norole@example.com",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if account.Role != ports.RolePatient {
		t.Fatalf("expected patient, got %s", account.Role)
	}
}
