package application

import (
	"context"
	"testing"

	"vesalius/contexts/identity-access/authorization-service/adapters/memory"
	"vesalius/contexts/identity-access/authorization-service/ports"
)

func newGateFixture() (GateUseCase, *memory.StaticVerifier, *memory.StubDirectory) {
	verifier := memory.NewStaticVerifier()
	directory := memory.NewStubDirectory()
	gate := GateUseCase{Verifier: verifier, Directory: directory}
	return gate, verifier, directory
}

func TestAnonymousRequestDeniedBeforeDirectoryLookup(t *testing.T) {
	gate, _, directory := newGateFixture()

	decision := gate.AuthorizeHeader(context.Background(), "", ports.Policy{RequireRole: ports.RoleAdmin})
	if decision.Allowed {
		t.Fatal("anonymous request must be denied")
	}
	if decision.Reason != ports.DenyUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", decision.Reason)
	}
	if directory.Lookups() != 0 {
		t.Fatalf("anonymous denial must not touch the directory, got %d lookups", directory.Lookups())
	}
}

func TestNonBearerSchemeIsAnonymous(t *testing.T) {
	gate, _, directory := newGateFixture()

	decision := gate.AuthorizeHeader(context.Background(), "Basic dXNlcjpwYXNz", ports.Policy{})
	if decision.Allowed || decision.Reason != ports.DenyUnauthenticated {
		t.Fatalf("expected unauthenticated denial, got %+v", decision)
	}
	if directory.Lookups() != 0 {
		t.Fatalf("expected zero lookups, got %d", directory.Lookups())
	}
}

func TestUnregisteredIdentityDefaultsToPatient(t *testing.T) {
	gate, verifier, _ := newGateFixture()
	verifier.Register("tok_guest", ports.Identity{AccountID: "acc_guest"})

	decision := gate.AuthorizeHeader(context.Background(), "Bearer tok_guest", ports.Policy{})
	if !decision.Allowed {
		t.Fatalf("expected allow, got %+v", decision)
	}
	if decision.Role != ports.RolePatient {
		t.Fatalf("expected patient default, got %s", decision.Role)
	}
}

func TestUnregisteredIdentityCannotSatisfyElevatedRole(t *testing.T) {
	gate, verifier, _ := newGateFixture()
	verifier.Register("tok_guest", ports.Identity{AccountID: "acc_guest"})

	decision := gate.AuthorizeHeader(context.Background(), "Bearer tok_guest", ports.Policy{RequireRole: ports.RoleAdmin})
	if decision.Allowed {
		t.Fatal("unregistered identity must not satisfy admin requirement")
	}
	if decision.Reason != ports.DenyNotFound {
		t.Fatalf("missing record must deny as not_found, got %s", decision.Reason)
	}
}

func TestPendingProfessionalDeniedWhenApprovalRequired(t *testing.T) {
	gate, verifier, directory := newGateFixture()
	verifier.Register("tok_prof", ports.Identity{AccountID: "acc_prof"})
	directory.Put("acc_prof", ports.DirectoryRecord{Role: ports.RoleProfessional, Approved: false})

	policies := []ports.Policy{
		{RequireApproved: true},
		{RequireApproved: true, RequireRole: ports.RoleProfessional},
		{RequireApproved: true, RequireRole: ports.RoleAdmin},
	}
	for _, policy := range policies {
		decision := gate.AuthorizeHeader(context.Background(), "Bearer tok_prof", policy)
		if decision.Allowed || decision.Reason != ports.DenyPendingApproval {
			t.Fatalf("policy %+v: expected pending_approval denial, got %+v", policy, decision)
		}
	}
}

func TestApprovedProfessionalPassesApprovalPolicy(t *testing.T) {
	gate, verifier, directory := newGateFixture()
	verifier.Register("tok_prof", ports.Identity{AccountID: "acc_prof"})
	directory.Put("acc_prof", ports.DirectoryRecord{Role: ports.RoleProfessional, Approved: true})

	decision := gate.AuthorizeHeader(context.Background(), "Bearer tok_prof", ports.Policy{
		RequireApproved: true,
		RequireRole:     ports.RoleProfessional,
	})
	if !decision.Allowed {
		t.Fatalf("expected allow, got %+v", decision)
	}
	if decision.Role != ports.RoleProfessional {
		t.Fatalf("expected professional, got %s", decision.Role)
	}
}

func TestNonAdminDeniedOnAdminPolicy(t *testing.T) {
	gate, verifier, directory := newGateFixture()
	verifier.Register("tok_patient", ports.Identity{AccountID: "acc_patient"})
	directory.Put("acc_patient", ports.DirectoryRecord{Role: ports.RolePatient, Approved: true})

	decision := gate.AuthorizeHeader(context.Background(), "Bearer tok_patient", ports.Policy{RequireRole: ports.RoleAdmin})
	if decision.Allowed || decision.Reason != ports.DenyInsufficientRole {
		t.Fatalf("expected insufficient_role denial, got %+v", decision)
	}
}

func TestDirectoryFailureFailsClosed(t *testing.T) {
	gate, verifier, directory := newGateFixture()
	verifier.Register("tok_prof", ports.Identity{AccountID: "acc_prof"})
	directory.SetFail(true)

	decision := gate.AuthorizeHeader(context.Background(), "Bearer tok_prof", ports.Policy{})
	if decision.Allowed {
		t.Fatal("directory failure must deny, never allow")
	}
	if decision.Reason != ports.DenyUnavailable {
		t.Fatalf("expected unavailable, got %s", decision.Reason)
	}
}

func TestVerifierFailureFailsClosed(t *testing.T) {
	gate, verifier, directory := newGateFixture()
	verifier.SetFail(true)

	decision := gate.AuthorizeHeader(context.Background(), "Bearer tok_any", ports.Policy{})
	if decision.Allowed || decision.Reason != ports.DenyUnauthenticated {
		t.Fatalf("expected unauthenticated denial, got %+v", decision)
	}
	if directory.Lookups() != 0 {
		t.Fatalf("failed verification must not reach the directory, got %d lookups", directory.Lookups())
	}
}

func TestUnknownStoredRoleNeverEscalates(t *testing.T) {
	gate, verifier, directory := newGateFixture()
	verifier.Register("tok_odd", ports.Identity{AccountID: "acc_odd"})
	directory.Put("acc_odd", ports.DirectoryRecord{Role: ports.Role("superuser"), Approved: true})

	decision := gate.AuthorizeHeader(context.Background(), "Bearer tok_odd", ports.Policy{RequireRole: ports.RoleAdmin})
	if decision.Allowed {
		t.Fatal("unknown role must never satisfy admin requirement")
	}
	if decision.Reason != ports.DenyInsufficientRole {
		t.Fatalf("expected insufficient_role, got %s", decision.Reason)
	}
}
