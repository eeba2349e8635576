package application

import (
	"context"
	"log/slog"

	"vesalius/contexts/identity-access/authorization-service/ports"
)

// GateUseCase computes the access decision for one request. It is pure
// with respect to its ports: no caching across requests, because
// approval state can change between any two requests.
type GateUseCase struct {
	Verifier  ports.TokenVerifier
	Directory ports.Directory
	Logger    *slog.Logger
}

// AuthorizeHeader parses the Authorization header and evaluates the
// policy. An empty or non-Bearer header is the anonymous path and is
// denied before any verifier or directory call.
func (u GateUseCase) AuthorizeHeader(ctx context.Context, authorization string, policy ports.Policy) ports.Decision {
	token := ports.ParseBearer(authorization)
	if token == "" {
		return ports.Deny(ports.DenyUnauthenticated)
	}
	return u.Authorize(ctx, token, policy)
}

// Authorize verifies the token and evaluates the policy against the
// caller's directory record. All failure paths deny.
func (u GateUseCase) Authorize(ctx context.Context, token string, policy ports.Policy) ports.Decision {
	logger := resolveLogger(u.Logger)

	identity, ok, err := u.Verifier.Verify(ctx, token)
	if err != nil {
		logger.Warn("token verification failed",
			"event", "authz_verify_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"error", err.Error(),
		)
		return ports.Deny(ports.DenyUnauthenticated)
	}
	if !ok || identity.AccountID == "" {
		return ports.Deny(ports.DenyUnauthenticated)
	}

	record, found, err := u.Directory.Lookup(ctx, identity.AccountID)
	if err != nil {
		logger.Error("directory lookup failed",
			"event", "authz_directory_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"account_id", identity.AccountID,
			"error", err.Error(),
		)
		return ports.Deny(ports.DenyUnavailable)
	}

	if !found {
		// Verified identity without a record is an implicit approved
		// patient. That default can satisfy authentication-only
		// policies but never an elevated role requirement.
		if !ports.RolePatient.Satisfies(policy.RequireRole) {
			return ports.Deny(ports.DenyNotFound)
		}
		return ports.Allow(identity, ports.RolePatient)
	}

	if policy.RequireApproved && record.Role == ports.RoleProfessional && !record.Approved {
		return ports.Deny(ports.DenyPendingApproval)
	}
	if !record.Role.Satisfies(policy.RequireRole) {
		return ports.Deny(ports.DenyInsufficientRole)
	}
	return ports.Allow(identity, record.Role)
}
