package ports

import (
	"context"
	"strings"
)

// Role is the closed role vocabulary the gate evaluates policies over.
type Role string

const (
	RolePatient      Role = "patient"
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

// roleRank orders roles for minimum-role policies. Unknown values rank
// lowest and can never satisfy an elevated requirement.
func roleRank(role Role) int {
	switch role {
	case RoleAdmin:
		return 3
	case RoleProfessional:
		return 2
	case RolePatient:
		return 1
	default:
		return 0
	}
}

// Satisfies reports whether role meets the required minimum role.
func (r Role) Satisfies(required Role) bool {
	if required == "" {
		return true
	}
	return roleRank(r) >= roleRank(required)
}

// Identity is a verified bearer credential resolved to a stable account id.
type Identity struct {
	AccountID string
	Email     string
}

// TokenVerifier validates a raw bearer token against the identity
// provider. ok=false is the normal guest outcome for missing, malformed,
// or expired tokens; err is reserved for provider failures.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (identity Identity, ok bool, err error)
}

// ParseBearer extracts the token from an Authorization header value.
// Anything other than a Bearer scheme yields the empty token, which the
// gate treats as an anonymous request.
func ParseBearer(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// DirectoryRecord is the account state the gate needs for a decision.
// The owning module normalizes raw stored values before they cross this
// port, so Role here is always a member of the closed set.
type DirectoryRecord struct {
	Role     Role
	Approved bool
}

// Directory resolves a verified account id to its stored role and
// approval state. found=false means no record exists, which is a
// distinct outcome from a record whose stored role was unrecognized.
type Directory interface {
	Lookup(ctx context.Context, accountID string) (record DirectoryRecord, found bool, err error)
}

// Policy states what a protected surface requires from the caller.
type Policy struct {
	RequireRole     Role
	RequireApproved bool
}

// DenyReason is the closed set of denial causes.
type DenyReason string

const (
	DenyUnauthenticated  DenyReason = "unauthenticated"
	DenyNotFound         DenyReason = "not_found"
	DenyPendingApproval  DenyReason = "pending_approval"
	DenyInsufficientRole DenyReason = "insufficient_role"
	DenyUnavailable      DenyReason = "unavailable"
)

// Decision is the gate's verdict for one request.
type Decision struct {
	Allowed  bool
	Reason   DenyReason
	Identity Identity
	Role     Role
}

func Allow(identity Identity, role Role) Decision {
	return Decision{Allowed: true, Identity: identity, Role: role}
}

func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}
