package application

import (
	"sync"

	"vesalius/contexts/identity-access/authorization-service/ports"
)

// Navigation targets for denied page requests. Page denials redirect
// instead of rendering an error; API denials keep the JSON envelope.
const (
	SignInPath           = "/signin"
	AwaitingApprovalPath = "/awaiting-approval"
	DashboardPath        = "/dashboard"
)

// RedirectFor maps a denial onto its navigation target. Allowed
// decisions map to the empty string.
func RedirectFor(decision ports.Decision) string {
	if decision.Allowed {
		return ""
	}
	switch decision.Reason {
	case ports.DenyUnauthenticated, ports.DenyUnavailable:
		return SignInPath
	case ports.DenyPendingApproval:
		return AwaitingApprovalPath
	default:
		return DashboardPath
	}
}

// PageGuard issues at most one redirect per mount. Repeated denial
// evaluations after the first are suppressed until Reset, which breaks
// redirect loops when the client re-evaluates without remounting. The
// server-side gate stays the security boundary; this is navigation UX.
type PageGuard struct {
	mu         sync.Mutex
	redirected bool
}

// Evaluate returns the redirect target and whether the caller should
// act on it now.
func (g *PageGuard) Evaluate(decision ports.Decision) (string, bool) {
	target := RedirectFor(decision)
	if target == "" {
		return "", false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.redirected {
		return target, false
	}
	g.redirected = true
	return target, true
}

// Reset rearms the guard, modeling a remount.
func (g *PageGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.redirected = false
}
