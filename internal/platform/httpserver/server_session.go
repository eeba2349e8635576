package httpserver

import (
	"net/http"

	"vesalius/contexts/identity-access/authorization-service/application"
	authzports "vesalius/contexts/identity-access/authorization-service/ports"
)

// sessionResponse tells a page shell where the caller stands and where
// to navigate when the current page is not theirs to see.
type sessionResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Authenticated bool   `json:"authenticated"`
		AccountID     string `json:"account_id,omitempty"`
		Role          string `json:"role,omitempty"`
		Reason        string `json:"reason,omitempty"`
		RedirectTo    string `json:"redirect_to,omitempty"`
	} `json:"data"`
}

// handleSession evaluates the caller against the approved-member policy
// and answers with a navigation target instead of a denial status. Page
// shells poll this on mount; a fresh guard per request keeps one
// caller's suppression from leaking into another's.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if !s.throttle(w, r, "auth_session", "", s.limits.PublicLimit, s.limits.PublicWindow) {
		return
	}

	policy := authzports.Policy{RequireApproved: true}
	decision := s.authorization.Gate.AuthorizeHeader(r.Context(), r.Header.Get("Authorization"), policy)

	guard := &application.PageGuard{}
	target, _ := guard.Evaluate(decision)

	resp := sessionResponse{Success: true}
	resp.Data.Authenticated = decision.Allowed
	resp.Data.AccountID = decision.Identity.AccountID
	resp.Data.Role = string(decision.Role)
	resp.Data.Reason = string(decision.Reason)
	resp.Data.RedirectTo = target
	writeJSON(w, http.StatusOK, resp)
}
