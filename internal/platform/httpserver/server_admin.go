package httpserver

import (
	"encoding/json"
	"net/http"

	accountshttp "vesalius/contexts/identity-access/account-service/transport/http"
	authzports "vesalius/contexts/identity-access/authorization-service/ports"
)

var adminPolicy = authzports.Policy{RequireRole: authzports.RoleAdmin}

func (s *Server) handleApproveUser(w http.ResponseWriter, r *http.Request) {
	decision, ok := s.authorize(w, r, adminPolicy)
	if !ok {
		return
	}
	if !s.throttle(w, r, "admin_approve", decision.Identity.AccountID, s.limits.AdminLimit, s.limits.AdminWindow) {
		return
	}

	var req accountshttp.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.accounts.Handler.ApproveHandler(r.Context(), decision.Identity.AccountID, req)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectUser(w http.ResponseWriter, r *http.Request) {
	decision, ok := s.authorize(w, r, adminPolicy)
	if !ok {
		return
	}
	if !s.throttle(w, r, "admin_reject", decision.Identity.AccountID, s.limits.AdminLimit, s.limits.AdminWindow) {
		return
	}

	var req accountshttp.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.accounts.Handler.RejectHandler(r.Context(), decision.Identity.AccountID, req)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, adminPolicy); !ok {
		return
	}

	resp, err := s.accounts.Handler.ListUsersHandler(r.Context())
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDeleteUser anonymizes the account and rewrites article bylines.
// The account mutation is the durable step; the byline rewrite is
// retried by re-issuing the delete, which is idempotent.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	decision, ok := s.authorize(w, r, adminPolicy)
	if !ok {
		return
	}
	if !s.throttle(w, r, "admin_delete", decision.Identity.AccountID, s.limits.AdminLimit, s.limits.AdminWindow) {
		return
	}

	var req accountshttp.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.accounts.Handler.DeleteUserHandler(r.Context(), req)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}

	if _, err := s.articles.AnonymizeAuthor.Execute(r.Context(), resp.Data.AccountID); err != nil {
		s.logger.Warn("article byline anonymization failed",
			"event", "http_delete_user_byline_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"account_id", resp.Data.AccountID,
			"error", err.Error(),
		)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, adminPolicy); !ok {
		return
	}

	resp, err := s.accounts.Handler.OverviewHandler(r.Context())
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
