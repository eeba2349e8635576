package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	accountserrors "vesalius/contexts/identity-access/account-service/domain/errors"
	accountshttp "vesalius/contexts/identity-access/account-service/transport/http"
	authzports "vesalius/contexts/identity-access/authorization-service/ports"
)

func writeAccountsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accountserrors.ErrInvalidRequest),
		errors.Is(err, accountserrors.ErrInvalidRole),
		errors.Is(err, accountserrors.ErrInvalidDecision),
		errors.Is(err, accountserrors.ErrMissingLicense):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, accountserrors.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, accountserrors.ErrAccountExists),
		errors.Is(err, accountserrors.ErrNotPending),
		errors.Is(err, accountserrors.ErrNotRejected):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// handleRegister creates the caller's account record. Any verified
// identity may register; the role in the body chooses patient or
// professional, never admin.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	decision, ok := s.authorize(w, r, authzports.Policy{})
	if !ok {
		return
	}
	if !s.throttle(w, r, "accounts_register", decision.Identity.AccountID, s.limits.PublicLimit, s.limits.PublicWindow) {
		return
	}

	var req accountshttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if req.Email == "" {
		req.Email = decision.Identity.Email
	}

	resp, err := s.accounts.Handler.RegisterHandler(r.Context(), decision.Identity.AccountID, req)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleReapply re-opens the approval queue for the caller's rejected
// professional account. Any other approval state conflicts.
func (s *Server) handleReapply(w http.ResponseWriter, r *http.Request) {
	decision, ok := s.authorize(w, r, authzports.Policy{})
	if !ok {
		return
	}
	if !s.throttle(w, r, "accounts_reapply", decision.Identity.AccountID, s.limits.PublicLimit, s.limits.PublicWindow) {
		return
	}

	resp, err := s.accounts.Handler.ReapplyHandler(r.Context(), decision.Identity.AccountID)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAccountStatus(w http.ResponseWriter, r *http.Request) {
	decision, ok := s.authorize(w, r, authzports.Policy{})
	if !ok {
		return
	}

	resp, err := s.accounts.Handler.StatusHandler(r.Context(), decision.Identity.AccountID)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
