package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	newslettererrors "vesalius/contexts/community-experience/newsletter-service/domain/errors"
	newsletterhttp "vesalius/contexts/community-experience/newsletter-service/transport/http"
)

func writeNewsletterDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, newslettererrors.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, newslettererrors.ErrTokenNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, newslettererrors.ErrAlreadyConfirmed):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Newsletter endpoints are anonymous; throttling keys on client address.
func (s *Server) handleNewsletterSubscribe(w http.ResponseWriter, r *http.Request) {
	if !s.throttle(w, r, "newsletter_subscribe", "", s.limits.PublicLimit, s.limits.PublicWindow) {
		return
	}

	var req newsletterhttp.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.newsletter.Handler.SubscribeHandler(r.Context(), req)
	if err != nil {
		writeNewsletterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (s *Server) handleNewsletterConfirm(w http.ResponseWriter, r *http.Request) {
	if !s.throttle(w, r, "newsletter_confirm", "", s.limits.PublicLimit, s.limits.PublicWindow) {
		return
	}

	var req newsletterhttp.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.newsletter.Handler.ConfirmHandler(r.Context(), req)
	if err != nil {
		writeNewsletterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNewsletterUnsubscribe(w http.ResponseWriter, r *http.Request) {
	if !s.throttle(w, r, "newsletter_unsubscribe", "", s.limits.PublicLimit, s.limits.PublicWindow) {
		return
	}

	var req newsletterhttp.UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.newsletter.Handler.UnsubscribeHandler(r.Context(), req)
	if err != nil {
		writeNewsletterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
