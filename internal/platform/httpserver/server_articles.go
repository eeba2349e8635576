package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authzports "vesalius/contexts/identity-access/authorization-service/ports"
	articleserrors "vesalius/contexts/knowledge-base/article-service/domain/errors"
	articleshttp "vesalius/contexts/knowledge-base/article-service/transport/http"
)

// authoringPolicy restricts publishing to approved professionals and
// admins. Pending or rejected professionals are denied, not queued.
var authoringPolicy = authzports.Policy{
	RequireRole:     authzports.RoleProfessional,
	RequireApproved: true,
}

func writeArticlesDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, articleserrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, articleserrors.ErrArticleNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, articleserrors.ErrNotArticleAuthor):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	resp, err := s.articles.Handler.ListArticlesHandler(r.Context())
	if err != nil {
		writeArticlesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchArticles(w http.ResponseWriter, r *http.Request) {
	resp, err := s.articles.Handler.SearchHandler(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeArticlesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	resp, err := s.articles.Handler.GetArticleHandler(r.Context(), r.PathValue("article_id"))
	if err != nil {
		writeArticlesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublishArticle(w http.ResponseWriter, r *http.Request) {
	decision, ok := s.authorize(w, r, authoringPolicy)
	if !ok {
		return
	}
	if !s.throttle(w, r, "articles_publish", decision.Identity.AccountID, s.limits.PublicLimit, s.limits.PublicWindow) {
		return
	}

	var req articleshttp.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	authorName := s.resolveAuthorName(r, decision.Identity.AccountID)
	resp, err := s.articles.Handler.PublishHandler(r.Context(), decision.Identity.AccountID, authorName, req)
	if err != nil {
		writeArticlesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleIllustrateArticle(w http.ResponseWriter, r *http.Request) {
	decision, ok := s.authorize(w, r, authoringPolicy)
	if !ok {
		return
	}
	if !s.throttle(w, r, "articles_illustrate", decision.Identity.AccountID, s.limits.PublicLimit, s.limits.PublicWindow) {
		return
	}

	var req articleshttp.IllustrateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.articles.Handler.IllustrateHandler(r.Context(), decision.Identity.AccountID, r.PathValue("article_id"), req)
	if err != nil {
		writeArticlesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolveAuthorName reads the display name from the account record so
// the byline reflects the profile, not client input.
func (s *Server) resolveAuthorName(r *http.Request, accountID string) string {
	account, found, err := s.accounts.Handler.GetAccount.Execute(r.Context(), accountID)
	if err != nil || !found {
		return ""
	}
	return account.DisplayName
}
