package httpserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	accounts "vesalius/contexts/identity-access/account-service"
	authorization "vesalius/contexts/identity-access/authorization-service"
	authzports "vesalius/contexts/identity-access/authorization-service/ports"

	newsletter "vesalius/contexts/community-experience/newsletter-service"
	articles "vesalius/contexts/knowledge-base/article-service"
	"vesalius/internal/platform/ratelimit"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "vesalius/internal/platform/httpserver/docs"
)

// RateLimits carries the per-surface throttle knobs.
type RateLimits struct {
	AdminLimit   int
	AdminWindow  time.Duration
	PublicLimit  int
	PublicWindow time.Duration
}

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	accounts      accounts.Module
	authorization authorization.Module
	newsletter    newsletter.Module
	articles      articles.Module
	limiter       *ratelimit.Limiter
	limits        RateLimits
}

func New(
	accountsModule accounts.Module,
	authorizationModule authorization.Module,
	newsletterModule newsletter.Module,
	articlesModule articles.Module,
	limiter *ratelimit.Limiter,
	limits RateLimits,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if limiter == nil {
		limiter = ratelimit.New(nil)
	}
	if limits.AdminLimit <= 0 {
		limits.AdminLimit = 30
	}
	if limits.AdminWindow <= 0 {
		limits.AdminWindow = time.Minute
	}
	if limits.PublicLimit <= 0 {
		limits.PublicLimit = 10
	}
	if limits.PublicWindow <= 0 {
		limits.PublicWindow = time.Minute
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		accounts:      accountsModule,
		authorization: authorizationModule,
		newsletter:    newsletterModule,
		articles:      articlesModule,
		limiter:       limiter,
		limits:        limits,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/accounts/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/accounts/reapply", s.handleReapply)
	s.mux.HandleFunc("GET /api/accounts/me", s.handleAccountStatus)
	s.mux.HandleFunc("GET /auth/session", s.handleSession)

	s.mux.HandleFunc("POST /admin/users/approve", s.handleApproveUser)
	s.mux.HandleFunc("POST /admin/users/reject", s.handleRejectUser)
	s.mux.HandleFunc("GET /admin/users/list", s.handleListUsers)
	s.mux.HandleFunc("POST /admin/users/delete", s.handleDeleteUser)
	s.mux.HandleFunc("GET /admin/overview", s.handleOverview)

	s.mux.HandleFunc("POST /api/newsletter/subscribe", s.handleNewsletterSubscribe)
	s.mux.HandleFunc("POST /api/newsletter/confirm", s.handleNewsletterConfirm)
	s.mux.HandleFunc("POST /api/newsletter/unsubscribe", s.handleNewsletterUnsubscribe)

	s.mux.HandleFunc("GET /api/articles", s.handleListArticles)
	s.mux.HandleFunc("GET /api/articles/search", s.handleSearchArticles)
	s.mux.HandleFunc("GET /api/articles/{article_id}", s.handleGetArticle)
	s.mux.HandleFunc("POST /api/articles", s.handlePublishArticle)
	s.mux.HandleFunc("POST /api/articles/{article_id}/illustration", s.handleIllustrateArticle)
}

// errorEnvelope is the stable API denial/error shape.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, Error: message})
}

// authorize runs the gate for the request and writes the denial when the
// policy is not met. The boolean reports whether the handler may proceed.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, policy authzports.Policy) (authzports.Decision, bool) {
	decision := s.authorization.Gate.AuthorizeHeader(r.Context(), r.Header.Get("Authorization"), policy)
	if decision.Allowed {
		return decision, true
	}

	switch decision.Reason {
	case authzports.DenyUnauthenticated:
		writeError(w, http.StatusUnauthorized, "authentication required")
	case authzports.DenyUnavailable:
		writeError(w, http.StatusInternalServerError, "authorization temporarily unavailable")
	case authzports.DenyPendingApproval:
		writeError(w, http.StatusForbidden, "account approval pending")
	default:
		writeError(w, http.StatusForbidden, "access denied")
	}
	return decision, false
}

// throttle consumes one rate-limit permit for the caller on this route.
// Keys combine the route with the account id when authenticated, the
// client address otherwise.
func (s *Server) throttle(w http.ResponseWriter, r *http.Request, route string, caller string, limit int, window time.Duration) bool {
	if caller == "" {
		caller = resolveClientIP(r)
	}
	result := s.limiter.Check(route+"|"+caller, limit, window)

	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", result.ResetAt.UTC().Format(time.RFC3339))
	if !result.Allowed {
		retryAfter := int(time.Until(result.ResetAt).Seconds()) + 1
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeError(w, http.StatusTooManyRequests, fmt.Sprintf("rate limit exceeded, retry after %ds", retryAfter))
		return false
	}
	return true
}

// resolveClientIP keys anonymous throttling by the direct peer address.
// X-Forwarded-For is honoured, first hop only, when the direct peer is a
// loopback or private address (our own reverse proxy); a public peer
// cannot mint fresh buckets by fabricating the header.
func resolveClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	peer := net.ParseIP(host)
	if peer == nil || !(peer.IsLoopback() || peer.IsPrivate()) {
		return host
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return host
	}
	first, _, _ := strings.Cut(forwarded, ",")
	if first = strings.TrimSpace(first); first != "" {
		return first
	}
	return host
}
