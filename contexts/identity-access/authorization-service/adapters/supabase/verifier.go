package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vesalius/contexts/identity-access/authorization-service/ports"
)

// Config holds the auth provider connection settings.
type Config struct {
	URL       string
	AnonKey   string
	JWTSecret string
}

// Verifier validates bearer tokens issued by the hosted auth provider.
// When a JWT secret is configured the signature is checked locally,
// avoiding a network round trip; otherwise verification falls back to
// the provider's user endpoint.
type Verifier struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

func NewVerifier(config Config, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (ports.Identity, bool, error) {
	if token == "" {
		return ports.Identity{}, false, nil
	}

	if v.config.JWTSecret != "" {
		if identity, ok := v.verifyLocal(token); ok {
			return identity, true, nil
		}
	}
	return v.verifyRemote(ctx, token)
}

func (v *Verifier) verifyLocal(token string) (ports.Identity, bool) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(v.config.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return ports.Identity{}, false
	}

	identity := ports.Identity{
		AccountID: stringClaim(claims, "sub"),
		Email:     stringClaim(claims, "email"),
	}
	if identity.AccountID == "" {
		return ports.Identity{}, false
	}
	return identity, true
}

func (v *Verifier) verifyRemote(ctx context.Context, token string) (ports.Identity, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.config.URL+"/auth/v1/user", nil)
	if err != nil {
		return ports.Identity{}, false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.config.AnonKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return ports.Identity{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// An invalid or expired token is a normal guest outcome, not a
		// provider failure.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return ports.Identity{}, false, nil
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ports.Identity{}, false, err
	}
	if payload.ID == "" {
		return ports.Identity{}, false, nil
	}
	return ports.Identity{AccountID: payload.ID, Email: payload.Email}, true, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}
