package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMutatingEndpointThrottledWith429(t *testing.T) {
	env := newTestEnv(RateLimits{
		AdminLimit:   3,
		AdminWindow:  time.Second,
		PublicLimit:  3,
		PublicWindow: time.Second,
	})

	subscribe := func() *httptest.ResponseRecorder {
		body := []byte(`{"email":"reader@example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/newsletter/subscribe", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.7:4242"
		rr := httptest.NewRecorder()
		env.server.mux.ServeHTTP(rr, req)
		return rr
	}

	for i := 0; i < 3; i++ {
		if rr := subscribe(); rr.Code != http.StatusAccepted {
			t.Fatalf("request %d: expected 202, got %d body=%s", i+1, rr.Code, rr.Body.String())
		}
	}

	rr := subscribe()
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("fourth request must be throttled, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("throttled response must carry Retry-After")
	}
}

func TestThrottleKeysAreIndependentPerCaller(t *testing.T) {
	env := newTestEnv(RateLimits{
		AdminLimit:   1,
		AdminWindow:  time.Minute,
		PublicLimit:  1,
		PublicWindow: time.Minute,
	})

	subscribe := func(remoteAddr string) *httptest.ResponseRecorder {
		body := []byte(`{"email":"reader@example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/newsletter/subscribe", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		env.server.mux.ServeHTTP(rr, req)
		return rr
	}

	if rr := subscribe("203.0.113.1:1000"); rr.Code != http.StatusAccepted {
		t.Fatalf("first caller must pass, got %d", rr.Code)
	}
	if rr := subscribe("203.0.113.1:1000"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("first caller second call must throttle, got %d", rr.Code)
	}
	if rr := subscribe("203.0.113.2:1000"); rr.Code != http.StatusAccepted {
		t.Fatalf("second caller must have its own bucket, got %d", rr.Code)
	}
}

func TestForwardedForIgnoredFromPublicPeer(t *testing.T) {
	env := newTestEnv(RateLimits{
		AdminLimit:   1,
		AdminWindow:  time.Minute,
		PublicLimit:  1,
		PublicWindow: time.Minute,
	})

	subscribe := func(forwarded string) *httptest.ResponseRecorder {
		body := []byte(`{"email":"reader@example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/newsletter/subscribe", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwarded)
		req.RemoteAddr = "203.0.113.9:1000"
		rr := httptest.NewRecorder()
		env.server.mux.ServeHTTP(rr, req)
		return rr
	}

	if rr := subscribe("198.51.100.1"); rr.Code != http.StatusAccepted {
		t.Fatalf("first call must pass, got %d", rr.Code)
	}
	if rr := subscribe("198.51.100.2"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("a public peer must not mint buckets via X-Forwarded-For, got %d", rr.Code)
	}
}

func TestForwardedForFirstHopHonoredBehindProxy(t *testing.T) {
	env := newTestEnv(RateLimits{
		AdminLimit:   1,
		AdminWindow:  time.Minute,
		PublicLimit:  1,
		PublicWindow: time.Minute,
	})

	subscribe := func(forwarded string) *httptest.ResponseRecorder {
		body := []byte(`{"email":"reader@example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/newsletter/subscribe", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwarded)
		req.RemoteAddr = "127.0.0.1:9000"
		rr := httptest.NewRecorder()
		env.server.mux.ServeHTTP(rr, req)
		return rr
	}

	if rr := subscribe("198.51.100.1, 10.0.0.5"); rr.Code != http.StatusAccepted {
		t.Fatalf("first client must pass, got %d", rr.Code)
	}
	if rr := subscribe("198.51.100.1, 10.0.0.6"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("same first hop must share the bucket, got %d", rr.Code)
	}
	if rr := subscribe("198.51.100.2, 10.0.0.5"); rr.Code != http.StatusAccepted {
		t.Fatalf("different first hop behind the proxy must have its own bucket, got %d", rr.Code)
	}
}
