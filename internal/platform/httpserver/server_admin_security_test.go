package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminEndpointsRequireAuthentication(t *testing.T) {
	env := newTestServer()

	requests := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/admin/users/approve", bytes.NewReader([]byte(`{"user_id":"u1"}`))),
		httptest.NewRequest(http.MethodPost, "/admin/users/reject", bytes.NewReader([]byte(`{"user_id":"u1"}`))),
		httptest.NewRequest(http.MethodGet, "/admin/users/list", nil),
		httptest.NewRequest(http.MethodPost, "/admin/users/delete", bytes.NewReader([]byte(`{"user_id":"u1"}`))),
		httptest.NewRequest(http.MethodGet, "/admin/overview", nil),
	}
	for _, req := range requests {
		rr := httptest.NewRecorder()
		env.server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d body=%s", req.Method, req.URL.Path, rr.Code, rr.Body.String())
		}
	}
}

func TestAnonymousAdminRequestNeverReachesDirectory(t *testing.T) {
	env := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if env.directory.Lookups() != 0 {
		t.Fatalf("anonymous denial must not touch the account store, got %d lookups", env.directory.Lookups())
	}
}

func TestAdminEndpointsRejectNonAdmins(t *testing.T) {
	env := newTestServer()
	env.seedAccount(patientAccount("acc_patient"), "tok_patient")

	req := httptest.NewRequest(http.MethodGet, "/admin/users/list", nil)
	req.Header.Set("Authorization", "Bearer tok_patient")
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("denial must be a JSON envelope: %v", err)
	}
	if envelope.Success {
		t.Fatal("denial envelope must report success=false")
	}
}

func TestApproveThenReplayConflicts(t *testing.T) {
	env := newTestServer()
	env.seedAdmin("acc_admin", "tok_admin")
	env.seedPendingProfessional("acc_prof", "tok_prof")

	approve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/users/approve", bytes.NewReader([]byte(`{"user_id":"acc_prof"}`)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer tok_admin")
		rr := httptest.NewRecorder()
		env.server.mux.ServeHTTP(rr, req)
		return rr
	}

	first := approve()
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", first.Code, first.Body.String())
	}
	second := approve()
	if second.Code != http.StatusConflict {
		t.Fatalf("replayed decision must conflict, got %d body=%s", second.Code, second.Body.String())
	}
}

func TestRejectCarriesReasonAndDeliversNotification(t *testing.T) {
	env := newTestServer()
	env.seedAdmin("acc_admin", "tok_admin")
	env.seedPendingProfessional("acc_prof", "tok_prof")

	body := []byte(`{"user_id":"acc_prof","reason":"missing license number"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/users/reject", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok_admin")
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	sent := env.notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one decision email, got %d", len(sent))
	}
	if sent[0].Data["approved"] != false || sent[0].Data["reason"] != "missing license number" {
		t.Fatalf("notification must carry decision and reason, got %+v", sent[0].Data)
	}
}

func TestApproveUnknownAccountReturnsNotFound(t *testing.T) {
	env := newTestServer()
	env.seedAdmin("acc_admin", "tok_admin")

	req := httptest.NewRequest(http.MethodPost, "/admin/users/approve", bytes.NewReader([]byte(`{"user_id":"acc_nobody"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok_admin")
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
