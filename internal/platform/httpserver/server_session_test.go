package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vesalius/contexts/identity-access/authorization-service/application"
)

type sessionData struct {
	Authenticated bool   `json:"authenticated"`
	AccountID     string `json:"account_id"`
	Role          string `json:"role"`
	Reason        string `json:"reason"`
	RedirectTo    string `json:"redirect_to"`
}

func getSession(t *testing.T, env *testEnv, token string) sessionData {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("session check must answer 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Success bool        `json:"success"`
		Data    sessionData `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Data
}

func TestSessionAnonymousRedirectsToSignIn(t *testing.T) {
	env := newTestServer()

	data := getSession(t, env, "")
	if data.Authenticated {
		t.Fatal("anonymous caller must not be authenticated")
	}
	if data.RedirectTo != application.SignInPath {
		t.Fatalf("expected redirect to %s, got %q", application.SignInPath, data.RedirectTo)
	}
}

func TestSessionPendingProfessionalRedirectsToAwaitingApproval(t *testing.T) {
	env := newTestServer()
	env.seedPendingProfessional("acc_sess_pend", "tok_sess_pend")

	data := getSession(t, env, "tok_sess_pend")
	if data.Authenticated {
		t.Fatal("pending professional must not pass the approved-member policy")
	}
	if data.RedirectTo != application.AwaitingApprovalPath {
		t.Fatalf("expected redirect to %s, got %q", application.AwaitingApprovalPath, data.RedirectTo)
	}
}

func TestSessionApprovedMemberStaysPut(t *testing.T) {
	env := newTestServer()
	env.seedAccount(patientAccount("acc_sess_ok"), "tok_sess_ok")

	data := getSession(t, env, "tok_sess_ok")
	if !data.Authenticated {
		t.Fatal("approved member must be authenticated")
	}
	if data.RedirectTo != "" {
		t.Fatalf("approved member must not be redirected, got %q", data.RedirectTo)
	}
	if data.AccountID != "acc_sess_ok" || data.Role != "patient" {
		t.Fatalf("session must report the resolved identity, got %+v", data)
	}
}

func TestSessionDirectoryOutageRedirectsToSignIn(t *testing.T) {
	env := newTestServer()
	env.seedAccount(patientAccount("acc_sess_out"), "tok_sess_out")
	env.directory.SetFail(errors.New("directory unreachable"))

	data := getSession(t, env, "tok_sess_out")
	if data.Authenticated {
		t.Fatal("directory outage must fail closed")
	}
	if data.RedirectTo != application.SignInPath {
		t.Fatalf("expected redirect to %s, got %q", application.SignInPath, data.RedirectTo)
	}
}
