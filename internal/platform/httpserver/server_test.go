package httpserver

import (
	"context"
	"sync"
	"time"

	accounts "vesalius/contexts/identity-access/account-service"
	accountsmemory "vesalius/contexts/identity-access/account-service/adapters/memory"
	accountsports "vesalius/contexts/identity-access/account-service/ports"
	authorization "vesalius/contexts/identity-access/authorization-service"
	authzmemory "vesalius/contexts/identity-access/authorization-service/adapters/memory"
	authzports "vesalius/contexts/identity-access/authorization-service/ports"

	newsletter "vesalius/contexts/community-experience/newsletter-service"
	newslettermemory "vesalius/contexts/community-experience/newsletter-service/adapters/memory"
	articles "vesalius/contexts/knowledge-base/article-service"
	"vesalius/internal/platform/ratelimit"
)

// storeDirectory bridges the account store into the gate's Directory
// port, the same mapping runtime wiring uses, with lookup counting for
// denied-before-lookup assertions.
type storeDirectory struct {
	mu      sync.Mutex
	store   *accountsmemory.Store
	lookups int
	failErr error
}

func (d *storeDirectory) Lookup(ctx context.Context, accountID string) (authzports.DirectoryRecord, bool, error) {
	d.mu.Lock()
	d.lookups++
	failErr := d.failErr
	d.mu.Unlock()
	if failErr != nil {
		return authzports.DirectoryRecord{}, false, failErr
	}

	account, found, err := d.store.GetAccount(ctx, accountID)
	if err != nil || !found {
		return authzports.DirectoryRecord{}, false, err
	}
	return authzports.DirectoryRecord{
		Role:     authzports.Role(account.Role),
		Approved: account.ApprovalStatus == accountsports.ApprovalApproved,
	}, true, nil
}

func (d *storeDirectory) SetFail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failErr = err
}

func (d *storeDirectory) Lookups() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookups
}

const testImageURL = "https://cdn.example.com/img/test.png"

// staticImages answers every generation request with a fixed URL.
type staticImages struct{}

func (staticImages) Generate(_ context.Context, _ string) (string, error) {
	return testImageURL, nil
}

type testEnv struct {
	server    *Server
	verifier  *authzmemory.StaticVerifier
	directory *storeDirectory
	accounts  accounts.Module
	notifier  *accountsmemory.RecordingNotifier
}

func newTestEnv(limits RateLimits) *testEnv {
	verifier := authzmemory.NewStaticVerifier()
	notifier := &accountsmemory.RecordingNotifier{}
	accountsModule := accounts.NewInMemoryModule(notifier, nil, nil)
	directory := &storeDirectory{store: accountsModule.Store}
	authzModule := authorization.NewModule(authorization.Dependencies{
		Verifier:  verifier,
		Directory: directory,
	})
	newsletterModule := newsletter.NewInMemoryModule(&newslettermemory.RecordingNotifier{}, nil)
	articlesModule := articles.NewInMemoryModule(staticImages{}, nil)

	server := New(
		accountsModule,
		authzModule,
		newsletterModule,
		articlesModule,
		ratelimit.New(nil),
		limits,
		nil,
		":0",
	)
	return &testEnv{
		server:    server,
		verifier:  verifier,
		directory: directory,
		accounts:  accountsModule,
		notifier:  notifier,
	}
}

func newTestServer() *testEnv {
	return newTestEnv(RateLimits{
		AdminLimit:   100,
		AdminWindow:  time.Minute,
		PublicLimit:  100,
		PublicWindow: time.Minute,
	})
}

// seedAccount bypasses registration so tests can create admins and
// arbitrary states directly.
func (e *testEnv) seedAccount(account accountsports.Account, token string) {
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
		account.UpdatedAt = now
	}
	_, err := e.accounts.Store.CreateAccount(context.Background(), accountsports.CreateAccountInput{Account: account})
	if err != nil {
		panic(err)
	}
	e.verifier.Register(token, authzports.Identity{AccountID: account.AccountID, Email: account.Email})
}

func patientAccount(accountID string) accountsports.Account {
	return accountsports.Account{
		AccountID:      accountID,
		Email:          accountID + "@example.com",
		Role:           accountsports.RolePatient,
		ApprovalStatus: accountsports.ApprovalApproved,
	}
}

func approvedProfessional(accountID string) accountsports.Account {
	return accountsports.Account{
		AccountID:      accountID,
		Email:          accountID + "@example.com",
		Role:           accountsports.RoleProfessional,
		ApprovalStatus: accountsports.ApprovalApproved,
		ProfessionalMeta: &accountsports.ProfessionalMeta{
			LicenseNumber: "MD-" + accountID,
		},
	}
}

func (e *testEnv) seedAdmin(accountID string, token string) {
	e.seedAccount(accountsports.Account{
		AccountID:      accountID,
		Email:          accountID + "@example.com",
		Role:           accountsports.RoleAdmin,
		ApprovalStatus: accountsports.ApprovalApproved,
	}, token)
}

func (e *testEnv) seedPendingProfessional(accountID string, token string) {
	now := time.Now().UTC()
	_, err := e.accounts.Store.CreateAccount(context.Background(), accountsports.CreateAccountInput{
		Account: accountsports.Account{
			AccountID:      accountID,
			Email:          accountID + "@example.com",
			Role:           accountsports.RoleProfessional,
			ApprovalStatus: accountsports.ApprovalPending,
			ProfessionalMeta: &accountsports.ProfessionalMeta{
				LicenseNumber: "MD-" + accountID,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		ApprovalRequestID: "req_" + accountID,
	})
	if err != nil {
		panic(err)
	}
	e.verifier.Register(token, authzports.Identity{AccountID: accountID, Email: accountID + "@example.com"})
}
