package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vesalius/contexts/identity-access/authorization-service/ports"
)

// StaticVerifier resolves tokens from a fixed token -> identity table.
// Tests register tokens up front; anything else is a guest.
type StaticVerifier struct {
	mu         sync.RWMutex
	identities map[string]ports.Identity
	fail       bool
}

func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{identities: make(map[string]ports.Identity)}
}

func (v *StaticVerifier) Register(token string, identity ports.Identity) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.identities[token] = identity
}

// SetFail makes every verification report a provider failure.
func (v *StaticVerifier) SetFail(fail bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fail = fail
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (ports.Identity, bool, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.fail {
		return ports.Identity{}, false, errors.New("identity provider unavailable")
	}
	identity, ok := v.identities[strings.TrimSpace(token)]
	return identity, ok, nil
}

// StubDirectory is an in-memory directory that counts lookups, so tests
// can assert that denied-before-lookup paths never touch the store.
type StubDirectory struct {
	mu      sync.Mutex
	records map[string]ports.DirectoryRecord
	fail    bool
	lookups int
}

func NewStubDirectory() *StubDirectory {
	return &StubDirectory{records: make(map[string]ports.DirectoryRecord)}
}

func (d *StubDirectory) Put(accountID string, record ports.DirectoryRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[accountID] = record
}

// SetFail makes every lookup report a store failure.
func (d *StubDirectory) SetFail(fail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail = fail
}

// Lookups reports how many lookups have been attempted.
func (d *StubDirectory) Lookups() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookups
}

func (d *StubDirectory) Lookup(_ context.Context, accountID string) (ports.DirectoryRecord, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	if d.fail {
		return ports.DirectoryRecord{}, false, errors.New("directory unavailable")
	}
	record, found := d.records[accountID]
	return record, found, nil
}
