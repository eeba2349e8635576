package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	contractsv1 "vesalius/contracts/gen/events/v1"
	domainerrors "vesalius/contexts/identity-access/account-service/domain/errors"
	"vesalius/contexts/identity-access/account-service/ports"
	"vesalius/internal/shared/outbox"
)

type outboxRecord struct {
	OutboxID    string
	EventType   string
	Payload     []byte
	Status      string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// Store is the in-memory repository used by tests and local development.
// One mutex guards accounts, requests, and outbox rows together, so the
// decide mutation is observable only as a whole.
type Store struct {
	mu sync.RWMutex

	accountsByID map[string]ports.Account
	requestsByID map[string]ports.ApprovalRequest
	outboxByID   map[string]outboxRecord
	nowOverride  func() time.Time
}

func NewStore() *Store {
	return &Store{
		accountsByID: make(map[string]ports.Account),
		requestsByID: make(map[string]ports.ApprovalRequest),
		outboxByID:   make(map[string]outboxRecord),
	}
}

// SetNow pins the store clock for deterministic tests.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowOverride = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	override := s.nowOverride
	s.mu.RUnlock()
	if override != nil {
		return override().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateAccount(_ context.Context, input ports.CreateAccountInput) (ports.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := input.Account
	if _, exists := s.accountsByID[account.AccountID]; exists {
		return ports.Account{}, domainerrors.ErrAccountExists
	}
	s.accountsByID[account.AccountID] = account

	if input.ApprovalRequestID != "" {
		s.requestsByID[input.ApprovalRequestID] = ports.ApprovalRequest{
			RequestID:   input.ApprovalRequestID,
			AccountID:   account.AccountID,
			SubmittedAt: account.CreatedAt,
		}
	}

	s.appendOutbox(input.OutboxID, contractsv1.EventTypeAccountRegistered, account.AccountID, account.CreatedAt, map[string]any{
		"account_id":      account.AccountID,
		"role":            string(account.Role),
		"approval_status": string(account.ApprovalStatus),
	})
	return account, nil
}

func (s *Store) GetAccount(_ context.Context, accountID string) (ports.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, found := s.accountsByID[strings.TrimSpace(accountID)]
	if !found {
		return ports.Account{}, false, nil
	}
	return account, true, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]ports.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Account, 0, len(s.accountsByID))
	for _, account := range s.accountsByID {
		items = append(items, account)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].AccountID < items[j].AccountID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListPendingRequests(_ context.Context) ([]ports.ApprovalRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.ApprovalRequest, 0)
	for _, request := range s.requestsByID {
		if request.ResolvedAt == nil {
			items = append(items, request)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].SubmittedAt.Equal(items[j].SubmittedAt) {
			return items[i].RequestID < items[j].RequestID
		}
		return items[i].SubmittedAt.Before(items[j].SubmittedAt)
	})
	return items, nil
}

func (s *Store) DecideRequest(_ context.Context, input ports.DecideInput) (ports.DecideResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, found := s.accountsByID[input.AccountID]
	if !found {
		return ports.DecideResult{}, domainerrors.ErrAccountNotFound
	}
	if account.Role != ports.RoleProfessional || account.ApprovalStatus != ports.ApprovalPending {
		return ports.DecideResult{}, domainerrors.ErrNotPending
	}

	var open *ports.ApprovalRequest
	for id := range s.requestsByID {
		request := s.requestsByID[id]
		if request.AccountID == input.AccountID && request.ResolvedAt == nil {
			open = &request
			break
		}
	}
	if open == nil {
		return ports.DecideResult{}, domainerrors.ErrNotPending
	}

	resolvedAt := input.DecidedAt
	open.ReviewerID = input.ReviewerID
	open.Decision = input.Decision
	open.Notes = input.Notes
	open.ResolvedAt = &resolvedAt
	s.requestsByID[open.RequestID] = *open

	account.ApprovalStatus = ports.ApprovalStatus(input.Decision)
	account.UpdatedAt = input.DecidedAt
	s.accountsByID[account.AccountID] = account

	s.appendOutbox(input.OutboxID, contractsv1.EventTypeApprovalDecided, account.AccountID, input.DecidedAt, map[string]any{
		"account_id":  account.AccountID,
		"decision":    input.Decision,
		"reviewer_id": input.ReviewerID,
	})
	return ports.DecideResult{Account: account, Request: *open}, nil
}

func (s *Store) ReapplyRequest(_ context.Context, input ports.ReapplyInput) (ports.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, found := s.accountsByID[input.AccountID]
	if !found {
		return ports.Account{}, domainerrors.ErrAccountNotFound
	}
	if account.Role != ports.RoleProfessional || account.ApprovalStatus != ports.ApprovalRejected {
		return ports.Account{}, domainerrors.ErrNotRejected
	}

	s.requestsByID[input.RequestID] = ports.ApprovalRequest{
		RequestID:   input.RequestID,
		AccountID:   input.AccountID,
		SubmittedAt: input.Now,
	}

	account.ApprovalStatus = ports.ApprovalPending
	account.UpdatedAt = input.Now
	s.accountsByID[account.AccountID] = account

	s.appendOutbox(input.OutboxID, contractsv1.EventTypeApprovalReapplied, account.AccountID, input.Now, map[string]any{
		"account_id": account.AccountID,
		"request_id": input.RequestID,
	})
	return account, nil
}

func (s *Store) AnonymizeAccount(_ context.Context, accountID string, outboxID string, now time.Time) (ports.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, found := s.accountsByID[accountID]
	if !found {
		return ports.Account{}, domainerrors.ErrAccountNotFound
	}

	account.Email = ""
	account.DisplayName = "Deleted account"
	account.ProfessionalMeta = nil
	account.Anonymized = true
	account.UpdatedAt = now
	s.accountsByID[accountID] = account

	s.appendOutbox(outboxID, contractsv1.EventTypeAccountErased, accountID, now, map[string]any{
		"account_id": accountID,
	})
	return account, nil
}

func (s *Store) Overview(_ context.Context) (ports.OverviewStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := ports.OverviewStats{}
	for _, account := range s.accountsByID {
		stats.TotalAccounts++
		switch account.Role {
		case ports.RoleAdmin:
			stats.Admins++
		case ports.RoleProfessional:
			stats.Professionals++
			switch account.ApprovalStatus {
			case ports.ApprovalPending:
				stats.PendingApprovals++
			case ports.ApprovalApproved:
				stats.ApprovedProfessionals++
			case ports.ApprovalRejected:
				stats.RejectedProfessionals++
			}
		default:
			stats.Patients++
		}
	}
	return stats, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outboxByID {
		if row.Status != outbox.StatusPending {
			continue
		}
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, found := s.outboxByID[outboxID]
	if !found {
		return nil
	}
	row.Status = outbox.StatusPublished
	row.PublishedAt = &publishedAt
	s.outboxByID[outboxID] = row
	return nil
}

func (s *Store) appendOutbox(outboxID string, eventType string, partitionKey string, occurredAt time.Time, data any) {
	if outboxID == "" {
		return
	}
	event, err := ports.NewIdentityEvent(outboxID, eventType, partitionKey, occurredAt, data)
	if err != nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	s.outboxByID[outboxID] = outboxRecord{
		OutboxID:  outboxID,
		EventType: eventType,
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: occurredAt,
	}
}
