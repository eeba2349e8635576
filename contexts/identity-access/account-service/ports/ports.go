package ports

import (
	"context"
	"time"

	contractsv1 "vesalius/contracts/gen/events/v1"
)

// Role is the closed set of account roles. Raw stored values are mapped
// onto it by NormalizeRole and nowhere else.
type Role string

const (
	RolePatient      Role = "patient"
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

// NormalizeRole maps a stored role value onto the closed role set.
// Unknown or missing values resolve to patient; they never escalate.
func NormalizeRole(raw string) Role {
	switch Role(raw) {
	case RolePatient, RoleProfessional, RoleAdmin:
		return Role(raw)
	default:
		return RolePatient
	}
}

// ApprovalStatus applies to professional accounts; patient and admin
// accounts are implicitly approved.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// NormalizeApprovalStatus interprets a stored approval value for the
// given role. Non-professional roles are always approved; a professional
// with an unrecognized stored value falls back to pending.
func NormalizeApprovalStatus(role Role, raw string) ApprovalStatus {
	if role != RoleProfessional {
		return ApprovalApproved
	}
	switch ApprovalStatus(raw) {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return ApprovalStatus(raw)
	default:
		return ApprovalPending
	}
}

// ProfessionalMeta is present only on professional accounts.
type ProfessionalMeta struct {
	LicenseNumber  string `json:"license_number"`
	Specialization string `json:"specialization"`
}

// Account is the durable record of a registered identity.
type Account struct {
	AccountID        string
	Email            string
	DisplayName      string
	Role             Role
	ApprovalStatus   ApprovalStatus
	ProfessionalMeta *ProfessionalMeta
	Anonymized       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ApprovalRequest is one entry in the approval queue. Rows are marked
// resolved rather than deleted so reviewer decisions stay auditable;
// pending visibility is ResolvedAt == nil.
type ApprovalRequest struct {
	RequestID   string
	AccountID   string
	SubmittedAt time.Time
	ReviewerID  string
	Decision    string
	Notes       string
	ResolvedAt  *time.Time
}

const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for request/outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CreateAccountInput is persisted as a single transaction: the account
// row plus, for professionals, the opening approval request and the
// registration outbox row.
type CreateAccountInput struct {
	Account           Account
	ApprovalRequestID string
	OutboxID          string
}

// DecideInput captures one admin decision over a pending request.
type DecideInput struct {
	AccountID  string
	ReviewerID string
	Decision   string
	Notes      string
	OutboxID   string
	DecidedAt  time.Time
}

// DecideResult is returned by the repository after the atomic decision
// write commits.
type DecideResult struct {
	Account Account
	Request ApprovalRequest
}

// ReapplyInput files a fresh approval request for a rejected
// professional. Applied as a single transaction: the status flips back
// to pending and the new request row is created together.
type ReapplyInput struct {
	AccountID string
	RequestID string
	OutboxID  string
	Now       time.Time
}

// OverviewStats backs the admin dashboard.
type OverviewStats struct {
	TotalAccounts         int
	Patients              int
	Professionals         int
	Admins                int
	PendingApprovals      int
	ApprovedProfessionals int
	RejectedProfessionals int
}

// Repository is the write/read boundary for account and approval state.
// DecideRequest and CreateAccount must apply their multi-row writes
// atomically so approval status never disagrees with queue membership.
type Repository interface {
	CreateAccount(ctx context.Context, input CreateAccountInput) (Account, error)
	GetAccount(ctx context.Context, accountID string) (Account, bool, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	ListPendingRequests(ctx context.Context) ([]ApprovalRequest, error)
	DecideRequest(ctx context.Context, input DecideInput) (DecideResult, error)
	ReapplyRequest(ctx context.Context, input ReapplyInput) (Account, error)
	AnonymizeAccount(ctx context.Context, accountID string, outboxID string, now time.Time) (Account, error)
	Overview(ctx context.Context) (OverviewStats, error)
}

// Notification templates dispatched through the Notifier port.
const (
	TemplateApprovalDecision       = "approval_decision"
	TemplateNewsletterConfirmation = "newsletter_confirmation"
)

// Notification is a fire-and-forget email payload.
type Notification struct {
	ToAddress    string
	TemplateKind string
	Data         map[string]any
}

// Notifier delivers advisory emails. Callers treat failures as
// best-effort: log and continue.
type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}

// OutboxMessage represents a pending relay row.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// IdentityEvent reuses the canonical cross-runtime envelope contract.
type IdentityEvent = contractsv1.Envelope

// IdentityEventPublisher emits identity lifecycle events to the bus adapter.
type IdentityEventPublisher interface {
	PublishIdentityEvent(ctx context.Context, event IdentityEvent) error
}
