package postgresadapter

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"vesalius/contexts/identity-access/account-service/ports"
)

type accountModel struct {
	AccountID        string         `gorm:"column:account_id;primaryKey"`
	Email            string         `gorm:"column:email"`
	DisplayName      string         `gorm:"column:display_name"`
	Role             string         `gorm:"column:role;index"`
	ApprovalStatus   string         `gorm:"column:approval_status;index"`
	ProfessionalMeta datatypes.JSON `gorm:"column:professional_meta"`
	Anonymized       bool           `gorm:"column:anonymized"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }

type approvalRequestModel struct {
	RequestID   string     `gorm:"column:request_id;primaryKey"`
	AccountID   string     `gorm:"column:account_id;index"`
	SubmittedAt time.Time  `gorm:"column:submitted_at"`
	ReviewerID  string     `gorm:"column:reviewer_id"`
	Decision    string     `gorm:"column:decision"`
	Notes       string     `gorm:"column:notes"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at;index"`
}

func (approvalRequestModel) TableName() string { return "approval_requests" }

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	RetryCount   int        `gorm:"column:retry_count"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "identity_outbox" }

// Models exposes the gorm models for platform migration wiring.
func Models() []any {
	return []any{&accountModel{}, &approvalRequestModel{}, &outboxModel{}}
}

func accountModelFromEntity(account ports.Account) (accountModel, error) {
	row := accountModel{
		AccountID:      account.AccountID,
		Email:          account.Email,
		DisplayName:    account.DisplayName,
		Role:           string(account.Role),
		ApprovalStatus: string(account.ApprovalStatus),
		Anonymized:     account.Anonymized,
		CreatedAt:      account.CreatedAt.UTC(),
		UpdatedAt:      account.UpdatedAt.UTC(),
	}
	if account.ProfessionalMeta != nil {
		payload, err := json.Marshal(account.ProfessionalMeta)
		if err != nil {
			return accountModel{}, err
		}
		row.ProfessionalMeta = datatypes.JSON(payload)
	}
	return row, nil
}

func (m accountModel) toEntity() ports.Account {
	role := ports.NormalizeRole(m.Role)
	account := ports.Account{
		AccountID:      m.AccountID,
		Email:          m.Email,
		DisplayName:    m.DisplayName,
		Role:           role,
		ApprovalStatus: ports.NormalizeApprovalStatus(role, m.ApprovalStatus),
		Anonymized:     m.Anonymized,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
	if len(m.ProfessionalMeta) > 0 {
		var meta ports.ProfessionalMeta
		if err := json.Unmarshal(m.ProfessionalMeta, &meta); err == nil {
			account.ProfessionalMeta = &meta
		}
	}
	return account
}

func (m approvalRequestModel) toEntity() ports.ApprovalRequest {
	request := ports.ApprovalRequest{
		RequestID:   m.RequestID,
		AccountID:   m.AccountID,
		SubmittedAt: m.SubmittedAt.UTC(),
		ReviewerID:  m.ReviewerID,
		Decision:    m.Decision,
		Notes:       m.Notes,
	}
	if m.ResolvedAt != nil {
		resolved := m.ResolvedAt.UTC()
		request.ResolvedAt = &resolved
	}
	return request
}
