package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	contractsv1 "vesalius/contracts/gen/events/v1"
	domainerrors "vesalius/contexts/identity-access/account-service/domain/errors"
	"vesalius/contexts/identity-access/account-service/ports"
	"vesalius/internal/shared/outbox"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateAccount(ctx context.Context, input ports.CreateAccountInput) (ports.Account, error) {
	row, err := accountModelFromEntity(input.Account)
	if err != nil {
		return ports.Account{}, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAccountExists
			}
			return err
		}

		if input.ApprovalRequestID != "" {
			request := approvalRequestModel{
				RequestID:   input.ApprovalRequestID,
				AccountID:   input.Account.AccountID,
				SubmittedAt: input.Account.CreatedAt.UTC(),
			}
			if err := tx.Create(&request).Error; err != nil {
				return err
			}
		}

		return appendOutboxRow(tx, input.OutboxID, contractsv1.EventTypeAccountRegistered, input.Account.AccountID, input.Account.CreatedAt, map[string]any{
			"account_id":      input.Account.AccountID,
			"role":            string(input.Account.Role),
			"approval_status": string(input.Account.ApprovalStatus),
		})
	})
	if err != nil {
		return ports.Account{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID string) (ports.Account, bool, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Account{}, false, nil
		}
		return ports.Account{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListAccounts(ctx context.Context) ([]ports.Account, error) {
	var rows []accountModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ports.Account, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPendingRequests(ctx context.Context) ([]ports.ApprovalRequest, error) {
	var rows []approvalRequestModel
	err := r.db.WithContext(ctx).
		Where("resolved_at IS NULL").
		Order("submitted_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.ApprovalRequest, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// DecideRequest applies the full decision as one transaction: account
// status flip, request resolution, and outbox row. The account row is
// locked first so concurrent decisions on the same account serialize.
func (r *Repository) DecideRequest(ctx context.Context, input ports.DecideInput) (ports.DecideResult, error) {
	var result ports.DecideResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account accountModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id = ?", input.AccountID).
			First(&account).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		role := ports.NormalizeRole(account.Role)
		if role != ports.RoleProfessional ||
			ports.NormalizeApprovalStatus(role, account.ApprovalStatus) != ports.ApprovalPending {
			return domainerrors.ErrNotPending
		}

		var request approvalRequestModel
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id = ? AND resolved_at IS NULL", input.AccountID).
			First(&request).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotPending
			}
			return err
		}

		resolvedAt := input.DecidedAt.UTC()
		updates := map[string]any{
			"reviewer_id": input.ReviewerID,
			"decision":    input.Decision,
			"notes":       input.Notes,
			"resolved_at": resolvedAt,
		}
		if err := tx.Model(&approvalRequestModel{}).
			Where("request_id = ?", request.RequestID).
			Updates(updates).
			Error; err != nil {
			return err
		}

		if err := tx.Model(&accountModel{}).
			Where("account_id = ?", input.AccountID).
			Updates(map[string]any{
				"approval_status": input.Decision,
				"updated_at":      resolvedAt,
			}).
			Error; err != nil {
			return err
		}

		if err := appendOutboxRow(tx, input.OutboxID, contractsv1.EventTypeApprovalDecided, input.AccountID, input.DecidedAt, map[string]any{
			"account_id":  input.AccountID,
			"decision":    input.Decision,
			"reviewer_id": input.ReviewerID,
		}); err != nil {
			return err
		}

		account.ApprovalStatus = input.Decision
		account.UpdatedAt = resolvedAt
		request.ReviewerID = input.ReviewerID
		request.Decision = input.Decision
		request.Notes = input.Notes
		request.ResolvedAt = &resolvedAt

		result = ports.DecideResult{
			Account: account.toEntity(),
			Request: request.toEntity(),
		}
		return nil
	})
	if err != nil {
		return ports.DecideResult{}, err
	}
	return result, nil
}

// ReapplyRequest reopens the approval path for a rejected professional:
// status back to pending plus a fresh request row, in one transaction.
// The earlier rejected request stays resolved for the audit trail.
func (r *Repository) ReapplyRequest(ctx context.Context, input ports.ReapplyInput) (ports.Account, error) {
	var result ports.Account

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account accountModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id = ?", input.AccountID).
			First(&account).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		role := ports.NormalizeRole(account.Role)
		if role != ports.RoleProfessional ||
			ports.NormalizeApprovalStatus(role, account.ApprovalStatus) != ports.ApprovalRejected {
			return domainerrors.ErrNotRejected
		}

		submittedAt := input.Now.UTC()
		request := approvalRequestModel{
			RequestID:   input.RequestID,
			AccountID:   input.AccountID,
			SubmittedAt: submittedAt,
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		if err := tx.Model(&accountModel{}).
			Where("account_id = ?", input.AccountID).
			Updates(map[string]any{
				"approval_status": string(ports.ApprovalPending),
				"updated_at":      submittedAt,
			}).
			Error; err != nil {
			return err
		}

		if err := appendOutboxRow(tx, input.OutboxID, contractsv1.EventTypeApprovalReapplied, input.AccountID, input.Now, map[string]any{
			"account_id": input.AccountID,
			"request_id": input.RequestID,
		}); err != nil {
			return err
		}

		account.ApprovalStatus = string(ports.ApprovalPending)
		account.UpdatedAt = submittedAt
		result = account.toEntity()
		return nil
	})
	if err != nil {
		return ports.Account{}, err
	}
	return result, nil
}

func (r *Repository) AnonymizeAccount(ctx context.Context, accountID string, outboxID string, now time.Time) (ports.Account, error) {
	var result ports.Account

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account accountModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id = ?", accountID).
			First(&account).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		if err := tx.Model(&accountModel{}).
			Where("account_id = ?", accountID).
			Updates(map[string]any{
				"email":             "",
				"display_name":      "Deleted account",
				"professional_meta": nil,
				"anonymized":        true,
				"updated_at":        now.UTC(),
			}).
			Error; err != nil {
			return err
		}

		if err := appendOutboxRow(tx, outboxID, contractsv1.EventTypeAccountErased, accountID, now, map[string]any{
			"account_id": accountID,
		}); err != nil {
			return err
		}

		account.Email = ""
		account.DisplayName = "Deleted account"
		account.ProfessionalMeta = nil
		account.Anonymized = true
		account.UpdatedAt = now.UTC()
		result = account.toEntity()
		return nil
	})
	if err != nil {
		return ports.Account{}, err
	}
	return result, nil
}

func (r *Repository) Overview(ctx context.Context) (ports.OverviewStats, error) {
	type bucket struct {
		Role           string
		ApprovalStatus string
		Count          int
	}

	var rows []bucket
	err := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Select("role, approval_status, count(*) as count").
		Group("role, approval_status").
		Find(&rows).
		Error
	if err != nil {
		return ports.OverviewStats{}, err
	}

	stats := ports.OverviewStats{}
	for _, row := range rows {
		stats.TotalAccounts += row.Count
		role := ports.NormalizeRole(row.Role)
		switch role {
		case ports.RoleAdmin:
			stats.Admins += row.Count
		case ports.RoleProfessional:
			stats.Professionals += row.Count
			switch ports.NormalizeApprovalStatus(role, row.ApprovalStatus) {
			case ports.ApprovalPending:
				stats.PendingApprovals += row.Count
			case ports.ApprovalApproved:
				stats.ApprovedProfessionals += row.Count
			case ports.ApprovalRejected:
				stats.RejectedProfessionals += row.Count
			}
		default:
			stats.Patients += row.Count
		}
	}
	return stats, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		}).
		Error
}

func appendOutboxRow(tx *gorm.DB, outboxID string, eventType string, partitionKey string, occurredAt time.Time, data any) error {
	if outboxID == "" {
		return nil
	}
	event, err := ports.NewIdentityEvent(outboxID, eventType, partitionKey, occurredAt, data)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return tx.Create(&outboxModel{
		OutboxID:     outboxID,
		EventType:    eventType,
		PartitionKey: partitionKey,
		Payload:      payload,
		Status:       outbox.StatusPending,
		CreatedAt:    occurredAt.UTC(),
	}).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
