package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "vesalius/contexts/identity-access/account-service/application"
	domainerrors "vesalius/contexts/identity-access/account-service/domain/errors"
	"vesalius/contexts/identity-access/account-service/ports"
)

// RegisterCommand contains transport-agnostic input for account creation.
// AccountID comes from the verified identity, never from the request body.
type RegisterCommand struct {
	AccountID        string
	Email            string
	DisplayName      string
	Role             string
	ProfessionalMeta *ports.ProfessionalMeta
}

// RegisterUseCase creates the account record on first registration and,
// for professionals, files the opening approval request in the same
// transaction.
type RegisterUseCase struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (ports.Account, error) {
	logger := application.ResolveLogger(u.Logger)

	accountID := strings.TrimSpace(cmd.AccountID)
	email := strings.TrimSpace(cmd.Email)
	if accountID == "" || email == "" {
		return ports.Account{}, domainerrors.ErrInvalidRequest
	}

	role := ports.RolePatient
	if raw := strings.ToLower(strings.TrimSpace(cmd.Role)); raw != "" {
		switch ports.Role(raw) {
		case ports.RolePatient, ports.RoleProfessional:
			role = ports.Role(raw)
		default:
			// Admin accounts are provisioned out of band, never self-registered.
			return ports.Account{}, domainerrors.ErrInvalidRole
		}
	}

	account := ports.Account{
		AccountID:   accountID,
		Email:       email,
		DisplayName: strings.TrimSpace(cmd.DisplayName),
		Role:        role,
		CreatedAt:   u.now(),
		UpdatedAt:   u.now(),
	}

	input := ports.CreateAccountInput{}
	if role == ports.RoleProfessional {
		if cmd.ProfessionalMeta == nil || strings.TrimSpace(cmd.ProfessionalMeta.LicenseNumber) == "" {
			return ports.Account{}, domainerrors.ErrMissingLicense
		}
		meta := ports.ProfessionalMeta{
			LicenseNumber:  strings.TrimSpace(cmd.ProfessionalMeta.LicenseNumber),
			Specialization: strings.TrimSpace(cmd.ProfessionalMeta.Specialization),
		}
		account.ProfessionalMeta = &meta
		account.ApprovalStatus = ports.ApprovalPending

		requestID, err := u.IDGenerator.NewID(ctx)
		if err != nil {
			return ports.Account{}, err
		}
		input.ApprovalRequestID = requestID
	} else {
		account.ApprovalStatus = ports.ApprovalApproved
	}

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Account{}, err
	}
	input.Account = account
	input.OutboxID = outboxID

	created, err := u.Repository.CreateAccount(ctx, input)
	if err != nil {
		if err == domainerrors.ErrAccountExists {
			return ports.Account{}, err
		}
		logger.Error("account create failed",
			"event", "accounts_register_write_failed",
			"module", "identity-access/account-service",
			"layer", "application",
			"account_id", accountID,
			"role", string(role),
			"error", err.Error(),
		)
		return ports.Account{}, err
	}

	logger.Info("account registered",
		"event", "accounts_registered",
		"module", "identity-access/account-service",
		"layer", "application",
		"account_id", created.AccountID,
		"role", string(created.Role),
		"approval_status", string(created.ApprovalStatus),
	)
	return created, nil
}

func (u RegisterUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
