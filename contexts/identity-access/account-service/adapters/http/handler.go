package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vesalius/contexts/identity-access/account-service/application/commands"
	"vesalius/contexts/identity-access/account-service/application/queries"
	"vesalius/contexts/identity-access/account-service/ports"
	httptransport "vesalius/contexts/identity-access/account-service/transport/http"
)

type Handler struct {
	Register     commands.RegisterUseCase
	Reapply      commands.ReapplyUseCase
	Decide       commands.DecideUseCase
	Erase        commands.EraseUseCase
	GetAccount   queries.GetAccountUseCase
	ListAccounts queries.ListAccountsUseCase
	Overview     queries.OverviewUseCase
	Logger       *slog.Logger
}

// RegisterHandler creates the caller's account. The account id comes from
// the verified bearer identity, never from the request body.
func (h Handler) RegisterHandler(
	ctx context.Context,
	accountID string,
	req httptransport.RegisterRequest,
) (httptransport.RegisterResponse, error) {
	cmd := commands.RegisterCommand{
		AccountID:   accountID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        req.Role,
	}
	if strings.TrimSpace(req.LicenseNumber) != "" || strings.TrimSpace(req.Specialization) != "" {
		cmd.ProfessionalMeta = &ports.ProfessionalMeta{
			LicenseNumber:  req.LicenseNumber,
			Specialization: req.Specialization,
		}
	}

	account, err := h.Register.Execute(ctx, cmd)
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}
	return httptransport.RegisterResponse{
		Success: true,
		Data:    accountPayload(account),
	}, nil
}

// ReapplyHandler files a fresh approval request for the caller's
// rejected professional account.
func (h Handler) ReapplyHandler(ctx context.Context, accountID string) (httptransport.ReapplyResponse, error) {
	account, err := h.Reapply.Execute(ctx, accountID)
	if err != nil {
		return httptransport.ReapplyResponse{}, err
	}
	return httptransport.ReapplyResponse{
		Success: true,
		Data:    accountPayload(account),
	}, nil
}

// StatusHandler reports the caller's own role and approval state. A
// verified identity without an account record is a normal case and is
// reported as an unregistered patient.
func (h Handler) StatusHandler(ctx context.Context, accountID string) (httptransport.StatusResponse, error) {
	account, found, err := h.GetAccount.Execute(ctx, accountID)
	if err != nil {
		return httptransport.StatusResponse{}, err
	}

	resp := httptransport.StatusResponse{Success: true}
	if !found {
		resp.Data.Registered = false
		resp.Data.Role = string(ports.RolePatient)
		resp.Data.ApprovalStatus = string(ports.ApprovalApproved)
		return resp, nil
	}
	resp.Data.Registered = true
	resp.Data.Role = string(account.Role)
	resp.Data.ApprovalStatus = string(account.ApprovalStatus)
	return resp, nil
}

func (h Handler) ApproveHandler(
	ctx context.Context,
	reviewerID string,
	req httptransport.DecisionRequest,
) (httptransport.DecisionResponse, error) {
	return h.decide(ctx, reviewerID, ports.DecisionApproved, req)
}

func (h Handler) RejectHandler(
	ctx context.Context,
	reviewerID string,
	req httptransport.DecisionRequest,
) (httptransport.DecisionResponse, error) {
	return h.decide(ctx, reviewerID, ports.DecisionRejected, req)
}

func (h Handler) decide(
	ctx context.Context,
	reviewerID string,
	decision string,
	req httptransport.DecisionRequest,
) (httptransport.DecisionResponse, error) {
	result, err := h.Decide.Execute(ctx, commands.DecideCommand{
		AccountID:  strings.TrimSpace(req.UserID),
		ReviewerID: reviewerID,
		Decision:   decision,
		Notes:      req.Reason,
	})
	if err != nil {
		return httptransport.DecisionResponse{}, err
	}

	resp := httptransport.DecisionResponse{Success: true}
	resp.Data.AccountID = result.Account.AccountID
	resp.Data.Decision = result.Request.Decision
	resp.Data.ReviewerID = result.Request.ReviewerID
	if result.Request.ResolvedAt != nil {
		resp.Data.ResolvedAt = result.Request.ResolvedAt.UTC().Format(time.RFC3339)
	}
	return resp, nil
}

func (h Handler) DeleteUserHandler(
	ctx context.Context,
	req httptransport.DeleteUserRequest,
) (httptransport.DeleteUserResponse, error) {
	account, err := h.Erase.Execute(ctx, strings.TrimSpace(req.UserID))
	if err != nil {
		return httptransport.DeleteUserResponse{}, err
	}

	resp := httptransport.DeleteUserResponse{Success: true}
	resp.Data.AccountID = account.AccountID
	resp.Data.Anonymized = account.Anonymized
	return resp, nil
}

func (h Handler) ListUsersHandler(ctx context.Context) (httptransport.ListUsersResponse, error) {
	accounts, err := h.ListAccounts.Execute(ctx)
	if err != nil {
		return httptransport.ListUsersResponse{}, err
	}

	resp := httptransport.ListUsersResponse{Success: true}
	resp.Data.Users = make([]httptransport.AccountPayload, 0, len(accounts))
	for _, account := range accounts {
		resp.Data.Users = append(resp.Data.Users, accountPayload(account))
	}
	return resp, nil
}

func (h Handler) OverviewHandler(ctx context.Context) (httptransport.OverviewResponse, error) {
	result, err := h.Overview.Execute(ctx)
	if err != nil {
		return httptransport.OverviewResponse{}, err
	}

	resp := httptransport.OverviewResponse{Success: true}
	resp.Data.TotalAccounts = result.Stats.TotalAccounts
	resp.Data.Patients = result.Stats.Patients
	resp.Data.Professionals = result.Stats.Professionals
	resp.Data.Admins = result.Stats.Admins
	resp.Data.PendingApprovals = result.Stats.PendingApprovals
	resp.Data.ApprovedProfessionals = result.Stats.ApprovedProfessionals
	resp.Data.RejectedProfessionals = result.Stats.RejectedProfessionals
	resp.Data.PendingRequests = make([]httptransport.PendingRequestPayload, 0, len(result.Pending))
	for _, request := range result.Pending {
		resp.Data.PendingRequests = append(resp.Data.PendingRequests, httptransport.PendingRequestPayload{
			RequestID:   request.RequestID,
			AccountID:   request.AccountID,
			SubmittedAt: request.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func accountPayload(account ports.Account) httptransport.AccountPayload {
	payload := httptransport.AccountPayload{
		AccountID:      account.AccountID,
		Email:          account.Email,
		DisplayName:    account.DisplayName,
		Role:           string(account.Role),
		ApprovalStatus: string(account.ApprovalStatus),
		Anonymized:     account.Anonymized,
		CreatedAt:      account.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      account.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if account.ProfessionalMeta != nil {
		payload.LicenseNumber = account.ProfessionalMeta.LicenseNumber
		payload.Specialization = account.ProfessionalMeta.Specialization
	}
	return payload
}
