package http

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type AccountPayload struct {
	AccountID      string `json:"account_id"`
	Email          string `json:"email,omitempty"`
	DisplayName    string `json:"display_name,omitempty"`
	Role           string `json:"role"`
	ApprovalStatus string `json:"approval_status"`
	LicenseNumber  string `json:"license_number,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Anonymized     bool   `json:"anonymized,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type RegisterRequest struct {
	Email          string `json:"email"`
	DisplayName    string `json:"display_name,omitempty"`
	Role           string `json:"role,omitempty"`
	LicenseNumber  string `json:"license_number,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

type RegisterResponse struct {
	Success bool           `json:"success"`
	Data    AccountPayload `json:"data"`
}

type ReapplyResponse struct {
	Success bool           `json:"success"`
	Data    AccountPayload `json:"data"`
}

type StatusResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Registered     bool   `json:"registered"`
		Role           string `json:"role"`
		ApprovalStatus string `json:"approval_status"`
	} `json:"data"`
}

type DecisionRequest struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason,omitempty"`
}

type DecisionResponse struct {
	Success bool `json:"success"`
	Data    struct {
		AccountID  string `json:"account_id"`
		Decision   string `json:"decision"`
		ReviewerID string `json:"reviewer_id"`
		ResolvedAt string `json:"resolved_at"`
	} `json:"data"`
}

type DeleteUserRequest struct {
	UserID string `json:"user_id"`
}

type DeleteUserResponse struct {
	Success bool `json:"success"`
	Data    struct {
		AccountID  string `json:"account_id"`
		Anonymized bool   `json:"anonymized"`
	} `json:"data"`
}

type ListUsersResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Users []AccountPayload `json:"users"`
	} `json:"data"`
}

type PendingRequestPayload struct {
	RequestID   string `json:"request_id"`
	AccountID   string `json:"account_id"`
	SubmittedAt string `json:"submitted_at"`
}

type OverviewResponse struct {
	Success bool `json:"success"`
	Data    struct {
		TotalAccounts         int                     `json:"total_accounts"`
		Patients              int                     `json:"patients"`
		Professionals         int                     `json:"professionals"`
		Admins                int                     `json:"admins"`
		PendingApprovals      int                     `json:"pending_approvals"`
		ApprovedProfessionals int                     `json:"approved_professionals"`
		RejectedProfessionals int                     `json:"rejected_professionals"`
		PendingRequests       []PendingRequestPayload `json:"pending_requests"`
	} `json:"data"`
}
