package http

type SubscribeRequest struct {
	Email string `json:"email"`
}

type SubscribeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Email  string `json:"email"`
		Status string `json:"status"`
	} `json:"data"`
}

type ConfirmRequest struct {
	Token string `json:"token"`
}

type ConfirmResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Email       string `json:"email"`
		Status      string `json:"status"`
		ConfirmedAt string `json:"confirmed_at"`
	} `json:"data"`
}

type UnsubscribeRequest struct {
	Token string `json:"token"`
}

type UnsubscribeResponse struct {
	Success bool `json:"success"`
}
