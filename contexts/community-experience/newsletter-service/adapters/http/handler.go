package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"vesalius/contexts/community-experience/newsletter-service/application"
	httptransport "vesalius/contexts/community-experience/newsletter-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) SubscribeHandler(ctx context.Context, req httptransport.SubscribeRequest) (httptransport.SubscribeResponse, error) {
	subscription, err := h.Service.Subscribe(ctx, req.Email)
	if err != nil {
		return httptransport.SubscribeResponse{}, err
	}
	resp := httptransport.SubscribeResponse{Success: true}
	resp.Data.Email = subscription.Email
	resp.Data.Status = string(subscription.Status)
	return resp, nil
}

func (h Handler) ConfirmHandler(ctx context.Context, req httptransport.ConfirmRequest) (httptransport.ConfirmResponse, error) {
	subscription, err := h.Service.Confirm(ctx, req.Token)
	if err != nil {
		return httptransport.ConfirmResponse{}, err
	}
	resp := httptransport.ConfirmResponse{Success: true}
	resp.Data.Email = subscription.Email
	resp.Data.Status = string(subscription.Status)
	if subscription.ConfirmedAt != nil {
		resp.Data.ConfirmedAt = subscription.ConfirmedAt.UTC().Format(time.RFC3339)
	}
	return resp, nil
}

func (h Handler) UnsubscribeHandler(ctx context.Context, req httptransport.UnsubscribeRequest) (httptransport.UnsubscribeResponse, error) {
	if err := h.Service.Unsubscribe(ctx, req.Token); err != nil {
		return httptransport.UnsubscribeResponse{}, err
	}
	return httptransport.UnsubscribeResponse{Success: true}, nil
}
