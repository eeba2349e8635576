package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"vesalius/contexts/identity-access/account-service/ports"
)

// Notifier delivers transactional emails through an HTTP email API.
// Callers already treat delivery as best-effort, so the adapter does a
// single attempt with a bounded timeout.
type Notifier struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
	logger  *slog.Logger
}

func NewNotifier(baseURL string, apiKey string, from string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type sendPayload struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}

func (n *Notifier) Send(ctx context.Context, notification ports.Notification) error {
	body, err := json.Marshal(sendPayload{
		From:     n.from,
		To:       notification.ToAddress,
		Template: notification.TemplateKind,
		Data:     notification.Data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/v1/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email api returned status %d", resp.StatusCode)
	}

	n.logger.Info("notification sent",
		"event", "accounts_notification_sent",
		"module", "identity-access/account-service",
		"layer", "adapter",
		"template", notification.TemplateKind,
	)
	return nil
}
