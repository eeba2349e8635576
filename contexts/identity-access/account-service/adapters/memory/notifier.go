package memory

import (
	"context"
	"errors"
	"sync"

	"vesalius/contexts/identity-access/account-service/ports"
)

// RecordingNotifier captures dispatched notifications for assertions and
// can be flipped into a failing mode.
type RecordingNotifier struct {
	mu   sync.Mutex
	Fail bool
	sent []ports.Notification
}

func (n *RecordingNotifier) Send(_ context.Context, notification ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail {
		return errors.New("notification service unavailable")
	}
	n.sent = append(n.sent, notification)
	return nil
}

func (n *RecordingNotifier) Sent() []ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Notification(nil), n.sent...)
}
