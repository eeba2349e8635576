package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vesalius/contexts/community-experience/newsletter-service/ports"
)

type Store struct {
	mu          sync.RWMutex
	byEmail     map[string]ports.Subscription
	byToken     map[string]string
	nowOverride func() time.Time
}

func NewStore() *Store {
	return &Store{
		byEmail: make(map[string]ports.Subscription),
		byToken: make(map[string]string),
	}
}

func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowOverride = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	override := s.nowOverride
	s.mu.RUnlock()
	if override != nil {
		return override().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) UpsertSubscription(_ context.Context, subscription ports.Subscription) (ports.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if previous, exists := s.byEmail[subscription.Email]; exists {
		delete(s.byToken, previous.Token)
	}
	s.byEmail[subscription.Email] = subscription
	s.byToken[subscription.Token] = subscription.Email
	return subscription, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (ports.Subscription, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subscription, found := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return subscription, found, nil
}

func (s *Store) GetByToken(_ context.Context, token string) (ports.Subscription, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email, found := s.byToken[token]
	if !found {
		return ports.Subscription{}, false, nil
	}
	subscription, found := s.byEmail[email]
	return subscription, found, nil
}

func (s *Store) UpdateSubscription(_ context.Context, subscription ports.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byEmail[subscription.Email] = subscription
	s.byToken[subscription.Token] = subscription.Email
	return nil
}
