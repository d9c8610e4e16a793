package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
	"github.com/diyabansal-1605/full-stack-project/internal/storage"
)

// CredentialKey is the fixed storage key of the persisted credential.
const CredentialKey = "token"

// Store owns the current session and publishes every change to its
// subscribers, synchronously and in subscription order.
type Store struct {
	creds storage.CredentialStore

	mu      sync.RWMutex
	current domain.Session

	subMu  sync.Mutex
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(domain.Session)
}

func NewStore(creds storage.CredentialStore) *Store {
	return &Store{creds: creds}
}

func (s *Store) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the current credential, or "" without a session.
func (s *Store) Token() string {
	return s.Current().Credential
}

// Subscribe registers fn for future publications. The returned func removes
// it again.
func (s *Store) Subscribe(fn func(domain.Session)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Restore loads the persisted credential. A credential that does not decode
// is removed. Any failure leaves an empty session.
func (s *Store) Restore(ctx context.Context) {
	log := logger.WithContext(ctx)

	credential, err := s.creds.Get(ctx, CredentialKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.WithError(err).Error("read persisted credential failed")
		}
		s.publish(domain.Session{})
		return
	}

	identity, err := Decode(credential)
	if err != nil {
		log.WithError(err).Warn("invalid persisted credential")
		if err := s.creds.Remove(ctx, CredentialKey); err != nil {
			log.WithError(err).Error("remove invalid credential failed")
		}
		s.publish(domain.Session{})
		return
	}

	s.publish(domain.Session{Credential: credential, Identity: &identity})
}

// Login persists credential and publishes the decoded session. When decoding
// fails the credential stays persisted and the current session is kept.
func (s *Store) Login(ctx context.Context, credential string) error {
	if err := s.creds.Set(ctx, CredentialKey, credential); err != nil {
		return fmt.Errorf("persist credential failed: %w", err)
	}
	identity, err := Decode(credential)
	if err != nil {
		return err
	}
	s.publish(domain.Session{Credential: credential, Identity: &identity})
	return nil
}

func (s *Store) Logout(ctx context.Context) error {
	err := s.creds.Remove(ctx, CredentialKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.WithContext(ctx).WithError(err).Error("remove credential failed")
	} else {
		err = nil
	}
	s.publish(domain.Session{})
	return err
}

// UpdateIdentity publishes a new session value carrying identity and the
// current credential. It is a no-op without a session.
func (s *Store) UpdateIdentity(identity domain.Identity) bool {
	cur := s.Current()
	if cur.Credential == "" {
		return false
	}
	s.publish(cur.WithIdentity(identity))
	return true
}

func (s *Store) publish(next domain.Session) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}
