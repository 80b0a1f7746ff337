package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taskboard/internal/cache"
)

const sessionKeyPrefix = "session:"

// ErrSessionNotFound is returned when no live session exists for an ID.
var ErrSessionNotFound = fmt.Errorf("session not found")

// Session is the identity record attached to a live session.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	StoreSession(ctx context.Context, sessionID string, session Session, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionStore handles storage and retrieval of live sessions in Redis.
// Deleting a session revokes it immediately even though its token is still
// cryptographically valid.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// StoreSession stores a session record in Redis with TTL.
func (s *SessionStore) StoreSession(ctx context.Context, sessionID string, session Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := sessionKeyPrefix + sessionID
	return s.cache.Set(ctx, key, payload, ttl)
}

// GetSession retrieves a session record from Redis.
// Returns ErrSessionNotFound if the session has expired or been revoked.
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	key := sessionKeyPrefix + sessionID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrSessionNotFound
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session record from Redis.
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	return s.cache.Delete(ctx, key)
}
