package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Keys used in the SecureStore.
const (
	TokenKey = "user_token"
	UserKey  = "user_data"
)

// SessionUser is the trimmed producer kept alongside the token.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the signed-in state of a front end: the persisted token and
// user, mirrored into the client's Authorization header.
type Session struct {
	client *Client
	store  SecureStore

	mu   sync.RWMutex
	user *SessionUser
}

// NewSession creates a signed-out session.
func NewSession(c *Client, store SecureStore) *Session {
	return &Session{client: c, store: store}
}

// Load restores a previously persisted session. A missing or corrupt
// session leaves the user signed out without an error.
func (s *Session) Load() error {
	token, err := s.store.Get(TokenKey)
	if errors.Is(err, ErrNoValue) {
		return nil
	}
	if err != nil {
		return err
	}
	raw, err := s.store.Get(UserKey)
	if errors.Is(err, ErrNoValue) {
		return nil
	}
	if err != nil {
		return err
	}

	var user SessionUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.client.SetToken(token)
	return nil
}

// SignIn logs in, persists the token and user, and installs the header.
func (s *Session) SignIn(ctx context.Context, email, password string) (*SessionUser, error) {
	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user := &SessionUser{ID: res.Producer.ID, Name: res.Producer.Name, Email: res.Producer.Email}
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("client: encode session: %w", err)
	}
	if err := s.store.Set(TokenKey, res.Token); err != nil {
		return nil, err
	}
	if err := s.store.Set(UserKey, string(raw)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.client.SetToken(res.Token)
	return user, nil
}

// SignOut forgets the session locally. Tokens are not revoked server-side.
func (s *Session) SignOut() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.client.SetToken("")

	if err := s.store.Delete(TokenKey); err != nil {
		return err
	}
	return s.store.Delete(UserKey)
}

// User returns the signed-in user, or nil.
func (s *Session) User() *SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// Client returns the API client the session authenticates.
func (s *Session) Client() *Client {
	return s.client
}
