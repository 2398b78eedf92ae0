package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mlenoir/octogym-cli/internal/domain"
	"github.com/mlenoir/octogym-cli/internal/ports"
)

// SessionManager owns the authentication credential and identity. The two
// travel together: a successful login sets both, and logout or a rejected
// credential clears both and notifies every registered cleared-hook so
// dependent state (the workout collection) is discarded with the session.
type SessionManager struct {
	api   ports.RecordService
	creds ports.CredentialStore

	mu      sync.RWMutex
	session domain.Session

	hookMu    sync.Mutex
	onCleared []func()
}

func NewSessionManager(api ports.RecordService, creds ports.CredentialStore) *SessionManager {
	return &SessionManager{api: api, creds: creds}
}

// Init restores a previously persisted credential. A missing credential is
// not an error; the process simply starts unauthenticated.
func (m *SessionManager) Init(ctx context.Context) error {
	session, err := m.creds.Load(ctx)
	if err != nil {
		return fmt.Errorf("load persisted session: %w", err)
	}

	if !session.Established() {
		return nil
	}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	return nil
}

// OnCleared registers a hook invoked after the session is torn down, by
// logout or by a rejected credential.
func (m *SessionManager) OnCleared(fn func()) {
	m.hookMu.Lock()
	defer m.hookMu.Unlock()
	m.onCleared = append(m.onCleared, fn)
}

func (m *SessionManager) Current() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Register creates the remote account. It never establishes a session; the
// caller follows up with Login.
func (m *SessionManager) Register(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	if err := m.api.Register(ctx, strings.TrimSpace(email), password); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return nil
}

// Login exchanges the credentials for a bearer token and persists the
// resulting session so it survives restarts until an explicit logout.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	session := domain.Session{Token: token, Email: email}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	if err := m.creds.Save(ctx, session); err != nil {
		m.clear(ctx)
		return fmt.Errorf("persist session: %w", err)
	}

	return nil
}

// Logout clears the credential and identity together and resets dependent
// state through the cleared-hooks.
func (m *SessionManager) Logout(ctx context.Context) error {
	return m.clear(ctx)
}

// HandleUnauthorized is invoked whenever the record store rejects the
// credential. The teardown is identical to logout; callers surface
// domain.ErrSessionExpired so the user sees an expiry, not a generic
// network failure.
func (m *SessionManager) HandleUnauthorized(ctx context.Context) error {
	return m.clear(ctx)
}

func (m *SessionManager) clear(ctx context.Context) error {
	m.mu.Lock()
	m.session = domain.Session{}
	m.mu.Unlock()

	clearErr := m.creds.Clear(ctx)

	m.hookMu.Lock()
	hooks := make([]func(), len(m.onCleared))
	copy(hooks, m.onCleared)
	m.hookMu.Unlock()

	for _, hook := range hooks {
		hook()
	}

	if clearErr != nil {
		return fmt.Errorf("clear persisted session: %w", clearErr)
	}

	return nil
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	return nil
}
