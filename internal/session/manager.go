package session

import (
	"context"
	"log"
	"regexp"
	"sync"

	"zeelx/internal/client"
	"zeelx/internal/core/domain"
)

// State is the auth state machine position.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

var phonePattern = regexp.MustCompile(`^[0-9]{8}$`)

// MinPasswordLength matches the backend's requirement.
const MinPasswordLength = 8

// Manager owns auth state. It is the client's TokenSource, so every
// outgoing request picks up whatever token the manager currently
// holds. Auth actions are serialized by the UI (one in flight at a
// time); the mutex protects reads against that single writer.
type Manager struct {
	mu    sync.Mutex
	state State
	token string
	user  *domain.User

	api   *client.Client
	store Store
}

// NewManager creates a manager over the given store. Wire the manager
// into the API client as its TokenSource before use.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Bind attaches the API client used for auth calls.
func (m *Manager) Bind(api *client.Client) { m.api = api }

// Token implements client.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// State returns the current auth state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the cached user snapshot, nil when unauthenticated.
func (m *Manager) User() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Bootstrap loads a persisted session at app start. A load failure
// leaves the manager unauthenticated rather than failing startup.
func (m *Manager) Bootstrap() {
	token, user, err := m.store.Load()
	if err != nil {
		log.Printf("session: load failed: %v", err)
		return
	}
	if token == "" || user == nil {
		return
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.state = Authenticated
	m.mu.Unlock()
}

// ValidateCredentials applies the client-side checks that block a call
// before it is sent.
func ValidateCredentials(phone, password string) error {
	if !phonePattern.MatchString(phone) {
		return domain.Validationf("phone", "must be exactly 8 digits")
	}
	if len(password) < MinPasswordLength {
		return domain.Validationf("password", "must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// Login authenticates with phone+password. On success the session is
// persisted and the state becomes Authenticated; on failure the state
// returns to Unauthenticated and the error is surfaced.
func (m *Manager) Login(ctx context.Context, phone, password string) error {
	if err := ValidateCredentials(phone, password); err != nil {
		return err
	}
	return m.authenticate(func() (*domain.Session, error) {
		return m.api.Login(ctx, phone, password)
	})
}

// Register creates an account and opens its first session. The server
// enforces phone uniqueness.
func (m *Manager) Register(ctx context.Context, input client.RegisterInput) error {
	if err := ValidateCredentials(input.Phone, input.Password); err != nil {
		return err
	}
	if input.Name == "" {
		return domain.Validationf("name", "is required")
	}
	return m.authenticate(func() (*domain.Session, error) {
		return m.api.Register(ctx, input)
	})
}

func (m *Manager) authenticate(call func() (*domain.Session, error)) error {
	m.setState(Authenticating)

	session, err := call()
	if err != nil {
		m.setState(Unauthenticated)
		return err
	}

	if err := m.store.Save(session.Token, session.User); err != nil {
		// The session still works for this run; only persistence failed.
		log.Printf("session: persist failed: %v", err)
	}

	m.mu.Lock()
	m.token = session.Token
	m.user = session.User
	m.state = Authenticated
	m.mu.Unlock()
	return nil
}

// Logout clears the session unconditionally. The local clear is
// best-effort: even if the store errors, the in-memory session is
// gone.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		log.Printf("session: clear failed: %v", err)
	}

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.state = Unauthenticated
	m.mu.Unlock()
}

// RefreshUser re-fetches the current user and updates the cache
// without changing auth state. Failure is logged and the stale copy
// retained, unless the token itself was rejected, which ends the
// session.
func (m *Manager) RefreshUser(ctx context.Context) {
	if m.State() != Authenticated {
		return
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			m.Logout()
			return
		}
		log.Printf("session: refresh failed: %v", err)
		return
	}

	m.mu.Lock()
	token := m.token
	m.user = user
	m.mu.Unlock()

	if err := m.store.Save(token, user); err != nil {
		log.Printf("session: persist failed: %v", err)
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
