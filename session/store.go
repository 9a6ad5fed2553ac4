package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/glosshouse/glosshouse-go/tokenstore"
)

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	User          *User
	Token         string
	Role          Role
	SalonID       string
	StylistID     string
	Authenticated bool
	Loading       bool
	FirstLogin    bool
	Demo          bool
}

// Area returns the app area a consumer should route to given this
// snapshot: the unauthenticated area until an identity resolves, then the
// role's area.
func (s Snapshot) Area() Area {
	if !s.Authenticated {
		return AreaAuth
	}
	return AreaForRole(s.Role)
}

// Credentials carries the result of a credential exchange into Login.
type Credentials struct {
	User       *User
	Token      string
	Role       Role
	FirstLogin bool
}

// Store is the session state machine. It is an explicit injected object,
// not ambient global state; whoever composes the application holds the
// single instance. All mutations are whole-field replacements under one
// lock, so concurrent flows observe last-write-wins, never a partial
// update.
type Store struct {
	mu     sync.RWMutex
	tokens tokenstore.Store
	log    logrus.FieldLogger
	state  Snapshot
}

// Config holds session store configuration.
type Config struct {
	// Tokens is the persisted token store. Required.
	Tokens tokenstore.Store
	// Logger is optional; a discard logger is used when nil.
	Logger logrus.FieldLogger
}

// NewStore creates a session store in the unauthenticated state.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("session: token store is required")
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}

	return &Store{tokens: cfg.Tokens, log: log}, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the current bearer token, empty when unauthenticated.
// Shaped to plug directly into the API client's token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Restore reads the persisted token on cold start. When a token exists it
// is loaded into the session with Loading set, and returned; the caller
// is responsible for validating it against the backend and completing the
// transition with Login (or Logout on rejection). Restore itself never
// touches the network.
func (s *Store) Restore(ctx context.Context) (string, error) {
	token, err := s.tokens.Load(ctx)
	if err == tokenstore.ErrNotFound {
		s.mu.Lock()
		s.state.Loading = false
		s.mu.Unlock()
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: restore: %w", err)
	}

	s.mu.Lock()
	s.state.Token = token
	s.state.Loading = true
	s.mu.Unlock()

	s.log.WithField("component", "session").Debug("restored persisted token")
	return token, nil
}

// Login completes an authentication flow. The token is persisted before
// any in-memory state changes: a failed write leaves the session exactly
// as it was, so an authenticated-but-unpersisted session cannot exist.
func (s *Store) Login(ctx context.Context, creds Credentials) error {
	if creds.User == nil {
		return fmt.Errorf("session: login requires a user")
	}
	if creds.Token == "" {
		return fmt.Errorf("session: login requires a token")
	}

	if err := s.tokens.Save(ctx, creds.Token); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}

	role := creds.Role
	if role == "" {
		role = creds.User.Role
	}
	salonID, stylistID := deriveIDs(creds.User, role)

	s.mu.Lock()
	s.state = Snapshot{
		User:          creds.User,
		Token:         creds.Token,
		Role:          role,
		SalonID:       salonID,
		StylistID:     stylistID,
		Authenticated: true,
		Loading:       false,
		FirstLogin:    creds.FirstLogin,
		Demo:          false,
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"component": "session",
		"role":      role,
		"salon_id":  salonID,
	}).Info("session authenticated")
	return nil
}

// DemoLogin enters the fully client-side simulated state for a role. No
// network or persistence call is made; screens branch on Demo before
// issuing authorization-sensitive mutations.
func (s *Store) DemoLogin(role Role) {
	user := demoUser(role)
	salonID, stylistID := deriveIDs(user, role)

	s.mu.Lock()
	s.state = Snapshot{
		User:          user,
		Token:         DemoToken,
		Role:          role,
		SalonID:       salonID,
		StylistID:     stylistID,
		Authenticated: true,
		Loading:       false,
		Demo:          true,
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"component": "session",
		"role":      role,
	}).Info("demo session started")
}

// Logout deletes the persisted token and resets every field to its zero
// value. The in-memory reset happens even if the storage delete fails, so
// the process always ends up unauthenticated; the storage error is still
// reported.
func (s *Store) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)

	s.mu.Lock()
	s.state = Snapshot{}
	s.mu.Unlock()

	s.log.WithField("component", "session").Info("session cleared")
	if err != nil {
		return fmt.Errorf("session: clear persisted token: %w", err)
	}
	return nil
}

// SetUser replaces the profile and re-derives the salon/stylist
// identifiers, the same way Login does, for when a fresh user record
// arrives independently of a new token.
func (s *Store) SetUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = user
	if user == nil {
		s.state.SalonID = ""
		s.state.StylistID = ""
		return
	}
	role := s.state.Role
	if role == "" {
		role = user.Role
	}
	s.state.SalonID, s.state.StylistID = deriveIDs(user, role)
}

// SetToken replaces the in-memory token without persisting it.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
}

// SetRole replaces the role.
func (s *Store) SetRole(role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Role = role
}

// SetSalonID sets the salon association for late-arriving data.
func (s *Store) SetSalonID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SalonID = id
}

// SetStylistID sets the stylist association for late-arriving data.
func (s *Store) SetStylistID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.StylistID = id
}

// SetFirstLogin sets the first-login flag.
func (s *Store) SetFirstLogin(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FirstLogin = v
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = v
}

// deriveIDs resolves the salon and stylist identifiers from the user
// record. A salon account with no salon reference is its own salon.
func deriveIDs(user *User, role Role) (salonID, stylistID string) {
	salonID = user.Salon.ID
	stylistID = user.Stylist.ID
	if role == RoleSalon && salonID == "" {
		salonID = user.ID
	}
	return salonID, stylistID
}
