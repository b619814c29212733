package session

import (
	"context"
	"sync"
	"time"

	"github.com/avdeyev/shelfkeeper/internal/client/api"
	"github.com/avdeyev/shelfkeeper/internal/client/models"
	"github.com/avdeyev/shelfkeeper/internal/client/repositories/credentials"
	"github.com/avdeyev/shelfkeeper/internal/logging"
)

// Status is the session lifecycle state. Initializing holds only while the
// startup verification call is outstanding.
type Status int

const (
	StatusInitializing Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Credentials is the login form payload.
type Credentials struct {
	UsernameOrEmail string
	Password        string
}

// Registration is the sign-up form payload.
type Registration struct {
	Fullname        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Result is returned by successful Login and Register calls so the caller
// can land the user on the right dashboard.
type Result struct {
	User           *models.User
	DashboardRoute string
}

// UserPatch is a partial user record; nil fields are left unchanged.
type UserPatch struct {
	Fullname *string
	Email    *string
	Phone    *string
	Address  *string
}

// DefaultVerifyTimeout bounds the startup verification call so an
// unreachable backend cannot strand the client in a loading state.
const DefaultVerifyTimeout = 10 * time.Second

// Store is the single source of truth for the authenticated session and
// the only writer of the persisted credential storage. All mutations
// serialize on the internal mutex; overlapping operations resolve
// last-write-wins, and a login result that lands after a logout is
// discarded rather than resurrecting the session.
type Store struct {
	api           api.Client
	creds         credentials.Repository
	log           logging.Logger
	verifyTimeout time.Duration

	mu         sync.Mutex
	status     Status
	token      string
	user       *models.User
	generation uint64
	expired    bool
}

// Option configures a Store.
type Option func(*Store)

// WithVerifyTimeout overrides the bound on the startup verification call.
func WithVerifyTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.verifyTimeout = d
		}
	}
}

// NewStore builds a Store over the given API client and credential
// storage. The store starts in Initializing; call Initialize once at
// startup.
func NewStore(client api.Client, creds credentials.Repository, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		api:           client,
		creds:         creds,
		log:           log,
		verifyTimeout: DefaultVerifyTimeout,
		status:        StatusInitializing,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current lifecycle state.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current bearer token, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// ConsumeExpiryNotice reports whether the last drop to unauthenticated was
// caused by a rejected or expired persisted token, and clears the flag.
// The login screen uses it to explain why the user is back at the form.
func (s *Store) ConsumeExpiryNotice() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expired := s.expired
	s.expired = false
	return expired
}

// Initialize restores a persisted session. It never returns an error:
// every failure collapses to unauthenticated, since nothing at startup
// can act on the details. The verification call is the only network
// access and runs under the configured timeout.
func (s *Store) Initialize(ctx context.Context) {
	token, err := s.creds.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read stored token", "error", err)
	}
	user, err := s.creds.User(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read stored user", "error", err)
	}

	if token == "" || user == nil {
		s.drop(ctx, false)
		return
	}

	if expired, expiry := tokenExpired(token, time.Now()); expired {
		s.log.Info(ctx, "stored token already expired", "expiry", expiry)
		s.drop(ctx, true)
		return
	}

	// Attach the candidate token so the verification call can use it.
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.api.SetToken(token)

	vctx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()

	fresh, err := s.api.CurrentUser(vctx)
	if err != nil {
		s.log.Info(ctx, "stored session rejected", "error", err)
		s.drop(ctx, true)
		return
	}

	s.mu.Lock()
	s.status = StatusAuthenticated
	s.user = fresh
	s.expired = false
	s.mu.Unlock()

	// Keep the stored record in line with what the backend just returned.
	if err := s.creds.SaveUser(ctx, fresh); err != nil {
		s.log.Warn(ctx, "failed to refresh stored user", "error", err)
	}
}

// Login authenticates against the backend. On success the token and user
// are persisted atomically with the in-memory update and the result names
// the dashboard for the user's role. On failure nothing is persisted and
// the session stays unauthenticated.
func (s *Store) Login(ctx context.Context, creds Credentials) (*Result, error) {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	auth, err := s.api.Login(ctx, creds.UsernameOrEmail, creds.Password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, gen, auth)
}

// Register creates an account and signs the user in, with the same
// contract as Login. The password confirmation is checked first; a
// mismatch fails with ErrPasswordMismatch before any request is made.
func (s *Store) Register(ctx context.Context, reg Registration) (*Result, error) {
	if reg.Password != reg.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	auth, err := s.api.Register(ctx, api.RegisterRequest{
		Fullname:        reg.Fullname,
		Username:        reg.Username,
		Email:           reg.Email,
		Password:        reg.Password,
		ConfirmPassword: reg.ConfirmPassword,
	})
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, gen, auth)
}

// adopt applies a successful auth response, unless the session moved on
// while the request was in flight.
func (s *Store) adopt(ctx context.Context, gen uint64, auth *api.AuthResult) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return nil, ErrSuperseded
	}

	if err := s.creds.SaveSession(ctx, auth.Token, auth.User); err != nil {
		return nil, err
	}

	s.generation++
	s.status = StatusAuthenticated
	s.token = auth.Token
	s.user = auth.User
	s.expired = false
	s.api.SetToken(auth.Token)

	s.log.Info(ctx, "signed in", "username", auth.User.Username, "role", string(auth.User.Role))
	return &Result{User: auth.User, DashboardRoute: DashboardRouteFor(auth.User.Role)}, nil
}

// Logout notifies the backend on a best-effort basis, then unconditionally
// clears storage and memory. Local logout always succeeds; backend
// reachability never blocks it.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout notify failed", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if err := s.creds.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear stored credentials", "error", err)
	}
	s.status = StatusUnauthenticated
	s.token = ""
	s.user = nil
	s.expired = false
	s.api.SetToken("")
}

// UpdateCurrentUser merges a partial record into the current user and
// re-persists it. The caller has already written the change to the
// backend; no network call happens here.
func (s *Store) UpdateCurrentUser(ctx context.Context, patch UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusAuthenticated || s.user == nil {
		return ErrNotAuthenticated
	}

	updated := *s.user
	if patch.Fullname != nil {
		updated.Fullname = *patch.Fullname
	}
	if patch.Email != nil {
		updated.Email = *patch.Email
	}
	if patch.Phone != nil {
		updated.Phone = *patch.Phone
	}
	if patch.Address != nil {
		updated.Address = *patch.Address
	}

	if err := s.creds.SaveUser(ctx, &updated); err != nil {
		return err
	}
	s.user = &updated
	return nil
}

// drop clears storage and memory and settles on unauthenticated. expired
// marks whether a previously persisted token was rejected, so the login
// screen can tell the user why they are back at the form.
func (s *Store) drop(ctx context.Context, expired bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.creds.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear stored credentials", "error", err)
	}
	s.status = StatusUnauthenticated
	s.token = ""
	s.user = nil
	s.expired = expired
	s.api.SetToken("")
}
