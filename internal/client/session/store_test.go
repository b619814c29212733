package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/avdeyev/shelfkeeper/internal/client/api"
	"github.com/avdeyev/shelfkeeper/internal/client/models"
	"github.com/avdeyev/shelfkeeper/internal/client/repositories/credentials"
	"github.com/avdeyev/shelfkeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func seedSession(t *testing.T, db *sql.DB, token string, user *models.User) {
	t.Helper()
	encoded, err := json.Marshal(user)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO credentials(key,value) VALUES('token',?),('user',?)`, []byte(token), encoded)
	require.NoError(t, err)
}

func storedToken(t *testing.T, db *sql.DB) string {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM credentials WHERE key='token'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return ""
	}
	require.NoError(t, err)
	return string(v)
}

func storedRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&n))
	return n
}

func nopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func expiredJWT(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

// ---- fake client ----

// fakeClient implements api.Client for session store unit tests.
type fakeClient struct {
	mu sync.Mutex

	loginRet   *api.AuthResult
	loginErr   error
	loginCalls int
	onLogin    func()

	registerRet   *api.AuthResult
	registerErr   error
	registerCalls int

	currentRet   *models.User
	currentErr   error
	currentCalls int

	logoutErr   error
	logoutCalls int

	token string
}

func (f *fakeClient) Login(ctx context.Context, usernameOrEmail, password string) (*api.AuthResult, error) {
	f.mu.Lock()
	f.loginCalls++
	hook := f.onLogin
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return f.loginRet, f.loginErr
}

func (f *fakeClient) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	return f.registerRet, f.registerErr
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentCalls++
	return f.currentRet, f.currentErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeClient) List(ctx context.Context, path string) ([]json.RawMessage, error) {
	return nil, nil
}
func (f *fakeClient) Get(ctx context.Context, path, id string) (json.RawMessage, error) {
	return nil, nil
}
func (f *fakeClient) Create(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return nil, nil
}
func (f *fakeClient) Update(ctx context.Context, path, id string, body any) (json.RawMessage, error) {
	return nil, nil
}
func (f *fakeClient) Delete(ctx context.Context, path, id string) error { return nil }

func newTestStore(t *testing.T, fc *fakeClient) (*Store, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	repo := credentials.NewSQLiteRepository(db)
	return NewStore(fc, repo, nopLogger()), db
}

var librarian = &models.User{
	ID:       "u1",
	Fullname: "Lena Orlova",
	Username: "lorlova",
	Email:    "lorlova@school.example",
	Role:     models.RoleLibrarian,
}

// ---- TESTS ----

func TestInitialize_NoStoredCredentials(t *testing.T) {
	fc := &fakeClient{}
	store, _ := newTestStore(t, fc)

	store.Initialize(context.Background())

	require.Equal(t, StatusUnauthenticated, store.Status())
	require.Nil(t, store.CurrentUser())
	require.Zero(t, fc.currentCalls, "no verification call without a stored token")
	require.False(t, store.ConsumeExpiryNotice(), "fresh install shows no expiry notice")
}

func TestInitialize_ValidStoredSession(t *testing.T) {
	fc := &fakeClient{currentRet: librarian}
	store, db := newTestStore(t, fc)
	seedSession(t, db, "tok-1", librarian)

	store.Initialize(context.Background())

	require.Equal(t, StatusAuthenticated, store.Status())
	require.Equal(t, 1, fc.currentCalls)
	require.Equal(t, "tok-1", store.Token())
	require.Equal(t, "tok-1", fc.token, "token attached to the api client")
	user := store.CurrentUser()
	require.NotNil(t, user)
	require.Equal(t, "lorlova", user.Username)
}

func TestInitialize_RejectedToken_CleansUp(t *testing.T) {
	fc := &fakeClient{currentErr: api.ErrUnauthorized}
	store, db := newTestStore(t, fc)
	seedSession(t, db, "stale-token", librarian)

	store.Initialize(context.Background())

	require.Equal(t, StatusUnauthenticated, store.Status())
	require.Zero(t, storedRows(t, db), "storage cleared after rejection")
	require.Empty(t, store.Token())
	require.Empty(t, fc.token)
	require.True(t, store.ConsumeExpiryNotice())
	require.False(t, store.ConsumeExpiryNotice(), "notice is consumed once")

	// Idempotent: running again from the cleaned state stays put.
	store.Initialize(context.Background())
	require.Equal(t, StatusUnauthenticated, store.Status())
	require.Zero(t, storedRows(t, db))
}

func TestInitialize_ExpiredJWT_SkipsNetwork(t *testing.T) {
	fc := &fakeClient{currentRet: librarian}
	store, db := newTestStore(t, fc)
	seedSession(t, db, expiredJWT(t), librarian)

	store.Initialize(context.Background())

	require.Equal(t, StatusUnauthenticated, store.Status())
	require.Zero(t, fc.currentCalls, "expired token never reaches the backend")
	require.Zero(t, storedRows(t, db))
	require.True(t, store.ConsumeExpiryNotice())
}

func TestLogin_Success_PersistsAndRoutes(t *testing.T) {
	fc := &fakeClient{loginRet: &api.AuthResult{Token: "tok-2", User: librarian}}
	store, db := newTestStore(t, fc)
	store.Initialize(context.Background())

	result, err := store.Login(context.Background(), Credentials{
		UsernameOrEmail: "lorlova", Password: "secret",
	})
	require.NoError(t, err)

	require.Equal(t, StatusAuthenticated, store.Status())
	require.Equal(t, LibrarianDashboardRoute, result.DashboardRoute)
	require.Equal(t, "tok-2", storedToken(t, db))
	require.Equal(t, 2, storedRows(t, db), "token and user both persisted")
	require.Equal(t, "tok-2", fc.token)
}

func TestLogin_Failure_NothingPersisted(t *testing.T) {
	fc := &fakeClient{loginErr: api.ErrInvalidCredentials}
	store, db := newTestStore(t, fc)
	store.Initialize(context.Background())

	_, err := store.Login(context.Background(), Credentials{
		UsernameOrEmail: "lorlova", Password: "wrong",
	})
	require.ErrorIs(t, err, api.ErrInvalidCredentials)
	require.Equal(t, StatusUnauthenticated, store.Status())
	require.Zero(t, storedRows(t, db))
}

func TestRegister_PasswordMismatch_NoRequest(t *testing.T) {
	fc := &fakeClient{}
	store, _ := newTestStore(t, fc)
	store.Initialize(context.Background())

	_, err := store.Register(context.Background(), Registration{
		Fullname:        "Ivan Petrov",
		Username:        "ipetrov",
		Email:           "ipetrov@school.example",
		Password:        "abc123",
		ConfirmPassword: "abc124",
	})
	require.ErrorIs(t, err, ErrPasswordMismatch)
	require.Zero(t, fc.registerCalls, "mismatch must be caught before any request")
	require.Equal(t, StatusUnauthenticated, store.Status())
}

func TestRegister_Success(t *testing.T) {
	student := &models.User{ID: "u2", Fullname: "Ivan Petrov", Username: "ipetrov", Role: models.RoleStudent}
	fc := &fakeClient{registerRet: &api.AuthResult{Token: "tok-3", User: student}}
	store, db := newTestStore(t, fc)
	store.Initialize(context.Background())

	result, err := store.Register(context.Background(), Registration{
		Username: "ipetrov", Password: "abc123", ConfirmPassword: "abc123",
	})
	require.NoError(t, err)
	require.Equal(t, StudentDashboardRoute, result.DashboardRoute)
	require.Equal(t, StatusAuthenticated, store.Status())
	require.Equal(t, "tok-3", storedToken(t, db))
}

func TestLogout_ClearsEvenWhenNotifyFails(t *testing.T) {
	fc := &fakeClient{
		loginRet:  &api.AuthResult{Token: "tok-4", User: librarian},
		logoutErr: errors.New("backend down"),
	}
	store, db := newTestStore(t, fc)
	store.Initialize(context.Background())
	_, err := store.Login(context.Background(), Credentials{UsernameOrEmail: "l", Password: "p"})
	require.NoError(t, err)

	store.Logout(context.Background())

	require.Equal(t, 1, fc.logoutCalls)
	require.Equal(t, StatusUnauthenticated, store.Status())
	require.Nil(t, store.CurrentUser())
	require.Empty(t, store.Token())
	require.Zero(t, storedRows(t, db), "storage empty regardless of notify outcome")
	require.Empty(t, fc.token)
}

func TestLogin_DiscardedWhenLogoutWins(t *testing.T) {
	fc := &fakeClient{loginRet: &api.AuthResult{Token: "tok-5", User: librarian}}
	store, db := newTestStore(t, fc)
	store.Initialize(context.Background())

	// Fire a logout while the login request is in flight.
	fc.onLogin = func() { store.Logout(context.Background()) }

	_, err := store.Login(context.Background(), Credentials{UsernameOrEmail: "l", Password: "p"})
	require.ErrorIs(t, err, ErrSuperseded)
	require.Equal(t, StatusUnauthenticated, store.Status())
	require.Zero(t, storedRows(t, db), "stale login result must not resurrect the session")
}

func TestUpdateCurrentUser_MergesAndPersists(t *testing.T) {
	fc := &fakeClient{loginRet: &api.AuthResult{Token: "tok-6", User: librarian}}
	store, db := newTestStore(t, fc)
	store.Initialize(context.Background())
	_, err := store.Login(context.Background(), Credentials{UsernameOrEmail: "l", Password: "p"})
	require.NoError(t, err)

	email := "new@school.example"
	require.NoError(t, store.UpdateCurrentUser(context.Background(), UserPatch{Email: &email}))

	user := store.CurrentUser()
	require.Equal(t, email, user.Email)
	require.Equal(t, "Lena Orlova", user.Fullname, "untouched fields keep their values")

	var stored []byte
	require.NoError(t, db.QueryRow(`SELECT value FROM credentials WHERE key='user'`).Scan(&stored))
	var persisted models.User
	require.NoError(t, json.Unmarshal(stored, &persisted))
	require.Equal(t, email, persisted.Email)
}

func TestUpdateCurrentUser_RequiresAuthentication(t *testing.T) {
	fc := &fakeClient{}
	store, _ := newTestStore(t, fc)
	store.Initialize(context.Background())

	email := "x@y.z"
	err := store.UpdateCurrentUser(context.Background(), UserPatch{Email: &email})
	require.ErrorIs(t, err, ErrNotAuthenticated)
}
