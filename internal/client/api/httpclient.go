package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/avdeyev/shelfkeeper/internal/client/models"
	"github.com/avdeyev/shelfkeeper/internal/logging"
	"github.com/google/uuid"
)

const (
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
	mePath       = "/api/auth/me"
	logoutPath   = "/api/auth/logout"
)

// Responses larger than this are cut off before decoding.
const maxResponseBody = 4 << 20

// HTTPClient talks to the backend over JSON/HTTP. It owns the bearer token
// for outgoing requests; the session store updates it through SetToken.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the backend at baseURL. The timeout
// bounds every request end to end.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do performs one request and decodes the response envelope. Transport
// failures map to ErrUnavailable, a 401 to ErrUnauthorized, and an
// undecodable body to ErrUnexpectedResponse. Envelope-level failures are
// left to the caller, which knows the route's semantics.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (*envelope, int, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, resp.StatusCode, ErrUnauthorized
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	env := &envelope{}
	if len(raw) == 0 {
		env.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
		return env, resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return env, resp.StatusCode, nil
}

func (c *HTTPClient) decodeAuthResult(env *envelope) (*AuthResult, error) {
	var res AuthResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if res.Token == "" || res.User == nil {
		return nil, ErrUnexpectedResponse
	}
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error) {
	body := map[string]string{
		"username_or_email": usernameOrEmail,
		"password":          password,
	}
	env, _, err := c.do(ctx, http.MethodPost, loginPath, body)
	if err != nil {
		// On the login route a 401 means the credentials were refused,
		// not that a token went stale.
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !env.Success {
		if len(env.Errors) > 0 {
			return nil, &ValidationError{Fields: env.Errors}
		}
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, env.Message)
		}
		return nil, ErrInvalidCredentials
	}
	return c.decodeAuthResult(env)
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	env, status, err := c.do(ctx, http.MethodPost, registerPath, req)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.failure(status)
	}
	return c.decodeAuthResult(env)
}

// CurrentUser verifies the attached token against the backend and returns
// the user it belongs to. A 401 surfaces as ErrUnauthorized.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	env, status, err := c.do(ctx, http.MethodGet, mePath, nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.failure(status)
	}
	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if user.ID == "" {
		return nil, ErrUnexpectedResponse
	}
	return &user, nil
}

// Logout notifies the backend that the session ends. The caller decides
// whether a failure matters; locally the session is torn down regardless.
func (c *HTTPClient) Logout(ctx context.Context) error {
	env, status, err := c.do(ctx, http.MethodPost, logoutPath, nil)
	if err != nil {
		return err
	}
	if !env.Success {
		return env.failure(status)
	}
	return nil
}

// request is the shared path for the generic resource operations.
func (c *HTTPClient) request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	env, status, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.failure(status)
	}
	return env.Data, nil
}

func (c *HTTPClient) List(ctx context.Context, path string) ([]json.RawMessage, error) {
	data, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return items, nil
}

func (c *HTTPClient) Get(ctx context.Context, path, id string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, path+"/"+id, nil)
}

func (c *HTTPClient) Create(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPost, path, body)
}

func (c *HTTPClient) Update(ctx context.Context, path, id string, body any) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPut, path+"/"+id, body)
}

func (c *HTTPClient) Delete(ctx context.Context, path, id string) error {
	_, err := c.request(ctx, http.MethodDelete, path+"/"+id, nil)
	return err
}
