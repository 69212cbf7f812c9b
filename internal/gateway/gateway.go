// Package gateway is the only component allowed to talk to the remote
// LMS API. Every operation resolves to a result value: auth failures,
// transport failures and malformed responses are all folded into
// {Success: false, Error: ...} rather than surfaced as Go errors, so
// nothing network-shaped ever propagates past the session boundary.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/starter-squad/lms-portal/internal/credstore"
)

const (
	errNetworkLogin = "Network error. Please try again."
	errNetwork      = "Network error"
	errNoToken      = "No token found"

	fallbackLoginError   = "Login failed"
	fallbackVerifyError  = "Session invalid"
	fallbackRegisterFail = "Registration failed"
)

// UserPayload is the wire shape of a user, as the API returns it. Role
// stays a raw string here; parsing it into the closed role set is the
// session manager's call.
type UserPayload struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  string      `json:"role"`
}

type LoginResult struct {
	Success bool
	User    UserPayload
	Token   string
	Error   string
}

type FetchResult struct {
	Success bool
	User    UserPayload
	Error   string
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type RegisterResult struct {
	Success bool
	Message string
	Error   string
}

// envelope is the API's standard response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	store   credstore.Store
	http    *http.Client
}

func New(baseURL string, store credstore.Store) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		store:   store,
		http:    &http.Client{},
	}
}

// Login exchanges credentials for a token. It does not touch the
// credential store; the caller persists the record on success.
func (c *Client) Login(ctx context.Context, email, password string) LoginResult {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return LoginResult{Error: errNetworkLogin}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Login request failed: %v", err)
		return LoginResult{Error: errNetworkLogin}
	}
	defer resp.Body.Close()

	env, raw := readEnvelope(resp.Body)

	if !is2xx(resp.StatusCode) {
		return LoginResult{Error: serverMessage(env, fallbackLoginError)}
	}

	var payload struct {
		UserPayload
		Token string `json:"token"`
	}
	if err := json.Unmarshal(dataOrRaw(env, raw), &payload); err != nil || payload.Token == "" {
		log.Printf("Login response had an unusable payload: %v", err)
		return LoginResult{Error: fallbackLoginError}
	}

	return LoginResult{
		Success: true,
		User:    payload.UserPayload,
		Token:   payload.Token,
	}
}

// FetchUser fetches the user record behind the stored token, which is
// how a stored session gets verified. If no token is stored it fails
// fast without a network call.
func (c *Client) FetchUser(ctx context.Context, email string) FetchResult {
	token, ok := c.storedToken(ctx)
	if !ok {
		return FetchResult{Error: errNoToken}
	}

	endpoint := c.baseURL + "/api/users/details?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return FetchResult{Error: errNetwork}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.authedClient(ctx, token).Do(req)
	if err != nil {
		log.Printf("Fetch user request failed: %v", err)
		return FetchResult{Error: errNetwork}
	}
	defer resp.Body.Close()

	env, raw := readEnvelope(resp.Body)

	if !is2xx(resp.StatusCode) {
		return FetchResult{Error: serverMessage(env, fallbackVerifyError)}
	}

	// The API returns either {data: user} or the bare user object
	var user UserPayload
	if err := json.Unmarshal(dataOrRaw(env, raw), &user); err != nil {
		log.Printf("Fetch user response had an unusable payload: %v", err)
		return FetchResult{Error: fallbackVerifyError}
	}

	return FetchResult{Success: true, User: user}
}

// Logout attempts a remote session invalidation. It is a courtesy:
// whatever happens here, the caller proceeds to clear local state.
func (c *Client) Logout(ctx context.Context) {
	token, ok := c.storedToken(ctx)
	if !ok {
		return // nothing to invalidate remotely
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/logout", nil)
	if err != nil {
		return
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.authedClient(ctx, token).Do(req)
	if err != nil {
		log.Printf("Logout request failed (ignored): %v", err)
		return
	}
	resp.Body.Close()
}

// Register creates a new account. No token is issued; the caller is
// expected to log in afterwards.
func (c *Client) Register(ctx context.Context, r RegisterRequest) RegisterResult {
	body, _ := json.Marshal(r)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/register", bytes.NewReader(body))
	if err != nil {
		return RegisterResult{Error: fallbackRegisterFail}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Register request failed: %v", err)
		return RegisterResult{Error: fallbackRegisterFail}
	}
	defer resp.Body.Close()

	env, _ := readEnvelope(resp.Body)

	if !is2xx(resp.StatusCode) {
		return RegisterResult{Error: serverMessage(env, fallbackRegisterFail)}
	}

	return RegisterResult{Success: true, Message: env.Message}
}

func (c *Client) storedToken(ctx context.Context) (string, bool) {
	rec, err := c.store.Load(ctx)
	if err != nil || rec == nil || rec.Token == "" {
		return "", false
	}
	return rec.Token, true
}

// authedClient wraps the base client with a bearer-token transport.
func (c *Client) authedClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

func readEnvelope(body io.Reader) (envelope, []byte) {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return envelope{}, nil
	}

	var env envelope
	// Best-effort: non-JSON bodies just produce an empty envelope
	_ = json.Unmarshal(raw, &env)
	return env, raw
}

func dataOrRaw(env envelope, raw []byte) []byte {
	if len(env.Data) > 0 && string(env.Data) != "null" {
		return env.Data
	}
	return raw
}

func serverMessage(env envelope, fallback string) string {
	if env.Message != "" {
		return env.Message
	}
	return fallback
}
