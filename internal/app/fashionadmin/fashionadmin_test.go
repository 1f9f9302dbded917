package fashionadmin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fashion-admin/internal/config"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func testConfig() *config.Config {
	return &config.Config{
		Env: "local",
		HTTPServer: config.HTTPServer{
			Address:         "127.0.0.1:0",
			Timeout:         4 * time.Second,
			IdleTimeout:     time.Minute,
			ShutdownTimeout: time.Second,
		},
		JWT:       config.JWT{Secret: "test-secret", AccessTTL: 15 * time.Minute, RefreshTTL: time.Hour},
		Admin:     config.Admin{Username: "admin", Password: "correct-horse", Email: "admin@fashionapp.com", Name: "Admin"},
		Metrics:   config.Metrics{Enabled: true},
		RateLimit: config.RateLimit{RPS: 100, Burst: 100},
	}
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) do(method, target, body string) (int, envelope) {
	c.t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.RemoteAddr = "198.51.100.4:40000"
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	var env envelope
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (c *client) login(username, password string) (int, envelope) {
	c.t.Helper()
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(c.t, err)
	return c.do(http.MethodPost, "/api/v1/auth/login", string(body))
}

func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, newNoopLogger())
	require.NoError(t, err)
	return a
}

func TestApp_Health(t *testing.T) {
	a := newApp(t, testConfig())
	c := &client{t: t, handler: a.Handler()}

	code, env := c.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", env.Status)
}

func TestApp_RequiresToken(t *testing.T) {
	a := newApp(t, testConfig())
	c := &client{t: t, handler: a.Handler()}

	for _, target := range []string{"/api/v1/users", "/api/v1/dashboard/overview", "/api/v1/auth/profile", "/api/v1/audit"} {
		code, env := c.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnauthorized, code, target)
		assert.Equal(t, "Error", env.Status, target)
	}

	c.token = "garbage"
	code, env := c.do(http.MethodGet, "/api/v1/users", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid or expired token", env.Error)
}

func TestApp_LoginAndBrowse(t *testing.T) {
	a := newApp(t, testConfig())
	c := &client{t: t, handler: a.Handler()}

	code, env := c.login("admin", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid credentials", env.Error)

	code, env = c.login("admin", "correct-horse")
	require.Equal(t, http.StatusOK, code)
	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	c.token = tokens.AccessToken

	code, env = c.do(http.MethodGet, "/api/v1/users?page=1&limit=2", "")
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Items       []json.RawMessage `json:"items"`
		CurrentPage int               `json:"currentPage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.CurrentPage)

	code, env = c.do(http.MethodGet, "/api/v1/users/999", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", env.Error)

	code, _ = c.do(http.MethodGet, "/api/v1/dashboard/overview", "")
	assert.Equal(t, http.StatusOK, code)

	code, env = c.do(http.MethodGet, "/api/v1/auth/profile", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"username":"admin"`)

	code, env = c.do(http.MethodPost, "/api/v1/auth/refresh-token", `{"refresh_token":"`+tokens.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "access_token")
}

func TestApp_MutationsAreAudited(t *testing.T) {
	a := newApp(t, testConfig())
	c := &client{t: t, handler: a.Handler()}

	code, env := c.login("admin", "correct-horse")
	require.Equal(t, http.StatusOK, code)
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	c.token = tokens.AccessToken

	code, _ = c.do(http.MethodPost, "/api/v1/users/1/suspend", "")
	require.Equal(t, http.StatusOK, code)

	code, env = c.do(http.MethodGet, "/api/v1/audit", "")
	require.Equal(t, http.StatusOK, code)
	var entries []struct {
		Actor      string `json:"actor"`
		Method     string `json:"method"`
		Path       string `json:"path"`
		StatusCode int    `json:"statusCode"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "admin", entries[0].Actor)
	assert.Equal(t, http.MethodPost, entries[0].Method)
	assert.Equal(t, "/api/v1/users/1/suspend", entries[0].Path)
	assert.Equal(t, http.StatusOK, entries[0].StatusCode)
}

func TestApp_LoginIsRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimit{RPS: 0.001, Burst: 1}
	a := newApp(t, cfg)
	c := &client{t: t, handler: a.Handler()}

	code, _ := c.login("admin", "correct-horse")
	assert.Equal(t, http.StatusOK, code)

	code, env := c.login("admin", "correct-horse")
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "too many requests", env.Error)
}

func TestApp_Metrics(t *testing.T) {
	a := newApp(t, testConfig())
	c := &client{t: t, handler: a.Handler()}
	c.do(http.MethodGet, "/health", "")

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fashion_admin_requests_total")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a := newApp(t, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func (c *client) signIn() {
	c.t.Helper()
	code, env := c.login("admin", "correct-horse")
	require.Equal(c.t, http.StatusOK, code)
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &tokens))
	c.token = tokens.AccessToken
}

func TestApp_PagePastTheEndIsEmpty(t *testing.T) {
	a := newApp(t, testConfig())
	c := &client{t: t, handler: a.Handler()}
	c.signIn()

	for _, target := range []string{
		"/api/v1/users?page=4611686018427387905&limit=2",
		"/api/v1/content?page=9223372036854775807&limit=9223372036854775807",
		"/api/v1/subscriptions?page=2&limit=9223372036854775807",
	} {
		code, env := c.do(http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, code, target)
		var page struct {
			Items []json.RawMessage `json:"items"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.NotNil(t, page.Items, target)
		assert.Empty(t, page.Items, target)
	}
}

func TestApp_Templates(t *testing.T) {
	a := newApp(t, testConfig())
	c := &client{t: t, handler: a.Handler()}
	c.signIn()

	code, env := c.do(http.MethodPost, "/api/v1/templates/create", `{"title":"Autumn Layers","category":"season","text":"Layer knits for cool days"}`)
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		ID        int    `json:"id"`
		CreatedBy string `json:"createdBy"`
		Active    bool   `json:"isActive"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, "admin", created.CreatedBy)
	assert.True(t, created.Active)

	code, env = c.do(http.MethodGet, "/api/v1/templates?category=season", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Autumn Layers")

	code, _ = c.do(http.MethodDelete, "/api/v1/templates/4/delete", "")
	require.Equal(t, http.StatusOK, code)
	code, env = c.do(http.MethodGet, "/api/v1/templates/4", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Template not found", env.Error)

	code, env = c.do(http.MethodGet, "/api/v1/notifications/templates", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Weekly Challenge")

	code, env = c.do(http.MethodGet, "/api/v1/audit", "")
	require.Equal(t, http.StatusOK, code)
	var entries []struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "/api/v1/templates/4/delete", entries[0].Path)
	assert.Equal(t, "/api/v1/templates/create", entries[1].Path)
}
