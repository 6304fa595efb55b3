package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method  string
	path    string
	headers http.Header
	body    map[string]any
}

// newServer answers every request with status and body and records the
// last request it saw.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		c.headers = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		c.body = nil
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &c.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func newTestClient(srv *httptest.Server) *HTTPClient {
	c := NewHTTPClient(srv.URL+"/", time.Second)
	c.newID = func() string { return "req-1" }
	return c
}

func TestLogin_Success(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"access":"tok1","refresh":"ref1","user":{"email":"a@b.com"}}`)
	c := newTestClient(srv)

	resp, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	assert.Equal(t, "tok1", resp.Access)
	assert.Equal(t, "ref1", resp.Refresh)
	require.NotNil(t, resp.User)
	assert.Equal(t, "a@b.com", resp.User.Email)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, LoginPath, got.path)
	assert.Equal(t, map[string]any{"email": "a@b.com", "password": "x"}, got.body)
	assert.Equal(t, "application/json", got.headers.Get("Content-Type"))
	assert.Equal(t, "req-1", got.headers.Get(RequestIDHeaderName))
	assert.NotEmpty(t, got.headers.Get("User-Agent"))
	assert.Empty(t, got.headers.Get("Authorization"))
}

func TestLogin_ErrorStatusStillDecoded(t *testing.T) {
	srv, _ := newServer(t, http.StatusForbidden, `{"detail":"Email verification required"}`)
	c := newTestClient(srv)

	resp, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.Empty(t, resp.Access)
	assert.Equal(t, "Email verification required", resp.Detail)
}

func TestLogin_NonJSONBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	c := newTestClient(srv)

	_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestLogin_ServerDown(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	c := newTestClient(srv)
	srv.Close()

	_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_CancelledContextIsNotUnavailable(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	c := newTestClient(srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Login(ctx, models.Credentials{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, errors.Is(err, ErrUnavailable))
}

func TestRegister_KeepsRawBody(t *testing.T) {
	srv, got := newServer(t, http.StatusBadRequest, `{"email":["user with this email already exists."]}`)
	c := newTestClient(srv)

	resp, err := c.Register(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.False(t, resp.HasID())
	assert.JSONEq(t, `{"email":["user with this email already exists."]}`, string(resp.Raw))
	assert.Equal(t, RegisterPath, got.path)
}

func TestRegister_NonObjectBodyKeptRaw(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, `["A user with that email already exists."]`)
	c := newTestClient(srv)

	resp, err := c.Register(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.False(t, resp.HasID())
	assert.Equal(t, `["A user with that email already exists."]`, string(resp.Raw))
}

func TestRegister_NonJSONBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, `<h1>Server Error</h1>`)
	c := newTestClient(srv)

	_, err := c.Register(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestRegister_Created(t *testing.T) {
	srv, _ := newServer(t, http.StatusCreated, `{"id":42,"email":"a@b.com"}`)
	c := newTestClient(srv)

	resp, err := c.Register(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.True(t, resp.HasID())
}

func TestResendVerification(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv, got := newServer(t, http.StatusOK, `{"detail":"Verification email sent."}`)
		c := newTestClient(srv)

		require.NoError(t, c.ResendVerification(context.Background(), "a@b.com"))
		assert.Equal(t, ResendVerificationPath, got.path)
		assert.Equal(t, map[string]any{"email": "a@b.com"}, got.body)
	})

	t.Run("error with detail", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusTooManyRequests, `{"detail":"Too many requests"}`)
		c := newTestClient(srv)

		err := c.ResendVerification(context.Background(), "a@b.com")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
		assert.Equal(t, "Too many requests", apiErr.Detail)
		assert.Equal(t, "api error (HTTP 429): Too many requests", apiErr.Error())
	})

	t.Run("error without json", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusInternalServerError, `oops`)
		c := newTestClient(srv)

		err := c.ResendVerification(context.Background(), "a@b.com")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Empty(t, apiErr.Detail)
		assert.Equal(t, "api error (HTTP 500)", apiErr.Error())
	})
}

func TestMe(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv, got := newServer(t, http.StatusOK, `{"id":1,"email":"a@b.com","is_email_verified":true}`)
		c := newTestClient(srv)

		u, err := c.Me(context.Background(), "tok1")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", u.Email)
		assert.Equal(t, http.MethodGet, got.method)
		assert.Equal(t, MePath, got.path)
		assert.Equal(t, "Bearer tok1", got.headers.Get("Authorization"))
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusUnauthorized, `{"detail":"Given token not valid for any token type"}`)
		c := newTestClient(srv)

		_, err := c.Me(context.Background(), "stale")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("server error", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusServiceUnavailable, `{"detail":"maintenance"}`)
		c := newTestClient(srv)

		_, err := c.Me(context.Background(), "tok1")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "maintenance", apiErr.Detail)
	})
}

func TestLogout(t *testing.T) {
	srv, got := newServer(t, http.StatusResetContent, ``)
	c := newTestClient(srv)

	require.NoError(t, c.Logout(context.Background(), "tok1"))
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, LogoutPath, got.path)
	assert.Equal(t, "Bearer tok1", got.headers.Get("Authorization"))
	assert.Empty(t, got.headers.Get("Content-Type"))

	srv2, _ := newServer(t, http.StatusForbidden, ``)
	require.ErrorIs(t, newTestClient(srv2).Logout(context.Background(), "tok1"), ErrUnauthorized)
}

func TestTimeoutMapsToUnavailable(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	c := NewHTTPClient(srv.URL, time.Minute).WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond})
	err := c.ResendVerification(context.Background(), "a@b.com")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestNewHTTPClient_Defaults(t *testing.T) {
	c := NewHTTPClient("http://localhost:8000/", 0)
	assert.Equal(t, "http://localhost:8000", c.baseURL)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	require.NoError(t, c.Close())
}
