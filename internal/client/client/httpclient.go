package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/buildinfo"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/google/uuid"
)

const (
	DefaultTimeout = 10 * time.Second

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 1 << 20

	RequestIDHeaderName = "X-Request-ID"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	newID      func() string
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. "http://localhost:8000"). A trailing slash is ignored.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  buildinfo.UserAgent(),
		newID:      uuid.NewString,
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func (c *HTTPClient) WithHTTPClient(hc *http.Client) *HTTPClient {
	c.httpClient = hc
	return c
}

type response struct {
	status    int
	body      []byte
	requestID string
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (c *HTTPClient) do(ctx context.Context, method, path, accessToken string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := c.newID()
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeaderName, requestID)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, c.mapError(ctx, err)
	}

	return &response{status: resp.StatusCode, body: data, requestID: requestID}, nil
}

// mapError turns a transport failure into ErrUnavailable, except when the
// caller's context ended, which is reported as is.
func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func decode(r *response, v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("%w: HTTP %d: %v", ErrInvalidResponse, r.status, err)
	}
	return nil
}

func apiError(r *response) *APIError {
	var body struct {
		Detail string `json:"detail"`
	}
	// the detail is optional; an undecodable body just leaves it empty
	_ = json.Unmarshal(r.body, &body)
	return &APIError{Status: r.status, Detail: body.Detail, Body: r.body}
}

// Login posts the credentials. The body is decoded whatever the status is,
// since failures are signalled by its shape rather than by the status code.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, LoginPath, "", creds)
	if err != nil {
		return nil, err
	}

	var out models.LoginResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register posts the credentials and returns the decoded body together with
// its raw bytes. A JSON body that is not an object (a bare list of errors,
// say) carries no id and is returned with only Raw set; a body that is not
// JSON at all is ErrInvalidResponse.
func (c *HTTPClient) Register(ctx context.Context, creds models.Credentials) (*models.RegisterResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, RegisterPath, "", creds)
	if err != nil {
		return nil, err
	}

	if !json.Valid(resp.body) {
		return nil, fmt.Errorf("%w: HTTP %d: register body is not JSON", ErrInvalidResponse, resp.status)
	}

	var out models.RegisterResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		out = models.RegisterResponse{}
	}
	out.Raw = resp.body
	return &out, nil
}

// ResendVerification asks the server to send the verification email again.
// Any non-2xx status is returned as *APIError.
func (c *HTTPClient) ResendVerification(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email"`
	}{Email: email}

	resp, err := c.do(ctx, http.MethodPost, ResendVerificationPath, "", payload)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return apiError(resp)
	}
	return nil
}

// Me returns the account the access token belongs to.
func (c *HTTPClient) Me(ctx context.Context, accessToken string) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodGet, MePath, accessToken, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		return nil, ErrUnauthorized
	case !resp.ok():
		return nil, apiError(resp)
	}

	var u models.User
	if err := decode(resp, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout ends the server-side session of the access token.
func (c *HTTPClient) Logout(ctx context.Context, accessToken string) error {
	resp, err := c.do(ctx, http.MethodPost, LogoutPath, accessToken, nil)
	if err != nil {
		return err
	}

	switch {
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		return ErrUnauthorized
	case !resp.ok():
		return apiError(resp)
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
