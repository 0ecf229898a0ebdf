package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/zapdesk/zapdesk/internal/client/models"
	"github.com/zapdesk/zapdesk/internal/common"
)

// HTTPClient talks to the CRM backend over HTTP+JSON.
//
// No timeout is enforced beyond the one configured on the underlying
// http.Client; a hung request simply keeps its caller's loading state alive.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the given base URL ("http://host:port").
// A nil httpc falls back to a plain http.Client.
func NewHTTPClient(baseURL string, httpc *http.Client) *HTTPClient {
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// do issues one request. A non-nil in is JSON-encoded as the body; a non-nil
// out receives the decoded success payload. Transport and decode failures map
// to common.ErrUnavailable, non-2xx statuses to *BackendError.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.backendError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", common.ErrUnavailable, err)
		}
	}
	return nil
}

// backendError extracts the backend-reported message from an error response.
// Bodies of the form {"error": "..."} or {"message": "..."} are understood;
// anything else falls back to the HTTP status text.
func (c *HTTPClient) backendError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &BackendError{Status: resp.StatusCode, Message: msg}
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	req := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &resp); err != nil {
		return "", nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, fmt.Errorf("%w: incomplete login response", common.ErrUnavailable)
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (string, *models.User, error) {
	req := map[string]string{"name": name, "email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", req, &resp); err != nil {
		return "", nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, fmt.Errorf("%w: incomplete register response", common.ErrUnavailable)
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%w: empty identity response", common.ErrUnavailable)
	}
	return resp.User, nil
}

func (c *HTTPClient) OnboardingStatus(ctx context.Context) (bool, error) {
	var resp struct {
		Completed bool `json:"completed"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/onboarding/status", nil, &resp); err != nil {
		return false, err
	}
	return resp.Completed, nil
}

func (c *HTTPClient) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	var resp []*models.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id string) error {
	path := "/api/notifications/" + url.PathEscape(id) + "/read"
	return c.do(ctx, http.MethodPut, path, nil, nil)
}
