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
	"sync"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
)

// HTTPClient implements Client over the JSON HTTP API. It is safe for
// concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

type authResponse struct {
	Token  string `json:"token"`
	Player Player `json:"player"`
}

func (c *HTTPClient) Register(ctx context.Context, username, email string, password []byte) (*Player, error) {
	req := map[string]string{"username": username, "password": string(password)}
	if email != "" {
		req["email"] = email
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.Token)
	return &resp.Player, nil
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*Player, error) {
	req := map[string]string{"username": username, "password": string(password)}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.Token)
	return &resp.Player, nil
}

// Logout tells the server to mark the player offline and forgets the token.
// The token is dropped even when the call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

func (c *HTTPClient) Verify(ctx context.Context) (*Player, error) {
	var resp struct {
		Valid  bool   `json:"valid"`
		Player Player `json:"player"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Player, nil
}

// GetData returns the player's save, or nil when no character exists yet.
func (c *HTTPClient) GetData(ctx context.Context) (*SaveData, error) {
	var resp struct {
		HasCharacter bool      `json:"hasCharacter"`
		Data         *SaveData `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/player/data", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.HasCharacter {
		return nil, nil
	}
	return resp.Data, nil
}

// SaveData sends data as the complete save. Fields it omits are reset to
// their starting values by the server.
func (c *HTTPClient) SaveData(ctx context.Context, data json.RawMessage) error {
	return c.do(ctx, http.MethodPut, "/api/player/data", data, nil)
}

func (c *HTTPClient) CreateCharacter(ctx context.Context, name, class string) (*SaveData, error) {
	var resp struct {
		Data SaveData `json:"data"`
	}
	req := map[string]string{"name": name, "class": class}
	if err := c.do(ctx, http.MethodPost, "/api/player/character", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *HTTPClient) Online(ctx context.Context) ([]OnlinePlayer, error) {
	var resp struct {
		Count   int            `json:"count"`
		Players []OnlinePlayer `json:"players"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/player/online", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Players, nil
}

func (c *HTTPClient) Heartbeat(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/player/heartbeat", nil, nil)
}

// Health reports whether the server and its database are up.
func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case json.RawMessage:
		reader = bytes.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &e) == nil {
			apiErr.Kind, apiErr.Message = e.Error, e.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
