// Package client is the Go API client for the items service. It stores the
// session token pair and makes access token expiry invisible to callers:
// when a request comes back 401, the client refreshes the access token once
// and replays the request, coordinating concurrent callers so that only one
// refresh call is ever in flight.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mIRRONEL/4-tier-app/internal/model"
)

const defaultTimeout = 10 * time.Second

// Client talks to the items service over HTTP. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	username     string
	accessToken  string
	refreshToken string
	refreshing   bool
	waiters      []chan renewResult
}

// New constructs a Client bound to the given base URL. The HTTP client
// timeout bounds every call, including an in-flight refresh, so queued
// callers are never left suspended.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Username returns the display name of the logged-in user, if any.
func (c *Client) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username
}

// Signup creates a new account.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.call(ctx, http.MethodPost, "/auth/signup", body, nil, false)
}

// Login authenticates and stores the session token pair.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		Username     string `json:"username"`
	}
	if err := c.call(ctx, http.MethodPost, "/auth/login", body, &resp, false); err != nil {
		return err
	}

	c.mu.Lock()
	c.username = resp.Username
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	c.mu.Unlock()
	return nil
}

// Logout invalidates the session server-side and clears the stored tokens
// and coordinator state.
func (c *Client) Logout(ctx context.Context) error {
	err := c.call(ctx, http.MethodPost, "/auth/logout", nil, nil, true)
	c.reset()
	return err
}

// Items fetches one page of the listing.
func (c *Client) Items(ctx context.Context, page, limit int) (model.ItemPage, error) {
	var result model.ItemPage
	path := fmt.Sprintf("/items?page=%d&limit=%d", page, limit)
	if err := c.call(ctx, http.MethodGet, path, nil, &result, true); err != nil {
		return model.ItemPage{}, err
	}
	return result, nil
}

// SearchItems fetches one page of search results. The query is user input
// and gets URL-encoded, so reserved characters cannot alter other parameters.
func (c *Client) SearchItems(ctx context.Context, query string, page, limit int) (model.ItemPage, error) {
	var result model.ItemPage
	params := url.Values{
		"q":     {query},
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	path := "/items/search?" + params.Encode()
	if err := c.call(ctx, http.MethodGet, path, nil, &result, true); err != nil {
		return model.ItemPage{}, err
	}
	return result, nil
}

// CreateItem creates an item.
func (c *Client) CreateItem(ctx context.Context, title, description string) (model.Item, error) {
	body := map[string]string{"title": title, "description": description}
	var item model.Item
	if err := c.call(ctx, http.MethodPost, "/items", body, &item, true); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// DeleteItem deletes an item by ID.
func (c *Client) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return c.call(ctx, http.MethodDelete, "/items/"+id.String(), nil, nil, true)
}

// call issues one request. Authenticated calls that come back 401 go through
// the refresh coordinator and are replayed exactly once with the new token.
func (c *Client) call(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var token string
	if authenticated {
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
		if token == "" {
			return ErrNotAuthenticated
		}
	}

	status, raw, err := c.roundTrip(ctx, method, path, body, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && authenticated {
		// One-shot retry guard: a second 401 after a successful refresh is
		// final, never another refresh.
		newToken, refreshErr := c.renewAccess(ctx)
		if refreshErr != nil {
			return refreshErr
		}
		status, raw, err = c.roundTrip(ctx, method, path, body, newToken)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			return ErrUnauthorized
		}
	}

	if status >= 400 {
		return apiError(status, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, token string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, raw, nil
}

// reset clears the session and coordinator state. Continuations queued
// behind an in-flight refresh are rejected, never dropped: a dropped channel
// would leave its caller blocked for as long as its context lives.
func (c *Client) reset() {
	c.mu.Lock()
	c.username = ""
	c.accessToken = ""
	c.refreshToken = ""
	c.refreshing = false
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- renewResult{err: ErrNotAuthenticated}
	}
}

func apiError(status int, raw []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("server returned %d: %s", status, payload.Error)
	}
	return fmt.Errorf("server returned %d", status)
}
