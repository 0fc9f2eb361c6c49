package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type renewResult struct {
	token string
	err   error
}

// renewAccess exchanges the stored refresh token for a new access token,
// coordinating concurrent callers: the first caller becomes the leader and
// issues the single refresh call; everyone else queues a continuation and
// waits for its outcome. Continuations resolve in enqueue order.
func (c *Client) renewAccess(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan renewResult, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case result := <-ch:
			return result.token, result.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	c.refreshing = true
	refreshToken := c.refreshToken
	c.mu.Unlock()

	if refreshToken == "" {
		c.settle("", ErrNotAuthenticated)
		return "", ErrNotAuthenticated
	}

	token, err := c.postRefresh(ctx, refreshToken)
	if err != nil {
		// The refresh token was rejected or the call failed: force a logout
		// so callers land back on the login flow instead of retrying forever.
		c.mu.Lock()
		c.username = ""
		c.accessToken = ""
		c.refreshToken = ""
		c.mu.Unlock()

		err = fmt.Errorf("%w: %w", ErrSessionExpired, err)
		c.settle("", err)
		return "", err
	}

	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
	c.settle(token, nil)
	return token, nil
}

// settle clears the refreshing flag and resolves every queued continuation,
// in the order they were enqueued.
func (c *Client) settle(token string, err error) {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- renewResult{token: token, err: err}
	}
}

// postRefresh performs the raw refresh call. It deliberately bypasses call()
// so a 401 here can never recurse into another refresh.
func (c *Client) postRefresh(ctx context.Context, refreshToken string) (string, error) {
	encoded, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", fmt.Errorf("failed to encode refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("failed to build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read refresh response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp.StatusCode, raw)
	}

	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}

	return payload.AccessToken, nil
}
