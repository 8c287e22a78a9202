// Package client calls the session endpoints of the community server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/httputil"
	"github.com/samrambhak/community-server-go/internal/middleware"
	"github.com/samrambhak/community-server-go/internal/sessionkeeper"
)

const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    apperrors.ErrorCode
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

var _ sessionkeeper.API = (*Client)(nil)

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Validate returns the user id owning token, or nil when the server reports
// the session as invalid.
func (c *Client) Validate(ctx context.Context, token string) (*string, error) {
	var resp struct {
		Valid  bool   `json:"valid"`
		UserID string `json:"user_id"`
	}
	if err := c.post(ctx, "/v1/sessions/validate", token, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Valid || resp.UserID == "" {
		return nil, nil
	}
	return &resp.UserID, nil
}

// Refresh extends the session. It returns false when the server declined.
func (c *Client) Refresh(ctx context.Context, token string) (bool, error) {
	var resp struct {
		Refreshed bool `json:"refreshed"`
	}
	if err := c.post(ctx, "/v1/sessions/refresh", token, nil, &resp); err != nil {
		return false, err
	}
	return resp.Refreshed, nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.post(ctx, "/v1/sessions/signout", token, nil, nil)
}

func (c *Client) post(ctx context.Context, path, token string, payload, dst any) error {
	var body io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.SessionTokenHeader, token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Dur("elapsed", time.Since(start)).Msg("session api request failed")
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp httputil.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
