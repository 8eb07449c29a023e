// Package client talks to a running interview bot over its HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/zhouzirui/interview-bot/backend/internal/handler/health"
	"github.com/zhouzirui/interview-bot/backend/internal/model/conversation"
	"github.com/zhouzirui/interview-bot/backend/internal/model/profile"
)

// DefaultBaseURL is where the server listens with the default PORT.
const DefaultBaseURL = "http://localhost:8000"

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client wraps a resty client bound to one server.
type Client struct {
	http *resty.Client
}

// New returns a Client for baseURL. A zero timeout keeps resty's default.
func New(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "interviewctl/1.0")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c}
}

// AskResult mirrors POST /api/ask.
type AskResult struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Outcome   string `json:"outcome"`
	Error     string `json:"error"`
}

// StatusResult mirrors the {success, message} replies of cancel and clear.
type StatusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SummaryResult mirrors GET /api/conversation-summary.
type SummaryResult struct {
	Success bool                  `json:"success"`
	Summary *conversation.Summary `json:"summary"`
	Message string                `json:"message"`
	Error   string                `json:"error"`
}

// Ask sends question for sessionID and waits for the answer.
func (c *Client) Ask(ctx context.Context, question, sessionID string) (AskResult, error) {
	var out AskResult
	body := map[string]string{"question": question}
	if sessionID != "" {
		body["session_id"] = sessionID
	}
	err := c.do(ctx, "POST", "/api/ask", body, &out, func() string { return out.Error })
	return out, err
}

// Cancel asks the server to drop the in-flight answer for sessionID.
func (c *Client) Cancel(ctx context.Context, sessionID string) (StatusResult, error) {
	var out StatusResult
	body := map[string]string{}
	if sessionID != "" {
		body["session_id"] = sessionID
	}
	err := c.do(ctx, "POST", "/api/cancel", body, &out, func() string { return out.Error })
	return out, err
}

// Health fetches GET /api/health.
func (c *Client) Health(ctx context.Context) (health.Report, error) {
	var out health.Report
	err := c.do(ctx, "GET", "/api/health", nil, &out, func() string { return "" })
	return out, err
}

// Summary fetches the conversation summary.
func (c *Client) Summary(ctx context.Context) (SummaryResult, error) {
	var out SummaryResult
	err := c.do(ctx, "GET", "/api/conversation-summary", nil, &out, func() string { return out.Error })
	return out, err
}

// Clear resets the conversation memory.
func (c *Client) Clear(ctx context.Context) (StatusResult, error) {
	var out StatusResult
	err := c.do(ctx, "POST", "/api/clear-conversation", nil, &out, func() string { return out.Error })
	return out, err
}

// Profile fetches the candidate profile.
func (c *Client) Profile(ctx context.Context) (profile.Profile, error) {
	var out profile.Profile
	err := c.do(ctx, "GET", "/api/profile", nil, &out, func() string { return "" })
	return out, err
}

// do decodes success and error bodies into out; errMsg reads the server's
// error text from out once decoded.
func (c *Client) do(ctx context.Context, method, path string, body, out any, errMsg func() string) error {
	req := c.http.R().SetContext(ctx).SetResult(out).SetError(out)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: errMsg()}
	}
	return nil
}

// IsAPIError reports whether err came from a non-2xx response with status.
func IsAPIError(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
