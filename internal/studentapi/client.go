package studentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studentportal/profilecli/internal/logging"
	"github.com/studentportal/profilecli/internal/profile"
	"github.com/studentportal/profilecli/internal/version"
)

const (
	// ProfilePath is the student service profile resource
	ProfilePath = "/api/students/profile"

	// HealthPath is the gateway health check
	HealthPath = "/health"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed reads
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 10 * time.Second
)

// Client is an HTTP client for the student service. It implements
// profile.Submitter.
type Client struct {
	// BaseURL is the gateway base URL (e.g., "http://localhost:8080")
	BaseURL string

	// UserID is sent as X-User-ID
	UserID uuid.UUID

	// Role is sent as X-User-Role (default: "student")
	Role string

	// Token is sent as a bearer token when non-empty
	Token string

	// UpdateExisting makes SubmitProfile update instead of create
	UpdateExisting bool

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for failed reads
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff enables exponential backoff for retries
	UseExponentialBackoff bool
}

var _ profile.Submitter = (*Client)(nil)

// NewClient creates a client for the gateway at baseURL acting as userID.
// userID must be a UUID.
func NewClient(baseURL, userID string) (*Client, error) {
	if baseURL == "" {
		return nil, NewConfigError("API base URL is not set", nil)
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, NewConfigError(fmt.Sprintf("invalid user id %q", userID), err)
	}

	return &Client{
		BaseURL:               strings.TrimRight(baseURL, "/"),
		UserID:                id,
		Role:                  RoleStudent,
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
	}, nil
}

// SetTimeout sets the HTTP request timeout. Zero disables it.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior for reads
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// SubmitProfile sends the draft once, creating or updating depending on
// UpdateExisting. The returned error's text is the service's message.
func (c *Client) SubmitProfile(ctx context.Context, draft profile.ProfileDraft) error {
	var err error
	if c.UpdateExisting {
		_, err = c.UpdateProfile(ctx, draft)
	} else {
		_, err = c.CreateProfile(ctx, draft)
	}
	return err
}

// CreateProfile creates the caller's profile (POST). Never retried.
func (c *Client) CreateProfile(ctx context.Context, draft profile.ProfileDraft) (*StudentProfile, error) {
	return c.writeProfile(ctx, http.MethodPost, draft)
}

// UpdateProfile updates the caller's profile (PUT). Never retried.
func (c *Client) UpdateProfile(ctx context.Context, draft profile.ProfileDraft) (*StudentProfile, error) {
	return c.writeProfile(ctx, http.MethodPut, draft)
}

func (c *Client) writeProfile(ctx context.Context, method string, draft profile.ProfileDraft) (*StudentProfile, error) {
	body, err := json.Marshal(NewProfileRequest(draft))
	if err != nil {
		return nil, NewParseError("failed to encode profile", c.BaseURL+ProfilePath, err)
	}

	var out StudentProfile
	if err := c.do(ctx, method, ProfilePath, body, 1, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches the caller's stored profile
func (c *Client) GetProfile(ctx context.Context) (*StudentProfile, error) {
	var out StudentProfile
	err := c.withRetry(ctx, func(attempt int) error {
		return c.do(ctx, http.MethodGet, ProfilePath, nil, attempt, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Health performs a health check on the gateway
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	err := c.withRetry(ctx, func(attempt int) error {
		return c.do(ctx, http.MethodGet, HealthPath, nil, attempt, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// withRetry runs fn until it succeeds, fails with a non-retryable error, or
// MaxRetries is exhausted.
func (c *Client) withRetry(ctx context.Context, fn func(attempt int) error) error {
	var lastErr error
	currentDelay := c.RetryDelay

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return NewNetworkError("request cancelled", c.BaseURL, ctx.Err())
			case <-time.After(currentDelay):
			}

			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		err := fn(attempt + 1)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

// do performs a single request and decodes a 2xx body into out
func (c *Client) do(ctx context.Context, method, path string, body []byte, attempt int, out any) error {
	endpoint := c.BaseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return NewConfigError(fmt.Sprintf("failed to create %s request", method), err)
	}
	c.setHeaders(req, body != nil)

	logging.LogHTTPRequest(method, endpoint, attempt)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return NewNetworkError(fmt.Sprintf("%s request failed", method), endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError("failed to read response body", endpoint, err)
	}

	logging.LogHTTPResponse(method, endpoint, resp.StatusCode, len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewStatusError(resp.StatusCode, errorMessage(respBody), endpoint)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return NewParseError("failed to parse JSON response", endpoint, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-User-ID", c.UserID.String())
	role := c.Role
	if role == "" {
		role = RoleStudent
	}
	req.Header.Set("X-User-Role", role)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

// errorMessage extracts the service's message from an error body. Bodies
// that are not {"error": ...} JSON are used as plain text.
func errorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var er ErrorResponse
	if err := json.Unmarshal(trimmed, &er); err == nil {
		return er.Error
	}
	return string(trimmed)
}
