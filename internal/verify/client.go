package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client calls the email deliverability API (mailboxlayer-compatible: format,
// MX lookup and SMTP handshake check in one GET).
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Result is the provider's verdict for a single address.
type Result struct {
	Email       string `json:"email"`
	FormatValid bool   `json:"format_valid"`
	MXFound     bool   `json:"mx_found"`
	SMTPCheck   bool   `json:"smtp_check"`
	Disposable  bool   `json:"disposable"`
	DidYouMean  string `json:"did_you_mean"`
}

// NewClient creates a deliverability client. An empty apiKey is allowed; the
// caller is expected to skip verification in that case.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Check queries the provider for the given address. Transport failures,
// non-200 statuses and malformed bodies are returned as errors; the caller
// decides whether to fail open.
func (c *Client) Check(ctx context.Context, email string) (*Result, error) {
	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set("email", email)
	q.Set("smtp", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verification request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verification API status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var r Result
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &r, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
