package stove

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/avast/retry-go"
)

const (
	defaultTimeout = 10 * time.Second

	statusRetries    = 3
	statusRetryDelay = 500 * time.Millisecond

	commandPath = "/api/v1/command"
	statusPath  = "/api/v1/status"
)

// Client is the HTTP implementation of Gateway. Commands are sent exactly
// once with a bounded timeout; only status reads are retried.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ Gateway = (*Client)(nil)

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// commandRequest is the vendor's command envelope.
type commandRequest struct {
	Name  string `json:"name"`
	Power int    `json:"power,omitempty"`
	Fan   int    `json:"fan,omitempty"`
}

// commandResponse is the vendor's uniform reply.
type commandResponse struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (c *Client) Ignite(ctx context.Context, power int) error {
	return c.command(ctx, commandRequest{Name: "ignite", Power: power})
}

func (c *Client) SetPower(ctx context.Context, level int) error {
	return c.command(ctx, commandRequest{Name: "set_power", Power: level})
}

func (c *Client) SetFan(ctx context.Context, level int) error {
	return c.command(ctx, commandRequest{Name: "set_fan", Fan: level})
}

func (c *Client) Shutdown(ctx context.Context) error {
	return c.command(ctx, commandRequest{Name: "shutdown"})
}

// Status fetches the live stove state, retrying transient failures a few
// times (vendor boxes drop connections regularly on their wifi modules).
func (c *Client) Status(ctx context.Context) (Status, error) {
	var st Status
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+statusPath, nil)
			if err != nil {
				return err
			}
			c.setHeaders(req)

			resp, err := c.http.Do(req)
			if err != nil {
				return mapTransportError(err)
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("stove: status returned HTTP %d", resp.StatusCode)
			}
			return json.NewDecoder(resp.Body).Decode(&st)
		},
		retry.Attempts(statusRetries),
		retry.Delay(statusRetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return Status{}, err
	}
	return st, nil
}

func (c *Client) command(ctx context.Context, cmd commandRequest) error {
	body, err := json.Marshal(cmd)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+commandPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("stove: read %s reply: %w", cmd.Name, err)
	}

	var cr commandResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return fmt.Errorf("stove: bad %s reply (HTTP %d): %w", cmd.Name, resp.StatusCode, err)
	}
	if !cr.Success {
		code := cr.ErrorCode
		if code == "" {
			code = fmt.Sprintf("HTTP_%d", resp.StatusCode)
		}
		return &VendorError{Code: code, Message: cr.Message}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
}

// mapTransportError normalizes timeouts to ErrTimeout so callers can match
// with errors.Is.
func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
