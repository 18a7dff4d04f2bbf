// Package completion is an HTTP client for chat-completion style text
// generation services.
package completion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"rulegen/internal/backoff"
	"rulegen/internal/log"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 60 * time.Second

// maxResponseBytes caps the response body read.
const maxResponseBytes = 4 << 20

// ErrEmptyResponse is returned when the service answers without choices.
var ErrEmptyResponse = errors.New("empty completion response")

// Config configures a Client.
type Config struct {
	URL     string
	Model   string
	APIKey  string
	Timeout time.Duration
	Backoff backoff.Config
}

// Client calls a chat-completion endpoint. It implements prompt.Completer.
type Client struct {
	url        string
	model      string
	apiKey     string
	httpClient *http.Client
	backoff    backoff.Config
	logger     log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for retry notifications.
func WithLogger(l log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("completion url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		url:        cfg.URL,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		backoff:    cfg.Backoff,
		logger:     log.NewNoopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = log.NewLogger(c.logger).WithFields(log.Fields{log.ModuleField: "completion"})

	return c, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model,omitempty"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type response struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the prompt as a single user message and returns the first
// choice. Transport failures, 429 and 5xx answers are retried; other
// failures are not.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(request{
		Model:    c.model,
		Messages: []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	var content string

	bo := backoff.New(ctx, c.backoff)
	err = bo.RetryNotify(func() error {
		var err error
		content, err = c.do(ctx, body)
		return err
	}, func(err error, d time.Duration) {
		c.logger.Warn(err, "completion request failed, retrying", log.Fields{"backoff": d.String()})
	})
	if err != nil {
		return "", err
	}

	return content, nil
}

func (c *Client) do(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: building request: %w", backoff.ErrPermanent, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %w", backoff.ErrPermanent, err)
		}

		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}

	var decoded response

	decodeErr := json.Unmarshal(data, &decoded)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(data))
		if decodeErr == nil && decoded.Error != nil && decoded.Error.Message != "" {
			msg = decoded.Error.Message
		}

		err := fmt.Errorf("completion service returned %d: %s", resp.StatusCode, msg)
		if retryable(resp.StatusCode) {
			return "", err
		}

		return "", fmt.Errorf("%w: %w", backoff.ErrPermanent, err)
	}

	if decodeErr != nil {
		return "", fmt.Errorf("%w: decoding completion response: %w", backoff.ErrPermanent, decodeErr)
	}

	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%w: %w", backoff.ErrPermanent, ErrEmptyResponse)
	}

	return decoded.Choices[0].Message.Content, nil
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
