package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"ladle/internal/config"
	"ladle/internal/logging"
	"ladle/internal/recipes"
)

const (
	defaultHTTPTimeout  = 15 * time.Second
	defaultPollInterval = 3 * time.Second
)

// Client talks to the cooking assistant agent service.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	maxPoll      time.Duration
	logger       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithPollInterval overrides the delay between status checks.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithMaxPollDuration bounds the total time a job may stay in processing.
// Zero waits indefinitely, which is the default.
func WithMaxPollDuration(limit time.Duration) Option {
	return func(c *Client) {
		if limit > 0 {
			c.maxPoll = limit
		}
	}
}

// WithLogger attaches a logger for job lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an agent client for the given base URL (e.g.
// "http://127.0.0.1:8000/api/agent").
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("agent base url required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse agent base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("agent base url must be http or https, got %q", baseURL)
	}

	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: defaultHTTPTimeout},
		pollInterval: defaultPollInterval,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig creates an agent client from application configuration.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	opts := []Option{
		WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Agent.RequestTimeout) * time.Second}),
		WithPollInterval(time.Duration(cfg.Agent.PollInterval) * time.Second),
		WithLogger(logger),
	}
	if cfg.Agent.MaxPollSeconds > 0 {
		opts = append(opts, WithMaxPollDuration(time.Duration(cfg.Agent.MaxPollSeconds)*time.Second))
	}
	return New(cfg.Agent.BaseURL, opts...)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatAccepted struct {
	JobID string `json:"job_id"`
}

// Submit sends a chat message and starts polling the resulting job. The
// returned Job settles exactly once; use Wait to obtain the outcome and Cancel
// to stop polling early.
func (c *Client) Submit(ctx context.Context, message string) (*Job, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.New("message must not be empty")
	}

	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit chat message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		// The body may not be JSON; capture it verbatim as the error detail.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return nil, fmt.Errorf("%w: %s", ErrSubmission, strings.TrimSpace(string(detail)))
	}

	var accepted chatAccepted
	if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
		return nil, fmt.Errorf("%w: decode acceptance: %v", ErrProtocol, err)
	}
	if strings.TrimSpace(accepted.JobID) == "" {
		return nil, fmt.Errorf("%w: acceptance carried no job_id", ErrProtocol)
	}

	correlationID := uuid.NewString()
	c.logger.Debug("agent job accepted",
		logging.FieldComponent, "agent",
		logging.FieldJobID, accepted.JobID,
		logging.FieldCorrelationID, correlationID)

	return c.startJob(accepted.JobID, correlationID), nil
}

// Ask submits a message, waits for the job to finish, and normalizes the
// result. Polling is abandoned when ctx ends first.
func (c *Client) Ask(ctx context.Context, message string) (recipes.Result, recipes.Report, error) {
	job, err := c.Submit(ctx, message)
	if err != nil {
		return recipes.Result{}, recipes.Report{}, err
	}
	defer job.Cancel()

	raw, err := job.Wait(ctx)
	if err != nil {
		return recipes.Result{}, recipes.Report{}, err
	}
	result, report := recipes.Normalize(raw)
	return result, report, nil
}

// Health reports liveness of the agent service. Network failures and non-2xx
// statuses degrade to false rather than an error.
type Health struct {
	Agent bool `json:"agent"`
}

// CheckHealth probes the agent's health endpoint once.
func (c *Client) CheckHealth(ctx context.Context) Health {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return Health{Agent: false}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("agent health check failed", logging.FieldComponent, "agent", "error", err)
		return Health{Agent: false}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return Health{Agent: resp.StatusCode >= 200 && resp.StatusCode < 300}
}
