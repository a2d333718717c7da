package kodi

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
	"golang.org/x/time/rate"

	"mediumcheck/internal/logging"
)

const (
	// DefaultTimeout is the per-call ceiling used when Options.Timeout is zero.
	DefaultTimeout = 6500 * time.Millisecond
	// DefaultPageSize is the number of entries requested per search.
	DefaultPageSize = 6

	maxErrorBody = 2048
)

// Options configures a Client.
type Options struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
	PageSize int
	// RequestsPerSecond limits outgoing calls; zero disables limiting.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// Client issues JSON-RPC calls against a single Kodi endpoint.
type Client struct {
	endpoint   string
	username   string
	password   string
	timeout    time.Duration
	pageSize   int
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     *slog.Logger
}

// New validates the endpoint and builds a client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.URL)
	if raw == "" {
		return nil, errors.New("kodi url required")
	}
	endpoint, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse kodi url: %w", err)
	}
	if endpoint.Scheme != "http" {
		return nil, fmt.Errorf("kodi url must be http: %s", raw)
	}
	if endpoint.Host == "" {
		return nil, fmt.Errorf("kodi url has no host: %s", raw)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var httpClient http.Client
	if opts.HTTPClient != nil {
		httpClient = *opts.HTTPClient
	}
	httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	client := &Client{
		endpoint:   endpoint.String(),
		username:   opts.Username,
		password:   opts.Password,
		timeout:    timeout,
		pageSize:   pageSize,
		httpClient: &httpClient,
		logger:     logging.NewComponentLogger(opts.Logger, "kodi"),
	}
	if opts.RequestsPerSecond > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return client, nil
}

// PageSize reports how many entries each search requests.
func (c *Client) PageSize() int {
	return c.pageSize
}

// Endpoint returns the validated JSON-RPC URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcErrorBody   `json:"error"`
}

// call performs one JSON-RPC round trip and decodes the result into out.
// Fields of unexpected type are left at their zero value.
func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("kodi %s: rate limit: %w", method, err)
		}
	}

	id := uuid.NewString()
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.SetBasicAuth(c.username, c.password)

	logger := logging.WithContext(ctx, c.logger).With(
		logging.String(logging.FieldMethod, method),
		logging.String("request_id", id),
	)
	logger.Debug("kodi request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s (%s)", ErrTimeout, c.timeout, method)
		}
		return fmt.Errorf("kodi %s (latency=%v): %w", method, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(snippet),
		}
	}

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s (%s)", ErrTimeout, c.timeout, method)
		}
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if envelope.Error != nil {
		return &RPCError{Code: envelope.Error.Code, Message: envelope.Error.Message}
	}

	logger.Debug("kodi response", logging.Duration("latency", latency))

	if out == nil || len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
		logger.Debug("kodi result has unexpected field types", logging.Error(err))
	}
	return nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
