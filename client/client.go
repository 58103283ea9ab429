// Package client uploads UUT test reports to a WATS server over its REST
// API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/rom8726/uutreport"
)

const (
	// TokenEnvVar names the environment variable holding the API token used
	// when no token is passed explicitly
	TokenEnvVar = "WATS_REST_API_TOKEN"

	uploadPath     = "/api/Report/WSJF"
	viewPath       = "/Modules/ViewUUT_Report.html"
	requestTimeout = 10 * time.Second
	maxRetries     = 3
)

// ErrNoToken is returned by New when neither an explicit token nor the
// environment variable provides one.
var ErrNoToken = errors.New("no API token: set " + TokenEnvVar + " or pass WithToken")

// StatusError is returned when the server answers an upload with a
// non-success status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// Client talks to one WATS server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithToken sets the API token explicitly, overriding the environment
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for upload progress and retries
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the server at baseURL, e.g.
// "https://acme.wats.com". The API token is read from the WATS_REST_API_TOKEN
// environment variable unless WithToken overrides it.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL must not be empty")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      os.Getenv(TokenEnvVar),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.token == "" {
		return nil, ErrNoToken
	}

	return client, nil
}

// UploadResult identifies the report as stored on the server
type UploadResult struct {
	ID string `json:"id"`
}

// ViewURL returns the server page showing the uploaded report
func (c *Client) ViewURL(id string) string {
	return c.baseURL + viewPath + "?id=" + id
}

// UploadReport serializes the report and posts it to the server. Transient
// failures, i.e. network errors and 5xx answers, are retried with
// exponential backoff up to three times; 4xx answers fail immediately.
func (c *Client) UploadReport(ctx context.Context, report *uutreport.Report) (*UploadResult, error) {
	body, err := report.Document()
	if err != nil {
		return nil, err
	}

	c.logger.Info("uploading report",
		zap.String("id", report.ID.String()),
		zap.String("pn", report.PN),
		zap.String("sn", report.SN),
	)

	var result *UploadResult
	attempt := 0
	operation := func() error {
		attempt++
		res, err := c.post(ctx, body)
		if err != nil {
			c.logger.Warn("upload attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)

			return err
		}
		result = res

		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}

	c.logger.Info("report uploaded",
		zap.String("id", result.ID),
		zap.String("url", c.ViewURL(result.ID)),
	)

	return result, nil
}

func (c *Client) post(ctx context.Context, body []byte) (*UploadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, backoff.Permanent(&StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		})
	}

	return parseUploadResponse(respBody)
}

// parseUploadResponse handles both answer shapes the server is known to
// send: a single object and a one-element array.
func parseUploadResponse(body []byte) (*UploadResult, error) {
	var results []UploadResult
	if err := json.Unmarshal(body, &results); err == nil && len(results) > 0 {
		return &results[0], nil
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode upload response: %w", err))
	}

	return &result, nil
}
