// Package client wraps the remote recommendation backend: the Inspire
// Agent conversation endpoints, the tag recommendation/validation
// endpoints, and the paginated tag catalog. All calls are plain
// HTTP/JSON against a base URL from configuration; a mock-data toggle
// serves the embedded catalog instead of the network.
package client

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/config"
	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/logging"
)

// Client talks to the recommendation backend.
type Client struct {
	resty  *resty.Client
	logger *logging.Logger
	mock   bool
}

// New creates a backend client with a retrying transport.
func New(cfg config.BackendConfig, logger *logging.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "PromptScribe-Gateway/1.0").
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetTransport(retryClient.HTTPClient.Transport)

	return &Client{
		resty:  r,
		logger: logger,
		mock:   cfg.UseMockData,
	}
}

// Forward relays a request body to a backend path verbatim and returns
// the upstream status and payload. Used by the proxy routes.
func (c *Client) Forward(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	req := c.resty.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return 0, nil, classifyTransport(err)
	}
	return resp.StatusCode(), resp.Body(), nil
}
