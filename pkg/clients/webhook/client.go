package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client delivers digest payloads to an external webhook endpoint.
type Client interface {
	Post(ctx context.Context, payload any) error
}

// HTTPClient is a resty-backed implementation of Client.
type HTTPClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client for the configured endpoint URL.
func NewClient(url string) *HTTPClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &HTTPClient{httpClient: restyClient, url: url}
}

// apiError captures an error body returned by the receiving endpoint.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Post sends the payload and fails on any non-2xx response.
func (c *HTTPClient) Post(ctx context.Context, payload any) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}

	if resp.IsError() {
		var body apiError
		if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr == nil {
			msg := body.Message
			if msg == "" {
				msg = body.Error
			}
			if msg != "" {
				return fmt.Errorf("webhook rejected: %s (status %d)", msg, resp.StatusCode())
			}
		}
		return fmt.Errorf("webhook rejected with status %d", resp.StatusCode())
	}

	return nil
}
