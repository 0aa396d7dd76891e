package httprepo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxErrorBody caps how much of a failed response is kept for the log.
const maxErrorBody = 512

// DeliveryHTTPClient posts order details to the delivery endpoint.
type DeliveryHTTPClient struct {
	client *http.Client
}

// NewDeliveryHTTPClient creates a client whose requests carry the trace context.
func NewDeliveryHTTPClient() *DeliveryHTTPClient {
	return &DeliveryHTTPClient{
		client: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

// Post sends body as JSON to url. Any non-2xx response is an error.
func (c *DeliveryHTTPClient) Post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post delivery details: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return fmt.Errorf("delivery endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
