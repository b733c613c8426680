package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// InternalKeyHeader authenticates this API to the internal AI services.
const InternalKeyHeader = "x-internal-key"

const defaultTimeout = 30 * time.Second

// StatusError is a non-2xx answer from an internal service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// internalClient is the shared plumbing of the gateway and predictor clients.
// Requests are sent once; there is no retry.
type internalClient struct {
	BaseURL     string
	InternalKey string
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

func newInternalClient(baseURL, key string, timeout time.Duration, log *zap.Logger) internalClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return internalClient{
		BaseURL:     baseURL,
		InternalKey: key,
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Logger: log,
	}
}

func (c *internalClient) postJSON(ctx context.Context, op, path string, in, out any) error {
	reqBody, err := sonic.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.InternalKey != "" {
		httpReq.Header.Set(InternalKeyHeader, c.InternalKey)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Logger.Error(op+" request failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := sonic.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
