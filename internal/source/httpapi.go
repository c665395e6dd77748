package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/giftscout/giftscout/internal/common"
	"github.com/giftscout/giftscout/internal/service"
)

const defaultHTTPTimeout = 15 * time.Second

// httpAPI is the shared HTTP plumbing for providers that expose a JSON
// search endpoint. Transient network failures are retried with backoff;
// HTTP error statuses and parse failures are not.
type httpAPI struct {
	client    *http.Client
	retryOpts service.RetryOptions
}

func newHTTPAPI(timeout time.Duration) *httpAPI {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &httpAPI{
		client: &http.Client{Timeout: timeout},
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// getJSON fetches the URL and decodes the response body into out.
func (h *httpAPI) getJSON(ctx context.Context, reqURL string, out any) error {
	var body []byte

	err := common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		req.Header.Set("Accept", "application/json")

		resp, err := h.client.Do(req)
		if err != nil {
			// Network errors are the transient case worth retrying.
			return &common.RetryableError{Err: fmt.Errorf("http GET: %w", err), Retryable: true}
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &common.RetryableError{Err: fmt.Errorf("read body: %w", err), Retryable: true}
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			return &common.RetryableError{Err: common.ErrProviderRateLimit, Retryable: true}
		}
		if resp.StatusCode != http.StatusOK {
			return &common.RetryableError{
				Err:       fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(data)),
				Retryable: false,
			}
		}

		body = data
		return nil
	}, h.retryOpts)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}
