package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/metrics"
	"github.com/rs/zerolog/log"
)

// httpClient is the shared transport for provider clients: conventional
// timeout, retry with exponential backoff on retryable statuses.
type httpClient struct {
	name       string
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
	headers    map[string]string
}

func newHTTPClient(name string, timeout time.Duration, headers map[string]string) *httpClient {
	return &httpClient{
		name:       name,
		maxRetries: 3,
		retryDelay: 1 * time.Second,
		headers:    headers,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET with retry on network errors and retryable statuses
func (c *httpClient) get(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("provider", c.name).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying provider request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "nfl-frenzy/1.0")
		for key, value := range c.headers {
			req.Header.Set(key, value)
		}

		if len(params) > 0 {
			q := req.URL.Query()
			for key, value := range params {
				q.Add(key, value)
			}
			req.URL.RawQuery = q.Encode()
		}

		start := time.Now()
		resp, err := c.client.Do(req)
		metrics.ProviderCallDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ProviderCallsTotal.WithLabelValues(c.name, "error").Inc()
			lastErr = fmt.Errorf("%s request failed: %w", c.name, err)
			if attempt < c.maxRetries {
				continue
			}
			return nil, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("failed to read %s response: %w", c.name, readErr)
			if attempt < c.maxRetries {
				continue
			}
			return nil, lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			metrics.ProviderCallsTotal.WithLabelValues(c.name, "ok").Inc()
			return body, nil

		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			metrics.ProviderCallsTotal.WithLabelValues(c.name, "retryable").Inc()
			lastErr = fmt.Errorf("%s returned retryable status %d", c.name, resp.StatusCode)
			if attempt < c.maxRetries {
				log.Warn().
					Str("provider", c.name).
					Int("status", resp.StatusCode).
					Int("attempt", attempt+1).
					Msg("Received retryable error, will retry")
				continue
			}
			return nil, lastErr

		case http.StatusUnauthorized, http.StatusForbidden:
			metrics.ProviderCallsTotal.WithLabelValues(c.name, "auth_error").Inc()
			return nil, fmt.Errorf("%s authentication failed (status %d): %s", c.name, resp.StatusCode, string(body))

		default:
			metrics.ProviderCallsTotal.WithLabelValues(c.name, "error").Inc()
			return nil, fmt.Errorf("%s returned status %d: %s", c.name, resp.StatusCode, string(body))
		}
	}

	return nil, lastErr
}
