package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "jobsweep/internal/errors"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Client wraps http.Client with the retry behaviour every board needs:
// back off and retry on 5xx and 429, fail fast on other statuses.
type Client struct {
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

func NewClient(timeout time.Duration, maxRetries int, retryDelay time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// Do executes req, retrying transient failures. The caller owns the body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", browserUserAgent)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
			return resp, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			lastErr = apperrors.RateLimit(fmt.Sprintf("rate limited by %s", req.URL.Host), nil)
		default:
			resp.Body.Close()
			lastErr = apperrors.Unavailable(fmt.Sprintf("upstream returned %d", resp.StatusCode), nil)
		}
	}

	return nil, apperrors.Unavailable(
		fmt.Sprintf("request to %s failed after %d attempts", req.URL.Host, c.maxRetries+1), lastErr)
}

// GetJSON fetches url and decodes the response body into out.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	body, err := c.get(ctx, url, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Parse(fmt.Sprintf("decoding response from %s", url), err)
	}
	return nil
}

// GetBody fetches url and returns the raw response body.
func (c *Client) GetBody(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return c.get(ctx, url, headers)
}

// PostJSON sends payload as a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, payload, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Internal("encoding request payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return apperrors.Internal("building request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.Unavailable(fmt.Sprintf("POST %s returned %d", url, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Unavailable("reading response body", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Parse(fmt.Sprintf("decoding response from %s", url), err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Internal("building request", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Unavailable(fmt.Sprintf("GET %s returned %d", url, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Unavailable("reading response body", err)
	}
	return body, nil
}
