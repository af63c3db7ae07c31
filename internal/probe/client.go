package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/podium/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// client wraps http.Client and tags every request with a fresh request id.
type client struct {
	http    *http.Client
	baseURL string
	log     logger.Logger
}

func newClient(baseURL string, timeout time.Duration, log logger.Logger) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// get performs a GET request. The caller closes the body.
func (c *client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("probe.get %s: %w", path, err)
	}
	id := uuid.NewString()
	req.Header.Set(requestIDHeader, id)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probe.get %s: %w", path, err)
	}
	c.log.Debug(ctx, "probe request",
		logger.String("request_id", id),
		logger.String("url", target),
		logger.Int("status", resp.StatusCode),
	)
	return resp, nil
}

// getJSON performs a GET request and decodes a 200 response into out.
func (c *client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("probe.get %s: read body: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s answered %d: %s", ErrUnexpectedStatus, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("probe.get %s: decode: %w", path, err)
	}
	return nil
}
