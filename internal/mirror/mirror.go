// Package mirror pushes derived summary stats to the remote document store
// used for cross-device display. Pushes are best effort: local state stays
// authoritative and failures are logged, never surfaced.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mfigueroa/lectrack/internal/constants"
	"github.com/mfigueroa/lectrack/internal/domain"
	"github.com/mfigueroa/lectrack/internal/logger"
)

// Pusher upserts one stats document per user.
type Pusher interface {
	Push(ctx context.Context, userID string, summary domain.Summary) error
}

// Client is the HTTP mirror implementation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(baseURL string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.MirrorHTTPTimeout,
		},
		log: log.WithComponent("mirror"),
	}
}

// Push upserts the user's stats document. One document per user; repeated
// pushes replace it.
func (c *Client) Push(ctx context.Context, userID string, summary domain.Summary) error {
	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	u := fmt.Sprintf("%s/stats/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mirror request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push stats: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mirror rejected stats: %s", resp.Status)
	}
	return nil
}

// Noop is the mirror used when no remote store is configured.
type Noop struct{}

func (Noop) Push(context.Context, string, domain.Summary) error {
	return nil
}
