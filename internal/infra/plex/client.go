package infra_plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/humanbelnik/kinoswipe/internal/config"
)

const (
	plexTVBaseURL       = "https://plex.tv/api/v2"
	plexDiscoverBaseURL = "https://discover.provider.plex.tv"
)

// Client talks to the configured media server with the admin token and to
// plex.tv on behalf of users.
type Client struct {
	httpClient *http.Client

	serverURL  string
	adminToken string
	clientID   string
	product    string
	section    string

	plexTVURL   string
	discoverURL string

	logger *slog.Logger
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAccountURLs points the plex.tv and discover calls elsewhere.
func WithAccountURLs(plexTV, discover string) Option {
	return func(c *Client) {
		c.plexTVURL = plexTV
		c.discoverURL = discover
	}
}

func New(cfg config.Plex, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		serverURL:   cfg.URL,
		adminToken:  cfg.Token,
		clientID:    cfg.ClientID,
		product:     cfg.Product,
		section:     cfg.Section,
		plexTVURL:   plexTVBaseURL,
		discoverURL: plexDiscoverBaseURL,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) setPlexHeaders(req *http.Request) {
	req.Header.Set("X-Plex-Client-Identifier", c.clientID)
	req.Header.Set("X-Plex-Product", c.product)
	req.Header.Set("X-Plex-Version", "1.0.0")
	req.Header.Set("X-Plex-Platform", "Web")
	req.Header.Set("Accept", "application/json")
}

// serverRequest builds a request against the media server carrying the admin token.
func (c *Client) serverRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setPlexHeaders(req)
	req.Header.Set("X-Plex-Token", c.adminToken)
	return req, nil
}

func (c *Client) getServerJSON(ctx context.Context, path string, out any) error {
	req, err := c.serverRequest(ctx, path)
	if err != nil {
		return err
	}
	return c.doJSON(req, out, http.StatusOK)
}

func (c *Client) doJSON(req *http.Request, out any, okStatuses ...int) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("plex api request: %w", err)
	}
	defer resp.Body.Close()

	if !statusIn(resp.StatusCode, okStatuses) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("plex api %s %s: %s - %s", req.Method, req.URL.Path, resp.Status, string(body))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusIn(code int, statuses []int) bool {
	for _, s := range statuses {
		if code == s {
			return true
		}
	}
	return false
}
