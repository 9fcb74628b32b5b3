package infra_plex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var ErrForbiddenPath = errors.New("path outside of library")

// FetchImage opens a library artwork stream. The caller closes the body.
// Only /library/ paths are served so the admin token never reaches other
// server endpoints.
func (c *Client) FetchImage(ctx context.Context, path string) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(path, "/library/") || strings.Contains(path, "..") {
		return nil, "", ErrForbiddenPath
	}

	req, err := c.serverRequest(ctx, path)
	if err != nil {
		return nil, "", err
	}
	req.Header.Del("Accept")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("plex api request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("plex image %s: %s", path, resp.Status)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}
