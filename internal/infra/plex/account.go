package infra_plex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/humanbelnik/kinoswipe/internal/model"
)

type pinResponse struct {
	ID        int    `json:"id"`
	Code      string `json:"code"`
	AuthToken string `json:"authToken,omitempty"`
}

// CreatePin creates a strong PIN for the plex.tv login flow.
func (c *Client) CreatePin(ctx context.Context) (model.Pin, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.plexTVURL+"/pins?strong=true", nil)
	if err != nil {
		return model.Pin{}, fmt.Errorf("create request: %w", err)
	}
	c.setPlexHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var pin pinResponse
	if err := c.doJSON(req, &pin, http.StatusCreated, http.StatusOK); err != nil {
		return model.Pin{}, err
	}
	return model.Pin{ID: pin.ID, Code: pin.Code}, nil
}

func (c *Client) CheckPin(ctx context.Context, id int) (model.Pin, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/pins/%d", c.plexTVURL, id), nil)
	if err != nil {
		return model.Pin{}, fmt.Errorf("create request: %w", err)
	}
	c.setPlexHeaders(req)

	var pin pinResponse
	if err := c.doJSON(req, &pin, http.StatusOK); err != nil {
		return model.Pin{}, err
	}
	return model.Pin{ID: pin.ID, Code: pin.Code, AuthToken: pin.AuthToken}, nil
}

// AddToWatchlist adds the item known by guid (plex://movie/<key>) to the
// watchlist of the token's account.
func (c *Client) AddToWatchlist(ctx context.Context, userToken string, guid string) error {
	key, ok := discoverKey(guid)
	if !ok {
		return fmt.Errorf("item guid %q is not a plex guid", guid)
	}

	actionURL := fmt.Sprintf("%s/actions/addToWatchlist?ratingKey=%s", c.discoverURL, url.QueryEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, actionURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setPlexHeaders(req)
	req.Header.Set("X-Plex-Token", userToken)

	return c.doJSON(req, nil, http.StatusOK, http.StatusCreated, http.StatusNoContent)
}

func discoverKey(guid string) (string, bool) {
	rest, ok := strings.CutPrefix(guid, "plex://")
	if !ok {
		return "", false
	}
	i := strings.LastIndex(rest, "/")
	if i < 0 || i == len(rest)-1 {
		return "", false
	}
	return rest[i+1:], true
}
