package infra_plex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"strings"

	"github.com/humanbelnik/kinoswipe/internal/model"
)

const (
	defaultSampleSize = 150
	genreSampleSize   = 100
	recentSampleSize  = 100

	proxyPrefix = "/api/v1/proxy?path="
)

var ErrSectionNotFound = errors.New("library section not found")

type directory struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type directoryResponse struct {
	MediaContainer struct {
		Directory []directory `json:"Directory"`
	} `json:"MediaContainer"`
}

type metadata struct {
	RatingKey      string  `json:"ratingKey"`
	GUID           string  `json:"guid"`
	Title          string  `json:"title"`
	Summary        string  `json:"summary"`
	Thumb          string  `json:"thumb"`
	Duration       int64   `json:"duration"`
	AudienceRating float64 `json:"audienceRating"`
	Rating         float64 `json:"rating"`
}

type metadataResponse struct {
	MediaContainer struct {
		Metadata []metadata `json:"Metadata"`
	} `json:"MediaContainer"`
}

// FetchMovies samples the movie section. "Recently Added" keeps the newest
// first, a named genre is sampled at random by the server, anything else
// is sampled at random and shuffled once more here.
func (c *Client) FetchMovies(ctx context.Context, genre string) ([]model.Movie, error) {
	sectionKey, err := c.sectionKey(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("type", "1")
	shuffle := true

	switch {
	case genre == model.RecentlyAdded:
		query.Set("sort", "addedAt:desc")
		query.Set("X-Plex-Container-Size", fmt.Sprint(recentSampleSize))
		shuffle = false
	case genre != "" && genre != model.AllGenres:
		genreKey, found, err := c.genreKey(ctx, sectionKey, genre)
		if err != nil {
			return nil, err
		}
		if !found {
			c.logger.Warn("unknown genre", slog.String("genre", genre))
			return []model.Movie{}, nil
		}
		query.Set("genre", genreKey)
		query.Set("sort", "random")
		query.Set("X-Plex-Container-Size", fmt.Sprint(genreSampleSize))
	default:
		query.Set("sort", "random")
		query.Set("X-Plex-Container-Size", fmt.Sprint(defaultSampleSize))
	}
	query.Set("X-Plex-Container-Start", "0")

	var resp metadataResponse
	path := fmt.Sprintf("/library/sections/%s/all?%s", sectionKey, query.Encode())
	if err := c.getServerJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	movies := make([]model.Movie, 0, len(resp.MediaContainer.Metadata))
	for _, m := range resp.MediaContainer.Metadata {
		movie := toMovie(m)
		if err := movie.Validate(); err != nil {
			c.logger.Warn("skipping library item", slog.String("title", m.Title), slog.String("error", err.Error()))
			continue
		}
		movies = append(movies, movie)
	}
	if shuffle {
		rand.Shuffle(len(movies), func(i, j int) {
			movies[i], movies[j] = movies[j], movies[i]
		})
	}
	return movies, nil
}

func (c *Client) sectionKey(ctx context.Context) (string, error) {
	var resp directoryResponse
	if err := c.getServerJSON(ctx, "/library/sections", &resp); err != nil {
		return "", err
	}
	for _, d := range resp.MediaContainer.Directory {
		if d.Title == c.section {
			return d.Key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSectionNotFound, c.section)
}

// genreKey resolves a genre title. Newer servers return a filter path as the
// key, older ones the bare id.
func (c *Client) genreKey(ctx context.Context, sectionKey string, genre string) (string, bool, error) {
	var resp directoryResponse
	if err := c.getServerJSON(ctx, fmt.Sprintf("/library/sections/%s/genre", sectionKey), &resp); err != nil {
		return "", false, err
	}
	for _, d := range resp.MediaContainer.Directory {
		if !strings.EqualFold(d.Title, genre) {
			continue
		}
		if _, rawQuery, ok := strings.Cut(d.Key, "?"); ok {
			if q, err := url.ParseQuery(rawQuery); err == nil && q.Get("genre") != "" {
				return q.Get("genre"), true, nil
			}
		}
		return d.Key, true, nil
	}
	return "", false, nil
}

func toMovie(m metadata) model.Movie {
	movie := model.Movie{
		ID:       m.RatingKey,
		Title:    m.Title,
		Summary:  m.Summary,
		Duration: formatDuration(m.Duration),
	}
	if m.Thumb != "" {
		movie.Thumb = proxyPrefix + url.QueryEscape(m.Thumb)
	}
	switch {
	case m.AudienceRating != 0:
		r := m.AudienceRating
		movie.Rating = &r
	case m.Rating != 0:
		r := m.Rating
		movie.Rating = &r
	}
	return movie
}

// formatDuration renders milliseconds as "1h 57m", or "45m" under an hour.
func formatDuration(ms int64) string {
	if ms <= 0 {
		return ""
	}
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// ItemGUID returns the plex:// guid the discover service knows the item by.
func (c *Client) ItemGUID(ctx context.Context, ratingKey string) (string, error) {
	var resp metadataResponse
	if err := c.getServerJSON(ctx, "/library/metadata/"+url.PathEscape(ratingKey), &resp); err != nil {
		return "", err
	}
	if len(resp.MediaContainer.Metadata) == 0 {
		return "", fmt.Errorf("library item %s not found", ratingKey)
	}
	return resp.MediaContainer.Metadata[0].GUID, nil
}

func (c *Client) ServerInfo(ctx context.Context) (model.ServerInfo, error) {
	var resp struct {
		MediaContainer struct {
			MachineIdentifier string `json:"machineIdentifier"`
			FriendlyName      string `json:"friendlyName"`
		} `json:"MediaContainer"`
	}
	if err := c.getServerJSON(ctx, "/", &resp); err != nil {
		return model.ServerInfo{}, err
	}
	return model.ServerInfo{
		MachineIdentifier: resp.MediaContainer.MachineIdentifier,
		Name:              resp.MediaContainer.FriendlyName,
	}, nil
}
