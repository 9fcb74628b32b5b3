package usecase_plex

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/humanbelnik/kinoswipe/internal/model"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUpstreamUnavailable = errors.New("plex unavailable")
)

const authBaseURL = "https://app.plex.tv/auth"

//go:generate mockery --name=PinIssuer --output=./mocks/pin --filename=pin.go
type PinIssuer interface {
	CreatePin(ctx context.Context) (model.Pin, error)
	CheckPin(ctx context.Context, id int) (model.Pin, error)
}

//go:generate mockery --name=Library --output=./mocks/library --filename=library.go
type Library interface {
	// ItemGUID returns the global plex:// guid of a local library item.
	ItemGUID(ctx context.Context, ratingKey string) (string, error)
	ServerInfo(ctx context.Context) (model.ServerInfo, error)
}

//go:generate mockery --name=Watchlist --output=./mocks/watchlist --filename=watchlist.go
type Watchlist interface {
	AddToWatchlist(ctx context.Context, userToken string, guid string) error
}

type Usecase struct {
	pins      PinIssuer
	library   Library
	watchlist Watchlist

	clientID string
	product  string

	logger *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(
	pins PinIssuer,
	library Library,
	watchlist Watchlist,
	clientID string,
	product string,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		pins:      pins,
		library:   library,
		watchlist: watchlist,
		clientID:  clientID,
		product:   product,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// AuthURL opens a PIN login and remembers the PIN in the returned session.
// forwardURL is where plex.tv sends the browser back after approval.
func (u *Usecase) AuthURL(ctx context.Context, sess model.Session, forwardURL string) (string, model.Session, error) {
	pin, err := u.pins.CreatePin(ctx)
	if err != nil {
		return "", sess, errors.Join(ErrUpstreamUnavailable, err)
	}

	params := url.Values{}
	params.Set("clientID", u.clientID)
	params.Set("code", pin.Code)
	params.Set("context[device][product]", u.product)
	params.Set("forwardUrl", forwardURL)

	sess.PendingPinID = pin.ID
	return authBaseURL + "#?" + params.Encode(), sess, nil
}

// CheckPin returns nil until the pending PIN is approved. The PIN is
// forgotten once its token has been handed out.
func (u *Usecase) CheckPin(ctx context.Context, sess model.Session) (*string, model.Session, error) {
	if sess.PendingPinID == 0 {
		return nil, sess, nil
	}

	pin, err := u.pins.CheckPin(ctx, sess.PendingPinID)
	if err != nil {
		return nil, sess, errors.Join(ErrUpstreamUnavailable, err)
	}
	if pin.AuthToken == "" {
		return nil, sess, nil
	}

	sess.PendingPinID = 0
	token := pin.AuthToken
	return &token, sess, nil
}

// AddToWatchlist puts a library movie on the watchlist of the account
// owning userToken.
func (u *Usecase) AddToWatchlist(ctx context.Context, userToken string, movieID string) error {
	userToken = strings.TrimSpace(userToken)
	movieID = strings.TrimSpace(movieID)
	if userToken == "" || movieID == "" {
		return ErrUnauthorized
	}

	guid, err := u.library.ItemGUID(ctx, movieID)
	if err != nil {
		return errors.Join(ErrUpstreamUnavailable, err)
	}
	if err := u.watchlist.AddToWatchlist(ctx, userToken, guid); err != nil {
		return errors.Join(ErrUpstreamUnavailable, err)
	}

	u.logger.Info("added to watchlist", slog.String("movie_id", movieID))
	return nil
}

func (u *Usecase) ServerInfo(ctx context.Context) (model.ServerInfo, error) {
	info, err := u.library.ServerInfo(ctx)
	if err != nil {
		return model.ServerInfo{}, errors.Join(ErrUpstreamUnavailable, err)
	}
	return info, nil
}
