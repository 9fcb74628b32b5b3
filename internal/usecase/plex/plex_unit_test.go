package usecase_plex

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/humanbelnik/kinoswipe/internal/model"
	library_mocks "github.com/humanbelnik/kinoswipe/internal/usecase/plex/mocks/library"
	pin_mocks "github.com/humanbelnik/kinoswipe/internal/usecase/plex/mocks/pin"
	watchlist_mocks "github.com/humanbelnik/kinoswipe/internal/usecase/plex/mocks/watchlist"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type UsecasePlexUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase   *Usecase
	pins      *pin_mocks.PinIssuer
	library   *library_mocks.Library
	watchlist *watchlist_mocks.Watchlist
	ctx       context.Context
}

func initResources(t provider.T) *resources {
	pins := pin_mocks.NewPinIssuer(t)
	library := library_mocks.NewLibrary(t)
	watchlist := watchlist_mocks.NewWatchlist(t)

	return &resources{
		usecase:   New(pins, library, watchlist, "KinoSwipe-Test", "KinoSwipe"),
		pins:      pins,
		library:   library,
		watchlist: watchlist,
		ctx:       context.Background(),
	}
}

func (suite *UsecasePlexUnitSuite) TestAuthURL(t provider.T) {
	t.Parallel()
	r := initResources(t)
	r.pins.On("CreatePin", r.ctx).Return(model.Pin{ID: 77, Code: "abcd"}, nil).Once()

	authURL, sess, err := r.usecase.AuthURL(r.ctx, model.Session{UserID: "host_1"}, "https://kino.local")

	assert.NoError(t, err)
	assert.Equal(t, 77, sess.PendingPinID)
	assert.Equal(t, "host_1", sess.UserID)
	assert.True(t, strings.HasPrefix(authURL, "https://app.plex.tv/auth#?"))

	params, perr := url.ParseQuery(strings.TrimPrefix(authURL, "https://app.plex.tv/auth#?"))
	assert.NoError(t, perr)
	assert.Equal(t, "KinoSwipe-Test", params.Get("clientID"))
	assert.Equal(t, "abcd", params.Get("code"))
	assert.Equal(t, "KinoSwipe", params.Get("context[device][product]"))
	assert.Equal(t, "https://kino.local", params.Get("forwardUrl"))
}

func (suite *UsecasePlexUnitSuite) TestAuthURLUpstreamFailure(t provider.T) {
	t.Parallel()
	r := initResources(t)
	r.pins.On("CreatePin", r.ctx).Return(model.Pin{}, errors.New("plex.tv down")).Once()

	authURL, sess, err := r.usecase.AuthURL(r.ctx, model.Session{}, "https://kino.local")

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Empty(t, authURL)
	assert.Zero(t, sess.PendingPinID)
}

func (suite *UsecasePlexUnitSuite) TestCheckPin(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		sess          model.Session
		setupMocks    func(r *resources)
		expectedToken *string
		expectedPin   int
		expectedError error
	}{
		{
			name:        "Should return nil without pending pin",
			sess:        model.Session{},
			setupMocks:  func(r *resources) {},
			expectedPin: 0,
		},
		{
			name: "Should keep pin while not approved",
			sess: model.Session{PendingPinID: 77},
			setupMocks: func(r *resources) {
				r.pins.On("CheckPin", r.ctx, 77).Return(model.Pin{ID: 77}, nil).Once()
			},
			expectedPin: 77,
		},
		{
			name: "Should return token and forget pin",
			sess: model.Session{PendingPinID: 77},
			setupMocks: func(r *resources) {
				r.pins.On("CheckPin", r.ctx, 77).Return(model.Pin{ID: 77, AuthToken: "user-token"}, nil).Once()
			},
			expectedToken: func() *string { s := "user-token"; return &s }(),
			expectedPin:   0,
		},
		{
			name: "Should keep pin when plex.tv fails",
			sess: model.Session{PendingPinID: 77},
			setupMocks: func(r *resources) {
				r.pins.On("CheckPin", r.ctx, 77).Return(model.Pin{}, errors.New("timeout")).Once()
			},
			expectedPin:   77,
			expectedError: ErrUpstreamUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			token, sess, err := r.usecase.CheckPin(r.ctx, tc.sess)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedToken, token)
			assert.Equal(t, tc.expectedPin, sess.PendingPinID)
			r.pins.AssertExpectations(t)
		})
	}
}

func (suite *UsecasePlexUnitSuite) TestAddToWatchlist(t provider.T) {
	t.Parallel()

	const guid = "plex://movie/5d7768258718ba001e311e2a"

	testCases := []struct {
		name          string
		token         string
		movieID       string
		setupMocks    func(r *resources)
		expectedError error
	}{
		{
			name:          "Should reject missing token",
			token:         "",
			movieID:       "100",
			setupMocks:    func(r *resources) {},
			expectedError: ErrUnauthorized,
		},
		{
			name:          "Should reject missing movie id",
			token:         "user-token",
			movieID:       " ",
			setupMocks:    func(r *resources) {},
			expectedError: ErrUnauthorized,
		},
		{
			name:    "Should resolve guid and add",
			token:   "user-token",
			movieID: "100",
			setupMocks: func(r *resources) {
				r.library.On("ItemGUID", r.ctx, "100").Return(guid, nil).Once()
				r.watchlist.On("AddToWatchlist", r.ctx, "user-token", guid).Return(nil).Once()
			},
		},
		{
			name:    "Should fail when item is unknown",
			token:   "user-token",
			movieID: "100",
			setupMocks: func(r *resources) {
				r.library.On("ItemGUID", r.ctx, "100").Return("", errors.New("status 404")).Once()
			},
			expectedError: ErrUpstreamUnavailable,
		},
		{
			name:    "Should fail when discover rejects",
			token:   "user-token",
			movieID: "100",
			setupMocks: func(r *resources) {
				r.library.On("ItemGUID", r.ctx, "100").Return(guid, nil).Once()
				r.watchlist.On("AddToWatchlist", r.ctx, "user-token", guid).Return(errors.New("status 401")).Once()
			},
			expectedError: ErrUpstreamUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			err := r.usecase.AddToWatchlist(r.ctx, tc.token, tc.movieID)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			r.library.AssertExpectations(t)
			r.watchlist.AssertExpectations(t)
		})
	}
}

func (suite *UsecasePlexUnitSuite) TestServerInfo(t provider.T) {
	t.Parallel()
	r := initResources(t)
	info := model.ServerInfo{MachineIdentifier: "abc123", Name: "Living Room"}
	r.library.On("ServerInfo", r.ctx).Return(info, nil).Once()
	r.library.On("ServerInfo", r.ctx).Return(model.ServerInfo{}, errors.New("refused")).Once()

	got, err := r.usecase.ServerInfo(r.ctx)
	assert.NoError(t, err)
	assert.Equal(t, info, got)

	_, err = r.usecase.ServerInfo(r.ctx)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestUsecasePlexUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecasePlexUnitSuite))
}
