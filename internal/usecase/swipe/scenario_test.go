package usecase_swipe_test

import (
	"context"
	"testing"

	infra_memory "github.com/humanbelnik/kinoswipe/internal/infra/memory"
	"github.com/humanbelnik/kinoswipe/internal/model"
	usecase_room "github.com/humanbelnik/kinoswipe/internal/usecase/room"
	usecase_swipe "github.com/humanbelnik/kinoswipe/internal/usecase/swipe"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type RoomScenarioSuite struct {
	suite.Suite
}

func TestRoomScenarioSuite(t *testing.T) {
	suite.RunSuite(t, new(RoomScenarioSuite))
}

type staticProvider struct{}

func (staticProvider) FetchMovies(_ context.Context, genre string) ([]model.Movie, error) {
	if genre == "Comedy" {
		return []model.Movie{{ID: "300", Title: "Airplane!"}}, nil
	}
	return []model.Movie{
		{ID: "100", Title: "Alien"},
		{ID: "101", Title: "Heat"},
	}, nil
}

type env struct {
	ctx    context.Context
	store  *infra_memory.Store
	rooms  *usecase_room.Usecase
	swipes *usecase_swipe.Usecase
}

func newEnv() *env {
	store := infra_memory.New()
	return &env{
		ctx:    context.Background(),
		store:  store,
		rooms:  usecase_room.New(store, staticProvider{}),
		swipes: usecase_swipe.New(store, store),
	}
}

// pair returns bound host and guest sessions of a fresh room.
func (e *env) pair(t provider.T) (model.Session, model.Session) {
	host, err := e.rooms.CreateRoom(e.ctx, model.Session{})
	assert.NoError(t, err)
	guest, err := e.rooms.JoinRoom(e.ctx, model.Session{}, host.RoomCode)
	assert.NoError(t, err)
	// Ids are random over a small space: keep them distinct here.
	host.UserID, guest.UserID = "host_1", "guest_2"
	return host, guest
}

func like(id string) model.Swipe {
	return model.Swipe{MovieID: id, Direction: model.DirectionRight, Title: "Alien", Thumb: "/thumb/" + id}
}

func (s *RoomScenarioSuite) TestPairSwipeAndMatch(t provider.T) {
	t.Parallel()
	e := newEnv()

	host, err := e.rooms.CreateRoom(e.ctx, model.Session{})
	assert.NoError(t, err)
	status, _ := e.rooms.Status(e.ctx, host)
	assert.False(t, status.Ready)

	guest, err := e.rooms.JoinRoom(e.ctx, model.Session{}, host.RoomCode)
	assert.NoError(t, err)
	host.UserID, guest.UserID = "host_1", "guest_2"

	for _, sess := range []model.Session{host, guest} {
		status, err := e.rooms.Status(e.ctx, sess)
		assert.NoError(t, err)
		assert.Equal(t, model.RoomStatus{Ready: true, Genre: model.AllGenres}, status)
	}

	res, err := e.swipes.RecordSwipe(e.ctx, host, like("100"))
	assert.NoError(t, err)
	assert.False(t, res.Match)

	res, err = e.swipes.RecordSwipe(e.ctx, guest, like("100"))
	assert.NoError(t, err)
	assert.Equal(t, model.SwipeResult{Match: true, Title: "Alien", Thumb: "/thumb/100"}, res)

	for _, sess := range []model.Session{host, guest} {
		matches, err := e.swipes.ListMatches(e.ctx, sess)
		assert.NoError(t, err)
		if assert.Len(t, matches, 1) {
			assert.Equal(t, "100", matches[0].MovieID)
		}
	}
}

func (s *RoomScenarioSuite) TestRepeatedLikesKeepSingleMatch(t provider.T) {
	t.Parallel()
	e := newEnv()
	host, guest := e.pair(t)

	for range 3 {
		_, err := e.swipes.RecordSwipe(e.ctx, guest, like("100"))
		assert.NoError(t, err)
		_, err = e.swipes.RecordSwipe(e.ctx, host, like("100"))
		assert.NoError(t, err)
	}

	matches, err := e.swipes.ListMatches(e.ctx, host)
	assert.NoError(t, err)
	assert.Len(t, matches, 1)
}

func (s *RoomScenarioSuite) TestSkipNeverMatches(t provider.T) {
	t.Parallel()
	e := newEnv()
	host, guest := e.pair(t)

	_, _ = e.swipes.RecordSwipe(e.ctx, host, like("100"))
	res, err := e.swipes.RecordSwipe(e.ctx, guest, model.Swipe{MovieID: "100", Direction: model.DirectionLeft})
	assert.NoError(t, err)
	assert.False(t, res.Match)

	matches, _ := e.swipes.ListMatches(e.ctx, guest)
	assert.Empty(t, matches)
}

func (s *RoomScenarioSuite) TestUndoDropsMatchForBoth(t provider.T) {
	t.Parallel()
	e := newEnv()
	host, guest := e.pair(t)

	_, _ = e.swipes.RecordSwipe(e.ctx, host, like("100"))
	_, _ = e.swipes.RecordSwipe(e.ctx, host, like("100"))
	res, _ := e.swipes.RecordSwipe(e.ctx, guest, like("100"))
	assert.True(t, res.Match)

	// The host did not complete the match but may still undo it.
	assert.NoError(t, e.swipes.UndoSwipe(e.ctx, host, "100"))

	matches, _ := e.swipes.ListMatches(e.ctx, guest)
	assert.Empty(t, matches)
	liked, _ := e.store.HasOtherLike(e.ctx, host.RoomCode, "100", guest.UserID)
	assert.False(t, liked)

	// The guest like survived: a fresh host like matches again.
	res, err := e.swipes.RecordSwipe(e.ctx, host, like("100"))
	assert.NoError(t, err)
	assert.True(t, res.Match)
}

func (s *RoomScenarioSuite) TestDeletedMatchCanBeRecreated(t provider.T) {
	t.Parallel()
	e := newEnv()
	host, guest := e.pair(t)

	_, _ = e.swipes.RecordSwipe(e.ctx, host, like("100"))
	_, _ = e.swipes.RecordSwipe(e.ctx, guest, like("100"))
	assert.NoError(t, e.swipes.DeleteMatch(e.ctx, guest, "100"))

	matches, _ := e.swipes.ListMatches(e.ctx, host)
	assert.Empty(t, matches)

	_, _ = e.swipes.RecordSwipe(e.ctx, host, like("100"))
	res, _ := e.swipes.RecordSwipe(e.ctx, guest, like("100"))
	assert.True(t, res.Match)

	matches, _ = e.swipes.ListMatches(e.ctx, host)
	assert.Len(t, matches, 1)
}

func (s *RoomScenarioSuite) TestJoinUnknownCodeCreatesNothing(t provider.T) {
	t.Parallel()
	e := newEnv()

	sess, err := e.rooms.JoinRoom(e.ctx, model.Session{}, "1234")
	assert.ErrorIs(t, err, usecase_room.ErrResourceNotFound)
	assert.False(t, sess.InRoom())

	_, err = e.store.ByCode(e.ctx, "1234")
	assert.ErrorIs(t, err, usecase_room.ErrResourceNotFound)
}

func (s *RoomScenarioSuite) TestQuitClearsRoomScopedState(t provider.T) {
	t.Parallel()
	e := newEnv()
	host, guest := e.pair(t)

	_, _ = e.swipes.RecordSwipe(e.ctx, host, like("100"))
	_, _ = e.swipes.RecordSwipe(e.ctx, guest, like("100"))

	// Any participant may quit.
	assert.NoError(t, e.rooms.QuitRoom(e.ctx, guest))

	status, err := e.rooms.Status(e.ctx, host)
	assert.NoError(t, err)
	assert.Equal(t, model.DefaultRoomStatus(), status)

	matches, _ := e.swipes.ListMatches(e.ctx, host)
	assert.Empty(t, matches)
	liked, _ := e.store.HasOtherLike(e.ctx, host.RoomCode, "100", "nobody")
	assert.False(t, liked)

	movies, _ := e.rooms.RefreshMovies(e.ctx, host, "")
	assert.Empty(t, movies)
	assert.NoError(t, e.rooms.QuitRoom(e.ctx, host))
}

func (s *RoomScenarioSuite) TestGenreRefreshIsShared(t provider.T) {
	t.Parallel()
	e := newEnv()
	host, guest := e.pair(t)

	movies, err := e.rooms.RefreshMovies(e.ctx, guest, "")
	assert.NoError(t, err)
	assert.Len(t, movies, 2)

	_, err = e.rooms.RefreshMovies(e.ctx, host, "Comedy")
	assert.NoError(t, err)

	movies, err = e.rooms.RefreshMovies(e.ctx, guest, "")
	assert.NoError(t, err)
	assert.Equal(t, []model.Movie{{ID: "300", Title: "Airplane!"}}, movies)

	status, _ := e.rooms.Status(e.ctx, guest)
	assert.Equal(t, "Comedy", status.Genre)
}

func (s *RoomScenarioSuite) TestUnboundSessionIsSoftNoOp(t provider.T) {
	t.Parallel()
	e := newEnv()
	nobody := model.Session{}

	res, err := e.swipes.RecordSwipe(e.ctx, nobody, like("100"))
	assert.NoError(t, err)
	assert.False(t, res.Match)
	assert.NoError(t, e.swipes.UndoSwipe(e.ctx, nobody, "100"))
	assert.NoError(t, e.swipes.DeleteMatch(e.ctx, nobody, "100"))
	matches, err := e.swipes.ListMatches(e.ctx, nobody)
	assert.NoError(t, err)
	assert.Empty(t, matches)
}
