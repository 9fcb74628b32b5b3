package usecase_swipe

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/humanbelnik/kinoswipe/internal/model"
)

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")
)

//go:generate mockery --name=SwipeRepository --output=./mocks/swipe/repository --filename=repository.go
type SwipeRepository interface {
	// Append never deduplicates: repeated swipes are stored as is.
	Append(ctx context.Context, swipe model.Swipe) error
	// HasOtherLike reports whether any user other than userID liked the movie in the room.
	HasOtherLike(ctx context.Context, code model.RoomCode, movieID string, userID string) (bool, error)
	DeleteByUser(ctx context.Context, code model.RoomCode, movieID string, userID string) (int64, error)
}

//go:generate mockery --name=MatchRepository --output=./mocks/match/repository --filename=repository.go
type MatchRepository interface {
	// Insert is a no-op returning false when (room, movie) is already matched.
	Insert(ctx context.Context, match model.Match) (bool, error)
	ListByRoom(ctx context.Context, code model.RoomCode) ([]model.Match, error)
	Delete(ctx context.Context, code model.RoomCode, movieID string) error
}

type Observer interface {
	SwipeRecorded(direction model.Direction)
	MatchFound()
}

type nopObserver struct{}

func (nopObserver) SwipeRecorded(model.Direction) {}
func (nopObserver) MatchFound()                   {}

type Usecase struct {
	SwipeRepository SwipeRepository
	MatchRepository MatchRepository

	observer Observer
	logger   *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithObserver(o Observer) Option {
	return func(u *Usecase) {
		u.observer = o
	}
}

func New(
	SwipeRepository SwipeRepository,
	MatchRepository MatchRepository,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		SwipeRepository: SwipeRepository,
		MatchRepository: MatchRepository,
		observer:        nopObserver{},
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// RecordSwipe appends the decision and, on a like, checks the partner's
// likes for the same movie. An unbound session gets a no-match before the
// payload is looked at. The check is a plain read after the write:
// two simultaneous likes may both miss each other and the match is then
// found by neither request.
func (u *Usecase) RecordSwipe(ctx context.Context, sess model.Session, swipe model.Swipe) (model.SwipeResult, error) {
	if !sess.InRoom() {
		return model.NoMatch(), nil
	}
	swipe.MovieID = strings.TrimSpace(swipe.MovieID)
	if err := swipe.Validate(); err != nil {
		return model.NoMatch(), errors.Join(ErrInvalidInput, err)
	}

	swipe.RoomCode = sess.RoomCode
	swipe.UserID = sess.UserID
	if err := u.SwipeRepository.Append(ctx, swipe); err != nil {
		return model.NoMatch(), errors.Join(ErrInternal, err)
	}
	u.observer.SwipeRecorded(swipe.Direction)

	if swipe.Direction != model.DirectionRight {
		return model.NoMatch(), nil
	}

	liked, err := u.SwipeRepository.HasOtherLike(ctx, swipe.RoomCode, swipe.MovieID, swipe.UserID)
	if err != nil {
		return model.NoMatch(), errors.Join(ErrInternal, err)
	}
	if !liked {
		return model.NoMatch(), nil
	}

	// Title and thumb come from the caller, not from the snapshot.
	created, err := u.MatchRepository.Insert(ctx, model.Match{
		RoomCode: swipe.RoomCode,
		MovieID:  swipe.MovieID,
		Title:    swipe.Title,
		Thumb:    swipe.Thumb,
	})
	if err != nil {
		return model.NoMatch(), errors.Join(ErrInternal, err)
	}
	if created {
		u.observer.MatchFound()
		u.logger.Info("match found",
			slog.String("room", swipe.RoomCode),
			slog.String("movie_id", swipe.MovieID),
		)
	}

	return model.SwipeResult{
		Match: true,
		Title: swipe.Title,
		Thumb: swipe.Thumb,
	}, nil
}

// UndoSwipe forgets every swipe of the caller on the movie and drops the
// room's match for it, whoever completed that match.
func (u *Usecase) UndoSwipe(ctx context.Context, sess model.Session, movieID string) error {
	if !sess.InRoom() {
		return nil
	}
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return errors.Join(ErrInvalidInput, &model.ValidationError{Field: "movie_id", Reason: "required"})
	}

	n, err := u.SwipeRepository.DeleteByUser(ctx, sess.RoomCode, movieID, sess.UserID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if err := u.MatchRepository.Delete(ctx, sess.RoomCode, movieID); err != nil {
		return errors.Join(ErrInternal, err)
	}

	u.logger.Debug("swipe undone",
		slog.String("room", sess.RoomCode),
		slog.String("movie_id", movieID),
		slog.Int64("swipes", n),
	)
	return nil
}

func (u *Usecase) ListMatches(ctx context.Context, sess model.Session) ([]model.Match, error) {
	if sess.RoomCode == model.EmptyRoomCode {
		return []model.Match{}, nil
	}

	matches, err := u.MatchRepository.ListByRoom(ctx, sess.RoomCode)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if matches == nil {
		return []model.Match{}, nil
	}
	return matches, nil
}

// DeleteMatch leaves the swipe ledger untouched, so the pair can match
// on the same movie again.
func (u *Usecase) DeleteMatch(ctx context.Context, sess model.Session, movieID string) error {
	if sess.RoomCode == model.EmptyRoomCode {
		return nil
	}
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return errors.Join(ErrInvalidInput, &model.ValidationError{Field: "movie_id", Reason: "required"})
	}

	if err := u.MatchRepository.Delete(ctx, sess.RoomCode, movieID); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}
