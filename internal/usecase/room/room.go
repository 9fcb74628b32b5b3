package usecase_room

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/humanbelnik/kinoswipe/internal/model"
)

var (
	ErrInternal            = errors.New("internal error")
	ErrResourceNotFound    = errors.New("no such resource")
	ErrUpstreamUnavailable = errors.New("movie provider unavailable")
)

//go:generate mockery --name=RoomRepository --output=./mocks/room/repository --filename=repository.go
type RoomRepository interface {
	// Upsert overwrites any room already stored under the same code
	// and forgets that code's swipes and matches.
	Upsert(ctx context.Context, room model.Room) error
	ByCode(ctx context.Context, code model.RoomCode) (model.Room, error)
	SetReady(ctx context.Context, code model.RoomCode) error
	ReplaceMovies(ctx context.Context, code model.RoomCode, genre string, movies []model.Movie) error
	// DeleteByCode removes the room together with its swipes and matches.
	DeleteByCode(ctx context.Context, code model.RoomCode) error

	CleanupIdleRooms(ctx context.Context, deadline time.Duration) (int64, error)
}

//go:generate mockery --name=MovieProvider --output=./mocks/room/provider --filename=provider.go
type MovieProvider interface {
	FetchMovies(ctx context.Context, genre string) ([]model.Movie, error)
}

type Observer interface {
	RoomCreated()
	RoomJoined()
	RoomsExpired(n int64)
}

type nopObserver struct{}

func (nopObserver) RoomCreated()       {}
func (nopObserver) RoomJoined()        {}
func (nopObserver) RoomsExpired(int64) {}

type Usecase struct {
	RoomRepository RoomRepository
	MovieProvider  MovieProvider

	observer Observer
	logger   *slog.Logger

	// Idle rooms are swept on every Nth create
	roomTTL       time.Duration
	cleanupPeriod int64
	createsCount  atomic.Int64
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

// WithExpiry enables the idle room sweep. ttl <= 0 keeps rooms until quit.
func WithExpiry(ttl time.Duration, cleanupPeriod int) Option {
	return func(u *Usecase) {
		u.roomTTL = ttl
		if cleanupPeriod > 0 {
			u.cleanupPeriod = int64(cleanupPeriod)
		}
	}
}

func New(
	RoomRepository RoomRepository,
	MovieProvider MovieProvider,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		RoomRepository: RoomRepository,
		MovieProvider:  MovieProvider,
		observer:       nopObserver{},
		logger:         slog.Default(),
		cleanupPeriod:  20, /* default */
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CreateRoom stores a fresh room with the provider's default list and
// returns the host binding. Code collisions are not checked: the newer room
// replaces the older one.
func (u *Usecase) CreateRoom(ctx context.Context, sess model.Session) (model.Session, error) {
	u.cleanupIdleRooms(ctx)

	movies, err := u.MovieProvider.FetchMovies(ctx, model.AllGenres)
	if err != nil {
		return sess, errors.Join(ErrUpstreamUnavailable, err)
	}

	code := u.buildRoomCode()
	if err := u.RoomRepository.Upsert(ctx, model.Room{
		Code:   code,
		Movies: movies,
		Ready:  false,
		Genre:  model.AllGenres,
	}); err != nil {
		return sess, errors.Join(ErrInternal, err)
	}

	u.observer.RoomCreated()
	u.logger.Info("room created",
		slog.String("room", code),
		slog.Int("movies", len(movies)),
	)
	return sess.Bind(code, model.RoleHost), nil
}

// Failures are logged only: a sweep must never fail a create.
func (u *Usecase) cleanupIdleRooms(ctx context.Context) {
	if u.roomTTL <= 0 {
		return
	}
	if u.createsCount.Add(1)%u.cleanupPeriod != 0 {
		return
	}

	n, err := u.RoomRepository.CleanupIdleRooms(ctx, u.roomTTL)
	if err != nil {
		u.logger.Error("failed to cleanup idle rooms", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		u.observer.RoomsExpired(n)
		u.logger.Info("idle rooms removed", slog.Int64("count", n))
	}
}

func (u *Usecase) buildRoomCode() model.RoomCode {
	const codeLen = 4
	var builder strings.Builder
	builder.Grow(codeLen)

	// First digit is never zero: codes stay in 1000..9999.
	builder.WriteByte(byte(rand.Intn(9)) + '1')
	for range codeLen - 1 {
		builder.WriteByte(byte(rand.Intn(10)) + '0')
	}

	return builder.String()
}

// JoinRoom marks the room ready and returns the guest binding. There is no
// participant limit: every further join succeeds as well.
func (u *Usecase) JoinRoom(ctx context.Context, sess model.Session, code model.RoomCode) (model.Session, error) {
	code = strings.TrimSpace(code)
	if code == model.EmptyRoomCode {
		return sess, ErrResourceNotFound
	}

	if err := u.RoomRepository.SetReady(ctx, code); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return sess, ErrResourceNotFound
		}
		return sess, errors.Join(ErrInternal, err)
	}

	u.observer.RoomJoined()
	u.logger.Info("room joined", slog.String("room", code))
	return sess.Bind(code, model.RoleGuest), nil
}

func (u *Usecase) Status(ctx context.Context, sess model.Session) (model.RoomStatus, error) {
	if !sess.InRoom() {
		return model.DefaultRoomStatus(), nil
	}

	room, err := u.RoomRepository.ByCode(ctx, sess.RoomCode)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.DefaultRoomStatus(), nil
		}
		return model.RoomStatus{}, errors.Join(ErrInternal, err)
	}

	return model.RoomStatus{
		Ready: room.Ready,
		Genre: room.Genre,
	}, nil
}

// RefreshMovies returns the room snapshot. With a genre the snapshot is first
// replaced for everybody in the room.
func (u *Usecase) RefreshMovies(ctx context.Context, sess model.Session, genre string) ([]model.Movie, error) {
	if !sess.InRoom() {
		return []model.Movie{}, nil
	}

	if genre == "" {
		room, err := u.RoomRepository.ByCode(ctx, sess.RoomCode)
		if err != nil {
			if errors.Is(err, ErrResourceNotFound) {
				return []model.Movie{}, nil
			}
			return nil, errors.Join(ErrInternal, err)
		}
		if room.Movies == nil {
			return []model.Movie{}, nil
		}
		return room.Movies, nil
	}

	movies, err := u.MovieProvider.FetchMovies(ctx, genre)
	if err != nil {
		return nil, errors.Join(ErrUpstreamUnavailable, err)
	}

	// Room may be gone already: the fresh list is still returned.
	if err := u.RoomRepository.ReplaceMovies(ctx, sess.RoomCode, genre, movies); err != nil &&
		!errors.Is(err, ErrResourceNotFound) {
		return nil, errors.Join(ErrInternal, err)
	}

	u.logger.Info("room movies refreshed",
		slog.String("room", sess.RoomCode),
		slog.String("genre", genre),
		slog.Int("movies", len(movies)),
	)
	return movies, nil
}

// QuitRoom drops the room with its ledger. Any participant may quit.
func (u *Usecase) QuitRoom(ctx context.Context, sess model.Session) error {
	if sess.RoomCode == model.EmptyRoomCode {
		return nil
	}

	if err := u.RoomRepository.DeleteByCode(ctx, sess.RoomCode); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil
		}
		return errors.Join(ErrInternal, err)
	}

	u.logger.Info("room released", slog.String("room", sess.RoomCode))
	return nil
}
