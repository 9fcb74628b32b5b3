package app

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/humanbelnik/kinoswipe/internal/config"
	http_auth "github.com/humanbelnik/kinoswipe/internal/delivery/http/auth"
	http_init "github.com/humanbelnik/kinoswipe/internal/delivery/http/init"
	http_metrics "github.com/humanbelnik/kinoswipe/internal/delivery/http/metrics"
	http_metrics_middleware "github.com/humanbelnik/kinoswipe/internal/delivery/http/middleware/metrics"
	http_ratelimit_middleware "github.com/humanbelnik/kinoswipe/internal/delivery/http/middleware/ratelimit"
	http_session_middleware "github.com/humanbelnik/kinoswipe/internal/delivery/http/middleware/session"
	http_movie "github.com/humanbelnik/kinoswipe/internal/delivery/http/movie"
	http_plex "github.com/humanbelnik/kinoswipe/internal/delivery/http/plex"
	http_room "github.com/humanbelnik/kinoswipe/internal/delivery/http/room"
	http_swagger "github.com/humanbelnik/kinoswipe/internal/delivery/http/swagger"
	http_swipe "github.com/humanbelnik/kinoswipe/internal/delivery/http/swipe"
	infra_memory "github.com/humanbelnik/kinoswipe/internal/infra/memory"
	infra_metrics "github.com/humanbelnik/kinoswipe/internal/infra/metrics"
	infra_plex "github.com/humanbelnik/kinoswipe/internal/infra/plex"
	infra_pg_init "github.com/humanbelnik/kinoswipe/internal/infra/postgres/init"
	infra_postgres_match "github.com/humanbelnik/kinoswipe/internal/infra/postgres/match"
	infra_pg_migrate "github.com/humanbelnik/kinoswipe/internal/infra/postgres/migrate"
	infra_postgres_room "github.com/humanbelnik/kinoswipe/internal/infra/postgres/room"
	infra_postgres_swipe "github.com/humanbelnik/kinoswipe/internal/infra/postgres/swipe"
	infra_redis_init "github.com/humanbelnik/kinoswipe/internal/infra/redis/init"
	infra_session_cache "github.com/humanbelnik/kinoswipe/internal/infra/redis/session"
	usecase_plex "github.com/humanbelnik/kinoswipe/internal/usecase/plex"
	usecase_room "github.com/humanbelnik/kinoswipe/internal/usecase/room"
	usecase_swipe "github.com/humanbelnik/kinoswipe/internal/usecase/swipe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type repositories struct {
	rooms   usecase_room.RoomRepository
	swipes  usecase_swipe.SwipeRepository
	matches usecase_swipe.MatchRepository
}

func Go(cfg *config.Config) {
	logger, closeLog := newLogger(cfg.Log)
	defer closeLog()
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := infra_metrics.New(registry)

	repos := mustBuildRepositories(cfg)
	sessionStore := mustBuildSessionStore(cfg)

	plexClient := infra_plex.New(cfg.Plex, infra_plex.WithLogger(logger))

	roomUC := usecase_room.New(repos.rooms, plexClient,
		usecase_room.WithLogger(logger),
		usecase_room.WithObserver(collector),
		usecase_room.WithExpiry(cfg.Room.TTL, cfg.Room.CleanupPeriod),
	)
	swipeUC := usecase_swipe.New(repos.swipes, repos.matches,
		usecase_swipe.WithLogger(logger),
		usecase_swipe.WithObserver(collector),
	)
	plexUC := usecase_plex.New(plexClient, plexClient, plexClient,
		cfg.Plex.ClientID, cfg.Plex.Product,
		usecase_plex.WithLogger(logger),
	)

	sessions := http_session_middleware.New(sessionStore, cfg.HTTP.SessionTTL, cfg.HTTP.CookieSecure,
		http_session_middleware.WithLogger(logger),
	)

	opts := []http_init.Option{
		http_init.WithMiddleware(http_metrics_middleware.New(registry).Handler()),
		http_init.WithCORS(cfg.HTTP.CORSOrigins),
		http_init.WithGzip(),
	}
	if cfg.HTTP.RateLimitRPS > 0 {
		limiter := http_ratelimit_middleware.New(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst,
			http_ratelimit_middleware.KeyByClientIP())
		opts = append(opts, http_init.WithMiddleware(limiter.Handler()))
	}

	controllerPool := http_init.NewControllerPool(opts...)
	controllerPool.Add(http_swagger.New(cfg.HTTP.SwaggerDoc))
	controllerPool.Add(http_metrics.New(registry))
	controllerPool.Add(http_room.New(roomUC, sessions, http_room.WithLogger(logger)))
	controllerPool.Add(http_swipe.New(swipeUC, sessions, http_swipe.WithLogger(logger)))
	controllerPool.Add(http_movie.New(plexClient, http_movie.WithLogger(logger)))
	controllerPool.Add(http_auth.New(plexUC, sessions))
	controllerPool.Add(http_plex.New(plexUC))
	controllerPool.Register()

	srv := controllerPool.Server(cfg.HTTP.Host, cfg.HTTP.Port)
	go func() {
		logger.Info("http server started", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to run HTTP server: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}
	logger.Info("http server stopped")
}

func mustBuildRepositories(cfg *config.Config) repositories {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := infra_memory.New()
		return repositories{rooms: store, swipes: store, matches: store}
	case config.StoragePostgres:
		pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := infra_pg_migrate.Up(ctx, pgConn.DB); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		return repositories{
			rooms:   infra_postgres_room.New(pgConn),
			swipes:  infra_postgres_swipe.New(pgConn),
			matches: infra_postgres_match.New(pgConn),
		}
	default:
		log.Fatalf("unknown storage driver %q", cfg.Storage.Driver)
		return repositories{}
	}
}

func mustBuildSessionStore(cfg *config.Config) http_session_middleware.Store {
	switch cfg.Storage.Sessions {
	case config.SessionsMemory:
		return infra_memory.NewSessionStore(cfg.HTTP.SessionTTL)
	case config.SessionsRedis:
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
		return infra_session_cache.New(redisConn, "session", cfg.HTTP.SessionTTL)
	default:
		log.Fatalf("unknown session store %q", cfg.Storage.Sessions)
		return nil
	}
}
