package http_init

import (
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	http_session_middleware "github.com/humanbelnik/kinoswipe/internal/delivery/http/middleware/session"
)

const apiPrefix = "/api/v1"

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
}

type Option func(*gin.Engine)

// WithCORS allows a separately hosted UI to call the API with its cookies.
// No origins means same origin only.
func WithCORS(origins []string) Option {
	return func(engine *gin.Engine) {
		if len(origins) == 0 {
			return
		}
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", http_session_middleware.TokenHeader, "X-Plex-Token"},
			ExposeHeaders:    []string{http_session_middleware.TokenHeader, "Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
}

// WithGzip compresses JSON responses. Proxied images are already compressed.
func WithGzip() Option {
	return func(engine *gin.Engine) {
		engine.Use(gzip.Gzip(gzip.DefaultCompression,
			gzip.WithExcludedPaths([]string{apiPrefix + "/proxy"}),
		))
	}
}

// WithMiddleware installs handlers for every route, unmatched ones included.
func WithMiddleware(handlers ...gin.HandlerFunc) Option {
	return func(engine *gin.Engine) {
		engine.Use(handlers...)
	}
}

func NewControllerPool(opts ...Option) *ControllerPool {
	engine := gin.Default() // ! Change on NGINX setup
	for _, opt := range opts {
		opt(engine)
	}
	rg := engine.Group(apiPrefix)
	return &ControllerPool{
		pool:   make([]Controller, 0, 10),
		rg:     rg,
		engine: engine,
	}
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) Handler() http.Handler {
	return pool.engine
}

func (pool *ControllerPool) Server(host, port string) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           pool.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}
