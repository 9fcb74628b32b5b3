package http_session_middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/kinoswipe/internal/delivery/http/common"
	"github.com/humanbelnik/kinoswipe/internal/model"
)

const (
	CookieName  = "kinoswipe_session"
	TokenHeader = "X-user-token"

	ctxToken   = "session_token"
	ctxSession = "session"
)

type Store interface {
	// Load returns the zero session for unknown tokens.
	Load(ctx context.Context, token string) (model.Session, error)
	Save(ctx context.Context, token string, sess model.Session) error
	Delete(ctx context.Context, token string) error
}

// Middleware resolves the opaque session token of a request into its
// server side session. Clients never send user or room ids themselves.
type Middleware struct {
	store  Store
	ttl    time.Duration
	secure bool
	logger *slog.Logger
}

type Option func(*Middleware)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		m.logger = logger
	}
}

func New(
	store Store,
	ttl time.Duration,
	secure bool,
	opts ...Option,
) *Middleware {
	m := &Middleware{
		store:  store,
		ttl:    ttl,
		secure: secure,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach loads the session. Requests without a valid token get a fresh
// token and an empty session which is persisted on the first Commit.
func (m *Middleware) Attach() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := requestToken(ctx)
		sess := model.Session{}

		if _, err := uuid.Parse(token); err != nil {
			token = uuid.NewString()
		} else {
			sess, err = m.store.Load(ctx, token)
			if err != nil {
				m.logger.Error("failed to load session", slog.String("error", err.Error()))
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, http_common.ErrorResponse{
					Message: "internal error",
				})
				return
			}
		}

		ctx.Set(ctxToken, token)
		ctx.Set(ctxSession, sess)
		ctx.Next()
	}
}

func requestToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	return ctx.GetHeader(TokenHeader)
}

// Current returns the session attached to the request, zero if none.
func Current(ctx *gin.Context) model.Session {
	if v, ok := ctx.Get(ctxSession); ok {
		if sess, ok := v.(model.Session); ok {
			return sess
		}
	}
	return model.Session{}
}

// Token returns the session token attached to the request.
func Token(ctx *gin.Context) string {
	return ctx.GetString(ctxToken)
}

// Commit stores sess under the request token and hands the token back to
// the client as a cookie and a header.
func (m *Middleware) Commit(ctx *gin.Context, sess model.Session) error {
	token := Token(ctx)
	if token == "" {
		token = uuid.NewString()
		ctx.Set(ctxToken, token)
	}

	if err := m.store.Save(ctx, token, sess); err != nil {
		return err
	}
	ctx.Set(ctxSession, sess)

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	ctx.Header(TokenHeader, token)
	return nil
}

// End forgets the session entirely and expires the cookie.
func (m *Middleware) End(ctx *gin.Context) error {
	if token := Token(ctx); token != "" {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}
	ctx.Set(ctxSession, model.Session{})

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
	return nil
}
