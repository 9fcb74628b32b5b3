package http_auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinoswipe/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/kinoswipe/internal/delivery/http/middleware/session"
	usecase_plex "github.com/humanbelnik/kinoswipe/internal/usecase/plex"
)

type Controller struct {
	usecase  *usecase_plex.Usecase
	sessions *http_session_middleware.Middleware
	logger   *slog.Logger
}

func New(
	usecase *usecase_plex.Usecase,
	sessions *http_session_middleware.Middleware,
) *Controller {
	return &Controller{
		usecase:  usecase,
		sessions: sessions,
		logger:   slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth", c.sessions.Attach())
	auth.GET("/plex-url", c.plexURL)
	auth.GET("/check-returned-pin", c.checkPin)
}

// PlexURLResponseDTO DTO для ссылки авторизации
type PlexURLResponseDTO struct {
	AuthURL string `json:"auth_url"`
}

// PlexURL возвращает ссылку входа через Plex
// @Summary Ссылка авторизации Plex
// @Description Создает PIN на plex.tv и запоминает его в сессии. После входа браузер возвращается на этот хост
// @Tags Auth operations
// @Produce json
// @Success 200 {object} PlexURLResponseDTO "Ссылка авторизации"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 502 {object} http_common.ErrorResponse "plex.tv недоступен"
// @Router /auth/plex-url [get]
func (c *Controller) plexURL(ctx *gin.Context) {
	authURL, sess, err := c.usecase.AuthURL(ctx, http_session_middleware.Current(ctx), forwardURL(ctx))
	if err != nil {
		c.logger.Error("failed to create plex pin", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "plex unavailable",
		})
		return
	}

	if err := c.sessions.Commit(ctx, sess); err != nil {
		c.logger.Error("failed to save session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, PlexURLResponseDTO{
		AuthURL: authURL,
	})
}

func forwardURL(ctx *gin.Context) string {
	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	if proto := ctx.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + ctx.Request.Host
}

// CheckPinResponseDTO DTO проверки PIN. AuthToken равен null, пока вход не подтвержден
type CheckPinResponseDTO struct {
	AuthToken *string `json:"authToken"`
}

// CheckPin проверяет подтверждение PIN
// @Summary Проверка PIN
// @Description Возвращает токен Plex после подтверждения входа, иначе null
// @Tags Auth operations
// @Produce json
// @Success 200 {object} CheckPinResponseDTO "Результат проверки"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 502 {object} http_common.ErrorResponse "plex.tv недоступен"
// @Router /auth/check-returned-pin [get]
func (c *Controller) checkPin(ctx *gin.Context) {
	token, sess, err := c.usecase.CheckPin(ctx, http_session_middleware.Current(ctx))
	if err != nil {
		c.logger.Error("failed to check plex pin", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "plex unavailable",
		})
		return
	}

	if token != nil {
		if err := c.sessions.Commit(ctx, sess); err != nil {
			c.logger.Error("failed to save session", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			return
		}
	}

	ctx.JSON(http.StatusOK, CheckPinResponseDTO{
		AuthToken: token,
	})
}
