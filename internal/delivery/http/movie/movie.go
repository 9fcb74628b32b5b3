package http_movie

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinoswipe/internal/delivery/http/common"
	infra_plex "github.com/humanbelnik/kinoswipe/internal/infra/plex"
)

type ImageSource interface {
	FetchImage(ctx context.Context, path string) (io.ReadCloser, string, error)
}

// Controller proxies library artwork so that browsers never see the
// media server address or its token.
type Controller struct {
	images ImageSource
	logger *slog.Logger
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(images ImageSource, opts ...Option) *Controller {
	c := &Controller{
		images: images,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/proxy", c.proxy)
}

// Proxy отдает обложку фильма с медиасервера
// @Summary Прокси изображений
// @Description Загружает изображение библиотеки Plex и отдает его с исходным Content-Type
// @Tags Movies
// @Produce image/jpeg
// @Param path query string true "Путь изображения, начинается с /library/"
// @Success 200 {file} binary "Изображение"
// @Failure 400 {object} http_common.ErrorResponse "Не указан путь"
// @Failure 403 {object} http_common.ErrorResponse "Путь вне библиотеки"
// @Failure 502 {object} http_common.ErrorResponse "Медиасервер недоступен"
// @Router /proxy [get]
func (c *Controller) proxy(ctx *gin.Context) {
	path := ctx.Query("path")
	if path == "" {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "path is required",
		})
		return
	}

	body, contentType, err := c.images.FetchImage(ctx, path)
	if err != nil {
		if errors.Is(err, infra_plex.ErrForbiddenPath) {
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
				Message: "forbidden",
			})
			return
		}
		c.logger.Error("failed to fetch image", slog.String("path", path), slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "image unavailable",
		})
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Header("Cache-Control", "public, max-age=86400")
	ctx.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}
