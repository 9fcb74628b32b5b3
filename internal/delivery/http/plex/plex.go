package http_plex

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinoswipe/internal/delivery/http/common"
	usecase_plex "github.com/humanbelnik/kinoswipe/internal/usecase/plex"
)

const plexTokenHeader = "X-Plex-Token"

type Controller struct {
	usecase *usecase_plex.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_plex.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/watchlist", c.addToWatchlist)
	router.GET("/plex/server-info", c.serverInfo)
}

// WatchlistRequestDTO DTO для добавления в список просмотра
type WatchlistRequestDTO struct {
	MovieID http_common.MovieID `json:"movie_id" swaggertype:"string" example:"100"`
}

type SuccessResponseDTO struct {
	Success bool `json:"success"`
}

// AddToWatchlist добавляет фильм в список просмотра Plex
// @Summary Добавление в Watchlist
// @Description Добавляет фильм библиотеки в Watchlist аккаунта, которому принадлежит X-Plex-Token
// @Tags Plex
// @Accept json
// @Produce json
// @Param X-Plex-Token header string true "Токен пользователя Plex"
// @Param request body WatchlistRequestDTO true "Фильм"
// @Success 200 {object} SuccessResponseDTO "Фильм добавлен"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} http_common.ErrorResponse "Нет токена или фильма"
// @Failure 502 {object} http_common.ErrorResponse "Plex недоступен"
// @Router /watchlist [post]
func (c *Controller) addToWatchlist(ctx *gin.Context) {
	var req WatchlistRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	err := c.usecase.AddToWatchlist(ctx, ctx.GetHeader(plexTokenHeader), req.MovieID.String())
	if err != nil {
		if errors.Is(err, usecase_plex.ErrUnauthorized) {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "missing token or movie id",
			})
			return
		}
		c.logger.Error("failed to add to watchlist", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "plex unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, SuccessResponseDTO{
		Success: true,
	})
}

// ServerInfo возвращает данные медиасервера
// @Summary Информация о сервере
// @Tags Plex
// @Produce json
// @Success 200 {object} model.ServerInfo "Идентификатор и имя сервера"
// @Failure 502 {object} http_common.ErrorResponse "Plex недоступен"
// @Router /plex/server-info [get]
func (c *Controller) serverInfo(ctx *gin.Context) {
	info, err := c.usecase.ServerInfo(ctx)
	if err != nil {
		c.logger.Error("failed to get server info", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "plex unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, info)
}
