package http_swipe

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinoswipe/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/kinoswipe/internal/delivery/http/middleware/session"
	"github.com/humanbelnik/kinoswipe/internal/model"
	usecase_swipe "github.com/humanbelnik/kinoswipe/internal/usecase/swipe"
)

type Controller struct {
	usecase  *usecase_swipe.Usecase
	sessions *http_session_middleware.Middleware
	logger   *slog.Logger
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	usecase *usecase_swipe.Usecase,
	sessions *http_session_middleware.Middleware,
	opts ...Option,
) *Controller {
	c := &Controller{
		usecase:  usecase,
		sessions: sessions,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	current := router.Group("/rooms/current", c.sessions.Attach())
	{
		current.POST("/swipes", c.swipe)
		current.DELETE("/swipes/:movie_id", c.undo)
		current.GET("/matches", c.matches)
		current.DELETE("/matches/:movie_id", c.deleteMatch)
	}
}

// SwipeRequestDTO DTO для свайпа
type SwipeRequestDTO struct {
	MovieID   http_common.MovieID `json:"movie_id" swaggertype:"string" example:"100"`
	Direction model.Direction     `json:"direction" enums:"right,left" example:"right"`
	Title     string              `json:"title" example:"Alien"`
	Thumb     string              `json:"thumb" example:"/api/v1/proxy?path=%2Flibrary%2Fmetadata%2F100%2Fthumb"`
}

// Swipe записывает решение участника
// @Summary Свайп фильма
// @Description Добавляет свайп в журнал комнаты. Лайк проверяется на совпадение с лайком партнера
// @Tags Swipes
// @Accept json
// @Produce json
// @Param request body SwipeRequestDTO true "Свайп"
// @Success 200 {object} model.SwipeResult "Результат свайпа"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/current/swipes [post]
func (c *Controller) swipe(ctx *gin.Context) {
	var req SwipeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	result, err := c.usecase.RecordSwipe(ctx, http_session_middleware.Current(ctx), model.Swipe{
		MovieID:   req.MovieID.String(),
		Direction: req.Direction,
		Title:     req.Title,
		Thumb:     req.Thumb,
	})
	if err != nil {
		c.abort(ctx, "failed to record swipe", err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Undo отменяет свайп
// @Summary Отмена свайпа
// @Description Удаляет все свайпы участника по фильму и совпадение комнаты по нему
// @Tags Swipes
// @Produce json
// @Param movie_id path string true "Идентификатор фильма"
// @Success 200 {object} http_common.StatusResponse "Свайп отменен"
// @Failure 400 {object} http_common.ErrorResponse "Неверный идентификатор"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/current/swipes/{movie_id} [delete]
func (c *Controller) undo(ctx *gin.Context) {
	if err := c.usecase.UndoSwipe(ctx, http_session_middleware.Current(ctx), ctx.Param("movie_id")); err != nil {
		c.abort(ctx, "failed to undo swipe", err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.StatusResponse{
		Status: "undone",
	})
}

// Matches возвращает совпадения комнаты
// @Summary Список совпадений
// @Tags Matches
// @Produce json
// @Success 200 {array} model.Match "Совпадения"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/current/matches [get]
func (c *Controller) matches(ctx *gin.Context) {
	matches, err := c.usecase.ListMatches(ctx, http_session_middleware.Current(ctx))
	if err != nil {
		c.abort(ctx, "failed to list matches", err)
		return
	}

	ctx.JSON(http.StatusOK, matches)
}

// DeleteMatch удаляет совпадение
// @Summary Удаление совпадения
// @Description Журнал свайпов не меняется
// @Tags Matches
// @Produce json
// @Param movie_id path string true "Идентификатор фильма"
// @Success 200 {object} http_common.StatusResponse "Совпадение удалено"
// @Failure 400 {object} http_common.ErrorResponse "Неверный идентификатор"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/current/matches/{movie_id} [delete]
func (c *Controller) deleteMatch(ctx *gin.Context) {
	if err := c.usecase.DeleteMatch(ctx, http_session_middleware.Current(ctx), ctx.Param("movie_id")); err != nil {
		c.abort(ctx, "failed to delete match", err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.StatusResponse{
		Status: "deleted",
	})
}

func (c *Controller) abort(ctx *gin.Context, msg string, err error) {
	if errors.Is(err, usecase_swipe.ErrInvalidInput) {
		c.logger.Warn(msg, slog.String("error", err.Error()))
		message := "invalid request"
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			message = verr.Error()
		}
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: message,
		})
		return
	}

	c.logger.Error(msg, slog.String("error", err.Error()))
	ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
		Message: "internal error",
	})
}
