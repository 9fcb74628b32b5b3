package http_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinoswipe/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/kinoswipe/internal/delivery/http/middleware/session"
	usecase_room "github.com/humanbelnik/kinoswipe/internal/usecase/room"
)

type Controller struct {
	usecase  *usecase_room.Usecase
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
	usecase *usecase_room.Usecase,
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
	rooms := router.Group("/rooms", c.sessions.Attach())
	{
		rooms.POST("", c.create)
		rooms.POST("/join", c.join)
		rooms.GET("/current/status", c.status)
		rooms.GET("/current/movies", c.movies)
		rooms.DELETE("/current", c.quit)
	}
}

// CreateResponseDTO DTO для ответа создания комнаты
type CreateResponseDTO struct {
	PairingCode string `json:"pairing_code" example:"4821"`
}

// Create создает новую комнату
// @Summary Создание комнаты
// @Description Создает комнату со стартовым списком фильмов и привязывает к ней сессию хоста
// @Tags Rooms
// @Produce json
// @Success 201 {object} CreateResponseDTO "Комната успешно создана"
// @Header 201 {string} X-user-token "Токен сессии"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 502 {object} http_common.ErrorResponse "Медиасервер недоступен"
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	sess, err := c.usecase.CreateRoom(ctx, http_session_middleware.Current(ctx))
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		c.abort(ctx, err)
		return
	}

	if err := c.sessions.Commit(ctx, sess); err != nil {
		c.logger.Error("failed to save session", slog.String("error", err.Error()))
		c.abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, CreateResponseDTO{
		PairingCode: sess.RoomCode,
	})
}

// JoinRequestDTO DTO для входа в комнату
type JoinRequestDTO struct {
	Code string `json:"code" binding:"required" example:"4821"`
}

// Join присоединяет гостя к комнате
// @Summary Вход в комнату
// @Description Находит комнату по коду, помечает ее готовой и привязывает сессию гостя
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body JoinRequestDTO true "Код комнаты"
// @Success 200 {object} http_common.StatusResponse "Вход выполнен"
// @Header 200 {string} X-user-token "Токен сессии"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/join [post]
func (c *Controller) join(ctx *gin.Context) {
	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	sess, err := c.usecase.JoinRoom(ctx, http_session_middleware.Current(ctx), req.Code)
	if err != nil {
		if !errors.Is(err, usecase_room.ErrResourceNotFound) {
			c.logger.Error("failed to join room", slog.String("error", err.Error()))
		}
		c.abort(ctx, err)
		return
	}

	if err := c.sessions.Commit(ctx, sess); err != nil {
		c.logger.Error("failed to save session", slog.String("error", err.Error()))
		c.abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.StatusResponse{
		Status: "success",
	})
}

// Status возвращает статус комнаты
// @Summary Статус комнаты
// @Description Готовность комнаты и активный жанр. Без комнаты возвращается ready=false, genre=All
// @Tags Rooms
// @Produce json
// @Success 200 {object} model.RoomStatus "Статус комнаты"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/current/status [get]
func (c *Controller) status(ctx *gin.Context) {
	status, err := c.usecase.Status(ctx, http_session_middleware.Current(ctx))
	if err != nil {
		c.logger.Error("failed to get status", slog.String("error", err.Error()))
		c.abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// Movies возвращает список фильмов комнаты
// @Summary Фильмы комнаты
// @Description Без жанра возвращает текущий список. С жанром заменяет список для обоих участников
// @Tags Rooms
// @Produce json
// @Param genre query string false "Жанр, All или Recently Added"
// @Success 200 {array} model.Movie "Список фильмов"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 502 {object} http_common.ErrorResponse "Медиасервер недоступен"
// @Security UserToken
// @Router /rooms/current/movies [get]
func (c *Controller) movies(ctx *gin.Context) {
	movies, err := c.usecase.RefreshMovies(ctx, http_session_middleware.Current(ctx), ctx.Query("genre"))
	if err != nil {
		c.logger.Error("failed to refresh movies", slog.String("error", err.Error()))
		c.abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

// Quit удаляет комнату и завершает сессию
// @Summary Выход из комнаты
// @Description Удаляет комнату вместе со свайпами и совпадениями. Выйти может любой участник
// @Tags Rooms
// @Produce json
// @Success 200 {object} http_common.StatusResponse "Сессия завершена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Security UserToken
// @Router /rooms/current [delete]
func (c *Controller) quit(ctx *gin.Context) {
	if err := c.usecase.QuitRoom(ctx, http_session_middleware.Current(ctx)); err != nil {
		c.logger.Error("failed to quit room", slog.String("error", err.Error()))
		c.abort(ctx, err)
		return
	}

	if err := c.sessions.End(ctx); err != nil {
		c.logger.Error("failed to end session", slog.String("error", err.Error()))
		c.abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.StatusResponse{
		Status: "session_ended",
	})
}

func (c *Controller) abort(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase_room.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "invalid code",
		})
	case errors.Is(err, usecase_room.ErrUpstreamUnavailable):
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "movie provider unavailable",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}
