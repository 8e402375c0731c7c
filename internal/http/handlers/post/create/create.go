// Package create реализует HTTP-обработчик для создания новых публикаций.
//
// Handler принимает JSON-запрос с данными публикации, валидирует их, извлекает
// идентичность пользователя из контекста, вызывает бизнес-логику создания
// публикации через сервис и возвращает созданную запись в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/mindspace-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/mindspace-backend/internal/http/response"
	"github.com/magabrotheeeer/mindspace-backend/internal/lib/sl"
	"github.com/magabrotheeeer/mindspace-backend/internal/models"
)

// Request — входные данные новой публикации. Категория ограничена
// фиксированным перечнем, теги необязательны.
type Request struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Content  string   `json:"content" validate:"required,max=10000"`
	Category string   `json:"category" validate:"required,oneof=support discussion resource question story advice"`
	Tags     []string `json:"tags"`
}

// Handler управляет HTTP-запросами на создание публикаций.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики форума
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания публикации.
type Service interface {
	CreatePost(ctx context.Context, identity models.AuthUser, title, content, category string, tags []string) (*models.Post, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новую публикацию
// @Description Создает публикацию от имени текущего пользователя со статусом published.
// @Tags Posts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные новой публикации"
// @Success 201 {object} map[string]any "Созданная публикация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании публикации"
// @Router /posts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	identity, ok := middlewarectx.Identity(r.Context())
	if !ok {
		log.Error("identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	post, err := h.service.CreatePost(r.Context(), identity, req.Title, req.Content, req.Category, req.Tags)
	if err != nil {
		log.Error("failed to create post", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create post"))
		return
	}

	log.Info("success to create post", slog.Int("id", post.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"post": post,
	}))
}
