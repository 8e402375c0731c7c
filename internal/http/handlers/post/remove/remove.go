package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mindspace-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/mindspace-backend/internal/http/response"
	"github.com/magabrotheeeer/mindspace-backend/internal/lib/sl"
	"github.com/magabrotheeeer/mindspace-backend/internal/models"
	"github.com/magabrotheeeer/mindspace-backend/internal/services/forum"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	DeletePost(ctx context.Context, identity models.AuthUser, id int) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP удаляет публикацию вместе с её комментариями. Сначала проверяется
// существование (404), затем владение (403).
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	identity, ok := middlewarectx.Identity(r.Context())
	if !ok {
		log.Error("identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.DeletePost(r.Context(), identity, id); err != nil {
		switch {
		case errors.Is(err, forum.ErrPostNotFound):
			log.Error("post not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
		case errors.Is(err, forum.ErrNotOwner):
			log.Error("delete forbidden", slog.Int("id", id), slog.String("user", identity.UID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not authorized to delete this post"))
		default:
			log.Error("failed to delete post", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete post"))
		}
		return
	}

	log.Info("success to delete post", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "post deleted successfully",
	}))
}
