// Package forum содержит бизнес-логику работы с публикациями, комментариями
// и голосованием: правила владения, каскадное удаление и денормализованные счётчики.
package forum

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/mindspace-backend/internal/lib/sl"
	"github.com/magabrotheeeer/mindspace-backend/internal/models"
	"github.com/magabrotheeeer/mindspace-backend/internal/storage/repository"
)

// publishedPageSize — фиксированный размер выдачи опубликованных постов.
const publishedPageSize = 20

// VoteUp — значение типа голоса, увеличивающее upvotes. Любое другое значение
// увеличивает downvotes.
const VoteUp = "up"

// Ошибки сервиса форума.
var (
	// ErrPostNotFound возвращается, когда публикация отсутствует.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound возвращается, когда комментарий отсутствует.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrNotOwner возвращается, когда публикацию удаляет не её автор.
	// Проверка владения выполняется только после проверки существования.
	ErrNotOwner = errors.New("not authorized to delete this post")
	// ErrEmptyContent возвращается, когда текст комментария после обрезки
	// пробелов пуст.
	ErrEmptyContent = errors.New("comment content is empty")
)

// PostRepository определяет методы для работы с публикациями в хранилище.
type PostRepository interface {
	// CreatePost добавляет новую публикацию и возвращает её.
	CreatePost(ctx context.Context, post models.Post) (*models.Post, error)
	// ReadPost возвращает публикацию по ID.
	ReadPost(ctx context.Context, id int) (*models.Post, error)
	// ListPublishedPosts возвращает опубликованные публикации, новые первыми.
	ListPublishedPosts(ctx context.Context, limit int) ([]*models.Post, error)
	// ListPostsByAuthor возвращает все публикации автора, новые первыми.
	ListPostsByAuthor(ctx context.Context, authorUID string) ([]*models.Post, error)
	// DeletePost удаляет публикацию и возвращает количество удалённых строк.
	DeletePost(ctx context.Context, id int) (int, error)
	// IncrementPostVote атомарно увеличивает счётчик голосов публикации.
	IncrementPostVote(ctx context.Context, id int, upvote bool) (*models.Post, error)
	// IncrementCommentCount атомарно увеличивает счётчик комментариев публикации.
	IncrementCommentCount(ctx context.Context, id int) error
}

// CommentRepository определяет методы для работы с комментариями в хранилище.
type CommentRepository interface {
	// CreateComment добавляет новый комментарий и возвращает его.
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)
	// ListCommentsByPost возвращает комментарии публикации, новые первыми.
	ListCommentsByPost(ctx context.Context, postID int) ([]*models.Comment, error)
	// DeleteCommentsByPost удаляет все комментарии публикации.
	DeleteCommentsByPost(ctx context.Context, postID int) (int, error)
	// IncrementCommentVote атомарно увеличивает счётчик голосов комментария.
	IncrementCommentVote(ctx context.Context, id int, upvote bool) (*models.Comment, error)
}

// Service реализует операции форума поверх хранилища.
type Service struct {
	posts    PostRepository
	comments CommentRepository
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(posts PostRepository, comments CommentRepository, log *slog.Logger) *Service {
	return &Service{
		posts:    posts,
		comments: comments,
		log:      log,
	}
}

// ListPublished возвращает до двадцати опубликованных публикаций, новые первыми.
// Публикации в статусах draft и archived в выдачу не попадают.
func (s *Service) ListPublished(ctx context.Context) ([]*models.Post, error) {
	return s.posts.ListPublishedPosts(ctx, publishedPageSize)
}

// CreatePost создает публикацию от имени аутентифицированного пользователя.
// Теги приводятся к нижнему регистру, статус всегда published.
func (s *Service) CreatePost(ctx context.Context, identity models.AuthUser, title, content, category string, tags []string) (*models.Post, error) {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	post := models.Post{
		Title:      title,
		Content:    content,
		Author:     identity.UID,
		AuthorName: identity.Username,
		Category:   category,
		Tags:       normalized,
		Status:     models.StatusPublished,
	}
	created, err := s.posts.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new post", slog.Int("id", created.ID))
	return created, nil
}

// DeletePost удаляет публикацию вместе с её комментариями.
//
// Порядок проверок фиксированный: сначала существование (404), затем владение
// (403). Каскад выполняется двумя последовательными атомарными операциями —
// сначала удаляются комментарии, затем сама публикация, без общей транзакции.
func (s *Service) DeletePost(ctx context.Context, identity models.AuthUser, id int) error {
	post, err := s.posts.ReadPost(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.Author != identity.UID {
		return ErrNotOwner
	}

	deleted, err := s.comments.DeleteCommentsByPost(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.posts.DeletePost(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted post with comments",
		slog.Int("id", id), slog.Int("comments_deleted", deleted))
	return nil
}

// VotePost увеличивает счётчик голосов публикации. Тип "up" увеличивает
// upvotes, любой другой — downvotes. Повторные голоса одного пользователя
// не ограничиваются.
func (s *Service) VotePost(ctx context.Context, id int, voteType string) (*models.Post, error) {
	post, err := s.posts.IncrementPostVote(ctx, id, voteType == VoteUp)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// ListMyPosts возвращает все публикации пользователя вне зависимости от статуса.
func (s *Service) ListMyPosts(ctx context.Context, identity models.AuthUser) ([]*models.Post, error) {
	return s.posts.ListPostsByAuthor(ctx, identity.UID)
}

// ListComments возвращает комментарии публикации, новые первыми.
func (s *Service) ListComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	return s.comments.ListCommentsByPost(ctx, postID)
}

// CreateComment создает комментарий и увеличивает счётчик комментариев
// родительской публикации. Текст, пустой после обрезки пробелов, отклоняется
// с ErrEmptyContent. Инкремент атомарный, поэтому конкурентное создание
// комментариев не рассинхронизирует счётчик.
func (s *Service) CreateComment(ctx context.Context, identity models.AuthUser, postID int, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	comment := models.Comment{
		Content:    content,
		Author:     identity.UID,
		AuthorName: identity.Username,
		PostID:     postID,
	}
	created, err := s.comments.CreateComment(ctx, comment)
	if err != nil {
		return nil, err
	}
	if err := s.posts.IncrementCommentCount(ctx, postID); err != nil {
		// Комментарий уже записан; расхождение счётчика логируем, но ответ
		// пользователю не ломаем.
		s.log.Error("failed to increment comment counter",
			slog.Int("post_id", postID), sl.Err(err))
	}
	return created, nil
}

// VoteComment увеличивает счётчик голосов комментария по тем же правилам,
// что и VotePost.
func (s *Service) VoteComment(ctx context.Context, id int, voteType string) (*models.Comment, error) {
	comment, err := s.comments.IncrementCommentVote(ctx, id, voteType == VoteUp)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
