package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/mindspace-backend/internal/models"
)

const postColumns = `id, title, content, author, author_name, category, tags,
			      status, upvotes, downvotes, comments, created_at, updated_at`

func scanPost(row interface{ Scan(dest ...any) error }) (*models.Post, error) {
	var p models.Post
	var rawTags []byte
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.AuthorName,
		&p.Category, &rawTags, &p.Status, &p.Upvotes, &p.Downvotes,
		&p.Comments, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawTags, &p.Tags); err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

// CreatePost вставляет новую публикацию и возвращает её с заполненными полями.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	const op = "storage.CreatePost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rawTags, err := json.Marshal(post.Tags)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO posts (title, content, author, author_name, category, tags, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + postColumns
	row := s.DB.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Author, post.AuthorName,
		post.Category, rawTags, post.Status)
	created, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ReadPost возвращает публикацию по её ID.
func (s *Storage) ReadPost(ctx context.Context, id int) (*models.Post, error) {
	const op = "storage.ReadPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return post, nil
}

// ListPublishedPosts возвращает опубликованные публикации, новые первыми.
func (s *Storage) ListPublishedPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	const op = "storage.ListPublishedPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + `
			  FROM posts
			  WHERE status = $1
			  ORDER BY created_at DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, models.StatusPublished, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	result := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPostsByAuthor возвращает все публикации автора вне зависимости от статуса,
// новые первыми.
func (s *Storage) ListPostsByAuthor(ctx context.Context, authorUID string) ([]*models.Post, error) {
	const op = "storage.ListPostsByAuthor"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + `
			  FROM posts
			  WHERE author = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, authorUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	result := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeletePost удаляет публикацию по ID и возвращает количество удалённых строк.
func (s *Storage) DeletePost(ctx context.Context, id int) (int, error) {
	const op = "storage.DeletePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM posts WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// IncrementPostVote атомарно увеличивает счётчик голосов публикации
// и возвращает обновлённую запись. Инкремент выполняется одним UPDATE,
// поэтому конкурентные голоса не теряются.
func (s *Storage) IncrementPostVote(ctx context.Context, id int, upvote bool) (*models.Post, error) {
	const op = "storage.IncrementPostVote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	column := "downvotes"
	if upvote {
		column = "upvotes"
	}
	query := `UPDATE posts SET ` + column + ` = ` + column + ` + 1, updated_at = now()
			  WHERE id = $1
			  RETURNING ` + postColumns
	post, err := scanPost(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return post, nil
}

// IncrementCommentCount атомарно увеличивает денормализованный счётчик
// комментариев публикации на единицу.
func (s *Storage) IncrementCommentCount(ctx context.Context, id int) error {
	const op = "storage.IncrementCommentCount"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE posts SET comments = comments + 1, updated_at = now()
			  WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
