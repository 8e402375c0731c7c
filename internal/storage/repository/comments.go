package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/mindspace-backend/internal/models"
)

const commentColumns = `id, content, author, author_name, post_id, upvotes,
			      downvotes, created_at, updated_at`

func scanComment(row interface{ Scan(dest ...any) error }) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.Author, &c.AuthorName, &c.PostID,
		&c.Upvotes, &c.Downvotes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateComment вставляет новый комментарий и возвращает его с заполненными полями.
func (s *Storage) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	const op = "storage.CreateComment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO comments (content, author, author_name, post_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + commentColumns
	row := s.DB.QueryRowContext(ctx, query,
		comment.Content, comment.Author, comment.AuthorName, comment.PostID)
	created, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListCommentsByPost возвращает все комментарии публикации, новые первыми.
func (s *Storage) ListCommentsByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	const op = "storage.ListCommentsByPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + commentColumns + `
			  FROM comments
			  WHERE post_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	result := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteCommentsByPost удаляет все комментарии публикации и возвращает
// количество удалённых строк.
func (s *Storage) DeleteCommentsByPost(ctx context.Context, postID int) (int, error) {
	const op = "storage.DeleteCommentsByPost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM comments WHERE post_id = $1`
	result, err := s.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// IncrementCommentVote атомарно увеличивает счётчик голосов комментария
// и возвращает обновлённую запись.
func (s *Storage) IncrementCommentVote(ctx context.Context, id int, upvote bool) (*models.Comment, error) {
	const op = "storage.IncrementCommentVote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	column := "downvotes"
	if upvote {
		column = "upvotes"
	}
	query := `UPDATE comments SET ` + column + ` = ` + column + ` + 1, updated_at = now()
			  WHERE id = $1
			  RETURNING ` + commentColumns
	comment, err := scanComment(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return comment, nil
}
