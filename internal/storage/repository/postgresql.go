// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, публикаций и комментариев форума. Счётчики голосов
// и комментариев обновляются атомарными инкрементами на уровне SQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки хранилища, по которым сервисный слой выбирает HTTP-статус.
var (
	// ErrNotFound возвращается, когда запись отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists возвращается при нарушении уникальности.
	ErrAlreadyExists = errors.New("already exists")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, публикациями и комментариями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// uniqueViolation — код ошибки PostgreSQL для нарушения уникального ограничения.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
