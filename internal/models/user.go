// Package models содержит доменную модель пользователя платформы,
// включающую данные учётной записи, хэш пароля и анонимный профиль.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя платформы.
//
// PasswordHash никогда не сериализуется в ответах API.
// AnonymousID и DisplayName образуют анонимный профиль, под которым
// пользователь виден остальным участникам сообщества.
type User struct {
	UID          string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	AnonymousID  string    `json:"anonymous_id"`
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthUser содержит данные пользователя, извлечённые из токена.
// Используется как идентичность запроса после прохождения middleware.
type AuthUser struct {
	UID      string
	Username string
	Role     string
}
