// Package anon генерирует анонимный профиль пользователя: идентификатор
// и отображаемое имя, под которыми пользователь виден в сообществе.
package anon

import (
	"strings"

	"github.com/google/uuid"
)

// NewID возвращает анонимный идентификатор вида "anon_a1b2c3d".
func NewID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:7]
	return "anon_" + suffix
}

// DisplayName выводит отображаемое имя из анонимного идентификатора:
// "Anonymous" плюс последние четыре символа идентификатора.
func DisplayName(anonymousID string) string {
	tail := anonymousID
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return "Anonymous" + tail
}
