// Package models содержит доменные структуры форума: публикации и комментарии,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Категории публикаций.
const (
	CategorySupport    = "support"
	CategoryDiscussion = "discussion"
	CategoryResource   = "resource"
	CategoryQuestion   = "question"
	CategoryStory      = "story"
	CategoryAdvice     = "advice"
)

// Статусы публикаций. Переходы draft -> published -> archived объявлены
// в модели данных, но сервис создаёт записи сразу в статусе published.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Post представляет публикацию форума.
//
// AuthorName — денормализованное имя автора на момент создания.
// Upvotes, Downvotes и Comments — денормализованные счётчики, которые
// обновляются атомарными инкрементами на уровне хранилища.
type Post struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	AuthorName string    `json:"author_name"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags"`
	Status     string    `json:"status"`
	Upvotes    int       `json:"upvotes"`
	Downvotes  int       `json:"downvotes"`
	Comments   int       `json:"comments"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
