package models

import "time"

// Comment представляет комментарий к публикации. Содержимое после создания
// неизменяемо, меняются только счётчики голосов.
type Comment struct {
	ID         int       `json:"id"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	AuthorName string    `json:"author_name"`
	PostID     int       `json:"post"`
	Upvotes    int       `json:"upvotes"`
	Downvotes  int       `json:"downvotes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
