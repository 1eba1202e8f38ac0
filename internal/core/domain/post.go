package domain

import "time"

type Post struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"` // author
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

func NewPost(username, title, body string) *Post {
	return &Post{
		Username:  username,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
}
