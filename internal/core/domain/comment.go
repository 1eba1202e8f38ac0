package domain

import "time"

type Comment struct {
	ID        int64     `db:"id"`
	PostID    int64     `db:"post_id"`
	Username  string    `db:"username"` // author
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

func NewComment(postID int64, username, body string) *Comment {
	return &Comment{
		PostID:    postID,
		Username:  username,
		Body:      body,
		CreatedAt: time.Now(),
	}
}
