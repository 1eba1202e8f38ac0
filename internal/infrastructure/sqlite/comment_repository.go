package sqlite

import (
	"context"
	"fmt"

	"github.com/martijn/miniblog/internal/core/domain"
	"github.com/martijn/miniblog/internal/core/repository"
)

type commentRepository struct {
	db *DB
}

func NewCommentRepository(db *DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comment (post_id, username, body, created_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		comment.PostID,
		comment.Username,
		comment.Body,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id

	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	query := `
		SELECT id, post_id, username, body, created_at
		FROM comment
		WHERE post_id = ?
		ORDER BY created_at ASC
	`
	var comments []*domain.Comment
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
