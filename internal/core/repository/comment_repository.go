package repository

import (
	"context"

	"github.com/martijn/miniblog/internal/core/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByPost(ctx context.Context, postID int64) ([]*domain.Comment, error)
}
