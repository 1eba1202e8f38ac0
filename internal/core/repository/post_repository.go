package repository

import (
	"context"

	"github.com/martijn/miniblog/internal/api/util"
	"github.com/martijn/miniblog/internal/core/domain"
)

// PostFilter embeds ListFilter for generic query/order/pagination
type PostFilter struct {
	util.ListFilter
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error

	// FindByID returns (nil, nil) when no post exists with the given id.
	FindByID(ctx context.Context, id int64) (*domain.Post, error)

	List(ctx context.Context, filter PostFilter) ([]*domain.Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
}
