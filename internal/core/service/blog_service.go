package service

import (
	"context"

	"github.com/martijn/miniblog/internal/core/domain"
	"github.com/martijn/miniblog/internal/core/repository"
)

// BlogService handles post and comment content. Authoring operations
// take the username of an identity already resolved by a guard.
type BlogService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewBlogService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *BlogService {
	return &BlogService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (s *BlogService) CreatePost(ctx context.Context, username, title, body string) (*domain.Post, error) {
	post := domain.NewPost(username, title, body)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) ListPosts(ctx context.Context, filter repository.PostFilter) ([]*domain.Post, int, error) {
	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPost returns the post and its comments, or ErrPostNotFound.
func (s *BlogService) GetPost(ctx context.Context, id int64) (*domain.Post, []*domain.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if post == nil {
		return nil, nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

// AddComment attaches a comment to an existing post, or returns
// ErrPostNotFound when the post is gone.
func (s *BlogService) AddComment(ctx context.Context, postID int64, username, body string) (*domain.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := domain.NewComment(postID, username, body)
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
