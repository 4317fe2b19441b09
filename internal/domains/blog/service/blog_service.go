package service

import (
	"context"

	"github.com/google/uuid"

	"samplemarine-backend/internal/domains/blog/model"
	"samplemarine-backend/internal/domains/blog/repository"
	"samplemarine-backend/internal/shared/utils"
)

type BlogService interface {
	Create(ctx context.Context, req model.CreateBlogPostRequest) (*model.BlogPost, error)
	List(ctx context.Context, limit, offset int) ([]*model.BlogPost, error)
}

type blogService struct {
	repo repository.BlogRepository
}

func NewBlogService(repo repository.BlogRepository) BlogService {
	return &blogService{repo: repo}
}

func (s *blogService) Create(ctx context.Context, req model.CreateBlogPostRequest) (*model.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post := &model.BlogPost{
		ID:      uuid.New(),
		Title:   req.Title,
		Slug:    utils.GenerateSlug(req.Title),
		Excerpt: req.Excerpt,
		Content: req.Content,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *blogService) List(ctx context.Context, limit, offset int) ([]*model.BlogPost, error) {
	return s.repo.List(ctx, limit, offset)
}
