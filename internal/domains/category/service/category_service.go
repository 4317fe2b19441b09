package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"samplemarine-backend/internal/domains/category/model"
	"samplemarine-backend/internal/domains/category/repository"
	"samplemarine-backend/pkg/cache"
)

const (
	listCacheKey = "categories:list"
	listCacheTTL = 10 * time.Minute
)

type CategoryService interface {
	List(ctx context.Context) []*model.Category
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache cache.Cache
}

func NewCategoryService(repo repository.CategoryRepository, cacheClient cache.Cache) CategoryService {
	return &categoryService{repo: repo, cache: cacheClient}
}

// List returns all categories in display order. The category dropdown is a
// soft collaborator of the product form: any failure here degrades to an
// empty list so the form stays usable, it never surfaces an error.
func (s *categoryService) List(ctx context.Context) []*model.Category {
	var cached []*model.Category
	if found, err := s.cache.Get(ctx, listCacheKey, &cached); err == nil && found {
		return cached
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("category list failed, serving empty list")
		return []*model.Category{}
	}

	if err := s.cache.Set(ctx, listCacheKey, categories, listCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache category list")
	}
	return categories
}
