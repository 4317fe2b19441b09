package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"samplemarine-backend/internal/domains/product/model"
	"samplemarine-backend/internal/domains/product/repository"
	"samplemarine-backend/internal/pipeline"
	"samplemarine-backend/internal/shared"
	"samplemarine-backend/internal/shared/utils"
	"samplemarine-backend/internal/watermark"
	"samplemarine-backend/pkg/cache"
)

const (
	maxImageBytes = 10 << 20
	maxImageCount = 10
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 5 * time.Minute
	uploadTimeout = 2 * time.Minute
)

// CategoryCounter and BlogCounter are the slices of other domains the
// dashboard needs. The concrete repositories satisfy them.
type CategoryCounter interface {
	Count(ctx context.Context) (int64, error)
}

type BlogCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ProductService interface {
	Create(ctx context.Context, sub *Submission) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, filter model.ProductFilter) (*model.ProductListResponse, error)
	Delete(ctx context.Context, id string) error
	GetDashboardStats(ctx context.Context) (*model.DashboardStats, error)
	Export(ctx context.Context) ([]byte, error)
}

type productService struct {
	repo        repository.ProductRepository
	categories  CategoryCounter
	blogs       BlogCounter
	uploader    pipeline.Uploader
	cache       cache.Cache
	asynqClient *asynq.Client
	spec        watermark.Spec
	folder      string
}

func NewProductService(
	repo repository.ProductRepository,
	categories CategoryCounter,
	blogs BlogCounter,
	uploader pipeline.Uploader,
	cacheClient cache.Cache,
	asynqClient *asynq.Client,
	spec watermark.Spec,
	folder string,
) ProductService {
	return &productService{
		repo:        repo,
		categories:  categories,
		blogs:       blogs,
		uploader:    uploader,
		cache:       cacheClient,
		asynqClient: asynqClient,
		spec:        spec,
		folder:      folder,
	}
}

// Create runs one product submission end to end: validate the form fields,
// watermark and upload the gallery then the hero, and only then persist the
// product. Nothing is written to the database until every image upload has
// succeeded, so a failed batch leaves no partial product behind.
func (s *productService) Create(ctx context.Context, sub *Submission) (*model.Product, error) {
	// 1. Validate before any image work: a bad form must cost zero uploads.
	sub.transition(StateValidating)
	if err := sub.Request.Validate(); err != nil {
		sub.rejected(err)
		return nil, err
	}
	if err := validateImages(sub); err != nil {
		sub.rejected(err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	// 2. Gallery first, hero second, both strictly sequential.
	galleryAssets := make([]*pipeline.Asset, 0, len(sub.Gallery))
	for _, img := range sub.Gallery {
		asset := pipeline.NewAsset(img.Name, img.ContentType, img.Data)
		asset.OnStatus = sub.observe
		galleryAssets = append(galleryAssets, asset)
	}

	galleryResults, err := pipeline.ProcessAndUpload(ctx, galleryAssets, s.spec, s.uploader, s.folder)
	if err != nil {
		sub.failed(err)
		return nil, err
	}

	var heroURL string
	if sub.Hero != nil {
		heroAsset := pipeline.NewAsset(sub.Hero.Name, sub.Hero.ContentType, sub.Hero.Data)
		heroAsset.OnStatus = sub.observe
		heroResults, err := pipeline.ProcessAndUpload(ctx, []*pipeline.Asset{heroAsset}, s.spec, s.uploader, s.folder)
		if err != nil {
			sub.failed(err)
			return nil, err
		}
		heroURL = heroResults[0].URL
	}

	galleryURLs := make([]string, 0, len(galleryResults))
	for _, res := range galleryResults {
		galleryURLs = append(galleryURLs, res.URL)
	}
	if heroURL == "" && len(galleryURLs) > 0 {
		heroURL = galleryURLs[0]
	}

	// 3. Persist.
	sub.transition(StateSubmitting)
	product := &model.Product{
		ID:          uuid.New(),
		Title:       sub.Request.Title,
		Slug:        utils.GenerateSlug(sub.Request.Title),
		Description: sub.Request.Description,
		Category:    sub.Request.Category,
		Brand:       sub.Request.Brand,
		Price:       sub.Request.PriceDecimal(),
		Featured:    sub.Request.Featured,
		Image:       heroURL,
		Images:      galleryURLs,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		sub.failed(err)
		return nil, err
	}

	sub.transition(StateSuccess)
	s.invalidateStats(ctx)
	return product, nil
}

// validateImages checks size and count limits. Images are optional: a
// submission without any is accepted and produces an image-less product.
func validateImages(sub *Submission) error {
	total := len(sub.Gallery)
	if sub.Hero != nil {
		total++
	}
	if total > maxImageCount {
		return model.ErrTooManyImages
	}
	if sub.Hero != nil && len(sub.Hero.Data) > maxImageBytes {
		return model.ErrImageTooLarge
	}
	for _, img := range sub.Gallery {
		if len(img.Data) > maxImageBytes {
			return model.ErrImageTooLarge
		}
	}
	return nil
}

func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if !utils.IsValidUUID(id) {
		return nil, model.ErrProductNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, filter model.ProductFilter) (*model.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return &model.ProductListResponse{
		Products: products,
		Total:    total,
		Limit:    limit,
		Offset:   filter.Offset,
	}, nil
}

// Delete removes the product row and hands its stored images to the worker
// for cleanup. A failed enqueue is logged, not surfaced: the row is gone.
func (s *productService) Delete(ctx context.Context, id string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, product.ID.String()); err != nil {
		return err
	}
	s.invalidateStats(ctx)

	if s.asynqClient != nil {
		urls := append([]string{}, product.Images...)
		if product.Image != "" {
			urls = append(urls, product.Image)
		}
		payload, err := json.Marshal(map[string]interface{}{
			"product_id": product.ID.String(),
			"urls":       urls,
		})
		if err == nil {
			task := asynq.NewTask(shared.TypeDeleteProductImages, payload)
			_, err = s.asynqClient.Enqueue(task,
				asynq.Queue(shared.QueueLow),
				asynq.MaxRetry(3),
			)
		}
		if err != nil {
			log.Warn().Err(err).Str("product_id", product.ID.String()).
				Msg("failed to enqueue image cleanup")
		}
	}

	return nil
}

func (s *productService) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if found, err := s.cache.Get(ctx, statsCacheKey, &stats); err == nil && found {
		return &stats, nil
	}

	totalProducts, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	totalFeatured, err := s.repo.CountFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	totalBrands, err := s.repo.CountDistinctBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	totalCategories, err := s.categories.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	totalBlogPosts, err := s.blogs.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	stats = model.DashboardStats{
		TotalProducts:         totalProducts,
		TotalCategories:       totalCategories,
		TotalBrands:           totalBrands,
		TotalBlogPosts:        totalBlogPosts,
		TotalFeaturedProducts: totalFeatured,
	}

	if err := s.cache.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache dashboard stats")
	}
	return &stats, nil
}

func (s *productService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate dashboard stats cache")
	}
}
