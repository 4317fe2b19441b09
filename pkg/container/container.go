package container

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"samplemarine-backend/internal/config"
	blogHandler "samplemarine-backend/internal/domains/blog/handler"
	blogRepo "samplemarine-backend/internal/domains/blog/repository"
	blogService "samplemarine-backend/internal/domains/blog/service"
	categoryHandler "samplemarine-backend/internal/domains/category/handler"
	categoryRepo "samplemarine-backend/internal/domains/category/repository"
	categoryService "samplemarine-backend/internal/domains/category/service"
	contactHandler "samplemarine-backend/internal/domains/contact/handler"
	contactRepo "samplemarine-backend/internal/domains/contact/repository"
	contactService "samplemarine-backend/internal/domains/contact/service"
	productHandler "samplemarine-backend/internal/domains/product/handler"
	productRepo "samplemarine-backend/internal/domains/product/repository"
	productService "samplemarine-backend/internal/domains/product/service"
	userHandler "samplemarine-backend/internal/domains/user/handler"
	userRepo "samplemarine-backend/internal/domains/user/repository"
	userService "samplemarine-backend/internal/domains/user/service"
	rediscache "samplemarine-backend/internal/infrastructure/cache"
	"samplemarine-backend/internal/infrastructure/database"
	"samplemarine-backend/internal/infrastructure/storage"
	"samplemarine-backend/internal/pipeline"
	"samplemarine-backend/internal/watermark"
	"samplemarine-backend/pkg/cache"
	"samplemarine-backend/pkg/jwt"
)

// Container wires every layer of the API process together. Initialization
// order matters: config, database, cache, storage, then repos, services and
// handlers on top.
type Container struct {
	Config *config.Config

	DB          *database.PostgresDB
	Cache       cache.Cache
	Uploader    pipeline.Uploader
	AsynqClient *asynq.Client
	JWTManager  *jwt.Manager

	ProductHandler  *productHandler.ProductHandler
	CategoryHandler *categoryHandler.CategoryHandler
	ContactHandler  *contactHandler.ContactHandler
	UserHandler     *userHandler.UserHandler
	BlogHandler     *blogHandler.BlogHandler

	redisCache *rediscache.RedisCache
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// 1. Database
	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	c.DB = db

	// 2. Cache
	redisCache := rediscache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	c.redisCache = redisCache
	c.Cache = redisCache

	// 3. Object storage
	uploader, err := newUploader(cfg)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}
	c.Uploader = uploader

	// 4. Background queue client
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 5. Auth
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// 6. Repositories
	products := productRepo.NewProductRepository(db.Pool)
	categories := categoryRepo.NewCategoryRepository(db.Pool)
	contacts := contactRepo.NewContactRepository(db.Pool)
	users := userRepo.NewUserRepository(db.Pool)
	blogs := blogRepo.NewBlogRepository(db.Pool)

	// 7. Services
	spec := watermark.DefaultSpec(cfg.Watermark.Text)
	spec.Opacity = cfg.Watermark.Opacity
	spec.MaxDimension = cfg.Watermark.MaxDimension
	spec.Quality = cfg.Watermark.Quality

	productSvc := productService.NewProductService(
		products, categories, blogs,
		c.Uploader, c.Cache, c.AsynqClient,
		spec, cfg.Storage.Folder,
	)
	categorySvc := categoryService.NewCategoryService(categories, c.Cache)
	contactSvc := contactService.NewContactService(contacts, c.AsynqClient)
	userSvc := userService.NewUserService(users, c.JWTManager)
	blogSvc := blogService.NewBlogService(blogs)

	// 8. Handlers
	c.ProductHandler = productHandler.NewProductHandler(productSvc)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(categorySvc)
	c.ContactHandler = contactHandler.NewContactHandler(contactSvc)
	c.UserHandler = userHandler.NewUserHandler(userSvc)
	c.BlogHandler = blogHandler.NewBlogHandler(blogSvc)

	return c, nil
}

func newUploader(cfg *config.Config) (pipeline.Uploader, error) {
	switch cfg.Storage.Backend {
	case "cloudinary":
		return storage.NewCloudinaryStorage(cfg.Cloudinary), nil
	default:
		return storage.NewMinIOStorage(cfg.MinIO)
	}
}

// Close releases every held resource, tolerating partially built containers.
func (c *Container) Close() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close asynq client")
		}
	}
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
