package main

import (
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"samplemarine-backend/internal/config"
	contactJob "samplemarine-backend/internal/domains/contact/job"
	productJob "samplemarine-backend/internal/domains/product/job"
	"samplemarine-backend/internal/infrastructure/email"
	"samplemarine-backend/internal/infrastructure/storage"
	"samplemarine-backend/internal/shared"
	"samplemarine-backend/pkg/logger"
)

// The worker consumes the queues the API enqueues to: contact notification
// mail and storage cleanup for deleted products.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.App.Environment)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				shared.QueueCritical: 6,
				shared.QueueDefault:  3,
				shared.QueueLow:      1,
			},
		},
	)

	mux := asynq.NewServeMux()
	registerHandlers(mux, cfg)

	log.Info().Str("redis", cfg.Redis.Host).Msg("worker starting")
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("worker exited with error")
	}
}

func registerHandlers(mux *asynq.ServeMux, cfg *config.Config) {
	sender := email.NewSMTPSender(cfg.SMTP)
	mux.Handle(shared.TypeSendContactEmail, contactJob.NewSendEmailHandler(sender))

	// Cloudinary uploads cannot be deleted with an unsigned preset, so the
	// cleanup handler only gets a remover on the MinIO backend.
	var remover productJob.ImageRemover
	if cfg.Storage.Backend == "minio" {
		minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			log.Warn().Err(err).Msg("minio unavailable, image cleanup disabled")
		} else {
			remover = minioStorage
		}
	}
	mux.Handle(shared.TypeDeleteProductImages, productJob.NewDeleteImagesHandler(remover))
}
