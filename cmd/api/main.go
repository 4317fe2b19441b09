package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"samplemarine-backend/internal/config"
	"samplemarine-backend/pkg/container"
	"samplemarine-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.App.Environment)

	c, err := container.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer c.Close()

	if err := Serve(c); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}
