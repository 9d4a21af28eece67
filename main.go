package main

import (
	"log"

	"movie-review/cmd"
	"movie-review/internal/data/catalog"
	"movie-review/internal/data/repository"
	"movie-review/internal/usecase"
	"movie-review/internal/wire"
	"movie-review/pkg/database"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	if config.Catalog.APIKey == "" {
		logger.Warn("OMDB_API_KEY is empty, catalog requests will be rejected")
	}

	if err := database.Migrate(config.Database, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)
	client := catalog.NewClient(config.Catalog, logger)

	app := wire.Wiring(repos, client, usecase.DefaultRandomizer(), config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
