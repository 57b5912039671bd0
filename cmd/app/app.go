package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"travelbook/internal/config"
	"travelbook/internal/database"
	"travelbook/internal/identity"
	"travelbook/internal/repository"
	"travelbook/internal/service"
	"travelbook/internal/storage"
)

// App holds the process-wide dependencies opened once at startup.
type App struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Verifier *identity.Verifier
}

func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	// connection DB
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO, log)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	verifier := identity.NewVerifier(cfg.Auth.JWTSecretKey, cfg.Auth.TokenDuration)
	services := service.NewService(repo, cfg, minioClient, verifier, log)

	return &App{
		DB:       db,
		Repo:     repo,
		Services: services,
		Verifier: verifier,
	}, nil
}

func (a *App) Close() error {
	return a.DB.CloseDB()
}
