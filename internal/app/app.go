package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AyaBm214/PremiumConnect/internal/config"
	"github.com/AyaBm214/PremiumConnect/internal/db"
	"github.com/AyaBm214/PremiumConnect/internal/onboarding"
	"github.com/AyaBm214/PremiumConnect/internal/repository"
	"github.com/AyaBm214/PremiumConnect/internal/service"
	"github.com/AyaBm214/PremiumConnect/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	AuthService       *service.AuthService
	EmailService      *service.EmailService
	Notifier          *service.CompletionNotifier
	PropertyService   *service.PropertyService
	OnboardingService *service.OnboardingService
	ProfileService    *service.ProfileService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to run migrations: %w", err), database.Close())
	}

	// Storage
	blobs, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to initialize storage: %w", err), database.Close())
	}

	a, err := Build(cfg, database, blobs)
	if err != nil {
		return nil, errors.Join(err, database.Close())
	}
	return a, nil
}

// Build wires the services on top of an open database and blob store.
func Build(cfg *config.Config, database *sqlx.DB, blobs service.DocumentStore) (*App, error) {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	propertyRepository := repository.NewPropertyRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	notifier := service.NewCompletionNotifier(emailService, cfg.StaffEmail, cfg.NotifyTimeout)
	uploader := onboarding.NewUploader(blobs, storage.BucketProperties, cfg.UploadConcurrency)

	onboardingService, err := service.NewOnboardingService(
		propertyRepository,
		notifier,
		uploader,
		cfg.WizardCacheSize,
		cfg.WizardCacheTTL,
	)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(
		userRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)

	return &App{
		Cfg:               cfg,
		DB:                database,
		AuthService:       authService,
		EmailService:      emailService,
		Notifier:          notifier,
		PropertyService:   service.NewPropertyService(propertyRepository, onboardingService),
		OnboardingService: onboardingService,
		ProfileService:    service.NewProfileService(profileRepository, blobs),
	}, nil
}

// Close waits for pending completion notices, then releases the cache and
// the database.
func (a *App) Close() error {
	if a.Notifier != nil {
		a.Notifier.Wait()
		if n := a.Notifier.Failures(); n > 0 {
			slog.Warn("completion notices failed during this run", "count", n)
		}
	}
	if a.OnboardingService != nil {
		a.OnboardingService.Close()
	}
	return db.Close(a.DB)
}
