package config

import (
	"github.com/evandrarf/exampace-be/internal/delivery/http/handler"
	"github.com/evandrarf/exampace-be/internal/delivery/http/middleware"
	"github.com/evandrarf/exampace-be/internal/delivery/http/repository"
	"github.com/evandrarf/exampace-be/internal/delivery/http/route"
	"github.com/evandrarf/exampace-be/internal/delivery/http/usecase"
	"github.com/evandrarf/exampace-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
}

// Bootstrap wires repositories, usecases, handlers and routes. It returns
// the practice engine so main can restore its state and shut it down.
func Bootstrap(config *BootstrapConfig) usecase.PracticeEngine {

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	templateRepo := repository.NewTemplateRepository(config.DB)
	sessionRepo := repository.NewSessionRepository(config.DB)
	settingsRepo := repository.NewSettingsRepository(config.DB)
	statsRepo := repository.NewStatsRepository(config.DB)

	engine := usecase.NewPracticeEngine(usecase.PracticeEngineConfig{
		DB:                 config.DB,
		Log:                config.Log,
		Config:             config.Config,
		TemplateRepository: templateRepo,
		SessionRepository:  sessionRepo,
		SettingsRepository: settingsRepo,
		StatsRepository:    statsRepo,
	})
	reviewUsecase := usecase.NewReviewUsecase(usecase.ReviewUsecaseConfig{
		DB:                 config.DB,
		Log:                config.Log,
		SessionRepository:  sessionRepo,
		TemplateRepository: templateRepo,
		StatsRepository:    statsRepo,
	})
	templateUsecase := usecase.NewTemplateUsecase(usecase.TemplateUsecaseConfig{
		DB:         config.DB,
		Log:        config.Log,
		Repository: templateRepo,
	})
	backupUsecase := usecase.NewBackupUsecase(usecase.BackupUsecaseConfig{
		DB:  config.DB,
		Log: config.Log,
	})
	settingsUsecase := usecase.NewSettingsUsecase(usecase.SettingsUsecaseConfig{
		DB:         config.DB,
		Repository: settingsRepo,
	})

	route.Setup(&route.RouteConfig{
		Api:             config.Api,
		Middleware:      mid,
		PracticeHandler: handler.NewPracticeHandler(config.Validator, config.Log, engine),
		SessionHandler:  handler.NewSessionHandler(config.Validator, config.Log, reviewUsecase),
		TemplateHandler: handler.NewTemplateHandler(config.Validator, config.Log, templateUsecase),
		StatsHandler:    handler.NewStatsHandler(config.Log, reviewUsecase),
		BackupHandler:   handler.NewBackupHandler(config.Log, backupUsecase),
		SettingsHandler: handler.NewSettingsHandler(config.Validator, config.Log, settingsUsecase),
	})

	return engine
}
