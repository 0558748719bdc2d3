package usecase

import (
	"context"
	"encoding/json"

	httpEntity "github.com/evandrarf/exampace-be/internal/delivery/http/entity"
	"github.com/evandrarf/exampace-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/exampace-be/internal/entity"
	"gorm.io/gorm"
)

type SettingsUsecase interface {
	Get(ctx context.Context) (*internalEntity.AppSetting, error)
	Save(ctx context.Context, req httpEntity.SettingsRequest) (*internalEntity.AppSetting, error)
}

type SettingsUsecaseConfig struct {
	DB         *gorm.DB
	Repository repository.SettingsRepository
}

type settingsUsecase struct {
	cfg SettingsUsecaseConfig
}

func NewSettingsUsecase(cfg SettingsUsecaseConfig) SettingsUsecase {
	return &settingsUsecase{cfg: cfg}
}

// Get returns the stored settings or the defaults when nothing has been
// saved yet.
func (u *settingsUsecase) Get(ctx context.Context) (*internalEntity.AppSetting, error) {
	settings, err := u.cfg.Repository.GetSettings(u.cfg.DB.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &internalEntity.AppSetting{
			ID:          repository.SettingsKey,
			ThemeMode:   "system",
			ColorScheme: "azure",
		}, nil
	}
	return settings, nil
}

func (u *settingsUsecase) Save(ctx context.Context, req httpEntity.SettingsRequest) (*internalEntity.AppSetting, error) {
	ratio := ""
	if len(req.ExamTypeRatio) > 0 {
		encoded, err := json.Marshal(req.ExamTypeRatio)
		if err != nil {
			return nil, err
		}
		ratio = string(encoded)
	}
	settings := &internalEntity.AppSetting{
		ID:            repository.SettingsKey,
		ThemeMode:     req.ThemeMode,
		ColorScheme:   req.ColorScheme,
		ExamTotalTime: req.ExamTotalTime,
		ExamTypeRatio: ratio,
	}
	if err := u.cfg.Repository.SaveSettings(u.cfg.DB.WithContext(ctx), settings); err != nil {
		return nil, err
	}
	return settings, nil
}
