package repository

import (
	"errors"

	"github.com/evandrarf/exampace-be/internal/entity"
	"gorm.io/gorm"
)

const (
	SettingsKey = "app"
	SnapshotKey = "current"
)

type (
	SettingsRepository interface {
		GetSettings(db *gorm.DB) (*entity.AppSetting, error)
		SaveSettings(db *gorm.DB, settings *entity.AppSetting) error
		GetSnapshot(db *gorm.DB) (*entity.SessionSnapshot, error)
		SaveSnapshot(db *gorm.DB, payload string) error
		ClearSnapshot(db *gorm.DB) error
	}

	settingsRepository struct {
		db *gorm.DB
	}
)

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetSettings returns nil without error when no settings row exists yet.
func (r *settingsRepository) GetSettings(db *gorm.DB) (*entity.AppSetting, error) {
	if db == nil {
		db = r.db
	}
	var settings entity.AppSetting
	err := db.Where("id = ?", SettingsKey).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) SaveSettings(db *gorm.DB, settings *entity.AppSetting) error {
	if db == nil {
		db = r.db
	}
	settings.ID = SettingsKey
	return db.Save(settings).Error
}

func (r *settingsRepository) GetSnapshot(db *gorm.DB) (*entity.SessionSnapshot, error) {
	if db == nil {
		db = r.db
	}
	var snapshot entity.SessionSnapshot
	err := db.Where("id = ?", SnapshotKey).First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

func (r *settingsRepository) SaveSnapshot(db *gorm.DB, payload string) error {
	if db == nil {
		db = r.db
	}
	return db.Save(&entity.SessionSnapshot{ID: SnapshotKey, Payload: payload}).Error
}

func (r *settingsRepository) ClearSnapshot(db *gorm.DB) error {
	if db == nil {
		db = r.db
	}
	return db.Where("id = ?", SnapshotKey).Delete(&entity.SessionSnapshot{}).Error
}
