package database

import (
	"github.com/evandrarf/exampace-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.QuestionType{},
		&entity.Template{},
		&entity.TemplateItem{},
		&entity.Session{},
		&entity.SessionItem{},
		&entity.QuestionRecord{},
		&entity.DailyStat{},
		&entity.AppSetting{},
		&entity.SessionSnapshot{},
	)
	return err
}
