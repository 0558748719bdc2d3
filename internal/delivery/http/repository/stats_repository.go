package repository

import (
	"errors"

	"github.com/evandrarf/exampace-be/internal/entity"
	"gorm.io/gorm"
)

type (
	StatsRepository interface {
		ListDailyStats(db *gorm.DB) ([]entity.DailyStat, error)
		// AppendDailyStat accumulates sessions and time into the day's row
		// and replaces the completion rate with the latest value.
		AppendDailyStat(db *gorm.DB, stat *entity.DailyStat) error
	}

	statsRepository struct {
		db *gorm.DB
	}
)

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) ListDailyStats(db *gorm.DB) ([]entity.DailyStat, error) {
	if db == nil {
		db = r.db
	}
	var stats []entity.DailyStat
	err := db.Order("date ASC").Find(&stats).Error
	return stats, err
}

func (r *statsRepository) AppendDailyStat(db *gorm.DB, stat *entity.DailyStat) error {
	if db == nil {
		db = r.db
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var existing entity.DailyStat
		err := tx.Where("date = ?", stat.Date).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(stat).Error
			}
			return err
		}
		existing.TotalSessions += stat.TotalSessions
		existing.TotalTimeMs += stat.TotalTimeMs
		existing.CompletionRate = stat.CompletionRate
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*stat = existing
		return nil
	})
}
