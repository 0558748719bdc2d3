package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	httpEntity "github.com/evandrarf/exampace-be/internal/delivery/http/entity"
	internalEntity "github.com/evandrarf/exampace-be/internal/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BackupUsecase interface {
	Export(ctx context.Context) (*httpEntity.BackupPayload, error)
	Import(ctx context.Context, raw []byte) error
}

type BackupUsecaseConfig struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

type backupUsecase struct {
	cfg BackupUsecaseConfig
	now func() time.Time
}

func NewBackupUsecase(cfg BackupUsecaseConfig) BackupUsecase {
	return &backupUsecase{cfg: cfg, now: time.Now}
}

// Export dumps every collection into a v1 payload.
func (u *backupUsecase) Export(ctx context.Context) (*httpEntity.BackupPayload, error) {
	db := u.cfg.DB.WithContext(ctx)

	payload := &httpEntity.BackupPayload{
		Version:    httpEntity.BackupVersion,
		ExportedAt: u.now().UTC().Format(time.RFC3339),
	}
	payload.Data.QuestionTypes = []internalEntity.QuestionType{}
	payload.Data.Templates = []internalEntity.Template{}
	payload.Data.TemplateItems = []internalEntity.TemplateItem{}
	payload.Data.Sessions = []internalEntity.Session{}
	payload.Data.SessionItems = []internalEntity.SessionItem{}
	payload.Data.QuestionRecords = []internalEntity.QuestionRecord{}
	payload.Data.StatsDaily = []internalEntity.DailyStat{}
	payload.Data.Settings = []internalEntity.AppSetting{}

	steps := []struct {
		name string
		dest interface{}
	}{
		{"question_types", &payload.Data.QuestionTypes},
		{"templates", &payload.Data.Templates},
		{"template_items", &payload.Data.TemplateItems},
		{"sessions", &payload.Data.Sessions},
		{"session_items", &payload.Data.SessionItems},
		{"question_records", &payload.Data.QuestionRecords},
		{"stats_daily", &payload.Data.StatsDaily},
		{"settings", &payload.Data.Settings},
	}
	for _, step := range steps {
		if err := db.Table(step.name).Find(step.dest).Error; err != nil {
			return nil, fmt.Errorf("export %s: %w", step.name, err)
		}
	}
	return payload, nil
}

// Import validates the payload structurally before touching the database,
// then replaces every collection inside one transaction. A failed import
// leaves the store untouched.
func (u *backupUsecase) Import(ctx context.Context, raw []byte) error {
	payload, err := parseBackup(raw)
	if err != nil {
		return err
	}

	return u.cfg.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model interface{}
			rows  interface{}
			count int
		}{
			{&internalEntity.QuestionRecord{}, payload.Data.QuestionRecords, len(payload.Data.QuestionRecords)},
			{&internalEntity.SessionItem{}, payload.Data.SessionItems, len(payload.Data.SessionItems)},
			{&internalEntity.Session{}, payload.Data.Sessions, len(payload.Data.Sessions)},
			{&internalEntity.TemplateItem{}, payload.Data.TemplateItems, len(payload.Data.TemplateItems)},
			{&internalEntity.Template{}, payload.Data.Templates, len(payload.Data.Templates)},
			{&internalEntity.QuestionType{}, payload.Data.QuestionTypes, len(payload.Data.QuestionTypes)},
			{&internalEntity.DailyStat{}, payload.Data.StatsDaily, len(payload.Data.StatsDaily)},
			{&internalEntity.AppSetting{}, payload.Data.Settings, len(payload.Data.Settings)},
		}
		// Children are cleared before parents; inserts run in reverse so
		// parents land first.
		for _, step := range steps {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(step.model).Error; err != nil {
				return err
			}
		}
		for i := len(steps) - 1; i >= 0; i-- {
			if steps[i].count == 0 {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(steps[i].rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// parseBackup enforces the v1 envelope: version must be exactly 1 and all
// eight collections must be present as JSON arrays.
func parseBackup(raw []byte) (*httpEntity.BackupPayload, error) {
	var envelope struct {
		Version int                        `json:"version"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if envelope.Version != httpEntity.BackupVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidBackup, envelope.Version)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrInvalidBackup)
	}
	for _, name := range httpEntity.BackupCollections {
		col, ok := envelope.Data[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing collection %s", ErrInvalidBackup, name)
		}
		trimmed := bytes.TrimSpace(col)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return nil, fmt.Errorf("%w: collection %s is not an array", ErrInvalidBackup, name)
		}
	}

	var payload httpEntity.BackupPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return &payload, nil
}
