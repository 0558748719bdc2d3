package entity

import (
	internalEntity "github.com/evandrarf/exampace-be/internal/entity"
)

const BackupVersion = 1

// BackupCollections lists every collection a v1 payload must declare,
// in export order.
var BackupCollections = []string{
	"question_types",
	"templates",
	"template_items",
	"sessions",
	"session_items",
	"question_records",
	"stats_daily",
	"settings",
}

type BackupData struct {
	QuestionTypes   []internalEntity.QuestionType   `json:"question_types"`
	Templates       []internalEntity.Template       `json:"templates"`
	TemplateItems   []internalEntity.TemplateItem   `json:"template_items"`
	Sessions        []internalEntity.Session        `json:"sessions"`
	SessionItems    []internalEntity.SessionItem    `json:"session_items"`
	QuestionRecords []internalEntity.QuestionRecord `json:"question_records"`
	StatsDaily      []internalEntity.DailyStat      `json:"stats_daily"`
	Settings        []internalEntity.AppSetting     `json:"settings"`
}

// BackupPayload is the full-store export format. Import rejects anything
// that is not version 1 or misses one of the eight collection arrays.
type BackupPayload struct {
	Version    int        `json:"version"`
	ExportedAt string     `json:"exportedAt"`
	Data       BackupData `json:"data"`
}
