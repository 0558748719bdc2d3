package database

import (
	"github.com/evandrarf/exampace-be/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Question types of the civil-service written exam, seeded once so a fresh
// install has a working template out of the box.
var defaultQuestionTypes = []entity.QuestionType{
	{ID: "type-lang", Name: "Language Comprehension", ShortName: "Lang", Color: "#2F6FED"},
	{ID: "type-logic", Name: "Logical Reasoning", ShortName: "Logic", Color: "#7C3AED"},
	{ID: "type-math", Name: "Quantitative Aptitude", ShortName: "Math", Color: "#059669"},
	{ID: "type-data", Name: "Data Analysis", ShortName: "Data", Color: "#D97706"},
	{ID: "type-common", Name: "General Knowledge", ShortName: "Common", Color: "#DC2626"},
}

var defaultTemplate = entity.Template{
	ID:               "civil-service-default",
	Name:             "Civil Service Exam",
	Description:      "Standard 135-question layout with per-section time plans",
	IsDefault:        true,
	TotalQuestions:   135,
	TotalPlannedTime: 125,
}

var defaultTemplateItems = []entity.TemplateItem{
	{ID: "tpl-lang", TemplateID: defaultTemplate.ID, QuestionTypeID: "type-lang", QuestionCount: 40, PlannedTime: 30, OrderIndex: 0},
	{ID: "tpl-logic", TemplateID: defaultTemplate.ID, QuestionTypeID: "type-logic", QuestionCount: 40, PlannedTime: 35, OrderIndex: 1},
	{ID: "tpl-math", TemplateID: defaultTemplate.ID, QuestionTypeID: "type-math", QuestionCount: 15, PlannedTime: 20, OrderIndex: 2},
	{ID: "tpl-data", TemplateID: defaultTemplate.ID, QuestionTypeID: "type-data", QuestionCount: 20, PlannedTime: 30, OrderIndex: 3},
	{ID: "tpl-common", TemplateID: defaultTemplate.ID, QuestionTypeID: "type-common", QuestionCount: 20, PlannedTime: 10, OrderIndex: 4},
}

// SeedDefaults inserts the built-in question types and default template.
// Existing rows are left untouched so user edits survive restarts.
func SeedDefaults(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		questionTypes := append([]entity.QuestionType{}, defaultQuestionTypes...)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&questionTypes).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&entity.Template{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		template := defaultTemplate
		if err := tx.Create(&template).Error; err != nil {
			return err
		}
		items := append([]entity.TemplateItem{}, defaultTemplateItems...)
		return tx.Create(&items).Error
	})
}
