package repository

import (
	"github.com/evandrarf/exampace-be/internal/entity"
	"gorm.io/gorm"
)

type (
	TemplateRepository interface {
		// Question type operations
		ListQuestionTypes(db *gorm.DB) ([]entity.QuestionType, error)
		FindQuestionTypeByID(db *gorm.DB, id string) (*entity.QuestionType, error)
		SaveQuestionType(db *gorm.DB, questionType *entity.QuestionType) error
		DeleteQuestionType(db *gorm.DB, id string) error
		CountItemsByQuestionTypeID(db *gorm.DB, questionTypeID string) (int64, error)

		// Template operations
		ListTemplates(db *gorm.DB) ([]entity.Template, error)
		FindTemplateByID(db *gorm.DB, id string) (*entity.Template, error)
		FindDefaultTemplate(db *gorm.DB) (*entity.Template, error)
		CountTemplates(db *gorm.DB) (int64, error)
		FindItemsByTemplateID(db *gorm.DB, templateID string) ([]entity.TemplateItem, error)
		CreateTemplate(db *gorm.DB, template *entity.Template, items []entity.TemplateItem) error
		UpdateTemplate(db *gorm.DB, template *entity.Template, items []entity.TemplateItem) error
		DeleteTemplate(db *gorm.DB, id string) error
	}

	templateRepository struct {
		db *gorm.DB
	}
)

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// Question type operations
func (r *templateRepository) ListQuestionTypes(db *gorm.DB) ([]entity.QuestionType, error) {
	if db == nil {
		db = r.db
	}
	var types []entity.QuestionType
	err := db.Order("created_at ASC").Find(&types).Error
	return types, err
}

func (r *templateRepository) FindQuestionTypeByID(db *gorm.DB, id string) (*entity.QuestionType, error) {
	if db == nil {
		db = r.db
	}
	var questionType entity.QuestionType
	err := db.Where("id = ?", id).First(&questionType).Error
	if err != nil {
		return nil, err
	}
	return &questionType, nil
}

func (r *templateRepository) SaveQuestionType(db *gorm.DB, questionType *entity.QuestionType) error {
	if db == nil {
		db = r.db
	}
	return db.Save(questionType).Error
}

func (r *templateRepository) DeleteQuestionType(db *gorm.DB, id string) error {
	if db == nil {
		db = r.db
	}
	return db.Where("id = ?", id).Delete(&entity.QuestionType{}).Error
}

func (r *templateRepository) CountItemsByQuestionTypeID(db *gorm.DB, questionTypeID string) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.TemplateItem{}).Where("question_type_id = ?", questionTypeID).Count(&count).Error
	return count, err
}

// Template operations
func (r *templateRepository) ListTemplates(db *gorm.DB) ([]entity.Template, error) {
	if db == nil {
		db = r.db
	}
	var templates []entity.Template
	err := db.Order("created_at ASC").Find(&templates).Error
	return templates, err
}

func (r *templateRepository) FindTemplateByID(db *gorm.DB, id string) (*entity.Template, error) {
	if db == nil {
		db = r.db
	}
	var template entity.Template
	err := db.Where("id = ?", id).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindDefaultTemplate(db *gorm.DB) (*entity.Template, error) {
	if db == nil {
		db = r.db
	}
	var template entity.Template
	err := db.Where("is_default = ?", true).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) CountTemplates(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.Template{}).Count(&count).Error
	return count, err
}

func (r *templateRepository) FindItemsByTemplateID(db *gorm.DB, templateID string) ([]entity.TemplateItem, error) {
	if db == nil {
		db = r.db
	}
	var items []entity.TemplateItem
	err := db.Where("template_id = ?", templateID).Order("order_index ASC").Find(&items).Error
	return items, err
}

func (r *templateRepository) CreateTemplate(db *gorm.DB, template *entity.Template, items []entity.TemplateItem) error {
	if db == nil {
		db = r.db
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(template).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// UpdateTemplate replaces the template row and its items. Items are deleted
// then reinserted inside one transaction so no orphaned rows survive.
func (r *templateRepository) UpdateTemplate(db *gorm.DB, template *entity.Template, items []entity.TemplateItem) error {
	if db == nil {
		db = r.db
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(template).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", template.ID).Delete(&entity.TemplateItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *templateRepository) DeleteTemplate(db *gorm.DB, id string) error {
	if db == nil {
		db = r.db
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&entity.TemplateItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Template{}).Error
	})
}
