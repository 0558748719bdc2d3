package usecase

import (
	"context"

	httpEntity "github.com/evandrarf/exampace-be/internal/delivery/http/entity"
	"github.com/evandrarf/exampace-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/exampace-be/internal/entity"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TemplateUsecase interface {
	ListQuestionTypes(ctx context.Context) ([]internalEntity.QuestionType, error)
	CreateQuestionType(ctx context.Context, req httpEntity.QuestionTypeRequest) (*internalEntity.QuestionType, error)
	UpdateQuestionType(ctx context.Context, id string, req httpEntity.QuestionTypeRequest) (*internalEntity.QuestionType, error)
	DeleteQuestionType(ctx context.Context, id string) error

	ListTemplates(ctx context.Context) ([]TemplateWithItems, error)
	GetTemplate(ctx context.Context, id string) (*TemplateWithItems, error)
	CreateTemplate(ctx context.Context, req httpEntity.TemplateRequest) (*TemplateWithItems, error)
	UpdateTemplate(ctx context.Context, id string, req httpEntity.TemplateRequest) (*TemplateWithItems, error)
	DeleteTemplate(ctx context.Context, id string) error
}

type TemplateWithItems struct {
	internalEntity.Template
	Items []internalEntity.TemplateItem `json:"items"`
}

type TemplateUsecaseConfig struct {
	DB         *gorm.DB
	Log        *logrus.Logger
	Repository repository.TemplateRepository
}

type templateUsecase struct {
	cfg TemplateUsecaseConfig
}

func NewTemplateUsecase(cfg TemplateUsecaseConfig) TemplateUsecase {
	return &templateUsecase{cfg: cfg}
}

func (u *templateUsecase) ListQuestionTypes(ctx context.Context) ([]internalEntity.QuestionType, error) {
	return u.cfg.Repository.ListQuestionTypes(u.cfg.DB.WithContext(ctx))
}

func (u *templateUsecase) CreateQuestionType(ctx context.Context, req httpEntity.QuestionTypeRequest) (*internalEntity.QuestionType, error) {
	questionType := &internalEntity.QuestionType{
		ID:        uuid.NewString(),
		Name:      req.Name,
		ShortName: req.ShortName,
		Color:     req.Color,
	}
	if err := u.cfg.Repository.SaveQuestionType(u.cfg.DB.WithContext(ctx), questionType); err != nil {
		return nil, err
	}
	return questionType, nil
}

func (u *templateUsecase) UpdateQuestionType(ctx context.Context, id string, req httpEntity.QuestionTypeRequest) (*internalEntity.QuestionType, error) {
	db := u.cfg.DB.WithContext(ctx)
	questionType, err := u.cfg.Repository.FindQuestionTypeByID(db, id)
	if err != nil {
		return nil, err
	}
	questionType.Name = req.Name
	questionType.ShortName = req.ShortName
	questionType.Color = req.Color
	if err := u.cfg.Repository.SaveQuestionType(db, questionType); err != nil {
		return nil, err
	}
	return questionType, nil
}

// DeleteQuestionType refuses to remove a type while any template item still
// references it.
func (u *templateUsecase) DeleteQuestionType(ctx context.Context, id string) error {
	db := u.cfg.DB.WithContext(ctx)
	if _, err := u.cfg.Repository.FindQuestionTypeByID(db, id); err != nil {
		return err
	}
	count, err := u.cfg.Repository.CountItemsByQuestionTypeID(db, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrQuestionTypeInUse
	}
	return u.cfg.Repository.DeleteQuestionType(db, id)
}

func (u *templateUsecase) ListTemplates(ctx context.Context) ([]TemplateWithItems, error) {
	db := u.cfg.DB.WithContext(ctx)
	templates, err := u.cfg.Repository.ListTemplates(db)
	if err != nil {
		return nil, err
	}
	result := make([]TemplateWithItems, 0, len(templates))
	for _, tpl := range templates {
		items, err := u.cfg.Repository.FindItemsByTemplateID(db, tpl.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, TemplateWithItems{Template: tpl, Items: items})
	}
	return result, nil
}

func (u *templateUsecase) GetTemplate(ctx context.Context, id string) (*TemplateWithItems, error) {
	db := u.cfg.DB.WithContext(ctx)
	tpl, err := u.cfg.Repository.FindTemplateByID(db, id)
	if err != nil {
		return nil, err
	}
	items, err := u.cfg.Repository.FindItemsByTemplateID(db, id)
	if err != nil {
		return nil, err
	}
	return &TemplateWithItems{Template: *tpl, Items: items}, nil
}

func (u *templateUsecase) CreateTemplate(ctx context.Context, req httpEntity.TemplateRequest) (*TemplateWithItems, error) {
	db := u.cfg.DB.WithContext(ctx)
	templateID := uuid.NewString()
	tpl, items, err := u.materialize(db, templateID, req)
	if err != nil {
		return nil, err
	}
	if err := u.cfg.Repository.CreateTemplate(db, tpl, items); err != nil {
		return nil, err
	}
	return &TemplateWithItems{Template: *tpl, Items: items}, nil
}

func (u *templateUsecase) UpdateTemplate(ctx context.Context, id string, req httpEntity.TemplateRequest) (*TemplateWithItems, error) {
	db := u.cfg.DB.WithContext(ctx)
	existing, err := u.cfg.Repository.FindTemplateByID(db, id)
	if err != nil {
		return nil, err
	}
	tpl, items, err := u.materialize(db, existing.ID, req)
	if err != nil {
		return nil, err
	}
	tpl.CreatedAt = existing.CreatedAt
	if err := u.cfg.Repository.UpdateTemplate(db, tpl, items); err != nil {
		return nil, err
	}
	return &TemplateWithItems{Template: *tpl, Items: items}, nil
}

// materialize turns a template request into a row set: item ids are kept
// when supplied, order indexes are renumbered to a clean [0..n) permutation
// and the derived totals are recomputed.
func (u *templateUsecase) materialize(db *gorm.DB, templateID string, req httpEntity.TemplateRequest) (*internalEntity.Template, []internalEntity.TemplateItem, error) {
	items := make([]internalEntity.TemplateItem, 0, len(req.Items))
	totalQuestions := 0
	totalPlanned := 0
	for i, input := range req.Items {
		if _, err := u.cfg.Repository.FindQuestionTypeByID(db, input.QuestionTypeID); err != nil {
			return nil, nil, err
		}
		itemID := input.ID
		if itemID == "" {
			itemID = uuid.NewString()
		}
		items = append(items, internalEntity.TemplateItem{
			ID:             itemID,
			TemplateID:     templateID,
			QuestionTypeID: input.QuestionTypeID,
			QuestionCount:  input.QuestionCount,
			PlannedTime:    input.PlannedTime,
			OrderIndex:     i,
		})
		totalQuestions += input.QuestionCount
		totalPlanned += input.PlannedTime
	}
	tpl := &internalEntity.Template{
		ID:               templateID,
		Name:             req.Name,
		Description:      req.Description,
		IsDefault:        req.IsDefault,
		TotalQuestions:   totalQuestions,
		TotalPlannedTime: totalPlanned,
	}
	return tpl, items, nil
}

// DeleteTemplate removes a template and its items. The last remaining
// template cannot be deleted so the practice screen always has something
// to fall back to.
func (u *templateUsecase) DeleteTemplate(ctx context.Context, id string) error {
	db := u.cfg.DB.WithContext(ctx)
	if _, err := u.cfg.Repository.FindTemplateByID(db, id); err != nil {
		return err
	}
	count, err := u.cfg.Repository.CountTemplates(db)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastTemplate
	}
	return u.cfg.Repository.DeleteTemplate(db, id)
}
