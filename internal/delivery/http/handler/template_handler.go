package handler

import (
	"errors"

	"github.com/evandrarf/exampace-be/internal/delivery/http/domain"
	"github.com/evandrarf/exampace-be/internal/delivery/http/entity"
	"github.com/evandrarf/exampace-be/internal/delivery/http/usecase"
	"github.com/evandrarf/exampace-be/internal/pkg/response"
	"github.com/evandrarf/exampace-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type (
	TemplateHandler interface {
		ListQuestionTypes(ctx *fiber.Ctx) error
		CreateQuestionType(ctx *fiber.Ctx) error
		UpdateQuestionType(ctx *fiber.Ctx) error
		DeleteQuestionType(ctx *fiber.Ctx) error

		ListTemplates(ctx *fiber.Ctx) error
		GetTemplate(ctx *fiber.Ctx) error
		CreateTemplate(ctx *fiber.Ctx) error
		UpdateTemplate(ctx *fiber.Ctx) error
		DeleteTemplate(ctx *fiber.Ctx) error
	}

	templateHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.TemplateUsecase
	}
)

func NewTemplateHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.TemplateUsecase) TemplateHandler {
	return &templateHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

func templateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, domain.TEMPLATE_NOT_FOUND)
	case errors.Is(err, usecase.ErrQuestionTypeInUse):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrLastTemplate):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return err
}

// GET /question-types
func (h *templateHandler) ListQuestionTypes(ctx *fiber.Ctx) error {
	types, err := h.usecase.ListQuestionTypes(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.QUESTION_TYPE_LIST_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.QUESTION_TYPE_LIST_SUCCESS, types, nil).Send(ctx)
}

// POST /question-types
func (h *templateHandler) CreateQuestionType(ctx *fiber.Ctx) error {
	var req entity.QuestionTypeRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.QUESTION_TYPE_SAVE_FAILED, err, h.logger).Send(ctx)
	}
	questionType, err := h.usecase.CreateQuestionType(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.QUESTION_TYPE_SAVE_FAILED, templateError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.QUESTION_TYPE_SAVE_SUCCESS, questionType, nil).Send(ctx)
}

// PUT /question-types/:id
func (h *templateHandler) UpdateQuestionType(ctx *fiber.Ctx) error {
	var req entity.QuestionTypeRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.QUESTION_TYPE_SAVE_FAILED, err, h.logger).Send(ctx)
	}
	questionType, err := h.usecase.UpdateQuestionType(ctx.UserContext(), ctx.Params("id"), req)
	if err != nil {
		return response.NewFailed(domain.QUESTION_TYPE_SAVE_FAILED, templateError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.QUESTION_TYPE_SAVE_SUCCESS, questionType, nil).Send(ctx)
}

// DELETE /question-types/:id
func (h *templateHandler) DeleteQuestionType(ctx *fiber.Ctx) error {
	if err := h.usecase.DeleteQuestionType(ctx.UserContext(), ctx.Params("id")); err != nil {
		return response.NewFailed(domain.QUESTION_TYPE_DELETE_FAILED, templateError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.QUESTION_TYPE_DELETE_SUCCESS, nil, nil).Send(ctx)
}

// GET /templates
func (h *templateHandler) ListTemplates(ctx *fiber.Ctx) error {
	templates, err := h.usecase.ListTemplates(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.TEMPLATE_LIST_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.TEMPLATE_LIST_SUCCESS, templates, nil).Send(ctx)
}

// GET /templates/:id
func (h *templateHandler) GetTemplate(ctx *fiber.Ctx) error {
	template, err := h.usecase.GetTemplate(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return response.NewFailed(domain.TEMPLATE_DETAIL_FAILED, templateError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.TEMPLATE_DETAIL_SUCCESS, template, nil).Send(ctx)
}

// POST /templates
func (h *templateHandler) CreateTemplate(ctx *fiber.Ctx) error {
	var req entity.TemplateRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TEMPLATE_SAVE_FAILED, err, h.logger).Send(ctx)
	}
	template, err := h.usecase.CreateTemplate(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.TEMPLATE_SAVE_FAILED, templateError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.TEMPLATE_SAVE_SUCCESS, template, nil).Send(ctx)
}

// PUT /templates/:id
func (h *templateHandler) UpdateTemplate(ctx *fiber.Ctx) error {
	var req entity.TemplateRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TEMPLATE_SAVE_FAILED, err, h.logger).Send(ctx)
	}
	template, err := h.usecase.UpdateTemplate(ctx.UserContext(), ctx.Params("id"), req)
	if err != nil {
		return response.NewFailed(domain.TEMPLATE_SAVE_FAILED, templateError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.TEMPLATE_SAVE_SUCCESS, template, nil).Send(ctx)
}

// DELETE /templates/:id
func (h *templateHandler) DeleteTemplate(ctx *fiber.Ctx) error {
	if err := h.usecase.DeleteTemplate(ctx.UserContext(), ctx.Params("id")); err != nil {
		return response.NewFailed(domain.TEMPLATE_DELETE_FAILED, templateError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.TEMPLATE_DELETE_SUCCESS, nil, nil).Send(ctx)
}
