package handler

import (
	"github.com/evandrarf/exampace-be/internal/delivery/http/domain"
	"github.com/evandrarf/exampace-be/internal/delivery/http/entity"
	"github.com/evandrarf/exampace-be/internal/delivery/http/usecase"
	"github.com/evandrarf/exampace-be/internal/pkg/response"
	"github.com/evandrarf/exampace-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	SettingsHandler interface {
		Get(ctx *fiber.Ctx) error
		Save(ctx *fiber.Ctx) error
	}

	settingsHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.SettingsUsecase
	}
)

func NewSettingsHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.SettingsUsecase) SettingsHandler {
	return &settingsHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// GET /settings
func (h *settingsHandler) Get(ctx *fiber.Ctx) error {
	settings, err := h.usecase.Get(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.SETTINGS_GET_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.SETTINGS_GET_SUCCESS, settings, nil).Send(ctx)
}

// PUT /settings
func (h *settingsHandler) Save(ctx *fiber.Ctx) error {
	var req entity.SettingsRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SETTINGS_SAVE_FAILED, err, h.logger).Send(ctx)
	}
	settings, err := h.usecase.Save(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.SETTINGS_SAVE_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.SETTINGS_SAVE_SUCCESS, settings, nil).Send(ctx)
}
