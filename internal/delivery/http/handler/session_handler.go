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
	SessionHandler interface {
		List(ctx *fiber.Ctx) error
		Detail(ctx *fiber.Ctx) error
		SaveStatuses(ctx *fiber.Ctx) error
		Patch(ctx *fiber.Ctx) error
		Delete(ctx *fiber.Ctx) error
	}

	sessionHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.ReviewUsecase
	}
)

func NewSessionHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.ReviewUsecase) SessionHandler {
	return &sessionHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

func sessionError(err error, notFoundMsg string) (string, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundMsg, fiber.NewError(fiber.StatusNotFound, domain.SESSION_NOT_FOUND)
	}
	return notFoundMsg, err
}

// GET /sessions
func (h *sessionHandler) List(ctx *fiber.Ctx) error {
	records, err := h.usecase.ListRecords(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.SESSION_LIST_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.SESSION_LIST_SUCCESS, records, nil).Send(ctx)
}

// GET /sessions/:session_id
func (h *sessionHandler) Detail(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	detail, err := h.usecase.RecordDetail(ctx.UserContext(), sessionID)
	if err != nil {
		msg, mapped := sessionError(err, domain.SESSION_DETAIL_FAILED)
		return response.NewFailed(msg, mapped, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.SESSION_DETAIL_SUCCESS, detail, nil).Send(ctx)
}

// PATCH /sessions/:session_id/records
func (h *sessionHandler) SaveStatuses(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	var req entity.SaveRecordStatusesRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SESSION_UPDATE_FAILED, err, h.logger).Send(ctx)
	}
	statuses := make(map[int]entity.QuestionStatus, len(req.Statuses))
	for _, input := range req.Statuses {
		statuses[input.Number] = entity.QuestionStatus(input.Status)
	}
	if err := h.usecase.SaveRecordStatuses(ctx.UserContext(), sessionID, statuses); err != nil {
		msg, mapped := sessionError(err, domain.SESSION_UPDATE_FAILED)
		return response.NewFailed(msg, mapped, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.SESSION_UPDATE_SUCCESS, nil, nil).Send(ctx)
}

// PATCH /sessions/:session_id
func (h *sessionHandler) Patch(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	var req entity.PatchSessionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SESSION_UPDATE_FAILED, err, h.logger).Send(ctx)
	}
	if err := h.usecase.PatchSession(ctx.UserContext(), sessionID, req.Name, req.Status); err != nil {
		msg, mapped := sessionError(err, domain.SESSION_UPDATE_FAILED)
		return response.NewFailed(msg, mapped, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.SESSION_UPDATE_SUCCESS, nil, nil).Send(ctx)
}

// DELETE /sessions/:session_id
func (h *sessionHandler) Delete(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if err := h.usecase.DeleteRecord(ctx.UserContext(), sessionID); err != nil {
		msg, mapped := sessionError(err, domain.SESSION_DELETE_FAILED)
		return response.NewFailed(msg, mapped, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.SESSION_DELETE_SUCCESS, nil, nil).Send(ctx)
}
