package handler

import (
	"errors"

	"github.com/evandrarf/exampace-be/internal/delivery/http/domain"
	"github.com/evandrarf/exampace-be/internal/delivery/http/usecase"
	"github.com/evandrarf/exampace-be/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	BackupHandler interface {
		Export(ctx *fiber.Ctx) error
		Import(ctx *fiber.Ctx) error
	}

	backupHandler struct {
		logger  *logrus.Logger
		usecase usecase.BackupUsecase
	}
)

func NewBackupHandler(logger *logrus.Logger, usecase usecase.BackupUsecase) BackupHandler {
	return &backupHandler{
		logger:  logger,
		usecase: usecase,
	}
}

// GET /backup/export
func (h *backupHandler) Export(ctx *fiber.Ctx) error {
	payload, err := h.usecase.Export(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.BACKUP_EXPORT_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.BACKUP_EXPORT_SUCCESS, payload, nil).Send(ctx)
}

// POST /backup/import
func (h *backupHandler) Import(ctx *fiber.Ctx) error {
	if err := h.usecase.Import(ctx.UserContext(), ctx.Body()); err != nil {
		if errors.Is(err, usecase.ErrInvalidBackup) {
			return response.NewFailed(domain.BACKUP_IMPORT_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
		}
		return response.NewFailed(domain.BACKUP_IMPORT_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.BACKUP_IMPORT_SUCCESS, nil, nil).Send(ctx)
}
