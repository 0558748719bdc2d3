package handler

import (
	"github.com/evandrarf/exampace-be/internal/delivery/http/domain"
	"github.com/evandrarf/exampace-be/internal/delivery/http/usecase"
	"github.com/evandrarf/exampace-be/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	StatsHandler interface {
		Daily(ctx *fiber.Ctx) error
		Dashboard(ctx *fiber.Ctx) error
	}

	statsHandler struct {
		logger  *logrus.Logger
		usecase usecase.ReviewUsecase
	}
)

func NewStatsHandler(logger *logrus.Logger, usecase usecase.ReviewUsecase) StatsHandler {
	return &statsHandler{
		logger:  logger,
		usecase: usecase,
	}
}

// GET /stats/daily
func (h *statsHandler) Daily(ctx *fiber.Ctx) error {
	stats, err := h.usecase.ListDailyStats(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.STATS_DAILY_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STATS_DAILY_SUCCESS, stats, nil).Send(ctx)
}

// GET /stats/dashboard
func (h *statsHandler) Dashboard(ctx *fiber.Ctx) error {
	dashboard, err := h.usecase.Dashboard(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.STATS_DASHBOARD_FAILED, err, h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STATS_DASHBOARD_SUCCESS, dashboard, nil).Send(ctx)
}
