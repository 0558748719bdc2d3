package handler

import (
	"errors"

	"github.com/evandrarf/exampace-be/internal/delivery/http/domain"
	"github.com/evandrarf/exampace-be/internal/delivery/http/entity"
	"github.com/evandrarf/exampace-be/internal/delivery/http/usecase"
	"github.com/evandrarf/exampace-be/internal/pkg/response"
	"github.com/evandrarf/exampace-be/internal/pkg/sessionstate"
	"github.com/evandrarf/exampace-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type (
	PracticeHandler interface {
		State(ctx *fiber.Ctx) error
		SetMode(ctx *fiber.Ctx) error
		SetTemplate(ctx *fiber.Ctx) error
		SetOrder(ctx *fiber.Ctx) error
		Start(ctx *fiber.Ctx) error
		Pause(ctx *fiber.Ctx) error
		Resume(ctx *fiber.Ctx) error
		End(ctx *fiber.Ctx) error
		Reset(ctx *fiber.Ctx) error
		NextQuestion(ctx *fiber.Ctx) error
		PrevQuestion(ctx *fiber.Ctx) error
		SkipQuestion(ctx *fiber.Ctx) error
		SelectQuestion(ctx *fiber.Ctx) error
		JumpSection(ctx *fiber.Ctx) error
		SavePractice(ctx *fiber.Ctx) error
		SaveReview(ctx *fiber.Ctx) error
		EnsureSaved(ctx *fiber.Ctx) error
	}

	practiceHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		engine    usecase.PracticeEngine
	}
)

func NewPracticeHandler(validator *validate.Validator, logger *logrus.Logger, engine usecase.PracticeEngine) PracticeHandler {
	return &practiceHandler{
		validator: validator,
		logger:    logger,
		engine:    engine,
	}
}

// engineError maps domain errors onto HTTP status codes so the response
// envelope carries the right code instead of a blanket 500.
func engineError(err error) error {
	switch {
	case errors.Is(err, sessionstate.ErrSessionRunning):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, sessionstate.ErrSessionEnded):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrNothingToSave):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return err
}

// GET /practice/state
func (h *practiceHandler) State(ctx *fiber.Ctx) error {
	state, err := h.engine.State(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.PRACTICE_STATE_FAILED, engineError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.PRACTICE_STATE_SUCCESS, state, nil).Send(ctx)
}

// POST /practice/mode
func (h *practiceHandler) SetMode(ctx *fiber.Ctx) error {
	var req entity.SetModeRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.PRACTICE_CONFIGURE_FAILED, err, h.logger).Send(ctx)
	}
	if err := h.engine.SetMode(ctx.UserContext(), req.Mode); err != nil {
		return response.NewFailed(domain.PRACTICE_CONFIGURE_FAILED, engineError(err), h.logger).Send(ctx)
	}
	return h.State(ctx)
}

// POST /practice/template
func (h *practiceHandler) SetTemplate(ctx *fiber.Ctx) error {
	var req entity.SetTemplateRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.PRACTICE_CONFIGURE_FAILED, err, h.logger).Send(ctx)
	}
	if err := h.engine.SetTemplate(ctx.UserContext(), req.TemplateID); err != nil {
		return response.NewFailed(domain.PRACTICE_CONFIGURE_FAILED, engineError(err), h.logger).Send(ctx)
	}
	return h.State(ctx)
}

// POST /practice/order
func (h *practiceHandler) SetOrder(ctx *fiber.Ctx) error {
	var req entity.SetOrderRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.PRACTICE_CONFIGURE_FAILED, err, h.logger).Send(ctx)
	}
	if err := h.engine.SetOrder(ctx.UserContext(), req.Order); err != nil {
		return response.NewFailed(domain.PRACTICE_CONFIGURE_FAILED, engineError(err), h.logger).Send(ctx)
	}
	return h.State(ctx)
}

func (h *practiceHandler) control(ctx *fiber.Ctx, op func() error) error {
	if err := op(); err != nil {
		return response.NewFailed(domain.PRACTICE_CONTROL_FAILED, engineError(err), h.logger).Send(ctx)
	}
	return h.State(ctx)
}

// POST /practice/start
func (h *practiceHandler) Start(ctx *fiber.Ctx) error {
	return h.control(ctx, func() error { return h.engine.Start(ctx.UserContext()) })
}

// POST /practice/pause
func (h *practiceHandler) Pause(ctx *fiber.Ctx) error {
	return h.control(ctx, func() error { return h.engine.Pause(ctx.UserContext()) })
}

// POST /practice/resume
func (h *practiceHandler) Resume(ctx *fiber.Ctx) error {
	return h.control(ctx, func() error { return h.engine.Resume(ctx.UserContext()) })
}

// POST /practice/end
func (h *practiceHandler) End(ctx *fiber.Ctx) error {
	return h.control(ctx, func() error { return h.engine.End(ctx.UserContext()) })
}

// POST /practice/reset
func (h *practiceHandler) Reset(ctx *fiber.Ctx) error {
	return h.control(ctx, func() error { return h.engine.Reset(ctx.UserContext()) })
}

func (h *practiceHandler) navigate(ctx *fiber.Ctx, op func() error) error {
	if err := op(); err != nil {
		return response.NewFailed(domain.PRACTICE_NAVIGATE_FAILED, engineError(err), h.logger).Send(ctx)
	}
	return h.State(ctx)
}

// POST /practice/questions/next
func (h *practiceHandler) NextQuestion(ctx *fiber.Ctx) error {
	return h.navigate(ctx, func() error { return h.engine.NextQuestion(ctx.UserContext()) })
}

// POST /practice/questions/prev
func (h *practiceHandler) PrevQuestion(ctx *fiber.Ctx) error {
	return h.navigate(ctx, func() error { return h.engine.PrevQuestion(ctx.UserContext()) })
}

// POST /practice/questions/skip
func (h *practiceHandler) SkipQuestion(ctx *fiber.Ctx) error {
	return h.navigate(ctx, func() error { return h.engine.SkipQuestion(ctx.UserContext()) })
}

// POST /practice/questions/select
func (h *practiceHandler) SelectQuestion(ctx *fiber.Ctx) error {
	var req entity.SelectQuestionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.PRACTICE_NAVIGATE_FAILED, err, h.logger).Send(ctx)
	}
	return h.navigate(ctx, func() error { return h.engine.SelectQuestion(ctx.UserContext(), req.Number) })
}

// POST /practice/sections/jump
func (h *practiceHandler) JumpSection(ctx *fiber.Ctx) error {
	var req entity.JumpSectionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.PRACTICE_NAVIGATE_FAILED, err, h.logger).Send(ctx)
	}
	return h.navigate(ctx, func() error { return h.engine.JumpSection(ctx.UserContext(), req.Index) })
}

// POST /practice/save
func (h *practiceHandler) SavePractice(ctx *fiber.Ctx) error {
	var req entity.SavePracticeRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.PRACTICE_SAVE_FAILED, err, h.logger).Send(ctx)
	}
	sessionID, err := h.engine.SavePractice(ctx.UserContext(), req.Name)
	if err != nil {
		return response.NewFailed(domain.PRACTICE_SAVE_FAILED, engineError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.PRACTICE_SAVE_SUCCESS, fiber.Map{"session_id": sessionID}, nil).Send(ctx)
}

// POST /review/save
func (h *practiceHandler) SaveReview(ctx *fiber.Ctx) error {
	var req entity.SaveReviewRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.REVIEW_SAVE_FAILED, err, h.logger).Send(ctx)
	}
	statuses := make(map[int]entity.QuestionStatus, len(req.Statuses))
	for _, input := range req.Statuses {
		statuses[input.Number] = entity.QuestionStatus(input.Status)
	}
	sessionID, err := h.engine.SaveReview(ctx.UserContext(), req.SessionID, statuses)
	if err != nil {
		return response.NewFailed(domain.REVIEW_SAVE_FAILED, engineError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.REVIEW_SAVE_SUCCESS, fiber.Map{"session_id": sessionID}, nil).Send(ctx)
}

// POST /practice/ensure-saved
func (h *practiceHandler) EnsureSaved(ctx *fiber.Ctx) error {
	sessionID, err := h.engine.EnsureSaved(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.REVIEW_SAVE_FAILED, engineError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.REVIEW_SAVE_SUCCESS, fiber.Map{"session_id": sessionID}, nil).Send(ctx)
}
