package entity

import (
	"github.com/evandrarf/exampace-be/internal/pkg/sequence"
	"github.com/evandrarf/exampace-be/internal/pkg/sessionstate"
)

type QuestionStatus string

const (
	QuestionStatusUnanswered QuestionStatus = "unanswered"
	QuestionStatusCorrect    QuestionStatus = "correct"
	QuestionStatusWrong      QuestionStatus = "wrong"
	QuestionStatusSkip       QuestionStatus = "skip"
)

func (s QuestionStatus) Valid() bool {
	switch s {
	case QuestionStatusUnanswered, QuestionStatusCorrect, QuestionStatusWrong, QuestionStatusSkip:
		return true
	}
	return false
}

// Requests

type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=practice mock"`
}

type SetTemplateRequest struct {
	TemplateID string `json:"template_id" validate:"required"`
}

type SetOrderRequest struct {
	Order []string `json:"order" validate:"required,min=1,dive,required"`
}

type SelectQuestionRequest struct {
	Number int `json:"number" validate:"required,min=1"`
}

type JumpSectionRequest struct {
	Index int `json:"index" validate:"gte=0"`
}

type SavePracticeRequest struct {
	Name string `json:"name" validate:"required"`
}

type QuestionStatusInput struct {
	Number int    `json:"number" validate:"required,min=1"`
	Status string `json:"status" validate:"required,oneof=unanswered correct wrong skip"`
}

type SaveReviewRequest struct {
	SessionID string                `json:"session_id"`
	Statuses  []QuestionStatusInput `json:"statuses" validate:"dive"`
}

type SaveRecordStatusesRequest struct {
	Statuses []QuestionStatusInput `json:"statuses" validate:"required,dive"`
}

type PatchSessionRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status" validate:"omitempty,oneof=running ended"`
}

type QuestionTypeRequest struct {
	Name      string `json:"name" validate:"required"`
	ShortName string `json:"short_name"`
	Color     string `json:"color"`
}

type TemplateItemInput struct {
	ID             string `json:"id"`
	QuestionTypeID string `json:"question_type_id" validate:"required"`
	QuestionCount  int    `json:"question_count" validate:"gte=0"`
	PlannedTime    int    `json:"planned_time" validate:"gte=0"` // minutes
}

type TemplateRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	IsDefault   bool                `json:"is_default"`
	Items       []TemplateItemInput `json:"items" validate:"required,dive"`
}

type SettingsRequest struct {
	ThemeMode     string             `json:"theme_mode" validate:"required,oneof=light dark system"`
	ColorScheme   string             `json:"color_scheme" validate:"required,oneof=azure citrus slate rose"`
	ExamTotalTime int                `json:"exam_total_time" validate:"gte=0"`
	ExamTypeRatio map[string]float64 `json:"exam_type_ratio"`
}

// Views

type PracticeItemView struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	QuestionCount int    `json:"question_count"`
	PlannedTime   int    `json:"planned_time"` // minutes
}

type TimersView struct {
	TotalMs    int64  `json:"total_ms"`
	SectionMs  int64  `json:"section_ms"`
	QuestionMs int64  `json:"question_ms"`
	Total      string `json:"total"`
	Section    string `json:"section"`
	Question   string `json:"question"`
}

// PracticeStateView is the full derived view of the running engine, the
// server-side equivalent of what the practice screen renders.
type PracticeStateView struct {
	Mode            sessionstate.Mode   `json:"mode"`
	Status          sessionstate.Status `json:"status"`
	IsPaused        bool                `json:"is_paused"`
	IsRunning       bool                `json:"is_running"`
	CanPause        bool                `json:"can_pause"`
	IsLocked        bool                `json:"is_locked"`
	CanNavigate     bool                `json:"can_navigate"`
	HasItems        bool                `json:"has_items"`
	TemplateID      string              `json:"template_id,omitempty"`
	Order           []string            `json:"order"`
	OrderedItems    []PracticeItemView  `json:"ordered_items"`
	ActiveIndex     int                 `json:"active_index"`
	CurrentItem     *PracticeItemView   `json:"current_item,omitempty"`
	TotalQuestions  int                 `json:"total_questions"`
	CurrentQuestion int                 `json:"current_question"`
	QuestionGrid    []sequence.GridEntry `json:"question_grid"`
	Sequence        []int               `json:"sequence"`
	SkippedQuestions []int              `json:"skipped_questions"`
	SkippedTypeIDs  []string            `json:"skipped_type_ids"`
	CanGoPrev       bool                `json:"can_go_prev"`
	CanGoNext       bool                `json:"can_go_next"`
	Timers          TimersView          `json:"timers"`
	PlannedMs       int64               `json:"planned_ms"`
	ActualMs        int64               `json:"actual_ms"`
	ProgressValue   float64             `json:"progress_value"`
	IsOvertime      bool                `json:"is_overtime"`
	StartedAt       int64               `json:"started_at,omitempty"`
	PausedCount     int                 `json:"paused_count"`
	EndDialogShown  bool                `json:"end_dialog_shown"`
	ActiveSessionID string              `json:"active_session_id,omitempty"`
}

type StatusCounts struct {
	Correct    int `json:"correct"`
	Wrong      int `json:"wrong"`
	Skip       int `json:"skip"`
	Unanswered int `json:"unanswered"`
}

type RecordListItem struct {
	ID             string       `json:"id"`
	Name           string       `json:"name,omitempty"`
	Mode           string       `json:"mode"`
	TemplateName   string       `json:"template_name"`
	EndedAt        string       `json:"ended_at,omitempty"`
	TotalTimeMs    int64        `json:"total_time_ms"`
	TotalQuestions int          `json:"total_questions"`
	Counts         StatusCounts `json:"counts"`
	AccuracyRate   float64      `json:"accuracy_rate"`
	CompletionRate float64      `json:"completion_rate"`
}

type SessionItemView struct {
	ID             string `json:"id"`
	TemplateItemID string `json:"template_item_id"`
	ActualTimeMs   int64  `json:"actual_time_ms"`
	PlannedTimeMs  int64  `json:"planned_time_ms"`
	QuestionCount  int    `json:"question_count"`
	OvertimeCount  int    `json:"overtime_count"`
	OrderIndex     int    `json:"order_index"`
}

type QuestionRecordView struct {
	ID            string `json:"id"`
	SessionItemID string `json:"session_item_id"`
	QuestionIndex int    `json:"question_index"`
	ActualTimeMs  int64  `json:"actual_time_ms"`
	PlannedTimeMs int64  `json:"planned_time_ms"`
	Status        string `json:"status"`
}

// RecordDetailView rebuilds the grid from the current template definition
// and overlays persisted statuses onto an all-unanswered base.
type RecordDetailView struct {
	ID             string               `json:"id"`
	Name           string               `json:"name,omitempty"`
	Mode           string               `json:"mode"`
	TemplateID     string               `json:"template_id"`
	TemplateName   string               `json:"template_name"`
	Status         string               `json:"status"`
	StartedAt      string               `json:"started_at"`
	EndedAt        string               `json:"ended_at,omitempty"`
	TotalTimeMs    int64                `json:"total_time_ms"`
	PausedCount    int                  `json:"paused_count"`
	OrderedItems   []PracticeItemView   `json:"ordered_items"`
	QuestionGrid   []sequence.GridEntry `json:"question_grid"`
	SessionItems   []SessionItemView    `json:"session_items"`
	Records        []QuestionRecordView `json:"records"`
	QuestionStatus map[int]string       `json:"question_status"`
	Counts         StatusCounts         `json:"counts"`
	AccuracyRate   float64              `json:"accuracy_rate"`
	CompletionRate float64              `json:"completion_rate"`
}

type TrendPoint struct {
	DateKey        string  `json:"date_key"`
	Label          string  `json:"label"`
	AccuracyRate   float64 `json:"accuracy_rate"`
	CompletionRate float64 `json:"completion_rate"`
	TotalTimeMs    int64   `json:"total_time_ms"`
}

type DashboardView struct {
	Records            []RecordListItem `json:"records"`
	Trend              []TrendPoint     `json:"trend"`
	TodayCounts        StatusCounts     `json:"today_counts"`
	TodayQuestions     int              `json:"today_questions"`
	TodayTimeMs        int64            `json:"today_time_ms"`
	YesterdayCounts    StatusCounts     `json:"yesterday_counts"`
	YesterdayQuestions int              `json:"yesterday_questions"`
	YesterdayTimeMs    int64            `json:"yesterday_time_ms"`
	DistributionCounts StatusCounts     `json:"distribution_counts"`
}
