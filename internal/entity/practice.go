package entity

import (
	"time"
)

// QuestionType - A reusable question category referenced by template items
type QuestionType struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	ShortName string    `gorm:"size:50" json:"short_name,omitempty"`
	Color     string    `gorm:"size:20" json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuestionType) TableName() string {
	return "question_types"
}

// Template - An ordered plan of question types with counts and planned minutes
type Template struct {
	ID               string    `gorm:"primaryKey;size:64" json:"id"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	Description      string    `gorm:"type:text" json:"description,omitempty"`
	IsDefault        bool      `gorm:"not null;default:false" json:"is_default"`
	TotalQuestions   int       `gorm:"not null;default:0" json:"total_questions"`    // derived sum of item counts
	TotalPlannedTime int       `gorm:"not null;default:0" json:"total_planned_time"` // derived sum of item minutes
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Template) TableName() string {
	return "templates"
}

// TemplateItem - One section of a template; orderIndex values within a
// template are a permutation of [0..n)
type TemplateItem struct {
	ID             string `gorm:"primaryKey;size:64" json:"id"`
	TemplateID     string `gorm:"size:64;not null;index" json:"template_id"`
	QuestionTypeID string `gorm:"size:64;not null" json:"question_type_id"`
	QuestionCount  int    `gorm:"not null;default:0" json:"question_count"`
	PlannedTime    int    `gorm:"not null;default:0" json:"planned_time"` // minutes
	OrderIndex     int    `gorm:"not null;default:0" json:"order_index"`
}

func (TemplateItem) TableName() string {
	return "template_items"
}

// Session - One finished (or drafted) practice/mock run. Immutable once
// ended except for name/status patches.
type Session struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Name        string     `gorm:"size:200" json:"name,omitempty"`
	Mode        string     `gorm:"size:20;not null" json:"mode"` // practice, mock
	TemplateID  string     `gorm:"size:64;not null" json:"template_id"`
	CustomOrder string     `gorm:"type:text" json:"custom_order"` // JSON array of template item ids
	Status      string     `gorm:"size:20;not null;index" json:"status"` // running, ended
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	TotalTimeMs int64      `gorm:"not null;default:0" json:"total_time_ms"`
	PausedCount int        `gorm:"not null;default:0" json:"paused_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// SessionItem - Per-section outcome of a run; actualTimeMs aggregates the
// per-question times that fall in the item's number range
type SessionItem struct {
	ID             string `gorm:"primaryKey;size:64" json:"id"`
	SessionID      string `gorm:"size:64;not null;index" json:"session_id"`
	TemplateItemID string `gorm:"size:64;not null" json:"template_item_id"`
	ActualTimeMs   int64  `gorm:"not null;default:0" json:"actual_time_ms"`
	PlannedTimeMs  int64  `gorm:"not null;default:0" json:"planned_time_ms"`
	QuestionCount  int    `gorm:"not null;default:0" json:"question_count"`
	OvertimeCount  int    `gorm:"not null;default:0" json:"overtime_count"`
	OrderIndex     int    `gorm:"not null;default:0" json:"order_index"` // position in the run
}

func (SessionItem) TableName() string {
	return "session_items"
}

// QuestionRecord - Per-question outcome; questionIndex is the 1-based global
// grid number and stays unique per session on re-save
type QuestionRecord struct {
	ID            string `gorm:"primaryKey;size:64" json:"id"`
	SessionID     string `gorm:"size:64;not null;index" json:"session_id"`
	SessionItemID string `gorm:"size:64;not null;index" json:"session_item_id"`
	QuestionIndex int    `gorm:"not null" json:"question_index"`
	ActualTimeMs  int64  `gorm:"not null;default:0" json:"actual_time_ms"`
	PlannedTimeMs int64  `gorm:"not null;default:0" json:"planned_time_ms"`
	Status        string `gorm:"size:20;not null;default:unanswered" json:"status"` // unanswered, correct, wrong, skip
}

func (QuestionRecord) TableName() string {
	return "question_records"
}

// DailyStat - Per-day aggregate, accumulated (never replaced) as sessions land
type DailyStat struct {
	Date           string  `gorm:"primaryKey;size:10" json:"date"` // YYYY-MM-DD
	TotalSessions  int     `gorm:"not null;default:0" json:"total_sessions"`
	TotalTimeMs    int64   `gorm:"not null;default:0" json:"total_time_ms"`
	CompletionRate float64 `gorm:"not null;default:0" json:"completion_rate"`
}

func (DailyStat) TableName() string {
	return "stats_daily"
}

// AppSetting - Singleton row keyed "app"
type AppSetting struct {
	ID            string `gorm:"primaryKey;size:16" json:"id"`
	ThemeMode     string `gorm:"size:20;default:system" json:"theme_mode"`
	ColorScheme   string `gorm:"size:20;default:azure" json:"color_scheme"`
	ExamTotalTime int    `gorm:"default:0" json:"exam_total_time,omitempty"`
	ExamTypeRatio string `gorm:"type:text" json:"exam_type_ratio,omitempty"` // JSON object
}

func (AppSetting) TableName() string {
	return "settings"
}

// SessionSnapshot - The persisted runtime session state, singleton keyed
// "current". Lets an interrupted run come back (paused) after a restart.
type SessionSnapshot struct {
	ID        string    `gorm:"primaryKey;size:16" json:"id"`
	Payload   string    `gorm:"type:text;not null" json:"payload"` // JSON-encoded sessionstate.Snapshot
	UpdatedAt time.Time `json:"updated_at"`
}

func (SessionSnapshot) TableName() string {
	return "session_snapshots"
}
