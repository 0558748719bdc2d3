package sessionstate

import (
	"errors"
	"sync"
	"time"
)

type Mode string

const (
	ModePractice Mode = "practice"
	ModeMock     Mode = "mock"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusReady   Status = "ready"
	StatusRunning Status = "running"
	StatusEnded   Status = "ended"
)

var (
	// ErrSessionRunning rejects mutations that would corrupt an in-progress run.
	ErrSessionRunning = errors.New("session is running")
	// ErrSessionEnded rejects Start on an ended session; callers reset first.
	ErrSessionEnded = errors.New("session has ended, reset before starting")
)

// Timers tracks elapsed time at the three granularities the UI displays.
type Timers struct {
	TotalMs    int64 `json:"total_ms"`
	SectionMs  int64 `json:"section_ms"`
	QuestionMs int64 `json:"question_ms"`
}

// Snapshot is the full runtime session state. It is what gets persisted
// to the snapshot row and restored after a restart.
type Snapshot struct {
	Mode                  Mode          `json:"mode"`
	Status                Status        `json:"status"`
	TemplateID            string        `json:"template_id"`
	Order                 []string      `json:"order"`
	CurrentIndex          int           `json:"current_index"`
	Timers                Timers        `json:"timers"`
	IsPaused              bool          `json:"is_paused"`
	StartedAt             int64         `json:"started_at"`
	PausedCount           int           `json:"paused_count"`
	SkippedQuestions      []int         `json:"skipped_questions"`
	QuestionTimes         map[int]int64 `json:"question_times"`
	CurrentQuestionNumber int           `json:"current_question_number"`
	EndDialogShown        bool          `json:"end_dialog_shown"`
	ActiveSessionID       string        `json:"active_session_id"`
}

func emptySnapshot() Snapshot {
	return Snapshot{
		Mode:             ModePractice,
		Status:           StatusIdle,
		Order:            []string{},
		SkippedQuestions: []int{},
		QuestionTimes:    map[int]int64{},
	}
}

// Machine holds the runtime session state behind a mutex. Request handlers
// and the tick driver mutate it concurrently, so every operation takes the
// lock; all mutations go through named operations and never through direct
// field writes.
type Machine struct {
	mu  sync.Mutex
	s   Snapshot
	now func() time.Time
}

func NewMachine() *Machine {
	return &Machine{s: emptySnapshot(), now: time.Now}
}

// SetMode changes the session mode. Rejected while running.
func (m *Machine) SetMode(mode Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.Status == StatusRunning {
		return ErrSessionRunning
	}
	m.s.Mode = mode
	return nil
}

// SetTemplate selects the template for the run and moves the session to
// ready. Order, position, the section/question timers and all per-question
// bookkeeping are cleared; TotalMs survives until Reset.
func (m *Machine) SetTemplate(templateID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.Status == StatusRunning {
		return ErrSessionRunning
	}
	m.s.TemplateID = templateID
	m.s.Status = StatusReady
	m.s.Order = []string{}
	m.s.CurrentIndex = 0
	m.s.Timers.SectionMs = 0
	m.s.Timers.QuestionMs = 0
	m.s.QuestionTimes = map[int]int64{}
	m.s.SkippedQuestions = []int{}
	m.s.CurrentQuestionNumber = 0
	return nil
}

// SetOrder replaces the working order and resets cursor, section/question
// timers and per-question bookkeeping. Rejected while running.
func (m *Machine) SetOrder(order []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.Status == StatusRunning {
		return ErrSessionRunning
	}
	m.s.Order = append([]string{}, order...)
	m.s.CurrentIndex = 0
	m.s.SkippedQuestions = []int{}
	m.s.Timers.SectionMs = 0
	m.s.Timers.QuestionMs = 0
	m.s.QuestionTimes = map[int]int64{}
	m.s.CurrentQuestionNumber = 0
	return nil
}

func (m *Machine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.Status == StatusEnded {
		return ErrSessionEnded
	}
	m.s.Status = StatusRunning
	m.s.StartedAt = m.now().UnixMilli()
	m.s.IsPaused = false
	return nil
}

// Pause only takes effect while running; anything else is a no-op.
func (m *Machine) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.Status != StatusRunning || m.s.IsPaused {
		return
	}
	m.s.IsPaused = true
	m.s.PausedCount++
}

func (m *Machine) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.IsPaused = false
}

// Tick is the only place elapsed time grows. The delta lands on all three
// timers simultaneously; paused sessions ignore ticks entirely.
func (m *Machine) Tick(deltaMs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.IsPaused || deltaMs <= 0 {
		return
	}
	m.s.Timers.TotalMs += deltaMs
	m.s.Timers.SectionMs += deltaMs
	m.s.Timers.QuestionMs += deltaMs
}

// RecordQuestionTime accumulates deltaMs onto the given question number.
// Navigation calls this for the in-flight question before moving the cursor.
func (m *Machine) RecordQuestionTime(questionNumber int, deltaMs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if questionNumber <= 0 || deltaMs <= 0 {
		return
	}
	m.s.QuestionTimes[questionNumber] += deltaMs
}

func (m *Machine) SetCurrentQuestion(questionNumber int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.CurrentQuestionNumber = questionNumber
}

// JumpTo moves the cursor to an explicit position in the order. The question
// timer always resets; the section timer survives a same-index jump because
// that is a question move inside the same section.
func (m *Machine) JumpTo(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sameSection := m.s.CurrentIndex == index
	m.s.CurrentIndex = index
	if !sameSection {
		m.s.Timers.SectionMs = 0
	}
	m.s.Timers.QuestionMs = 0
}

// Next moves the cursor forward one section, clamped to the last one.
func (m *Machine) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.s.CurrentIndex + 1
	if max := len(m.s.Order) - 1; next > max {
		next = max
	}
	if next < 0 {
		next = 0
	}
	m.s.CurrentIndex = next
	m.s.Timers.SectionMs = 0
	m.s.Timers.QuestionMs = 0
}

// Back moves the cursor back one section, clamped to the first one.
func (m *Machine) Back() {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.s.CurrentIndex - 1
	if prev < 0 {
		prev = 0
	}
	m.s.CurrentIndex = prev
	m.s.Timers.SectionMs = 0
	m.s.Timers.QuestionMs = 0
}

// Skip marks a question number as skipped, set semantics.
func (m *Machine) Skip(questionNumber int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if questionNumber <= 0 {
		return
	}
	for _, n := range m.s.SkippedQuestions {
		if n == questionNumber {
			return
		}
	}
	m.s.SkippedQuestions = append(m.s.SkippedQuestions, questionNumber)
}

func (m *Machine) End() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.Status = StatusEnded
}

// Reset returns to idle keeping only the mode.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	mode := m.s.Mode
	m.s = emptySnapshot()
	m.s.Mode = mode
}

func (m *Machine) MarkEndDialogShown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.EndDialogShown = true
}

func (m *Machine) SetActiveSessionID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.ActiveSessionID = id
}

// Snapshot returns a deep copy of the runtime state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySnapshot(m.s)
}

// Restore replaces the runtime state with a persisted snapshot. A snapshot
// captured mid-run comes back paused so a restart never silently keeps
// counting time the user did not spend.
func (m *Machine) Restore(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	restored := copySnapshot(s)
	if restored.Mode == "" {
		restored.Mode = ModePractice
	}
	if restored.Status == "" {
		restored.Status = StatusIdle
	}
	if restored.Status == StatusRunning {
		restored.IsPaused = true
	}
	m.s = restored
}

func copySnapshot(s Snapshot) Snapshot {
	out := s
	out.Order = append([]string{}, s.Order...)
	out.SkippedQuestions = append([]int{}, s.SkippedQuestions...)
	out.QuestionTimes = make(map[int]int64, len(s.QuestionTimes))
	for k, v := range s.QuestionTimes {
		out.QuestionTimes[k] = v
	}
	return out
}
