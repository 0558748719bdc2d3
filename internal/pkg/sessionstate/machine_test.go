package sessionstate

import (
	"reflect"
	"testing"
)

func startedMachine(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine()
	if err := m.SetTemplate("tpl"); err != nil {
		t.Fatalf("SetTemplate: %v", err)
	}
	if err := m.SetOrder([]string{"a", "b"}); err != nil {
		t.Fatalf("SetOrder: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return m
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	m := startedMachine(t)

	m.Tick(1000)
	m.Tick(1000)
	m.Tick(1000)
	m.Pause()
	m.Tick(1000) // must not count
	m.Resume()
	m.Tick(500)

	s := m.Snapshot()
	if s.Timers.TotalMs != 3500 {
		t.Errorf("TotalMs = %d, want 3500", s.Timers.TotalMs)
	}
	if s.Timers.SectionMs != 3500 || s.Timers.QuestionMs != 3500 {
		t.Errorf("section/question = %d/%d, want 3500/3500", s.Timers.SectionMs, s.Timers.QuestionMs)
	}
	if s.PausedCount != 1 {
		t.Errorf("PausedCount = %d, want 1", s.PausedCount)
	}
}

func TestTickRejectsNonPositiveDelta(t *testing.T) {
	m := startedMachine(t)
	m.Tick(0)
	m.Tick(-250)
	if got := m.Snapshot().Timers.TotalMs; got != 0 {
		t.Errorf("TotalMs = %d, want 0", got)
	}
}

func TestPauseOutsideRunningIsNoop(t *testing.T) {
	m := NewMachine()
	m.Pause()
	s := m.Snapshot()
	if s.IsPaused || s.PausedCount != 0 {
		t.Errorf("pause on idle changed state: %+v", s)
	}
}

func TestSetTemplateClearsRunStateButKeepsTotal(t *testing.T) {
	m := startedMachine(t)
	m.Tick(2000)
	m.RecordQuestionTime(1, 2000)
	m.Skip(1)
	m.End()

	if err := m.SetTemplate("other"); err != nil {
		t.Fatalf("SetTemplate: %v", err)
	}
	s := m.Snapshot()
	if s.Timers.TotalMs != 2000 {
		t.Errorf("TotalMs = %d, want 2000 preserved", s.Timers.TotalMs)
	}
	if s.Timers.SectionMs != 0 || s.Timers.QuestionMs != 0 {
		t.Errorf("section/question timers not cleared: %+v", s.Timers)
	}
	if len(s.QuestionTimes) != 0 || len(s.SkippedQuestions) != 0 {
		t.Errorf("per-question bookkeeping not cleared: %+v", s)
	}
	if s.Status != StatusReady || s.CurrentQuestionNumber != 0 {
		t.Errorf("status/current = %s/%d, want ready/0", s.Status, s.CurrentQuestionNumber)
	}
}

func TestConfigMutationsRejectedWhileRunning(t *testing.T) {
	m := startedMachine(t)
	if err := m.SetMode(ModeMock); err != ErrSessionRunning {
		t.Errorf("SetMode err = %v, want ErrSessionRunning", err)
	}
	if err := m.SetTemplate("x"); err != ErrSessionRunning {
		t.Errorf("SetTemplate err = %v, want ErrSessionRunning", err)
	}
	if err := m.SetOrder([]string{"x"}); err != ErrSessionRunning {
		t.Errorf("SetOrder err = %v, want ErrSessionRunning", err)
	}
}

func TestStartAfterEnd(t *testing.T) {
	m := startedMachine(t)
	m.End()
	if err := m.Start(); err != ErrSessionEnded {
		t.Errorf("Start after end err = %v, want ErrSessionEnded", err)
	}
	m.Reset()
	s := m.Snapshot()
	if s.Status != StatusIdle {
		t.Errorf("status after reset = %s, want idle", s.Status)
	}
	if err := m.Start(); err != nil {
		t.Errorf("Start after reset err = %v", err)
	}
}

func TestResetKeepsMode(t *testing.T) {
	m := NewMachine()
	if err := m.SetMode(ModeMock); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	m.Reset()
	if got := m.Snapshot().Mode; got != ModeMock {
		t.Errorf("mode after reset = %s, want mock", got)
	}
}

func TestJumpToSameIndexKeepsSectionTimer(t *testing.T) {
	m := startedMachine(t)
	m.Tick(1500)

	m.JumpTo(0) // same section: question move
	s := m.Snapshot()
	if s.Timers.SectionMs != 1500 {
		t.Errorf("same-index jump reset SectionMs to %d", s.Timers.SectionMs)
	}
	if s.Timers.QuestionMs != 0 {
		t.Errorf("QuestionMs = %d, want 0", s.Timers.QuestionMs)
	}

	m.JumpTo(1) // different section
	s = m.Snapshot()
	if s.Timers.SectionMs != 0 {
		t.Errorf("cross-index jump kept SectionMs = %d", s.Timers.SectionMs)
	}
}

func TestNextBackClampAtEdges(t *testing.T) {
	m := startedMachine(t)
	m.Back()
	if got := m.Snapshot().CurrentIndex; got != 0 {
		t.Errorf("Back at first index moved to %d", got)
	}
	m.Next()
	m.Next()
	m.Next()
	if got := m.Snapshot().CurrentIndex; got != 1 {
		t.Errorf("Next past last index moved to %d", got)
	}
}

func TestRecordQuestionTimeAccumulates(t *testing.T) {
	m := startedMachine(t)
	m.RecordQuestionTime(3, 400)
	m.RecordQuestionTime(3, 600)
	m.RecordQuestionTime(0, 100)  // invalid number
	m.RecordQuestionTime(3, -200) // invalid delta
	if got := m.Snapshot().QuestionTimes[3]; got != 1000 {
		t.Errorf("QuestionTimes[3] = %d, want 1000", got)
	}
}

func TestSkipSetSemantics(t *testing.T) {
	m := startedMachine(t)
	m.Skip(2)
	m.Skip(2)
	m.Skip(5)
	m.Skip(0)
	got := m.Snapshot().SkippedQuestions
	if !reflect.DeepEqual(got, []int{2, 5}) {
		t.Errorf("SkippedQuestions = %v, want [2 5]", got)
	}
}

func TestRestoreForcesPauseOnRunningSnapshot(t *testing.T) {
	m := NewMachine()
	m.Restore(Snapshot{
		Status:        StatusRunning,
		TemplateID:    "tpl",
		IsPaused:      false,
		QuestionTimes: map[int]int64{1: 100},
	})
	s := m.Snapshot()
	if !s.IsPaused {
		t.Error("restored running session must come back paused")
	}
	if s.Mode != ModePractice {
		t.Errorf("empty mode defaulted to %s, want practice", s.Mode)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	m := startedMachine(t)
	m.RecordQuestionTime(1, 100)
	s := m.Snapshot()
	s.QuestionTimes[1] = 9999
	s.Order[0] = "mutated"
	fresh := m.Snapshot()
	if fresh.QuestionTimes[1] != 100 {
		t.Errorf("QuestionTimes leaked through snapshot: %d", fresh.QuestionTimes[1])
	}
	if fresh.Order[0] != "a" {
		t.Errorf("Order leaked through snapshot: %v", fresh.Order)
	}
}
