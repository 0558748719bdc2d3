package usecase

import (
	"encoding/json"
	"testing"
	"time"

	httpEntity "github.com/evandrarf/exampace-be/internal/delivery/http/entity"
	"github.com/evandrarf/exampace-be/internal/pkg/sequence"
	"github.com/evandrarf/exampace-be/internal/pkg/sessionstate"
)

func reducerFixture() reducerInput {
	baseItems := []sequence.Item{
		{ID: "item-a", Label: "A", QuestionCount: 2, PlannedTime: 2}, // 120000ms, 60000 per question
		{ID: "item-b", Label: "B", QuestionCount: 2, PlannedTime: 1}, // 60000ms, 30000 per question
	}
	grid, ranges, _ := sequence.BuildGrid(baseItems)

	return reducerInput{
		Snapshot: sessionstate.Snapshot{
			Mode:       sessionstate.ModePractice,
			Status:     sessionstate.StatusEnded,
			TemplateID: "tpl",
			Order:      []string{"item-b", "item-a"},
			Timers:     sessionstate.Timers{TotalMs: 200_000},
			StartedAt:  time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC).UnixMilli(),
			QuestionTimes: map[int]int64{
				1: 70_000, // over item-a's 60000 share
				2: 40_000,
				3: 50_000, // over item-b's 30000 share
				4: 10_000,
			},
			PausedCount: 2,
		},
		// run order: item-b first
		OrderedItems: []sequence.Item{baseItems[1], baseItems[0]},
		Grid:         grid,
		Ranges:       ranges,
		Name:         "morning run",
		Statuses: map[int]httpEntity.QuestionStatus{
			1: httpEntity.QuestionStatusCorrect,
			3: httpEntity.QuestionStatusWrong,
			4: httpEntity.QuestionStatusSkip,
		},
		Now: time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildSessionArtifacts(t *testing.T) {
	in := reducerFixture()
	session, items, records := buildSessionArtifacts(in)

	if session.ID == "" {
		t.Fatal("session id not minted")
	}
	if session.Status != "ended" || session.TotalTimeMs != 200_000 || session.PausedCount != 2 {
		t.Errorf("session header mismatch: %+v", session)
	}
	if session.StartedAt.UnixMilli() != in.Snapshot.StartedAt {
		t.Errorf("startedAt = %v, want snapshot value", session.StartedAt)
	}

	var order []string
	if err := json.Unmarshal([]byte(session.CustomOrder), &order); err != nil {
		t.Fatalf("CustomOrder not valid JSON: %v", err)
	}
	if len(order) != 2 || order[0] != "item-b" {
		t.Errorf("CustomOrder = %v", order)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 session items, got %d", len(items))
	}
	// Run order drives OrderIndex; time attribution follows the item's
	// grid range regardless of run position.
	first := items[0]
	if first.TemplateItemID != "item-b" || first.OrderIndex != 0 {
		t.Errorf("first item = %+v", first)
	}
	if first.ActualTimeMs != 60_000 { // questions 3+4
		t.Errorf("item-b actual = %d, want 60000", first.ActualTimeMs)
	}
	if first.OvertimeCount != 1 { // question 3 over its 30000 share
		t.Errorf("item-b overtime = %d, want 1", first.OvertimeCount)
	}
	second := items[1]
	if second.TemplateItemID != "item-a" || second.ActualTimeMs != 110_000 || second.OvertimeCount != 1 {
		t.Errorf("item-a = %+v", second)
	}

	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	byNumber := make(map[int]struct {
		status  string
		actual  int64
		planned int64
		itemID  string
	}, len(records))
	sessionItemByTemplate := map[string]string{
		items[0].TemplateItemID: items[0].ID,
		items[1].TemplateItemID: items[1].ID,
	}
	for _, r := range records {
		if r.SessionID != session.ID {
			t.Errorf("record %d has session %q", r.QuestionIndex, r.SessionID)
		}
		byNumber[r.QuestionIndex] = struct {
			status  string
			actual  int64
			planned int64
			itemID  string
		}{r.Status, r.ActualTimeMs, r.PlannedTimeMs, r.SessionItemID}
	}

	if got := byNumber[1]; got.status != "correct" || got.actual != 70_000 || got.planned != 60_000 {
		t.Errorf("record 1 = %+v", got)
	}
	if got := byNumber[2]; got.status != "unanswered" {
		t.Errorf("record 2 status = %q, want unanswered", got.status)
	}
	if got := byNumber[3]; got.status != "wrong" || got.planned != 30_000 {
		t.Errorf("record 3 = %+v", got)
	}
	if got := byNumber[4]; got.status != "skip" || got.itemID != sessionItemByTemplate["item-b"] {
		t.Errorf("record 4 = %+v", got)
	}

	// Round trip: per-item actual equals sum of its records' actuals.
	recordSum := map[string]int64{}
	for _, r := range records {
		recordSum[r.SessionItemID] += r.ActualTimeMs
	}
	for _, item := range items {
		if recordSum[item.ID] != item.ActualTimeMs {
			t.Errorf("item %s actual %d != record sum %d", item.TemplateItemID, item.ActualTimeMs, recordSum[item.ID])
		}
	}
}

func TestBuildSessionArtifactsReusesIDs(t *testing.T) {
	in := reducerFixture()
	in.SessionID = "existing-session"
	in.RecordIDs = map[int]string{2: "existing-record"}

	session, _, records := buildSessionArtifacts(in)
	if session.ID != "existing-session" {
		t.Errorf("session id = %q, want reuse", session.ID)
	}
	for _, r := range records {
		if r.QuestionIndex == 2 && r.ID != "existing-record" {
			t.Errorf("record 2 id = %q, want existing-record", r.ID)
		}
	}
}

func TestBuildSessionArtifactsDerivesStartWithoutSnapshot(t *testing.T) {
	in := reducerFixture()
	in.Snapshot.StartedAt = 0
	session, _, _ := buildSessionArtifacts(in)
	want := in.Now.Add(-200_000 * time.Millisecond)
	if !session.StartedAt.Equal(want) {
		t.Errorf("startedAt = %v, want %v", session.StartedAt, want)
	}
}

func TestStatusCounts(t *testing.T) {
	counts := statusCounts(5, map[int]string{
		1: "correct",
		2: "correct",
		3: "wrong",
		4: "skip",
	})
	if counts.Correct != 2 || counts.Wrong != 1 || counts.Skip != 1 || counts.Unanswered != 1 {
		t.Errorf("counts = %+v", counts)
	}

	if got := accuracyRate(counts); got != 2.0/3.0 {
		t.Errorf("accuracy = %v", got)
	}
	if got := completionRate(counts, 5); got != 3.0/5.0 {
		t.Errorf("completion = %v", got)
	}
	if got := completionRate(httpEntity.StatusCounts{}, 0); got != 0 {
		t.Errorf("completion with zero total = %v", got)
	}
	if got := accuracyRate(httpEntity.StatusCounts{Skip: 3}); got != 0 {
		t.Errorf("accuracy with nothing answered = %v", got)
	}
}
