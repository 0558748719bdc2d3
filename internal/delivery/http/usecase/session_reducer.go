package usecase

import (
	"encoding/json"
	"math"
	"time"

	httpEntity "github.com/evandrarf/exampace-be/internal/delivery/http/entity"
	internalEntity "github.com/evandrarf/exampace-be/internal/entity"
	"github.com/evandrarf/exampace-be/internal/pkg/sequence"
	"github.com/evandrarf/exampace-be/internal/pkg/sessionstate"
	"github.com/google/uuid"
)

// reducerInput carries everything needed to turn runtime session state into
// its durable Session + SessionItem + QuestionRecord representation.
type reducerInput struct {
	Snapshot     sessionstate.Snapshot
	OrderedItems []sequence.Item // run order
	Grid         []sequence.GridEntry
	Ranges       map[string]sequence.Range
	Name         string
	// Statuses maps question number to its reviewed status; grid slots
	// without an entry persist as unanswered.
	Statuses map[int]httpEntity.QuestionStatus
	Now      time.Time
	// SessionID reuses an existing (draft) session row instead of minting
	// a new one, so practice -> review -> save never duplicates rows.
	SessionID string
	// RecordIDs maps question number to an existing record id so re-saves
	// stay idempotent per question number.
	RecordIDs map[int]string
}

// buildSessionArtifacts is the save-path reducer. Item actual time sums the
// per-question times falling in the item's number range; each record gets an
// even integer share of its item's planned time.
func buildSessionArtifacts(in reducerInput) (*internalEntity.Session, []internalEntity.SessionItem, []internalEntity.QuestionRecord) {
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	startedAt := in.Now.Add(-time.Duration(in.Snapshot.Timers.TotalMs) * time.Millisecond)
	if in.Snapshot.StartedAt > 0 {
		startedAt = time.UnixMilli(in.Snapshot.StartedAt)
	}
	endedAt := in.Now

	orderJSON, _ := json.Marshal(in.Snapshot.Order)
	session := &internalEntity.Session{
		ID:          sessionID,
		Name:        in.Name,
		Mode:        string(in.Snapshot.Mode),
		TemplateID:  in.Snapshot.TemplateID,
		CustomOrder: string(orderJSON),
		Status:      "ended",
		StartedAt:   startedAt,
		EndedAt:     &endedAt,
		TotalTimeMs: in.Snapshot.Timers.TotalMs,
		PausedCount: in.Snapshot.PausedCount,
	}

	items := make([]internalEntity.SessionItem, 0, len(in.OrderedItems))
	itemByTemplateItem := make(map[string]*internalEntity.SessionItem, len(in.OrderedItems))
	shareByTemplateItem := make(map[string]int64, len(in.OrderedItems))

	for index, item := range in.OrderedItems {
		plannedMs := int64(item.PlannedTime) * 60_000
		share := int64(0)
		if item.QuestionCount > 0 {
			share = int64(math.Round(float64(plannedMs) / float64(item.QuestionCount)))
		}
		shareByTemplateItem[item.ID] = share

		actual := int64(0)
		overtime := 0
		if r, ok := in.Ranges[item.ID]; ok {
			for num := r.Start; num <= r.End; num++ {
				t := in.Snapshot.QuestionTimes[num]
				actual += t
				if share > 0 && t > share {
					overtime++
				}
			}
		}

		items = append(items, internalEntity.SessionItem{
			ID:             uuid.NewString(),
			SessionID:      sessionID,
			TemplateItemID: item.ID,
			ActualTimeMs:   actual,
			PlannedTimeMs:  plannedMs,
			QuestionCount:  item.QuestionCount,
			OvertimeCount:  overtime,
			OrderIndex:     index,
		})
		itemByTemplateItem[item.ID] = &items[len(items)-1]
	}

	records := make([]internalEntity.QuestionRecord, 0, len(in.Grid))
	for _, slot := range in.Grid {
		recordID := in.RecordIDs[slot.Number]
		if recordID == "" {
			recordID = uuid.NewString()
		}
		sessionItemID := ""
		if item, ok := itemByTemplateItem[slot.TemplateItemID]; ok {
			sessionItemID = item.ID
		}
		status := httpEntity.QuestionStatusUnanswered
		if s, ok := in.Statuses[slot.Number]; ok && s.Valid() {
			status = s
		}
		records = append(records, internalEntity.QuestionRecord{
			ID:            recordID,
			SessionID:     sessionID,
			SessionItemID: sessionItemID,
			QuestionIndex: slot.Number,
			ActualTimeMs:  in.Snapshot.QuestionTimes[slot.Number],
			PlannedTimeMs: shareByTemplateItem[slot.TemplateItemID],
			Status:        string(status),
		})
	}

	return session, items, records
}

// statusCounts tallies record statuses over the grid, treating missing
// entries as unanswered.
func statusCounts(total int, statuses map[int]string) httpEntity.StatusCounts {
	counts := httpEntity.StatusCounts{}
	for _, status := range statuses {
		switch httpEntity.QuestionStatus(status) {
		case httpEntity.QuestionStatusCorrect:
			counts.Correct++
		case httpEntity.QuestionStatusWrong:
			counts.Wrong++
		case httpEntity.QuestionStatusSkip:
			counts.Skip++
		}
	}
	counts.Unanswered = total - counts.Correct - counts.Wrong - counts.Skip
	if counts.Unanswered < 0 {
		counts.Unanswered = 0
	}
	return counts
}

func accuracyRate(counts httpEntity.StatusCounts) float64 {
	answered := counts.Correct + counts.Wrong
	if answered == 0 {
		return 0
	}
	return float64(counts.Correct) / float64(answered)
}

func completionRate(counts httpEntity.StatusCounts, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(counts.Correct+counts.Wrong) / float64(total)
}
