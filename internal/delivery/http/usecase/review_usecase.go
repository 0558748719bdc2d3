package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	httpEntity "github.com/evandrarf/exampace-be/internal/delivery/http/entity"
	"github.com/evandrarf/exampace-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/exampace-be/internal/entity"
	"github.com/evandrarf/exampace-be/internal/pkg/sequence"
	"github.com/evandrarf/exampace-be/internal/pkg/timeutil"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReviewUsecase interface {
	ListRecords(ctx context.Context) ([]httpEntity.RecordListItem, error)
	RecordDetail(ctx context.Context, sessionID string) (*httpEntity.RecordDetailView, error)
	SaveRecordStatuses(ctx context.Context, sessionID string, statuses map[int]httpEntity.QuestionStatus) error
	PatchSession(ctx context.Context, sessionID string, name, status *string) error
	DeleteRecord(ctx context.Context, sessionID string) error
	Dashboard(ctx context.Context) (*httpEntity.DashboardView, error)
	ListDailyStats(ctx context.Context) ([]internalEntity.DailyStat, error)
}

type ReviewUsecaseConfig struct {
	DB                 *gorm.DB
	Log                *logrus.Logger
	SessionRepository  repository.SessionRepository
	TemplateRepository repository.TemplateRepository
	StatsRepository    repository.StatsRepository
}

type reviewUsecase struct {
	cfg ReviewUsecaseConfig
	now func() time.Time
}

func NewReviewUsecase(cfg ReviewUsecaseConfig) ReviewUsecase {
	return &reviewUsecase{cfg: cfg, now: time.Now}
}

// ListRecords returns ended sessions newest first, each with its status
// breakdown and rates computed from the persisted records.
func (u *reviewUsecase) ListRecords(ctx context.Context) ([]httpEntity.RecordListItem, error) {
	db := u.cfg.DB.WithContext(ctx)
	sessions, err := u.cfg.SessionRepository.ListSessionsByStatus(db, "ended")
	if err != nil {
		return nil, err
	}

	templateNames, err := u.templateNames(db)
	if err != nil {
		return nil, err
	}

	items := make([]httpEntity.RecordListItem, 0, len(sessions))
	for _, session := range sessions {
		records, err := u.cfg.SessionRepository.FindRecordsBySessionID(db, session.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, buildRecordListItem(session, records, templateNames[session.TemplateID]))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EndedAt > items[j].EndedAt
	})
	return items, nil
}

func buildRecordListItem(session internalEntity.Session, records []internalEntity.QuestionRecord, templateName string) httpEntity.RecordListItem {
	byNumber := make(map[int]string, len(records))
	for _, r := range records {
		byNumber[r.QuestionIndex] = r.Status
	}
	counts := statusCounts(len(records), byNumber)

	endedAt := ""
	if session.EndedAt != nil {
		endedAt = timeutil.FormatDateTime(*session.EndedAt)
	}

	return httpEntity.RecordListItem{
		ID:             session.ID,
		Name:           session.Name,
		Mode:           session.Mode,
		TemplateName:   templateName,
		EndedAt:        endedAt,
		TotalTimeMs:    session.TotalTimeMs,
		TotalQuestions: len(records),
		Counts:         counts,
		AccuracyRate:   accuracyRate(counts),
		CompletionRate: completionRate(counts, len(records)),
	}
}

// RecordDetail rebuilds the question grid from the current template
// definition and overlays the session's persisted statuses on top. Sessions
// whose template changed since the run show the current layout with
// whatever statuses still map onto it.
func (u *reviewUsecase) RecordDetail(ctx context.Context, sessionID string) (*httpEntity.RecordDetailView, error) {
	db := u.cfg.DB.WithContext(ctx)
	session, err := u.cfg.SessionRepository.FindSessionByID(db, sessionID)
	if err != nil {
		return nil, err
	}
	sessionItems, err := u.cfg.SessionRepository.FindItemsBySessionID(db, sessionID)
	if err != nil {
		return nil, err
	}
	records, err := u.cfg.SessionRepository.FindRecordsBySessionID(db, sessionID)
	if err != nil {
		return nil, err
	}

	baseItems, grid := u.currentLayout(db, session.TemplateID)

	orderedViews := orderItemViews(baseItems, decodeOrder(session.CustomOrder))

	byNumber := make(map[int]string, len(records))
	recordViews := make([]httpEntity.QuestionRecordView, 0, len(records))
	for _, r := range records {
		byNumber[r.QuestionIndex] = r.Status
		recordViews = append(recordViews, httpEntity.QuestionRecordView{
			ID:            r.ID,
			SessionItemID: r.SessionItemID,
			QuestionIndex: r.QuestionIndex,
			ActualTimeMs:  r.ActualTimeMs,
			PlannedTimeMs: r.PlannedTimeMs,
			Status:        r.Status,
		})
	}

	itemViews := make([]httpEntity.SessionItemView, 0, len(sessionItems))
	for _, item := range sessionItems {
		itemViews = append(itemViews, httpEntity.SessionItemView{
			ID:             item.ID,
			TemplateItemID: item.TemplateItemID,
			ActualTimeMs:   item.ActualTimeMs,
			PlannedTimeMs:  item.PlannedTimeMs,
			QuestionCount:  item.QuestionCount,
			OvertimeCount:  item.OvertimeCount,
			OrderIndex:     item.OrderIndex,
		})
	}

	total := len(grid)
	if total == 0 {
		total = len(records)
	}
	counts := statusCounts(total, byNumber)

	templateName := ""
	if tpl, err := u.cfg.TemplateRepository.FindTemplateByID(db, session.TemplateID); err == nil {
		templateName = tpl.Name
	}

	endedAt := ""
	if session.EndedAt != nil {
		endedAt = timeutil.FormatDateTime(*session.EndedAt)
	}

	return &httpEntity.RecordDetailView{
		ID:             session.ID,
		Name:           session.Name,
		Mode:           session.Mode,
		TemplateID:     session.TemplateID,
		TemplateName:   templateName,
		Status:         session.Status,
		StartedAt:      timeutil.FormatDateTime(session.StartedAt),
		EndedAt:        endedAt,
		TotalTimeMs:    session.TotalTimeMs,
		PausedCount:    session.PausedCount,
		OrderedItems:   orderedViews,
		QuestionGrid:   grid,
		SessionItems:   itemViews,
		Records:        recordViews,
		QuestionStatus: byNumber,
		Counts:         counts,
		AccuracyRate:   accuracyRate(counts),
		CompletionRate: completionRate(counts, total),
	}, nil
}

func (u *reviewUsecase) currentLayout(db *gorm.DB, templateID string) ([]sequence.Item, []sequence.GridEntry) {
	rows, err := u.cfg.TemplateRepository.FindItemsByTemplateID(db, templateID)
	if err != nil {
		return nil, nil
	}
	types, err := u.cfg.TemplateRepository.ListQuestionTypes(db)
	if err != nil {
		return nil, nil
	}
	names := make(map[string]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}
	items := make([]sequence.Item, 0, len(rows))
	for _, row := range rows {
		label := names[row.QuestionTypeID]
		if label == "" {
			label = "Question type"
		}
		items = append(items, sequence.Item{
			ID:            row.ID,
			Label:         label,
			QuestionCount: row.QuestionCount,
			PlannedTime:   row.PlannedTime,
		})
	}
	grid, _, _ := sequence.BuildGrid(items)
	return items, grid
}

func decodeOrder(raw string) []string {
	if raw == "" {
		return nil
	}
	var order []string
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil
	}
	return order
}

func orderItemViews(baseItems []sequence.Item, order []string) []httpEntity.PracticeItemView {
	byID := make(map[string]sequence.Item, len(baseItems))
	for _, item := range baseItems {
		byID[item.ID] = item
	}
	views := make([]httpEntity.PracticeItemView, 0, len(baseItems))
	seen := make(map[string]bool, len(baseItems))
	appendItem := func(item sequence.Item) {
		views = append(views, httpEntity.PracticeItemView{
			ID:            item.ID,
			Label:         item.Label,
			QuestionCount: item.QuestionCount,
			PlannedTime:   item.PlannedTime,
		})
	}
	for _, id := range order {
		if item, ok := byID[id]; ok && !seen[id] {
			seen[id] = true
			appendItem(item)
		}
	}
	for _, item := range baseItems {
		if !seen[item.ID] {
			appendItem(item)
		}
	}
	return views
}

// SaveRecordStatuses updates statuses on a stored session's records without
// touching the engine's live state. Numbers outside the stored grid gain
// fresh zero-time rows so a later template shrink cannot lose an answer.
func (u *reviewUsecase) SaveRecordStatuses(ctx context.Context, sessionID string, statuses map[int]httpEntity.QuestionStatus) error {
	db := u.cfg.DB.WithContext(ctx)
	session, err := u.cfg.SessionRepository.FindSessionByID(db, sessionID)
	if err != nil {
		return err
	}
	records, err := u.cfg.SessionRepository.FindRecordsBySessionID(db, sessionID)
	if err != nil {
		return err
	}

	byNumber := make(map[int]int, len(records))
	for i, r := range records {
		byNumber[r.QuestionIndex] = i
	}

	changed := make([]internalEntity.QuestionRecord, 0, len(statuses))
	for number, status := range statuses {
		if !status.Valid() {
			continue
		}
		if i, ok := byNumber[number]; ok {
			if records[i].Status == string(status) {
				continue
			}
			records[i].Status = string(status)
			changed = append(changed, records[i])
			continue
		}
		changed = append(changed, internalEntity.QuestionRecord{
			ID:            uuid.NewString(),
			SessionID:     session.ID,
			QuestionIndex: number,
			Status:        string(status),
		})
	}
	if len(changed) == 0 {
		return nil
	}
	return u.cfg.SessionRepository.AppendQuestionRecords(db, changed)
}

// PatchSession applies the only two fields a stored session allows editing.
func (u *reviewUsecase) PatchSession(ctx context.Context, sessionID string, name, status *string) error {
	db := u.cfg.DB.WithContext(ctx)
	session, err := u.cfg.SessionRepository.FindSessionByID(db, sessionID)
	if err != nil {
		return err
	}
	if name != nil {
		session.Name = *name
	}
	if status != nil {
		session.Status = *status
	}
	return u.cfg.SessionRepository.UpdateSession(db, session)
}

func (u *reviewUsecase) DeleteRecord(ctx context.Context, sessionID string) error {
	db := u.cfg.DB.WithContext(ctx)
	if _, err := u.cfg.SessionRepository.FindSessionByID(db, sessionID); err != nil {
		return err
	}
	return u.cfg.SessionRepository.RemoveSession(db, sessionID)
}

func (u *reviewUsecase) ListDailyStats(ctx context.Context) ([]internalEntity.DailyStat, error) {
	return u.cfg.StatsRepository.ListDailyStats(u.cfg.DB.WithContext(ctx))
}

// Dashboard aggregates ended sessions into the review landing view: a
// seven-day trend, today vs yesterday breakdowns and an all-time status
// distribution.
func (u *reviewUsecase) Dashboard(ctx context.Context) (*httpEntity.DashboardView, error) {
	db := u.cfg.DB.WithContext(ctx)
	sessions, err := u.cfg.SessionRepository.ListSessionsByStatus(db, "ended")
	if err != nil {
		return nil, err
	}
	templateNames, err := u.templateNames(db)
	if err != nil {
		return nil, err
	}

	type dayAgg struct {
		counts httpEntity.StatusCounts
		total  int
		timeMs int64
	}
	days := make(map[string]*dayAgg)

	view := &httpEntity.DashboardView{
		Records: make([]httpEntity.RecordListItem, 0, len(sessions)),
		Trend:   make([]httpEntity.TrendPoint, 0, 7),
	}

	for _, session := range sessions {
		records, err := u.cfg.SessionRepository.FindRecordsBySessionID(db, session.ID)
		if err != nil {
			return nil, err
		}
		item := buildRecordListItem(session, records, templateNames[session.TemplateID])
		view.Records = append(view.Records, item)

		view.DistributionCounts.Correct += item.Counts.Correct
		view.DistributionCounts.Wrong += item.Counts.Wrong
		view.DistributionCounts.Skip += item.Counts.Skip
		view.DistributionCounts.Unanswered += item.Counts.Unanswered

		if session.EndedAt == nil {
			continue
		}
		key := timeutil.DateKey(*session.EndedAt)
		agg, ok := days[key]
		if !ok {
			agg = &dayAgg{}
			days[key] = agg
		}
		agg.counts.Correct += item.Counts.Correct
		agg.counts.Wrong += item.Counts.Wrong
		agg.counts.Skip += item.Counts.Skip
		agg.counts.Unanswered += item.Counts.Unanswered
		agg.total += item.TotalQuestions
		agg.timeMs += session.TotalTimeMs
	}

	sort.SliceStable(view.Records, func(i, j int) bool {
		return view.Records[i].EndedAt > view.Records[j].EndedAt
	})

	now := u.now()
	for offset := 6; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		key := timeutil.DateKey(day)
		point := httpEntity.TrendPoint{
			DateKey: key,
			Label:   timeutil.DayLabel(day),
		}
		if agg, ok := days[key]; ok {
			point.AccuracyRate = accuracyRate(agg.counts)
			point.CompletionRate = completionRate(agg.counts, agg.total)
			point.TotalTimeMs = agg.timeMs
		}
		view.Trend = append(view.Trend, point)
	}

	todayKey := timeutil.DateKey(now)
	yesterdayKey := timeutil.DateKey(now.AddDate(0, 0, -1))
	if agg, ok := days[todayKey]; ok {
		view.TodayCounts = agg.counts
		view.TodayQuestions = agg.total
		view.TodayTimeMs = agg.timeMs
	}
	if agg, ok := days[yesterdayKey]; ok {
		view.YesterdayCounts = agg.counts
		view.YesterdayQuestions = agg.total
		view.YesterdayTimeMs = agg.timeMs
	}
	return view, nil
}

func (u *reviewUsecase) templateNames(db *gorm.DB) (map[string]string, error) {
	templates, err := u.cfg.TemplateRepository.ListTemplates(db)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(templates))
	for _, tpl := range templates {
		names[tpl.ID] = tpl.Name
	}
	return names, nil
}
