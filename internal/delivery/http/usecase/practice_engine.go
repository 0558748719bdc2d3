package usecase

import (
	"context"
	"encoding/json"
	"time"

	httpEntity "github.com/evandrarf/exampace-be/internal/delivery/http/entity"
	"github.com/evandrarf/exampace-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/exampace-be/internal/entity"
	"github.com/evandrarf/exampace-be/internal/pkg/sequence"
	"github.com/evandrarf/exampace-be/internal/pkg/sessionstate"
	"github.com/evandrarf/exampace-be/internal/pkg/ticker"
	"github.com/evandrarf/exampace-be/internal/pkg/timeutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type PracticeEngine interface {
	Restore(ctx context.Context) error
	Shutdown()

	State(ctx context.Context) (*httpEntity.PracticeStateView, error)
	SetMode(ctx context.Context, mode string) error
	SetTemplate(ctx context.Context, templateID string) error
	SetOrder(ctx context.Context, order []string) error
	Start(ctx context.Context) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	End(ctx context.Context) error
	Reset(ctx context.Context) error

	NextQuestion(ctx context.Context) error
	PrevQuestion(ctx context.Context) error
	SelectQuestion(ctx context.Context, number int) error
	SkipQuestion(ctx context.Context) error
	JumpSection(ctx context.Context, index int) error

	SavePractice(ctx context.Context, name string) (string, error)
	SaveReview(ctx context.Context, sessionID string, statuses map[int]httpEntity.QuestionStatus) (string, error)
	EnsureSaved(ctx context.Context) (string, error)
}

type PracticeEngineConfig struct {
	DB                 *gorm.DB
	Log                *logrus.Logger
	Config             *viper.Viper
	TemplateRepository repository.TemplateRepository
	SessionRepository  repository.SessionRepository
	SettingsRepository repository.SettingsRepository
	StatsRepository    repository.StatsRepository
}

type practiceEngine struct {
	cfg           PracticeEngineConfig
	machine       *sessionstate.Machine
	driver        *ticker.Driver
	snapshotEvery uint64
	carry         time.Duration
	now           func() time.Time
}

func NewPracticeEngine(cfg PracticeEngineConfig) PracticeEngine {
	interval := ticker.DefaultInterval
	snapshotEvery := uint64(25)
	if cfg.Config != nil {
		if ms := cfg.Config.GetInt("practice.tick_interval_ms"); ms > 0 {
			interval = time.Duration(ms) * time.Millisecond
		}
		if n := cfg.Config.GetUint64("practice.snapshot_every_ticks"); n > 0 {
			snapshotEvery = n
		}
	}

	e := &practiceEngine{
		cfg:           cfg,
		machine:       sessionstate.NewMachine(),
		snapshotEvery: snapshotEvery,
		now:           time.Now,
	}
	e.driver = ticker.New(interval, e.onTick)
	return e
}

// onTick feeds the elapsed delta to the state machine in whole milliseconds,
// carrying the sub-millisecond remainder so long runs do not slowly lose time.
// Only the single driver goroutine touches carry.
func (e *practiceEngine) onTick(delta time.Duration, ordinal uint64) {
	e.carry += delta
	ms := e.carry / time.Millisecond
	e.carry -= ms * time.Millisecond
	e.machine.Tick(int64(ms))

	if e.snapshotEvery > 0 && ordinal%e.snapshotEvery == 0 {
		e.persistSnapshot()
	}
}

// syncDriver reconciles the tick goroutine with the machine state. Called
// after every operation that can change whether time should be flowing.
func (e *practiceEngine) syncDriver() {
	snap := e.machine.Snapshot()
	e.driver.Sync(snap.Status == sessionstate.StatusRunning && !snap.IsPaused)
}

func (e *practiceEngine) persistSnapshot() {
	payload, err := json.Marshal(e.machine.Snapshot())
	if err != nil {
		e.cfg.Log.Errorf("marshal session snapshot: %v", err)
		return
	}
	if err := e.cfg.SettingsRepository.SaveSnapshot(nil, string(payload)); err != nil {
		e.cfg.Log.Errorf("persist session snapshot: %v", err)
	}
}

// Restore reloads the persisted runtime state at startup. A run that was in
// progress comes back paused and waits for the user to resume.
func (e *practiceEngine) Restore(ctx context.Context) error {
	row, err := e.cfg.SettingsRepository.GetSnapshot(e.cfg.DB.WithContext(ctx))
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}
	var snap sessionstate.Snapshot
	if err := json.Unmarshal([]byte(row.Payload), &snap); err != nil {
		e.cfg.Log.Warnf("discarding unreadable session snapshot: %v", err)
		return e.cfg.SettingsRepository.ClearSnapshot(nil)
	}
	e.machine.Restore(snap)
	e.syncDriver()
	if snap.Status == sessionstate.StatusRunning {
		e.cfg.Log.Infof("restored in-progress session %s paused at %s total",
			snap.TemplateID, timeutil.FormatDuration(snap.Timers.TotalMs))
	}
	return nil
}

// Shutdown stops the tick driver and persists a final snapshot.
func (e *practiceEngine) Shutdown() {
	e.driver.Stop()
	e.persistSnapshot()
}

// derived bundles the sequencing view of the current machine state.
type derived struct {
	snap         sessionstate.Snapshot
	baseItems    []sequence.Item
	orderedItems []sequence.Item
	grid         []sequence.GridEntry
	ranges       map[string]sequence.Range
	numberToItem map[int]string
	seq          []int
	idxMap       map[int]int
	orderPos     map[string]int
	current      int
}

func (d *derived) hasItems() bool {
	return len(d.orderedItems) > 0 && len(d.seq) > 0
}

// loadBaseItems reads the template's items in canonical order and labels
// them with their question type names.
func (e *practiceEngine) loadBaseItems(ctx context.Context, templateID string) ([]sequence.Item, error) {
	if templateID == "" {
		return nil, nil
	}
	db := e.cfg.DB.WithContext(ctx)
	rows, err := e.cfg.TemplateRepository.FindItemsByTemplateID(db, templateID)
	if err != nil {
		return nil, err
	}
	types, err := e.cfg.TemplateRepository.ListQuestionTypes(db)
	if err != nil {
		return nil, err
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
	return items, nil
}

// normalizeOrder keeps only ids that still exist and appends missing item
// ids in base order, so the working order is always a permutation of the
// template's items.
func normalizeOrder(order []string, baseItems []sequence.Item) []string {
	valid := make(map[string]bool, len(baseItems))
	for _, item := range baseItems {
		valid[item.ID] = true
	}
	normalized := make([]string, 0, len(baseItems))
	seen := make(map[string]bool, len(baseItems))
	for _, id := range order {
		if valid[id] && !seen[id] {
			normalized = append(normalized, id)
			seen[id] = true
		}
	}
	for _, item := range baseItems {
		if !seen[item.ID] {
			normalized = append(normalized, item.ID)
		}
	}
	return normalized
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// derive recomputes the sequencing view from the authoritative state. While
// idle it also repairs a stale working order and snaps the current question
// back into the sequence, mirroring what the machine would never be allowed
// to drift into mid-run.
func (e *practiceEngine) derive(ctx context.Context) (*derived, error) {
	snap := e.machine.Snapshot()

	baseItems, err := e.loadBaseItems(ctx, snap.TemplateID)
	if err != nil {
		return nil, err
	}

	if snap.Status != sessionstate.StatusRunning && len(baseItems) > 0 {
		normalized := normalizeOrder(snap.Order, baseItems)
		if !sameOrder(normalized, snap.Order) {
			if err := e.machine.SetOrder(normalized); err == nil {
				snap = e.machine.Snapshot()
			}
		}
	}

	d := &derived{snap: snap, baseItems: baseItems}
	d.grid, d.ranges, d.numberToItem = sequence.BuildGrid(baseItems)
	d.seq = sequence.BuildSequence(snap.Order, d.ranges)
	d.idxMap = sequence.IndexMap(d.seq)

	byID := make(map[string]sequence.Item, len(baseItems))
	for _, item := range baseItems {
		byID[item.ID] = item
	}
	d.orderPos = make(map[string]int, len(snap.Order))
	for pos, id := range snap.Order {
		d.orderPos[id] = pos
		if item, ok := byID[id]; ok {
			d.orderedItems = append(d.orderedItems, item)
		}
	}

	d.current = sequence.Resolve(snap.CurrentQuestionNumber, d.seq, d.idxMap)
	if d.current != snap.CurrentQuestionNumber && snap.Status != sessionstate.StatusRunning {
		e.machine.SetCurrentQuestion(d.current)
		d.snap.CurrentQuestionNumber = d.current
	}
	return d, nil
}

// recordCurrent attributes the live question timer to the in-flight question.
// Navigation always calls this before moving the cursor.
func (e *practiceEngine) recordCurrent(d *derived) {
	if d.snap.Status != sessionstate.StatusRunning {
		return
	}
	if d.current <= 0 || d.snap.Timers.QuestionMs <= 0 {
		return
	}
	e.machine.RecordQuestionTime(d.current, d.snap.Timers.QuestionMs)
}

// moveToQuestion sets the visible question pointer and resynchronizes the
// section cursor through the number -> item -> order position reverse map.
func (e *practiceEngine) moveToQuestion(d *derived, number int) {
	e.machine.SetCurrentQuestion(number)
	if itemID, ok := d.numberToItem[number]; ok {
		if pos, ok := d.orderPos[itemID]; ok {
			e.machine.JumpTo(pos)
		}
	}
}

func (e *practiceEngine) State(ctx context.Context) (*httpEntity.PracticeStateView, error) {
	if err := e.ensureTemplate(ctx); err != nil {
		return nil, err
	}
	d, err := e.derive(ctx)
	if err != nil {
		return nil, err
	}
	return e.buildStateView(d), nil
}

// ensureTemplate falls back to the default template when none is selected,
// the same bootstrap the practice screen performs.
func (e *practiceEngine) ensureTemplate(ctx context.Context) error {
	snap := e.machine.Snapshot()
	db := e.cfg.DB.WithContext(ctx)

	if snap.TemplateID != "" {
		if _, err := e.cfg.TemplateRepository.FindTemplateByID(db, snap.TemplateID); err == nil {
			return nil
		} else if snap.Status == sessionstate.StatusRunning {
			// Never reconfigure a live run; the stale template only
			// affects label lookups.
			return nil
		}
	}
	if snap.Status == sessionstate.StatusRunning {
		return nil
	}

	fallback, err := e.cfg.TemplateRepository.FindDefaultTemplate(db)
	if err != nil {
		templates, listErr := e.cfg.TemplateRepository.ListTemplates(db)
		if listErr != nil {
			return listErr
		}
		if len(templates) == 0 {
			return nil
		}
		fallback = &templates[0]
	}
	return e.applyTemplate(ctx, fallback.ID)
}

func (e *practiceEngine) buildStateView(d *derived) *httpEntity.PracticeStateView {
	snap := d.snap
	isRunning := snap.Status == sessionstate.StatusRunning

	orderedViews := make([]httpEntity.PracticeItemView, 0, len(d.orderedItems))
	for _, item := range d.orderedItems {
		orderedViews = append(orderedViews, httpEntity.PracticeItemView{
			ID:            item.ID,
			Label:         item.Label,
			QuestionCount: item.QuestionCount,
			PlannedTime:   item.PlannedTime,
		})
	}

	activeIndex := snap.CurrentIndex
	if max := len(d.orderedItems) - 1; activeIndex > max {
		activeIndex = max
	}
	if activeIndex < 0 {
		activeIndex = 0
	}

	var currentItem *httpEntity.PracticeItemView
	if len(orderedViews) > 0 {
		item := orderedViews[activeIndex]
		currentItem = &item
	}

	// Per-question and per-section elapsed combine the recorded times with
	// the live question timer when it belongs to the section in focus.
	questionElapsed := int64(0)
	if d.current > 0 {
		questionElapsed = snap.QuestionTimes[d.current] + snap.Timers.QuestionMs
	}

	sectionElapsed := int64(0)
	plannedMs := int64(0)
	if currentItem != nil {
		plannedMs = int64(currentItem.PlannedTime) * 60_000
		if r, ok := d.ranges[currentItem.ID]; ok {
			for num := r.Start; num <= r.End; num++ {
				sectionElapsed += snap.QuestionTimes[num]
			}
			if d.current >= r.Start && d.current <= r.End {
				sectionElapsed += snap.Timers.QuestionMs
			}
		}
	}

	progress := float64(0)
	if plannedMs > 0 {
		progress = float64(sectionElapsed) / float64(plannedMs) * 100
		if progress > 100 {
			progress = 100
		}
	}

	skippedTypeIDs := make([]string, 0)
	seenType := make(map[string]bool)
	skippedSet := make(map[int]bool, len(snap.SkippedQuestions))
	for _, n := range snap.SkippedQuestions {
		skippedSet[n] = true
	}
	for _, slot := range d.grid {
		if skippedSet[slot.Number] && !seenType[slot.TemplateItemID] {
			seenType[slot.TemplateItemID] = true
			skippedTypeIDs = append(skippedTypeIDs, slot.TemplateItemID)
		}
	}

	currentSeqIndex := 0
	if idx, ok := d.idxMap[d.current]; ok {
		currentSeqIndex = idx
	}

	return &httpEntity.PracticeStateView{
		Mode:             snap.Mode,
		Status:           snap.Status,
		IsPaused:         snap.IsPaused,
		IsRunning:        isRunning,
		CanPause:         snap.Mode == sessionstate.ModePractice && isRunning,
		IsLocked:         isRunning,
		CanNavigate:      isRunning,
		HasItems:         d.hasItems(),
		TemplateID:       snap.TemplateID,
		Order:            snap.Order,
		OrderedItems:     orderedViews,
		ActiveIndex:      activeIndex,
		CurrentItem:      currentItem,
		TotalQuestions:   sequence.TotalQuestions(d.baseItems),
		CurrentQuestion:  d.current,
		QuestionGrid:     d.grid,
		Sequence:         d.seq,
		SkippedQuestions: snap.SkippedQuestions,
		SkippedTypeIDs:   skippedTypeIDs,
		CanGoPrev:        currentSeqIndex > 0,
		CanGoNext:        currentSeqIndex < len(d.seq)-1,
		Timers: httpEntity.TimersView{
			TotalMs:    snap.Timers.TotalMs,
			SectionMs:  sectionElapsed,
			QuestionMs: questionElapsed,
			Total:      timeutil.FormatDuration(snap.Timers.TotalMs),
			Section:    timeutil.FormatDuration(sectionElapsed),
			Question:   timeutil.FormatDuration(questionElapsed),
		},
		PlannedMs:       plannedMs,
		ActualMs:        sectionElapsed,
		ProgressValue:   progress,
		IsOvertime:      plannedMs > 0 && sectionElapsed > plannedMs,
		StartedAt:       snap.StartedAt,
		PausedCount:     snap.PausedCount,
		EndDialogShown:  snap.EndDialogShown,
		ActiveSessionID: snap.ActiveSessionID,
	}
}

func (e *practiceEngine) SetMode(ctx context.Context, mode string) error {
	if err := e.machine.SetMode(sessionstate.Mode(mode)); err != nil {
		return err
	}
	e.persistSnapshot()
	return nil
}

func (e *practiceEngine) SetTemplate(ctx context.Context, templateID string) error {
	db := e.cfg.DB.WithContext(ctx)
	if _, err := e.cfg.TemplateRepository.FindTemplateByID(db, templateID); err != nil {
		return err
	}
	return e.applyTemplate(ctx, templateID)
}

func (e *practiceEngine) applyTemplate(ctx context.Context, templateID string) error {
	if err := e.machine.SetTemplate(templateID); err != nil {
		return err
	}
	baseItems, err := e.loadBaseItems(ctx, templateID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(baseItems))
	for _, item := range baseItems {
		ids = append(ids, item.ID)
	}
	if err := e.machine.SetOrder(ids); err != nil {
		return err
	}
	if _, err := e.derive(ctx); err != nil {
		return err
	}
	e.persistSnapshot()
	return nil
}

func (e *practiceEngine) SetOrder(ctx context.Context, order []string) error {
	snap := e.machine.Snapshot()
	baseItems, err := e.loadBaseItems(ctx, snap.TemplateID)
	if err != nil {
		return err
	}
	if err := e.machine.SetOrder(normalizeOrder(order, baseItems)); err != nil {
		return err
	}
	if _, err := e.derive(ctx); err != nil {
		return err
	}
	e.persistSnapshot()
	return nil
}

// Start begins the run. Starting an ended session resets it back to idle
// instead, which is the restart gesture.
func (e *practiceEngine) Start(ctx context.Context) error {
	snap := e.machine.Snapshot()
	if snap.Status == sessionstate.StatusEnded {
		return e.Reset(ctx)
	}
	if err := e.machine.Start(); err != nil {
		return err
	}
	e.syncDriver()
	e.persistSnapshot()
	return nil
}

// Pause only applies to practice-mode runs; mock mode has no pause.
func (e *practiceEngine) Pause(ctx context.Context) error {
	snap := e.machine.Snapshot()
	if snap.Mode != sessionstate.ModePractice || snap.Status != sessionstate.StatusRunning {
		return nil
	}
	e.machine.Pause()
	e.syncDriver()
	e.persistSnapshot()
	return nil
}

func (e *practiceEngine) Resume(ctx context.Context) error {
	e.machine.Resume()
	e.syncDriver()
	e.persistSnapshot()
	return nil
}

func (e *practiceEngine) End(ctx context.Context) error {
	d, err := e.derive(ctx)
	if err != nil {
		return err
	}
	e.recordCurrent(d)
	e.machine.End()
	e.syncDriver()
	e.persistSnapshot()
	return nil
}

func (e *practiceEngine) Reset(ctx context.Context) error {
	e.machine.Reset()
	e.syncDriver()
	e.persistSnapshot()
	return nil
}

func (e *practiceEngine) NextQuestion(ctx context.Context) error {
	return e.stepQuestion(ctx, +1, false)
}

func (e *practiceEngine) PrevQuestion(ctx context.Context) error {
	return e.stepQuestion(ctx, -1, false)
}

// SkipQuestion marks the current question skipped, then advances.
func (e *practiceEngine) SkipQuestion(ctx context.Context) error {
	return e.stepQuestion(ctx, +1, true)
}

// stepQuestion moves prev/next over the traversal sequence, attributing the
// in-flight question's time before the cursor moves.
func (e *practiceEngine) stepQuestion(ctx context.Context, direction int, skip bool) error {
	d, err := e.derive(ctx)
	if err != nil {
		return err
	}
	if !d.hasItems() {
		return nil
	}
	e.recordCurrent(d)
	if skip {
		e.machine.Skip(d.current)
	}

	idx := d.idxMap[d.current]
	target := idx + direction
	if target < 0 {
		target = 0
	}
	if max := len(d.seq) - 1; target > max {
		target = max
	}
	next := d.seq[target]
	if next == d.current {
		e.persistSnapshot()
		return nil
	}
	e.moveToQuestion(d, next)
	e.persistSnapshot()
	return nil
}

func (e *practiceEngine) SelectQuestion(ctx context.Context, number int) error {
	d, err := e.derive(ctx)
	if err != nil {
		return err
	}
	if !d.hasItems() || number == d.current {
		return nil
	}
	if _, ok := d.idxMap[number]; !ok {
		return nil
	}
	e.recordCurrent(d)
	e.moveToQuestion(d, number)
	e.persistSnapshot()
	return nil
}

// JumpSection moves the cursor to the first question of the section at the
// given run position.
func (e *practiceEngine) JumpSection(ctx context.Context, index int) error {
	d, err := e.derive(ctx)
	if err != nil {
		return err
	}
	if !d.hasItems() || index < 0 || index >= len(d.snap.Order) {
		return nil
	}
	if index == d.snap.CurrentIndex {
		return nil
	}
	e.recordCurrent(d)
	itemID := d.snap.Order[index]
	if r, ok := d.ranges[itemID]; ok && r.Start <= r.End {
		e.machine.SetCurrentQuestion(r.Start)
	}
	e.machine.JumpTo(index)
	e.persistSnapshot()
	return nil
}

// SavePractice is the end-dialog save: every record starts unanswered and a
// later review pass fills statuses in.
func (e *practiceEngine) SavePractice(ctx context.Context, name string) (string, error) {
	sessionID, err := e.save(ctx, name, "", nil)
	if err != nil {
		return "", err
	}
	e.machine.MarkEndDialogShown()
	e.persistSnapshot()
	return sessionID, nil
}

// SaveReview persists the run with reviewed statuses, overwriting the draft
// or a given existing session.
func (e *practiceEngine) SaveReview(ctx context.Context, sessionID string, statuses map[int]httpEntity.QuestionStatus) (string, error) {
	if sessionID == "" {
		sessionID = e.machine.Snapshot().ActiveSessionID
	}
	id, err := e.save(ctx, "", sessionID, statuses)
	if err != nil {
		return "", err
	}
	e.persistSnapshot()
	return id, nil
}

// EnsureSaved lazily creates the durable session row the first time review
// is entered before an explicit save, and pins its id so later saves patch
// the same row.
func (e *practiceEngine) EnsureSaved(ctx context.Context) (string, error) {
	snap := e.machine.Snapshot()
	if snap.ActiveSessionID != "" {
		return snap.ActiveSessionID, nil
	}
	id, err := e.save(ctx, "", "", nil)
	if err != nil {
		return "", err
	}
	e.persistSnapshot()
	return id, nil
}

func (e *practiceEngine) save(ctx context.Context, name, sessionID string, statuses map[int]httpEntity.QuestionStatus) (string, error) {
	d, err := e.derive(ctx)
	if err != nil {
		return "", err
	}
	if d.snap.TemplateID == "" || len(d.orderedItems) == 0 {
		return "", ErrNothingToSave
	}

	now := e.now()
	if name == "" {
		name = e.defaultSessionName(ctx, d.snap.TemplateID, now)
	}

	session, items, records := buildSessionArtifacts(reducerInput{
		Snapshot:     d.snap,
		OrderedItems: d.orderedItems,
		Grid:         d.grid,
		Ranges:       d.ranges,
		Name:         name,
		Statuses:     statuses,
		Now:          now,
		SessionID:    sessionID,
	})

	db := e.cfg.DB.WithContext(ctx)
	if sessionID != "" {
		err = e.cfg.SessionRepository.OverwriteSession(db, session, items, records)
	} else {
		err = e.cfg.SessionRepository.CreateSession(db, session, items)
		if err == nil {
			err = e.cfg.SessionRepository.AppendQuestionRecords(db, records)
		}
	}
	if err != nil {
		return "", err
	}

	e.machine.SetActiveSessionID(session.ID)

	byNumber := make(map[int]string, len(records))
	for _, r := range records {
		byNumber[r.QuestionIndex] = r.Status
	}
	counts := statusCounts(len(d.grid), byNumber)
	stat := &internalEntity.DailyStat{
		Date:           timeutil.DateKey(now),
		TotalSessions:  1,
		TotalTimeMs:    d.snap.Timers.TotalMs,
		CompletionRate: completionRate(counts, len(d.grid)),
	}
	if err := e.cfg.StatsRepository.AppendDailyStat(db, stat); err != nil {
		// The session itself saved; a failed aggregate only skews the chart.
		e.cfg.Log.Errorf("append daily stat: %v", err)
	}

	return session.ID, nil
}

func (e *practiceEngine) defaultSessionName(ctx context.Context, templateID string, now time.Time) string {
	label := "Practice"
	if tpl, err := e.cfg.TemplateRepository.FindTemplateByID(e.cfg.DB.WithContext(ctx), templateID); err == nil {
		label = tpl.Name
	}
	return label + " - " + timeutil.FormatDateTime(now)
}
