package sequence

// Item is one template section as the sequencing engine sees it:
// a label, how many questions it contributes and its planned time in minutes.
type Item struct {
	ID            string
	Label         string
	QuestionCount int
	PlannedTime   int
}

// GridEntry is one slot of the fixed question grid. Numbers are assigned
// from the template's canonical item order and stay stable when the user
// reorders sections for a run.
type GridEntry struct {
	Number         int    `json:"number"`
	TypeIndex      int    `json:"type_index"`
	Label          string `json:"label"`
	TemplateItemID string `json:"template_item_id"`
}

// Range is the contiguous block of question numbers owned by one item.
type Range struct {
	Start int
	End   int
}

// BuildGrid numbers the questions of the base item list 1..N and returns
// the grid, the per-item number range and the number -> item id reverse map.
// Items with a zero count get an empty range (Start > End) and no grid slots.
func BuildGrid(items []Item) ([]GridEntry, map[string]Range, map[int]string) {
	grid := make([]GridEntry, 0)
	ranges := make(map[string]Range, len(items))
	numberToItem := make(map[int]string)

	counter := 1
	for typeIndex, item := range items {
		start := counter
		for i := 0; i < item.QuestionCount; i++ {
			grid = append(grid, GridEntry{
				Number:         counter,
				TypeIndex:      typeIndex,
				Label:          item.Label,
				TemplateItemID: item.ID,
			})
			numberToItem[counter] = item.ID
			counter++
		}
		ranges[item.ID] = Range{Start: start, End: counter - 1}
	}

	return grid, ranges, numberToItem
}

// BuildSequence walks the working order and concatenates each item's number
// range into the traversal sequence. Item ids without a range are skipped,
// so a stale order entry cannot produce phantom question numbers.
func BuildSequence(order []string, ranges map[string]Range) []int {
	seq := make([]int, 0)
	for _, id := range order {
		r, ok := ranges[id]
		if !ok {
			continue
		}
		for num := r.Start; num <= r.End; num++ {
			seq = append(seq, num)
		}
	}
	return seq
}

// IndexMap maps each question number to its position in the traversal sequence.
func IndexMap(seq []int) map[int]int {
	m := make(map[int]int, len(seq))
	for idx, num := range seq {
		m[num] = idx
	}
	return m
}

// Resolve keeps the stored current question when it still exists in the
// sequence and falls back to the first sequence entry otherwise.
// An empty sequence resolves to 0.
func Resolve(stored int, seq []int, indexMap map[int]int) int {
	if len(seq) == 0 {
		return 0
	}
	if stored > 0 {
		if _, ok := indexMap[stored]; ok {
			return stored
		}
	}
	return seq[0]
}

// TotalQuestions sums the question counts of the base items.
func TotalQuestions(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.QuestionCount
	}
	return total
}
