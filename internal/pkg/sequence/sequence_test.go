package sequence

import (
	"reflect"
	"testing"
)

func twoItems() []Item {
	return []Item{
		{ID: "item-a", Label: "A", QuestionCount: 3, PlannedTime: 10},
		{ID: "item-b", Label: "B", QuestionCount: 2, PlannedTime: 5},
	}
}

func TestBuildGridNumbersFollowBaseOrder(t *testing.T) {
	grid, ranges, numberToItem := BuildGrid(twoItems())

	if len(grid) != 5 {
		t.Fatalf("expected 5 grid slots, got %d", len(grid))
	}
	want := []GridEntry{
		{Number: 1, TypeIndex: 0, Label: "A", TemplateItemID: "item-a"},
		{Number: 2, TypeIndex: 0, Label: "A", TemplateItemID: "item-a"},
		{Number: 3, TypeIndex: 0, Label: "A", TemplateItemID: "item-a"},
		{Number: 4, TypeIndex: 1, Label: "B", TemplateItemID: "item-b"},
		{Number: 5, TypeIndex: 1, Label: "B", TemplateItemID: "item-b"},
	}
	if !reflect.DeepEqual(grid, want) {
		t.Fatalf("grid mismatch:\n got %+v\nwant %+v", grid, want)
	}

	if r := ranges["item-a"]; r.Start != 1 || r.End != 3 {
		t.Errorf("item-a range = %+v, want 1..3", r)
	}
	if r := ranges["item-b"]; r.Start != 4 || r.End != 5 {
		t.Errorf("item-b range = %+v, want 4..5", r)
	}
	if numberToItem[4] != "item-b" {
		t.Errorf("numberToItem[4] = %q, want item-b", numberToItem[4])
	}
}

func TestBuildGridZeroCountItem(t *testing.T) {
	items := []Item{
		{ID: "empty", Label: "Empty", QuestionCount: 0},
		{ID: "full", Label: "Full", QuestionCount: 2},
	}
	grid, ranges, _ := BuildGrid(items)

	if len(grid) != 2 {
		t.Fatalf("expected 2 grid slots, got %d", len(grid))
	}
	if r := ranges["empty"]; r.Start <= r.End {
		t.Errorf("zero-count range should be empty, got %+v", r)
	}
	if r := ranges["full"]; r.Start != 1 || r.End != 2 {
		t.Errorf("full range = %+v, want 1..2", r)
	}
}

func TestBuildSequence(t *testing.T) {
	_, ranges, _ := BuildGrid(twoItems())

	tests := []struct {
		name  string
		order []string
		want  []int
	}{
		{"base order", []string{"item-a", "item-b"}, []int{1, 2, 3, 4, 5}},
		{"reordered keeps grid numbers", []string{"item-b", "item-a"}, []int{4, 5, 1, 2, 3}},
		{"unknown ids skipped", []string{"ghost", "item-b"}, []int{4, 5}},
		{"empty order", nil, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSequence(tt.order, ranges)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sequence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	seq := []int{4, 5, 1, 2, 3}
	idx := IndexMap(seq)

	tests := []struct {
		name   string
		stored int
		want   int
	}{
		{"stored present", 2, 2},
		{"stored missing falls back to first", 9, 4},
		{"zero falls back to first", 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.stored, seq, idx); got != tt.want {
				t.Errorf("Resolve(%d) = %d, want %d", tt.stored, got, tt.want)
			}
		})
	}

	if got := Resolve(3, nil, map[int]int{}); got != 0 {
		t.Errorf("empty sequence should resolve to 0, got %d", got)
	}
}

func TestTotalQuestions(t *testing.T) {
	if got := TotalQuestions(twoItems()); got != 5 {
		t.Errorf("TotalQuestions = %d, want 5", got)
	}
	if got := TotalQuestions(nil); got != 0 {
		t.Errorf("TotalQuestions(nil) = %d, want 0", got)
	}
}
