package usecase

import (
	"reflect"
	"testing"

	"github.com/evandrarf/exampace-be/internal/pkg/sequence"
)

func TestNormalizeOrder(t *testing.T) {
	baseItems := []sequence.Item{
		{ID: "item-a"},
		{ID: "item-b"},
		{ID: "item-c"},
	}

	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{
			name:  "valid permutation kept",
			order: []string{"item-c", "item-a", "item-b"},
			want:  []string{"item-c", "item-a", "item-b"},
		},
		{
			name:  "stale id dropped, missing appended",
			order: []string{"item-b", "ghost"},
			want:  []string{"item-b", "item-a", "item-c"},
		},
		{
			name:  "duplicate kept once",
			order: []string{"item-a", "item-a", "item-c"},
			want:  []string{"item-a", "item-c", "item-b"},
		},
		{
			name:  "empty order falls back to base",
			order: nil,
			want:  []string{"item-a", "item-b", "item-c"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeOrder(tt.order, baseItems)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeOrder = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameOrder(t *testing.T) {
	if !sameOrder([]string{"a", "b"}, []string{"a", "b"}) {
		t.Error("equal slices reported different")
	}
	if sameOrder([]string{"a", "b"}, []string{"b", "a"}) {
		t.Error("reordered slices reported equal")
	}
	if sameOrder([]string{"a"}, []string{"a", "b"}) {
		t.Error("different lengths reported equal")
	}
}
