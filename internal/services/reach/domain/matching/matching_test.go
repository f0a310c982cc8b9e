package matching

import (
	"errors"
	"testing"
)

func TestAddEnforcesLimit(t *testing.T) {
	t.Parallel()

	var sel []string
	var err error
	for _, s := range []string{"hiking", "jazz", "chess", "cooking", "film"} {
		if sel, err = Add(sel, s); err != nil {
			t.Fatalf("add %s: %v", s, err)
		}
	}
	if sel, err = Add(sel, "jazz"); err != nil || len(sel) != 5 {
		t.Fatalf("re-adding existing selection: len=%d err=%v", len(sel), err)
	}
	if _, err = Add(sel, "surfing"); !errors.Is(err, ErrSelectionLimit) {
		t.Fatalf("err = %v, want ErrSelectionLimit", err)
	}
	if _, err = Add(sel, " "); !errors.Is(err, ErrSelectionInvalid) {
		t.Fatalf("err = %v, want ErrSelectionInvalid", err)
	}
}

func TestSetAndRemove(t *testing.T) {
	t.Parallel()

	sel, err := Set([]string{"a", "b", "a", " c "})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(sel) != 3 || sel[2] != "c" {
		t.Fatalf("Set = %v", sel)
	}
	if _, err := Set([]string{"1", "2", "3", "4", "5", "6"}); !errors.Is(err, ErrSelectionLimit) {
		t.Fatalf("err = %v, want ErrSelectionLimit", err)
	}
	if got := Remove(sel, "b"); len(got) != 2 || got[1] != "c" {
		t.Fatalf("Remove = %v", got)
	}
	if empty, _ := Set(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("Set(nil) = %#v, want empty slice", empty)
	}
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mine, theirs []string
		want         int
	}{
		{mine: nil, theirs: []string{"a"}, want: 0},
		{mine: []string{"a", "b", "c"}, theirs: []string{"a"}, want: 33},
		{mine: []string{"a", "b", "c"}, theirs: []string{"a", "b"}, want: 67},
		{mine: []string{"a", "b"}, theirs: []string{"b", "a", "z"}, want: 100},
		{mine: []string{"a"}, theirs: nil, want: 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.mine, tt.theirs); got != tt.want {
			t.Fatalf("Percentage(%v, %v) = %d, want %d", tt.mine, tt.theirs, got, tt.want)
		}
	}
}

func TestRankSortsDescendingStable(t *testing.T) {
	t.Parallel()

	mine := []string{"a", "b"}
	got := Rank(mine, []Candidate{
		{UserID: "low", Selections: []string{"z"}},
		{UserID: "half-1", Selections: []string{"a"}},
		{UserID: "full", Selections: []string{"a", "b"}},
		{UserID: "half-2", Selections: []string{"b"}},
	})
	order := []string{"full", "half-1", "half-2", "low"}
	for i, id := range order {
		if got[i].UserID != id {
			t.Fatalf("rank[%d] = %s, want %s (all: %+v)", i, got[i].UserID, id, got)
		}
	}
	if len(got[0].Shared) != 2 || got[0].Percentage != 100 {
		t.Fatalf("top match = %+v", got[0])
	}
}
