package user

import (
	"testing"

	"github.com/louisbranch/aviato/internal/services/reach/domain/review"
)

func TestDirectoryPutReplacesAndAppends(t *testing.T) {
	t.Parallel()

	d := Directory{{ID: "a", Name: "Alex"}, {ID: "b", Name: "Blair"}}
	d2 := d.Put(User{ID: "a", Name: "Alexis"})
	d3 := d2.Put(User{ID: "c", Name: "Casey"})

	if d[0].Name != "Alex" {
		t.Fatal("Put mutated the input directory")
	}
	if got, _ := d2.Find("a"); got.Name != "Alexis" {
		t.Fatalf("Find(a).Name = %q, want Alexis", got.Name)
	}
	if len(d3) != 3 || d3[2].ID != "c" {
		t.Fatalf("directory = %+v", d3)
	}
	if len(d3.Without("b")) != 2 {
		t.Fatal("Without did not drop b")
	}
}

func TestFindReturnsCopy(t *testing.T) {
	t.Parallel()

	d := Directory{{ID: "a", Selections: []string{"jazz"}}}
	u, ok := d.Find("a")
	if !ok {
		t.Fatal("expected user")
	}
	u.Selections[0] = "rock"
	if d[0].Selections[0] != "jazz" {
		t.Fatal("Find leaked internal slice")
	}
	if _, ok := d.Find("missing"); ok {
		t.Fatal("expected missing user")
	}
}

func TestApplyReviews(t *testing.T) {
	t.Parallel()

	var u User
	u.ApplyReviews([]review.Review{{RaterID: "x", Rating: 3}, {RaterID: "y", Rating: 4}})
	if u.ReviewCount != 2 || u.ReviewRating != 3.5 {
		t.Fatalf("aggregate = %v/%d", u.ReviewRating, u.ReviewCount)
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	if got := (User{ID: "u1"}).DisplayName(); got != "u1" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := (User{ID: "u1", Name: " Sam "}).DisplayName(); got != "Sam" {
		t.Fatalf("DisplayName = %q", got)
	}
}
