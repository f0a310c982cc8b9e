package approval

import "testing"

func TestDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		isGood bool
		reason string
		want   int
	}{
		{name: "good", isGood: true, want: 10},
		{name: "good ignores reason", isGood: true, reason: "Spam messages", want: 10},
		{name: "ghosted", reason: "No response / Ghosted", want: -15},
		{name: "rude", reason: "Rude or disrespectful", want: -20},
		{name: "spam", reason: "Spam messages", want: -25},
		{name: "inappropriate", reason: "Inappropriate content", want: -30},
		{name: "one word", reason: "One-word answers", want: -10},
		{name: "padded reason", reason: "  Spam messages ", want: -25},
		{name: "unknown reason", reason: "Too many emojis", want: -10},
		{name: "missing reason", reason: "", want: -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Delta(tt.isGood, tt.reason); got != tt.want {
				t.Fatalf("Delta(%v, %q) = %d, want %d", tt.isGood, tt.reason, got, tt.want)
			}
		})
	}
}

func TestReasonsOrder(t *testing.T) {
	t.Parallel()

	got := Reasons()
	if len(got) != 5 || got[0] != "No response / Ghosted" || got[4] != "One-word answers" {
		t.Fatalf("Reasons = %v", got)
	}
	got[0] = "mutated"
	if Reasons()[0] != "No response / Ghosted" {
		t.Fatal("Reasons must return a copy")
	}
}

func TestApplyAllowsNegative(t *testing.T) {
	t.Parallel()

	if got := Apply(5, Penalty("Inappropriate content")); got != -25 {
		t.Fatalf("Apply = %d, want -25", got)
	}
}
