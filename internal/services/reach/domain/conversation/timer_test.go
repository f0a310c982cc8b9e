package conversation

import (
	"errors"
	"testing"
	"time"
)

func TestPhaseOf(t *testing.T) {
	t.Parallel()

	start := at(1000)
	tests := []struct {
		name string
		c    Conversation
		now  time.Time
		want Phase
	}{
		{name: "no timer", c: Conversation{}, now: at(5000), want: PhaseNoTimer},
		{name: "active", c: Conversation{TimerStarted: &start}, now: at(120_999), want: PhaseActive},
		{name: "expired at boundary", c: Conversation{TimerStarted: &start}, now: at(121_000), want: PhaseExpired},
		{name: "rated wins", c: Conversation{TimerStarted: &start, Rated: true}, now: at(2000), want: PhaseRated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhaseOf(tt.c, tt.now); got != tt.want {
				t.Fatalf("PhaseOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemainingAndFormat(t *testing.T) {
	t.Parallel()

	start := at(0)
	c := Conversation{TimerStarted: &start}

	tests := []struct {
		now  time.Time
		want string
		tone Tone
	}{
		{now: at(0), want: "02:00", tone: ToneGreen},
		{now: at(89_500), want: "00:31", tone: ToneGreen},
		{now: at(90_000), want: "00:30", tone: ToneOrange},
		{now: at(110_000), want: "00:10", tone: ToneRed},
		{now: at(119_001), want: "00:01", tone: ToneRed},
		{now: at(500_000), want: "00:00", tone: ToneRed},
	}
	for _, tt := range tests {
		left := Remaining(c, tt.now)
		if got := FormatRemaining(left); got != tt.want {
			t.Fatalf("FormatRemaining at %v = %q, want %q", tt.now.UnixMilli(), got, tt.want)
		}
		if got := ToneOf(left); got != tt.tone {
			t.Fatalf("ToneOf at %v = %q, want %q", tt.now.UnixMilli(), got, tt.tone)
		}
	}

	if Remaining(Conversation{}, at(0)) != 0 {
		t.Fatal("expected zero remaining without timer")
	}
}

func TestCanRate(t *testing.T) {
	t.Parallel()

	start := at(0)
	if err := CanRate(Conversation{}); !errors.Is(err, ErrTimerNotStarted) {
		t.Fatalf("err = %v, want ErrTimerNotStarted", err)
	}
	if err := CanRate(Conversation{TimerStarted: &start, Rated: true}); !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("err = %v, want ErrAlreadyRated", err)
	}
	if err := CanRate(Conversation{TimerStarted: &start}); err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
}
