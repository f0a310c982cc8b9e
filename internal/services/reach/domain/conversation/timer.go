package conversation

import (
	"fmt"
	"math"
	"time"
)

// Phase is the derived timer state of a conversation.
type Phase string

const (
	PhaseNoTimer Phase = "no_timer"
	PhaseActive  Phase = "active"
	PhaseExpired Phase = "expired"
	PhaseRated   Phase = "rated"
)

// Tone is the urgency color of a running countdown.
type Tone string

const (
	ToneGreen  Tone = "green"
	ToneOrange Tone = "orange"
	ToneRed    Tone = "red"
)

// PhaseOf derives the timer state of c at now.
func PhaseOf(c Conversation, now time.Time) Phase {
	switch {
	case c.Rated:
		return PhaseRated
	case c.TimerStarted == nil:
		return PhaseNoTimer
	case IsExpired(c, now):
		return PhaseExpired
	default:
		return PhaseActive
	}
}

// IsExpired reports whether c's response window has elapsed at now.
func IsExpired(c Conversation, now time.Time) bool {
	if c.TimerStarted == nil {
		return false
	}
	return now.Sub(*c.TimerStarted) >= TimerDuration
}

// Remaining is the time left in c's window, clamped at zero.
func Remaining(c Conversation, now time.Time) time.Duration {
	if c.TimerStarted == nil {
		return 0
	}
	left := TimerDuration - now.Sub(*c.TimerStarted)
	if left < 0 {
		return 0
	}
	return left
}

// FormatRemaining renders d as MM:SS, rounding partial seconds up.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(math.Ceil(d.Seconds()))
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// ToneOf picks the countdown color for a remaining duration.
func ToneOf(d time.Duration) Tone {
	switch {
	case d <= 10*time.Second:
		return ToneRed
	case d <= 30*time.Second:
		return ToneOrange
	default:
		return ToneGreen
	}
}

// CanRate reports whether c has a cycle that can still be rated.
func CanRate(c Conversation) error {
	if c.TimerStarted == nil {
		return ErrTimerNotStarted
	}
	if c.Rated {
		return ErrAlreadyRated
	}
	return nil
}
