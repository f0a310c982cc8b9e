package availability

import (
	"fmt"
	"math"
	"time"
)

// Reason is the machine-readable cause behind a Status.
type Reason string

const (
	ReasonAvailable   Reason = "available"
	ReasonGrace       Reason = "grace"
	ReasonInvisible   Reason = "invisible"
	ReasonLocked      Reason = "locked"
	ReasonPaused      Reason = "paused"
	ReasonNotOpenYet  Reason = "not_open_yet"
	ReasonExpired     Reason = "expired"
	ReasonMaxContacts Reason = "max_contacts"
	ReasonNotYet      Reason = "not_yet"
)

// Status is a point-in-time evaluation of an Availability.
type Status struct {
	Mode       Mode
	Available  bool
	StatusText string
	Reason     Reason
	ModeColor  string

	// OpensAt is set for blue and brown while not yet open.
	OpensAt time.Time
	// Remaining is the time left in an active yellow window.
	Remaining time.Duration
	// SlotsLeft is the orange capacity still free.
	SlotsLeft int
}

const (
	dateLayout = "Jan 2, 2006"
	timeLayout = "3:04 PM"
)

// Evaluate reports whether a can be messaged at now. It never mutates a.
func Evaluate(a Availability, now time.Time) Status {
	st := Status{Mode: a.Mode, ModeColor: a.Mode.Color()}

	switch a.Mode {
	case ModeGreen:
		return available(st)
	case ModeRed:
		st.StatusText, st.Reason = "Locked", ReasonLocked
		return st
	case ModeGray:
		st.StatusText, st.Reason = "Paused", ReasonPaused
		return st
	case ModeBlue:
		return evaluateOpen(st, settingsOr[OpenSettings](a), now)
	case ModeYellow:
		return evaluateLater(st, settingsOr[LaterSettings](a), now)
	case ModeOrange:
		return evaluateMaxContact(st, settingsOr[MaxContactSettings](a))
	case ModeBrown:
		return evaluateTimed(st, settingsOr[TimedSettings](a), now)
	default:
		st.StatusText, st.Reason = "Invisible", ReasonInvisible
		return st
	}
}

func evaluateOpen(st Status, s OpenSettings, now time.Time) Status {
	if s.OpenDate == nil || !now.Before(*s.OpenDate) {
		return available(st)
	}
	st.OpensAt = *s.OpenDate
	st.StatusText = "Opens " + s.OpenDate.In(now.Location()).Format(dateLayout)
	st.Reason = ReasonNotOpenYet
	return st
}

func evaluateLater(st Status, s LaterSettings, now time.Time) Status {
	if s.StartedAt == nil {
		st = available(st)
		st.Reason = ReasonGrace
		return st
	}
	remaining := s.StartedAt.Add(time.Duration(s.Minutes) * time.Minute).Sub(now)
	if remaining <= 0 {
		st.StatusText, st.Reason = "Expired", ReasonExpired
		return st
	}
	st.Available = true
	st.Reason = ReasonAvailable
	st.Remaining = remaining
	st.StatusText = fmt.Sprintf("Available for %d more min", ceilMinutes(remaining))
	return st
}

func evaluateMaxContact(st Status, s MaxContactSettings) Status {
	left := s.Max - s.Current
	if left <= 0 {
		st.StatusText, st.Reason = "Max contacts reached", ReasonMaxContacts
		return st
	}
	st.Available = true
	st.Reason = ReasonAvailable
	st.SlotsLeft = left
	if left == 1 {
		st.StatusText = "1 slot left"
	} else {
		st.StatusText = fmt.Sprintf("%d slots left", left)
	}
	return st
}

// evaluateTimed opens at Hour:Minute of now's local day and stays open
// until midnight; the window starts over every day.
func evaluateTimed(st Status, s TimedSettings, now time.Time) Status {
	opens := OpensToday(s, now)
	if !now.Before(opens) {
		return available(st)
	}
	st.OpensAt = opens
	st.StatusText = "Available at " + opens.Format(timeLayout)
	st.Reason = ReasonNotYet
	return st
}

// OpensToday is the brown opening instant on now's calendar day in now's location.
func OpensToday(s TimedSettings, now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, s.Hour, s.Minute, 0, 0, now.Location())
}

func available(st Status) Status {
	st.Available = true
	st.StatusText = "Available"
	st.Reason = ReasonAvailable
	return st
}

func ceilMinutes(d time.Duration) int {
	return int(math.Ceil(d.Minutes()))
}

// settingsOr returns a's settings as T, or the mode default when absent or mismatched.
func settingsOr[T Settings](a Availability) T {
	if s, ok := a.Settings.(T); ok {
		return s
	}
	if s, ok := DefaultSettings(a.Mode).(T); ok {
		return s
	}
	var zero T
	return zero
}
