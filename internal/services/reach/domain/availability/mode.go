// Package availability decides whether a user can be messaged right now.
//
// A user declares exactly one Mode. Modes that depend on time or capacity
// carry a typed Settings variant; Evaluate turns the pair plus a clock
// reading into a Status snapshot without side effects.
package availability

import (
	"strings"

	apperrors "github.com/louisbranch/aviato/internal/platform/errors"
)

// Mode is a declared availability state. The zero value is invisible.
type Mode string

const (
	ModeInvisible Mode = ""
	ModeGreen     Mode = "green"
	ModeBlue      Mode = "blue"
	ModeYellow    Mode = "yellow"
	ModeOrange    Mode = "orange"
	ModeRed       Mode = "red"
	ModeGray      Mode = "gray"
	ModeBrown     Mode = "brown"
)

const invisibleAlias = "invisible"

// Modes lists every declarable mode in display order.
var Modes = []Mode{ModeGreen, ModeBlue, ModeYellow, ModeOrange, ModeRed, ModeGray, ModeBrown}

// ParseMode accepts a mode name case-insensitively. "", "none" and
// "invisible" map to ModeInvisible.
func ParseMode(value string) (Mode, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "none", "null", invisibleAlias:
		return ModeInvisible, nil
	}
	for _, m := range Modes {
		if string(m) == v {
			return m, nil
		}
	}
	return ModeInvisible, ErrUnknownMode.WithMetadata(map[string]string{"Mode": value})
}

// String returns the mode name, "invisible" for the zero mode.
func (m Mode) String() string {
	if m == ModeInvisible {
		return invisibleAlias
	}
	return string(m)
}

// Label is the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeGreen:
		return "Available"
	case ModeBlue:
		return "Open"
	case ModeYellow:
		return "Later"
	case ModeOrange:
		return "Max Contact"
	case ModeRed:
		return "Locked"
	case ModeGray:
		return "Paused"
	case ModeBrown:
		return "Timed"
	default:
		return "Invisible"
	}
}

// Color is the hex color associated with the mode.
func (m Mode) Color() string {
	switch m {
	case ModeGreen:
		return "#10B981"
	case ModeBlue:
		return "#0066FF"
	case ModeYellow:
		return "#FBBF24"
	case ModeOrange:
		return "#F97316"
	case ModeRed:
		return "#DC2626"
	case ModeBrown:
		return "#92400E"
	default:
		return "#9CA3AF"
	}
}

// Emoji is the badge shown next to the mode label.
func (m Mode) Emoji() string {
	switch m {
	case ModeGreen:
		return "🟢"
	case ModeBlue:
		return "🔵"
	case ModeYellow:
		return "🟡"
	case ModeOrange:
		return "🟠"
	case ModeRed:
		return "🔴"
	case ModeGray:
		return "⚪"
	case ModeBrown:
		return "🟤"
	default:
		return "👻"
	}
}

var (
	ErrUnknownMode       = apperrors.New(apperrors.CodeModeUnknown, "unknown availability mode")
	ErrModeAlreadyActive = apperrors.New(apperrors.CodeModeAlreadyActive, "availability mode already active")
	ErrInvalidSettings   = apperrors.New(apperrors.CodeSettingsInvalid, "invalid availability settings")
)
