package availability

import (
	"encoding/json"
	"fmt"
	"time"
)

// Settings is the mode-specific payload. Only blue, yellow, orange and
// brown carry settings; each has exactly one variant.
type Settings interface {
	Mode() Mode
	validate() error
}

// OpenSettings configures blue mode. A nil OpenDate means open now.
type OpenSettings struct {
	OpenDate *time.Time `json:"openDate,omitempty"`
}

// LaterSettings configures yellow mode: reachable for Minutes after StartedAt.
type LaterSettings struct {
	Minutes   int        `json:"laterMinutes"`
	StartedAt *time.Time `json:"laterStartTime,omitempty"`
}

// MaxContactSettings configures orange mode: reachable until Current hits Max.
type MaxContactSettings struct {
	Max     int `json:"maxContact"`
	Current int `json:"currentContacts"`
}

// TimedSettings configures brown mode: reachable from Hour:Minute local time.
type TimedSettings struct {
	Hour   int `json:"timedHour"`
	Minute int `json:"timedMinute"`
}

func (OpenSettings) Mode() Mode       { return ModeBlue }
func (LaterSettings) Mode() Mode      { return ModeYellow }
func (MaxContactSettings) Mode() Mode { return ModeOrange }
func (TimedSettings) Mode() Mode      { return ModeBrown }

func (OpenSettings) validate() error { return nil }

func (s LaterSettings) validate() error {
	if s.Minutes <= 0 {
		return invalid(ModeYellow, "minutes must be positive")
	}
	return nil
}

func (s MaxContactSettings) validate() error {
	if s.Max <= 0 {
		return invalid(ModeOrange, "max contacts must be positive")
	}
	if s.Current < 0 {
		return invalid(ModeOrange, "current contacts cannot be negative")
	}
	return nil
}

func (s TimedSettings) validate() error {
	if s.Hour < 0 || s.Hour > 23 {
		return invalid(ModeBrown, "hour must be between 0 and 23")
	}
	if s.Minute < 0 || s.Minute > 59 {
		return invalid(ModeBrown, "minute must be between 0 and 59")
	}
	return nil
}

func invalid(m Mode, reason string) error {
	return ErrInvalidSettings.WithMetadata(map[string]string{"Mode": m.Label(), "Reason": reason})
}

// DefaultSettings returns the settings a mode starts with when none are given.
func DefaultSettings(m Mode) Settings {
	switch m {
	case ModeBlue:
		return OpenSettings{}
	case ModeYellow:
		return LaterSettings{Minutes: 30}
	case ModeOrange:
		return MaxContactSettings{Max: 5}
	case ModeBrown:
		return TimedSettings{Hour: 9}
	default:
		return nil
	}
}

// Availability is a declared mode with its settings variant. Contacts
// holds the orange contact count while another mode is active.
type Availability struct {
	Mode     Mode
	Settings Settings
	Contacts int
}

// ContactsTaken returns the orange contact count, whatever the mode.
func (a Availability) ContactsTaken() int {
	if s, ok := a.Settings.(MaxContactSettings); ok {
		return s.Current
	}
	return a.Contacts
}

// Invisible is the availability of a user who declared no mode.
func Invisible() Availability {
	return Availability{}
}

// Green is the always-available availability new accounts start with.
func Green() Availability {
	return Availability{Mode: ModeGreen}
}

type availabilityJSON struct {
	Mode     string          `json:"mode,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
	Contacts int             `json:"currentContacts,omitempty"`
}

// MarshalJSON encodes the mode and only its variant's fields.
func (a Availability) MarshalJSON() ([]byte, error) {
	out := availabilityJSON{Mode: string(a.Mode)}
	if _, ok := a.Settings.(MaxContactSettings); !ok {
		out.Contacts = a.Contacts
	}
	if a.Settings != nil {
		raw, err := json.Marshal(a.Settings)
		if err != nil {
			return nil, err
		}
		out.Settings = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the settings variant selected by mode.
func (a *Availability) UnmarshalJSON(data []byte) error {
	var in availabilityJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	mode, err := ParseMode(in.Mode)
	if err != nil {
		return err
	}
	var settings Settings
	if len(in.Settings) > 0 && string(in.Settings) != "null" {
		switch mode {
		case ModeBlue:
			var s OpenSettings
			err = json.Unmarshal(in.Settings, &s)
			settings = s
		case ModeYellow:
			var s LaterSettings
			err = json.Unmarshal(in.Settings, &s)
			settings = s
		case ModeOrange:
			var s MaxContactSettings
			err = json.Unmarshal(in.Settings, &s)
			settings = s
		case ModeBrown:
			var s TimedSettings
			err = json.Unmarshal(in.Settings, &s)
			settings = s
		}
		if err != nil {
			return fmt.Errorf("decode %s settings: %w", mode, err)
		}
	}
	if settings == nil {
		settings = DefaultSettings(mode)
	}
	*a = Availability{Mode: mode, Settings: settings}
	if _, ok := settings.(MaxContactSettings); !ok {
		a.Contacts = in.Contacts
	}
	return nil
}
