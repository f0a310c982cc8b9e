package availability

import "time"

// Activate switches to mode. Nil settings mean the mode's defaults. An
// already-active mode is only re-activated when new settings are given.
// Activating yellow without a start time starts the window at now. Contacts
// already taken survive every switch; orange settings with a zero Current
// pick the count back up.
func Activate(current Availability, mode Mode, settings Settings, now time.Time) (Availability, error) {
	if mode == ModeInvisible {
		return Deactivate(current), nil
	}
	if !known(mode) {
		return current, ErrUnknownMode.WithMetadata(map[string]string{"Mode": string(mode)})
	}
	if current.Mode == mode && settings == nil {
		return current, ErrModeAlreadyActive.WithMetadata(map[string]string{"Mode": mode.Label()})
	}
	if settings == nil {
		settings = DefaultSettings(mode)
	}
	if settings != nil {
		if settings.Mode() != mode {
			return current, invalid(mode, "settings belong to "+settings.Mode().Label())
		}
		if err := settings.validate(); err != nil {
			return current, err
		}
	}
	if later, ok := settings.(LaterSettings); ok && later.StartedAt == nil {
		started := now
		later.StartedAt = &started
		settings = later
	}
	taken := current.ContactsTaken()
	if maxContact, ok := settings.(MaxContactSettings); ok && maxContact.Current == 0 {
		maxContact.Current = taken
		settings = maxContact
	}
	next := Availability{Mode: mode, Settings: settings}
	if mode != ModeOrange {
		next.Contacts = taken
	}
	return next, nil
}

// Deactivate clears the declared mode, leaving the user invisible with
// their contact count intact.
func Deactivate(current Availability) Availability {
	return Availability{Contacts: current.ContactsTaken()}
}

// IncrementContacts records one more conversation against an orange
// capacity. It reports false and returns a unchanged for other modes.
func IncrementContacts(a Availability) (Availability, bool) {
	if a.Mode != ModeOrange {
		return a, false
	}
	s := settingsOr[MaxContactSettings](a)
	s.Current++
	return Availability{Mode: ModeOrange, Settings: s}, true
}

func known(m Mode) bool {
	for _, candidate := range Modes {
		if candidate == m {
			return true
		}
	}
	return false
}
