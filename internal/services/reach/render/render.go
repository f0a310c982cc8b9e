// Package render produces localized copy for availability statuses, chat
// list rows and session notices.
package render

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
	"github.com/louisbranch/aviato/internal/services/reach/domain/conversation"
)

// Localizer is the message-printer contract the renderer needs.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

var supported = []language.Tag{language.English, language.BrazilianPortuguese}

var matcher = language.NewMatcher(supported)

// NewPrinter returns a printer for the best supported match of locale.
func NewPrinter(locale string) *message.Printer {
	return message.NewPrinter(Match(locale))
}

// Match resolves locale to a supported tag, defaulting to English.
func Match(locale string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(strings.TrimSpace(locale))
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return language.English
	}
	return supported[index]
}

// ModeLabel is the localized mode name.
func ModeLabel(loc Localizer, m availability.Mode) string {
	return localizeWithFallback(loc, "reach.mode."+m.String(), m.Label())
}

// Status localizes an availability evaluation.
func Status(loc Localizer, st availability.Status) string {
	switch st.Reason {
	case availability.ReasonAvailable, availability.ReasonGrace:
		switch {
		case st.Mode == availability.ModeOrange && st.SlotsLeft > 0:
			return localizeWithFallback(loc, "reach.status.slots_left", st.StatusText, st.SlotsLeft)
		case st.Mode == availability.ModeYellow && st.Remaining > 0:
			return localizeWithFallback(loc, "reach.status.minutes_left", st.StatusText, ceilMinutes(st.Remaining))
		}
		return localizeWithFallback(loc, "reach.status.available", st.StatusText)
	case availability.ReasonInvisible:
		return localizeWithFallback(loc, "reach.status.invisible", st.StatusText)
	case availability.ReasonLocked:
		return localizeWithFallback(loc, "reach.status.locked", st.StatusText)
	case availability.ReasonPaused:
		return localizeWithFallback(loc, "reach.status.paused", st.StatusText)
	case availability.ReasonExpired:
		return localizeWithFallback(loc, "reach.status.expired", st.StatusText)
	case availability.ReasonMaxContacts:
		return localizeWithFallback(loc, "reach.status.max_contacts", st.StatusText)
	case availability.ReasonNotOpenYet:
		return localizeWithFallback(loc, "reach.status.opens", st.StatusText, Date(loc, st.OpensAt))
	case availability.ReasonNotYet:
		return localizeWithFallback(loc, "reach.status.available_at", st.StatusText, Clock(loc, st.OpensAt))
	default:
		return st.StatusText
	}
}

// ModeRestriction is the chat-list text shown while a contact's mode blocks
// messaging. It is empty when the contact is reachable or the mode has no
// dedicated copy.
func ModeRestriction(loc Localizer, st availability.Status) string {
	if st.Available {
		return ""
	}
	switch st.Reason {
	case availability.ReasonLocked:
		return localizeWithFallback(loc, "reach.restriction.locked", "User locked messaging")
	case availability.ReasonPaused:
		return localizeWithFallback(loc, "reach.restriction.paused", "User paused messaging")
	case availability.ReasonMaxContacts:
		return localizeWithFallback(loc, "reach.restriction.max_contacts", "Max contacts reached")
	case availability.ReasonNotOpenYet:
		date := Date(loc, st.OpensAt)
		return localizeWithFallback(loc, "reach.restriction.opens", "Available: "+date, date)
	case availability.ReasonNotYet:
		at := Clock(loc, st.OpensAt)
		return localizeWithFallback(loc, "reach.restriction.available_at", "Available at: "+at, at)
	default:
		return ""
	}
}

// ChatStatus is the status line of one chat-list row. An expired, unrated
// window always reads as pending; otherwise a blocking mode wins over the
// timer text.
func ChatStatus(loc Localizer, phase conversation.Phase, remaining time.Duration, contact availability.Status) string {
	if phase == conversation.PhaseExpired {
		return localizeWithFallback(loc, "reach.chat.expired", "Expired • Rate pending")
	}
	if restriction := ModeRestriction(loc, contact); restriction != "" {
		return restriction
	}
	switch phase {
	case conversation.PhaseRated:
		return localizeWithFallback(loc, "reach.chat.rated", "✓ Rated")
	case conversation.PhaseNoTimer:
		return localizeWithFallback(loc, "reach.chat.waiting", "Waiting to start")
	default:
		left := conversation.FormatRemaining(remaining)
		return localizeWithFallback(loc, "reach.chat.remaining", left+" remaining", left)
	}
}

// Date formats t with the locale's date layout.
func Date(loc Localizer, t time.Time) string {
	return t.Format(localizeWithFallback(loc, "reach.layout.date", "Jan 2, 2006"))
}

// Clock formats t with the locale's time-of-day layout.
func Clock(loc Localizer, t time.Time) string {
	return t.Format(localizeWithFallback(loc, "reach.layout.clock", "3:04 PM"))
}

func localize(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		if asString, ok := key.(string); ok {
			return asString
		}
		return ""
	}
	return loc.Sprintf(key, args...)
}

func localizeWithFallback(loc Localizer, key string, fallback string, args ...any) string {
	value := strings.TrimSpace(localize(loc, key, args...))
	if value == "" || value == key {
		return fallback
	}
	return value
}

func ceilMinutes(d time.Duration) int {
	m := int(d / time.Minute)
	if d%time.Minute != 0 {
		m++
	}
	return m
}
