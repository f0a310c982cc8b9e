package scenario

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/aviato/internal/platform/errors"
	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
)

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

// expectOutcome compares an action's error with its expect_error code.
// Without expect_error the action error is returned as is.
func (r *Runner) expectOutcome(step Step, err error) error {
	want := strings.ToUpper(optionalString(step.Args, "expect_error", ""))
	if want == "" {
		return err
	}
	if err == nil {
		return r.assertf("%s succeeded, want error %s", describeStep(step), want)
	}
	if got := string(apperrors.CodeOf(err)); got != want {
		return r.assertf("%s error = %s (%v), want %s", describeStep(step), got, err, want)
	}
	r.logf("%s failed as expected: %v", describeStep(step), err)
	return nil
}

// settingsFromArgs builds the settings variant for mode from script keys.
// It returns nil when no key for mode is present.
func settingsFromArgs(mode availability.Mode, args map[string]any, now time.Time) (availability.Settings, error) {
	switch mode {
	case availability.ModeBlue:
		raw := optionalString(args, "open_date", "")
		if raw == "" {
			return nil, nil
		}
		opens, err := parseClock(raw, now)
		if err != nil {
			return nil, fmt.Errorf("open_date: %w", err)
		}
		return availability.OpenSettings{OpenDate: &opens}, nil
	case availability.ModeYellow:
		minutes, ok := readInt(args, "later_minutes")
		if !ok {
			return nil, nil
		}
		return availability.LaterSettings{Minutes: minutes}, nil
	case availability.ModeOrange:
		limit, ok := readInt(args, "max_contact")
		if !ok {
			return nil, nil
		}
		return availability.MaxContactSettings{Max: limit}, nil
	case availability.ModeBrown:
		raw := optionalString(args, "timed_at", "")
		if raw == "" {
			return nil, nil
		}
		at, err := time.Parse("15:04", raw)
		if err != nil {
			return nil, fmt.Errorf("timed_at must be HH:MM: %w", err)
		}
		return availability.TimedSettings{Hour: at.Hour(), Minute: at.Minute()}, nil
	default:
		return nil, nil
	}
}

// parseClock accepts RFC3339, a YYYY-MM-DD date, or an HH:MM time on the
// current day.
func parseClock(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("time is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, now.Location()); err == nil {
		return t, nil
	}
	clock, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
}

// optionalTime reads key as a time. "now" maps to now; a missing key is nil.
func optionalTime(args map[string]any, key string, now time.Time) (*time.Time, error) {
	raw := optionalString(args, key, "")
	if raw == "" {
		return nil, nil
	}
	if raw == "now" {
		return &now, nil
	}
	t, err := parseClock(raw, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &t, nil
}

// readDuration reads key as seconds or a Go duration string.
func readDuration(args map[string]any, key string) (time.Duration, error) {
	switch typed := args[key].(type) {
	case int:
		return time.Duration(typed) * time.Second, nil
	case float64:
		return time.Duration(typed * float64(time.Second)), nil
	case string:
		return time.ParseDuration(strings.TrimSpace(typed))
	default:
		return 0, fmt.Errorf("%s must be seconds or a duration", key)
	}
}

func stringList(args map[string]any, key string) ([]string, error) {
	value, ok := args[key]
	if !ok || value == nil {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		if _, empty := value.(map[string]any); empty {
			return nil, nil
		}
		return nil, fmt.Errorf("%s must be a list", key)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		text, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s entries must be strings", key)
		}
		out = append(out, text)
	}
	return out, nil
}

func requiredString(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return ""
}

func readInt(args map[string]any, key string) (int, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case int:
		return typed, true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}

func readFloat(args map[string]any, key string) (float64, bool) {
	switch typed := args[key].(type) {
	case int:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}

func optionalString(args map[string]any, key, fallback string) string {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return fallback
}

func optionalInt(args map[string]any, key string, fallback int) int {
	if value, ok := readInt(args, key); ok {
		return value
	}
	return fallback
}

func optionalBool(args map[string]any, key string, fallback bool) bool {
	if value, ok := readBool(args, key); ok {
		return value
	}
	return fallback
}

func readBool(args map[string]any, key string) (bool, bool) {
	value, ok := args[key]
	if !ok {
		return false, false
	}
	switch typed := value.(type) {
	case bool:
		return typed, true
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	}
	return false, false
}
