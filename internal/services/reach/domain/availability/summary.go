package availability

import (
	"fmt"
	"time"
)

// Summary describes the active settings, e.g. "2/5 slots available".
func Summary(a Availability, now time.Time) string {
	switch a.Mode {
	case ModeGreen:
		return "Visible to everyone"
	case ModeRed:
		return "All messaging blocked"
	case ModeGray:
		return "Messaging paused"
	case ModeBlue:
		s := settingsOr[OpenSettings](a)
		if s.OpenDate == nil {
			return "Open now"
		}
		return "Opens " + s.OpenDate.In(now.Location()).Format(dateLayout)
	case ModeYellow:
		s := settingsOr[LaterSettings](a)
		if s.StartedAt == nil {
			return fmt.Sprintf("Expires in %d minutes", s.Minutes)
		}
		left := s.StartedAt.Add(time.Duration(s.Minutes) * time.Minute).Sub(now)
		if left <= 0 {
			return "Expired"
		}
		return fmt.Sprintf("Expires in %d minutes", ceilMinutes(left))
	case ModeOrange:
		s := settingsOr[MaxContactSettings](a)
		return fmt.Sprintf("%d/%d slots available", s.Current, s.Max)
	case ModeBrown:
		s := settingsOr[TimedSettings](a)
		return "Opens at " + OpensToday(s, now).Format(timeLayout)
	default:
		return "Hidden from everyone"
	}
}
