package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
	"github.com/louisbranch/aviato/internal/services/reach/domain/user"
	"github.com/louisbranch/aviato/internal/services/reach/render"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

// ModeView is how a user's availability reads to others right now.
type ModeView struct {
	UserID      string
	DisplayMode availability.Mode
	Label       string
	Color       string
	CanMessage  bool
	StatusText  string
	Reason      availability.Reason
	Summary     string
}

// SetAvailabilityMode activates mode for the current user. Nil settings
// use the mode's defaults; re-activating the active mode requires settings.
func (s *Session) SetAvailabilityMode(ctx context.Context, mode availability.Mode, settings availability.Settings) (_ user.User, err error) {
	ctx, finish := s.start(ctx, "SetAvailabilityMode", attribute.String("reach.mode", mode.String()))
	defer finish(&err)

	defer s.lock(ctx)()

	u, err := s.owner()
	if err != nil {
		return user.User{}, err
	}
	previous := u.Availability.Mode
	next, err := availability.Activate(u.Availability, mode, settings, s.clock())
	if err != nil {
		return user.User{}, err
	}
	u.Availability = next
	s.directory = s.directory.Put(u)
	s.persist(ctx, storage.KeyUsers, storage.KeyCurrentUser)

	if mode == availability.ModeInvisible {
		s.notify(render.ModeDeactivated(s.loc, previous), SeverityInfo)
	} else {
		s.notify(render.ModeActivated(s.loc, mode), SeveritySuccess)
	}
	return u.Clone(), nil
}

// DeactivateAvailability turns the current user's mode off, leaving them
// invisible.
func (s *Session) DeactivateAvailability(ctx context.Context) (user.User, error) {
	return s.SetAvailabilityMode(ctx, availability.ModeInvisible, nil)
}

// EvaluateUser evaluates a directory member's availability at the session clock.
func (s *Session) EvaluateUser(userID string) (availability.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.findUser(userID)
	if err != nil {
		return availability.Status{}, err
	}
	return availability.Evaluate(u.Availability, s.clock()), nil
}

// CurrentMode describes userID's availability. Unknown users read as gray,
// unreachable and "Unknown".
func (s *Session) CurrentMode(userID string) ModeView {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.findUser(userID)
	if err != nil {
		return ModeView{
			UserID:      userID,
			DisplayMode: availability.ModeGray,
			Label:       render.ModeLabel(s.loc, availability.ModeGray),
			Color:       availability.ModeGray.Color(),
			StatusText:  "Unknown",
		}
	}
	return s.modeView(u)
}

func (s *Session) modeView(u user.User) ModeView {
	now := s.clock()
	st := availability.Evaluate(u.Availability, now)
	return ModeView{
		UserID:      u.ID,
		DisplayMode: u.Availability.Mode,
		Label:       render.ModeLabel(s.loc, u.Availability.Mode),
		Color:       st.ModeColor,
		CanMessage:  st.Available,
		StatusText:  render.Status(s.loc, st),
		Reason:      st.Reason,
		Summary:     availability.Summary(u.Availability, now),
	}
}
