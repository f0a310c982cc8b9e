package app

import (
	"context"
	"time"

	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
	"github.com/louisbranch/aviato/internal/services/reach/domain/conversation"
	"github.com/louisbranch/aviato/internal/services/reach/render"
)

// DefaultTick is the chat-list refresh interval.
const DefaultTick = time.Second

// ChatRow is one derived chat-list entry.
type ChatRow struct {
	Conversation conversation.Conversation
	Contact      ModeView
	Phase        conversation.Phase
	Remaining    time.Duration
	Countdown    string
	Tone         conversation.Tone
	Status       string
}

// ChatList derives the display rows for every conversation at the session
// clock. It never mutates state.
func (s *Session) ChatList() []ChatRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatList(s.clock())
}

func (s *Session) chatList(now time.Time) []ChatRow {
	rows := make([]ChatRow, 0, len(s.conversations))
	for _, c := range s.conversations {
		contact := availability.Status{Available: true, Reason: availability.ReasonAvailable}
		view := ModeView{UserID: c.UserID, DisplayMode: availability.ModeGray, StatusText: "Unknown"}
		if u, ok := s.directory.Find(c.UserID); ok {
			contact = availability.Evaluate(u.Availability, now)
			view = s.modeView(u)
		}
		phase := conversation.PhaseOf(c, now)
		left := conversation.Remaining(c, now)
		rows = append(rows, ChatRow{
			Conversation: c.Clone(),
			Contact:      view,
			Phase:        phase,
			Remaining:    left,
			Countdown:    conversation.FormatRemaining(left),
			Tone:         conversation.ToneOf(left),
			Status:       render.ChatStatus(s.loc, phase, left, contact),
		})
	}
	return rows
}

// Watch recomputes the chat list every interval and passes it to fn until
// ctx is done. It only reads state.
func (s *Session) Watch(ctx context.Context, interval time.Duration, fn func([]ChatRow)) error {
	if interval <= 0 {
		interval = DefaultTick
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fn(s.ChatList())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(s.ChatList())
		}
	}
}
