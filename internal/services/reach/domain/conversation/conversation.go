// Package conversation tracks per-conversation response deadlines.
//
// A conversation moves NoTimer -> Active -> (Expired | Rated). Only the
// timer start and the rated flag are stored; expiry and remaining time are
// derived from a clock reading. Lists are ordered by most recent activity
// and every operation returns a new list, leaving its input untouched.
package conversation

import (
	"strings"
	"time"
)

// TimerDuration is the response window opened by an outbound message.
const TimerDuration = 120 * time.Second

// RatingType records the outcome of a rated cycle.
type RatingType string

const (
	RatingNone RatingType = ""
	RatingGood RatingType = "good"
	RatingBad  RatingType = "bad"
)

// Message is one entry in a conversation.
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Seen      bool      `json:"seen"`
}

// Conversation is the owner's thread with UserID.
type Conversation struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Messages []Message `json:"messages"`

	TimerStarted *time.Time `json:"timerStarted"`
	TimerExpired bool       `json:"timerExpired"`
	Rated        bool       `json:"rated"`
	RatingType   RatingType `json:"ratingType,omitempty"`
	RatingReason string     `json:"ratingReason,omitempty"`

	WaitingForResponse  bool `json:"waitingForResponse"`
	TheyRespondedLast   bool `json:"theyRespondedLast"`
	HasOtherUserReplied bool `json:"hasOtherUserReplied"`

	LastMessage         string    `json:"lastMessage"`
	LastMessageTime     time.Time `json:"lastMessageTime"`
	LastMessageSenderID string    `json:"lastMessageSenderId,omitempty"`
	PreviousMode        string    `json:"previousMode,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Clone returns a deep copy.
func (c Conversation) Clone() Conversation {
	out := c
	if c.Messages != nil {
		out.Messages = append([]Message(nil), c.Messages...)
	}
	if c.TimerStarted != nil {
		started := *c.TimerStarted
		out.TimerStarted = &started
	}
	return out
}

// List holds an owner's conversations, most recent activity first.
type List []Conversation

// Find returns the conversation with userID.
func (l List) Find(userID string) (Conversation, bool) {
	i := l.index(userID)
	if i < 0 {
		return Conversation{}, false
	}
	return l[i].Clone(), true
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	for i, c := range l {
		out[i] = c.Clone()
	}
	return out
}

func (l List) index(userID string) int {
	for i := range l {
		if l[i].UserID == userID {
			return i
		}
	}
	return -1
}

// withFront returns a copy of l with updated placed first and the entry
// previously at index i removed.
func (l List) withFront(i int, updated Conversation) List {
	out := make(List, 0, len(l))
	out = append(out, updated)
	for j, c := range l {
		if j != i {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Start returns the conversation with userID, creating it at the front of
// the list with no timer when absent. Existing conversations are returned
// as-is; opening a chat never touches its timer.
func Start(l List, userID, previousMode string, now time.Time, id string) (List, Conversation, bool) {
	if i := l.index(userID); i >= 0 {
		return l.Clone(), l[i].Clone(), false
	}
	c := Conversation{
		ID:              id,
		UserID:          userID,
		Messages:        []Message{},
		LastMessageTime: now,
		PreviousMode:    previousMode,
		CreatedAt:       now,
	}
	return l.withFront(-1, c), c.Clone(), true
}

// NeedsNewCycle reports whether an outbound message at now opens a new
// timer: no timer yet, the last cycle was rated, or the window elapsed.
func NeedsNewCycle(c Conversation, now time.Time) bool {
	if c.TimerStarted == nil || c.Rated {
		return true
	}
	return now.Sub(*c.TimerStarted) >= TimerDuration
}

// Send appends an outbound message from ownerID. It is a no-op without an
// owner, a conversation with userID, or message text.
func Send(l List, ownerID, userID, text string, now time.Time, msgID string) (List, bool) {
	text = strings.TrimSpace(text)
	if strings.TrimSpace(ownerID) == "" || text == "" {
		return l, false
	}
	i := l.index(userID)
	if i < 0 {
		return l, false
	}

	c := l[i].Clone()
	if NeedsNewCycle(c, now) {
		started := now
		c.TimerStarted = &started
		c.Rated = false
		c.RatingType = RatingNone
		c.RatingReason = ""
	}
	c.TimerExpired = false
	c.Messages = append(c.Messages, Message{ID: msgID, SenderID: ownerID, Text: text, Timestamp: now})
	c.WaitingForResponse = true
	c.TheyRespondedLast = false
	c.LastMessage = "You: " + text
	c.LastMessageTime = now
	c.LastMessageSenderID = ownerID
	return l.withFront(i, c), true
}

// Receive appends an inbound message from userID. The timer is never
// touched; the owner's earlier messages become seen. Identical calls
// append distinct messages.
func Receive(l List, ownerID, userID, text string, now time.Time, msgID string) (List, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return l, false
	}
	i := l.index(userID)
	if i < 0 {
		return l, false
	}

	c := l[i].Clone()
	for j := range c.Messages {
		if c.Messages[j].SenderID == ownerID {
			c.Messages[j].Seen = true
		}
	}
	c.Messages = append(c.Messages, Message{ID: msgID, SenderID: userID, Text: text, Timestamp: now})
	c.HasOtherUserReplied = true
	c.WaitingForResponse = false
	c.TheyRespondedLast = true
	c.LastMessage = text
	c.LastMessageTime = now
	c.LastMessageSenderID = userID
	return l.withFront(i, c), true
}

// MarkRated closes the current cycle with a rating. It does not reorder
// the list. Callers check CanRate first.
func MarkRated(l List, userID string, isGood bool, reason string) (List, bool) {
	i := l.index(userID)
	if i < 0 {
		return l, false
	}
	out := l.Clone()
	c := &out[i]
	c.Rated = true
	c.TimerExpired = true
	if isGood {
		c.RatingType = RatingGood
		c.RatingReason = ""
	} else {
		c.RatingType = RatingBad
		c.RatingReason = strings.TrimSpace(reason)
	}
	return out, true
}
