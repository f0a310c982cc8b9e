package conversation

import (
	"testing"
	"time"
)

const owner = "current-user"

func at(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func started(t *testing.T, l List, userID string, now time.Time) List {
	t.Helper()
	out, _, created := Start(l, userID, "green", now, "conv-"+userID)
	if !created {
		t.Fatalf("expected conversation with %s to be created", userID)
	}
	return out
}

func TestStartCreatesOncePerUser(t *testing.T) {
	t.Parallel()

	l := started(t, nil, "alex", at(0))
	l = started(t, l, "blair", at(10))

	if l[0].UserID != "blair" || l[1].UserID != "alex" {
		t.Fatalf("order = %s,%s, want blair,alex", l[0].UserID, l[1].UserID)
	}
	if l[0].TimerStarted != nil {
		t.Fatal("expected new conversation without timer")
	}

	again, c, created := Start(l, "alex", "red", at(20), "conv-other")
	if created {
		t.Fatal("expected existing conversation to be reused")
	}
	if c.ID != "conv-alex" || c.PreviousMode != "green" {
		t.Fatalf("conversation = %+v, want unchanged", c)
	}
	if len(again) != 2 || again[0].UserID != "blair" {
		t.Fatal("opening an existing chat must not reorder the list")
	}
}

func TestSendStartsTimerOnFirstMessage(t *testing.T) {
	t.Parallel()

	l := started(t, nil, "alex", at(0))
	l, ok := Send(l, owner, "alex", "hi", at(1000), "m1")
	if !ok {
		t.Fatal("expected send to apply")
	}

	c := l[0]
	if c.TimerStarted == nil || !c.TimerStarted.Equal(at(1000)) {
		t.Fatalf("TimerStarted = %v, want %v", c.TimerStarted, at(1000))
	}
	if c.Rated {
		t.Fatal("expected Rated = false")
	}
	if len(c.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(c.Messages))
	}
	if !c.WaitingForResponse || c.TheyRespondedLast {
		t.Fatalf("waiting=%v theyRespondedLast=%v", c.WaitingForResponse, c.TheyRespondedLast)
	}
	if c.LastMessage != "You: hi" || c.LastMessageSenderID != owner {
		t.Fatalf("last message = %q from %q", c.LastMessage, c.LastMessageSenderID)
	}
}

func TestSendKeepsRunningTimer(t *testing.T) {
	t.Parallel()

	l := started(t, nil, "alex", at(0))
	l, _ = Send(l, owner, "alex", "one", at(1000), "m1")
	l, _ = Send(l, owner, "alex", "two", at(60_000), "m2")

	if !l[0].TimerStarted.Equal(at(1000)) {
		t.Fatalf("TimerStarted = %v, want unchanged", l[0].TimerStarted)
	}
	if len(l[0].Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(l[0].Messages))
	}
}

func TestSendRestartsAfterExpiryOrRating(t *testing.T) {
	t.Parallel()

	l := started(t, nil, "alex", at(0))
	l, _ = Send(l, owner, "alex", "one", at(1000), "m1")
	l, _ = Send(l, owner, "alex", "late", at(121_000), "m2")
	if !l[0].TimerStarted.Equal(at(121_000)) {
		t.Fatalf("TimerStarted = %v, want restart at expiry boundary", l[0].TimerStarted)
	}

	l, _ = MarkRated(l, "alex", false, "Spam messages")
	l, _ = Send(l, owner, "alex", "again", at(130_000), "m3")
	c := l[0]
	if !c.TimerStarted.Equal(at(130_000)) {
		t.Fatalf("TimerStarted = %v, want restart after rating", c.TimerStarted)
	}
	if c.Rated || c.TimerExpired || c.RatingType != RatingNone || c.RatingReason != "" {
		t.Fatalf("rating state not cleared: %+v", c)
	}
}

func TestSendNoOps(t *testing.T) {
	t.Parallel()

	l := started(t, nil, "alex", at(0))
	tests := []struct {
		name, owner, user, text string
	}{
		{name: "no owner", owner: "", user: "alex", text: "hi"},
		{name: "unknown conversation", owner: owner, user: "nobody", text: "hi"},
		{name: "blank text", owner: owner, user: "alex", text: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := Send(l, tt.owner, tt.user, tt.text, at(1000), "m1")
			if ok {
				t.Fatal("expected no-op")
			}
			if out[0].TimerStarted != nil || len(out[0].Messages) != 0 {
				t.Fatalf("conversation mutated: %+v", out[0])
			}
		})
	}
}

func TestSendMovesToFrontWithoutMutatingInput(t *testing.T) {
	t.Parallel()

	l := started(t, nil, "alex", at(0))
	l = started(t, l, "blair", at(1))
	l = started(t, l, "casey", at(2))

	out, _ := Send(l, owner, "alex", "hey", at(5000), "m1")
	got := []string{out[0].UserID, out[1].UserID, out[2].UserID}
	want := []string{"alex", "casey", "blair"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if l[2].UserID != "alex" || len(l[2].Messages) != 0 {
		t.Fatal("input list was mutated")
	}
}

func TestReceive(t *testing.T) {
	t.Parallel()

	l := started(t, nil, "alex", at(0))
	l = started(t, l, "blair", at(1))
	l, _ = Send(l, owner, "alex", "hi", at(1000), "m1")
	l, _ = Send(l, owner, "blair", "yo", at(2000), "m2")

	l, ok := Receive(l, owner, "alex", "hello", at(3000), "m3")
	if !ok {
		t.Fatal("expected receive to apply")
	}
	c := l[0]
	if c.UserID != "alex" {
		t.Fatalf("front = %s, want alex", c.UserID)
	}
	if !c.TimerStarted.Equal(at(1000)) {
		t.Fatal("receive must not touch the timer")
	}
	if !c.Messages[0].Seen {
		t.Fatal("expected owner message marked seen")
	}
	if c.Messages[1].Seen {
		t.Fatal("inbound message should not be seen")
	}
	if !c.HasOtherUserReplied || c.WaitingForResponse || !c.TheyRespondedLast {
		t.Fatalf("flags = replied:%v waiting:%v theyLast:%v", c.HasOtherUserReplied, c.WaitingForResponse, c.TheyRespondedLast)
	}
	if c.LastMessage != "hello" {
		t.Fatalf("LastMessage = %q", c.LastMessage)
	}
}

func TestReceiveDoesNotDeduplicate(t *testing.T) {
	t.Parallel()

	l := started(t, nil, "alex", at(0))
	l, _ = Receive(l, owner, "alex", "ping", at(1000), "m1")
	l, _ = Receive(l, owner, "alex", "ping", at(1000), "m2")

	if n := len(l[0].Messages); n != 2 {
		t.Fatalf("messages = %d, want 2", n)
	}
	if l[0].Messages[0].ID == l[0].Messages[1].ID {
		t.Fatal("expected distinct message ids")
	}
	if l[0].TimerStarted != nil {
		t.Fatal("receive started a timer")
	}
}

func TestMarkRated(t *testing.T) {
	t.Parallel()

	l := started(t, nil, "alex", at(0))
	l, _ = Send(l, owner, "alex", "hi", at(1000), "m1")

	out, ok := MarkRated(l, "alex", false, " Spam messages ")
	if !ok {
		t.Fatal("expected mark rated")
	}
	c := out[0]
	if !c.Rated || !c.TimerExpired || c.RatingType != RatingBad || c.RatingReason != "Spam messages" {
		t.Fatalf("rated conversation = %+v", c)
	}
	if l[0].Rated {
		t.Fatal("input list was mutated")
	}

	if _, ok := MarkRated(l, "nobody", true, ""); ok {
		t.Fatal("expected missing conversation to be reported")
	}
}
