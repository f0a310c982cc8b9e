package app

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/aviato/internal/platform/timeouts"
	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
	"github.com/louisbranch/aviato/internal/services/reach/domain/conversation"
	"github.com/louisbranch/aviato/internal/services/reach/render"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

// StartChat opens the conversation with targetID. Existing conversations
// are returned untouched. A new one requires the target to be reachable
// and takes one of an orange target's contact slots.
func (s *Session) StartChat(ctx context.Context, targetID string) (_ conversation.Conversation, err error) {
	ctx, finish := s.start(ctx, "StartChat", attribute.String("reach.target_id", targetID))
	defer finish(&err)

	defer s.lock(ctx)()

	owner, err := s.owner()
	if err != nil {
		return conversation.Conversation{}, err
	}
	target, err := s.findUser(targetID)
	if err != nil {
		return conversation.Conversation{}, err
	}
	if target.ID == owner.ID {
		return conversation.Conversation{}, ErrUnavailable.WithMetadata(map[string]string{"UserID": target.ID, "Status": "self"})
	}
	if existing, ok := s.conversations.Find(target.ID); ok {
		return existing, nil
	}

	now := s.clock()
	st := availability.Evaluate(target.Availability, now)
	if !st.Available {
		return conversation.Conversation{}, ErrUnavailable.WithMetadata(map[string]string{
			"UserID": target.ID,
			"Status": render.Status(s.loc, st),
			"Reason": string(st.Reason),
		})
	}

	convID, err := s.nextID()
	if err != nil {
		return conversation.Conversation{}, err
	}
	list, c, _ := conversation.Start(s.conversations, target.ID, string(target.Availability.Mode), now, convID)
	s.conversations = list

	keys := []string{storage.KeyConversations}
	if next, ok := availability.IncrementContacts(target.Availability); ok {
		target.Availability = next
		s.directory = s.directory.Put(target)
		keys = append(keys, storage.KeyUsers)
	}
	s.persist(ctx, keys...)
	return c, nil
}

// SendMessage appends an outbound message to the conversation with
// targetID, opening a new response window when the last one is closed.
func (s *Session) SendMessage(ctx context.Context, targetID, text string) (_ conversation.Conversation, err error) {
	ctx, finish := s.start(ctx, "SendMessage", attribute.String("reach.target_id", targetID))
	defer finish(&err)

	defer s.lock(ctx)()

	owner, err := s.owner()
	if err != nil {
		return conversation.Conversation{}, err
	}
	if strings.TrimSpace(text) == "" {
		return conversation.Conversation{}, ErrEmptyMessage
	}
	if _, ok := s.conversations.Find(targetID); !ok {
		return conversation.Conversation{}, conversation.ErrNotFound.WithMetadata(map[string]string{"UserID": targetID})
	}
	msgID, err := s.nextID()
	if err != nil {
		return conversation.Conversation{}, err
	}
	list, _ := conversation.Send(s.conversations, owner.ID, targetID, text, s.clock(), msgID)
	s.conversations = list
	s.persist(ctx, storage.KeyConversations)
	c, _ := list.Find(targetID)
	return c, nil
}

// ReceiveMessage appends an inbound message from fromID. It never touches
// the response timer.
func (s *Session) ReceiveMessage(ctx context.Context, fromID, text string) (_ conversation.Conversation, err error) {
	ctx, finish := s.start(ctx, "ReceiveMessage", attribute.String("reach.from_id", fromID))
	defer finish(&err)

	defer s.lock(ctx)()

	owner, err := s.owner()
	if err != nil {
		return conversation.Conversation{}, err
	}
	if strings.TrimSpace(text) == "" {
		return conversation.Conversation{}, ErrEmptyMessage
	}
	if _, ok := s.conversations.Find(fromID); !ok {
		return conversation.Conversation{}, conversation.ErrNotFound.WithMetadata(map[string]string{"UserID": fromID})
	}
	msgID, err := s.nextID()
	if err != nil {
		return conversation.Conversation{}, err
	}
	list, _ := conversation.Receive(s.conversations, owner.ID, fromID, text, s.clock(), msgID)
	s.conversations = list
	s.persist(ctx, storage.KeyConversations)
	c, _ := list.Find(fromID)
	return c, nil
}

// Conversation returns the conversation with userID.
func (s *Session) Conversation(userID string) (conversation.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations.Find(userID)
	if !ok {
		return conversation.Conversation{}, conversation.ErrNotFound.WithMetadata(map[string]string{"UserID": userID})
	}
	return c, nil
}

// Conversations returns the owner's conversations, most recent first.
func (s *Session) Conversations() conversation.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations.Clone()
}

// DeleteAllChats removes every conversation.
func (s *Session) DeleteAllChats(ctx context.Context) (err error) {
	ctx, finish := s.start(ctx, "DeleteAllChats")
	defer finish(&err)

	defer s.lock(ctx)()

	if _, err = s.owner(); err != nil {
		return err
	}
	s.conversations = nil
	if !s.degraded {
		removeCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
		defer cancel()
		if removeErr := s.gateway.Remove(removeCtx, storage.KeyConversations); removeErr != nil {
			s.degrade(ctx, removeErr)
		}
	}
	s.notify(render.ChatsDeleted(s.loc), SeverityInfo)
	return nil
}
