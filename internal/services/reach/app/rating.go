package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/aviato/internal/services/reach/domain/approval"
	"github.com/louisbranch/aviato/internal/services/reach/domain/conversation"
	"github.com/louisbranch/aviato/internal/services/reach/render"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

// RateResult reports an applied rating.
type RateResult struct {
	Delta        int
	Approval     int
	Conversation conversation.Conversation
}

// RateConversation rates the current cycle of the conversation with
// targetID. The approval change and the rated mark are committed together;
// a cycle can be rated once.
func (s *Session) RateConversation(ctx context.Context, targetID string, isGood bool, reason string) (_ RateResult, err error) {
	ctx, finish := s.start(ctx, "RateConversation",
		attribute.String("reach.target_id", targetID),
		attribute.Bool("reach.good", isGood),
	)
	defer finish(&err)

	defer s.lock(ctx)()

	if _, err := s.owner(); err != nil {
		return RateResult{}, err
	}
	c, ok := s.conversations.Find(targetID)
	if !ok {
		return RateResult{}, conversation.ErrNotFound.WithMetadata(map[string]string{"UserID": targetID})
	}
	target, err := s.findUser(targetID)
	if err != nil {
		return RateResult{}, err
	}
	if err := conversation.CanRate(c); err != nil {
		return RateResult{}, err
	}

	delta := approval.Delta(isGood, reason)
	target.ApprovalRating = approval.Apply(target.ApprovalRating, delta)
	directory := s.directory.Put(target)
	list, _ := conversation.MarkRated(s.conversations, targetID, isGood, reason)

	s.directory, s.conversations = directory, list
	s.persist(ctx, storage.KeyUsers, storage.KeyConversations)

	severity := SeveritySuccess
	if !isGood {
		severity = SeverityError
	}
	s.notify(render.Rated(s.loc, isGood, delta), severity)

	rated, _ := list.Find(targetID)
	return RateResult{Delta: delta, Approval: target.ApprovalRating, Conversation: rated}, nil
}
