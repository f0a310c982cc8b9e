package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/aviato/internal/services/reach/domain/review"
	"github.com/louisbranch/aviato/internal/services/reach/domain/user"
	"github.com/louisbranch/aviato/internal/services/reach/render"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

// SubmitReview leaves a star review from the current user on targetID.
func (s *Session) SubmitReview(ctx context.Context, targetID string, rating int) (_ user.User, err error) {
	ctx, finish := s.start(ctx, "SubmitReview",
		attribute.String("reach.target_id", targetID),
		attribute.Int("reach.rating", rating),
	)
	defer finish(&err)

	defer s.lock(ctx)()

	owner, err := s.owner()
	if err != nil {
		return user.User{}, err
	}
	target, err := s.findUser(targetID)
	if err != nil {
		return user.User{}, err
	}
	if target.ID == owner.ID {
		return user.User{}, review.ErrSelfReview
	}
	reviews, _, err := review.Submit(target.Reviews, owner.ID, owner.DisplayName(), rating)
	if err != nil {
		return user.User{}, err
	}
	target.ApplyReviews(reviews)
	s.directory = s.directory.Put(target)
	s.persist(ctx, storage.KeyUsers)
	s.notify(render.ReviewSubmitted(s.loc, target.DisplayName(), rating), SeveritySuccess)
	return target.Clone(), nil
}

// ListReviews returns who reviewed targetID. The list is only shown to a
// viewer who already reviewed the target; the aggregate on the user record
// is always public.
func (s *Session) ListReviews(targetID string) ([]review.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, err := s.owner()
	if err != nil {
		return nil, err
	}
	target, err := s.findUser(targetID)
	if err != nil {
		return nil, err
	}
	return review.Visible(target.Reviews, owner.ID)
}
