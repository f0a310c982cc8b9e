package app

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/aviato/internal/platform/timeouts"
	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
	"github.com/louisbranch/aviato/internal/services/reach/domain/review"
	"github.com/louisbranch/aviato/internal/services/reach/domain/user"
	"github.com/louisbranch/aviato/internal/services/reach/render"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

// LoginInput identifies the person logging in.
type LoginInput struct {
	Name  string
	Email string
}

// Login makes the session owner the current user. A returning owner keeps
// their record; a new one starts green with default contact capacity.
func (s *Session) Login(ctx context.Context, in LoginInput) (u user.User, err error) {
	ctx, finish := s.start(ctx, "Login")
	defer finish(&err)

	defer s.lock(ctx)()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "You"
	}
	u, ok := s.directory.Find(user.CurrentUserID)
	if !ok {
		u = user.User{ID: user.CurrentUserID, Availability: availability.Green(), Selections: []string{}}
	}
	u.Name = name
	u.Email = strings.TrimSpace(in.Email)

	s.directory = s.directory.Put(u)
	s.currentID = u.ID
	s.persist(ctx, storage.KeyUsers, storage.KeyCurrentUser)
	s.notify(render.LoggedIn(s.loc, name), SeveritySuccess)
	return u.Clone(), nil
}

// Logout clears the session back to the baseline directory and removes
// every persisted record.
func (s *Session) Logout(ctx context.Context) {
	var err error
	ctx, finish := s.start(ctx, "Logout")
	defer finish(&err)

	defer s.lock(ctx)()

	s.currentID = ""
	s.directory = s.baseline.Clone()
	s.conversations = nil
	s.search = nil
	if !s.degraded {
		removeCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
		defer cancel()
		if err = storage.RemoveAll(removeCtx, s.gateway); err != nil {
			s.logger.Printf("logout remove: %v", err)
		}
	}
	s.notify(render.LoggedOut(s.loc), SeverityInfo)
}

// RegisterUser adds another member to the directory.
func (s *Session) RegisterUser(ctx context.Context, u user.User) (_ user.User, err error) {
	ctx, finish := s.start(ctx, "RegisterUser", attribute.String("reach.user_id", u.ID))
	defer finish(&err)

	defer s.lock(ctx)()

	u.ID = strings.TrimSpace(u.ID)
	if u.ID == "" {
		return user.User{}, user.ErrIDRequired
	}
	if _, ok := s.directory.Find(u.ID); ok {
		return user.User{}, user.ErrExists.WithMetadata(map[string]string{"UserID": u.ID})
	}
	if u.Selections == nil {
		u.Selections = []string{}
	}
	u.ApplyReviews(dedupeReviews(u.Reviews))
	s.directory = s.directory.Put(u)
	s.persist(ctx, storage.KeyUsers)
	return u.Clone(), nil
}

// CurrentUser returns the logged-in user.
func (s *Session) CurrentUser() (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.owner()
	return u, err == nil
}

// User returns a directory member.
func (s *Session) User(userID string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findUser(userID)
}

// Directory returns a snapshot of every known user.
func (s *Session) Directory() user.Directory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.directory.Clone()
}

// dedupeReviews keeps the first review per rater and drops out-of-range ones.
func dedupeReviews(in []review.Review) []review.Review {
	var out []review.Review
	for _, r := range in {
		next, _, err := review.Submit(out, r.RaterID, r.RaterName, r.Rating)
		if err == nil {
			out = next
		}
	}
	return out
}
