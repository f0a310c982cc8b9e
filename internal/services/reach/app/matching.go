package app

import (
	"context"

	"github.com/louisbranch/aviato/internal/services/reach/domain/matching"
	"github.com/louisbranch/aviato/internal/services/reach/domain/user"
	"github.com/louisbranch/aviato/internal/services/reach/render"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

// MatchView is one ranked directory member.
type MatchView struct {
	User       user.User
	Percentage int
	Shared     []string
	Mode       ModeView
}

// AddSelection adds an interest to the search selections.
func (s *Session) AddSelection(selection string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := matching.Add(s.search, selection)
	if err != nil {
		return append([]string(nil), s.search...), err
	}
	s.search = next
	return append([]string(nil), next...), nil
}

// RemoveSelection drops an interest from the search selections.
func (s *Session) RemoveSelection(selection string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = matching.Remove(s.search, selection)
	return append([]string(nil), s.search...)
}

// SetSelections replaces the search selections.
func (s *Session) SetSelections(selections []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := matching.Set(selections)
	if err != nil {
		return append([]string(nil), s.search...), err
	}
	s.search = next
	return append([]string(nil), next...), nil
}

// ClearSelections empties the search selections.
func (s *Session) ClearSelections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = nil
}

// Selections returns the search selections.
func (s *Session) Selections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.search...)
}

// UpdateSelections replaces the current user's profile interests.
func (s *Session) UpdateSelections(ctx context.Context, selections []string) (_ user.User, err error) {
	ctx, finish := s.start(ctx, "UpdateSelections")
	defer finish(&err)

	defer s.lock(ctx)()

	owner, err := s.owner()
	if err != nil {
		return user.User{}, err
	}
	next, err := matching.Set(selections)
	if err != nil {
		return user.User{}, err
	}
	owner.Selections = next
	s.directory = s.directory.Put(owner)
	s.persist(ctx, storage.KeyUsers, storage.KeyCurrentUser)
	s.notify(render.SelectionsUpdated(s.loc), SeveritySuccess)
	return owner.Clone(), nil
}

// FindMatches ranks every other directory member by interest overlap with
// the search selections, or the profile interests when none are set.
func (s *Session) FindMatches() ([]MatchView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, err := s.owner()
	if err != nil {
		return nil, err
	}
	mine := s.search
	if len(mine) == 0 {
		mine = owner.Selections
	}

	candidates := make([]matching.Candidate, 0, len(s.directory))
	byID := make(map[string]user.User, len(s.directory))
	for _, u := range s.directory {
		if u.ID == owner.ID {
			continue
		}
		candidates = append(candidates, matching.Candidate{UserID: u.ID, Selections: u.Selections})
		byID[u.ID] = u
	}

	ranked := matching.Rank(mine, candidates)
	out := make([]MatchView, 0, len(ranked))
	for _, m := range ranked {
		u := byID[m.UserID]
		out = append(out, MatchView{User: u.Clone(), Percentage: m.Percentage, Shared: m.Shared, Mode: s.modeView(u)})
	}
	return out, nil
}
