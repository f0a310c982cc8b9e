package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/aviato/internal/services/reach/app"
)

// defaultStart is the clock value every scenario begins at.
var defaultStart = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

type scenarioState struct {
	session *app.Session
	clock   time.Time
	ids     int
	notices []app.Notice
}

func newScenarioState(start time.Time) *scenarioState {
	return &scenarioState{clock: start}
}

func (s *scenarioState) now() time.Time {
	return s.clock
}

func (s *scenarioState) nextID() (string, error) {
	s.ids++
	return fmt.Sprintf("scn-%d", s.ids), nil
}

func (s *scenarioState) record(_ context.Context, n app.Notice) error {
	s.notices = append(s.notices, n)
	return nil
}

func (s *scenarioState) lastNotice() (app.Notice, bool) {
	if len(s.notices) == 0 {
		return app.Notice{}, false
	}
	return s.notices[len(s.notices)-1], true
}
