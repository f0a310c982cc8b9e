package scenario

import (
	"fmt"
	"log"
)

// AssertionMode selects how failed expectations are reported.
type AssertionMode int

const (
	// AssertionStrict fails the scenario on the first unmet expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs unmet expectations and keeps running.
	AssertionLogOnly
)

// Assertions reports expectation failures according to Mode.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger

	failures int
}

// Failf always returns an error. Use it for broken scripts, not for
// expectations.
func (a *Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf reports an unmet expectation. In log-only mode it logs and
// returns nil.
func (a *Assertions) Assertf(format string, args ...any) error {
	a.failures++
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Printf("expectation: "+format, args...)
		}
		return nil
	}
	return fmt.Errorf(format, args...)
}

// Failures is the number of unmet expectations seen so far.
func (a *Assertions) Failures() int {
	return a.failures
}
