package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/louisbranch/aviato/internal/services/reach/app"
	"github.com/louisbranch/aviato/internal/services/reach/server"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
	"github.com/louisbranch/aviato/internal/services/reach/storage/memory"
)

// Config controls scenario execution.
type Config struct {
	// SeedFile is a JSON directory; empty uses the built-in directory.
	SeedFile   string
	Locale     string
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Locale:     "en",
		Timeout:    10 * time.Second,
		Assertions: AssertionStrict,
	}
}

// Runner executes Lua scenarios against an in-process reach session driven
// by a manual clock.
type Runner struct {
	deps       runnerDeps
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	timeout    time.Duration
	locale     string
}

// NewRunner loads the seed directory and prepares a scenario runner.
func NewRunner(cfg Config) (*Runner, error) {
	directory, err := server.LoadDirectory(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	return newRunnerWithDeps(cfg, runnerDeps{
		directory:  directory,
		newGateway: func() storage.Gateway { return memory.New() },
	})
}

// newRunnerWithDeps builds a Runner from pre-built dependencies.
func newRunnerWithDeps(cfg Config, deps runnerDeps) (*Runner, error) {
	if deps.newGateway == nil {
		return nil, errors.New("gateway factory is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	locale := cfg.Locale
	if locale == "" {
		locale = "en"
	}

	return &Runner{
		deps:       deps,
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		timeout:    timeout,
		locale:     locale,
	}, nil
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) error {
	runner, err := NewRunner(cfg)
	if err != nil {
		return err
	}

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	return runner.RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps against a fresh session.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return errors.New("scenario is required")
	}
	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))
	state := newScenarioState(defaultStart)
	state.session = app.New(app.Options{
		Gateway:   r.deps.newGateway(),
		Clock:     state.now,
		NewID:     state.nextID,
		Notifier:  app.NotifierFunc(state.record),
		Locale:    r.locale,
		Directory: r.deps.directory,
		Logger:    r.logger,
	})

	before := r.assertions.Failures()
	for index, step := range scenario.Steps {
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	if unmet := r.assertions.Failures() - before; unmet > 0 {
		r.logger.Printf("scenario %s: %d unmet expectations", scenario.Name, unmet)
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
