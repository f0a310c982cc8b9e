package app

import (
	"context"
	"log"
)

// Severity grades a Notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is user-facing feedback emitted after a mutation.
type Notice struct {
	Message  string
	Severity Severity
}

// Notifier receives notices. Errors are logged; state is never rolled back.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notice) error {
	return f(ctx, n)
}

// LogNotifier writes notices to a logger.
type LogNotifier struct {
	Logger *log.Logger
}

// Notify logs n.
func (l LogNotifier) Notify(_ context.Context, n Notice) error {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("notice [%s]: %s", n.Severity, n.Message)
	return nil
}

// notify queues a notice for delivery once s.mu is released. Callers
// hold s.mu.
func (s *Session) notify(message string, severity Severity) {
	if s.notifier == nil || message == "" {
		return
	}
	s.pending = append(s.pending, Notice{Message: message, Severity: severity})
}

// lock acquires s.mu. The returned func releases it and then delivers the
// queued notices, so a notifier may call back into the session. Sink
// failures are logged and never affect the mutation.
func (s *Session) lock(ctx context.Context) func() {
	s.mu.Lock()
	return func() {
		pending := s.pending
		s.pending = nil
		s.mu.Unlock()
		for _, n := range pending {
			if err := s.notifier.Notify(ctx, n); err != nil {
				s.logger.Printf("notify: %v", err)
			}
		}
	}
}
