// Package app holds the reach session: the logged-in user, the user
// directory and the owner's conversations, together with the gateway,
// clock and notifier every operation needs.
//
// All mutations run under one mutex, so rating and approval changes, list
// reordering and persistence observe a single writer. Derived values such
// as remaining time are computed on read.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/aviato/internal/platform/errors"
	"github.com/louisbranch/aviato/internal/platform/id"
	"github.com/louisbranch/aviato/internal/platform/timeouts"
	"github.com/louisbranch/aviato/internal/services/reach/domain/conversation"
	"github.com/louisbranch/aviato/internal/services/reach/domain/user"
	"github.com/louisbranch/aviato/internal/services/reach/render"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
	"github.com/louisbranch/aviato/internal/services/reach/storage/memory"
)

const tracerName = "github.com/louisbranch/aviato/internal/services/reach/app"

var (
	ErrNotAuthenticated = apperrors.New(apperrors.CodeNotAuthenticated, "no user is logged in")
	ErrUnavailable      = apperrors.New(apperrors.CodeUserUnavailable, "user cannot be messaged right now")
	ErrEmptyMessage     = apperrors.New(apperrors.CodeMessageEmpty, "message text is empty")
)

// Options configures a Session. Zero values get working defaults.
type Options struct {
	Gateway  storage.Gateway
	Clock    func() time.Time
	NewID    func() (string, error)
	Notifier Notifier
	Locale   string
	// Directory is the baseline user directory restored on logout and used
	// when nothing is persisted.
	Directory user.Directory
	Logger    *log.Logger
}

// Session is the explicit application state of one reach client.
type Session struct {
	mu sync.Mutex

	gateway  storage.Gateway
	clock    func() time.Time
	newID    func() (string, error)
	notifier Notifier
	loc      render.Localizer
	logger   *log.Logger
	tracer   trace.Tracer
	baseline user.Directory

	currentID     string
	directory     user.Directory
	conversations conversation.List
	search        []string
	degraded      bool
	pending       []Notice
}

// New builds a logged-out session over the baseline directory.
func New(opts Options) *Session {
	s := &Session{
		gateway:  opts.Gateway,
		clock:    opts.Clock,
		newID:    opts.NewID,
		notifier: opts.Notifier,
		loc:      render.NewPrinter(opts.Locale),
		logger:   opts.Logger,
		tracer:   otel.Tracer(tracerName),
		baseline: opts.Directory.Clone(),
	}
	if s.gateway == nil {
		s.gateway = memory.New()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = id.NewID
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.directory = s.baseline.Clone()
	return s
}

// Degraded reports whether persistence failed and the session now only
// keeps state in memory.
func (s *Session) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Restore loads persisted state. Missing or unreadable records fall back
// to defaults and are logged, never returned.
func (s *Session) Restore(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "reach.Restore")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	var directory user.Directory
	if s.load(ctx, storage.KeyUsers, &directory) && directory != nil {
		s.directory = directory
	} else {
		s.directory = s.baseline.Clone()
	}

	var current user.User
	if s.load(ctx, storage.KeyCurrentUser, &current) && strings.TrimSpace(current.ID) != "" {
		s.currentID = current.ID
		if _, ok := s.directory.Find(current.ID); !ok {
			s.directory = s.directory.Put(current)
		}
	} else {
		s.currentID = ""
	}

	var conversations conversation.List
	if s.load(ctx, storage.KeyConversations, &conversations) {
		s.conversations = conversations
	} else {
		s.conversations = nil
	}
	span.SetAttributes(
		attribute.Bool("reach.logged_in", s.currentID != ""),
		attribute.Int("reach.users", len(s.directory)),
		attribute.Int("reach.conversations", len(s.conversations)),
	)
}

func (s *Session) load(ctx context.Context, key string, target any) bool {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()

	data, ok, err := s.gateway.Load(ctx, key)
	if err != nil {
		s.logger.Printf("load %s: %v", key, err)
		return false
	}
	if !ok || len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Printf("decode %s: %v", key, err)
		return false
	}
	return true
}

// persist writes the given keys. After the first failure the session
// stops writing and keeps serving from memory. Callers hold s.mu.
func (s *Session) persist(ctx context.Context, keys ...string) {
	if s.degraded {
		return
	}
	records := make([]storage.Record, 0, len(keys))
	for _, key := range keys {
		value, err := s.encode(key)
		if err != nil {
			s.degrade(ctx, fmt.Errorf("encode %s: %w", key, err))
			return
		}
		records = append(records, storage.Record{Key: key, Value: value})
	}
	saveCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOp)
	defer cancel()
	if err := storage.SaveAll(saveCtx, s.gateway, records); err != nil {
		s.degrade(ctx, err)
	}
}

func (s *Session) encode(key string) ([]byte, error) {
	switch key {
	case storage.KeyUsers:
		return json.Marshal(s.directory)
	case storage.KeyConversations:
		if s.conversations == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.conversations)
	case storage.KeyCurrentUser:
		u, ok := s.directory.Find(s.currentID)
		if !ok {
			return []byte("null"), nil
		}
		return json.Marshal(u)
	default:
		return nil, fmt.Errorf("unknown key %q", key)
	}
}

func (s *Session) degrade(ctx context.Context, err error) {
	s.degraded = true
	s.logger.Printf("storage degraded to memory: %v", err)
	trace.SpanFromContext(ctx).AddEvent("storage.degraded")
	s.notify(render.StorageDegraded(s.loc), SeverityWarning)
}

// nextID wraps the id generator so callers can return domain-safe errors.
func (s *Session) nextID() (string, error) {
	value, err := s.newID()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return value, nil
}

// owner returns the logged-in user. Callers hold s.mu.
func (s *Session) owner() (user.User, error) {
	if s.currentID == "" {
		return user.User{}, ErrNotAuthenticated
	}
	u, ok := s.directory.Find(s.currentID)
	if !ok {
		return user.User{}, ErrNotAuthenticated
	}
	return u, nil
}

func (s *Session) findUser(userID string) (user.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, user.ErrIDRequired
	}
	u, ok := s.directory.Find(userID)
	if !ok {
		return user.User{}, user.ErrNotFound.WithMetadata(map[string]string{"UserID": userID})
	}
	return u, nil
}

// start opens a span for op and returns a finisher recording err.
func (s *Session) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	ctx, span := s.tracer.Start(ctx, "reach."+op, trace.WithAttributes(attrs...))
	return ctx, func(errp *error) {
		if errp != nil && *errp != nil {
			span.RecordError(*errp)
			span.SetStatus(codes.Error, string(apperrors.CodeOf(*errp)))
		}
		span.End()
	}
}
