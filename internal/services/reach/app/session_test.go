package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
	"github.com/louisbranch/aviato/internal/services/reach/domain/user"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
	"github.com/louisbranch/aviato/internal/services/reach/storage/memory"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock(ms int64) *manualClock {
	return &manualClock{now: time.UnixMilli(ms).UTC()}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Set(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.UnixMilli(ms).UTC()
}

func sequentialIDGenerator(prefix string) func() (string, error) {
	next := 0
	return func() (string, error) {
		next++
		return fmt.Sprintf("%s-%d", prefix, next), nil
	}
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
	err     error
}

func (n *recordingNotifier) Notify(_ context.Context, notice Notice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return n.err
}

func (n *recordingNotifier) last() Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return Notice{}
	}
	return n.notices[len(n.notices)-1]
}

// flakyGateway wraps a memory gateway and fails writes on demand.
type flakyGateway struct {
	*memory.Gateway
	mu        sync.Mutex
	failSave  bool
	failLoad  bool
	saveCalls int
}

func (g *flakyGateway) Load(ctx context.Context, key string) ([]byte, bool, error) {
	g.mu.Lock()
	fail := g.failLoad
	g.mu.Unlock()
	if fail {
		return nil, false, errors.New("disk unreadable")
	}
	return g.Gateway.Load(ctx, key)
}

func (g *flakyGateway) Save(ctx context.Context, key string, value []byte) error {
	g.mu.Lock()
	g.saveCalls++
	fail := g.failSave
	g.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return g.Gateway.Save(ctx, key, value)
}

func (g *flakyGateway) SaveAll(ctx context.Context, records []storage.Record) error {
	g.mu.Lock()
	g.saveCalls++
	fail := g.failSave
	g.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return g.Gateway.SaveAll(ctx, records)
}

type fixture struct {
	session  *Session
	clock    *manualClock
	gateway  *flakyGateway
	notifier *recordingNotifier
	logs     *bytes.Buffer
}

func baselineDirectory() user.Directory {
	return user.Directory{
		{ID: "alex", Name: "Alex", Availability: availability.Green(), Selections: []string{"jazz", "chess", "hiking"}},
		{ID: "blair", Name: "Blair", Availability: availability.Availability{Mode: availability.ModeRed}, Selections: []string{"jazz"}},
		{ID: "casey", Name: "Casey", Availability: availability.Availability{Mode: availability.ModeOrange, Settings: availability.MaxContactSettings{Max: 1}}},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:    newManualClock(1000),
		gateway:  &flakyGateway{Gateway: memory.New()},
		notifier: &recordingNotifier{},
		logs:     &bytes.Buffer{},
	}
	f.session = New(Options{
		Gateway:   f.gateway,
		Clock:     f.clock.Now,
		NewID:     sequentialIDGenerator("id"),
		Notifier:  f.notifier,
		Locale:    "en",
		Directory: baselineDirectory(),
		Logger:    log.New(f.logs, "", 0),
	})
	return f
}

func (f *fixture) login(t *testing.T) user.User {
	t.Helper()
	u, err := f.session.Login(context.Background(), LoginInput{Name: "Sam", Email: "sam@example.com"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return u
}

func TestLoginCreatesGreenOwner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	u := f.login(t)

	if u.ID != user.CurrentUserID || u.Availability.Mode != availability.ModeGreen {
		t.Fatalf("owner = %+v", u)
	}
	if got := f.notifier.last().Message; got != "Welcome, Sam" {
		t.Fatalf("notice = %q", got)
	}
	for _, key := range []string{storage.KeyUsers, storage.KeyCurrentUser} {
		if _, ok, _ := f.gateway.Gateway.Load(context.Background(), key); !ok {
			t.Fatalf("expected %s persisted", key)
		}
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.login(t)
	if _, err := f.session.StartChat(context.Background(), "alex"); err != nil {
		t.Fatalf("start chat: %v", err)
	}
	if _, err := f.session.SendMessage(context.Background(), "alex", "hi"); err != nil {
		t.Fatalf("send: %v", err)
	}

	restored := New(Options{Gateway: f.gateway, Clock: f.clock.Now, Directory: baselineDirectory()})
	restored.Restore(context.Background())

	if _, ok := restored.CurrentUser(); !ok {
		t.Fatal("expected restored login")
	}
	c, err := restored.Conversation("alex")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(c.Messages) != 1 || c.TimerStarted == nil || !c.TimerStarted.Equal(time.UnixMilli(1000)) {
		t.Fatalf("restored conversation = %+v", c)
	}
}

func TestRestoreFallsBackOnLoadFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	_ = f.gateway.Gateway.Save(ctx, storage.KeyUsers, []byte("{not json"))
	f.gateway.failLoad = true

	f.session.Restore(ctx)

	if _, ok := f.session.CurrentUser(); ok {
		t.Fatal("expected logged-out session")
	}
	if got := len(f.session.Directory()); got != 3 {
		t.Fatalf("directory size = %d, want baseline 3", got)
	}
	if !bytes.Contains(f.logs.Bytes(), []byte("disk unreadable")) {
		t.Fatalf("expected load failure logged, got %q", f.logs.String())
	}
}

func TestSaveFailureDegradesToMemory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.gateway.failSave = true
	f.login(t)

	if !f.session.Degraded() {
		t.Fatal("expected degraded session")
	}
	calls := f.gateway.saveCalls
	if _, err := f.session.StartChat(context.Background(), "alex"); err != nil {
		t.Fatalf("start chat while degraded: %v", err)
	}
	if f.gateway.saveCalls != calls {
		t.Fatal("degraded session kept writing")
	}
	if _, err := f.session.Conversation("alex"); err != nil {
		t.Fatal("expected in-memory state to keep working")
	}
}

func TestNotifierFailureDoesNotRollBack(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.notifier.err = errors.New("toast sink down")
	f.login(t)

	u, err := f.session.SetAvailabilityMode(context.Background(), availability.ModeRed, nil)
	if err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if u.Availability.Mode != availability.ModeRed {
		t.Fatalf("mode = %q", u.Availability.Mode)
	}
	if cur, _ := f.session.CurrentUser(); cur.Availability.Mode != availability.ModeRed {
		t.Fatal("mode change rolled back")
	}
}

func TestNotifierMayReadSession(t *testing.T) {
	t.Parallel()

	var session *Session
	var seen []string
	session = New(Options{
		Notifier: NotifierFunc(func(_ context.Context, n Notice) error {
			u, _ := session.CurrentUser()
			seen = append(seen, u.Name+": "+n.Message)
			return nil
		}),
		Locale:    "en",
		Directory: baselineDirectory(),
		Logger:    log.New(&bytes.Buffer{}, "", 0),
	})

	done := make(chan error, 1)
	go func() {
		ctx := context.Background()
		if _, err := session.Login(ctx, LoginInput{Name: "Sam"}); err != nil {
			done <- err
			return
		}
		_, err := session.SetAvailabilityMode(ctx, availability.ModeRed, nil)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("mutation: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("mutation blocked while the notifier read the session")
	}
	if len(seen) != 2 || seen[0] != "Sam: Welcome, Sam" {
		t.Fatalf("notices = %q", seen)
	}
}

func TestSetOrangeKeepsContactsTaken(t *testing.T) {
	t.Parallel()

	full := availability.Availability{Mode: availability.ModeOrange, Settings: availability.MaxContactSettings{Max: 5, Current: 5}}
	directory := append(baselineDirectory(), user.User{ID: user.CurrentUserID, Name: "Sam", Availability: full})
	session := New(Options{Locale: "en", Directory: directory, Logger: log.New(&bytes.Buffer{}, "", 0)})
	ctx := context.Background()
	if _, err := session.Login(ctx, LoginInput{Name: "Sam"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	u, err := session.SetAvailabilityMode(ctx, availability.ModeOrange, availability.MaxContactSettings{Max: 6})
	if err != nil {
		t.Fatalf("set orange: %v", err)
	}
	if s := u.Availability.Settings.(availability.MaxContactSettings); s.Current != 5 || s.Max != 6 {
		t.Fatalf("settings = %+v, want 5/6", s)
	}

	if _, err := session.SetAvailabilityMode(ctx, availability.ModeGreen, nil); err != nil {
		t.Fatalf("set green: %v", err)
	}
	if _, err := session.SetAvailabilityMode(ctx, availability.ModeOrange, availability.MaxContactSettings{Max: 5}); err != nil {
		t.Fatalf("set orange again: %v", err)
	}
	view := session.CurrentMode(user.CurrentUserID)
	if view.CanMessage || view.Summary != "5/5 slots available" {
		t.Fatalf("view = %+v, want full orange", view)
	}
}

func TestLogoutResetsState(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.login(t)
	if _, err := f.session.StartChat(ctx, "casey"); err != nil {
		t.Fatalf("start chat: %v", err)
	}
	if casey, _ := f.session.User("casey"); casey.Availability.Settings.(availability.MaxContactSettings).Current != 1 {
		t.Fatal("expected contact slot taken")
	}
	if _, err := f.session.SetSelections([]string{"jazz"}); err != nil {
		t.Fatalf("set selections: %v", err)
	}

	f.session.Logout(ctx)

	if _, ok := f.session.CurrentUser(); ok {
		t.Fatal("expected logged out")
	}
	if len(f.session.Conversations()) != 0 || len(f.session.Selections()) != 0 {
		t.Fatal("expected conversations and selections cleared")
	}
	if casey, _ := f.session.User("casey"); casey.Availability.Settings.(availability.MaxContactSettings).Current != 0 {
		t.Fatal("expected baseline directory restored")
	}
	for _, key := range storage.Keys {
		if _, ok, _ := f.gateway.Gateway.Load(ctx, key); ok {
			t.Fatalf("expected %s removed", key)
		}
	}
}

func TestRegisterUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	u, err := f.session.RegisterUser(ctx, user.User{ID: "drew", Name: "Drew"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Selections == nil {
		t.Fatal("expected empty selections slice")
	}
	if _, err := f.session.RegisterUser(ctx, user.User{ID: "drew"}); !errors.Is(err, user.ErrExists) {
		t.Fatalf("err = %v, want ErrExists", err)
	}
	if _, err := f.session.RegisterUser(ctx, user.User{ID: " "}); !errors.Is(err, user.ErrIDRequired) {
		t.Fatalf("err = %v, want ErrIDRequired", err)
	}
}

func TestCurrentModeUnknownUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	view := f.session.CurrentMode("ghost")
	if view.DisplayMode != availability.ModeGray || view.CanMessage || view.StatusText != "Unknown" {
		t.Fatalf("view = %+v", view)
	}

	view = f.session.CurrentMode("blair")
	if view.CanMessage || view.StatusText != "Locked" || view.Color != "#DC2626" {
		t.Fatalf("view = %+v", view)
	}
}

func TestSetAvailabilityMode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.login(t)

	u, err := f.session.SetAvailabilityMode(ctx, availability.ModeYellow, availability.LaterSettings{Minutes: 10})
	if err != nil {
		t.Fatalf("set yellow: %v", err)
	}
	s := u.Availability.Settings.(availability.LaterSettings)
	if s.StartedAt == nil || !s.StartedAt.Equal(f.clock.Now()) {
		t.Fatalf("StartedAt = %v", s.StartedAt)
	}
	if got := f.notifier.last().Message; got != "✅ Later is now ACTIVE!" {
		t.Fatalf("notice = %q", got)
	}

	if _, err := f.session.SetAvailabilityMode(ctx, availability.ModeYellow, nil); !errors.Is(err, availability.ErrModeAlreadyActive) {
		t.Fatalf("err = %v, want ErrModeAlreadyActive", err)
	}

	f.clock.Set(1000 + 10*60*1000)
	if st, _ := f.session.EvaluateUser(user.CurrentUserID); st.Available {
		t.Fatal("expected yellow window to close")
	}

	u, err = f.session.DeactivateAvailability(ctx)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if u.Availability.Mode != availability.ModeInvisible {
		t.Fatalf("mode = %q", u.Availability.Mode)
	}
	if got := f.notifier.last().Message; got != "Later is now INACTIVE! You are now Invisible" {
		t.Fatalf("notice = %q", got)
	}
}

func TestOperationsRequireLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["set mode"] = f.session.SetAvailabilityMode(ctx, availability.ModeRed, nil)
	_, checks["start chat"] = f.session.StartChat(ctx, "alex")
	_, checks["send"] = f.session.SendMessage(ctx, "alex", "hi")
	_, checks["receive"] = f.session.ReceiveMessage(ctx, "alex", "hi")
	_, checks["rate"] = f.session.RateConversation(ctx, "alex", true, "")
	_, checks["review"] = f.session.SubmitReview(ctx, "alex", 5)
	_, checks["matches"] = f.session.FindMatches()
	checks["delete all"] = f.session.DeleteAllChats(ctx)

	for name, err := range checks {
		if !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("%s: err = %v, want ErrNotAuthenticated", name, err)
		}
	}
	if len(f.session.Conversations()) != 0 {
		t.Fatal("logged-out calls mutated state")
	}
}
