package scenario

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/louisbranch/aviato/internal/services/reach/app"
	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
	"github.com/louisbranch/aviato/internal/services/reach/domain/user"
)

type stepFunc func(r *Runner, ctx context.Context, state *scenarioState, step Step) error

// actionSteps call into the session and honor an expect_error argument.
var actionSteps = map[string]stepFunc{
	"user":              (*Runner).runUserStep,
	"login":             (*Runner).runLoginStep,
	"set_mode":          (*Runner).runSetModeStep,
	"deactivate":        (*Runner).runDeactivateStep,
	"start_chat":        (*Runner).runStartChatStep,
	"send":              (*Runner).runSendStep,
	"receive":           (*Runner).runReceiveStep,
	"rate":              (*Runner).runRateStep,
	"review":            (*Runner).runReviewStep,
	"select":            (*Runner).runSelectStep,
	"update_selections": (*Runner).runUpdateSelectionsStep,
	"delete_chats":      (*Runner).runDeleteChatsStep,
	"expect_reviews":    (*Runner).runExpectReviewsStep,
	"expect_match":      (*Runner).runExpectMatchStep,
}

// checkSteps only inspect state or move the clock.
var checkSteps = map[string]stepFunc{
	"logout":          (*Runner).runLogoutStep,
	"at":              (*Runner).runAtStep,
	"advance":         (*Runner).runAdvanceStep,
	"expect_mode":     (*Runner).runExpectModeStep,
	"expect_approval": (*Runner).runExpectApprovalStep,
	"expect_chat":     (*Runner).runExpectChatStep,
	"expect_notice":   (*Runner).runExpectNoticeStep,
}

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	if run, ok := actionSteps[step.Kind]; ok {
		return r.expectOutcome(step, run(r, ctx, state, step))
	}
	if run, ok := checkSteps[step.Kind]; ok {
		return run(r, ctx, state, step)
	}
	return r.failf("unknown step kind %q", step.Kind)
}

func (r *Runner) runUserStep(ctx context.Context, state *scenarioState, step Step) error {
	id := requiredString(step.Args, "id")
	if id == "" {
		return r.failf("user id is required")
	}
	mode, err := availability.ParseMode(optionalString(step.Args, "mode", string(availability.ModeGreen)))
	if err != nil {
		return err
	}
	settings, err := settingsFromArgs(mode, step.Args, state.now())
	if err != nil {
		return err
	}
	if settings == nil {
		settings = availability.DefaultSettings(mode)
	}
	if mode == availability.ModeYellow {
		if later, ok := settings.(availability.LaterSettings); ok {
			started, err := optionalTime(step.Args, "later_started", state.now())
			if err != nil {
				return err
			}
			later.StartedAt = started
			settings = later
		}
	}
	if mode == availability.ModeOrange {
		if capped, ok := settings.(availability.MaxContactSettings); ok {
			capped.Current = optionalInt(step.Args, "current_contacts", 0)
			settings = capped
		}
	}

	selections, err := stringList(step.Args, "selections")
	if err != nil {
		return err
	}
	_, err = state.session.RegisterUser(ctx, user.User{
		ID:             id,
		Name:           optionalString(step.Args, "name", id),
		Email:          optionalString(step.Args, "email", ""),
		Bio:            optionalString(step.Args, "bio", ""),
		Availability:   availability.Availability{Mode: mode, Settings: settings},
		ApprovalRating: optionalInt(step.Args, "approval", 0),
		Selections:     selections,
	})
	return err
}

func (r *Runner) runLoginStep(ctx context.Context, state *scenarioState, step Step) error {
	_, err := state.session.Login(ctx, app.LoginInput{
		Name:  optionalString(step.Args, "name", "Scenario Runner"),
		Email: optionalString(step.Args, "email", ""),
	})
	return err
}

func (r *Runner) runLogoutStep(ctx context.Context, state *scenarioState, _ Step) error {
	state.session.Logout(ctx)
	return nil
}

func (r *Runner) runAtStep(_ context.Context, state *scenarioState, step Step) error {
	at, err := parseClock(requiredString(step.Args, "time"), state.now())
	if err != nil {
		return r.failf("at: %v", err)
	}
	state.clock = at
	return nil
}

func (r *Runner) runAdvanceStep(_ context.Context, state *scenarioState, step Step) error {
	by, err := readDuration(step.Args, "by")
	if err != nil {
		return r.failf("advance: %v", err)
	}
	if by < 0 {
		return r.failf("advance: duration %s is negative", by)
	}
	state.clock = state.clock.Add(by)
	return nil
}

func (r *Runner) runSetModeStep(ctx context.Context, state *scenarioState, step Step) error {
	mode, err := availability.ParseMode(requiredString(step.Args, "mode"))
	if err != nil {
		return err
	}
	settings, err := settingsFromArgs(mode, step.Args, state.now())
	if err != nil {
		return err
	}
	_, err = state.session.SetAvailabilityMode(ctx, mode, settings)
	return err
}

func (r *Runner) runDeactivateStep(ctx context.Context, state *scenarioState, _ Step) error {
	_, err := state.session.DeactivateAvailability(ctx)
	return err
}

func (r *Runner) runStartChatStep(ctx context.Context, state *scenarioState, step Step) error {
	_, err := state.session.StartChat(ctx, resolveUser(step.Args))
	return err
}

func (r *Runner) runSendStep(ctx context.Context, state *scenarioState, step Step) error {
	_, err := state.session.SendMessage(ctx, resolveUser(step.Args), optionalString(step.Args, "text", ""))
	return err
}

func (r *Runner) runReceiveStep(ctx context.Context, state *scenarioState, step Step) error {
	_, err := state.session.ReceiveMessage(ctx, resolveUser(step.Args), optionalString(step.Args, "text", ""))
	return err
}

func (r *Runner) runRateStep(ctx context.Context, state *scenarioState, step Step) error {
	target := resolveUser(step.Args)
	result, err := state.session.RateConversation(ctx, target, optionalBool(step.Args, "good", false), optionalString(step.Args, "reason", ""))
	if err != nil {
		return err
	}
	if want, ok := readInt(step.Args, "expect_delta"); ok && result.Delta != want {
		if err := r.assertf("rate %s delta = %d, want %d", target, result.Delta, want); err != nil {
			return err
		}
	}
	if want, ok := readInt(step.Args, "expect_approval"); ok && result.Approval != want {
		if err := r.assertf("rate %s approval = %d, want %d", target, result.Approval, want); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runReviewStep(ctx context.Context, state *scenarioState, step Step) error {
	_, err := state.session.SubmitReview(ctx, resolveUser(step.Args), optionalInt(step.Args, "stars", 0))
	return err
}

func (r *Runner) runSelectStep(_ context.Context, state *scenarioState, step Step) error {
	selections, err := stringList(step.Args, "selections")
	if err != nil {
		return err
	}
	if len(selections) == 0 {
		state.session.ClearSelections()
		return nil
	}
	_, err = state.session.SetSelections(selections)
	return err
}

func (r *Runner) runUpdateSelectionsStep(ctx context.Context, state *scenarioState, step Step) error {
	selections, err := stringList(step.Args, "selections")
	if err != nil {
		return err
	}
	_, err = state.session.UpdateSelections(ctx, selections)
	return err
}

func (r *Runner) runDeleteChatsStep(ctx context.Context, state *scenarioState, _ Step) error {
	return state.session.DeleteAllChats(ctx)
}

func (r *Runner) runExpectModeStep(_ context.Context, state *scenarioState, step Step) error {
	target := resolveUser(step.Args)
	view := state.session.CurrentMode(target)
	checks := []struct {
		key string
		got string
	}{
		{"mode", string(view.DisplayMode)},
		{"label", view.Label},
		{"color", view.Color},
		{"status", view.StatusText},
		{"reason", string(view.Reason)},
	}
	for _, check := range checks {
		want, ok := step.Args[check.key].(string)
		if !ok || want == check.got {
			continue
		}
		if err := r.assertf("%s %s = %q, want %q", target, check.key, check.got, want); err != nil {
			return err
		}
	}
	if want, ok := readBool(step.Args, "can_message"); ok && view.CanMessage != want {
		if err := r.assertf("%s can_message = %t, want %t", target, view.CanMessage, want); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runExpectApprovalStep(_ context.Context, state *scenarioState, step Step) error {
	target := resolveUser(step.Args)
	u, err := state.session.User(target)
	if err != nil {
		return r.failf("expect_approval: %v", err)
	}
	want := optionalInt(step.Args, "value", 0)
	if u.ApprovalRating != want {
		return r.assertf("%s approval = %d, want %d", target, u.ApprovalRating, want)
	}
	return nil
}

func (r *Runner) runExpectReviewsStep(_ context.Context, state *scenarioState, step Step) error {
	target := resolveUser(step.Args)
	reviews, err := state.session.ListReviews(target)
	if err != nil {
		return err
	}
	if want, ok := readInt(step.Args, "count"); ok && len(reviews) != want {
		if err := r.assertf("%s review count = %d, want %d", target, len(reviews), want); err != nil {
			return err
		}
	}
	if want, ok := readFloat(step.Args, "rating"); ok {
		u, err := state.session.User(target)
		if err != nil {
			return err
		}
		if math.Abs(u.ReviewRating-want) > 0.01 {
			if err := r.assertf("%s review rating = %.2f, want %.2f", target, u.ReviewRating, want); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) runExpectChatStep(_ context.Context, state *scenarioState, step Step) error {
	target := resolveUser(step.Args)
	var row *app.ChatRow
	rows := state.session.ChatList()
	for i := range rows {
		if rows[i].Conversation.UserID == target {
			row = &rows[i]
			break
		}
	}
	if optionalBool(step.Args, "missing", false) {
		if row != nil {
			return r.assertf("conversation with %s exists, want none", target)
		}
		return nil
	}
	if row == nil {
		return r.assertf("no conversation with %s", target)
	}

	checks := []struct {
		key string
		got string
	}{
		{"status", row.Status},
		{"countdown", row.Countdown},
		{"phase", string(row.Phase)},
		{"tone", string(row.Tone)},
		{"last_message", row.Conversation.LastMessage},
	}
	for _, check := range checks {
		want, ok := step.Args[check.key].(string)
		if !ok || want == check.got {
			continue
		}
		if err := r.assertf("chat %s %s = %q, want %q", target, check.key, check.got, want); err != nil {
			return err
		}
	}
	if want, ok := readInt(step.Args, "messages"); ok && len(row.Conversation.Messages) != want {
		if err := r.assertf("chat %s messages = %d, want %d", target, len(row.Conversation.Messages), want); err != nil {
			return err
		}
	}
	if want, ok := readBool(step.Args, "rated"); ok && row.Conversation.Rated != want {
		if err := r.assertf("chat %s rated = %t, want %t", target, row.Conversation.Rated, want); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runExpectMatchStep(_ context.Context, state *scenarioState, step Step) error {
	target := resolveUser(step.Args)
	matches, err := state.session.FindMatches()
	if err != nil {
		return err
	}
	want := optionalInt(step.Args, "percentage", 0)
	for _, match := range matches {
		if match.User.ID != target {
			continue
		}
		if match.Percentage != want {
			return r.assertf("match %s = %d%%, want %d%%", target, match.Percentage, want)
		}
		return nil
	}
	return r.assertf("no match for %s", target)
}

func (r *Runner) runExpectNoticeStep(_ context.Context, state *scenarioState, step Step) error {
	notice, ok := state.lastNotice()
	if !ok {
		return r.assertf("no notice emitted")
	}
	want := optionalString(step.Args, "contains", "")
	if !strings.Contains(notice.Message, want) {
		if err := r.assertf("notice = %q, want it to contain %q", notice.Message, want); err != nil {
			return err
		}
	}
	if severity := optionalString(step.Args, "severity", ""); severity != "" && string(notice.Severity) != severity {
		return r.assertf("notice severity = %s, want %s", notice.Severity, severity)
	}
	return nil
}

// resolveUser maps the "me" alias to the logged-in user's directory id.
func resolveUser(args map[string]any) string {
	id := requiredString(args, "user")
	if id == "me" {
		return user.CurrentUserID
	}
	return id
}

func describeStep(step Step) string {
	if target := requiredString(step.Args, "user"); target != "" {
		return fmt.Sprintf("%s %s", step.Kind, target)
	}
	return step.Kind
}
