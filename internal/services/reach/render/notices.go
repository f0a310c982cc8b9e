package render

import "github.com/louisbranch/aviato/internal/services/reach/domain/availability"

// ModeActivated is the notice shown after a mode becomes active.
func ModeActivated(loc Localizer, m availability.Mode) string {
	label := ModeLabel(loc, m)
	if m == availability.ModeGreen {
		return localizeWithFallback(loc, "reach.notice.mode_active_green", "✅ "+label+" is now ACTIVE! Visible to everyone", label)
	}
	return localizeWithFallback(loc, "reach.notice.mode_active", "✅ "+label+" is now ACTIVE!", label)
}

// ModeDeactivated is the notice shown when a user turns their mode off.
func ModeDeactivated(loc Localizer, m availability.Mode) string {
	label := ModeLabel(loc, m)
	return localizeWithFallback(loc, "reach.notice.mode_inactive", label+" is now INACTIVE! You are now Invisible", label)
}

// Rated is the notice shown after rating a conversation.
func Rated(loc Localizer, isGood bool, delta int) string {
	if isGood {
		return localizeWithFallback(loc, "reach.notice.rated_good", "Rated positively! +10% approval", delta)
	}
	return localizeWithFallback(loc, "reach.notice.rated_bad", "Rated negatively", delta)
}

// ReviewSubmitted is the notice shown after a star review.
func ReviewSubmitted(loc Localizer, targetName string, rating int) string {
	return localizeWithFallback(loc, "reach.notice.review_submitted", "Review submitted", targetName, rating)
}

// SelectionsUpdated is the notice shown after profile interests change.
func SelectionsUpdated(loc Localizer) string {
	return localizeWithFallback(loc, "reach.notice.selections_updated", "Profile selections updated")
}

// ChatsDeleted is the notice shown after all conversations are removed.
func ChatsDeleted(loc Localizer) string {
	return localizeWithFallback(loc, "reach.notice.chats_deleted", "All chats deleted")
}

// LoggedIn welcomes name.
func LoggedIn(loc Localizer, name string) string {
	return localizeWithFallback(loc, "reach.notice.logged_in", "Welcome, "+name, name)
}

// LoggedOut is the notice shown after logout.
func LoggedOut(loc Localizer) string {
	return localizeWithFallback(loc, "reach.notice.logged_out", "Logged out")
}

// StorageDegraded warns that changes are no longer saved.
func StorageDegraded(loc Localizer) string {
	return localizeWithFallback(loc, "reach.notice.storage_degraded", "Changes can't be saved right now; keeping them for this session only")
}
