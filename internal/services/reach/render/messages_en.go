package render

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "reach.mode.green", "Available")
	message.SetString(lang, "reach.mode.blue", "Open")
	message.SetString(lang, "reach.mode.yellow", "Later")
	message.SetString(lang, "reach.mode.orange", "Max Contact")
	message.SetString(lang, "reach.mode.red", "Locked")
	message.SetString(lang, "reach.mode.gray", "Paused")
	message.SetString(lang, "reach.mode.brown", "Timed")
	message.SetString(lang, "reach.mode.invisible", "Invisible")

	message.SetString(lang, "reach.status.available", "Available")
	message.Set(lang, "reach.status.slots_left", plural.Selectf(1, "%d",
		"=1", "1 slot left",
		"other", "%d slots left",
	))
	message.SetString(lang, "reach.status.minutes_left", "Available for %d more min")
	message.SetString(lang, "reach.status.invisible", "Invisible")
	message.SetString(lang, "reach.status.locked", "Locked")
	message.SetString(lang, "reach.status.paused", "Paused")
	message.SetString(lang, "reach.status.expired", "Expired")
	message.SetString(lang, "reach.status.max_contacts", "Max contacts reached")
	message.SetString(lang, "reach.status.opens", "Opens %s")
	message.SetString(lang, "reach.status.available_at", "Available at %s")

	message.SetString(lang, "reach.restriction.locked", "User locked messaging")
	message.SetString(lang, "reach.restriction.paused", "User paused messaging")
	message.SetString(lang, "reach.restriction.max_contacts", "Max contacts reached")
	message.SetString(lang, "reach.restriction.opens", "Available: %s")
	message.SetString(lang, "reach.restriction.available_at", "Available at: %s")

	message.SetString(lang, "reach.chat.expired", "Expired • Rate pending")
	message.SetString(lang, "reach.chat.rated", "✓ Rated")
	message.SetString(lang, "reach.chat.waiting", "Waiting to start")
	message.SetString(lang, "reach.chat.remaining", "%s remaining")

	message.SetString(lang, "reach.layout.date", "Jan 2, 2006")
	message.SetString(lang, "reach.layout.clock", "3:04 PM")

	message.SetString(lang, "reach.notice.mode_active", "✅ %s is now ACTIVE!")
	message.SetString(lang, "reach.notice.mode_active_green", "✅ %s is now ACTIVE! Visible to everyone")
	message.SetString(lang, "reach.notice.mode_inactive", "%s is now INACTIVE! You are now Invisible")
	message.SetString(lang, "reach.notice.rated_good", "Rated positively! %+d%% approval")
	message.SetString(lang, "reach.notice.rated_bad", "Rated negatively: %d%% approval")
	message.SetString(lang, "reach.notice.review_submitted", "You rated %s %d stars")
	message.SetString(lang, "reach.notice.selections_updated", "Profile selections updated")
	message.SetString(lang, "reach.notice.chats_deleted", "All chats deleted")
	message.SetString(lang, "reach.notice.logged_in", "Welcome, %s")
	message.SetString(lang, "reach.notice.logged_out", "Logged out")
	message.SetString(lang, "reach.notice.storage_degraded", "Changes can't be saved right now; keeping them for this session only")
}
