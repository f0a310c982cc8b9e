// Package approval converts conversation ratings into approval deltas.
package approval

import "strings"

const (
	// GoodDelta is applied for every positive rating.
	GoodDelta = 10
	// DefaultPenalty applies to negative ratings with no known reason.
	DefaultPenalty = -10
)

type penalty struct {
	reason string
	delta  int
}

var penalties = []penalty{
	{reason: "No response / Ghosted", delta: -15},
	{reason: "Rude or disrespectful", delta: -20},
	{reason: "Spam messages", delta: -25},
	{reason: "Inappropriate content", delta: -30},
	{reason: "One-word answers", delta: -10},
}

// Delta returns the approval change for a rating.
func Delta(isGood bool, reason string) int {
	if isGood {
		return GoodDelta
	}
	return Penalty(reason)
}

// Penalty looks up the delta for a negative reason, defaulting to DefaultPenalty.
func Penalty(reason string) int {
	reason = strings.TrimSpace(reason)
	for _, p := range penalties {
		if p.reason == reason {
			return p.delta
		}
	}
	return DefaultPenalty
}

// Reasons lists the known negative reasons in display order.
func Reasons() []string {
	out := make([]string, len(penalties))
	for i, p := range penalties {
		out[i] = p.reason
	}
	return out
}

// Apply adds delta to rating. Ratings are unbounded in both directions.
func Apply(rating, delta int) int {
	return rating + delta
}
