package server

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
	"github.com/louisbranch/aviato/internal/services/reach/domain/review"
	"github.com/louisbranch/aviato/internal/services/reach/domain/user"
)

// DefaultDirectory is the demo directory a fresh session starts with.
func DefaultDirectory() user.Directory {
	directory := user.Directory{
		{
			ID: "maya", Name: "Maya Chen", Bio: "Product designer, weekend climber.",
			Availability: availability.Green(),
			Selections:   []string{"design", "climbing", "coffee"},
		},
		{
			ID: "leo", Name: "Leo Park", Bio: "Backend engineer. Replies after standup.",
			Availability: availability.Availability{Mode: availability.ModeBrown, Settings: availability.TimedSettings{Hour: 10}},
			Selections:   []string{"golang", "coffee", "chess"},
		},
		{
			ID: "ines", Name: "Inês Duarte", Bio: "Taking a few intros a week.",
			Availability: availability.Availability{Mode: availability.ModeOrange, Settings: availability.MaxContactSettings{Max: 3}},
			Selections:   []string{"design", "travel"},
		},
		{
			ID: "omar", Name: "Omar Haddad", Bio: "Heads down on a launch.",
			Availability: availability.Availability{Mode: availability.ModeRed},
			Selections:   []string{"golang", "running"},
		},
		{
			ID: "sofia", Name: "Sofia Rossi", Bio: "On leave until spring.",
			Availability: availability.Availability{Mode: availability.ModeGray},
			Selections:   []string{"travel", "photography", "coffee"},
		},
	}
	maya := &directory[0]
	maya.ApprovalRating = 20
	maya.ApplyReviews([]review.Review{{RaterID: "leo", RaterName: "Leo Park", Rating: 5}})
	return directory
}

// LoadDirectory reads a JSON directory from path, or returns the default
// directory when path is empty.
func LoadDirectory(path string) (user.Directory, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultDirectory(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var directory user.Directory
	if err := json.Unmarshal(data, &directory); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for i := range directory {
		directory[i].ApplyReviews(directory[i].Reviews)
		if directory[i].Selections == nil {
			directory[i].Selections = []string{}
		}
	}
	return directory, nil
}
