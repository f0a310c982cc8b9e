// Package matching ranks users by overlap of their interest selections.
package matching

import (
	"math"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/aviato/internal/platform/errors"
)

// MaxSelections caps the interests a user may select.
const MaxSelections = 5

var (
	ErrSelectionLimit   = apperrors.New(apperrors.CodeSelectionLimit, "selection limit reached")
	ErrSelectionInvalid = apperrors.New(apperrors.CodeSelectionInvalid, "selection is empty")
)

// Add appends selection unless present. Adding past MaxSelections fails.
func Add(selections []string, selection string) ([]string, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return selections, ErrSelectionInvalid.WithMetadata(map[string]string{"Selection": selection})
	}
	if contains(selections, selection) {
		return selections, nil
	}
	if len(selections) >= MaxSelections {
		return selections, limitErr()
	}
	out := append(append([]string(nil), selections...), selection)
	return out, nil
}

// Remove drops selection if present.
func Remove(selections []string, selection string) []string {
	selection = strings.TrimSpace(selection)
	out := make([]string, 0, len(selections))
	for _, s := range selections {
		if s != selection {
			out = append(out, s)
		}
	}
	return out
}

// Set replaces all selections, deduplicating and enforcing MaxSelections.
func Set(selections []string) ([]string, error) {
	var out []string
	for _, s := range selections {
		var err error
		if out, err = Add(out, s); err != nil {
			return nil, err
		}
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// Percentage is the share of mine also present in theirs, rounded to a
// whole percent. Empty mine yields 0.
func Percentage(mine, theirs []string) int {
	if len(mine) == 0 {
		return 0
	}
	shared := 0
	for _, s := range mine {
		if contains(theirs, s) {
			shared++
		}
	}
	return int(math.Round(100 * float64(shared) / float64(len(mine))))
}

// Candidate is a user considered for ranking.
type Candidate struct {
	UserID     string
	Selections []string
}

// Match is a ranked candidate.
type Match struct {
	UserID     string
	Percentage int
	Shared     []string
}

// Rank scores candidates against mine, highest percentage first. Ties keep
// candidate order.
func Rank(mine []string, candidates []Candidate) []Match {
	out := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		m := Match{UserID: c.UserID, Percentage: Percentage(mine, c.Selections)}
		for _, s := range mine {
			if contains(c.Selections, s) {
				m.Shared = append(m.Shared, s)
			}
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})
	return out
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func limitErr() error {
	return ErrSelectionLimit.WithMetadata(map[string]string{"Max": strconv.Itoa(MaxSelections)})
}
