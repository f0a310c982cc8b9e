// Package review aggregates one-per-rater star reviews.
package review

import (
	"math"
	"strings"

	apperrors "github.com/louisbranch/aviato/internal/platform/errors"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrAlreadyReviewed  = apperrors.New(apperrors.CodeReviewAlreadySubmitted, "rater already reviewed this user")
	ErrRatingOutOfRange = apperrors.New(apperrors.CodeReviewRatingOutOfRange, "rating must be between 1 and 5")
	ErrRaterRequired    = apperrors.New(apperrors.CodeReviewRaterRequired, "rater id is required")
	ErrSelfReview       = apperrors.New(apperrors.CodeReviewSelf, "users cannot review themselves")
	ErrHidden           = apperrors.New(apperrors.CodeReviewsHidden, "review raters are hidden until the viewer reviews")
)

// Review is a single star rating left by RaterID.
type Review struct {
	RaterID   string `json:"raterId"`
	RaterName string `json:"raterName"`
	Rating    int    `json:"rating"`
}

// Aggregate is the derived summary of a review set.
type Aggregate struct {
	Rating float64 `json:"reviewRating"`
	Count  int     `json:"reviewCount"`
}

// Label names a star rating.
func Label(rating int) string {
	switch rating {
	case 1:
		return "Terrible"
	case 2:
		return "Bad"
	case 3:
		return "Okay"
	case 4:
		return "Good"
	case 5:
		return "Excellent"
	default:
		return ""
	}
}

// Submit appends a review from raterID. Existing reviews are never modified;
// on error the input is returned unchanged.
func Submit(reviews []Review, raterID, raterName string, rating int) ([]Review, Aggregate, error) {
	raterID = strings.TrimSpace(raterID)
	if raterID == "" {
		return reviews, Recompute(reviews), ErrRaterRequired
	}
	if rating < MinRating || rating > MaxRating {
		return reviews, Recompute(reviews), ErrRatingOutOfRange
	}
	if HasReviewed(reviews, raterID) {
		return reviews, Recompute(reviews), ErrAlreadyReviewed
	}
	out := make([]Review, 0, len(reviews)+1)
	out = append(out, reviews...)
	out = append(out, Review{RaterID: raterID, RaterName: strings.TrimSpace(raterName), Rating: rating})
	return out, Recompute(out), nil
}

// Recompute returns the mean rounded to one decimal and the count.
func Recompute(reviews []Review) Aggregate {
	if len(reviews) == 0 {
		return Aggregate{}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return Aggregate{Rating: math.Round(mean*10) / 10, Count: len(reviews)}
}

// HasReviewed reports whether raterID has a review in reviews.
func HasReviewed(reviews []Review, raterID string) bool {
	for _, r := range reviews {
		if r.RaterID == raterID {
			return true
		}
	}
	return false
}

// Visible returns the rater list for viewerID. Only viewers who already
// reviewed may see who rated whom.
func Visible(reviews []Review, viewerID string) ([]Review, error) {
	if !HasReviewed(reviews, viewerID) {
		return nil, ErrHidden
	}
	return append([]Review(nil), reviews...), nil
}
