// Package user defines the reach user record and directory helpers.
package user

import (
	"strings"

	apperrors "github.com/louisbranch/aviato/internal/platform/errors"
	"github.com/louisbranch/aviato/internal/services/reach/domain/availability"
	"github.com/louisbranch/aviato/internal/services/reach/domain/review"
)

// CurrentUserID is the directory id the logged-in user is stored under.
const CurrentUserID = "current-user"

var (
	ErrNotFound   = apperrors.New(apperrors.CodeUserNotFound, "user not found")
	ErrIDRequired = apperrors.New(apperrors.CodeUserIDRequired, "user id is required")
	ErrExists     = apperrors.New(apperrors.CodeUserExists, "user already exists")
)

// User is a member of the directory.
type User struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	Email        string                    `json:"email,omitempty"`
	Bio          string                    `json:"bio,omitempty"`
	Availability availability.Availability `json:"availability"`

	ApprovalRating int             `json:"approvalRating"`
	ReviewRating   float64         `json:"reviewRating"`
	ReviewCount    int             `json:"reviewCount"`
	Reviews        []review.Review `json:"reviews"`
	Selections     []string        `json:"selections"`
}

// Clone returns a deep copy.
func (u User) Clone() User {
	out := u
	out.Reviews = append([]review.Review(nil), u.Reviews...)
	out.Selections = append([]string(nil), u.Selections...)
	return out
}

// DisplayName is Name, falling back to the id.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.ID
}

// Directory is the ordered set of known users.
type Directory []User

// Find returns the user with id.
func (d Directory) Find(id string) (User, bool) {
	for _, u := range d {
		if u.ID == id {
			return u.Clone(), true
		}
	}
	return User{}, false
}

// Put returns a copy of d with u replacing the entry with the same id, or
// appended when new.
func (d Directory) Put(u User) Directory {
	out := make(Directory, 0, len(d)+1)
	replaced := false
	for _, existing := range d {
		if existing.ID == u.ID {
			out = append(out, u.Clone())
			replaced = true
			continue
		}
		out = append(out, existing.Clone())
	}
	if !replaced {
		out = append(out, u.Clone())
	}
	return out
}

// Without returns a copy of d minus the user with id.
func (d Directory) Without(id string) Directory {
	out := make(Directory, 0, len(d))
	for _, u := range d {
		if u.ID != id {
			out = append(out, u.Clone())
		}
	}
	return out
}

// Clone returns a deep copy.
func (d Directory) Clone() Directory {
	if d == nil {
		return nil
	}
	out := make(Directory, len(d))
	for i, u := range d {
		out[i] = u.Clone()
	}
	return out
}

// ApplyReviews sets the reviews and the derived aggregate fields.
func (u *User) ApplyReviews(reviews []review.Review) {
	agg := review.Recompute(reviews)
	u.Reviews = reviews
	u.ReviewRating = agg.Rating
	u.ReviewCount = agg.Count
}
