package tools

import (
	"fmt"
	"time"

	apperrors "github.com/louisbranch/aviato/internal/platform/errors"
	"github.com/louisbranch/aviato/internal/platform/errors/i18n"
	"github.com/louisbranch/aviato/internal/services/reach/app"
)

// Handlers binds tool handlers to one session.
type Handlers struct {
	session *app.Session
	catalog *i18n.Catalog
}

// NewHandlers builds handlers over session, rendering errors for locale.
func NewHandlers(session *app.Session, locale string) *Handlers {
	return &Handlers{session: session, catalog: i18n.GetCatalog(locale)}
}

// toolError renders a domain error for the tool caller. Errors without a
// domain code pass through.
func (h *Handlers) toolError(op string, err error) error {
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeUnknown {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &renderedError{
		message: h.catalog.Format(string(code), apperrors.MetadataOf(err)),
		code:    code,
		cause:   err,
	}
}

type renderedError struct {
	message string
	code    apperrors.Code
	cause   error
}

func (e *renderedError) Error() string {
	return fmt.Sprintf("%s [%s]", e.message, e.code)
}

func (e *renderedError) Unwrap() error { return e.cause }

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
