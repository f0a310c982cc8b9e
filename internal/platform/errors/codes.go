// Package errors provides coded domain errors for the reach engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown marks errors that carry no domain code.
	CodeUnknown Code = "UNKNOWN"

	// Session errors
	CodeNotAuthenticated Code = "NOT_AUTHENTICATED"
	CodeUserIDRequired   Code = "USER_ID_REQUIRED"
	CodeUserNotFound     Code = "USER_NOT_FOUND"
	CodeUserExists       Code = "USER_ALREADY_EXISTS"

	// Availability errors
	CodeModeUnknown       Code = "AVAILABILITY_MODE_UNKNOWN"
	CodeModeAlreadyActive Code = "AVAILABILITY_MODE_ALREADY_ACTIVE"
	CodeSettingsInvalid   Code = "AVAILABILITY_SETTINGS_INVALID"
	CodeUserUnavailable   Code = "USER_UNAVAILABLE"

	// Conversation errors
	CodeConversationNotFound        Code = "CONVERSATION_NOT_FOUND"
	CodeConversationAlreadyRated    Code = "CONVERSATION_ALREADY_RATED"
	CodeConversationTimerNotStarted Code = "CONVERSATION_TIMER_NOT_STARTED"
	CodeMessageEmpty                Code = "MESSAGE_EMPTY"

	// Review errors
	CodeReviewAlreadySubmitted Code = "REVIEW_ALREADY_SUBMITTED"
	CodeReviewRatingOutOfRange Code = "REVIEW_RATING_OUT_OF_RANGE"
	CodeReviewSelf             Code = "REVIEW_SELF"
	CodeReviewRaterRequired    Code = "REVIEW_RATER_REQUIRED"
	CodeReviewsHidden          Code = "REVIEWS_HIDDEN"

	// Matching errors
	CodeSelectionLimit   Code = "SELECTION_LIMIT_REACHED"
	CodeSelectionInvalid Code = "SELECTION_INVALID"
)

// Kind groups codes by how a caller should react.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindFailedPrecondition
	KindNotFound
	KindUnauthenticated
	KindPermissionDenied
	KindAlreadyExists
)

// Kind classifies the code.
func (c Code) Kind() Kind {
	switch c {
	case CodeUserIDRequired,
		CodeModeUnknown,
		CodeSettingsInvalid,
		CodeMessageEmpty,
		CodeReviewRatingOutOfRange,
		CodeReviewRaterRequired,
		CodeReviewSelf,
		CodeSelectionInvalid:
		return KindInvalidArgument
	case CodeModeAlreadyActive,
		CodeUserUnavailable,
		CodeConversationAlreadyRated,
		CodeConversationTimerNotStarted,
		CodeSelectionLimit:
		return KindFailedPrecondition
	case CodeUserNotFound,
		CodeConversationNotFound:
		return KindNotFound
	case CodeNotAuthenticated:
		return KindUnauthenticated
	case CodeReviewsHidden:
		return KindPermissionDenied
	case CodeUserExists,
		CodeReviewAlreadySubmitted:
		return KindAlreadyExists
	default:
		return KindInternal
	}
}
