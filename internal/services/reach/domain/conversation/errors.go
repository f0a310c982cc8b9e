package conversation

import apperrors "github.com/louisbranch/aviato/internal/platform/errors"

var (
	ErrNotFound        = apperrors.New(apperrors.CodeConversationNotFound, "conversation not found")
	ErrAlreadyRated    = apperrors.New(apperrors.CodeConversationAlreadyRated, "conversation cycle already rated")
	ErrTimerNotStarted = apperrors.New(apperrors.CodeConversationTimerNotStarted, "conversation timer not started")
)
