package exam

import (
	"errors"

	apperrors "github.com/Rtx09x/Meow-Mocks/internal/errors"
)

var (
	ErrInvalidIndex         = apperrors.ErrInvalidIndex
	ErrMissingTest          = errors.New("test definition has no questions")
	ErrInvalidDuration      = errors.New("test duration must be positive")
	ErrSessionClosed        = errors.New("session is closed")
	ErrAlreadySubmitted     = errors.New("session already submitted")
	ErrNotStarted           = errors.New("session not started")
	ErrQuestionTypeMismatch = errors.New("action does not apply to this question type")
	ErrUnknownOption        = errors.New("unknown option key")
	ErrUnknownSubject       = errors.New("unknown subject")
	ErrNegativeTime         = errors.New("time spent cannot be negative")
	ErrInvalidStatus        = errors.New("invalid answer status")
	ErrInvalidSelection     = errors.New("single-choice selection takes at most one key")
)
