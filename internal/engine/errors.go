package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors of the session engine. Handlers map them to HTTP statuses;
// everything else surfaces as an upstream failure.
var (
	// ErrValidation marks a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")

	// ErrSessionNotFound is returned when no session matches the lookup.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotActive is returned for submissions against a completed,
	// aborted or otherwise deactivated session.
	ErrSessionNotActive = errors.New("session is not active")

	// ErrQuestionNotFound is returned when a referenced question no longer
	// resolves in the question bank.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrAlreadyAnswered rejects a submission that does not resolve to a
	// pending entry, including re-submissions against an answered one.
	ErrAlreadyAnswered = errors.New("entry is invalid or already answered")

	// ErrStaleSession signals an optimistic-concurrency conflict: the session
	// was modified since it was read. The caller should refetch and retry.
	ErrStaleSession = errors.New("session state is stale")
)

// InsufficientQuestionsError reports a candidate pool smaller than the
// session layout requires. No session is created when it is returned.
type InsufficientQuestionsError struct {
	Required int
	Found    int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("not enough questions: required %d, found %d", e.Required, e.Found)
}
