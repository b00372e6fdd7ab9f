package errors

const (
	errPoisonedState = "registry state is poisoned"
)

// PoisonedStateError marks shared state that was left half-updated
// by a panic inside a critical section. It is not recoverable:
// callers that hit it either abort or report it without touching the state.
type PoisonedStateError struct {
}

func (e PoisonedStateError) Error() string {
	return errPoisonedState
}
