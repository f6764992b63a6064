package voting

import "errors"

// Error kinds returned by the engine. Callers match them with errors.Is;
// returned errors usually wrap one of these with request context.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrEventClosed       = errors.New("event is closed")
	ErrNotJoined         = errors.New("voter has not joined the event")
	ErrAlreadyVoted      = errors.New("voter has already voted")
	ErrTooManyChoices    = errors.New("event allows a single choice")
	ErrJoinCodeExhausted = errors.New("could not allocate a unique join code")
)
