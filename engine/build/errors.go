package build

import "errors"

// Sentinel errors for rejected player actions. Use errors.Is against these;
// the concrete *Error carries the on-screen text.
var (
	ErrSpaceOccupied         = errors.New("space occupied")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrProtectedEntity       = errors.New("protected entity")
	ErrNothingToDemolish     = errors.New("nothing to demolish")
)

var messages = map[error]string{
	ErrSpaceOccupied:         "This space is already occupied by another building.",
	ErrInsufficientResources: "You don't have enough resources to construct this building.",
	ErrProtectedEntity:       "You can't demolish your main base",
	ErrNothingToDemolish:     "There are no buildings on the selected square",
}

// Error is a user-facing rejection. Nothing was changed when one is
// returned.
type Error struct {
	Kind     error
	Template string
}

func (e *Error) Error() string {
	if msg, ok := messages[e.Kind]; ok {
		return msg
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }
