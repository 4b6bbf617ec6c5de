package generate

import (
	"errors"
	"fmt"
)

// ErrNoAttempts is returned when every generation attempt failed to place items
var ErrNoAttempts = errors.New("item placement failed")

// ShuffleError reports a placement that cannot be used. Generation retries
// after a ShuffleError; any other error ends it.
type ShuffleError struct {
	Reason string
	Err    error
}

func (e *ShuffleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shuffle failed: %s: %v", e.Reason, e.Err)
	}
	return "shuffle failed: " + e.Reason
}

func (e *ShuffleError) Unwrap() error {
	return e.Err
}
