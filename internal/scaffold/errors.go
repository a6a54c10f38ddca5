package scaffold

import (
	"errors"
	"fmt"
)

// ErrUserAbort is returned when the user explicitly declines to proceed,
// e.g. refusing to scaffold into an existing directory. No mutation has
// occurred when it is returned.
var ErrUserAbort = errors.New("aborted by user")

// SequenceError reports a pipeline operation invoked before its predecessor
// state was reached. It indicates caller misuse; no mutation is attempted.
type SequenceError struct {
	Op   string
	Have State
	Want State
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s requires pipeline state %s, but state is %s", e.Op, e.Want, e.Have)
}
