package codegen

import (
	"errors"
	"fmt"
)

var ErrMalformedProgram = errors.New("malformed program")

// MalformedProgramError reports a token stream whose loops do not nest.
type MalformedProgramError struct {
	Index  int // Index of the offending token; len(tokens) for unclosed loops
	Reason string
}

func (e *MalformedProgramError) Error() string {
	return fmt.Sprintf("malformed program at token %d: %s", e.Index, e.Reason)
}

func (e *MalformedProgramError) Is(target error) bool {
	return target == ErrMalformedProgram
}
