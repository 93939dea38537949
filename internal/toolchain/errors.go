package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrToolchain matches every ToolchainError.
var ErrToolchain = errors.New("toolchain failure")

// ToolchainError reports an external assembler or linker that could not be
// started or exited unsuccessfully.
type ToolchainError struct {
	Tool     string
	Args     []string
	ExitCode int // -1 when the process never ran
	Output   string
	Err      error
}

func (e *ToolchainError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", e.Tool)
	if e.ExitCode >= 0 {
		fmt.Fprintf(&sb, " exited with status %d", e.ExitCode)
	} else if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		fmt.Fprintf(&sb, "\n%s", out)
	}
	return sb.String()
}

func (e *ToolchainError) Unwrap() error { return e.Err }

func (e *ToolchainError) Is(target error) bool { return target == ErrToolchain }
