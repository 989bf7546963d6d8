package cmd

import "fmt"

// ExitCodeError carries a subprocess exit code up to main so the
// hermit process can exit with the same status the container did.
type ExitCodeError struct {
	Code int
}

// NewExitCodeError creates an ExitCodeError for code.
func NewExitCodeError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}
