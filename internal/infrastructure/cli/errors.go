package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/stackaudit/pkg/application"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	switch {
	case errors.Is(err, application.ErrProjectNotFound):
		return NewCLIError("project path does not exist", "Pass the directory of the project to evaluate", err)
	case errors.Is(err, application.ErrNotADirectory):
		return NewCLIError("project path is not a directory", "Pass the project root, not a file inside it", err)
	case errors.Is(err, catalog.ErrInvalidCatalog):
		return NewCLIError("requirement catalog is invalid", "Run 'stackaudit catalog validate <file>' to list every problem", err)
	}

	return err
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.ExitCode != 0 {
		return cliErr.ExitCode
	}
	return 1
}
