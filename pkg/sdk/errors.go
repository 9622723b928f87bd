package sdk

import (
	"errors"
	"fmt"
)

// ErrNoContent is returned when a tool result contains no content items.
var ErrNoContent = errors.New("stackaudit: empty tool result")

// ToolError is returned when the server answers a call with an error result.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("stackaudit: tool %s: %s", e.Tool, e.Message)
}
