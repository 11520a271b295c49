package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/ops"
)

// ValidationError indicates a command-line argument failed validation.
type ValidationError struct {
	Field   string // the flag or argument that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsWarning reports whether err only carries a warning, such as a status
// change to the current status. The command still exits successfully.
func IsWarning(err error) bool {
	rej, ok := collection.AsRejection(err)
	return ok && rej.Warning()
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " (or "warning: ") for consistent CLI
// output. Form errors list one failing field per line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	if IsWarning(err) {
		return "warning: " + err.Error()
	}

	var formErr *ops.FormError
	if errors.As(err, &formErr) {
		var b strings.Builder
		fmt.Fprintf(&b, "error: invalid %s", formErr.Kind)
		for _, f := range formErr.Fields {
			fmt.Fprintf(&b, "\n  %s", f.Message)
		}
		return b.String()
	}

	return "error: " + err.Error()
}
