package clierr

import (
	"errors"
	"strings"
)

const (
	CodeMissingCredential = "missing_credential"
	CodeInvalidConfig     = "invalid_config"
	CodeUnknownProvider   = "unknown_provider"
)

// Error is a user-facing failure with hints on how to fix it.
type Error struct {
	Code        string
	Message     string
	Suggestions []string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Report renders the error and its suggestions for a terminal.
func (e *Error) Report() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.Message)
	b.WriteString("\n")
	for _, s := range e.Suggestions {
		b.WriteString("  - ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String()
}

// New creates an Error.
func New(code, message string, suggestions ...string) *Error {
	return &Error{
		Code:        code,
		Message:     message,
		Suggestions: suggestions,
	}
}

// As reports whether err wraps an *Error and returns it.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
