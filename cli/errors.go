package cli

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidName   = errors.New("invalid name")
	ErrDuplicateName = errors.New("duplicate name")
	ErrInvalidArg    = errors.New("invalid argument definition")

	ErrUndeclaredArg = errors.New("undeclared argument")

	ErrUnknownArgument     = errors.New("unknown argument")
	ErrUnknownSubcommand   = errors.New("unknown subcommand")
	ErrUnexpectedArgument  = errors.New("unexpected argument")
	ErrMissingRequired     = errors.New("missing required argument")
	ErrMissingSubcommand   = errors.New("missing subcommand")
	ErrMissingValue        = errors.New("missing value")
	ErrDuplicateOccurrence = errors.New("argument given more than once")
	ErrHelpRequested       = errors.New("help requested")
)

// DefinitionError is returned from [Command.Build] when a [Command] tree was assembled incorrectly.
// Command is the space separated path of the offending node.
type DefinitionError struct {
	Command string
	wrapped error
}

func newDefinitionError(command string, format string, args ...any) *DefinitionError {
	return &DefinitionError{Command: command, wrapped: fmt.Errorf(format, args...)}
}

func (e *DefinitionError) Error() string {
	if len(e.Command) == 0 {
		return "definition error: " + e.wrapped.Error()
	}
	return fmt.Sprintf("definition error in '%s': %s", e.Command, e.wrapped.Error())
}

func (e *DefinitionError) Is(err error) bool {
	_, ok := err.(*DefinitionError)
	return ok
}

func (e *DefinitionError) Unwrap() error {
	return e.wrapped
}

// ConfigurationError is returned when a declarative document can't be turned into a [Command] tree.
// Path locates the offending node from the document root.
type ConfigurationError struct {
	Path    []string
	wrapped error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error at %s: %s", strings.Join(e.Path, " > "), e.wrapped.Error())
}

func (e *ConfigurationError) Is(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

func (e *ConfigurationError) Unwrap() error {
	return e.wrapped
}

// ParseError is returned by an [Engine] when tokens don't satisfy a [Definition].
// Path holds the command names from the root to the level that failed.
// Arg and Token are set when the failure relates to a specific argument or input token.
type ParseError struct {
	Path    []string
	Arg     string
	Token   string
	wrapped error
}

func (e *ParseError) Error() string {
	var buf strings.Builder
	buf.WriteString("parse error")
	if len(e.Path) > 0 {
		buf.WriteString(" in '" + strings.Join(e.Path, " ") + "'")
	}
	buf.WriteString(": ")
	buf.WriteString(e.wrapped.Error())
	return buf.String()
}

func (e *ParseError) Is(err error) bool {
	_, ok := err.(*ParseError)
	return ok
}

func (e *ParseError) Unwrap() error {
	return e.wrapped
}
