package cli

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDefinitionError(t *testing.T) {
	err := newDefinitionError("myprog config", "%w: subcommand 'set'", ErrDuplicateName)
	assert.ErrorIs(t, err, &DefinitionError{})
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, "definition error in 'myprog config': duplicate name: subcommand 'set'", err.Error())

	rootErr := newDefinitionError("", "%w: command", ErrEmptyName)
	assert.Equal(t, "definition error: empty name: command", rootErr.Error())
}

func TestErrorTypes_AreDistinct(t *testing.T) {
	defErr := newDefinitionError("a", "%w", ErrEmptyName)
	cfgErr := configPath{"root"}.errorf("%w", ErrMissingField)
	parseErr := (&levelState{path: []string{"a"}}).fail("", "", "%w", ErrMissingRequired)

	assert.False(t, errors.Is(defErr, &ConfigurationError{}))
	assert.False(t, errors.Is(defErr, &ParseError{}))
	assert.False(t, errors.Is(cfgErr, &DefinitionError{}))
	assert.False(t, errors.Is(cfgErr, &ParseError{}))
	assert.False(t, errors.Is(parseErr, &DefinitionError{}))
	assert.False(t, errors.Is(parseErr, &ConfigurationError{}))
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Path: []string{"myprog", "run"}, Arg: "target", wrapped: ErrMissingRequired}
	assert.Equal(t, "parse error in 'myprog run': missing required argument", err.Error())

	var target *ParseError
	assert.True(t, errors.As(error(err), &target))
	assert.Equal(t, "target", target.Arg)
}
