package cli

import (
	"fmt"
	"strings"
)

// Arg describes one flag, option, or positional value accepted by a [Command].
//
// An Arg with a Short or Long spelling is a switch. It's a flag when TakesValue is false, and an option otherwise.
// An Arg with neither spelling is positional, ordered by Index if one is set.
// Positional values without an Index follow indexed ones in declaration order.
type Arg struct {
	Name       string
	Help       string
	Short      string // Short is a single character spelling, used as -s.
	Long       string // Long is used as --long.
	Index      int    // Index is the 1-based position of a positional value, or 0 if unset.
	Required   bool
	Multiple   bool // Multiple allows the Arg to occur more than once.
	TakesValue bool
}

// Positional creates a positional [Arg] at the given 1-based index.
func Positional(name string, index int) Arg {
	return Arg{Name: name, Index: index}
}

// Flag creates a boolean switch [Arg]. Either spelling may be empty, but not both.
func Flag(name, short, long string) Arg {
	return Arg{Name: name, Short: short, Long: long}
}

// Option creates a switch [Arg] that takes a value.
func Option(name, short, long string) Arg {
	return Arg{Name: name, Short: short, Long: long, TakesValue: true}
}

// IsSwitch reports whether this [Arg] is given with a -s or --long spelling.
func (a Arg) IsSwitch() bool {
	return len(a.Short) > 0 || len(a.Long) > 0
}

// IsPositional reports whether this [Arg] is matched by position.
func (a Arg) IsPositional() bool {
	return !a.IsSwitch()
}

func (a Arg) validate() error {
	if len(a.Name) == 0 {
		return fmt.Errorf("%w: argument", ErrEmptyName)
	}
	if len(a.Short) > 1 {
		return fmt.Errorf("%w: short spelling '%s' of '%s' must be a single ASCII character", ErrInvalidArg, a.Short, a.Name)
	}
	if a.Short == "-" || a.Long == "-" {
		return fmt.Errorf("%w: '%s' can't be spelled with a bare dash", ErrInvalidArg, a.Name)
	}
	if a.Short == "=" || strings.Contains(a.Long, "=") {
		return fmt.Errorf("%w: spelling of '%s' can't contain '='", ErrInvalidArg, a.Name)
	}
	if strings.HasPrefix(a.Long, "-") {
		return fmt.Errorf("%w: long spelling '%s' of '%s' can't start with '-'", ErrInvalidArg, a.Long, a.Name)
	}
	if a.Index < 0 {
		return fmt.Errorf("%w: index of '%s' must not be negative", ErrInvalidArg, a.Name)
	}
	if a.IsSwitch() && a.Index > 0 {
		return fmt.Errorf("%w: switch '%s' can't have a positional index", ErrInvalidArg, a.Name)
	}
	return nil
}
