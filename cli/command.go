package cli

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

var ErrCycle = errors.New("command installed under itself")

// Command is a builder for a [Definition].
// The same type is used for the root command and every subcommand at any depth, so a subcommand can do anything a top level command can.
//
// Builder methods may be chained. Problems are recorded as they happen and reported together by [Command.Build].
type Command struct {
	name        string
	about       string
	version     string
	subRequired bool
	args        []Arg
	children    []*Command
	errs        []error
}

// New creates a new [Command] with the given name.
// An empty name is reported as an [ErrEmptyName] error when the [Command] is built.
// A name starting with "-" can't be dispatched, and is reported as an [ErrInvalidName] error.
func New(name string) *Command {
	cmd := &Command{name: name}
	switch {
	case len(name) == 0:
		cmd.errs = append(cmd.errs, fmt.Errorf("%w: command", ErrEmptyName))
	case strings.HasPrefix(name, "-"):
		cmd.errs = append(cmd.errs, fmt.Errorf("%w: command '%s' can't start with '-'", ErrInvalidName, name))
	}
	return cmd
}

// Name returns the name this [Command] was created with.
func (c *Command) Name() string {
	return c.name
}

// About sets a short description of the [Command].
func (c *Command) About(about string) *Command {
	c.about = about
	return c
}

// Version sets the version string reported for the [Command].
func (c *Command) Version(version string) *Command {
	c.version = version
	return c
}

// SubcommandRequired signals to the [Engine] that invoking this [Command] without one of its subcommands is an error.
func (c *Command) SubcommandRequired(required bool) *Command {
	c.subRequired = required
	return c
}

// Arg appends an [Arg] to this [Command].
// An [Arg] that reuses the name, spelling, or index of an existing [Arg] is rejected and the existing one is kept.
func (c *Command) Arg(arg Arg) *Command {
	if err := arg.validate(); err != nil {
		c.errs = append(c.errs, err)
		return c
	}
	for _, existing := range c.args {
		switch {
		case existing.Name == arg.Name:
			c.errs = append(c.errs, fmt.Errorf("%w: argument '%s'", ErrDuplicateName, arg.Name))
			return c
		case len(arg.Short) > 0 && existing.Short == arg.Short:
			c.errs = append(c.errs, fmt.Errorf("%w: short spelling '-%s' of '%s' is used by '%s'", ErrDuplicateName, arg.Short, arg.Name, existing.Name))
			return c
		case len(arg.Long) > 0 && existing.Long == arg.Long:
			c.errs = append(c.errs, fmt.Errorf("%w: long spelling '--%s' of '%s' is used by '%s'", ErrDuplicateName, arg.Long, arg.Name, existing.Name))
			return c
		case arg.Index > 0 && existing.Index == arg.Index:
			c.errs = append(c.errs, fmt.Errorf("%w: index %d of '%s' is used by '%s'", ErrDuplicateName, arg.Index, arg.Name, existing.Name))
			return c
		}
	}
	c.args = append(c.args, arg)
	return c
}

// Args appends each [Arg] in order, as if [Command.Arg] was called for each.
func (c *Command) Args(args ...Arg) *Command {
	for _, arg := range args {
		c.Arg(arg)
	}
	return c
}

// Subcommand installs child under this [Command], keyed by the child's own name.
// Installing a second child with a name that's already present is rejected, and the first child is kept.
//
// Passing a nil [Command] will panic.
func (c *Command) Subcommand(child *Command) *Command {
	if child == nil {
		panic("nil subcommand")
	}
	if len(child.name) > 0 {
		for _, existing := range c.children {
			if existing.name == child.name {
				c.errs = append(c.errs, fmt.Errorf("%w: subcommand '%s'", ErrDuplicateName, child.name))
				return c
			}
		}
	}
	c.children = append(c.children, child)
	return c
}

// Build validates the whole [Command] tree and returns an immutable snapshot of it.
// Every problem in the tree is reported as a [DefinitionError], joined with [errors.Join].
//
// Changes made to the [Command] after Build are not reflected in the returned [Definition].
func (c *Command) Build() (*Definition, error) {
	var errs []error
	def := c.build(nil, map[*Command]bool{}, &errs)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return def, nil
}

func (c *Command) build(parent []string, visiting map[*Command]bool, errs *[]error) *Definition {
	path := append(slices.Clone(parent), c.name)
	pathStr := strings.Join(path, " ")
	if visiting[c] {
		*errs = append(*errs, newDefinitionError(pathStr, "%w: '%s'", ErrCycle, c.name))
		return nil
	}
	visiting[c] = true
	defer delete(visiting, c)

	for _, err := range c.errs {
		*errs = append(*errs, &DefinitionError{Command: pathStr, wrapped: err})
	}
	def := &Definition{
		name:        c.name,
		about:       c.about,
		version:     c.version,
		subRequired: c.subRequired,
		args:        slices.Clone(c.args),
		argIndex:    make(map[string]int, len(c.args)),
		children:    make([]*Definition, 0, len(c.children)),
		childIndex:  make(map[string]int, len(c.children)),
	}
	for i, arg := range def.args {
		def.argIndex[arg.Name] = i
		if arg.IsPositional() {
			def.positionals = append(def.positionals, i)
		}
	}
	sort.SliceStable(def.positionals, func(i, j int) bool {
		a, b := def.args[def.positionals[i]].Index, def.args[def.positionals[j]].Index
		if a == 0 || b == 0 {
			return a != 0 && b == 0
		}
		return a < b
	})
	for _, idx := range def.positionals[:max(len(def.positionals)-1, 0)] {
		if def.args[idx].Multiple {
			*errs = append(*errs, newDefinitionError(pathStr, "%w: only the last positional argument may be multiple, not '%s'", ErrInvalidArg, def.args[idx].Name))
		}
	}
	for _, child := range c.children {
		childDef := child.build(path, visiting, errs)
		if childDef == nil {
			continue
		}
		def.childIndex[childDef.name] = len(def.children)
		def.children = append(def.children, childDef)
	}
	return def
}

// MustBuild calls [Command.Build], and panics if it returns an error.
// This is convenient for package level definitions that are known to be valid.
func MustBuild(cmd *Command) *Definition {
	def, err := cmd.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// Definition is the immutable result of [Command.Build].
// There are no methods that change a Definition, so one may be shared by any number of goroutines and parse calls.
type Definition struct {
	name        string
	about       string
	version     string
	subRequired bool
	args        []Arg
	argIndex    map[string]int
	positionals []int
	children    []*Definition
	childIndex  map[string]int
}

func (d *Definition) Name() string {
	return d.name
}

func (d *Definition) About() string {
	return d.about
}

func (d *Definition) Version() string {
	return d.version
}

func (d *Definition) SubcommandRequired() bool {
	return d.subRequired
}

// Args returns a copy of the declared [Arg] values, in declaration order.
func (d *Definition) Args() []Arg {
	return slices.Clone(d.args)
}

// Arg looks up a declared [Arg] by name.
func (d *Definition) Arg(name string) (Arg, bool) {
	i, ok := d.argIndex[name]
	if !ok {
		return Arg{}, false
	}
	return d.args[i], true
}

// HasArg reports whether an [Arg] with the given name was declared.
func (d *Definition) HasArg(name string) bool {
	_, ok := d.argIndex[name]
	return ok
}

// Positionals returns the positional [Arg] values in the order they're matched.
func (d *Definition) Positionals() []Arg {
	pos := make([]Arg, len(d.positionals))
	for i, idx := range d.positionals {
		pos[i] = d.args[idx]
	}
	return pos
}

// Subcommands returns the installed subcommands in installation order.
func (d *Definition) Subcommands() []*Definition {
	return slices.Clone(d.children)
}

// Subcommand looks up a direct subcommand by name.
func (d *Definition) Subcommand(name string) (*Definition, bool) {
	i, ok := d.childIndex[name]
	if !ok {
		return nil, false
	}
	return d.children[i], true
}

// Depth is the number of levels in the tree rooted at this [Definition], counting itself.
func (d *Definition) Depth() int {
	var deepest int
	for _, child := range d.children {
		deepest = max(deepest, child.Depth())
	}
	return deepest + 1
}
