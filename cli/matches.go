package cli

import (
	"fmt"
	"slices"
)

// Value is what was matched for a single [Arg].
// An [Arg] that wasn't given is represented by a Value where Present is false, not by an error.
type Value struct {
	Present     bool
	Values      []string
	Occurrences int
}

// Matches is the outcome of parsing tokens against one level of a [Definition] tree.
// It records what was given for each declared [Arg], and at most one invoked subcommand.
//
// Matches is read only once it's returned from an [Engine], so repeated calls to any accessor return the same result.
// Accessors other than [Matches.Lookup] panic when given a name that was never declared, since that's a programming error rather than missing input.
type Matches struct {
	def    *Definition
	values map[string]Value
	sub    *Matches
}

func newMatches(def *Definition) *Matches {
	return &Matches{def: def, values: map[string]Value{}}
}

func (m *Matches) record(name string, value string, hasValue bool) {
	v := m.values[name]
	v.Present = true
	v.Occurrences++
	if hasValue {
		v.Values = append(v.Values, value)
	}
	m.values[name] = v
}

// Name is the name of the [Definition] these Matches were parsed against.
func (m *Matches) Name() string {
	return m.def.name
}

// Definition returns the [Definition] these Matches were parsed against.
func (m *Matches) Definition() *Definition {
	return m.def
}

// Lookup returns the [Value] matched for the named [Arg].
// An error wrapping [ErrUndeclaredArg] is returned if the [Definition] has no such [Arg].
func (m *Matches) Lookup(name string) (Value, error) {
	if !m.def.HasArg(name) {
		return Value{}, fmt.Errorf("%w: '%s' is not declared on '%s'", ErrUndeclaredArg, name, m.def.name)
	}
	v := m.values[name]
	v.Values = slices.Clone(v.Values)
	return v, nil
}

func (m *Matches) mustLookup(name string) Value {
	v, err := m.Lookup(name)
	if err != nil {
		panic(err)
	}
	return v
}

// ValueOf returns the first value given for the named [Arg], and false if it wasn't given.
// Flags that don't take a value report an empty string when present.
func (m *Matches) ValueOf(name string) (string, bool) {
	v := m.mustLookup(name)
	if !v.Present {
		return "", false
	}
	if len(v.Values) == 0 {
		return "", true
	}
	return v.Values[0], true
}

// ValuesOf returns every value given for the named [Arg] in the order they were given, and false if it wasn't given.
func (m *Matches) ValuesOf(name string) ([]string, bool) {
	v := m.mustLookup(name)
	return v.Values, v.Present
}

// OccurrencesOf returns how many times the named [Arg] was given, which is zero if it wasn't given at all.
func (m *Matches) OccurrencesOf(name string) int {
	return m.mustLookup(name).Occurrences
}

// IsPresent reports whether the named [Arg] was given.
func (m *Matches) IsPresent(name string) bool {
	return m.mustLookup(name).Present
}

// Subcommand returns the name and [Matches] of the subcommand invoked at this level.
// The last return value is false if no subcommand was invoked.
func (m *Matches) Subcommand() (string, *Matches, bool) {
	if m.sub == nil {
		return "", nil, false
	}
	return m.sub.Name(), m.sub, true
}

// SubcommandName returns the name of the invoked subcommand, or an empty string if there isn't one.
func (m *Matches) SubcommandName() string {
	name, _, _ := m.Subcommand()
	return name
}

// Path returns the command names along the invoked chain, starting with this level.
func (m *Matches) Path() []string {
	var path []string
	for cur := m; cur != nil; cur = cur.sub {
		path = append(path, cur.Name())
	}
	return path
}

// Depth is the number of levels in the invoked chain, counting this one.
func (m *Matches) Depth() int {
	return len(m.Path())
}

type matchedArg struct {
	Name        string   `yaml:"name"`
	Values      []string `yaml:"values,omitempty"`
	Occurrences int      `yaml:"occurrences"`
}

type matchesDoc struct {
	Command    string       `yaml:"command"`
	Args       []matchedArg `yaml:"args,omitempty"`
	Subcommand *Matches     `yaml:"subcommand,omitempty"`
}

// MarshalYAML renders the given arguments in declaration order, followed by the invoked subcommand.
func (m *Matches) MarshalYAML() (any, error) {
	doc := matchesDoc{Command: m.Name(), Subcommand: m.sub}
	for _, arg := range m.def.args {
		v, ok := m.values[arg.Name]
		if !ok {
			continue
		}
		doc.Args = append(doc.Args, matchedArg{Name: arg.Name, Values: v.Values, Occurrences: v.Occurrences})
	}
	return doc, nil
}
