package cli

import (
	"errors"
	"fmt"
	flag "github.com/spf13/pflag"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Engine matches raw tokens against a [Definition] tree.
type Engine interface {
	Parse(def *Definition, args []string) (*Matches, error)
}

var _ Engine = (*Parser)(nil)

// ParserOption configures a [Parser] created with [NewParser].
type ParserOption func(p *Parser)

// WithLogger sets the logger used to trace parsing decisions at debug level.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser is an [Engine] that uses [pflag] for switches.
//
// At each level, switches are parsed until a token that isn't a switch is found.
// If that token is exactly the name of a subcommand, the rest of the tokens are parsed against that subcommand.
// Otherwise, it fills the next positional [Arg] and parsing continues at the same level.
// Tokens following "--" are always positional.
//
// A Parser holds no state between calls, so it may be used from multiple goroutines.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a [Parser] with the given options applied.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses args against def with a default [Parser].
func Parse(def *Definition, args []string) (*Matches, error) {
	return defaultParser.Parse(def, args)
}

// Parse matches args against def, returning a new [Matches] tree owned by the caller.
// Any failure is returned as a [ParseError], and no partial [Matches] are returned.
//
// Passing a nil [Definition] will panic.
func (p *Parser) Parse(def *Definition, args []string) (*Matches, error) {
	if def == nil {
		panic("nil definition")
	}
	return p.parse(def, args, nil)
}

// switchName is the long name registered with pflag for an [Arg].
// A switch with only a short spelling gets a name that can't be typed, since argv can't contain NUL.
func switchName(arg Arg) string {
	if len(arg.Long) > 0 {
		return arg.Long
	}
	return "\x00" + arg.Name
}

// newSwitchSet registers every switch of def with a new [flag.FlagSet], recording matches into state.
func newSwitchSet(def *Definition, state *levelState) *flag.FlagSet {
	fs := flag.NewFlagSet(def.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SetInterspersed(false)
	for _, arg := range def.args {
		if !arg.IsSwitch() {
			continue
		}
		f := fs.VarPF(&switchValue{arg: arg, state: state}, switchName(arg), arg.Short, arg.Help)
		if !arg.TakesValue {
			f.NoOptDefVal = "true"
		}
	}
	return fs
}

type levelState struct {
	path    []string
	matches *Matches
	err     *ParseError
}

func (s *levelState) fail(arg, token string, format string, args ...any) *ParseError {
	return &ParseError{
		Path:    slices.Clone(s.path),
		Arg:     arg,
		Token:   token,
		wrapped: fmt.Errorf(format, args...),
	}
}

type switchValue struct {
	arg   Arg
	state *levelState
}

func (v *switchValue) String() string {
	return ""
}

func (v *switchValue) Type() string {
	if v.arg.TakesValue {
		return "string"
	}
	return "bool"
}

func (v *switchValue) Set(val string) error {
	m := v.state.matches
	if !v.arg.TakesValue && val != "true" {
		v.state.err = v.state.fail(v.arg.Name, val, "%w: flag '%s' doesn't take a value", ErrUnexpectedArgument, v.arg.Name)
		return v.state.err
	}
	if !v.arg.Multiple && m.values[v.arg.Name].Present {
		v.state.err = v.state.fail(v.arg.Name, val, "%w: '%s'", ErrDuplicateOccurrence, v.arg.Name)
		return v.state.err
	}
	m.record(v.arg.Name, val, v.arg.TakesValue)
	return nil
}

func (p *Parser) parse(def *Definition, args []string, parent []string) (*Matches, error) {
	state := &levelState{
		path:    append(slices.Clone(parent), def.name),
		matches: newMatches(def),
	}
	p.logger.Debug("Parsing command", "command", strings.Join(state.path, " "), "tokens", len(args))

	fs := newSwitchSet(def, state)

	positionals := def.Positionals()
	var nextPositional int
	assign := func(token string) error {
		if nextPositional >= len(positionals) {
			if len(def.children) > 0 {
				return state.fail("", token, "%w: '%s'", ErrUnknownSubcommand, token)
			}
			return state.fail("", token, "%w: '%s'", ErrUnexpectedArgument, token)
		}
		arg := positionals[nextPositional]
		state.matches.record(arg.Name, token, true)
		if !arg.Multiple {
			nextPositional++
		}
		return nil
	}

	rest := args
	for len(rest) > 0 {
		if err := fs.Parse(rest); err != nil {
			return nil, state.flagError(err)
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		if fs.ArgsLenAtDash() == 0 {
			for _, token := range rest {
				if err := assign(token); err != nil {
					return nil, err
				}
			}
			break
		}
		token := rest[0]
		rest = rest[1:]
		if child, ok := def.Subcommand(token); ok {
			p.logger.Debug("Dispatching to subcommand", "command", strings.Join(state.path, " "), "subcommand", token)
			sub, err := p.parse(child, rest, state.path)
			if err != nil {
				return nil, err
			}
			state.matches.sub = sub
			break
		}
		if err := assign(token); err != nil {
			return nil, err
		}
	}

	for _, arg := range def.args {
		if arg.Required && !state.matches.values[arg.Name].Present {
			return nil, state.fail(arg.Name, "", "%w: '%s'", ErrMissingRequired, arg.Name)
		}
	}
	if def.subRequired && len(def.children) > 0 && state.matches.sub == nil {
		return nil, state.fail("", "", "%w: '%s' requires one of its subcommands", ErrMissingSubcommand, def.name)
	}
	return state.matches, nil
}

// flagError translates an error returned from pflag into a [ParseError].
func (s *levelState) flagError(err error) error {
	if s.err != nil {
		return s.err
	}
	if errors.Is(err, flag.ErrHelp) {
		return s.fail("", "", "%w", ErrHelpRequested)
	}
	msg := strings.ReplaceAll(err.Error(), "\x00", "")
	if strings.HasPrefix(msg, "flag needs an argument") {
		return s.fail("", "", "%w: %s", ErrMissingValue, msg)
	}
	return s.fail("", "", "%w: %s", ErrUnknownArgument, msg)
}
