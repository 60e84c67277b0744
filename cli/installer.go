package cli

// WithName creates a new [Command] meant to be installed as a subcommand with [Command.Subcommand].
// There is no separate subcommand type, so the result supports everything a top level [Command] does, including its own subcommands.
func WithName(name string) *Command {
	return New(name)
}

// CommandSpec is the typed shape of a declarative command document.
type CommandSpec struct {
	Name               string        `yaml:"name"`
	About              string        `yaml:"about,omitempty"`
	Version            string        `yaml:"version,omitempty"`
	SubcommandRequired bool          `yaml:"subcommand_required,omitempty"`
	Args               []ArgSpec     `yaml:"args,omitempty"`
	Subcommands        []CommandSpec `yaml:"subcommands,omitempty"`
}

// ArgSpec is the typed shape of an argument declaration within a [CommandSpec].
type ArgSpec struct {
	Name       string `yaml:"name"`
	Help       string `yaml:"help,omitempty"`
	Index      int    `yaml:"index,omitempty"`
	Required   bool   `yaml:"required,omitempty"`
	Short      string `yaml:"short,omitempty"`
	Long       string `yaml:"long,omitempty"`
	Multiple   bool   `yaml:"multiple,omitempty"`
	TakesValue bool   `yaml:"takes_value,omitempty"`
}

func (s ArgSpec) arg() Arg {
	return Arg{
		Name:       s.Name,
		Help:       s.Help,
		Short:      s.Short,
		Long:       s.Long,
		Index:      s.Index,
		Required:   s.Required,
		Multiple:   s.Multiple,
		TakesValue: s.TakesValue,
	}
}

// FromSpec builds a [Command] tree from a [CommandSpec], recursing into its subcommands.
// Problems are reported as a [ConfigurationError] locating the offending node.
func FromSpec(spec CommandSpec) (*Command, error) {
	return fromSpec(spec, configPath{"root"})
}

func fromSpec(spec CommandSpec, path configPath) (*Command, error) {
	if len(spec.Name) == 0 {
		return nil, path.errorf("%w: 'name'", ErrMissingField)
	}
	cmd := New(spec.Name).
		About(spec.About).
		Version(spec.Version).
		SubcommandRequired(spec.SubcommandRequired)
	if len(cmd.errs) > 0 {
		return nil, path.wrap(cmd.errs[0])
	}
	path = path.named(spec.Name)
	for i, argSpec := range spec.Args {
		recorded := len(cmd.errs)
		if cmd.Arg(argSpec.arg()); len(cmd.errs) > recorded {
			return nil, path.index("args", i).wrap(cmd.errs[recorded])
		}
	}
	for i, subSpec := range spec.Subcommands {
		subPath := path.index("subcommands", i)
		sub, err := fromSpec(subSpec, subPath)
		if err != nil {
			return nil, err
		}
		recorded := len(cmd.errs)
		if cmd.Subcommand(sub); len(cmd.errs) > recorded {
			return nil, subPath.wrap(cmd.errs[recorded])
		}
	}
	return cmd, nil
}
