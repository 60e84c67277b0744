package cli

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNew_EmptyName(t *testing.T) {
	_, err := New("").Build()
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.ErrorIs(t, err, &DefinitionError{})
}

func TestNew_InvalidName(t *testing.T) {
	tests := map[string]struct {
		name string
		want error
	}{
		"Single dash": {
			name: "-x",
			want: ErrInvalidName,
		},
		"Double dash": {
			name: "--config",
			want: ErrInvalidName,
		},
		"Bare dash": {
			name: "-",
			want: ErrInvalidName,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New("myprog").Subcommand(WithName(tc.name)).Build()
			assert.ErrorIs(t, err, tc.want)
			var defErr *DefinitionError
			require.ErrorAs(t, err, &defErr)
			assert.Equal(t, "myprog "+tc.name, defErr.Command)
		})
	}

	_, err := New("my-prog").Subcommand(WithName("set-value")).Build()
	assert.NoError(t, err, "A dash inside a name is allowed")
}

func TestWithName_Installed(t *testing.T) {
	child := WithName("config").
		About("Used for configuration").
		Arg(Arg{Name: "config_file", Help: "The configuration file to use", Index: 1}).
		Subcommand(WithName("set").Args(
			Positional("key", 1),
			Positional("value", 2),
			Flag("force", "f", "force"),
		))
	root := New("myprog").Subcommand(child)

	rootDef, err := root.Build()
	require.NoError(t, err)
	got, ok := rootDef.Subcommand("config")
	require.True(t, ok)
	assert.Equal(t, MustBuild(child), got, "An installed subcommand should be identical to the same command built on its own")
	assert.Equal(t, "config", got.Name())
	assert.Equal(t, "Used for configuration", got.About())
	assert.Len(t, got.Args(), 1)
	set, ok := got.Subcommand("set")
	require.True(t, ok)
	assert.Len(t, set.Args(), 3)
}

func TestCommand_Subcommand_DuplicateRejected(t *testing.T) {
	first := WithName("config").About("first")
	second := WithName("config").About("second")
	root := New("myprog").Subcommand(first).Subcommand(second)

	_, err := root.Build()
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.ErrorIs(t, err, &DefinitionError{})
	require.Len(t, root.children, 1)
	assert.Same(t, first, root.children[0], "The first subcommand registered should be kept")

	var defErr *DefinitionError
	require.ErrorAs(t, err, &defErr)
	assert.Equal(t, "myprog", defErr.Command)
}

func TestCommand_Subcommand_Nil(t *testing.T) {
	assert.Panics(t, func() {
		New("myprog").Subcommand(nil)
	})
}

func TestCommand_Arg_Invalid(t *testing.T) {
	tests := map[string]struct {
		existing []Arg
		arg      Arg
		want     error
	}{
		"Empty name": {
			arg:  Arg{Long: "verbose"},
			want: ErrEmptyName,
		},
		"Duplicate name": {
			existing: []Arg{Positional("file", 1)},
			arg:      Flag("file", "f", ""),
			want:     ErrDuplicateName,
		},
		"Duplicate short": {
			existing: []Arg{Flag("verbose", "v", "verbose")},
			arg:      Flag("version", "v", "version"),
			want:     ErrDuplicateName,
		},
		"Duplicate long": {
			existing: []Arg{Flag("verbose", "v", "verbose")},
			arg:      Flag("loud", "l", "verbose"),
			want:     ErrDuplicateName,
		},
		"Duplicate index": {
			existing: []Arg{Positional("input", 1)},
			arg:      Positional("output", 1),
			want:     ErrDuplicateName,
		},
		"Long short spelling": {
			arg:  Flag("verbose", "vv", ""),
			want: ErrInvalidArg,
		},
		"Switch with index": {
			arg:  Arg{Name: "verbose", Short: "v", Index: 1},
			want: ErrInvalidArg,
		},
		"Negative index": {
			arg:  Positional("input", -1),
			want: ErrInvalidArg,
		},
		"Bare dash": {
			arg:  Flag("stdin", "-", ""),
			want: ErrInvalidArg,
		},
		"Equals in long": {
			arg:  Option("kv", "", "a=b"),
			want: ErrInvalidArg,
		},
		"Equals as short": {
			arg:  Flag("eq", "=", ""),
			want: ErrInvalidArg,
		},
		"Long with leading dash": {
			arg:  Flag("verbose", "", "-verbose"),
			want: ErrInvalidArg,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := New("test").Args(tc.existing...).Arg(tc.arg)
			_, err := cmd.Build()
			assert.ErrorIs(t, err, tc.want)
			assert.Len(t, cmd.args, len(tc.existing), "A rejected argument should not be added")
		})
	}
}

func TestCommand_Build_ReportsAllErrors(t *testing.T) {
	root := New("myprog").
		Arg(Positional("", 1)).
		Subcommand(WithName("config").Arg(Flag("a", "a", "")).Arg(Flag("b", "a", ""))).
		Subcommand(New(""))

	_, err := root.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Contains(t, err.Error(), "definition error in 'myprog config'")
}

func TestCommand_Build_Snapshot(t *testing.T) {
	cmd := New("myprog").Arg(Positional("input", 1))
	def, err := cmd.Build()
	require.NoError(t, err)

	cmd.Arg(Positional("output", 2)).Subcommand(WithName("config")).About("changed")
	assert.Len(t, def.Args(), 1)
	assert.Empty(t, def.Subcommands())
	assert.Empty(t, def.About())

	args := def.Args()
	args[0].Name = "mutated"
	assert.True(t, def.HasArg("input"), "Mutating returned arguments should not change the definition")
}

func TestCommand_Build_Cycle(t *testing.T) {
	a := New("a")
	b := New("b")
	a.Subcommand(b)
	b.Subcommand(a)

	_, err := a.Build()
	assert.ErrorIs(t, err, ErrCycle)
}

func TestCommand_Build_SharedChild(t *testing.T) {
	shared := WithName("status").Arg(Flag("short", "s", "short"))
	root := New("myprog").
		Subcommand(WithName("remote").Subcommand(shared)).
		Subcommand(WithName("local").Subcommand(shared))

	def, err := root.Build()
	require.NoError(t, err)
	remote, _ := def.Subcommand("remote")
	local, _ := def.Subcommand("local")
	remoteStatus, _ := remote.Subcommand("status")
	localStatus, _ := local.Subcommand("status")
	assert.Equal(t, remoteStatus, localStatus)
}

func TestCommand_Build_MultiplePositionalNotLast(t *testing.T) {
	_, err := New("cp").Args(
		Arg{Name: "sources", Index: 1, Multiple: true},
		Positional("dest", 2),
	).Build()
	assert.ErrorIs(t, err, ErrInvalidArg)

	_, err = New("cp").Args(
		Positional("dest", 1),
		Arg{Name: "sources", Index: 2, Multiple: true},
	).Build()
	assert.NoError(t, err)
}

func TestDefinition_Positionals(t *testing.T) {
	def := MustBuild(New("test").Args(
		Arg{Name: "late"},
		Positional("second", 2),
		Flag("verbose", "v", ""),
		Positional("first", 1),
		Arg{Name: "later"},
	))

	var names []string
	for _, arg := range def.Positionals() {
		names = append(names, arg.Name)
	}
	assert.Equal(t, []string{"first", "second", "late", "later"}, names)
}

func TestDefinition_Subcommands_InsertionOrder(t *testing.T) {
	def := MustBuild(New("myprog").
		Subcommand(WithName("zeta")).
		Subcommand(WithName("alpha")).
		Subcommand(WithName("mid")))

	var names []string
	for _, sub := range def.Subcommands() {
		names = append(names, sub.Name())
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
	_, ok := def.Subcommand("nope")
	assert.False(t, ok)
}

func TestDefinition_Depth(t *testing.T) {
	assert.Equal(t, 1, MustBuild(New("leaf")).Depth())
	def := MustBuild(New("a").
		Subcommand(WithName("b")).
		Subcommand(WithName("c").Subcommand(WithName("d"))))
	assert.Equal(t, 3, def.Depth())
}

func TestMustBuild(t *testing.T) {
	assert.Panics(t, func() {
		MustBuild(New(""))
	})
	assert.NotPanics(t, func() {
		MustBuild(New("ok"))
	})
}
