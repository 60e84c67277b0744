/*
Package cli provides a data model for declaring a command's arguments and nested subcommands, and for querying the result of matching invocation tokens against that declaration.

There are a few policies for how this operates.

  - A subcommand is just a [Command] installed under another one. [WithName] creates one, and it can do anything a top level [Command] can.
  - A [Command] is a builder. [Command.Build] validates the whole tree once, and returns an immutable [Definition] that may be shared by any number of goroutines.
  - Installing two subcommands or arguments with the same name at one level is rejected when building. The first registration is kept.
  - Arguments that weren't given are reported as absent, not as errors. Asking about an argument that was never declared is a programming error, and panics.

# Invocation

An [Engine] matches tokens against a [Definition] and returns a [Matches] tree.
At each level, the first token that isn't a switch is taken as a subcommand if it exactly matches the name of one, and parsing continues with that subcommand.
Otherwise, it's used as the next positional value.

	CLI_NAME [FLAGS...] [ARGS...] [SUB-COMMAND [FLAGS...] [ARGS...]...]

[Parser] is the provided [Engine], and uses [pflag] for posix style switches.

# Declarative definitions

A [Command] tree may also be loaded from a YAML or JSON document with [FromYAML].
Problems with the document are reported as a [ConfigurationError] that locates the offending node from the root, for example:

	root > "config" > args[2]

[pflag]: https://github.com/spf13/pflag
*/
package cli
