/*
Package argtree is the root of a module for declaring command line interfaces as trees of commands, arguments, and subcommands.

The [github.com/saylorsolutions/argtree/cli] package holds the model and parser, and the argtree command under cmd/ can be used to try out definition documents.
*/
package argtree
