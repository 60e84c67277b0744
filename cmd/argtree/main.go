// Command argtree loads a command definition from a YAML or JSON file, parses tokens against it, and prints the matches as YAML.
//
//	argtree -d DEFINITION [-v] [--] TOKENS...
//
// Tokens that look like switches must follow "--" so they aren't taken as flags for argtree itself.
package main

import (
	"errors"
	"fmt"
	"github.com/saylorsolutions/argtree/cli"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
	"io"
	"log/slog"
	"os"
)

const (
	exitOK = iota
	exitDefinition
	exitParse
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("argtree", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	defPath := fs.StringP("def", "d", "", "Path to a YAML or JSON command definition")
	verbose := fs.BoolP("verbose", "v", false, "Enables debug logging")
	usage := fs.BoolP("usage", "u", false, "Prints the arguments and subcommands of the definition instead of parsing")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "USAGE:\nargtree -d DEFINITION [FLAGS] [--] TOKENS...\n\nFLAGS\n%s", fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.Usage()
		return exitParse
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if len(*defPath) == 0 {
		logger.Error("A definition file is required")
		fs.Usage()
		return exitDefinition
	}
	def, err := load(*defPath)
	if err != nil {
		logger.Error("Failed to load definition", "path", *defPath, "error", err)
		return exitDefinition
	}
	logger.Debug("Loaded definition", "command", def.Name(), "depth", def.Depth())

	if *usage {
		_, _ = fmt.Fprintf(stdout, "%s %s\n\nARGS\n%s\nCOMMANDS\n%s", def.Name(), def.Version(), def.ArgUsages(), def.CommandUsages())
		return exitOK
	}

	matches, err := cli.NewParser(cli.WithLogger(logger)).Parse(def, fs.Args())
	if err != nil {
		logger.Error("Failed to parse tokens", "error", err)
		return exitParse
	}
	out, err := yaml.Marshal(matches)
	if err != nil {
		logger.Error("Failed to render matches", "error", err)
		return exitParse
	}
	_, _ = stdout.Write(out)
	return exitOK
}

func load(path string) (*cli.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cmd, err := cli.FromYAML(data)
	if err != nil {
		return nil, err
	}
	return cmd.Build()
}
