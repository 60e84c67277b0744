package cli

import (
	"fmt"
	flag "github.com/spf13/pflag"
	"strings"
)

// CommandUsages returns a string including the usage information for subcommands of this [Definition].
//
// Subcommands are listed in the order they were installed.
func (d *Definition) CommandUsages() string {
	var (
		buf    strings.Builder
		maxLen int
	)
	for _, child := range d.children {
		maxLen = max(maxLen, len(child.name))
	}
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for _, child := range d.children {
		buf.WriteString(fmt.Sprintf(fmtStr, child.name, child.about))
	}
	return buf.String()
}

// ArgUsages returns a string listing the declared arguments of this [Definition] with their help text.
//
// Positional arguments are listed first in the order they're filled, followed by switches as [flag.FlagSet.FlagUsages] renders them.
func (d *Definition) ArgUsages() string {
	var (
		buf    strings.Builder
		maxLen int
	)
	positionals := d.Positionals()
	labels := make([]string, len(positionals))
	for i, arg := range positionals {
		labels[i] = "<" + arg.Name + ">"
		if arg.Multiple {
			labels[i] += "..."
		}
		maxLen = max(maxLen, len(labels[i]))
	}
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for i, arg := range positionals {
		buf.WriteString(fmt.Sprintf(fmtStr, labels[i], arg.Help))
	}

	fs := newSwitchSet(d, &levelState{matches: newMatches(d)})
	fs.SortFlags = false
	var hidden []string
	fs.VisitAll(func(f *flag.Flag) {
		if strings.HasPrefix(f.Name, "\x00") {
			// FlagUsages splits each line at the first NUL.
			f.Name = "\x01" + f.Name[1:]
			hidden = append(hidden, ", --"+f.Name+" ")
		}
	})
	switches := fs.FlagUsages()
	for _, long := range hidden {
		switches = strings.Replace(switches, long, strings.Repeat(" ", len(long)), 1)
	}
	buf.WriteString(switches)
	return buf.String()
}
