package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	var names []string
	for name, command := range p.commands {
		if slices.Contains(command.Aliases, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		writeCommandUsage(w, name, p.commands[name], 0)
	}
}

func writeCommandUsage(w io.Writer, name string, command *Command, depth int) {
	if command == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	line := indent + strings.Join(append([]string{name}, command.argNames()...), " ")
	if len(command.Aliases) > 0 {
		line += " (" + strings.Join(command.Aliases, ", ") + ")"
	}
	if command.Description != "" {
		fmt.Fprintf(w, "%-40s %s\n", line, command.Description)
	} else {
		fmt.Fprintln(w, line)
	}
	subNames := make([]string, 0, len(command.Subs))
	for subName := range command.Subs {
		subNames = append(subNames, subName)
	}
	slices.Sort(subNames)
	for _, subName := range subNames {
		writeCommandUsage(w, subName, command.Subs[subName], depth+1)
	}
}
