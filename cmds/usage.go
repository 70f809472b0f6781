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

// WriteUsage lists commands sorted by name, one per line, with sub commands indented.
func (p *Executor) WriteUsage(w io.Writer) {
	seen := make(map[*Command]bool)
	writeCommands(w, p.commands, 0, seen)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int, seen map[*Command]bool) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		command := commands[name]
		if command == nil {
			fmt.Fprintf(w, "%s%s\n", indent, name)
			continue
		}
		if seen[command] {
			// alias of a listed command
			continue
		}
		seen[command] = true
		line := indent + name
		if len(command.Aliases) > 0 {
			line += " (" + strings.Join(command.Aliases, ", ") + ")"
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
		if len(command.Subs) > 0 {
			writeCommands(w, command.Subs, depth+1, seen)
		}
	}
}
