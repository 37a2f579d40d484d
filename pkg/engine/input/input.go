// Package input reads stepping commands for interactive watch sessions.
package input

import (
	"bufio"
	"os"
	"strings"
)

// Command is a high-level instruction from the person watching a run
type Command int

// Commands
const (
	CommandStep Command = iota // advance one tick
	CommandRun                 // stop prompting, run to completion
	CommandQuit                // abandon the run
)

var reader = bufio.NewReader(os.Stdin)

// ReadCommand blocks for one line of input and maps it to a Command.
// Input errors (EOF, closed stdin) quit the session.
func ReadCommand() Command {
	line, err := reader.ReadString('\n')
	if err != nil {
		return CommandQuit
	}
	return ParseCommand(line)
}

// ParseCommand maps one input line to a Command. An empty line (bare Enter)
// steps; unrecognized input also steps, so the fast path of hammering Enter
// never stalls a session.
func ParseCommand(line string) Command {
	switch strings.TrimSpace(strings.ToLower(line)) {
	case "q", "quit":
		return CommandQuit
	case "r", "run", "c", "continue":
		return CommandRun
	default:
		return CommandStep
	}
}
