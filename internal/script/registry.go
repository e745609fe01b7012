// Package script runs small command scripts against an edit handle. Every
// argument is an integer; scripts are untrusted, so each command checks its
// indexes and positions before calling into the editor.
package script

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"ansiedit/internal/edit"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArguments      = errors.New("wrong number of arguments")
)

// Env is what a command sees while it runs.
type Env struct {
	State  *edit.State
	output []string
}

// Printf appends one line to the script output.
func (e *Env) Printf(format string, args ...any) {
	e.output = append(e.output, fmt.Sprintf(format, args...))
}

// Command is one named script command taking exactly Args integers.
type Command struct {
	Name  string
	Args  int
	Usage string
	Run   func(e *Env, args []int) error
}

// ---- registry ----

var (
	registryMu sync.Mutex
	registry   map[string]Command
)

// commands returns the process wide registry, installing the builtins on
// first use. Callers hold registryMu.
func commands() map[string]Command {
	if registry == nil {
		registry = make(map[string]Command, len(builtins))
		for _, c := range builtins {
			registry[c.Name] = c
		}
	}
	return registry
}

// Register adds or replaces a command.
func Register(c Command) error {
	if c.Name == "" || c.Run == nil || c.Args < 0 {
		return fmt.Errorf("register %q: incomplete command", c.Name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	commands()[c.Name] = c
	return nil
}

// Lookup finds a command by name.
func Lookup(name string) (Command, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	c, ok := commands()[name]
	return c, ok
}

// Names lists the registered commands in order.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(commands()))
	for n := range commands() {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Reset drops every registered command. The builtins come back on the next
// use.
func Reset() {
	registryMu.Lock()
	registry = nil
	registryMu.Unlock()
}
