package commands

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMissingCommand is returned when no command name is given.
	ErrMissingCommand = errors.New("missing command")
	// ErrUnknownCommand is returned for names that were never registered.
	ErrUnknownCommand = errors.New("unknown command")
)

// Command is a named action, run from a key binding or by name.
type Command struct {
	Name string
	Help string
	Run  func() error
}

// Registry holds commands by name and the keys bound to them. Key codes are opaque
// integers supplied by the windowing layer.
type Registry struct {
	cmds map[string]*Command
	keys map[int32]string
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command), keys: make(map[int32]string)}
}

// Register adds or replaces a command.
func (r *Registry) Register(name, help string, run func() error) {
	r.cmds[name] = &Command{Name: name, Help: help, Run: run}
}

// Bind makes key run the named command. The command must already be registered.
func (r *Registry) Bind(key int32, name string) error {
	if _, ok := r.cmds[name]; !ok {
		return fmt.Errorf("bind %d: %w: %s", key, ErrUnknownCommand, name)
	}
	r.keys[key] = name
	return nil
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	c, ok := r.cmds[name]
	return c, ok
}

// Commands returns every command sorted by name.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, len(r.cmds))
	for _, c := range r.cmds {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Execute runs the named command.
func (r *Registry) Execute(name string) error {
	if name == "" {
		return ErrMissingCommand
	}
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd.Run()
}

// HandleKey runs the command bound to key. handled is false when nothing is bound.
func (r *Registry) HandleKey(key int32) (handled bool, err error) {
	name, ok := r.keys[key]
	if !ok {
		return false, nil
	}
	return true, r.Execute(name)
}
