package ecs

import (
	"fmt"

	"go.uber.org/multierr"
)

// Command is a deferred structural mutation applied between ticks.
type Command interface {
	Apply(w *World) error
}

// CommandFunc adapts a function to Command.
type CommandFunc func(w *World) error

func (f CommandFunc) Apply(w *World) error { return f(w) }

// Commands accumulates spawn/despawn/insert/remove requests issued by systems
// during a tick. The scheduler applies them once, in submission order.
type Commands struct {
	world    *World
	commands []Command
}

func NewCommands(w *World) *Commands {
	return &Commands{world: w, commands: make([]Command, 0, 64)}
}

// Len reports how many commands are queued.
func (c *Commands) Len() int {
	return len(c.commands)
}

// Push appends a command to the buffer.
func (c *Commands) Push(cmd Command) {
	if cmd == nil {
		return
	}
	c.commands = append(c.commands, cmd)
}

// Spawn reserves an entity id right away so callers can attach components to
// it in the same tick. The entity is invisible to queries until the flush
// inserts its first component.
func (c *Commands) Spawn() EntityID {
	id := c.world.pool.Create()
	c.Push(spawnCommand{entity: id})
	return id
}

// Despawn queues removal of id and all its components.
func (c *Commands) Despawn(id EntityID) {
	c.Push(despawnCommand{entity: id})
}

// Insert queues attaching v to id.
func Insert[T any](c *Commands, id EntityID, v T) {
	c.Push(CommandFunc(func(w *World) error { return Set(w, id, v) }))
}

// RemoveComponent queues detaching T from id.
func RemoveComponent[T any](c *Commands, id EntityID) {
	c.Push(CommandFunc(func(w *World) error { return Remove[T](w, id) }))
}

func (c *Commands) apply(w *World) error {
	cmds := c.commands
	c.commands = c.commands[:0]
	var errs error
	for _, cmd := range cmds {
		errs = multierr.Append(errs, cmd.Apply(w))
	}
	clear(cmds)
	return errs
}

type spawnCommand struct {
	entity EntityID
}

type despawnCommand struct {
	entity EntityID
}

func (c spawnCommand) Apply(w *World) error {
	if !w.Alive(c.entity) {
		return fmt.Errorf("spawn %s: %w", c.entity, ErrStaleEntity)
	}
	return nil
}

func (c despawnCommand) Apply(w *World) error {
	w.Despawn(c.entity)
	return nil
}

var (
	_ Command = spawnCommand{}
	_ Command = despawnCommand{}
	_ Command = CommandFunc(nil)
)
