package simulation

import (
	"sort"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/engine/placement"
	"github.com/KirkDiggler/rpg-village/internal/entities"
)

// Command is player input applied during the next Advance, after cooldowns
// and regeneration have ticked
type Command interface {
	apply(s *Simulation) (any, error)
	Name() string
}

// CommandResult is the outcome of one queued command
type CommandResult struct {
	Command string `json:"command"`
	Output  any    `json:"output,omitempty"`
	Err     error  `json:"-"`
}

// ActivateCommand fires a skill
type ActivateCommand struct {
	Input activation.ActivateInput
}

// Name implements Command
func (ActivateCommand) Name() string { return "activate" }

func (c ActivateCommand) apply(s *Simulation) (any, error) {
	in := c.Input
	return s.Activate(&in)
}

// MoveCommand reports a new position for an entity
type MoveCommand struct {
	Input MoveInput
}

// Name implements Command
func (MoveCommand) Name() string { return "move" }

func (c MoveCommand) apply(s *Simulation) (any, error) {
	in := c.Input
	return s.MoveEntity(&in)
}

// PlaceCommand commits the current preview
type PlaceCommand struct {
	StructureType string
}

// Name implements Command
func (PlaceCommand) Name() string { return "place" }

func (c PlaceCommand) apply(s *Simulation) (any, error) {
	return s.PlaceStructure(c.StructureType)
}

// PlaceAtCommand places a structure at a fixed cell
type PlaceAtCommand struct {
	StructureType string
	Cell          entities.Cell
	Rotation      entities.Rotation
}

// Name implements Command
func (PlaceAtCommand) Name() string { return "place_at" }

func (c PlaceAtCommand) apply(s *Simulation) (any, error) {
	return s.PlaceStructureAt(c.StructureType, c.Cell, c.Rotation)
}

// PointerCommand moves the placement pointer
type PointerCommand struct {
	Ray placement.Ray
}

// Name implements Command
func (PointerCommand) Name() string { return "pointer" }

func (c PointerCommand) apply(s *Simulation) (any, error) {
	return s.PointerMove(c.Ray), nil
}

type queued struct {
	cmd  Command
	done func(CommandResult)
}

// Enqueue schedules a command for the next Advance. done, when non-nil, is
// called with the result during that Advance.
func (s *Simulation) Enqueue(cmd Command, done func(CommandResult)) {
	if cmd == nil {
		return
	}
	s.queue = append(s.queue, queued{cmd: cmd, done: done})
}

// Pending returns the number of queued commands
func (s *Simulation) Pending() int {
	return len(s.queue)
}

func (s *Simulation) drain() []CommandResult {
	if len(s.queue) == 0 {
		return nil
	}
	q := s.queue
	s.queue = nil

	results := make([]CommandResult, 0, len(q))
	for _, item := range q {
		out, err := item.cmd.apply(s)
		if err != nil {
			out = nil
		}
		res := CommandResult{Command: item.cmd.Name(), Output: out, Err: err}
		if item.done != nil {
			item.done(res)
		}
		results = append(results, res)
	}
	return results
}

func sortStrings(ss []string) {
	sort.Strings(ss)
}
