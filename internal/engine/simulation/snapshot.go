package simulation

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-village/internal/engine/cooldown"
	"github.com/KirkDiggler/rpg-village/internal/engine/occupancy"
	"github.com/KirkDiggler/rpg-village/internal/engine/registry"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// State is the persisted form of a world
type State struct {
	Structures   []*entities.Structure
	Entities     []*entities.Entity
	ControlledID string
	Cooldowns    map[string]float64
}

// Snapshot returns a detached copy of the world
func (s *Simulation) Snapshot() *entities.Snapshot {
	snap := &entities.Snapshot{
		GridSize:     s.grid.Size(),
		ControlledID: s.arena.ControlledID(),
		Entities:     s.arena.List(),
		Structures:   s.grid.Structures(),
		Cooldowns:    s.cooldowns.Snapshot(),
		PreviewRot:   s.placement.Rotation(),
		Frame:        s.frame,
	}
	if p := s.placement.Preview(); p != nil {
		cell := p.Cell
		snap.Preview = &cell
	}
	return snap
}

// State returns the persistable part of the world
func (s *Simulation) State() *State {
	return &State{
		Structures:   s.grid.Structures(),
		Entities:     s.arena.List(),
		ControlledID: s.arena.ControlledID(),
		Cooldowns:    s.cooldowns.Snapshot(),
	}
}

// Rehydrate replaces the world with a persisted state. Structures that no
// longer fit the grid are dropped with a warning. On error the world is left
// unchanged.
func (s *Simulation) Rehydrate(st *State) error {
	if st == nil {
		return errors.InvalidArgument("state is required")
	}

	grid := occupancy.NewGrid(s.grid.Size())
	for _, structure := range st.Structures {
		if structure == nil {
			continue
		}
		if err := grid.Add(structure); err != nil {
			slog.Warn("Dropping structure that cannot be restored",
				"game_id", s.gameID,
				"structure_id", structure.ID,
				"error", err)
		}
	}

	arena := registry.NewArena()
	for _, e := range st.Entities {
		if e == nil {
			continue
		}
		if err := arena.Add(e); err != nil {
			return errors.Wrapf(err, "failed to restore entity %s", e.ID)
		}
	}
	if st.ControlledID != "" {
		if err := arena.SetControlled(st.ControlledID); err != nil {
			return errors.Wrap(err, "failed to restore controlled entity")
		}
	}

	tracker := cooldown.New(s.catalog.List())
	tracker.Restore(st.Cooldowns)

	// Swap in place so the engine and placement controller keep their pointers.
	*s.grid = *grid
	*s.arena = *arena
	*s.cooldowns = *tracker
	// Restoring publishes nothing; the bus is attached after the swap.
	s.arena.SetEventBus(s.eventBus)
	s.grid.SetEventBus(s.eventBus)
	s.deathTimers = make(map[string]float64)
	s.queue = nil
	s.trackDeaths()

	return nil
}
