package simulation

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// MoveInput is a position report for an entity
type MoveInput struct {
	EntityID  string
	Position  entities.Position
	Rotation  float64
	Animation entities.AnimationState
}

// MoveEntity places an entity at a new position. Positions are clamped to the
// grid and dead entities cannot move.
func (s *Simulation) MoveEntity(input *MoveInput) (*entities.Entity, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if math.IsNaN(input.Position.X) || math.IsNaN(input.Position.Z) || math.IsNaN(input.Rotation) {
		return nil, errors.InvalidArgument("position and rotation must be numbers")
	}

	e, ok := s.arena.Get(input.EntityID)
	if !ok {
		return nil, errors.NotFoundf("entity %s not found", input.EntityID)
	}
	if !e.Alive() {
		return nil, errors.FailedPrecondition("dead entities cannot move")
	}

	anim := input.Animation
	if anim == "" {
		anim = entities.AnimationIdle
	}
	if !anim.Valid() {
		return nil, errors.InvalidArgumentf("unknown animation %q", anim)
	}

	e.Position = s.clampToWorld(input.Position)
	e.Rotation = input.Rotation
	e.Animation = anim

	if err := s.arena.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

// dashTo moves an actor to a dash destination, facing the direction of travel
func (s *Simulation) dashTo(id string, dest entities.Position) {
	e, ok := s.arena.Get(id)
	if !ok {
		return
	}
	dest = s.clampToWorld(dest)
	if dx, dz := dest.X-e.Position.X, dest.Z-e.Position.Z; dx != 0 || dz != 0 {
		e.Rotation = math.Atan2(dx, dz)
	}
	e.Position = dest
	if err := s.arena.Update(e); err != nil {
		slog.Warn("Failed to apply dash movement",
			"game_id", s.gameID,
			"entity_id", id,
			"error", err)
	}
}

// clampToWorld keeps a position inside the grid's square bounds
func (s *Simulation) clampToWorld(p entities.Position) entities.Position {
	half := s.grid.HalfSize()
	return entities.Position{
		X: math.Max(-half, math.Min(half, p.X)),
		Z: math.Max(-half, math.Min(half, p.Z)),
	}
}
