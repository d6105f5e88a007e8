package simulation

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-village/internal/engine/placement"
	"github.com/KirkDiggler/rpg-village/internal/engine/resource"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// SpawnInput describes a new NPC or enemy
type SpawnInput struct {
	Name        string
	Type        string
	StructureID string
	Position    entities.Position
	MaxHealth   float64 // 0 uses DefaultMaxHealth
	MaxMana     float64 // 0 uses DefaultMaxMana for NPCs; enemies have none
}

// SpawnNPC adds a friendly NPC. The first NPC in a world without a controlled
// entity takes control.
func (s *Simulation) SpawnNPC(input *SpawnInput) (*entities.Entity, error) {
	e, err := s.spawn(entities.KindNPC, input)
	if err != nil {
		return nil, err
	}
	if s.arena.ControlledID() == "" {
		if err := s.arena.SetControlled(e.ID); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// SpawnEnemy adds a hostile entity
func (s *Simulation) SpawnEnemy(input *SpawnInput) (*entities.Entity, error) {
	return s.spawn(entities.KindEnemy, input)
}

func (s *Simulation) spawn(kind entities.Kind, input *SpawnInput) (*entities.Entity, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MaxHealth < 0 || input.MaxMana < 0 {
		return nil, errors.InvalidArgument("pool maximums must not be negative")
	}

	maxHealth := input.MaxHealth
	if maxHealth == 0 {
		maxHealth = DefaultMaxHealth
	}
	maxMana := input.MaxMana
	if maxMana == 0 && kind == entities.KindNPC {
		maxMana = DefaultMaxMana
	}

	e := &entities.Entity{
		ID:          s.entityIDs.Generate(),
		Name:        input.Name,
		Kind:        kind,
		Type:        input.Type,
		StructureID: input.StructureID,
		Position:    s.clampToWorld(input.Position),
		Animation:   entities.AnimationIdle,
		Pool:        resource.NewPool(maxHealth, maxMana),
	}
	if err := s.arena.Add(e); err != nil {
		return nil, err
	}

	slog.Info("Entity spawned",
		"game_id", s.gameID,
		"entity_id", e.ID,
		"kind", string(kind),
		"type", e.Type)

	return e, nil
}

// RemoveEntity deletes an entity immediately
func (s *Simulation) RemoveEntity(id string) error {
	if err := s.arena.Remove(id); err != nil {
		return err
	}
	delete(s.deathTimers, id)
	return nil
}

// SetControlled hands player control to an NPC; "" releases control
func (s *Simulation) SetControlled(id string) error {
	return s.arena.SetControlled(id)
}

// ControlledID returns the id of the controlled entity, or ""
func (s *Simulation) ControlledID() string {
	return s.arena.ControlledID()
}

// Entity returns a copy of one entity
func (s *Simulation) Entity(id string) (*entities.Entity, bool) {
	return s.arena.Get(id)
}

// Entities returns copies of every entity ordered by id
func (s *Simulation) Entities() []*entities.Entity {
	return s.arena.List()
}

// PointerMove updates the placement pointer
func (s *Simulation) PointerMove(ray placement.Ray) *placement.Preview {
	return s.placement.PointerMove(ray)
}

// RotatePreview turns the placement preview a quarter turn
func (s *Simulation) RotatePreview() entities.Rotation {
	return s.placement.Rotate()
}

// Preview returns the placement preview, or nil
func (s *Simulation) Preview() *placement.Preview {
	return s.placement.Preview()
}

// PlaceStructure commits the placement preview
func (s *Simulation) PlaceStructure(structureType string) (*entities.Structure, error) {
	return s.placement.Commit(structureType)
}

// PlaceStructureAt places a structure at a given cell
func (s *Simulation) PlaceStructureAt(structureType string, cell entities.Cell, rotation entities.Rotation) (*entities.Structure, error) {
	return s.placement.PlaceAt(structureType, cell, rotation)
}

// RemoveStructure deletes a placed structure
func (s *Simulation) RemoveStructure(id string) (*entities.Structure, error) {
	return s.placement.Remove(id)
}

// Structures returns every placed structure ordered by id
func (s *Simulation) Structures() []*entities.Structure {
	return s.grid.Structures()
}

// GridSize returns the width of the build area
func (s *Simulation) GridSize() int {
	return s.grid.Size()
}
