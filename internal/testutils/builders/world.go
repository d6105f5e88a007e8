// Package builders provides test data builders for creating test fixtures
package builders

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/repositories/gamestate"
)

// WorldBuilder provides a fluent interface for building saved worlds
type WorldBuilder struct {
	world *gamestate.World
	data  entities.WorldData
}

// NewWorldBuilder creates a builder with minimal defaults
func NewWorldBuilder() *WorldBuilder {
	return &WorldBuilder{
		world: &gamestate.World{
			GameState: &entities.GameState{
				ID:     "game-test-123",
				UserID: "user-test-123",
				Name:   "Test Village",
			},
		},
		data: entities.WorldData{GridSize: 20},
	}
}

// WithID sets the game ID
func (b *WorldBuilder) WithID(id string) *WorldBuilder {
	b.world.GameState.ID = id
	return b
}

// WithUserID sets the owning user
func (b *WorldBuilder) WithUserID(userID string) *WorldBuilder {
	b.world.GameState.UserID = userID
	return b
}

// WithName sets the game name
func (b *WorldBuilder) WithName(name string) *WorldBuilder {
	b.world.GameState.Name = name
	return b
}

// WithGridSize sets the grid size stored in the data blob
func (b *WorldBuilder) WithGridSize(size int) *WorldBuilder {
	b.data.GridSize = size
	return b
}

// WithStructure adds a structure row
func (b *WorldBuilder) WithStructure(id, structureType string, x, z, rotation int) *WorldBuilder {
	b.world.Structures = append(b.world.Structures, &entities.StructureRecord{
		StructureID: id,
		Type:        structureType,
		X:           x,
		Z:           z,
		Rotation:    rotation,
	})
	return b
}

// WithNPC adds an NPC row
func (b *WorldBuilder) WithNPC(id, name string, x, z float64) *WorldBuilder {
	b.world.NPCs = append(b.world.NPCs, &entities.NPCRecord{
		NPCID:     id,
		Name:      name,
		Type:      "villager",
		X:         x,
		Z:         z,
		Animation: string(entities.AnimationIdle),
	})
	return b
}

// WithControlled marks an NPC as player-controlled
func (b *WorldBuilder) WithControlled(id string) *WorldBuilder {
	b.data.ControlledID = id
	return b
}

// WithPool sets an NPC's saved pool
func (b *WorldBuilder) WithPool(id string, pool entities.Pool) *WorldBuilder {
	if b.data.Pools == nil {
		b.data.Pools = make(map[string]entities.Pool)
	}
	b.data.Pools[id] = pool
	return b
}

// WithEnemy adds an enemy to the data blob
func (b *WorldBuilder) WithEnemy(id string, x, z, health float64) *WorldBuilder {
	b.data.Enemies = append(b.data.Enemies, &entities.Entity{
		ID:        id,
		Kind:      entities.KindEnemy,
		Type:      "goblin",
		Position:  entities.Position{X: x, Z: z},
		Animation: entities.AnimationIdle,
		Pool:      entities.Pool{Health: health, MaxHealth: 100},
	})
	return b
}

// WithCooldown sets a remaining cooldown
func (b *WorldBuilder) WithCooldown(skillID string, remaining float64) *WorldBuilder {
	if b.data.Cooldowns == nil {
		b.data.Cooldowns = make(map[string]float64)
	}
	b.data.Cooldowns[skillID] = remaining
	return b
}

// Build returns the constructed world
func (b *WorldBuilder) Build() *gamestate.World {
	data, _ := json.Marshal(&b.data)
	b.world.GameState.Data = data
	return b.world.Clone()
}
