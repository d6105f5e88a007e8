// Package entities provides the core data structures for rpg-village.
package entities

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Position is a point on the ground plane. The vertical axis is not tracked.
type Position struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// DistanceTo returns the planar Euclidean distance to other
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Z-other.Z)
}

// Kind separates friendly NPCs from hostile enemies
type Kind string

// Entity kinds
const (
	KindNPC   Kind = "npc"
	KindEnemy Kind = "enemy"
)

// AnimationState is the locomotion state the presentation layer plays
type AnimationState string

// Animation states
const (
	AnimationIdle AnimationState = "idle"
	AnimationWalk AnimationState = "walk"
)

// Valid reports whether the animation state is known
func (a AnimationState) Valid() bool {
	return a == AnimationIdle || a == AnimationWalk
}

// Pool holds an entity's health and mana.
// Invariant: 0 <= Health <= MaxHealth and 0 <= Mana <= MaxMana.
type Pool struct {
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Mana      float64 `json:"mana"`
	MaxMana   float64 `json:"maxMana"`
}

// Alive reports whether the pool still has health
func (p Pool) Alive() bool {
	return p.Health > 0
}

// Entity is an NPC or enemy living in a game world
type Entity struct {
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	Kind        Kind           `json:"kind"`
	Type        string         `json:"type,omitempty"`        // NPC type tag, e.g. "villager", "guard"
	StructureID string         `json:"structureId,omitempty"` // home structure, if any
	Position    Position       `json:"position"`
	Rotation    float64        `json:"rotation"`
	Animation   AnimationState `json:"animation"`
	Pool        Pool           `json:"pool"`
}

var _ core.Entity = (*Entity)(nil)

// GetID implements core.Entity
func (e *Entity) GetID() string {
	return e.ID
}

// GetType implements core.Entity
func (e *Entity) GetType() string {
	return string(e.Kind)
}

// Alive reports whether the entity has health left
func (e *Entity) Alive() bool {
	return e.Pool.Alive()
}

// Hostile reports whether skills of the controlled entity may target this entity
func (e *Entity) Hostile() bool {
	return e.Kind == KindEnemy
}

// Clone returns a copy safe to hand outside the simulation
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}
