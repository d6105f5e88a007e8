// Package simulation runs one game world. All state changes happen through
// Advance or the direct input methods; a Simulation is not safe for
// concurrent use and callers must serialize access.
package simulation

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/engine/cooldown"
	"github.com/KirkDiggler/rpg-village/internal/engine/occupancy"
	"github.com/KirkDiggler/rpg-village/internal/engine/placement"
	"github.com/KirkDiggler/rpg-village/internal/engine/registry"
	"github.com/KirkDiggler/rpg-village/internal/engine/resource"
	"github.com/KirkDiggler/rpg-village/internal/engine/skills"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/pkg/idgen"
)

const (
	// DefaultDeathGracePeriod is how long a dead enemy stays in the world, in seconds
	DefaultDeathGracePeriod = 2.0

	// DefaultMaxHealth and DefaultMaxMana seed the pools of spawned entities
	DefaultMaxHealth = 100.0
	DefaultMaxMana   = 100.0
)

// Config holds the dependencies of a Simulation
type Config struct {
	GameID           string
	GridSize         int
	Catalog          *skills.Catalog
	Effects          activation.EffectSink
	Roller           activation.Roller
	StructureIDs     idgen.Generator
	EntityIDs        idgen.Generator
	ManaRegenRate    float64 // per second; 0 uses resource.DefaultManaRegenRate
	DeathGracePeriod float64 // seconds; 0 uses DefaultDeathGracePeriod

	// EventBus receives spatial events as structures are placed and entities
	// spawn, move or leave. A private bus is used when nil.
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Effects == nil {
		vb.RequiredField("Effects")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.StructureIDs == nil {
		vb.RequiredField("StructureIDs")
	}
	if c.EntityIDs == nil {
		vb.RequiredField("EntityIDs")
	}
	if c.GridSize < 0 {
		vb.Fieldf("GridSize", "must not be negative, got %d", c.GridSize)
	}
	errors.ValidateNonNegative("ManaRegenRate", c.ManaRegenRate, vb)
	errors.ValidateNonNegative("DeathGracePeriod", c.DeathGracePeriod, vb)

	return vb.Build()
}

// Simulation is a single game world
type Simulation struct {
	gameID    string
	catalog   *skills.Catalog
	effects   activation.EffectSink
	entityIDs idgen.Generator
	eventBus  events.EventBus

	arena     *registry.Arena
	grid      *occupancy.Grid
	cooldowns *cooldown.Tracker
	engine    *activation.Engine
	placement *placement.Controller

	regenRate   float64
	gracePeriod float64
	deathTimers map[string]float64
	queue       []queued
	frame       uint64
}

// New creates an empty world
func New(cfg *Config) (*Simulation, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Simulation{
		gameID:      cfg.GameID,
		catalog:     cfg.Catalog,
		effects:     cfg.Effects,
		entityIDs:   cfg.EntityIDs,
		eventBus:    cfg.EventBus,
		arena:       registry.NewArena(),
		grid:        occupancy.NewGrid(cfg.GridSize),
		cooldowns:   cooldown.New(cfg.Catalog.List()),
		regenRate:   cfg.ManaRegenRate,
		gracePeriod: cfg.DeathGracePeriod,
		deathTimers: make(map[string]float64),
	}
	if s.regenRate == 0 {
		s.regenRate = resource.DefaultManaRegenRate
	}
	if s.gracePeriod == 0 {
		s.gracePeriod = DefaultDeathGracePeriod
	}
	if s.eventBus == nil {
		s.eventBus = events.NewBus()
	}
	s.arena.SetEventBus(s.eventBus)
	s.grid.SetEventBus(s.eventBus)

	var err error
	s.engine, err = activation.New(&activation.Config{
		GameID:    cfg.GameID,
		Registry:  s.arena,
		Catalog:   cfg.Catalog,
		Cooldowns: s.cooldowns,
		Effects:   cfg.Effects,
		Roller:    cfg.Roller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create activation engine")
	}

	s.placement, err = placement.New(&placement.Config{
		GameID:      cfg.GameID,
		Grid:        s.grid,
		IDGenerator: cfg.StructureIDs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create placement controller")
	}

	return s, nil
}

// GameID returns the id of the game this world belongs to
func (s *Simulation) GameID() string {
	return s.gameID
}

// Frame returns the number of frames advanced so far
func (s *Simulation) Frame() uint64 {
	return s.frame
}

// EventBus returns the bus spatial events are published on
func (s *Simulation) EventBus() events.EventBus {
	return s.eventBus
}

// Catalog returns the skill catalog in use
func (s *Simulation) Catalog() *skills.Catalog {
	return s.catalog
}

// FrameResult reports what happened during one Advance
type FrameResult struct {
	Frame   uint64          `json:"frame"`
	Removed []string        `json:"removed,omitempty"`
	Results []CommandResult `json:"results,omitempty"`
}

// Advance runs one frame: cooldowns tick, the controlled entity regenerates
// mana, death timers run down, then queued commands apply in order.
// Negative or NaN deltas count as zero.
func (s *Simulation) Advance(delta float64) *FrameResult {
	if delta < 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		delta = 0
	}
	s.frame++

	s.cooldowns.Tick(delta)
	s.regenerate(delta)
	removed := s.runDeathTimers(delta)

	results := s.drain()
	s.trackDeaths()

	return &FrameResult{
		Frame:   s.frame,
		Removed: removed,
		Results: results,
	}
}

func (s *Simulation) regenerate(delta float64) {
	id := s.arena.ControlledID()
	if id == "" || delta == 0 {
		return
	}
	e, ok := s.arena.Get(id)
	if !ok || !e.Alive() {
		return
	}
	resource.RegenerateMana(&e.Pool, delta, s.regenRate)
	if err := s.arena.Update(e); err != nil {
		slog.Warn("Failed to apply mana regeneration",
			"game_id", s.gameID,
			"entity_id", id,
			"error", err)
	}
}

// trackDeaths starts a grace timer for every newly dead enemy
func (s *Simulation) trackDeaths() {
	for _, e := range s.arena.List() {
		if e.Hostile() && !e.Alive() {
			if _, pending := s.deathTimers[e.ID]; !pending {
				s.deathTimers[e.ID] = s.gracePeriod
			}
		}
	}
}

func (s *Simulation) runDeathTimers(delta float64) []string {
	var removed []string
	for id, left := range s.deathTimers {
		left -= delta
		if left > 0 {
			s.deathTimers[id] = left
			continue
		}
		delete(s.deathTimers, id)
		if err := s.arena.Remove(id); err != nil {
			continue
		}
		removed = append(removed, id)
		slog.Info("Dead enemy removed",
			"game_id", s.gameID,
			"entity_id", id)
	}
	sortStrings(removed)
	return removed
}

// Activate fires a skill right away, outside the frame queue
func (s *Simulation) Activate(input *activation.ActivateInput) (*activation.ActivateOutput, error) {
	out, err := s.engine.Activate(input)
	if err != nil {
		return nil, err
	}
	if out.Destination != nil {
		s.dashTo(input.ActorID, *out.Destination)
	}
	s.trackDeaths()
	return out, nil
}

// CooldownRemaining returns seconds left on a skill's cooldown
func (s *Simulation) CooldownRemaining(skillID string) float64 {
	return s.cooldowns.Remaining(skillID)
}

// ResetCooldowns makes every skill ready
func (s *Simulation) ResetCooldowns() {
	s.cooldowns.Reset()
}
