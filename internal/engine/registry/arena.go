// Package registry stores the entities of one game, indexed by id and placed
// in a spatial room for range queries.
package registry

import (
	"math"
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/KirkDiggler/rpg-toolkit/tools/spatial"

	"github.com/KirkDiggler/rpg-village/internal/engine/resource"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// Registry is the entity lookup the activation engine works against.
// Callers receive copies; changes land only through Update.
type Registry interface {
	Get(id string) (*entities.Entity, bool)
	List() []*entities.Entity
	Update(e *entities.Entity) error
	HostilesInRange(origin entities.Position, radius float64) []*entities.Entity
	ControlledID() string
}

// RoomType is the spatial room type of an arena
const RoomType = "arena"

// ground is the open floor entities stand on. It measures with the gridless
// room's Euclidean distance but has no edges; the simulation clamps positions.
type ground struct {
	*spatial.GridlessRoom
}

// IsValidPosition accepts any finite point
func (ground) IsValidPosition(pos spatial.Position) bool {
	return !math.IsNaN(pos.X) && !math.IsNaN(pos.Y) && !math.IsInf(pos.X, 0) && !math.IsInf(pos.Y, 0)
}

func roomPosition(p entities.Position) spatial.Position {
	return spatial.Position{X: p.X, Y: p.Z}
}

// Arena is the in-memory Registry owned by a simulation. The room holds the
// same entity pointers as the id index.
type Arena struct {
	entities   map[string]*entities.Entity
	room       *spatial.BasicRoom
	controlled string
}

var _ Registry = (*Arena)(nil)

// NewArena creates an empty arena
func NewArena() *Arena {
	return &Arena{
		entities: make(map[string]*entities.Entity),
		room: spatial.NewBasicRoom(spatial.BasicRoomConfig{
			ID:   RoomType,
			Type: RoomType,
			Grid: ground{GridlessRoom: spatial.NewGridlessRoom(spatial.GridlessConfig{})},
		}),
	}
}

// SetEventBus publishes entity placement, movement and removal on bus
func (a *Arena) SetEventBus(bus events.EventBus) {
	a.room.SetEventBus(bus)
}

// Add inserts a new entity. Its pool is clamped on the way in.
func (a *Arena) Add(e *entities.Entity) error {
	if e == nil {
		return errors.InvalidArgument("entity is required")
	}
	if e.ID == "" {
		return errors.InvalidArgument("entity ID is required")
	}
	if e.Kind != entities.KindNPC && e.Kind != entities.KindEnemy {
		return errors.InvalidArgumentf("unknown entity kind %q", e.Kind)
	}
	if _, exists := a.entities[e.ID]; exists {
		return errors.AlreadyExistsf("entity %s already exists", e.ID)
	}

	cp := e.Clone()
	if cp.Animation == "" {
		cp.Animation = entities.AnimationIdle
	}
	resource.Clamp(&cp.Pool)
	if err := a.room.PlaceEntity(cp, roomPosition(cp.Position)); err != nil {
		return errors.InvalidArgumentf("entity %s has an invalid position: %v", e.ID, err)
	}
	a.entities[cp.ID] = cp
	return nil
}

// Get returns a copy of the entity
func (a *Arena) Get(id string) (*entities.Entity, bool) {
	e, ok := a.entities[id]
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// List returns copies of every entity ordered by id
func (a *Arena) List() []*entities.Entity {
	out := make([]*entities.Entity, 0, len(a.entities))
	for _, e := range a.entities {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Update replaces a stored entity. Kind cannot change.
func (a *Arena) Update(e *entities.Entity) error {
	if e == nil {
		return errors.InvalidArgument("entity is required")
	}
	cur, ok := a.entities[e.ID]
	if !ok {
		return errors.NotFoundf("entity %s not found", e.ID)
	}
	if cur.Kind != e.Kind {
		return errors.InvalidArgumentf("entity %s cannot change kind from %s to %s", e.ID, cur.Kind, e.Kind)
	}

	cp := e.Clone()
	resource.Clamp(&cp.Pool)
	if cp.Position != cur.Position {
		if err := a.room.MoveEntity(e.ID, roomPosition(cp.Position)); err != nil {
			return errors.InvalidArgumentf("entity %s cannot move: %v", e.ID, err)
		}
	}
	*cur = *cp
	return nil
}

// Remove deletes an entity. Removing the controlled entity clears control.
func (a *Arena) Remove(id string) error {
	if _, ok := a.entities[id]; !ok {
		return errors.NotFoundf("entity %s not found", id)
	}
	if err := a.room.RemoveEntity(id); err != nil {
		return errors.Wrapf(err, "failed to remove entity %s", id)
	}
	delete(a.entities, id)
	if a.controlled == id {
		a.controlled = ""
	}
	return nil
}

// HostilesInRange returns alive hostiles whose planar distance from origin is
// at most radius, nearest first
func (a *Arena) HostilesInRange(origin entities.Position, radius float64) []*entities.Entity {
	var out []*entities.Entity
	for _, ent := range a.room.GetEntitiesInRange(roomPosition(origin), radius) {
		e, ok := ent.(*entities.Entity)
		if !ok || !e.Hostile() || !e.Alive() {
			continue
		}
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := origin.DistanceTo(out[i].Position), origin.DistanceTo(out[j].Position)
		if di != dj {
			return di < dj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ControlledID returns the id of the player-controlled entity, or ""
func (a *Arena) ControlledID() string {
	return a.controlled
}

// SetControlled hands player control to an NPC. An empty id releases control.
func (a *Arena) SetControlled(id string) error {
	if id == "" {
		a.controlled = ""
		return nil
	}
	e, ok := a.entities[id]
	if !ok {
		return errors.NotFoundf("entity %s not found", id)
	}
	if e.Kind != entities.KindNPC {
		return errors.InvalidArgumentf("entity %s is not an NPC", id)
	}
	a.controlled = id
	return nil
}

// Len returns the number of entities
func (a *Arena) Len() int {
	return len(a.entities)
}
