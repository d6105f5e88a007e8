// Package occupancy tracks placed structures and answers whether a grid cell
// is free. Structures live in a spatial room laid over a square grid.
package occupancy

import (
	"math"
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/KirkDiggler/rpg-toolkit/tools/spatial"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// DefaultGridSize is the width of the square build area
const DefaultGridSize = 20

// collisionRadius is how close two structures may be on each axis
const collisionRadius = 0.5

// collisionReach is the largest Chebyshev distance that still collides.
// The room's range query is inclusive; the collision test is not.
var collisionReach = math.Nextafter(collisionRadius, 0)

// RoomType is the spatial room type of a build area
const RoomType = "build_area"

var _ spatial.Placeable = (*entities.Structure)(nil)

// Grid is the set of structures placed in one game.
// Invariant: no two structures are within collisionRadius on both axes.
//
// World cell (x, z) sits at room position (x+half, z+half), so the square
// grid's [0, size) bounds are the world's [-half, half).
type Grid struct {
	size int
	room *spatial.BasicRoom
}

// NewGrid creates an empty grid. Non-positive sizes fall back to DefaultGridSize.
func NewGrid(size int) *Grid {
	if size <= 0 {
		size = DefaultGridSize
	}
	return &Grid{
		size: size,
		room: spatial.NewBasicRoom(spatial.BasicRoomConfig{
			ID:   RoomType,
			Type: RoomType,
			Grid: spatial.NewSquareGrid(spatial.SquareGridConfig{
				Width:  float64(size),
				Height: float64(size),
			}),
		}),
	}
}

// SetEventBus publishes structure placement and removal on bus
func (g *Grid) SetEventBus(bus events.EventBus) {
	g.room.SetEventBus(bus)
}

// Size returns the grid width
func (g *Grid) Size() int {
	return g.size
}

// HalfSize returns the bound on each axis
func (g *Grid) HalfSize() float64 {
	return float64(g.size) / 2
}

func (g *Grid) roomPosition(x, z float64) spatial.Position {
	half := g.HalfSize()
	return spatial.Position{X: x + half, Y: z + half}
}

func (g *Grid) cellPosition(c entities.Cell) spatial.Position {
	return g.roomPosition(float64(c.X), float64(c.Z))
}

// InBounds reports whether (x, z) lies in [-half, half) on both axes
func (g *Grid) InBounds(x, z float64) bool {
	return g.room.GetGrid().IsValidPosition(g.roomPosition(x, z))
}

// IsFree reports whether no structure sits within half a unit of (x, z)
func (g *Grid) IsFree(x, z float64) bool {
	return len(g.room.GetEntitiesInRange(g.roomPosition(x, z), collisionReach)) == 0
}

// Snap rounds a world position to the nearest integer cell
func Snap(x, z float64) entities.Cell {
	return entities.Cell{X: int(math.Round(x)), Z: int(math.Round(z))}
}

// CheckPlacement reports why a structure cannot go in the cell, or nil
func (g *Grid) CheckPlacement(cell entities.Cell) error {
	if !g.InBounds(float64(cell.X), float64(cell.Z)) {
		return errors.Rejectedf(errors.ReasonOutOfBounds, "cell %s is outside the %dx%d grid", cell, g.size, g.size)
	}
	if !g.IsFree(float64(cell.X), float64(cell.Z)) {
		return errors.Rejectedf(errors.ReasonCellOccupied, "cell %s is occupied", cell)
	}
	return nil
}

// Add places a structure. The grid keeps its own copy.
func (g *Grid) Add(st *entities.Structure) error {
	if st == nil {
		return errors.InvalidArgument("structure is required")
	}
	if st.ID == "" {
		return errors.InvalidArgument("structure ID is required")
	}
	if !st.Rotation.Valid() {
		return errors.InvalidArgumentf("rotation must be a multiple of 90, got %d", st.Rotation)
	}
	if _, exists := g.room.GetEntityPosition(st.ID); exists {
		return errors.AlreadyExistsf("structure %s already placed", st.ID)
	}
	if err := g.CheckPlacement(st.Cell); err != nil {
		return err
	}

	cp := *st
	cp.Rotation = cp.Rotation.Normalize()
	if err := g.room.PlaceEntity(&cp, g.cellPosition(cp.Cell)); err != nil {
		return errors.Wrapf(err, "failed to place structure %s", st.ID)
	}
	return nil
}

// Remove deletes a structure by id
func (g *Grid) Remove(id string) (*entities.Structure, error) {
	st, ok := g.lookup(id)
	if !ok {
		return nil, errors.NotFoundf("structure %s not found", id)
	}
	if err := g.room.RemoveEntity(id); err != nil {
		return nil, errors.Wrapf(err, "failed to remove structure %s", id)
	}
	cp := *st
	return &cp, nil
}

func (g *Grid) lookup(id string) (*entities.Structure, bool) {
	ent, ok := g.room.GetAllEntities()[id]
	if !ok {
		return nil, false
	}
	st, ok := ent.(*entities.Structure)
	return st, ok
}

// StructureAt returns the structure occupying the cell, if any
func (g *Grid) StructureAt(cell entities.Cell) (*entities.Structure, bool) {
	for _, ent := range g.room.GetEntitiesAt(g.cellPosition(cell)) {
		if st, ok := ent.(*entities.Structure); ok {
			cp := *st
			return &cp, true
		}
	}
	return nil, false
}

// Get returns a structure by id
func (g *Grid) Get(id string) (*entities.Structure, bool) {
	st, ok := g.lookup(id)
	if !ok {
		return nil, false
	}
	cp := *st
	return &cp, true
}

// Structures returns copies of every structure ordered by id
func (g *Grid) Structures() []*entities.Structure {
	all := g.room.GetAllEntities()
	out := make([]*entities.Structure, 0, len(all))
	for _, ent := range all {
		if st, ok := ent.(*entities.Structure); ok {
			cp := *st
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of placed structures
func (g *Grid) Len() int {
	return g.room.GetEntityCount()
}
