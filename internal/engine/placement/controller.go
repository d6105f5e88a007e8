// Package placement turns pointer rays into a snapped preview cell and commits
// structures onto the occupancy grid.
package placement

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-village/internal/engine/occupancy"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/pkg/idgen"
)

// Vec3 is a point or direction in world space
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Ray is a pointer ray cast from the camera
type Ray struct {
	Origin    Vec3 `json:"origin"`
	Direction Vec3 `json:"direction"`
}

// IntersectGround returns where the ray meets the plane y = 0
func (r Ray) IntersectGround() (entities.Position, bool) {
	if r.Direction.Y == 0 || math.IsNaN(r.Direction.Y) {
		return entities.Position{}, false
	}
	t := -r.Origin.Y / r.Direction.Y
	if t < 0 {
		return entities.Position{}, false
	}
	return entities.Position{
		X: r.Origin.X + t*r.Direction.X,
		Z: r.Origin.Z + t*r.Direction.Z,
	}, true
}

// Preview is the ghost structure shown under the pointer
type Preview struct {
	Cell     entities.Cell     `json:"cell"`
	Rotation entities.Rotation `json:"rotation"`
	Free     bool              `json:"free"`
}

// Config holds the dependencies of a Controller
type Config struct {
	GameID      string
	Grid        *occupancy.Grid
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Grid == nil {
		vb.RequiredField("Grid")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Controller tracks the hovered cell and preview rotation for one game
type Controller struct {
	gameID   string
	grid     *occupancy.Grid
	idGen    idgen.Generator
	hovered  *entities.Cell
	rotation entities.Rotation
}

// New creates a placement controller
func New(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Controller{
		gameID: cfg.GameID,
		grid:   cfg.Grid,
		idGen:  cfg.IDGenerator,
	}, nil
}

// PointerMove updates the hovered cell. A ray that misses the ground or lands
// outside the grid clears the preview.
func (c *Controller) PointerMove(ray Ray) *Preview {
	pos, ok := ray.IntersectGround()
	if !ok {
		c.hovered = nil
		return nil
	}

	cell := occupancy.Snap(pos.X, pos.Z)
	if !c.grid.InBounds(float64(cell.X), float64(cell.Z)) {
		c.hovered = nil
		return nil
	}

	c.hovered = &cell
	return c.Preview()
}

// Hovered returns the snapped cell under the pointer, or nil
func (c *Controller) Hovered() *entities.Cell {
	if c.hovered == nil {
		return nil
	}
	cell := *c.hovered
	return &cell
}

// Preview returns the current preview, or nil when nothing is hovered
func (c *Controller) Preview() *Preview {
	if c.hovered == nil {
		return nil
	}
	return &Preview{
		Cell:     *c.hovered,
		Rotation: c.rotation,
		Free:     c.grid.IsFree(float64(c.hovered.X), float64(c.hovered.Z)),
	}
}

// Rotation returns the preview rotation
func (c *Controller) Rotation() entities.Rotation {
	return c.rotation
}

// Rotate turns the preview a quarter turn and returns the new rotation
func (c *Controller) Rotate() entities.Rotation {
	c.rotation = c.rotation.Next()
	return c.rotation
}

// Commit places a structure of the given type at the preview cell
func (c *Controller) Commit(structureType string) (*entities.Structure, error) {
	if c.hovered == nil {
		return nil, errors.Rejected(errors.ReasonNoPreview, "no preview cell to place at")
	}
	return c.PlaceAt(structureType, *c.hovered, c.rotation)
}

// PlaceAt places a structure directly at a cell
func (c *Controller) PlaceAt(structureType string, cell entities.Cell, rotation entities.Rotation) (*entities.Structure, error) {
	if structureType == "" {
		return nil, errors.InvalidArgument("structure type is required")
	}
	if !rotation.Valid() {
		return nil, errors.InvalidArgumentf("rotation must be a multiple of 90, got %d", rotation)
	}
	if err := c.grid.CheckPlacement(cell); err != nil {
		return nil, err
	}

	st := &entities.Structure{
		ID:       c.idGen.Generate(),
		Type:     structureType,
		Cell:     cell,
		Rotation: rotation.Normalize(),
	}
	if err := c.grid.Add(st); err != nil {
		return nil, err
	}

	slog.Info("Structure placed",
		"game_id", c.gameID,
		"structure_id", st.ID,
		"type", st.Type,
		"x", st.Cell.X,
		"z", st.Cell.Z,
		"rotation", int(st.Rotation))

	return st, nil
}

// Remove deletes a placed structure
func (c *Controller) Remove(structureID string) (*entities.Structure, error) {
	st, err := c.grid.Remove(structureID)
	if err != nil {
		return nil, err
	}

	slog.Info("Structure removed",
		"game_id", c.gameID,
		"structure_id", st.ID)

	return st, nil
}
