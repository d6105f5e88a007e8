package entities

import "fmt"

// Rotation is a structure's facing in degrees; one of 0, 90, 180, 270
type Rotation int

// Rotations
const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// Next returns the rotation a quarter turn clockwise
func (r Rotation) Next() Rotation {
	return (r.Normalize() + 90) % 360
}

// Normalize maps any multiple of 90 into [0, 360)
func (r Rotation) Normalize() Rotation {
	n := r % 360
	if n < 0 {
		n += 360
	}
	return n
}

// Valid reports whether r is one of the four quarter turns
func (r Rotation) Valid() bool {
	return r%90 == 0
}

// Cell is an integer grid coordinate
type Cell struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// String renders the cell as (x,z)
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Center returns the world position of the cell
func (c Cell) Center() Position {
	return Position{X: float64(c.X), Z: float64(c.Z)}
}

// Structure is a building placed on the grid. Structures are never mutated in
// place; move one by removing and re-adding it.
type Structure struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Cell     Cell     `json:"cell"`
	Rotation Rotation `json:"rotation"`
}

// GetID implements core.Entity
func (s *Structure) GetID() string {
	return s.ID
}

// GetType implements core.Entity
func (s *Structure) GetType() string {
	return s.Type
}

// GetSize returns the number of cells a structure covers
func (s *Structure) GetSize() int {
	return 1
}

// BlocksMovement reports that a structure fills its cell
func (s *Structure) BlocksMovement() bool {
	return true
}

// BlocksLineOfSight reports that a structure hides what is behind it
func (s *Structure) BlocksLineOfSight() bool {
	return true
}
