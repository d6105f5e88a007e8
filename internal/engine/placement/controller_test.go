package placement_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-village/internal/engine/occupancy"
	"github.com/KirkDiggler/rpg-village/internal/engine/placement"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/pkg/idgen"
)

type ControllerTestSuite struct {
	suite.Suite
	grid       *occupancy.Grid
	controller *placement.Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (s *ControllerTestSuite) SetupTest() {
	s.grid = occupancy.NewGrid(20)

	var err error
	s.controller, err = placement.New(&placement.Config{
		GameID:      "game-1",
		Grid:        s.grid,
		IDGenerator: idgen.NewSequential("structure"),
	})
	s.Require().NoError(err)
}

// downAt returns a ray pointing straight down onto (x, z)
func downAt(x, z float64) placement.Ray {
	return placement.Ray{
		Origin:    placement.Vec3{X: x, Y: 10, Z: z},
		Direction: placement.Vec3{Y: -1},
	}
}

func (s *ControllerTestSuite) TestNewValidatesConfig() {
	_, err := placement.New(&placement.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ControllerTestSuite) TestIntersectGround() {
	testCases := []struct {
		name     string
		ray      placement.Ray
		expected entities.Position
		hit      bool
	}{
		{name: "straight down", ray: downAt(2, 3), expected: entities.Position{X: 2, Z: 3}, hit: true},
		{
			name: "angled",
			ray: placement.Ray{
				Origin:    placement.Vec3{X: 0, Y: 4, Z: 0},
				Direction: placement.Vec3{X: 1, Y: -2, Z: 0.5},
			},
			expected: entities.Position{X: 2, Z: 1},
			hit:      true,
		},
		{
			name: "parallel to ground",
			ray:  placement.Ray{Origin: placement.Vec3{Y: 4}, Direction: placement.Vec3{X: 1}},
		},
		{
			name: "pointing away",
			ray:  placement.Ray{Origin: placement.Vec3{Y: 4}, Direction: placement.Vec3{Y: 1}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			pos, ok := tc.ray.IntersectGround()
			s.Equal(tc.hit, ok)
			if tc.hit {
				s.InDelta(tc.expected.X, pos.X, 1e-9)
				s.InDelta(tc.expected.Z, pos.Z, 1e-9)
			}
		})
	}
}

func (s *ControllerTestSuite) TestPointerMoveSnaps() {
	preview := s.controller.PointerMove(downAt(3.3, 3.7))

	s.Require().NotNil(preview)
	s.Equal(entities.Cell{X: 3, Z: 4}, preview.Cell)
	s.True(preview.Free)
	s.Equal(entities.Cell{X: 3, Z: 4}, *s.controller.Hovered())
}

func (s *ControllerTestSuite) TestPointerMoveOutOfBoundsClears() {
	s.Require().NotNil(s.controller.PointerMove(downAt(0, 0)))

	s.Nil(s.controller.PointerMove(downAt(15, 15)))
	s.Nil(s.controller.Hovered())
	s.Nil(s.controller.Preview())
}

func (s *ControllerTestSuite) TestPointerMissClears() {
	s.Require().NotNil(s.controller.PointerMove(downAt(0, 0)))

	s.Nil(s.controller.PointerMove(placement.Ray{Origin: placement.Vec3{Y: 3}, Direction: placement.Vec3{X: 1}}))
	s.Nil(s.controller.Hovered())
}

func (s *ControllerTestSuite) TestRotateCycles() {
	s.Equal(entities.Rotation90, s.controller.Rotate())
	s.Equal(entities.Rotation180, s.controller.Rotate())
	s.Equal(entities.Rotation270, s.controller.Rotate())
	s.Equal(entities.Rotation0, s.controller.Rotate())
}

func (s *ControllerTestSuite) TestCommitWithoutPreview() {
	_, err := s.controller.Commit("house")

	s.True(errors.IsRejected(err, errors.ReasonNoPreview))
	s.Equal(0, s.grid.Len())
}

func (s *ControllerTestSuite) TestCommitUsesPreviewRotation() {
	s.controller.PointerMove(downAt(3, 4))
	s.controller.Rotate()

	st, err := s.controller.Commit("house")

	s.Require().NoError(err)
	s.Equal("structure_1", st.ID)
	s.Equal(entities.Cell{X: 3, Z: 4}, st.Cell)
	s.Equal(entities.Rotation90, st.Rotation)
	s.False(s.controller.Preview().Free)
}

func (s *ControllerTestSuite) TestCommitOccupied() {
	s.controller.PointerMove(downAt(3, 4))
	_, err := s.controller.Commit("house")
	s.Require().NoError(err)

	_, err = s.controller.Commit("tower")
	s.True(errors.IsRejected(err, errors.ReasonCellOccupied))

	s.controller.PointerMove(downAt(3, 5))
	_, err = s.controller.Commit("tower")
	s.NoError(err)
	s.Equal(2, s.grid.Len())
}

func (s *ControllerTestSuite) TestPlaceAt() {
	testCases := []struct {
		name   string
		cell   entities.Cell
		rot    entities.Rotation
		reason errors.Reason
	}{
		{name: "out of bounds", cell: entities.Cell{X: 15, Z: 15}, reason: errors.ReasonOutOfBounds},
		{name: "upper bound exclusive", cell: entities.Cell{X: 10, Z: 0}, reason: errors.ReasonOutOfBounds},
		{name: "lower bound inclusive", cell: entities.Cell{X: -10, Z: -10}},
		{name: "rotation kept", cell: entities.Cell{X: 1, Z: 1}, rot: entities.Rotation180},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			st, err := s.controller.PlaceAt("well", tc.cell, tc.rot)
			if tc.reason != errors.ReasonNone {
				s.True(errors.IsRejected(err, tc.reason))
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.rot, st.Rotation)
		})
	}
}

func (s *ControllerTestSuite) TestPlaceAtValidation() {
	_, err := s.controller.PlaceAt("", entities.Cell{}, 0)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.controller.PlaceAt("house", entities.Cell{}, 45)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ControllerTestSuite) TestRemoveAndReplace() {
	st, err := s.controller.PlaceAt("house", entities.Cell{X: 2, Z: 2}, 0)
	s.Require().NoError(err)

	_, err = s.controller.Remove(st.ID)
	s.Require().NoError(err)

	_, err = s.controller.PlaceAt("tower", entities.Cell{X: 2, Z: 2}, entities.Rotation90)
	s.NoError(err)

	_, err = s.controller.Remove("missing")
	s.True(errors.IsNotFound(err))
}
