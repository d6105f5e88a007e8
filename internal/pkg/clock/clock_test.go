package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-village/internal/pkg/clock"
)

type FrameTimerTestSuite struct {
	suite.Suite
	clock *clock.Manual
	timer *clock.FrameTimer
}

func TestFrameTimerSuite(t *testing.T) {
	suite.Run(t, new(FrameTimerTestSuite))
}

func (s *FrameTimerTestSuite) SetupTest() {
	s.clock = clock.NewManual(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	s.timer = clock.NewFrameTimer(s.clock)
}

func (s *FrameTimerTestSuite) TestDeltaMeasuresElapsedSeconds() {
	s.clock.Advance(16 * time.Millisecond)
	s.InDelta(0.016, s.timer.Delta(), 1e-9)

	s.clock.Advance(250 * time.Millisecond)
	s.InDelta(0.25, s.timer.Delta(), 1e-9)
}

func (s *FrameTimerTestSuite) TestDeltaIsZeroWithoutElapsedTime() {
	s.Equal(0.0, s.timer.Delta())
}
