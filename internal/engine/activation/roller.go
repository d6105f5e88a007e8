package activation

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// Roller rolls a single die
type Roller interface {
	// Roll returns a value in [1, size]
	Roll(size int) (int, error)
}

// DiceRoller rolls with rpg-toolkit dice
type DiceRoller struct{}

// Roll implements Roller
func (DiceRoller) Roll(size int) (int, error) {
	roll, err := dice.NewRoll(1, size)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create d%d roll", size)
	}
	return roll.GetValue(), nil
}

const (
	// DamageVariance is the most a hit strays from a skill's base damage
	DamageVariance = 5

	varianceDie = 2*DamageVariance + 1
)

// rollVariance returns a uniform integer in [-DamageVariance, +DamageVariance]
func rollVariance(r Roller) (int, error) {
	v, err := r.Roll(varianceDie)
	if err != nil {
		return 0, err
	}
	if v < 1 || v > varianceDie {
		return 0, errors.Internal("roller returned a value outside the die")
	}
	return v - DamageVariance - 1, nil
}
