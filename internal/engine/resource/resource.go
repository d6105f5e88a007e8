// Package resource applies health and mana changes to an entity's pool while
// keeping both values inside [0, max].
package resource

import (
	"math"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// DefaultManaRegenRate is mana regained per second by the controlled entity
const DefaultManaRegenRate = 10.0

// ApplyDamage lowers health by amount, flooring at zero, and returns the new health.
// A dead pool stays dead.
func ApplyDamage(pool *entities.Pool, amount float64) (float64, error) {
	if pool == nil {
		return 0, errors.InvalidArgument("pool is required")
	}
	if amount < 0 || math.IsNaN(amount) {
		return pool.Health, errors.InvalidArgumentf("damage must not be negative, got %v", amount)
	}

	pool.Health = math.Max(0, pool.Health-amount)
	return pool.Health, nil
}

// ApplyHeal raises health by amount, capped at max health, and returns the new health.
// Healing a dead pool does nothing.
func ApplyHeal(pool *entities.Pool, amount float64) (float64, error) {
	if pool == nil {
		return 0, errors.InvalidArgument("pool is required")
	}
	if amount < 0 || math.IsNaN(amount) {
		return pool.Health, errors.InvalidArgumentf("heal must not be negative, got %v", amount)
	}
	if !pool.Alive() {
		return pool.Health, nil
	}

	pool.Health = math.Min(pool.MaxHealth, pool.Health+amount)
	return pool.Health, nil
}

// CanAfford reports whether the pool holds at least amount mana
func CanAfford(pool *entities.Pool, amount float64) bool {
	return pool != nil && pool.Mana >= amount
}

// ConsumeMana subtracts amount when the pool can afford it.
// It returns false and leaves the pool untouched otherwise.
func ConsumeMana(pool *entities.Pool, amount float64) bool {
	if amount < 0 || !CanAfford(pool, amount) {
		return false
	}

	pool.Mana -= amount
	return true
}

// RegenerateMana adds delta*rate mana, capped at max mana.
// Dead pools and non-positive deltas are left alone.
func RegenerateMana(pool *entities.Pool, deltaSeconds, ratePerSecond float64) float64 {
	if pool == nil {
		return 0
	}
	if deltaSeconds <= 0 || ratePerSecond <= 0 || !pool.Alive() {
		return pool.Mana
	}

	pool.Mana = math.Min(pool.MaxMana, pool.Mana+deltaSeconds*ratePerSecond)
	return pool.Mana
}

// Clamp forces every field of the pool back into range.
// Used after rehydrating a pool from storage.
func Clamp(pool *entities.Pool) {
	if pool == nil {
		return
	}

	pool.MaxHealth = math.Max(0, pool.MaxHealth)
	pool.MaxMana = math.Max(0, pool.MaxMana)
	pool.Health = clamp(pool.Health, 0, pool.MaxHealth)
	pool.Mana = clamp(pool.Mana, 0, pool.MaxMana)
}

// NewPool returns a full pool with the given maximums
func NewPool(maxHealth, maxMana float64) entities.Pool {
	p := entities.Pool{
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Mana:      maxMana,
		MaxMana:   maxMana,
	}
	Clamp(&p)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
