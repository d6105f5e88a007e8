// Package cooldown tracks the remaining cooldown of every skill in a game.
package cooldown

import (
	"math"
	"sort"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

type entry struct {
	cooldown  float64
	remaining float64
}

// Tracker holds remaining cooldown per skill id.
// Invariant: 0 <= remaining <= cooldown for every skill.
// A Tracker is not safe for concurrent use; the owning simulation serializes access.
type Tracker struct {
	entries map[string]*entry
}

// New creates a tracker for the given skills with every skill ready
func New(skills []*entities.Skill) *Tracker {
	t := &Tracker{entries: make(map[string]*entry, len(skills))}
	for _, sk := range skills {
		if sk == nil {
			continue
		}
		t.entries[sk.ID] = &entry{cooldown: math.Max(0, sk.Cooldown)}
	}
	return t
}

// Tick counts every skill down by delta seconds. Non-positive deltas do nothing.
func (t *Tracker) Tick(delta float64) {
	if delta <= 0 || math.IsNaN(delta) {
		return
	}
	for _, e := range t.entries {
		if e.remaining == 0 {
			continue
		}
		e.remaining = math.Max(0, e.remaining-delta)
	}
}

// Trigger starts the skill's cooldown
func (t *Tracker) Trigger(skillID string) error {
	e, ok := t.entries[skillID]
	if !ok {
		return errors.NotFoundf("skill %s is not tracked", skillID)
	}
	e.remaining = e.cooldown
	return nil
}

// IsReady reports whether the skill can fire. Unknown skills are never ready.
func (t *Tracker) IsReady(skillID string) bool {
	e, ok := t.entries[skillID]
	return ok && e.remaining == 0
}

// Remaining returns seconds left on the skill's cooldown
func (t *Tracker) Remaining(skillID string) float64 {
	if e, ok := t.entries[skillID]; ok {
		return e.remaining
	}
	return 0
}

// Reset makes every skill ready
func (t *Tracker) Reset() {
	for _, e := range t.entries {
		e.remaining = 0
	}
}

// Snapshot returns remaining cooldowns for skills that are not ready
func (t *Tracker) Snapshot() map[string]float64 {
	out := make(map[string]float64)
	for id, e := range t.entries {
		if e.remaining > 0 {
			out[id] = e.remaining
		}
	}
	return out
}

// Restore loads remaining cooldowns from a snapshot. Values are clamped into
// [0, cooldown] and unknown ids are ignored. Skills missing from the snapshot
// become ready.
func (t *Tracker) Restore(remaining map[string]float64) {
	t.Reset()
	for id, r := range remaining {
		e, ok := t.entries[id]
		if !ok || math.IsNaN(r) {
			continue
		}
		e.remaining = math.Max(0, math.Min(e.cooldown, r))
	}
}

// SkillIDs lists tracked skill ids in sorted order
func (t *Tracker) SkillIDs() []string {
	ids := make([]string, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
