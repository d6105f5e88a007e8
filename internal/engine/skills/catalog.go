// Package skills holds the immutable skill catalog
package skills

import (
	"sort"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// Catalog is a read-only set of skill definitions keyed by id
type Catalog struct {
	skills map[string]*entities.Skill
	order  []string
}

// New validates the definitions and builds a catalog from them
func New(defs []*entities.Skill) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, errors.InvalidArgument("catalog needs at least one skill")
	}

	c := &Catalog{skills: make(map[string]*entities.Skill, len(defs))}
	for i, def := range defs {
		if err := Validate(def); err != nil {
			return nil, errors.Wrapf(err, "skill %d", i)
		}
		if _, dup := c.skills[def.ID]; dup {
			return nil, errors.AlreadyExistsf("duplicate skill id %s", def.ID)
		}
		cp := *def
		c.skills[def.ID] = &cp
		c.order = append(c.order, def.ID)
	}
	sort.Strings(c.order)

	return c, nil
}

// Get returns a copy of the skill with the given id
func (c *Catalog) Get(id string) (*entities.Skill, bool) {
	sk, ok := c.skills[id]
	if !ok {
		return nil, false
	}
	cp := *sk
	return &cp, true
}

// List returns copies of every skill ordered by id
func (c *Catalog) List() []*entities.Skill {
	out := make([]*entities.Skill, 0, len(c.order))
	for _, id := range c.order {
		cp := *c.skills[id]
		out = append(out, &cp)
	}
	return out
}

// Len returns the number of skills
func (c *Catalog) Len() int {
	return len(c.order)
}

// Validate checks a single definition
func Validate(def *entities.Skill) error {
	if def == nil {
		return errors.InvalidArgument("skill is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", def.ID, vb)
	errors.ValidateNonNegative("Cooldown", def.Cooldown, vb)
	errors.ValidateNonNegative("ManaCost", def.ManaCost, vb)
	errors.ValidateNonNegative("Range", def.Range, vb)

	switch e := def.Effect.(type) {
	case nil:
		vb.RequiredField("Effect")
	case entities.AttackEffect:
		if e.Damage < 0 {
			vb.Fieldf("Effect.Damage", "must not be negative, got %d", e.Damage)
		}
		if def.Range == 0 {
			vb.Field("Range", "attack skills need a positive range")
		}
	case entities.HealEffect:
		errors.ValidateNonNegative("Effect.Amount", e.Amount, vb)
	case entities.UtilityEffect:
		if e.Kind != entities.UtilityDash {
			vb.Fieldf("Effect.Kind", "unknown utility kind %q", e.Kind)
		}
	case entities.DefenseEffect:
	}

	return vb.Build()
}
