package entities

// SkillType classifies what a skill does when it fires
type SkillType string

// Skill types
const (
	SkillTypeAttack  SkillType = "attack"
	SkillTypeHeal    SkillType = "heal"
	SkillTypeUtility SkillType = "utility"
	SkillTypeDefense SkillType = "defense"
)

// UtilityKind names the behavior of a utility skill
type UtilityKind string

// Utility kinds
const (
	UtilityDash UtilityKind = "dash"
)

// Effect is the typed payload of a skill. Exactly one of AttackEffect,
// HealEffect, UtilityEffect or DefenseEffect.
type Effect interface {
	SkillType() SkillType
	isEffect()
}

// AttackEffect damages hostiles in range
type AttackEffect struct {
	Damage int `json:"damage"`
}

// HealEffect restores the caster's health
type HealEffect struct {
	Amount float64 `json:"amount"`
}

// UtilityEffect moves or otherwise repositions the caster
type UtilityEffect struct {
	Kind           UtilityKind `json:"kind"`
	RequiresTarget bool        `json:"requiresTarget"`
}

// DefenseEffect has no direct stat change yet; it only drives visuals
type DefenseEffect struct{}

// SkillType implements Effect
func (AttackEffect) SkillType() SkillType { return SkillTypeAttack }

// SkillType implements Effect
func (HealEffect) SkillType() SkillType { return SkillTypeHeal }

// SkillType implements Effect
func (UtilityEffect) SkillType() SkillType { return SkillTypeUtility }

// SkillType implements Effect
func (DefenseEffect) SkillType() SkillType { return SkillTypeDefense }

func (AttackEffect) isEffect()  {}
func (HealEffect) isEffect()    {}
func (UtilityEffect) isEffect() {}
func (DefenseEffect) isEffect() {}

// Skill is an immutable skill definition. Remaining cooldown is tracked
// separately per game.
type Skill struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Cooldown    float64 // seconds
	ManaCost    float64
	Range       float64 // world units; 0 means self-cast
	Effect      Effect
}

// Type returns the skill type derived from its effect
func (s *Skill) Type() SkillType {
	if s.Effect == nil {
		return ""
	}
	return s.Effect.SkillType()
}

// SelfCast reports whether the skill only affects its caster
func (s *Skill) SelfCast() bool {
	return s.Range == 0
}
