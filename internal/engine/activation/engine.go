// Package activation validates and resolves skill activations against a game's
// entities, cooldowns and skill catalog.
package activation

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-village/internal/engine/cooldown"
	"github.com/KirkDiggler/rpg-village/internal/engine/registry"
	"github.com/KirkDiggler/rpg-village/internal/engine/resource"
	"github.com/KirkDiggler/rpg-village/internal/engine/skills"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// Config holds the dependencies of an Engine
type Config struct {
	GameID    string
	Registry  registry.Registry
	Catalog   *skills.Catalog
	Cooldowns *cooldown.Tracker
	Effects   EffectSink
	Roller    Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Cooldowns == nil {
		vb.RequiredField("Cooldowns")
	}
	if c.Effects == nil {
		vb.RequiredField("Effects")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Engine resolves skill activations. It is not safe for concurrent use;
// callers hold the game lock across Activate.
type Engine struct {
	gameID    string
	registry  registry.Registry
	catalog   *skills.Catalog
	cooldowns *cooldown.Tracker
	effects   EffectSink
	roller    Roller
}

// New creates an activation engine
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Engine{
		gameID:    cfg.GameID,
		registry:  cfg.Registry,
		catalog:   cfg.Catalog,
		cooldowns: cfg.Cooldowns,
		effects:   cfg.Effects,
		roller:    cfg.Roller,
	}, nil
}

// pendingHit is a damage roll made before any state changes
type pendingHit struct {
	target *entities.Entity
	damage float64
}

// Activate fires a skill for the controlled actor. Every check runs before the
// first mutation, so a failed activation changes nothing.
func (e *Engine) Activate(input *ActivateInput) (*ActivateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	actor, ok := e.registry.Get(input.ActorID)
	if !ok || !actor.Alive() || actor.ID != e.registry.ControlledID() {
		return nil, errors.Rejectedf(errors.ReasonNoActor, "actor %q is not the living controlled entity", input.ActorID)
	}

	skill, ok := e.catalog.Get(input.SkillID)
	if !ok {
		return nil, errors.Rejectedf(errors.ReasonUnknownSkill, "unknown skill %q", input.SkillID)
	}

	if !e.cooldowns.IsReady(skill.ID) {
		return nil, errors.Rejectedf(errors.ReasonOnCooldown, "skill %s is on cooldown for %.2fs",
			skill.ID, e.cooldowns.Remaining(skill.ID)).
			WithMeta("remaining", e.cooldowns.Remaining(skill.ID))
	}

	if !resource.CanAfford(&actor.Pool, skill.ManaCost) {
		return nil, errors.Rejectedf(errors.ReasonInsufficientMana, "skill %s costs %.0f mana, actor has %.0f",
			skill.ID, skill.ManaCost, actor.Pool.Mana)
	}

	if u, isUtility := skill.Effect.(entities.UtilityEffect); isUtility && u.RequiresTarget && input.Target == nil {
		return nil, errors.Rejectedf(errors.ReasonMissingTarget, "skill %s needs a target position", skill.ID)
	}

	var pending []pendingHit
	if atk, isAttack := skill.Effect.(entities.AttackEffect); isAttack {
		var err error
		pending, err = e.rollHits(actor, skill, atk)
		if err != nil {
			return nil, err
		}
	}

	// Validation is complete; mutate from here on.
	resource.ConsumeMana(&actor.Pool, skill.ManaCost)
	if err := e.cooldowns.Trigger(skill.ID); err != nil {
		return nil, errors.Wrap(err, "failed to trigger cooldown")
	}

	output := &ActivateOutput{
		SkillID:  skill.ID,
		Type:     skill.Type(),
		Cooldown: e.cooldowns.Remaining(skill.ID),
	}

	switch eff := skill.Effect.(type) {
	case entities.HealEffect:
		before := actor.Pool.Health
		if _, err := resource.ApplyHeal(&actor.Pool, eff.Amount); err != nil {
			return nil, errors.Wrap(err, "failed to apply heal")
		}
		output.Healed = actor.Pool.Health - before
		e.emit(skill, actor, "", actor.Position, EffectHeal, output.Healed)
		slog.Info("Skill healed actor",
			"game_id", e.gameID,
			"skill_id", skill.ID,
			"actor_id", actor.ID,
			"healed", output.Healed,
			"health", actor.Pool.Health)

	case entities.UtilityEffect:
		dest := clampToRange(actor.Position, *input.Target, skill.Range)
		output.Destination = &dest
		e.emit(skill, actor, "", dest, EffectDash, 0)
		slog.Info("Skill dash requested",
			"game_id", e.gameID,
			"skill_id", skill.ID,
			"actor_id", actor.ID,
			"x", dest.X,
			"z", dest.Z)

	case entities.DefenseEffect:
		e.emit(skill, actor, "", actor.Position, EffectDefense, 0)
	}

	if err := e.registry.Update(actor); err != nil {
		return nil, errors.Wrap(err, "failed to update actor")
	}
	output.ManaRemaining = actor.Pool.Mana

	if skill.Type() == entities.SkillTypeAttack {
		hits, err := e.applyHits(skill, actor, pending)
		if err != nil {
			return nil, err
		}
		output.Hits = hits
	}

	return output, nil
}

// rollHits finds targets and rolls per-target damage without touching state
func (e *Engine) rollHits(actor *entities.Entity, skill *entities.Skill, atk entities.AttackEffect) ([]pendingHit, error) {
	var pending []pendingHit
	for _, target := range e.registry.HostilesInRange(actor.Position, skill.Range) {
		if !target.Alive() || actor.Position.DistanceTo(target.Position) > skill.Range {
			continue
		}
		variance, err := rollVariance(e.roller)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll damage variance")
		}
		pending = append(pending, pendingHit{
			target: target,
			damage: math.Max(0, float64(atk.Damage+variance)),
		})
	}
	return pending, nil
}

func (e *Engine) applyHits(skill *entities.Skill, actor *entities.Entity, pending []pendingHit) ([]Hit, error) {
	if len(pending) == 0 {
		e.emit(skill, actor, "", actor.Position, EffectMiss, 0)
		slog.Info("Skill missed",
			"game_id", e.gameID,
			"skill_id", skill.ID,
			"actor_id", actor.ID,
			"range", skill.Range)
		return nil, nil
	}

	hits := make([]Hit, 0, len(pending))
	for _, p := range pending {
		health, err := resource.ApplyDamage(&p.target.Pool, p.damage)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to damage %s", p.target.ID)
		}
		if err := e.registry.Update(p.target); err != nil {
			return nil, errors.Wrapf(err, "failed to update %s", p.target.ID)
		}

		hit := Hit{
			TargetID: p.target.ID,
			Damage:   p.damage,
			Health:   health,
			Killed:   health == 0,
			Position: p.target.Position,
		}
		hits = append(hits, hit)

		e.emit(skill, actor, p.target.ID, p.target.Position, EffectHit, p.damage)
		slog.Info("Skill hit",
			"game_id", e.gameID,
			"skill_id", skill.ID,
			"actor_id", actor.ID,
			"target_id", p.target.ID,
			"damage", p.damage,
			"health", health)
		if hit.Killed {
			slog.Info("Enemy killed",
				"game_id", e.gameID,
				"skill_id", skill.ID,
				"target_id", p.target.ID)
		}
	}
	return hits, nil
}

func (e *Engine) emit(skill *entities.Skill, actor *entities.Entity, targetID string, pos entities.Position, kind EffectKind, amount float64) {
	e.effects.RequestEffect(EffectRequest{
		GameID:   e.gameID,
		SkillID:  skill.ID,
		ActorID:  actor.ID,
		TargetID: targetID,
		Position: pos,
		Kind:     kind,
		Amount:   amount,
	})
}

// clampToRange pulls target back onto the circle of radius r around origin
func clampToRange(origin, target entities.Position, r float64) entities.Position {
	d := origin.DistanceTo(target)
	if d <= r || d == 0 {
		return target
	}
	scale := r / d
	return entities.Position{
		X: origin.X + (target.X-origin.X)*scale,
		Z: origin.Z + (target.Z-origin.Z)*scale,
	}
}
