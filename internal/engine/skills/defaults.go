package skills

import "github.com/KirkDiggler/rpg-village/internal/entities"

// Default skill ids
const (
	BasicAttack = "basic_attack"
	QuickJab    = "quick_jab"
	PowerStrike = "power_strike"
	Whirlwind   = "whirlwind"
	Fireball    = "fireball"
	Meteor      = "meteor"
	Heal        = "heal"
	Rejuvenate  = "rejuvenate"
	Dash        = "dash"
	Shield      = "shield"
)

func defaultSkills() []*entities.Skill {
	return []*entities.Skill{
		{
			ID: BasicAttack, Name: "Basic Attack", Icon: "sword",
			Description: "A simple strike against nearby foes.",
			Cooldown:    1, ManaCost: 10, Range: 2,
			Effect: entities.AttackEffect{Damage: 25},
		},
		{
			ID: QuickJab, Name: "Quick Jab", Icon: "fist",
			Description: "A fast, free punch at close range.",
			Cooldown:    1, ManaCost: 0, Range: 1.5,
			Effect: entities.AttackEffect{Damage: 15},
		},
		{
			ID: PowerStrike, Name: "Power Strike", Icon: "hammer",
			Description: "A heavy blow that hits hard.",
			Cooldown:    5, ManaCost: 20, Range: 2,
			Effect: entities.AttackEffect{Damage: 60},
		},
		{
			ID: Whirlwind, Name: "Whirlwind", Icon: "tornado",
			Description: "Spin to hit every foe around you.",
			Cooldown:    6, ManaCost: 30, Range: 3,
			Effect: entities.AttackEffect{Damage: 35},
		},
		{
			ID: Fireball, Name: "Fireball", Icon: "fire",
			Description: "Hurl fire at distant enemies.",
			Cooldown:    4, ManaCost: 25, Range: 6,
			Effect: entities.AttackEffect{Damage: 45},
		},
		{
			ID: Meteor, Name: "Meteor", Icon: "comet",
			Description: "Call down a meteor on everything nearby.",
			Cooldown:    15, ManaCost: 50, Range: 5,
			Effect: entities.AttackEffect{Damage: 100},
		},
		{
			ID: Heal, Name: "Heal", Icon: "heart",
			Description: "Restore some health.",
			Cooldown:    5, ManaCost: 20,
			Effect: entities.HealEffect{Amount: 40},
		},
		{
			ID: Rejuvenate, Name: "Rejuvenate", Icon: "leaf",
			Description: "Restore a large amount of health.",
			Cooldown:    12, ManaCost: 40,
			Effect: entities.HealEffect{Amount: 80},
		},
		{
			ID: Dash, Name: "Dash", Icon: "wind",
			Description: "Dash toward a point on the ground.",
			Cooldown:    3, ManaCost: 15, Range: 6,
			Effect: entities.UtilityEffect{Kind: entities.UtilityDash, RequiresTarget: true},
		},
		{
			ID: Shield, Name: "Shield", Icon: "shield",
			Description: "Raise a protective barrier.",
			Cooldown:    10, ManaCost: 25,
			Effect: entities.DefenseEffect{},
		},
	}
}

// Default returns a fresh catalog of the built-in skills
func Default() *Catalog {
	c, err := New(defaultSkills())
	if err != nil {
		panic(err)
	}
	return c
}
