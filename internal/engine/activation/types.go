package activation

import "github.com/KirkDiggler/rpg-village/internal/entities"

// ActivateInput requests a skill activation
type ActivateInput struct {
	ActorID string
	SkillID string
	Target  *entities.Position // ground target, required by dash
}

// Hit is the damage dealt to one hostile
type Hit struct {
	TargetID string            `json:"targetId"`
	Damage   float64           `json:"damage"`
	Health   float64           `json:"health"`
	Killed   bool              `json:"killed"`
	Position entities.Position `json:"position"`
}

// ActivateOutput describes what a successful activation did
type ActivateOutput struct {
	SkillID       string             `json:"skillId"`
	Type          entities.SkillType `json:"type"`
	Hits          []Hit              `json:"hits,omitempty"`
	Healed        float64            `json:"healed,omitempty"`
	Destination   *entities.Position `json:"destination,omitempty"`
	ManaRemaining float64            `json:"manaRemaining"`
	Cooldown      float64            `json:"cooldown"`
}

// Killed lists the ids of hostiles this activation brought to zero health
func (o *ActivateOutput) Killed() []string {
	var ids []string
	for _, h := range o.Hits {
		if h.Killed {
			ids = append(ids, h.TargetID)
		}
	}
	return ids
}
