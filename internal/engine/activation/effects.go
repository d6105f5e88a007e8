package activation

//go:generate mockgen -destination=mock/mock_effect_sink.go -package=activationmock github.com/KirkDiggler/rpg-village/internal/engine/activation EffectSink

import "github.com/KirkDiggler/rpg-village/internal/entities"

// EffectKind tells the presentation layer which visual to play
type EffectKind string

// Effect kinds
const (
	EffectHit     EffectKind = "hit"
	EffectMiss    EffectKind = "miss"
	EffectHeal    EffectKind = "heal"
	EffectDash    EffectKind = "dash"
	EffectDefense EffectKind = "defense"
)

// EffectRequest asks the presentation layer to show a skill effect
type EffectRequest struct {
	GameID   string            `json:"gameId"`
	SkillID  string            `json:"skillId"`
	ActorID  string            `json:"actorId"`
	TargetID string            `json:"targetId,omitempty"`
	Position entities.Position `json:"position"`
	Kind     EffectKind        `json:"kind"`
	Amount   float64           `json:"amount,omitempty"`
}

// EffectSink receives effect requests. Implementations must not block.
type EffectSink interface {
	RequestEffect(req EffectRequest)
}

// EffectSinkFunc adapts a function to EffectSink
type EffectSinkFunc func(req EffectRequest)

// RequestEffect implements EffectSink
func (f EffectSinkFunc) RequestEffect(req EffectRequest) {
	f(req)
}

// DiscardEffects drops every request
var DiscardEffects EffectSink = EffectSinkFunc(func(EffectRequest) {})
