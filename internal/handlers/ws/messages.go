package ws

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/engine/placement"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// Client message types
const (
	MessageActivate        = "activate"
	MessagePointer         = "pointer"
	MessageRotate          = "rotate"
	MessagePlace           = "place"
	MessageRemoveStructure = "remove_structure"
	MessageMove            = "move"
	MessageControl         = "control"
	MessageState           = "state"
	MessageSave            = "save"
)

// Server message types
const (
	MessageResult = "result"
	MessageEffect = "effect"
)

// ClientMessage is every request a browser can send. Fields not used by a
// type are ignored.
type ClientMessage struct {
	Type string `json:"type"`

	// activate
	ActorID string             `json:"actorId,omitempty"`
	SkillID string             `json:"skillId,omitempty"`
	Target  *entities.Position `json:"target,omitempty"`

	// pointer
	Origin    placement.Vec3 `json:"origin"`
	Direction placement.Vec3 `json:"direction"`

	// place, remove_structure
	StructureType string `json:"structureType,omitempty"`
	StructureID   string `json:"structureId,omitempty"`

	// move, control
	EntityID  string                  `json:"entityId,omitempty"`
	X         float64                 `json:"x"`
	Z         float64                 `json:"z"`
	Rotation  float64                 `json:"rotation"`
	Animation entities.AnimationState `json:"animation,omitempty"`
}

// ResultMessage answers one client request
type ResultMessage struct {
	Type        string `json:"type"`
	RequestType string `json:"requestType"`
	OK          bool   `json:"ok"`
	Code        string `json:"code,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Message     string `json:"message,omitempty"`
	Data        any    `json:"data,omitempty"`
}

// EffectMessage forwards a visual effect request
type EffectMessage struct {
	Type string `json:"type"`
	activation.EffectRequest
}

// StateMessage carries a full world snapshot
type StateMessage struct {
	Type string `json:"type"`
	*entities.Snapshot
}

// SkillView is the JSON shape of a catalog entry
type SkillView struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description,omitempty"`
	Icon           string               `json:"icon,omitempty"`
	Type           entities.SkillType   `json:"type"`
	Cooldown       float64              `json:"cooldown"`
	ManaCost       float64              `json:"manaCost"`
	Range          float64              `json:"range"`
	Damage         int                  `json:"damage,omitempty"`
	Amount         float64              `json:"amount,omitempty"`
	Utility        entities.UtilityKind `json:"utility,omitempty"`
	RequiresTarget bool                 `json:"requiresTarget,omitempty"`
}

// NewSkillView flattens a skill's effect into view fields
func NewSkillView(skill *entities.Skill) SkillView {
	v := SkillView{
		ID:          skill.ID,
		Name:        skill.Name,
		Description: skill.Description,
		Icon:        skill.Icon,
		Type:        skill.Type(),
		Cooldown:    skill.Cooldown,
		ManaCost:    skill.ManaCost,
		Range:       skill.Range,
	}
	switch e := skill.Effect.(type) {
	case entities.AttackEffect:
		v.Damage = e.Damage
	case entities.HealEffect:
		v.Amount = e.Amount
	case entities.UtilityEffect:
		v.Utility = e.Kind
		v.RequiresTarget = e.RequiresTarget
	}
	return v
}

func newResult(requestType string, data any, err error) *ResultMessage {
	msg := &ResultMessage{
		Type:        MessageResult,
		RequestType: requestType,
		OK:          err == nil,
		Data:        data,
	}
	if err != nil {
		msg.Data = nil
		msg.Code = string(errors.GetCode(err))
		msg.Reason = string(errors.GetReason(err))
		msg.Message = errors.GetMessage(err)
	}
	return msg
}

func encode(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}
	return data, nil
}
