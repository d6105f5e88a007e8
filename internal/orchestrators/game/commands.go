package game

import (
	"context"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/engine/simulation"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

func (in *SpawnInput) toSimulation() *simulation.SpawnInput {
	return &simulation.SpawnInput{
		Name:        in.Name,
		Type:        in.Type,
		StructureID: in.StructureID,
		Position:    in.Position,
		MaxHealth:   in.MaxHealth,
		MaxMana:     in.MaxMana,
	}
}

// SpawnNPC adds a friendly NPC to a live world
func (o *orchestrator) SpawnNPC(_ context.Context, input *SpawnInput) (*SpawnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var e *entities.Entity
	err := o.withGame(input.GameID, func(g *liveGame) error {
		var err error
		e, err = g.sim.SpawnNPC(input.toSimulation())
		return err
	})
	if err != nil {
		return nil, err
	}

	return &SpawnOutput{Entity: e}, nil
}

// SpawnEnemy adds a hostile to a live world
func (o *orchestrator) SpawnEnemy(_ context.Context, input *SpawnInput) (*SpawnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var e *entities.Entity
	err := o.withGame(input.GameID, func(g *liveGame) error {
		var err error
		e, err = g.sim.SpawnEnemy(input.toSimulation())
		return err
	})
	if err != nil {
		return nil, err
	}

	return &SpawnOutput{Entity: e}, nil
}

// RemoveEntity deletes an entity from a live world
func (o *orchestrator) RemoveEntity(_ context.Context, input *RemoveEntityInput) (*RemoveEntityOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	err := o.withGame(input.GameID, func(g *liveGame) error {
		return g.sim.RemoveEntity(input.EntityID)
	})
	if err != nil {
		return nil, err
	}

	return &RemoveEntityOutput{}, nil
}

// SetControlled hands player control to an NPC
func (o *orchestrator) SetControlled(_ context.Context, input *SetControlledInput) (*SetControlledOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var controlled string
	err := o.withGame(input.GameID, func(g *liveGame) error {
		if err := g.sim.SetControlled(input.EntityID); err != nil {
			return err
		}
		controlled = g.sim.ControlledID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SetControlledOutput{ControlledID: controlled}, nil
}

// MoveEntity records a new position for an entity
func (o *orchestrator) MoveEntity(_ context.Context, input *MoveEntityInput) (*MoveEntityOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var e *entities.Entity
	err := o.withGame(input.GameID, func(g *liveGame) error {
		var err error
		e, err = g.sim.MoveEntity(&simulation.MoveInput{
			EntityID:  input.EntityID,
			Position:  input.Position,
			Rotation:  input.Rotation,
			Animation: input.Animation,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &MoveEntityOutput{Entity: e}, nil
}

// ActivateSkill fires a skill. Validation and every state change happen under
// the game lock, so mana and cooldowns cannot be spent twice.
func (o *orchestrator) ActivateSkill(_ context.Context, input *ActivateSkillInput) (*ActivateSkillOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var result *activation.ActivateOutput
	err := o.withGame(input.GameID, func(g *liveGame) error {
		var err error
		result, err = g.sim.Activate(&activation.ActivateInput{
			ActorID: input.ActorID,
			SkillID: input.SkillID,
			Target:  input.Target,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ActivateSkillOutput{Result: result}, nil
}

// PointerMove moves the placement pointer
func (o *orchestrator) PointerMove(_ context.Context, input *PointerMoveInput) (*PointerMoveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &PointerMoveOutput{}
	err := o.withGame(input.GameID, func(g *liveGame) error {
		out.Preview = g.sim.PointerMove(input.Ray)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// RotatePreview turns the placement preview a quarter turn
func (o *orchestrator) RotatePreview(_ context.Context, input *RotatePreviewInput) (*RotatePreviewOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &RotatePreviewOutput{}
	err := o.withGame(input.GameID, func(g *liveGame) error {
		out.Rotation = g.sim.RotatePreview()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// PlaceStructure commits the placement preview
func (o *orchestrator) PlaceStructure(_ context.Context, input *PlaceStructureInput) (*PlaceStructureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var st *entities.Structure
	err := o.withGame(input.GameID, func(g *liveGame) error {
		var err error
		st, err = g.sim.PlaceStructure(input.StructureType)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PlaceStructureOutput{Structure: st}, nil
}

// PlaceStructureAt places a structure at a given cell
func (o *orchestrator) PlaceStructureAt(_ context.Context, input *PlaceStructureAtInput) (*PlaceStructureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var st *entities.Structure
	err := o.withGame(input.GameID, func(g *liveGame) error {
		var err error
		st, err = g.sim.PlaceStructureAt(input.StructureType, input.Cell, input.Rotation)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PlaceStructureOutput{Structure: st}, nil
}

// RemoveStructure deletes a placed structure
func (o *orchestrator) RemoveStructure(_ context.Context, input *RemoveStructureInput) (*RemoveStructureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var st *entities.Structure
	err := o.withGame(input.GameID, func(g *liveGame) error {
		var err error
		st, err = g.sim.RemoveStructure(input.StructureID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &RemoveStructureOutput{Structure: st}, nil
}
