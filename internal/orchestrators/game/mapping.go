package game

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-village/internal/engine/resource"
	"github.com/KirkDiggler/rpg-village/internal/engine/simulation"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/repositories/gamestate"
)

// toWorld splits a simulation state into the persisted header and rows.
// NPCs become rows; their pools, the enemies and cooldowns go into the data blob.
func toWorld(header entities.GameState, gridSize int, st *simulation.State) (*gamestate.World, error) {
	data := entities.WorldData{
		GridSize:     gridSize,
		ControlledID: st.ControlledID,
		Pools:        make(map[string]entities.Pool),
		Cooldowns:    st.Cooldowns,
	}

	world := &gamestate.World{}
	for _, s := range st.Structures {
		world.Structures = append(world.Structures, &entities.StructureRecord{
			StructureID: s.ID,
			Type:        s.Type,
			X:           s.Cell.X,
			Z:           s.Cell.Z,
			Rotation:    int(s.Rotation),
		})
	}

	for _, e := range st.Entities {
		if e.Kind == entities.KindEnemy {
			data.Enemies = append(data.Enemies, e)
			continue
		}
		world.NPCs = append(world.NPCs, &entities.NPCRecord{
			NPCID:       e.ID,
			Name:        e.Name,
			StructureID: e.StructureID,
			Type:        e.Type,
			X:           e.Position.X,
			Z:           e.Position.Z,
			Rotation:    e.Rotation,
			Animation:   string(e.Animation),
		})
		data.Pools[e.ID] = e.Pool
	}

	raw, err := json.Marshal(&data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal world data")
	}
	header.Data = raw
	world.GameState = &header

	return world, nil
}

// fromWorld rebuilds a simulation state from persisted rows. NPCs without a
// saved pool start full.
func fromWorld(world *gamestate.World) (*simulation.State, *entities.WorldData, error) {
	if world == nil || world.GameState == nil {
		return nil, nil, errors.InvalidArgument("world is required")
	}

	var data entities.WorldData
	if len(world.GameState.Data) > 0 {
		if err := json.Unmarshal(world.GameState.Data, &data); err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to unmarshal world data")
		}
	}

	st := &simulation.State{
		ControlledID: data.ControlledID,
		Cooldowns:    data.Cooldowns,
	}

	for _, rec := range world.Structures {
		st.Structures = append(st.Structures, &entities.Structure{
			ID:       rec.StructureID,
			Type:     rec.Type,
			Cell:     entities.Cell{X: rec.X, Z: rec.Z},
			Rotation: entities.Rotation(rec.Rotation),
		})
	}

	for _, rec := range world.NPCs {
		pool, ok := data.Pools[rec.NPCID]
		if !ok {
			pool = resource.NewPool(simulation.DefaultMaxHealth, simulation.DefaultMaxMana)
		}
		anim := entities.AnimationState(rec.Animation)
		if !anim.Valid() {
			anim = entities.AnimationIdle
		}
		st.Entities = append(st.Entities, &entities.Entity{
			ID:          rec.NPCID,
			Name:        rec.Name,
			Kind:        entities.KindNPC,
			Type:        rec.Type,
			StructureID: rec.StructureID,
			Position:    entities.Position{X: rec.X, Z: rec.Z},
			Rotation:    rec.Rotation,
			Animation:   anim,
			Pool:        pool,
		})
	}

	for _, e := range data.Enemies {
		if e == nil {
			continue
		}
		e.Kind = entities.KindEnemy
		st.Entities = append(st.Entities, e)
	}

	return st, &data, nil
}
