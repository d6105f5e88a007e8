package testutils

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/repositories/gamestate"
)

const (
	// TestUserID is the default owner of fixture games
	TestUserID = "user-test-001"

	// TestGameName is the default fixture game name
	TestGameName = "Riverside"
)

// FixedTime is a stable timestamp for fixtures
var FixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// CreateTestWorld creates a saved world with one house, one villager and a
// goblin in its data blob
func CreateTestWorld(id, userID string) *gamestate.World {
	data, _ := json.Marshal(&entities.WorldData{
		GridSize:     20,
		ControlledID: "npc-1",
		Pools: map[string]entities.Pool{
			"npc-1": {Health: 80, MaxHealth: 100, Mana: 35, MaxMana: 100},
		},
		Enemies: []*entities.Entity{
			{
				ID:        "enemy-1",
				Kind:      entities.KindEnemy,
				Type:      "goblin",
				Position:  entities.Position{X: 4, Z: 4},
				Animation: entities.AnimationIdle,
				Pool:      entities.Pool{Health: 60, MaxHealth: 100},
			},
		},
		Cooldowns: map[string]float64{"fireball": 2.5},
	})

	return &gamestate.World{
		GameState: &entities.GameState{
			ID:     id,
			UserID: userID,
			Name:   TestGameName,
			Data:   data,
		},
		Structures: []*entities.StructureRecord{
			{StructureID: "structure-1", Type: "house", X: 3, Z: 4, Rotation: 90},
		},
		NPCs: []*entities.NPCRecord{
			{NPCID: "npc-1", Name: "Ada", Type: "villager", StructureID: "structure-1", X: 1, Z: 2, Rotation: 0.5, Animation: "idle"},
		},
	}
}
