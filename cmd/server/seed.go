package main

import (
	"context"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/orchestrators/game"
)

// seedVillage creates a live village with a house, a villager and two goblins
func seedVillage(ctx context.Context, orch game.Service, userID string) (string, error) {
	created, err := orch.CreateGame(ctx, &game.CreateGameInput{UserID: userID, Name: "Starter Village"})
	if err != nil {
		return "", err
	}
	gameID := created.GameID

	house, err := orch.PlaceStructureAt(ctx, &game.PlaceStructureAtInput{
		GameID:        gameID,
		StructureType: "house",
		Cell:          entities.Cell{X: 0, Z: -2},
	})
	if err != nil {
		return "", err
	}

	if _, err := orch.SpawnNPC(ctx, &game.SpawnInput{
		GameID:      gameID,
		Name:        "Ada",
		Type:        "villager",
		StructureID: house.Structure.ID,
	}); err != nil {
		return "", err
	}

	for _, pos := range []entities.Position{{X: 1.5, Z: 0.5}, {X: 4, Z: 3}} {
		if _, err := orch.SpawnEnemy(ctx, &game.SpawnInput{
			GameID:   gameID,
			Type:     "goblin",
			Position: pos,
		}); err != nil {
			return "", err
		}
	}

	return gameID, nil
}
