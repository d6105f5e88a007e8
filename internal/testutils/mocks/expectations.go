// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/repositories/gamestate"
	gamestatemock "github.com/KirkDiggler/rpg-village/internal/repositories/gamestate/mock"
)

// ExpectWorldLoad makes the repository return world for its game ID
func ExpectWorldLoad(ctx context.Context, repo *gamestatemock.MockRepository, world *gamestate.World) {
	repo.EXPECT().
		Get(ctx, &gamestate.GetInput{ID: world.GameState.ID}).
		Return(&gamestate.GetOutput{World: world.Clone()}, nil)
}

// ExpectWorldSave accepts one save and hands the saved world to capture,
// echoing the header back as the repository would
func ExpectWorldSave(ctx context.Context, repo *gamestatemock.MockRepository, capture func(*gamestate.World)) {
	repo.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *gamestate.SaveInput) (*gamestate.SaveOutput, error) {
			if capture != nil {
				capture(input.World.Clone())
			}
			gs := *input.World.GameState
			return &gamestate.SaveOutput{GameState: &gs}, nil
		})
}

// ExpectGameList returns headers for a user's games
func ExpectGameList(ctx context.Context, repo *gamestatemock.MockRepository, userID string, games ...*entities.GameState) {
	repo.EXPECT().
		ListByUser(ctx, &gamestate.ListByUserInput{UserID: userID}).
		Return(&gamestate.ListByUserOutput{GameStates: games}, nil)
}
