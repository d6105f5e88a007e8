// Package gamestate defines the interface for game state persistence
package gamestate

//go:generate mockgen -destination=mock/mock_repository.go -package=gamestatemock github.com/KirkDiggler/rpg-village/internal/repositories/gamestate Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// World is a saved game: the header row plus its structure and NPC rows
type World struct {
	GameState  *entities.GameState         `json:"gameState"`
	Structures []*entities.StructureRecord `json:"structures"`
	NPCs       []*entities.NPCRecord       `json:"npcs"`
}

// Repository defines the interface for game state persistence
type Repository interface {
	// Save creates or replaces a game and all of its rows
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a game by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the game doesn't exist
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a game and its rows
	// Returns errors.NotFound if the game doesn't exist
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// ListByUser returns the headers of a user's games, most recently updated first
	// Returns errors.InvalidArgument for empty user IDs
	ListByUser(ctx context.Context, input *ListByUserInput) (*ListByUserOutput, error)
}

// SaveInput defines the input for saving a game
type SaveInput struct {
	World *World
}

// SaveOutput defines the output for saving a game
type SaveOutput struct {
	GameState *entities.GameState
}

// GetInput defines the input for getting a game
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a game
type GetOutput struct {
	World *World
}

// DeleteInput defines the input for deleting a game
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a game
type DeleteOutput struct{}

// ListByUserInput defines the input for listing a user's games
type ListByUserInput struct {
	UserID string
}

// ListByUserOutput defines the output for listing a user's games
type ListByUserOutput struct {
	GameStates []*entities.GameState
}

func validateWorld(w *World) error {
	if w == nil || w.GameState == nil {
		return errors.InvalidArgument("game state is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", w.GameState.ID, vb)
	errors.ValidateRequired("UserID", w.GameState.UserID, vb)
	for i, st := range w.Structures {
		if st == nil || st.StructureID == "" {
			vb.Fieldf("Structures", "row %d has no structure ID", i)
		}
	}
	for i, npc := range w.NPCs {
		if npc == nil || npc.NPCID == "" {
			vb.Fieldf("NPCs", "row %d has no NPC ID", i)
		}
	}
	return vb.Build()
}

// normalize stamps every row with the game id and fills in row ids
func normalize(w *World) {
	for _, st := range w.Structures {
		st.GameStateID = w.GameState.ID
		if st.ID == "" {
			st.ID = w.GameState.ID + ":" + st.StructureID
		}
	}
	for _, npc := range w.NPCs {
		npc.GameStateID = w.GameState.ID
		if npc.ID == "" {
			npc.ID = w.GameState.ID + ":" + npc.NPCID
		}
	}
}

// Clone returns a deep copy of the world
func (w *World) Clone() *World {
	if w == nil {
		return nil
	}
	out := &World{}
	if w.GameState != nil {
		gs := *w.GameState
		gs.Data = append([]byte(nil), w.GameState.Data...)
		out.GameState = &gs
	}
	for _, st := range w.Structures {
		cp := *st
		out.Structures = append(out.Structures, &cp)
	}
	for _, npc := range w.NPCs {
		cp := *npc
		out.NPCs = append(out.NPCs, &cp)
	}
	return out
}
