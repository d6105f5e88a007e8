package game

import (
	"time"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/engine/placement"
	"github.com/KirkDiggler/rpg-village/internal/engine/simulation"
	"github.com/KirkDiggler/rpg-village/internal/entities"
)

// CreateGameInput defines the request for starting a new game
type CreateGameInput struct {
	UserID   string
	Name     string
	GridSize int // 0 uses the orchestrator default
}

// CreateGameOutput defines the response for starting a new game
type CreateGameOutput struct {
	GameID   string
	Snapshot *entities.Snapshot
}

// LoadGameInput defines the request for loading a saved game into memory
type LoadGameInput struct {
	GameID string
}

// LoadGameOutput defines the response for loading a saved game
type LoadGameOutput struct {
	GameState *entities.GameState
	Snapshot  *entities.Snapshot
}

// SaveGameInput defines the request for persisting a live game
type SaveGameInput struct {
	GameID string
}

// SaveGameOutput defines the response for persisting a live game
type SaveGameOutput struct {
	GameState *entities.GameState
}

// DeleteGameInput defines the request for deleting a game
type DeleteGameInput struct {
	GameID string
}

// DeleteGameOutput defines the response for deleting a game
type DeleteGameOutput struct{}

// ListGamesInput defines the request for listing a user's saved games
type ListGamesInput struct {
	UserID string
}

// ListGamesOutput defines the response for listing a user's saved games
type ListGamesOutput struct {
	GameStates []*entities.GameState
}

// GetStateInput defines the request for a world snapshot
type GetStateInput struct {
	GameID string
}

// GetStateOutput defines the response for a world snapshot
type GetStateOutput struct {
	Snapshot *entities.Snapshot
}

// SpawnInput defines the request for spawning an NPC or enemy
type SpawnInput struct {
	GameID      string
	Name        string
	Type        string
	StructureID string
	Position    entities.Position
	MaxHealth   float64
	MaxMana     float64
}

// SpawnOutput defines the response for spawning an entity
type SpawnOutput struct {
	Entity *entities.Entity
}

// RemoveEntityInput defines the request for removing an entity
type RemoveEntityInput struct {
	GameID   string
	EntityID string
}

// RemoveEntityOutput defines the response for removing an entity
type RemoveEntityOutput struct{}

// SetControlledInput defines the request for taking control of an NPC
type SetControlledInput struct {
	GameID   string
	EntityID string // empty releases control
}

// SetControlledOutput defines the response for taking control of an NPC
type SetControlledOutput struct {
	ControlledID string
}

// MoveEntityInput defines the request for moving an entity
type MoveEntityInput struct {
	GameID    string
	EntityID  string
	Position  entities.Position
	Rotation  float64
	Animation entities.AnimationState
}

// MoveEntityOutput defines the response for moving an entity
type MoveEntityOutput struct {
	Entity *entities.Entity
}

// ActivateSkillInput defines the request for firing a skill
type ActivateSkillInput struct {
	GameID  string
	ActorID string
	SkillID string
	Target  *entities.Position
}

// ActivateSkillOutput defines the response for firing a skill
type ActivateSkillOutput struct {
	Result *activation.ActivateOutput
}

// PointerMoveInput defines the request for moving the placement pointer
type PointerMoveInput struct {
	GameID string
	Ray    placement.Ray
}

// PointerMoveOutput defines the response for moving the placement pointer
type PointerMoveOutput struct {
	Preview *placement.Preview // nil when the pointer is off the grid
}

// RotatePreviewInput defines the request for rotating the placement preview
type RotatePreviewInput struct {
	GameID string
}

// RotatePreviewOutput defines the response for rotating the placement preview
type RotatePreviewOutput struct {
	Rotation entities.Rotation
}

// PlaceStructureInput defines the request for committing the placement preview
type PlaceStructureInput struct {
	GameID        string
	StructureType string
}

// PlaceStructureOutput defines the response for placing a structure
type PlaceStructureOutput struct {
	Structure *entities.Structure
}

// PlaceStructureAtInput defines the request for placing a structure at a cell
type PlaceStructureAtInput struct {
	GameID        string
	StructureType string
	Cell          entities.Cell
	Rotation      entities.Rotation
}

// RemoveStructureInput defines the request for removing a structure
type RemoveStructureInput struct {
	GameID      string
	StructureID string
}

// RemoveStructureOutput defines the response for removing a structure
type RemoveStructureOutput struct {
	Structure *entities.Structure
}

// EnqueueInput defines the request for queuing player input on a live game
type EnqueueInput struct {
	GameID  string
	Command simulation.Command
	Done    func(simulation.CommandResult)
}

// EnqueueOutput defines the response for queuing player input
type EnqueueOutput struct {
	Pending int
}

// AdvanceInput defines the request for advancing one game by a frame
type AdvanceInput struct {
	GameID string
	Delta  time.Duration
}

// AdvanceOutput defines the response for advancing one game
type AdvanceOutput struct {
	Frame *simulation.FrameResult
}

// AdvanceAllInput defines the request for advancing every live game
type AdvanceAllInput struct {
	Delta time.Duration
}

// AdvanceAllOutput defines the response for advancing every live game
type AdvanceAllOutput struct {
	Frames map[string]*simulation.FrameResult
}

// ListSkillsInput defines the request for the skill catalog
type ListSkillsInput struct{}

// ListSkillsOutput defines the response for the skill catalog
type ListSkillsOutput struct {
	Skills []*entities.Skill
}
