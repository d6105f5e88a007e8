package entities

import (
	"encoding/json"
	"time"
)

// GameState is the persisted header of a saved game
type GameState struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// StructureRecord is the persisted row for a placed structure
type StructureRecord struct {
	ID          string `json:"id"`
	GameStateID string `json:"gameStateId"`
	StructureID string `json:"structureId"`
	Type        string `json:"type"`
	X           int    `json:"x"`
	Z           int    `json:"z"`
	Rotation    int    `json:"rotation"`
}

// NPCRecord is the persisted row for an NPC
type NPCRecord struct {
	ID          string  `json:"id"`
	GameStateID string  `json:"gameStateId"`
	NPCID       string  `json:"npcId"`
	Name        string  `json:"name"`
	StructureID string  `json:"structureId,omitempty"`
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Z           float64 `json:"z"`
	Rotation    float64 `json:"rotation"`
	Animation   string  `json:"animation"`
}

// WorldData is the part of a world snapshot not covered by the structure and
// NPC rows. It is stored in GameState.Data.
type WorldData struct {
	GridSize     int                `json:"gridSize"`
	ControlledID string             `json:"controlledId,omitempty"`
	Pools        map[string]Pool    `json:"pools,omitempty"`
	Enemies      []*Entity          `json:"enemies,omitempty"`
	Cooldowns    map[string]float64 `json:"cooldowns,omitempty"`
}

// Snapshot is a full, detached copy of a game world
type Snapshot struct {
	GridSize     int                `json:"gridSize"`
	ControlledID string             `json:"controlledId,omitempty"`
	Entities     []*Entity          `json:"entities"`
	Structures   []*Structure       `json:"structures"`
	Cooldowns    map[string]float64 `json:"cooldowns"`
	Preview      *Cell              `json:"preview,omitempty"`
	PreviewRot   Rotation           `json:"previewRotation"`
	Frame        uint64             `json:"frame"`
}
