// Package game implements the game orchestrator. It owns every live world,
// serializes access to each one, and moves worlds in and out of storage.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/rpg-village/internal/orchestrators/game Service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/engine/occupancy"
	"github.com/KirkDiggler/rpg-village/internal/engine/simulation"
	"github.com/KirkDiggler/rpg-village/internal/engine/skills"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-village/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-village/internal/repositories/gamestate"
)

// Service defines the interface for game operations
type Service interface {
	// Lifecycle and persistence
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)
	LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error)
	SaveGame(ctx context.Context, input *SaveGameInput) (*SaveGameOutput, error)
	DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error)
	ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error)
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)

	// Entities
	SpawnNPC(ctx context.Context, input *SpawnInput) (*SpawnOutput, error)
	SpawnEnemy(ctx context.Context, input *SpawnInput) (*SpawnOutput, error)
	RemoveEntity(ctx context.Context, input *RemoveEntityInput) (*RemoveEntityOutput, error)
	SetControlled(ctx context.Context, input *SetControlledInput) (*SetControlledOutput, error)
	MoveEntity(ctx context.Context, input *MoveEntityInput) (*MoveEntityOutput, error)

	// Combat
	ActivateSkill(ctx context.Context, input *ActivateSkillInput) (*ActivateSkillOutput, error)
	ListSkills(ctx context.Context, input *ListSkillsInput) (*ListSkillsOutput, error)

	// Placement
	PointerMove(ctx context.Context, input *PointerMoveInput) (*PointerMoveOutput, error)
	RotatePreview(ctx context.Context, input *RotatePreviewInput) (*RotatePreviewOutput, error)
	PlaceStructure(ctx context.Context, input *PlaceStructureInput) (*PlaceStructureOutput, error)
	PlaceStructureAt(ctx context.Context, input *PlaceStructureAtInput) (*PlaceStructureOutput, error)
	RemoveStructure(ctx context.Context, input *RemoveStructureInput) (*RemoveStructureOutput, error)

	// Simulation
	Enqueue(ctx context.Context, input *EnqueueInput) (*EnqueueOutput, error)
	Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error)
	AdvanceAll(ctx context.Context, input *AdvanceAllInput) (*AdvanceAllOutput, error)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	Repository  gamestate.Repository
	Catalog     *skills.Catalog
	Effects     activation.EffectSink
	Roller      activation.Roller
	IDGenerator idgen.Generator // game ids
	Clock       clock.Clock
	GridSize    int

	// NewEntityIDs builds the per-game generator for entity and structure
	// ids. Defaults to UUIDs so reloaded worlds never collide.
	NewEntityIDs func(prefix string) idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Effects == nil {
		vb.RequiredField("Effects")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.GridSize < 0 {
		vb.Fieldf("GridSize", "must not be negative, got %d", c.GridSize)
	}

	return vb.Build()
}

// liveGame is one world plus the lock that serializes it
type liveGame struct {
	mu     sync.Mutex
	header entities.GameState
	sim    *simulation.Simulation
}

type orchestrator struct {
	repo         gamestate.Repository
	catalog      *skills.Catalog
	effects      activation.EffectSink
	roller       activation.Roller
	idGen        idgen.Generator
	clock        clock.Clock
	gridSize     int
	newEntityIDs func(prefix string) idgen.Generator

	mu    sync.RWMutex
	games map[string]*liveGame
}

// NewOrchestrator creates a new game orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		repo:         cfg.Repository,
		catalog:      cfg.Catalog,
		effects:      cfg.Effects,
		roller:       cfg.Roller,
		idGen:        cfg.IDGenerator,
		clock:        cfg.Clock,
		gridSize:     cfg.GridSize,
		newEntityIDs: cfg.NewEntityIDs,
		games:        make(map[string]*liveGame),
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.gridSize == 0 {
		o.gridSize = occupancy.DefaultGridSize
	}
	if o.newEntityIDs == nil {
		o.newEntityIDs = func(prefix string) idgen.Generator { return idgen.NewUUID(prefix) }
	}

	return o, nil
}

func (o *orchestrator) newSimulation(gameID string, gridSize int) (*simulation.Simulation, error) {
	return simulation.New(&simulation.Config{
		GameID:       gameID,
		GridSize:     gridSize,
		Catalog:      o.catalog,
		Effects:      o.effects,
		Roller:       o.roller,
		StructureIDs: o.newEntityIDs("structure"),
		EntityIDs:    o.newEntityIDs("entity"),
		EventBus:     newWorldBus(gameID),
	})
}

// game looks up a live world
func (o *orchestrator) game(gameID string) (*liveGame, error) {
	if gameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	g, ok := o.games[gameID]
	if !ok {
		return nil, errors.NotFoundf("game %s is not loaded", gameID)
	}
	return g, nil
}

// withGame runs fn while holding the world's lock
func (o *orchestrator) withGame(gameID string, fn func(g *liveGame) error) error {
	g, err := o.game(gameID)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g)
}

// CreateGame starts a new, empty world. It is not persisted until SaveGame.
func (o *orchestrator) CreateGame(_ context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("UserID", input.UserID, vb)
	if input.GridSize < 0 {
		vb.Fieldf("GridSize", "must not be negative, got %d", input.GridSize)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	gridSize := input.GridSize
	if gridSize == 0 {
		gridSize = o.gridSize
	}

	gameID := o.idGen.Generate()
	sim, err := o.newSimulation(gameID, gridSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create simulation")
	}

	now := o.clock.Now().UTC()
	g := &liveGame{
		header: entities.GameState{
			ID:        gameID,
			UserID:    input.UserID,
			Name:      input.Name,
			CreatedAt: now,
			UpdatedAt: now,
		},
		sim: sim,
	}

	o.mu.Lock()
	o.games[gameID] = g
	o.mu.Unlock()

	slog.Info("Game created",
		"game_id", gameID,
		"user_id", input.UserID,
		"grid_size", gridSize)

	return &CreateGameOutput{GameID: gameID, Snapshot: sim.Snapshot()}, nil
}

// LoadGame reads a saved world and makes it live, replacing any live copy
func (o *orchestrator) LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	got, err := o.repo.Get(ctx, &gamestate.GetInput{ID: input.GameID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load game %s", input.GameID)
	}

	state, data, err := fromWorld(got.World)
	if err != nil {
		return nil, err
	}

	gridSize := data.GridSize
	if gridSize <= 0 {
		gridSize = o.gridSize
	}
	sim, err := o.newSimulation(input.GameID, gridSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create simulation")
	}
	if err := sim.Rehydrate(state); err != nil {
		return nil, errors.Wrapf(err, "failed to rehydrate game %s", input.GameID)
	}

	header := *got.World.GameState
	header.Data = nil
	g := &liveGame{header: header, sim: sim}

	o.mu.Lock()
	o.games[input.GameID] = g
	o.mu.Unlock()

	slog.Info("Game loaded",
		"game_id", input.GameID,
		"user_id", header.UserID,
		"structures", len(state.Structures),
		"entities", len(state.Entities))

	out := header
	return &LoadGameOutput{GameState: &out, Snapshot: sim.Snapshot()}, nil
}

// SaveGame persists a live world. The snapshot is taken under the game lock;
// the write happens after it is released.
func (o *orchestrator) SaveGame(ctx context.Context, input *SaveGameInput) (*SaveGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var world *gamestate.World
	err := o.withGame(input.GameID, func(g *liveGame) error {
		var err error
		world, err = toWorld(g.header, g.sim.GridSize(), g.sim.State())
		return err
	})
	if err != nil {
		return nil, err
	}

	saved, err := o.repo.Save(ctx, &gamestate.SaveInput{World: world})
	if err != nil {
		slog.Warn("Failed to save game",
			"game_id", input.GameID,
			"error", err)
		return nil, errors.Wrapf(err, "failed to save game %s", input.GameID)
	}

	_ = o.withGame(input.GameID, func(g *liveGame) error {
		g.header.CreatedAt = saved.GameState.CreatedAt
		g.header.UpdatedAt = saved.GameState.UpdatedAt
		return nil
	})

	slog.Info("Game saved",
		"game_id", input.GameID,
		"structures", len(world.Structures),
		"npcs", len(world.NPCs))

	return &SaveGameOutput{GameState: saved.GameState}, nil
}

// DeleteGame drops the live world and the saved copy. Missing from both is NotFound.
func (o *orchestrator) DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	o.mu.Lock()
	_, wasLive := o.games[input.GameID]
	delete(o.games, input.GameID)
	o.mu.Unlock()

	_, err := o.repo.Delete(ctx, &gamestate.DeleteInput{ID: input.GameID})
	if err != nil && !(errors.IsNotFound(err) && wasLive) {
		return nil, errors.Wrapf(err, "failed to delete game %s", input.GameID)
	}

	slog.Info("Game deleted", "game_id", input.GameID)

	return &DeleteGameOutput{}, nil
}

// ListGames returns a user's saved games
func (o *orchestrator) ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	out, err := o.repo.ListByUser(ctx, &gamestate.ListByUserInput{UserID: input.UserID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list games for %s", input.UserID)
	}

	return &ListGamesOutput{GameStates: out.GameStates}, nil
}

// GetState returns a snapshot of a live world
func (o *orchestrator) GetState(_ context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var snap *entities.Snapshot
	err := o.withGame(input.GameID, func(g *liveGame) error {
		snap = g.sim.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &GetStateOutput{Snapshot: snap}, nil
}

// ListSkills returns the skill catalog
func (o *orchestrator) ListSkills(_ context.Context, _ *ListSkillsInput) (*ListSkillsOutput, error) {
	return &ListSkillsOutput{Skills: o.catalog.List()}, nil
}

// Enqueue queues player input for the world's next frame. done, when set, is
// called with the result from inside that frame while the game lock is held.
func (o *orchestrator) Enqueue(_ context.Context, input *EnqueueInput) (*EnqueueOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Command == nil {
		return nil, errors.InvalidArgument("command is required")
	}

	out := &EnqueueOutput{}
	err := o.withGame(input.GameID, func(g *liveGame) error {
		g.sim.Enqueue(input.Command, input.Done)
		out.Pending = g.sim.Pending()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Advance runs one frame of a single world
func (o *orchestrator) Advance(_ context.Context, input *AdvanceInput) (*AdvanceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var frame *simulation.FrameResult
	err := o.withGame(input.GameID, func(g *liveGame) error {
		frame = g.sim.Advance(input.Delta.Seconds())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AdvanceOutput{Frame: frame}, nil
}

// AdvanceAll runs one frame of every live world. Worlds are visited in id
// order and each holds only its own lock.
func (o *orchestrator) AdvanceAll(ctx context.Context, input *AdvanceAllInput) (*AdvanceAllOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	ids := make([]string, 0, len(o.games))
	for id := range o.games {
		ids = append(ids, id)
	}
	o.mu.RUnlock()
	sort.Strings(ids)

	frames := make(map[string]*simulation.FrameResult, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "advance canceled")
		}
		out, err := o.Advance(ctx, &AdvanceInput{GameID: id, Delta: input.Delta})
		if err != nil {
			// Deleted between listing and advancing
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		frames[id] = out.Frame
	}

	return &AdvanceAllOutput{Frames: frames}, nil
}
