package gamestate

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*World
}

// NewInMemory creates a new in-memory repository
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*World),
	}
}

// Save stores a game, keeping the original creation time on overwrite
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateWorld(input.World); err != nil {
		return nil, err
	}

	world := input.World.Clone()
	normalize(world)

	r.mu.Lock()
	defer r.mu.Unlock()

	stampTimes(world.GameState, r.clock.Now(), r.existingCreatedAt(world.GameState.ID))
	r.store[world.GameState.ID] = world

	gs := *world.GameState
	return &SaveOutput{GameState: &gs}, nil
}

func (r *InMemoryRepository) existingCreatedAt(id string) time.Time {
	if cur, ok := r.store[id]; ok {
		return cur.GameState.CreatedAt
	}
	return time.Time{}
}

// Get retrieves a game by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("game state ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	world, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("game state %s not found", input.ID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{World: world.Clone()}, nil
}

// Delete removes a game
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("game state ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("game state %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

// ListByUser returns a user's games, most recently updated first
func (r *InMemoryRepository) ListByUser(_ context.Context, input *ListByUserInput) (*ListByUserOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.GameState
	for _, world := range r.store {
		if world.GameState.UserID != input.UserID {
			continue
		}
		gs := *world.GameState
		gs.Data = nil
		out = append(out, &gs)
	}
	sortByUpdated(out)

	return &ListByUserOutput{GameStates: out}, nil
}

func stampTimes(gs *entities.GameState, now, createdAt time.Time) {
	now = now.UTC()
	if !createdAt.IsZero() {
		gs.CreatedAt = createdAt
	} else if gs.CreatedAt.IsZero() {
		gs.CreatedAt = now
	}
	gs.UpdatedAt = now
}

func sortByUpdated(list []*entities.GameState) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].UpdatedAt.Equal(list[j].UpdatedAt) {
			return list[i].UpdatedAt.After(list[j].UpdatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

var _ Repository = (*InMemoryRepository)(nil)
