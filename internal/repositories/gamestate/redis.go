package gamestate

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-village/internal/redis"
)

const (
	gameStateKeyPrefix = "gamestate:"
	userIndexKeyPrefix = "gamestate:user:"

	errIDEmpty     = "game state ID cannot be empty"
	errUserIDEmpty = "user ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis-backed game state repository
func NewRedisRepository(client redisclient.Client, c clock.Clock) Repository {
	if c == nil {
		c = clock.New()
	}
	return &redisRepository{
		client: client,
		clock:  c,
	}
}

func gameStateKey(id string) string {
	return gameStateKeyPrefix + id
}

func userIndexKey(userID string) string {
	return userIndexKeyPrefix + userID
}

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateWorld(input.World); err != nil {
		return nil, err
	}

	world := input.World.Clone()
	normalize(world)

	existing, err := r.load(ctx, world.GameState.ID)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	var createdAt time.Time
	if existing != nil {
		createdAt = existing.GameState.CreatedAt
	}
	stampTimes(world.GameState, r.clock.Now(), createdAt)

	data, err := json.Marshal(world)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal game state")
	}

	pipe := r.client.TxPipeline()

	// A game moved to another user leaves the old user's index
	if existing != nil && existing.GameState.UserID != world.GameState.UserID {
		pipe.SRem(ctx, userIndexKey(existing.GameState.UserID), world.GameState.ID)
	}
	pipe.Set(ctx, gameStateKey(world.GameState.ID), data, 0)
	pipe.SAdd(ctx, userIndexKey(world.GameState.UserID), world.GameState.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save game state")
	}

	gs := *world.GameState
	return &SaveOutput{GameState: &gs}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*World, error) {
	result, err := r.client.Get(ctx, gameStateKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("game state %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get game state")
	}

	var world World
	if err := json.Unmarshal([]byte(result), &world); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal game state")
	}
	if world.GameState == nil {
		return nil, errors.Internal("stored game state has no header")
	}
	return &world, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	world, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{World: world}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	// Get the game to find its user index
	world, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, gameStateKey(input.ID))
	pipe.SRem(ctx, userIndexKey(world.GameState.UserID), input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete game state")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByUser(ctx context.Context, input *ListByUserInput) (*ListByUserOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	indexKey := userIndexKey(input.UserID)
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list game states")
	}
	if len(ids) == 0 {
		return &ListByUserOutput{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameStateKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load game states")
	}

	var (
		out   []*entities.GameState
		stale []any
	)
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var world World
		if err := json.Unmarshal([]byte(raw), &world); err != nil || world.GameState == nil {
			return nil, errors.Internalf("game state %s is corrupted", ids[i])
		}
		gs := *world.GameState
		gs.Data = nil
		out = append(out, &gs)
	}

	// Clean up index entries whose game is gone
	if len(stale) > 0 {
		r.client.SRem(ctx, indexKey, stale...)
	}

	sortByUpdated(out)
	return &ListByUserOutput{GameStates: out}, nil
}
