package gamestate

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/pkg/clock"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS game_states (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	data JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS game_states_user_id_idx ON game_states (user_id, updated_at DESC);

CREATE TABLE IF NOT EXISTS structures (
	id TEXT PRIMARY KEY,
	game_state_id TEXT NOT NULL REFERENCES game_states(id) ON DELETE CASCADE,
	structure_id TEXT NOT NULL,
	type TEXT NOT NULL,
	x INTEGER NOT NULL,
	z INTEGER NOT NULL,
	rotation INTEGER NOT NULL DEFAULT 0,
	UNIQUE (game_state_id, structure_id)
);

CREATE TABLE IF NOT EXISTS npcs (
	id TEXT PRIMARY KEY,
	game_state_id TEXT NOT NULL REFERENCES game_states(id) ON DELETE CASCADE,
	npc_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	structure_id TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT '',
	x DOUBLE PRECISION NOT NULL,
	z DOUBLE PRECISION NOT NULL,
	rotation DOUBLE PRECISION NOT NULL DEFAULT 0,
	animation TEXT NOT NULL DEFAULT 'idle',
	UNIQUE (game_state_id, npc_id)
);
`

// PostgresRepository implements Repository on PostgreSQL
type PostgresRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewPostgresRepository connects to PostgreSQL and creates the schema if needed
func NewPostgresRepository(ctx context.Context, dsn string, c clock.Clock) (*PostgresRepository, error) {
	if dsn == "" {
		return nil, errors.InvalidArgument("postgres DSN is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping database")
	}

	repo := NewPostgresRepositoryFromDB(db, c)
	if err := repo.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to initialize schema")
	}

	return repo, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection pool
func NewPostgresRepositoryFromDB(db *sql.DB, c clock.Clock) *PostgresRepository {
	if c == nil {
		c = clock.New()
	}
	return &PostgresRepository{db: db, clock: c}
}

func (r *PostgresRepository) initSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, postgresSchema)
	return err
}

// Close releases the connection pool
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Save upserts the header and replaces all structure and NPC rows in one transaction
func (r *PostgresRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateWorld(input.World); err != nil {
		return nil, err
	}

	world := input.World.Clone()
	normalize(world)
	gs := world.GameState
	stampTimes(gs, r.clock.Now(), gs.CreatedAt)

	data := []byte(gs.Data)
	if len(data) == 0 {
		data = []byte("{}")
	}
	if !json.Valid(data) {
		return nil, errors.InvalidArgument("game state data must be valid JSON")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
	INSERT INTO game_states (id, user_id, name, data, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id)
	DO UPDATE SET
		user_id = $2, name = $3, data = $4,
		updated_at = $6
	RETURNING created_at`,
		gs.ID, gs.UserID, gs.Name, string(data), gs.CreatedAt, gs.UpdatedAt,
	).Scan(&gs.CreatedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save game state")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM structures WHERE game_state_id = $1`, gs.ID); err != nil {
		return nil, errors.Wrapf(err, "failed to clear structures")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM npcs WHERE game_state_id = $1`, gs.ID); err != nil {
		return nil, errors.Wrapf(err, "failed to clear npcs")
	}

	for _, st := range world.Structures {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO structures (id, game_state_id, structure_id, type, x, z, rotation)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			st.ID, st.GameStateID, st.StructureID, st.Type, st.X, st.Z, st.Rotation)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to save structure %s", st.StructureID)
		}
	}

	for _, npc := range world.NPCs {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO npcs (id, game_state_id, npc_id, name, structure_id, type, x, z, rotation, animation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			npc.ID, npc.GameStateID, npc.NPCID, npc.Name, npc.StructureID, npc.Type,
			npc.X, npc.Z, npc.Rotation, npc.Animation)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to save npc %s", npc.NPCID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrapf(err, "failed to commit game state")
	}
	gs.CreatedAt = gs.CreatedAt.UTC()

	out := *gs
	return &SaveOutput{GameState: &out}, nil
}

// Get loads a game and its rows
func (r *PostgresRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	var (
		gs   entities.GameState
		data string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, data, created_at, updated_at FROM game_states WHERE id = $1`,
		input.ID,
	).Scan(&gs.ID, &gs.UserID, &gs.Name, &data, &gs.CreatedAt, &gs.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("game state %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to load game state")
	}
	gs.Data = json.RawMessage(data)
	gs.CreatedAt, gs.UpdatedAt = gs.CreatedAt.UTC(), gs.UpdatedAt.UTC()

	world := &World{GameState: &gs}

	structures, err := r.loadStructures(ctx, gs.ID)
	if err != nil {
		return nil, err
	}
	world.Structures = structures

	npcs, err := r.loadNPCs(ctx, gs.ID)
	if err != nil {
		return nil, err
	}
	world.NPCs = npcs

	return &GetOutput{World: world}, nil
}

func (r *PostgresRepository) loadStructures(ctx context.Context, gameID string) ([]*entities.StructureRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_state_id, structure_id, type, x, z, rotation
		FROM structures WHERE game_state_id = $1 ORDER BY structure_id`, gameID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load structures")
	}
	defer func() { _ = rows.Close() }()

	var out []*entities.StructureRecord
	for rows.Next() {
		var st entities.StructureRecord
		if err := rows.Scan(&st.ID, &st.GameStateID, &st.StructureID, &st.Type, &st.X, &st.Z, &st.Rotation); err != nil {
			return nil, errors.Wrapf(err, "failed to scan structure")
		}
		out = append(out, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate structures")
	}
	return out, nil
}

func (r *PostgresRepository) loadNPCs(ctx context.Context, gameID string) ([]*entities.NPCRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_state_id, npc_id, name, structure_id, type, x, z, rotation, animation
		FROM npcs WHERE game_state_id = $1 ORDER BY npc_id`, gameID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load npcs")
	}
	defer func() { _ = rows.Close() }()

	var out []*entities.NPCRecord
	for rows.Next() {
		var npc entities.NPCRecord
		if err := rows.Scan(&npc.ID, &npc.GameStateID, &npc.NPCID, &npc.Name, &npc.StructureID, &npc.Type,
			&npc.X, &npc.Z, &npc.Rotation, &npc.Animation); err != nil {
			return nil, errors.Wrapf(err, "failed to scan npc")
		}
		out = append(out, &npc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate npcs")
	}
	return out, nil
}

// Delete removes a game; its rows go with it through ON DELETE CASCADE
func (r *PostgresRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM game_states WHERE id = $1`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete game state")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete game state")
	}
	if n == 0 {
		return nil, errors.NotFoundf("game state %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

// ListByUser returns a user's game headers without their data
func (r *PostgresRepository) ListByUser(ctx context.Context, input *ListByUserInput) (*ListByUserOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, created_at, updated_at
		FROM game_states WHERE user_id = $1 ORDER BY updated_at DESC, id`, input.UserID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list game states")
	}
	defer func() { _ = rows.Close() }()

	var out []*entities.GameState
	for rows.Next() {
		var gs entities.GameState
		if err := rows.Scan(&gs.ID, &gs.UserID, &gs.Name, &gs.CreatedAt, &gs.UpdatedAt); err != nil {
			return nil, errors.Wrapf(err, "failed to scan game state")
		}
		gs.CreatedAt, gs.UpdatedAt = gs.CreatedAt.UTC(), gs.UpdatedAt.UTC()
		out = append(out, &gs)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate game states")
	}

	return &ListByUserOutput{GameStates: out}, nil
}

var _ Repository = (*PostgresRepository)(nil)

// DB exposes the underlying pool for maintenance tasks
func (r *PostgresRepository) DB() *sql.DB {
	return r.db
}
