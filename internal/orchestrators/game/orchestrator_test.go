package game_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/engine/placement"
	"github.com/KirkDiggler/rpg-village/internal/engine/simulation"
	"github.com/KirkDiggler/rpg-village/internal/engine/skills"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/orchestrators/game"
	"github.com/KirkDiggler/rpg-village/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-village/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-village/internal/repositories/gamestate"
	gamestatemock "github.com/KirkDiggler/rpg-village/internal/repositories/gamestate/mock"
	"github.com/KirkDiggler/rpg-village/internal/testutils"
	"github.com/KirkDiggler/rpg-village/internal/testutils/mocks"
)

// midRoller always rolls the middle of the die
type midRoller struct{}

func (midRoller) Roll(size int) (int, error) {
	return (size + 1) / 2, nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *gamestatemock.MockRepository
	effects  []activation.EffectRequest
	orch     game.Service
	ctx      context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) newOrchestrator(repo gamestate.Repository) game.Service {
	orch, err := game.NewOrchestrator(&game.Config{
		Repository: repo,
		Catalog:    skills.Default(),
		Effects: activation.EffectSinkFunc(func(req activation.EffectRequest) {
			s.effects = append(s.effects, req)
		}),
		Roller:      midRoller{},
		IDGenerator: idgen.NewSequential("game"),
		Clock:       clock.NewManual(testutils.FixedTime),
		NewEntityIDs: func(prefix string) idgen.Generator {
			return idgen.NewSequential(prefix)
		},
	})
	s.Require().NoError(err)
	return orch
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = gamestatemock.NewMockRepository(s.ctrl)
	s.effects = nil
	s.ctx = context.Background()
	s.orch = s.newOrchestrator(s.mockRepo)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) createGame() string {
	out, err := s.orch.CreateGame(s.ctx, &game.CreateGameInput{
		UserID: testutils.TestUserID,
		Name:   testutils.TestGameName,
	})
	s.Require().NoError(err)
	return out.GameID
}

func (s *OrchestratorTestSuite) loadTestWorld() string {
	world := testutils.CreateTestWorld("game-saved", testutils.TestUserID)
	mocks.ExpectWorldLoad(s.ctx, s.mockRepo, world)

	_, err := s.orch.LoadGame(s.ctx, &game.LoadGameInput{GameID: "game-saved"})
	s.Require().NoError(err)
	return "game-saved"
}

func (s *OrchestratorTestSuite) entity(gameID, id string) *entities.Entity {
	out, err := s.orch.GetState(s.ctx, &game.GetStateInput{GameID: gameID})
	s.Require().NoError(err)
	for _, e := range out.Snapshot.Entities {
		if e.ID == id {
			return e
		}
	}
	s.FailNow("entity not found", id)
	return nil
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := game.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = game.NewOrchestrator(&game.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Repository")
	s.Contains(err.Error(), "Catalog")
}

func (s *OrchestratorTestSuite) TestCreateGame() {
	out, err := s.orch.CreateGame(s.ctx, &game.CreateGameInput{UserID: testutils.TestUserID})
	s.Require().NoError(err)
	s.Equal("game_1", out.GameID)
	s.Equal(20, out.Snapshot.GridSize)
	s.Empty(out.Snapshot.Entities)
	s.Empty(out.Snapshot.Structures)

	out, err = s.orch.CreateGame(s.ctx, &game.CreateGameInput{UserID: testutils.TestUserID, GridSize: 8})
	s.Require().NoError(err)
	s.Equal(8, out.Snapshot.GridSize)
}

func (s *OrchestratorTestSuite) TestCreateGameRequiresUser() {
	_, err := s.orch.CreateGame(s.ctx, &game.CreateGameInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUnknownGame() {
	_, err := s.orch.GetState(s.ctx, &game.GetStateInput{GameID: "missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.orch.ActivateSkill(s.ctx, &game.ActivateSkillInput{GameID: "missing", ActorID: "a", SkillID: skills.Heal})
	s.True(errors.IsNotFound(err))

	_, err = s.orch.GetState(s.ctx, &game.GetStateInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestLoadGame() {
	gameID := s.loadTestWorld()

	out, err := s.orch.GetState(s.ctx, &game.GetStateInput{GameID: gameID})
	s.Require().NoError(err)

	snap := out.Snapshot
	s.Equal("npc-1", snap.ControlledID)
	s.Require().Len(snap.Structures, 1)
	s.Equal(entities.Cell{X: 3, Z: 4}, snap.Structures[0].Cell)
	s.Equal(entities.Rotation(90), snap.Structures[0].Rotation)
	s.Len(snap.Entities, 2)
	s.InDelta(2.5, snap.Cooldowns[skills.Fireball], 1e-9)

	npc := s.entity(gameID, "npc-1")
	s.Equal(entities.KindNPC, npc.Kind)
	s.InDelta(35.0, npc.Pool.Mana, 1e-9)
	s.InDelta(80.0, npc.Pool.Health, 1e-9)
}

func (s *OrchestratorTestSuite) TestLoadGameNotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, &gamestate.GetInput{ID: "missing"}).
		Return(nil, errors.NotFound("game not found"))

	_, err := s.orch.LoadGame(s.ctx, &game.LoadGameInput{GameID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestSaveGameSplitsRowsAndData() {
	gameID := s.loadTestWorld()

	var saved *gamestate.World
	mocks.ExpectWorldSave(s.ctx, s.mockRepo, func(w *gamestate.World) { saved = w })

	_, err := s.orch.SaveGame(s.ctx, &game.SaveGameInput{GameID: gameID})
	s.Require().NoError(err)
	s.Require().NotNil(saved)

	s.Equal(gameID, saved.GameState.ID)
	s.Equal(testutils.TestUserID, saved.GameState.UserID)
	s.Require().Len(saved.Structures, 1)
	s.Equal(90, saved.Structures[0].Rotation)
	s.Require().Len(saved.NPCs, 1)
	s.Equal("Ada", saved.NPCs[0].Name)
	s.Equal("structure-1", saved.NPCs[0].StructureID)

	var data entities.WorldData
	s.Require().NoError(json.Unmarshal(saved.GameState.Data, &data))
	s.Equal(20, data.GridSize)
	s.Equal("npc-1", data.ControlledID)
	s.InDelta(35.0, data.Pools["npc-1"].Mana, 1e-9)
	s.Require().Len(data.Enemies, 1)
	s.Equal("enemy-1", data.Enemies[0].ID)
	s.InDelta(2.5, data.Cooldowns[skills.Fireball], 1e-9)
}

func (s *OrchestratorTestSuite) TestSaveGameRepositoryFailure() {
	gameID := s.createGame()
	s.mockRepo.EXPECT().
		Save(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	_, err := s.orch.SaveGame(s.ctx, &game.SaveGameInput{GameID: gameID})
	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))

	// the live world is untouched
	_, err = s.orch.GetState(s.ctx, &game.GetStateInput{GameID: gameID})
	s.NoError(err)
}

func (s *OrchestratorTestSuite) TestDeleteGame() {
	gameID := s.createGame()
	s.mockRepo.EXPECT().
		Delete(s.ctx, &gamestate.DeleteInput{ID: gameID}).
		Return(nil, errors.NotFound("game not found"))

	_, err := s.orch.DeleteGame(s.ctx, &game.DeleteGameInput{GameID: gameID})
	s.Require().NoError(err)

	_, err = s.orch.GetState(s.ctx, &game.GetStateInput{GameID: gameID})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestDeleteGameMissingEverywhere() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, &gamestate.DeleteInput{ID: "nope"}).
		Return(nil, errors.NotFound("game not found"))

	_, err := s.orch.DeleteGame(s.ctx, &game.DeleteGameInput{GameID: "nope"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListGames() {
	headers := []*entities.GameState{
		{ID: "game-2", UserID: testutils.TestUserID, Name: "Hilltop"},
		{ID: "game-1", UserID: testutils.TestUserID, Name: testutils.TestGameName},
	}
	mocks.ExpectGameList(s.ctx, s.mockRepo, testutils.TestUserID, headers...)

	out, err := s.orch.ListGames(s.ctx, &game.ListGamesInput{UserID: testutils.TestUserID})
	s.Require().NoError(err)
	s.Equal(headers, out.GameStates)

	_, err = s.orch.ListGames(s.ctx, &game.ListGamesInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestActivateSkill() {
	gameID := s.loadTestWorld()

	s.Run("rejects a skill on cooldown", func() {
		_, err := s.orch.ActivateSkill(s.ctx, &game.ActivateSkillInput{
			GameID: gameID, ActorID: "npc-1", SkillID: skills.Fireball,
		})
		s.True(errors.IsRejected(err, errors.ReasonOnCooldown))
	})

	s.Run("rejects an unknown skill", func() {
		_, err := s.orch.ActivateSkill(s.ctx, &game.ActivateSkillInput{
			GameID: gameID, ActorID: "npc-1", SkillID: "teleport",
		})
		s.True(errors.IsRejected(err, errors.ReasonUnknownSkill))
	})

	s.Run("spends mana when nothing is in range", func() {
		out, err := s.orch.ActivateSkill(s.ctx, &game.ActivateSkillInput{
			GameID: gameID, ActorID: "npc-1", SkillID: skills.BasicAttack,
		})
		s.Require().NoError(err)
		s.Empty(out.Result.Hits)
		s.InDelta(25.0, out.Result.ManaRemaining, 1e-9)
	})

	s.Run("heals the actor", func() {
		out, err := s.orch.ActivateSkill(s.ctx, &game.ActivateSkillInput{
			GameID: gameID, ActorID: "npc-1", SkillID: skills.Heal,
		})
		s.Require().NoError(err)
		s.InDelta(20.0, out.Result.Healed, 1e-9)
		s.InDelta(100.0, s.entity(gameID, "npc-1").Pool.Health, 1e-9)
	})
}

func (s *OrchestratorTestSuite) TestActivateSkillHitsEnemy() {
	gameID := s.createGame()

	_, err := s.orch.SpawnNPC(s.ctx, &game.SpawnInput{GameID: gameID, Name: "Ada", Type: "villager"})
	s.Require().NoError(err)
	enemy, err := s.orch.SpawnEnemy(s.ctx, &game.SpawnInput{
		GameID: gameID, Type: "goblin", Position: entities.Position{X: 1}, MaxHealth: 100,
	})
	s.Require().NoError(err)

	state, err := s.orch.GetState(s.ctx, &game.GetStateInput{GameID: gameID})
	s.Require().NoError(err)
	actorID := state.Snapshot.ControlledID
	s.Require().NotEmpty(actorID)

	out, err := s.orch.ActivateSkill(s.ctx, &game.ActivateSkillInput{
		GameID: gameID, ActorID: actorID, SkillID: skills.BasicAttack,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Result.Hits, 1)
	s.Equal(enemy.Entity.ID, out.Result.Hits[0].TargetID)
	s.InDelta(75.0, s.entity(gameID, enemy.Entity.ID).Pool.Health, 1e-9)

	s.Require().NotEmpty(s.effects)
	s.Equal(gameID, s.effects[0].GameID)
	s.Equal(activation.EffectHit, s.effects[0].Kind)
}

func (s *OrchestratorTestSuite) TestEntityOperations() {
	gameID := s.createGame()

	npc, err := s.orch.SpawnNPC(s.ctx, &game.SpawnInput{GameID: gameID, Name: "Bo", Type: "farmer"})
	s.Require().NoError(err)

	moved, err := s.orch.MoveEntity(s.ctx, &game.MoveEntityInput{
		GameID:    gameID,
		EntityID:  npc.Entity.ID,
		Position:  entities.Position{X: 2, Z: -3},
		Rotation:  1.5,
		Animation: entities.AnimationWalk,
	})
	s.Require().NoError(err)
	s.Equal(entities.Position{X: 2, Z: -3}, moved.Entity.Position)
	s.Equal(entities.AnimationWalk, moved.Entity.Animation)

	released, err := s.orch.SetControlled(s.ctx, &game.SetControlledInput{GameID: gameID})
	s.Require().NoError(err)
	s.Empty(released.ControlledID)

	taken, err := s.orch.SetControlled(s.ctx, &game.SetControlledInput{GameID: gameID, EntityID: npc.Entity.ID})
	s.Require().NoError(err)
	s.Equal(npc.Entity.ID, taken.ControlledID)

	_, err = s.orch.RemoveEntity(s.ctx, &game.RemoveEntityInput{GameID: gameID, EntityID: npc.Entity.ID})
	s.Require().NoError(err)

	_, err = s.orch.RemoveEntity(s.ctx, &game.RemoveEntityInput{GameID: gameID, EntityID: npc.Entity.ID})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestPlacement() {
	gameID := s.createGame()

	_, err := s.orch.PlaceStructure(s.ctx, &game.PlaceStructureInput{GameID: gameID, StructureType: "house"})
	s.True(errors.IsRejected(err, errors.ReasonNoPreview))

	pointer, err := s.orch.PointerMove(s.ctx, &game.PointerMoveInput{
		GameID: gameID,
		Ray: placement.Ray{
			Origin:    placement.Vec3{X: 2.2, Y: 10, Z: 3.3},
			Direction: placement.Vec3{Y: -1},
		},
	})
	s.Require().NoError(err)
	s.Require().NotNil(pointer.Preview)
	s.Equal(entities.Cell{X: 2, Z: 3}, pointer.Preview.Cell)
	s.True(pointer.Preview.Free)

	rot, err := s.orch.RotatePreview(s.ctx, &game.RotatePreviewInput{GameID: gameID})
	s.Require().NoError(err)
	s.Equal(entities.Rotation(90), rot.Rotation)

	placed, err := s.orch.PlaceStructure(s.ctx, &game.PlaceStructureInput{GameID: gameID, StructureType: "house"})
	s.Require().NoError(err)
	s.Equal(entities.Cell{X: 2, Z: 3}, placed.Structure.Cell)
	s.Equal(entities.Rotation(90), placed.Structure.Rotation)

	_, err = s.orch.PlaceStructureAt(s.ctx, &game.PlaceStructureAtInput{
		GameID: gameID, StructureType: "well", Cell: entities.Cell{X: 2, Z: 3},
	})
	s.True(errors.IsRejected(err, errors.ReasonCellOccupied))

	_, err = s.orch.PlaceStructureAt(s.ctx, &game.PlaceStructureAtInput{
		GameID: gameID, StructureType: "well", Cell: entities.Cell{X: 10, Z: 0},
	})
	s.True(errors.IsRejected(err, errors.ReasonOutOfBounds))

	removed, err := s.orch.RemoveStructure(s.ctx, &game.RemoveStructureInput{GameID: gameID, StructureID: placed.Structure.ID})
	s.Require().NoError(err)
	s.Equal(placed.Structure.ID, removed.Structure.ID)

	_, err = s.orch.PlaceStructureAt(s.ctx, &game.PlaceStructureAtInput{
		GameID: gameID, StructureType: "well", Cell: entities.Cell{X: 2, Z: 3},
	})
	s.NoError(err)
}

func (s *OrchestratorTestSuite) TestAdvanceRegeneratesMana() {
	gameID := s.loadTestWorld()

	out, err := s.orch.Advance(s.ctx, &game.AdvanceInput{GameID: gameID, Delta: 500 * time.Millisecond})
	s.Require().NoError(err)
	s.Equal(uint64(1), out.Frame.Frame)

	s.InDelta(40.0, s.entity(gameID, "npc-1").Pool.Mana, 1e-9)

	state, err := s.orch.GetState(s.ctx, &game.GetStateInput{GameID: gameID})
	s.Require().NoError(err)
	s.InDelta(2.0, state.Snapshot.Cooldowns[skills.Fireball], 1e-9)
}

func (s *OrchestratorTestSuite) TestAdvanceAll() {
	first := s.createGame()
	second := s.createGame()

	out, err := s.orch.AdvanceAll(s.ctx, &game.AdvanceAllInput{Delta: 16 * time.Millisecond})
	s.Require().NoError(err)
	s.Len(out.Frames, 2)
	s.Contains(out.Frames, first)
	s.Contains(out.Frames, second)

	canceled, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err = s.orch.AdvanceAll(canceled, &game.AdvanceAllInput{Delta: time.Millisecond})
	s.Equal(errors.CodeCanceled, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestEnqueueAppliesAfterCooldownsTick() {
	gameID := s.loadTestWorld()

	_, err := s.orch.Advance(s.ctx, &game.AdvanceInput{GameID: gameID, Delta: 2 * time.Second})
	s.Require().NoError(err)

	_, err = s.orch.ActivateSkill(s.ctx, &game.ActivateSkillInput{
		GameID: gameID, ActorID: "npc-1", SkillID: skills.Fireball,
	})
	s.Require().True(errors.IsRejected(err, errors.ReasonOnCooldown))

	var got []simulation.CommandResult
	out, err := s.orch.Enqueue(s.ctx, &game.EnqueueInput{
		GameID: gameID,
		Command: simulation.ActivateCommand{Input: activation.ActivateInput{
			ActorID: "npc-1", SkillID: skills.Fireball,
		}},
		Done: func(res simulation.CommandResult) { got = append(got, res) },
	})
	s.Require().NoError(err)
	s.Equal(1, out.Pending)
	s.Empty(got)

	all, err := s.orch.AdvanceAll(s.ctx, &game.AdvanceAllInput{Delta: 500 * time.Millisecond})
	s.Require().NoError(err)

	s.Require().Len(got, 1)
	s.Equal("activate", got[0].Command)
	s.NoError(got[0].Err)
	s.IsType(&activation.ActivateOutput{}, got[0].Output)
	s.Require().Len(all.Frames[gameID].Results, 1)

	s.Run("the queue is empty after the frame", func() {
		out, err := s.orch.Enqueue(s.ctx, &game.EnqueueInput{
			GameID:  gameID,
			Command: simulation.PlaceCommand{StructureType: "house"},
		})
		s.Require().NoError(err)
		s.Equal(1, out.Pending)
	})
}

func (s *OrchestratorTestSuite) TestLogsWorldChanges() {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	gameID := s.createGame()
	out, err := s.orch.PlaceStructureAt(s.ctx, &game.PlaceStructureAtInput{
		GameID: gameID, StructureType: "house", Cell: entities.Cell{X: 1, Z: 1},
	})
	s.Require().NoError(err)

	logs := buf.String()
	s.Contains(logs, `"msg":"World changed"`)
	s.Contains(logs, `"event":"spatial.entity.placed"`)
	s.Contains(logs, `"entity_id":"`+out.Structure.ID+`"`)
	s.Contains(logs, `"entity_type":"house"`)
}

func (s *OrchestratorTestSuite) TestEnqueueValidation() {
	gameID := s.createGame()

	_, err := s.orch.Enqueue(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.Enqueue(s.ctx, &game.EnqueueInput{GameID: gameID})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.Enqueue(s.ctx, &game.EnqueueInput{
		GameID:  "missing",
		Command: simulation.PlaceCommand{StructureType: "house"},
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListSkills() {
	out, err := s.orch.ListSkills(s.ctx, &game.ListSkillsInput{})
	s.Require().NoError(err)
	s.Len(out.Skills, 10)
}

func (s *OrchestratorTestSuite) TestSaveAndReloadThroughRepository() {
	orch := s.newOrchestrator(gamestate.NewInMemory(clock.NewManual(testutils.FixedTime)))

	created, err := orch.CreateGame(s.ctx, &game.CreateGameInput{UserID: testutils.TestUserID, Name: "Round Trip"})
	s.Require().NoError(err)
	gameID := created.GameID

	npc, err := orch.SpawnNPC(s.ctx, &game.SpawnInput{GameID: gameID, Name: "Ada", Type: "villager"})
	s.Require().NoError(err)
	_, err = orch.SpawnEnemy(s.ctx, &game.SpawnInput{GameID: gameID, Type: "goblin", Position: entities.Position{X: 5, Z: 5}})
	s.Require().NoError(err)
	_, err = orch.PlaceStructureAt(s.ctx, &game.PlaceStructureAtInput{
		GameID: gameID, StructureType: "house", Cell: entities.Cell{X: -3, Z: 2}, Rotation: 180,
	})
	s.Require().NoError(err)
	_, err = orch.ActivateSkill(s.ctx, &game.ActivateSkillInput{GameID: gameID, ActorID: npc.Entity.ID, SkillID: skills.Shield})
	s.Require().NoError(err)

	before, err := orch.GetState(s.ctx, &game.GetStateInput{GameID: gameID})
	s.Require().NoError(err)

	saved, err := orch.SaveGame(s.ctx, &game.SaveGameInput{GameID: gameID})
	s.Require().NoError(err)
	s.Equal(testutils.FixedTime, saved.GameState.CreatedAt)

	// mutate the live copy, then reload the saved one over it
	_, err = orch.RemoveEntity(s.ctx, &game.RemoveEntityInput{GameID: gameID, EntityID: npc.Entity.ID})
	s.Require().NoError(err)

	loaded, err := orch.LoadGame(s.ctx, &game.LoadGameInput{GameID: gameID})
	s.Require().NoError(err)
	s.Equal("Round Trip", loaded.GameState.Name)

	after := loaded.Snapshot
	s.Equal(before.Snapshot.ControlledID, after.ControlledID)
	s.ElementsMatch(before.Snapshot.Structures, after.Structures)
	s.ElementsMatch(before.Snapshot.Entities, after.Entities)
	s.Equal(before.Snapshot.Cooldowns, after.Cooldowns)

	list, err := orch.ListGames(s.ctx, &game.ListGamesInput{UserID: testutils.TestUserID})
	s.Require().NoError(err)
	s.Require().Len(list.GameStates, 1)
	s.Equal(gameID, list.GameStates[0].ID)
}
