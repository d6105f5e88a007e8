package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/engine/placement"
	"github.com/KirkDiggler/rpg-village/internal/engine/simulation"
	"github.com/KirkDiggler/rpg-village/internal/engine/skills"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/handlers/ws"
	"github.com/KirkDiggler/rpg-village/internal/orchestrators/game"
	gamemock "github.com/KirkDiggler/rpg-village/internal/orchestrators/game/mock"
	"github.com/KirkDiggler/rpg-village/internal/pkg/idgen"
)

const testGameID = "game-1"

type HandlerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockOrch *gamemock.MockService
	hub      *ws.Hub
	server   *httptest.Server
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockOrch = gamemock.NewMockService(s.ctrl)
	s.hub = ws.NewHub()

	handler, err := ws.NewHandler(&ws.HandlerConfig{
		Orchestrator: s.mockOrch,
		Hub:          s.hub,
		ClientIDs:    idgen.NewSequential("client"),
	})
	s.Require().NoError(err)

	s.server = httptest.NewServer(handler.Routes())
}

func (s *HandlerTestSuite) TearDownTest() {
	s.hub.Close()
	s.server.Close()
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) snapshot() *entities.Snapshot {
	return &entities.Snapshot{
		GridSize:     20,
		ControlledID: "npc-1",
		Entities: []*entities.Entity{
			{ID: "npc-1", Kind: entities.KindNPC, Animation: entities.AnimationIdle},
		},
	}
}

// dial connects to the game and consumes the initial state message
func (s *HandlerTestSuite) dial() *websocket.Conn {
	s.mockOrch.EXPECT().
		GetState(gomock.Any(), &game.GetStateInput{GameID: testGameID}).
		Return(&game.GetStateOutput{Snapshot: s.snapshot()}, nil)

	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws?game=" + testGameID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)

	first := s.read(conn)
	s.Equal(ws.MessageState, first["type"])
	s.Equal(float64(20), first["gridSize"])
	return conn
}

func (s *HandlerTestSuite) read(conn *websocket.Conn) map[string]any {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, data, err := conn.ReadMessage()
	s.Require().NoError(err)

	var msg map[string]any
	s.Require().NoError(json.Unmarshal(data, &msg))
	return msg
}

func (s *HandlerTestSuite) send(conn *websocket.Conn, msg any) {
	s.Require().NoError(conn.WriteJSON(msg))
}

func (s *HandlerTestSuite) TestHealth() {
	resp, err := http.Get(s.server.URL + "/healthz")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *HandlerTestSuite) TestSkills() {
	s.mockOrch.EXPECT().
		ListSkills(gomock.Any(), &game.ListSkillsInput{}).
		Return(&game.ListSkillsOutput{Skills: skills.Default().List()}, nil)

	resp, err := http.Get(s.server.URL + "/skills")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var views []ws.SkillView
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&views))
	s.Len(views, 10)

	byID := make(map[string]ws.SkillView)
	for _, v := range views {
		byID[v.ID] = v
	}
	s.Equal(25, byID[skills.BasicAttack].Damage)
	s.Equal(entities.SkillTypeHeal, byID[skills.Heal].Type)
	s.InDelta(40.0, byID[skills.Heal].Amount, 1e-9)
	s.True(byID[skills.Dash].RequiresTarget)
}

func (s *HandlerTestSuite) TestServeWSRejectsBadRequests() {
	s.Run("missing game", func() {
		resp, err := http.Get(s.server.URL + "/ws")
		s.Require().NoError(err)
		defer resp.Body.Close()
		s.Equal(http.StatusBadRequest, resp.StatusCode)
	})

	s.Run("unknown game", func() {
		s.mockOrch.EXPECT().
			GetState(gomock.Any(), &game.GetStateInput{GameID: "missing"}).
			Return(nil, errors.NotFound("game missing is not loaded"))

		resp, err := http.Get(s.server.URL + "/ws?game=missing")
		s.Require().NoError(err)
		defer resp.Body.Close()
		s.Equal(http.StatusNotFound, resp.StatusCode)
	})
}

// expectCommand answers a queued command as the next frame would
func (s *HandlerTestSuite) expectCommand(want simulation.Command, output any, err error) {
	s.mockOrch.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *game.EnqueueInput) (*game.EnqueueOutput, error) {
			s.Equal(testGameID, in.GameID)
			s.Equal(want, in.Command)
			if s.NotNil(in.Done) {
				in.Done(simulation.CommandResult{Command: want.Name(), Output: output, Err: err})
			}
			return &game.EnqueueOutput{Pending: 1}, nil
		})
}

func (s *HandlerTestSuite) TestActivate() {
	conn := s.dial()
	defer conn.Close()

	s.expectCommand(
		simulation.ActivateCommand{Input: activation.ActivateInput{ActorID: "npc-1", SkillID: skills.BasicAttack}},
		&activation.ActivateOutput{
			SkillID:       skills.BasicAttack,
			Type:          entities.SkillTypeAttack,
			ManaRemaining: 90,
			Cooldown:      1,
		}, nil)

	s.send(conn, map[string]any{"type": "activate", "actorId": "npc-1", "skillId": skills.BasicAttack})

	msg := s.read(conn)
	s.Equal(ws.MessageResult, msg["type"])
	s.Equal("activate", msg["requestType"])
	s.Equal(true, msg["ok"])
	data := msg["data"].(map[string]any)
	s.Equal(skills.BasicAttack, data["skillId"])
	s.Equal(float64(90), data["manaRemaining"])
}

func (s *HandlerTestSuite) TestRejectionCarriesReason() {
	conn := s.dial()
	defer conn.Close()

	s.expectCommand(
		simulation.ActivateCommand{Input: activation.ActivateInput{ActorID: "npc-1", SkillID: skills.Fireball}},
		nil, errors.Rejectedf(errors.ReasonOnCooldown, "skill %s is on cooldown", skills.Fireball))

	s.send(conn, map[string]any{"type": "activate", "actorId": "npc-1", "skillId": skills.Fireball})

	msg := s.read(conn)
	s.Equal(false, msg["ok"])
	s.Equal("OnCooldown", msg["reason"])
	s.Equal(string(errors.CodeFailedPrecondition), msg["code"])
	s.Equal("skill fireball is on cooldown", msg["message"])
	s.Nil(msg["data"])
}

func (s *HandlerTestSuite) TestQueueFailureIsAnsweredAtOnce() {
	conn := s.dial()
	defer conn.Close()

	s.mockOrch.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("game game-1 is not loaded"))

	s.send(conn, map[string]any{"type": "place", "structureType": "house"})

	msg := s.read(conn)
	s.Equal("place", msg["requestType"])
	s.Equal(false, msg["ok"])
	s.Equal(string(errors.CodeNotFound), msg["code"])
}

func (s *HandlerTestSuite) TestMalformedMessageIsSkipped() {
	conn := s.dial()
	defer conn.Close()

	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	s.send(conn, map[string]any{"type": "teleport"})

	s.mockOrch.EXPECT().
		GetState(gomock.Any(), &game.GetStateInput{GameID: testGameID}).
		Return(&game.GetStateOutput{Snapshot: s.snapshot()}, nil)
	s.send(conn, map[string]any{"type": "state"})

	msg := s.read(conn)
	s.Equal(ws.MessageState, msg["type"])
	s.Equal("npc-1", msg["controlledId"])
}

func (s *HandlerTestSuite) TestPlacementMessages() {
	conn := s.dial()
	defer conn.Close()

	ray := placement.Ray{Origin: placement.Vec3{X: 1, Y: 10, Z: 1}, Direction: placement.Vec3{Y: -1}}
	s.expectCommand(simulation.PointerCommand{Ray: ray},
		&placement.Preview{Cell: entities.Cell{X: 1, Z: 1}, Free: true}, nil)
	s.mockOrch.EXPECT().
		RotatePreview(gomock.Any(), &game.RotatePreviewInput{GameID: testGameID}).
		Return(&game.RotatePreviewOutput{Rotation: 90}, nil)
	s.expectCommand(simulation.PlaceCommand{StructureType: "house"},
		&entities.Structure{ID: "structure_1", Type: "house", Cell: entities.Cell{X: 1, Z: 1}, Rotation: 90}, nil)
	s.mockOrch.EXPECT().
		RemoveStructure(gomock.Any(), &game.RemoveStructureInput{GameID: testGameID, StructureID: "structure_1"}).
		Return(nil, errors.NotFound("structure structure_1 not found"))

	s.send(conn, map[string]any{"type": "pointer", "origin": ray.Origin, "direction": ray.Direction})
	msg := s.read(conn)
	s.Equal("pointer", msg["requestType"])
	s.Equal(true, msg["data"].(map[string]any)["free"])

	s.send(conn, map[string]any{"type": "rotate"})
	msg = s.read(conn)
	s.Equal(float64(90), msg["data"].(map[string]any)["rotation"])

	s.send(conn, map[string]any{"type": "place", "structureType": "house"})
	msg = s.read(conn)
	s.Equal(true, msg["ok"])
	s.Equal("structure_1", msg["data"].(map[string]any)["id"])

	s.send(conn, map[string]any{"type": "remove_structure", "structureId": "structure_1"})
	msg = s.read(conn)
	s.Equal(false, msg["ok"])
	s.Equal(string(errors.CodeNotFound), msg["code"])
}

func (s *HandlerTestSuite) TestMoveAndControl() {
	conn := s.dial()
	defer conn.Close()

	s.expectCommand(
		simulation.MoveCommand{Input: simulation.MoveInput{
			EntityID: "npc-1", Position: entities.Position{X: 2, Z: 3}, Rotation: 1.5, Animation: entities.AnimationWalk,
		}},
		&entities.Entity{ID: "npc-1", Position: entities.Position{X: 2, Z: 3}}, nil)
	s.mockOrch.EXPECT().
		SetControlled(gomock.Any(), &game.SetControlledInput{GameID: testGameID, EntityID: "npc-1"}).
		Return(&game.SetControlledOutput{ControlledID: "npc-1"}, nil)

	s.send(conn, map[string]any{"type": "move", "entityId": "npc-1", "x": 2, "z": 3, "rotation": 1.5, "animation": "walk"})
	msg := s.read(conn)
	s.Equal(true, msg["ok"])

	s.send(conn, map[string]any{"type": "control", "entityId": "npc-1"})
	msg = s.read(conn)
	s.Equal("npc-1", msg["data"].(map[string]any)["controlledId"])
}

func (s *HandlerTestSuite) TestSave() {
	conn := s.dial()
	defer conn.Close()

	s.mockOrch.EXPECT().
		SaveGame(gomock.Any(), &game.SaveGameInput{GameID: testGameID}).
		Return(&game.SaveGameOutput{GameState: &entities.GameState{ID: testGameID, Name: "Riverside"}}, nil)

	s.send(conn, map[string]any{"type": "save"})
	msg := s.read(conn)
	s.Equal(true, msg["ok"])
	s.Equal("Riverside", msg["data"].(map[string]any)["name"])
}

func (s *HandlerTestSuite) TestHubFansOutEffectsAndState() {
	conn := s.dial()
	defer conn.Close()
	s.Equal([]string{testGameID}, s.hub.Games())
	s.Equal(1, s.hub.Subscribers(testGameID))

	s.hub.RequestEffect(activation.EffectRequest{
		GameID:   testGameID,
		SkillID:  skills.Fireball,
		ActorID:  "npc-1",
		TargetID: "enemy-1",
		Kind:     activation.EffectHit,
		Amount:   45,
	})
	// other games are not delivered
	s.hub.RequestEffect(activation.EffectRequest{GameID: "game-2", Kind: activation.EffectMiss})

	msg := s.read(conn)
	s.Equal(ws.MessageEffect, msg["type"])
	s.Equal("enemy-1", msg["targetId"])
	s.Equal(string(activation.EffectHit), msg["kind"])

	s.hub.BroadcastState(testGameID, s.snapshot())
	msg = s.read(conn)
	s.Equal(ws.MessageState, msg["type"])
}

// assertCamelKeys fails on any object key holding an underscore. Map-valued
// fields keyed by data, such as cooldowns, are skipped.
func (s *HandlerTestSuite) assertCamelKeys(path string, v any) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			s.NotContains(k, "_", "key %s.%s", path, k)
			if k == "cooldowns" {
				continue
			}
			s.assertCamelKeys(path+"."+k, child)
		}
	case []any:
		for _, child := range val {
			s.assertCamelKeys(path+"[]", child)
		}
	}
}

func (s *HandlerTestSuite) TestWireKeysAreCamelCase() {
	home := &entities.Structure{ID: "structure_1", Type: "house", Cell: entities.Cell{X: 1, Z: 2}, Rotation: 90}
	npc := &entities.Entity{
		ID: "npc-1", Kind: entities.KindNPC, StructureID: home.ID,
		Pool: entities.Pool{Health: 80, MaxHealth: 100, Mana: 35, MaxMana: 100},
	}
	dash, ok := skills.Default().Get(skills.Dash)
	s.Require().True(ok)

	messages := map[string]any{
		"state": &ws.StateMessage{Type: ws.MessageState, Snapshot: &entities.Snapshot{
			GridSize:     20,
			ControlledID: npc.ID,
			Entities:     []*entities.Entity{npc},
			Structures:   []*entities.Structure{home},
			Cooldowns:    map[string]float64{skills.BasicAttack: 0.5},
			Preview:      &entities.Cell{X: 3, Z: 3},
			PreviewRot:   180,
		}},
		"effect": &ws.EffectMessage{Type: ws.MessageEffect, EffectRequest: activation.EffectRequest{
			GameID: testGameID, SkillID: skills.Fireball, ActorID: npc.ID, TargetID: "enemy-1",
			Kind: activation.EffectHit, Amount: 40,
		}},
		"activate result": &ws.ResultMessage{Type: ws.MessageResult, RequestType: ws.MessageActivate, OK: true,
			Data: &activation.ActivateOutput{
				SkillID: skills.Fireball, ManaRemaining: 10, Cooldown: 4,
				Hits: []activation.Hit{{TargetID: "enemy-1", Damage: 40, Health: 10}},
			}},
		"frame": &simulation.FrameResult{Frame: 3, Results: []simulation.CommandResult{{Command: "place", Output: home}}},
		"skill": ws.NewSkillView(dash),
		"game":  &entities.GameState{ID: testGameID, UserID: "user-1", Name: "Riverside"},
	}

	for name, msg := range messages {
		s.Run(name, func() {
			data, err := json.Marshal(msg)
			s.Require().NoError(err)

			var decoded map[string]any
			s.Require().NoError(json.Unmarshal(data, &decoded))
			s.assertCamelKeys(name, decoded)
		})
	}

	s.Run("known keys", func() {
		data, err := json.Marshal(messages["state"])
		s.Require().NoError(err)
		s.Contains(string(data), `"controlledId":"npc-1"`)
		s.Contains(string(data), `"previewRotation":180`)
		s.Contains(string(data), `"maxHealth":100`)
		s.Contains(string(data), `"structureId":"structure_1"`)

		data, err = json.Marshal(messages["skill"])
		s.Require().NoError(err)
		s.Contains(string(data), `"requiresTarget":true`)
	})
}
