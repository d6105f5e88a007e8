package ws_test

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/handlers/ws"
	"github.com/KirkDiggler/rpg-village/internal/orchestrators/game"
)

func (s *HandlerTestSuite) do(method, path, body string) *http.Response {
	req, err := http.NewRequest(method, s.server.URL+path, strings.NewReader(body))
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *HandlerTestSuite) TestCreateGame() {
	s.mockOrch.EXPECT().
		CreateGame(gomock.Any(), &game.CreateGameInput{UserID: "user-1", Name: "Riverside", GridSize: 12}).
		Return(&game.CreateGameOutput{GameID: "game_1", Snapshot: &entities.Snapshot{GridSize: 12}}, nil)

	resp := s.do(http.MethodPost, "/games", `{"userId":"user-1","name":"Riverside","gridSize":12}`)
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	var out ws.CreateGameResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	s.Equal("game_1", out.GameID)
	s.Equal(12, out.Snapshot.GridSize)
}

func (s *HandlerTestSuite) TestCreateGameErrors() {
	s.Run("malformed body", func() {
		resp := s.do(http.MethodPost, "/games", `{"userId":`)
		defer resp.Body.Close()
		s.Equal(http.StatusBadRequest, resp.StatusCode)
	})

	s.Run("validation failure", func() {
		s.mockOrch.EXPECT().
			CreateGame(gomock.Any(), gomock.Any()).
			Return(nil, errors.InvalidArgument("UserID: is required"))

		resp := s.do(http.MethodPost, "/games", `{}`)
		defer resp.Body.Close()
		s.Equal(http.StatusBadRequest, resp.StatusCode)
	})
}

func (s *HandlerTestSuite) TestListGames() {
	s.mockOrch.EXPECT().
		ListGames(gomock.Any(), &game.ListGamesInput{UserID: "user-1"}).
		Return(&game.ListGamesOutput{}, nil)

	resp := s.do(http.MethodGet, "/games?user=user-1", "")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var out []*entities.GameState
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	s.NotNil(out)
	s.Empty(out)
}

func (s *HandlerTestSuite) TestLoadSaveDelete() {
	s.mockOrch.EXPECT().
		LoadGame(gomock.Any(), &game.LoadGameInput{GameID: "game-9"}).
		Return(&game.LoadGameOutput{
			GameState: &entities.GameState{ID: "game-9"},
			Snapshot:  &entities.Snapshot{GridSize: 20},
		}, nil)
	s.mockOrch.EXPECT().
		SaveGame(gomock.Any(), &game.SaveGameInput{GameID: "game-9"}).
		Return(&game.SaveGameOutput{GameState: &entities.GameState{ID: "game-9"}}, nil)
	s.mockOrch.EXPECT().
		DeleteGame(gomock.Any(), &game.DeleteGameInput{GameID: "game-9"}).
		Return(&game.DeleteGameOutput{}, nil)
	s.mockOrch.EXPECT().
		DeleteGame(gomock.Any(), &game.DeleteGameInput{GameID: "game-9"}).
		Return(nil, errors.NotFound("game game-9 not found"))

	resp := s.do(http.MethodPost, "/games/game-9/load", "")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodPost, "/games/game-9/save", "")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/games/game-9", "")
	resp.Body.Close()
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/games/game-9", "")
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestSpawn() {
	s.mockOrch.EXPECT().
		SpawnEnemy(gomock.Any(), &game.SpawnInput{
			GameID: "game-1", Type: "goblin", Position: entities.Position{X: 3, Z: -2}, MaxHealth: 60,
		}).
		Return(&game.SpawnOutput{Entity: &entities.Entity{ID: "entity_1", Kind: entities.KindEnemy}}, nil)

	resp := s.do(http.MethodPost, "/games/game-1/spawn", `{"kind":"enemy","type":"goblin","x":3,"z":-2,"maxHealth":60}`)
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	var e entities.Entity
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&e))
	s.Equal("entity_1", e.ID)

	bad := s.do(http.MethodPost, "/games/game-1/spawn", `{"kind":"dragon"}`)
	defer bad.Body.Close()
	s.Equal(http.StatusBadRequest, bad.StatusCode)
}
