package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/orchestrators/game"
)

// CreateGameRequest is the body of POST /games
type CreateGameRequest struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	GridSize int    `json:"gridSize,omitempty"`
}

// CreateGameResponse is the body returned by POST /games
type CreateGameResponse struct {
	GameID   string             `json:"gameId"`
	Snapshot *entities.Snapshot `json:"snapshot"`
}

// SpawnRequest is the body of POST /games/{id}/spawn
type SpawnRequest struct {
	Kind        entities.Kind `json:"kind"`
	Name        string        `json:"name,omitempty"`
	Type        string        `json:"type,omitempty"`
	StructureID string        `json:"structureId,omitempty"`
	X           float64       `json:"x"`
	Z           float64       `json:"z"`
	MaxHealth   float64       `json:"maxHealth,omitempty"`
	MaxMana     float64       `json:"maxMana,omitempty"`
}

func (h *Handler) registerGameRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /games", h.createGame)
	mux.HandleFunc("GET /games", h.listGames)
	mux.HandleFunc("DELETE /games/{id}", h.deleteGame)
	mux.HandleFunc("POST /games/{id}/load", h.loadGame)
	mux.HandleFunc("POST /games/{id}/save", h.saveGame)
	mux.HandleFunc("POST /games/{id}/spawn", h.spawn)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.InvalidArgumentf("malformed request body: %v", err)
	}
	return nil
}

func (h *Handler) createGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeHTTPError(w, err)
		return
	}

	out, err := h.orchestrator.CreateGame(r.Context(), &game.CreateGameInput{
		UserID:   req.UserID,
		Name:     req.Name,
		GridSize: req.GridSize,
	})
	if err != nil {
		writeHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, &CreateGameResponse{GameID: out.GameID, Snapshot: out.Snapshot})
}

func (h *Handler) listGames(w http.ResponseWriter, r *http.Request) {
	out, err := h.orchestrator.ListGames(r.Context(), &game.ListGamesInput{UserID: r.URL.Query().Get("user")})
	if err != nil {
		writeHTTPError(w, err)
		return
	}

	games := out.GameStates
	if games == nil {
		games = []*entities.GameState{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *Handler) deleteGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	if _, err := h.orchestrator.DeleteGame(r.Context(), &game.DeleteGameInput{GameID: gameID}); err != nil {
		writeHTTPError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	out, err := h.orchestrator.LoadGame(r.Context(), &game.LoadGameInput{GameID: gameID})
	if err != nil {
		writeHTTPError(w, err)
		return
	}

	// subscribers of a reloaded game see the saved world at once
	h.hub.BroadcastState(gameID, out.Snapshot)
	writeJSON(w, http.StatusOK, out.Snapshot)
}

func (h *Handler) saveGame(w http.ResponseWriter, r *http.Request) {
	out, err := h.orchestrator.SaveGame(r.Context(), &game.SaveGameInput{GameID: r.PathValue("id")})
	if err != nil {
		writeHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.GameState)
}

func (h *Handler) spawn(w http.ResponseWriter, r *http.Request) {
	var req SpawnRequest
	if err := decodeBody(r, &req); err != nil {
		writeHTTPError(w, err)
		return
	}

	input := &game.SpawnInput{
		GameID:      r.PathValue("id"),
		Name:        req.Name,
		Type:        req.Type,
		StructureID: req.StructureID,
		Position:    entities.Position{X: req.X, Z: req.Z},
		MaxHealth:   req.MaxHealth,
		MaxMana:     req.MaxMana,
	}

	var (
		out *game.SpawnOutput
		err error
	)
	switch req.Kind {
	case entities.KindNPC:
		out, err = h.orchestrator.SpawnNPC(r.Context(), input)
	case entities.KindEnemy:
		out, err = h.orchestrator.SpawnEnemy(r.Context(), input)
	default:
		err = errors.InvalidArgumentf("kind must be %q or %q, got %q", entities.KindNPC, entities.KindEnemy, req.Kind)
	}
	if err != nil {
		writeHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, out.Entity)
}
