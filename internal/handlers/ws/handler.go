package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/engine/placement"
	"github.com/KirkDiggler/rpg-village/internal/engine/simulation"
	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
	"github.com/KirkDiggler/rpg-village/internal/orchestrators/game"
	"github.com/KirkDiggler/rpg-village/internal/pkg/idgen"
)

// maxMessageSize bounds a single client frame
const maxMessageSize = 64 * 1024

// HandlerConfig holds the dependencies for the websocket handler
type HandlerConfig struct {
	Orchestrator game.Service
	Hub          *Hub
	ClientIDs    idgen.Generator
	SendBuffer   int

	// CheckOrigin overrides the upgrader origin check. nil accepts any origin.
	CheckOrigin func(r *http.Request) bool
}

// Validate ensures all required dependencies are provided
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Orchestrator == nil {
		vb.RequiredField("Orchestrator")
	}
	if c.Hub == nil {
		vb.RequiredField("Hub")
	}
	if c.SendBuffer < 0 {
		vb.Fieldf("SendBuffer", "must not be negative, got %d", c.SendBuffer)
	}

	return vb.Build()
}

// Handler serves the websocket endpoint plus the small HTTP surface around it
type Handler struct {
	orchestrator game.Service
	hub          *Hub
	clientIDs    idgen.Generator
	sendBuffer   int
	upgrader     websocket.Upgrader
}

// NewHandler creates a websocket handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	h := &Handler{
		orchestrator: cfg.Orchestrator,
		hub:          cfg.Hub,
		clientIDs:    cfg.ClientIDs,
		sendBuffer:   cfg.SendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}
	if h.clientIDs == nil {
		h.clientIDs = idgen.NewUUID("client")
	}
	if h.sendBuffer == 0 {
		h.sendBuffer = DefaultSendBuffer
	}
	if h.upgrader.CheckOrigin == nil {
		h.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}

	return h, nil
}

// Routes returns the HTTP mux: /ws, /healthz, /skills and the /games endpoints
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", h.ServeWS)
	mux.HandleFunc("GET /healthz", h.serveHealth)
	mux.HandleFunc("GET /skills", h.serveSkills)
	h.registerGameRoutes(mux)
	return mux
}

func (h *Handler) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) serveSkills(w http.ResponseWriter, r *http.Request) {
	out, err := h.orchestrator.ListSkills(r.Context(), &game.ListSkillsInput{})
	if err != nil {
		writeHTTPError(w, err)
		return
	}

	views := make([]SkillView, 0, len(out.Skills))
	for _, skill := range out.Skills {
		views = append(views, NewSkillView(skill))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		slog.Warn("Failed to write skills", "error", err)
	}
}

func writeHTTPError(w http.ResponseWriter, err error) {
	http.Error(w, errors.GetMessage(err), errors.GetCode(err).HTTPStatus())
}

// ServeWS upgrades GET /ws?game=<id> and runs the session until the client
// disconnects
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		writeHTTPError(w, errors.InvalidArgument("game query parameter is required"))
		return
	}

	state, err := h.orchestrator.GetState(r.Context(), &game.GetStateInput{GameID: gameID})
	if err != nil {
		writeHTTPError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		slog.Warn("Websocket upgrade failed",
			"game_id", gameID,
			"error", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := newClient(h.clientIDs.Generate(), gameID, conn, h.sendBuffer)
	h.hub.subscribe(c)
	go c.writePump()

	slog.Info("Client connected",
		"client_id", c.id,
		"game_id", gameID,
		"remote_addr", r.RemoteAddr)

	defer func() {
		h.hub.unsubscribe(c)
		c.close()
		slog.Info("Client disconnected",
			"client_id", c.id,
			"game_id", gameID)
	}()

	h.sendState(c, state.Snapshot)
	h.readLoop(r.Context(), c)
}

func (h *Handler) readLoop(ctx context.Context, c *client) {
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("Websocket read failed",
					"client_id", c.id,
					"error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			slog.Warn("Discarding malformed message",
				"client_id", c.id,
				"game_id", c.gameID,
				"error", err)
			continue
		}

		h.handle(ctx, c, &msg)
	}
}

func (h *Handler) sendState(c *client, snap *entities.Snapshot) {
	data, err := encode(&StateMessage{Type: MessageState, Snapshot: snap})
	if err != nil {
		slog.Warn("Failed to encode state", "game_id", c.gameID, "error", err)
		return
	}
	c.enqueue(data)
}

func (h *Handler) reply(c *client, requestType string, data any, err error) {
	out, encErr := encode(newResult(requestType, data, err))
	if encErr != nil {
		slog.Warn("Failed to encode result",
			"client_id", c.id,
			"request_type", requestType,
			"error", encErr)
		return
	}
	c.enqueue(out)
}

// enqueue queues a command for the game's next frame. The client is answered
// once the frame applies it.
func (h *Handler) enqueue(ctx context.Context, c *client, requestType string, cmd simulation.Command) {
	_, err := h.orchestrator.Enqueue(ctx, &game.EnqueueInput{
		GameID:  c.gameID,
		Command: cmd,
		Done: func(res simulation.CommandResult) {
			h.reply(c, requestType, res.Output, res.Err)
		},
	})
	if err != nil {
		h.reply(c, requestType, nil, err)
	}
}

// handle runs one client request against the client's game. Input that
// changes the world is queued for the next frame; everything else runs now.
func (h *Handler) handle(ctx context.Context, c *client, msg *ClientMessage) {
	gameID := c.gameID

	switch msg.Type {
	case MessageActivate:
		h.enqueue(ctx, c, msg.Type, simulation.ActivateCommand{Input: activation.ActivateInput{
			ActorID: msg.ActorID,
			SkillID: msg.SkillID,
			Target:  msg.Target,
		}})

	case MessagePointer:
		h.enqueue(ctx, c, msg.Type, simulation.PointerCommand{
			Ray: placement.Ray{Origin: msg.Origin, Direction: msg.Direction},
		})

	case MessageRotate:
		out, err := h.orchestrator.RotatePreview(ctx, &game.RotatePreviewInput{GameID: gameID})
		if err != nil {
			h.reply(c, msg.Type, nil, err)
			return
		}
		h.reply(c, msg.Type, map[string]entities.Rotation{"rotation": out.Rotation}, nil)

	case MessagePlace:
		h.enqueue(ctx, c, msg.Type, simulation.PlaceCommand{StructureType: msg.StructureType})

	case MessageRemoveStructure:
		out, err := h.orchestrator.RemoveStructure(ctx, &game.RemoveStructureInput{
			GameID:      gameID,
			StructureID: msg.StructureID,
		})
		if err != nil {
			h.reply(c, msg.Type, nil, err)
			return
		}
		h.reply(c, msg.Type, out.Structure, nil)

	case MessageMove:
		h.enqueue(ctx, c, msg.Type, simulation.MoveCommand{Input: simulation.MoveInput{
			EntityID:  msg.EntityID,
			Position:  entities.Position{X: msg.X, Z: msg.Z},
			Rotation:  msg.Rotation,
			Animation: msg.Animation,
		}})

	case MessageControl:
		out, err := h.orchestrator.SetControlled(ctx, &game.SetControlledInput{
			GameID:   gameID,
			EntityID: msg.EntityID,
		})
		if err != nil {
			h.reply(c, msg.Type, nil, err)
			return
		}
		h.reply(c, msg.Type, map[string]string{"controlledId": out.ControlledID}, nil)

	case MessageState:
		out, err := h.orchestrator.GetState(ctx, &game.GetStateInput{GameID: gameID})
		if err != nil {
			h.reply(c, msg.Type, nil, err)
			return
		}
		h.sendState(c, out.Snapshot)

	case MessageSave:
		out, err := h.orchestrator.SaveGame(ctx, &game.SaveGameInput{GameID: gameID})
		if err != nil {
			h.reply(c, msg.Type, nil, err)
			return
		}
		h.reply(c, msg.Type, out.GameState, nil)

	default:
		slog.Warn("Discarding unknown message type",
			"client_id", c.id,
			"game_id", gameID,
			"type", msg.Type)
	}
}
