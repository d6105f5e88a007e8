package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/KirkDiggler/rpg-toolkit/tools/spatial"
)

// worldEvents are the spatial changes logged for every live world
var worldEvents = []string{
	spatial.EventEntityPlaced,
	spatial.EventEntityMoved,
	spatial.EventEntityRemoved,
}

// newWorldBus creates the event bus for one world and logs its spatial changes
func newWorldBus(gameID string) events.EventBus {
	bus := events.NewBus()
	for _, eventType := range worldEvents {
		bus.SubscribeFunc(eventType, 0, func(_ context.Context, e events.Event) error {
			logWorldEvent(gameID, e)
			return nil
		})
	}
	return bus
}

func logWorldEvent(gameID string, e events.Event) {
	attrs := []any{
		"game_id", gameID,
		"event", e.Type(),
	}
	if src := e.Source(); src != nil {
		attrs = append(attrs, describe(src)...)
	}
	if pos, ok := e.Context().Get("new_position"); ok {
		attrs = append(attrs, "position", pos)
	} else if pos, ok := e.Context().Get("position"); ok {
		attrs = append(attrs, "position", pos)
	}
	slog.Debug("World changed", attrs...)
}

func describe(ent core.Entity) []any {
	return []any{"entity_id", ent.GetID(), "entity_type", ent.GetType()}
}
