package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-village/internal/handlers/ws"
	"github.com/KirkDiggler/rpg-village/internal/orchestrators/game"
	"github.com/KirkDiggler/rpg-village/internal/pkg/clock"
)

// tickLoop advances every live game at a fixed rate using measured wall time
// and pushes snapshots to subscribed clients
type tickLoop struct {
	orchestrator   game.Service
	hub            *ws.Hub
	clock          clock.Clock
	interval       time.Duration
	broadcastEvery uint64

	frames uint64
}

func (l *tickLoop) run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	timer := clock.NewFrameTimer(l.clock)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.step(ctx, timer.Delta())
		}
	}
}

func (l *tickLoop) step(ctx context.Context, delta float64) {
	out, err := l.orchestrator.AdvanceAll(ctx, &game.AdvanceAllInput{
		Delta: time.Duration(delta * float64(time.Second)),
	})
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("Frame advance failed", "error", err)
		}
		return
	}

	for gameID, frame := range out.Frames {
		for _, res := range frame.Results {
			if res.Err != nil {
				slog.Debug("Queued command rejected",
					"game_id", gameID,
					"command", res.Command,
					"error", res.Err)
			}
		}
	}

	l.frames++
	if l.frames%l.broadcastEvery != 0 {
		return
	}

	for _, gameID := range l.hub.Games() {
		state, err := l.orchestrator.GetState(ctx, &game.GetStateInput{GameID: gameID})
		if err != nil {
			// game deleted while clients were still attached
			continue
		}
		l.hub.BroadcastState(gameID, state.Snapshot)
	}
}
