package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/repositories/gamestate"
)

const (
	gameStatePattern = "gamestate:*"
	userIndexPrefix  = "gamestate:user:"
)

// problem describes why a stored game state is unusable
type problem struct {
	key    string
	userID string
	reason string
}

// check decodes a stored world the way the Redis repository does and reports
// anything that would make a load fail or rehydrate badly
func check(key, raw string) *problem {
	var world gamestate.World
	if err := json.Unmarshal([]byte(raw), &world); err != nil {
		return &problem{key: key, reason: "corrupted JSON"}
	}
	if world.GameState == nil {
		return &problem{key: key, reason: "missing gameState header"}
	}

	p := &problem{key: key, userID: world.GameState.UserID}
	switch {
	case world.GameState.ID == "" || key != "gamestate:"+world.GameState.ID:
		p.reason = fmt.Sprintf("header id %q does not match key", world.GameState.ID)
		return p
	case world.GameState.UserID == "":
		p.reason = "missing userId"
		return p
	}

	if len(world.GameState.Data) > 0 {
		var data entities.WorldData
		if err := json.Unmarshal(world.GameState.Data, &data); err != nil {
			p.reason = "data blob is not world data"
			return p
		}
		if data.GridSize < 0 {
			p.reason = fmt.Sprintf("negative gridSize %d", data.GridSize)
			return p
		}
	}

	for _, s := range world.Structures {
		if s == nil || !entities.Rotation(s.Rotation).Valid() {
			p.reason = "structure row with invalid rotation"
			return p
		}
	}

	return nil
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for corrupted game states...")

	iter := client.Scan(ctx, 0, gameStatePattern, 0).Iterator()

	var problems []*problem
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		// user index sets share the prefix
		if strings.HasPrefix(key, userIndexPrefix) {
			continue
		}
		checkedCount++

		raw, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		if p := check(key, raw); p != nil {
			fmt.Printf("✗ %s: %s\n", key, p.reason)
			problems = append(problems, p)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d game states, found %d corrupted entries\n", checkedCount, len(problems))

	if len(problems) == 0 {
		fmt.Println("No corrupted data found!")
		return
	}

	fmt.Print("\nDo you want to DELETE these corrupted entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, p := range problems {
		pipe := client.TxPipeline()
		pipe.Del(ctx, p.key)
		if p.userID != "" {
			pipe.SRem(ctx, userIndexPrefix+p.userID, strings.TrimPrefix(p.key, "gamestate:"))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", p.key, err)
			continue
		}
		fmt.Printf("Deleted %s\n", p.key)
	}
	fmt.Println("\nCleanup complete!")
}
