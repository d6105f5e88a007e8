package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the game's current snapshot",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		s, _, err := dial()
		if err != nil {
			return err
		}
		defer s.close()

		reply, err := s.request(map[string]any{"type": "state"}, "state")
		if err != nil {
			return err
		}
		printJSON(reply)
		return nil
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate [skill-id] [target-x target-z]",
	Short: "Activate a skill as the controlled entity",
	Long: `Activate a skill as the controlled entity. Examples:

  activate basic_attack
  activate dash 3 -2`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 3 {
			return fmt.Errorf("expected a skill id and an optional target x z, got %d args", len(args))
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		msg := map[string]any{"type": "activate", "skillId": args[0]}
		if len(args) == 3 {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid target x: %w", err)
			}
			z, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid target z: %w", err)
			}
			msg["target"] = map[string]float64{"x": x, "z": z}
		}

		s, state, err := dial()
		if err != nil {
			return err
		}
		defer s.close()

		actor, _ := state["controlledId"].(string)
		if actor == "" {
			return fmt.Errorf("game %s has no controlled entity", gameID)
		}
		msg["actorId"] = actor

		reply, err := s.request(msg, "result")
		if err != nil {
			return err
		}
		return printResult(reply)
	},
}

func parseCell(args []string) (float64, float64, error) {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x: %w", err)
	}
	z, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid z: %w", err)
	}
	return x, z, nil
}

// pointerAt builds a pointer message for a ray straight down onto (x, z)
func pointerAt(x, z float64) map[string]any {
	return map[string]any{
		"type":      "pointer",
		"origin":    map[string]float64{"x": x, "y": 10, "z": z},
		"direction": map[string]float64{"x": 0, "y": -1, "z": 0},
	}
}

var pointerCmd = &cobra.Command{
	Use:   "pointer [x] [z]",
	Short: "Move the placement pointer over a ground point",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		x, z, err := parseCell(args)
		if err != nil {
			return err
		}

		s, _, err := dial()
		if err != nil {
			return err
		}
		defer s.close()

		reply, err := s.request(pointerAt(x, z), "result")
		if err != nil {
			return err
		}
		return printResult(reply)
	},
}

var placeRotations int

var placeCmd = &cobra.Command{
	Use:   "place [structure-type] [x] [z]",
	Short: "Place a structure by pointing at a cell and committing the preview",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		x, z, err := parseCell(args[1:])
		if err != nil {
			return err
		}

		s, _, err := dial()
		if err != nil {
			return err
		}
		defer s.close()

		if _, err := s.request(pointerAt(x, z), "result"); err != nil {
			return err
		}
		for i := 0; i < placeRotations; i++ {
			if _, err := s.request(map[string]any{"type": "rotate"}, "result"); err != nil {
				return err
			}
		}

		reply, err := s.request(map[string]any{"type": "place", "structureType": args[0]}, "result")
		if err != nil {
			return err
		}
		return printResult(reply)
	},
}

func init() {
	placeCmd.Flags().IntVar(&placeRotations, "rotate", 0, "quarter turns to apply before placing")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the gRPC health service",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		conn, err := grpc.NewClient(grpcAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return fmt.Errorf("failed to connect to server: %w", err)
		}
		defer func() {
			_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
		}()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Println(resp.GetStatus().String())
		return nil
	},
}
