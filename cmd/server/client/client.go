// Package client provides test commands that talk to a running village server
package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var (
	// Connection flags
	serverAddr string
	grpcAddr   string
	gameID     string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the village server",
	Long:  `Client commands let you poke a running server over its WebSocket and gRPC health endpoints.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:8080", "HTTP/WebSocket server address")
	ClientCmd.PersistentFlags().StringVar(&grpcAddr, "grpc", "localhost:50051", "gRPC health server address")
	ClientCmd.PersistentFlags().StringVar(&gameID, "game", "", "live game id")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	ClientCmd.AddCommand(stateCmd)
	ClientCmd.AddCommand(activateCmd)
	ClientCmd.AddCommand(pointerCmd)
	ClientCmd.AddCommand(placeCmd)
	ClientCmd.AddCommand(healthCmd)
}

// session is one websocket connection to a game
type session struct {
	conn *websocket.Conn
}

// dial connects to the game and returns the initial state message
func dial() (*session, map[string]any, error) {
	if gameID == "" {
		return nil, nil, fmt.Errorf("--game is required")
	}

	u := url.URL{Scheme: "ws", Host: serverAddr, Path: "/ws", RawQuery: url.Values{"game": {gameID}}.Encode()}
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, resp, err := dialer.Dial(u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, nil, fmt.Errorf("failed to connect to %s: %s", u.String(), resp.Status)
		}
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", u.String(), err)
	}

	s := &session{conn: conn}
	state, err := s.next()
	if err != nil {
		s.close()
		return nil, nil, err
	}
	return s, state, nil
}

func (s *session) close() {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteMessage(websocket.CloseMessage, msg) // nolint:errcheck // best effort on exit
	_ = s.conn.Close()
}

func (s *session) next() (map[string]any, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}
	return msg, nil
}

// request sends a message and waits for the matching reply. Effects and
// broadcasts that arrive first are printed and skipped.
func (s *session) request(msg map[string]any, wantType string) (map[string]any, error) {
	if err := s.conn.WriteJSON(msg); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", msg["type"], err)
	}

	for {
		reply, err := s.next()
		if err != nil {
			return nil, err
		}
		switch {
		case wantType == "state" && reply["type"] == "state":
			return reply, nil
		case reply["type"] == "result" && reply["requestType"] == msg["type"]:
			return reply, nil
		case reply["type"] == "effect":
			fmt.Printf("effect: %s %s -> %v\n", reply["kind"], reply["skillId"], reply["targetId"])
		}
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(data))
}

// printResult prints a result message and turns a rejection into an error
func printResult(reply map[string]any) error {
	if ok, _ := reply["ok"].(bool); !ok {
		return fmt.Errorf("%s rejected: %v (%v)", reply["requestType"], reply["message"], reply["reason"])
	}
	printJSON(reply["data"])
	return nil
}
