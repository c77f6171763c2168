// Command bot is a headless WebSocket client for exercising the server.
// It connects, joins under a given name, and plays random legal moves until
// the requested number of games has finished or the opponent leaves.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v3"
)

type inboundMessage struct {
	Type          string   `json:"type"`
	Players       []string `json:"players,omitempty"`
	Symbol        string   `json:"symbol,omitempty"`
	Opponent      string   `json:"opponent,omitempty"`
	CurrentPlayer string   `json:"currentPlayer,omitempty"`
	GameState     []string `json:"gameState,omitempty"`
	Result        string   `json:"result,omitempty"`
	Winner        *string  `json:"winner,omitempty"`
	Player        string   `json:"player,omitempty"`
}

func main() {
	cmd := &cli.Command{
		Name:  "bot",
		Usage: "headless gridduel player that makes random legal moves",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server",
				Value: "ws://localhost:8080/ws",
				Usage: "WebSocket URL of the gridduel server",
			},
			&cli.StringFlag{
				Name:  "name",
				Value: "bot",
				Usage: "display name to join under",
			},
			&cli.IntFlag{
				Name:  "games",
				Value: 1,
				Usage: "number of games to play before exiting",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Value: 200 * time.Millisecond,
				Usage: "pause before each move",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every board update",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	serverURL := cmd.String("server")
	name := cmd.String("name")
	games := int(cmd.Int("games"))
	delay := cmd.Duration("delay")
	verbose := cmd.Bool("verbose")

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, serverURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", serverURL, err)
	}
	defer conn.Close()

	join := map[string]interface{}{"type": "join", "name": name}
	if err := conn.WriteJSON(join); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	log.Printf("Joined as %q, waiting for an opponent...", name)

	board := make([]string, 9)
	played := 0

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		switch msg.Type {
		case "player_joined":
			if verbose {
				log.Printf("Roster: %v", msg.Players)
			}

		case "game_start":
			// Fresh game, empty board.
			board = make([]string, 9)
			log.Printf("Game %d started vs %q (playing as %q)", played+1, msg.Opponent, msg.Symbol)
			if msg.CurrentPlayer == name {
				if err := makeMove(conn, board, delay); err != nil {
					return err
				}
			}

		case "game_update":
			board = msg.GameState
			if verbose {
				log.Printf("Board: %v, %s to move", board, msg.CurrentPlayer)
			}
			if msg.CurrentPlayer == name {
				if err := makeMove(conn, board, delay); err != nil {
					return err
				}
			}

		case "game_over":
			played++
			switch {
			case msg.Result == "draw":
				log.Printf("Game %d over: draw", played)
			case msg.Winner != nil && *msg.Winner == name:
				log.Printf("Game %d over: won", played)
			default:
				log.Printf("Game %d over: lost", played)
			}

			if played >= games {
				log.Printf("Played %d game(s), done", played)
				return nil
			}

			time.Sleep(delay)
			if err := conn.WriteJSON(map[string]interface{}{"type": "restart"}); err != nil {
				return fmt.Errorf("send restart: %w", err)
			}

		case "player_left":
			log.Printf("Opponent %q left after %d game(s)", msg.Player, played)
			return nil
		}
	}
}

// makeMove picks a random empty cell and sends it.
func makeMove(conn *websocket.Conn, board []string, delay time.Duration) error {
	var empty []int
	for i, cell := range board {
		if cell == "" {
			empty = append(empty, i)
		}
	}
	if len(empty) == 0 {
		return nil
	}

	time.Sleep(delay)

	index := empty[rand.Intn(len(empty))]
	move := map[string]interface{}{"type": "move", "index": index}
	if err := conn.WriteJSON(move); err != nil {
		return fmt.Errorf("send move: %w", err)
	}
	return nil
}
