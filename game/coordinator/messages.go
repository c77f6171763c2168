package coordinator

import "github.com/gridduel/gridduel/game/engine"

// Client to server message types.
const (
	TypeJoin    = "join"
	TypeMove    = "move"
	TypeRestart = "restart"
)

// Server to client message types.
const (
	TypePlayerJoined = "player_joined"
	TypeGameStart    = "game_start"
	TypeGameUpdate   = "game_update"
	TypeGameOver     = "game_over"
	TypePlayerLeft   = "player_left"
)

// Result values carried by GameOver.
const (
	ResultWin  = "win"
	ResultDraw = "draw"
)

// Inbound is the decoded client envelope. Index is a pointer so a move
// message that omits it can be told apart from a move on cell 0.
type Inbound struct {
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// PlayerJoined is the roster broadcast, sent to every registered connection
// on each registration and disconnect.
type PlayerJoined struct {
	Type    string   `json:"type"`
	Players []string `json:"players"`
}

// GameStart is sent individually to each matched connection; each side sees
// its own symbol. It is also re-sent on restart.
type GameStart struct {
	Type          string        `json:"type"`
	Symbol        engine.Symbol `json:"symbol"`
	Opponent      string        `json:"opponent"`
	CurrentPlayer string        `json:"currentPlayer"`
}

// GameUpdate is sent to both session members after a non-terminal accepted
// move.
type GameUpdate struct {
	Type          string          `json:"type"`
	GameState     []engine.Symbol `json:"gameState"`
	CurrentPlayer string          `json:"currentPlayer"`
}

// GameOver is sent to both session members on a terminal outcome. Winner is
// null for draws.
type GameOver struct {
	Type      string          `json:"type"`
	GameState []engine.Symbol `json:"gameState"`
	Result    string          `json:"result"`
	Winner    *string         `json:"winner"`
}

// PlayerLeft is sent to the remaining member when the opponent disconnects
// mid-session. Players is the roster after the departure.
type PlayerLeft struct {
	Type    string   `json:"type"`
	Player  string   `json:"player"`
	Players []string `json:"players"`
}
