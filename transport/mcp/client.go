package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gridduel/gridduel/game/coordinator"
	"github.com/gridduel/gridduel/game/engine"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Gridduel Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Gridduel - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Gridduel is a real-time two-player turn-based grid duel: players connect over
WebSocket, are paired from a single waiting slot, and alternate placing their
symbol until one side lines up three in a row or the board fills.

AVAILABLE TOOLS:
- get_roster: List the display names of all connected players
- list_sessions: List live sessions with their boards and turn holders
- get_session: Get one session snapshot by ID
- server_instructions: Describe the server and its wire protocol

These tools are read-only. Gameplay happens exclusively over the WebSocket
protocol; the MCP surface observes matches without interfering with them.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_roster",
		Description: "List the display names of all currently connected players",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGetRoster)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all live game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_instructions",
		Description: "Get a description of the server and its WebSocket wire protocol",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleGetRoster(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Players []string `json:"players"`
	}

	err := c.apiCall("GET", "/api/roster", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(response.Players) == 0 {
		return mcp.NewToolResultText("No players connected"), nil
	}

	result := fmt.Sprintf("Connected players (%d):\n", len(response.Players))
	for _, name := range response.Players {
		result += fmt.Sprintf("- %s\n", name)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                       `json:"count"`
		Sessions []coordinator.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No live sessions"), nil
	}

	result := fmt.Sprintf("Live Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "finished"
		if s.Active {
			status = fmt.Sprintf("active, %s to move", s.CurrentPlayer)
		}
		result += fmt.Sprintf("- %s: %s vs %s (%s)\n", s.ID, s.Players[0], s.Players[1], status)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session coordinator.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleServerInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Gridduel Server

A real-time two-player turn-based grid duel coordinator.

MATCHMAKING:
Players connect over WebSocket at /ws and send a join message. The first
joiner waits in a single-slot pool; the second is paired against them. The
longer-waiting player holds the "first" symbol and always opens, including
after every restart.

WIRE PROTOCOL (client to server):
- {"type": "join", "name": "Alice"}
- {"type": "move", "index": 4}       // 0-8, row-major 3x3 board
- {"type": "restart"}

WIRE PROTOCOL (server to client):
- {"type": "player_joined", "players": [...]}
- {"type": "game_start", "symbol": "first"|"second", "opponent": ..., "currentPlayer": ...}
- {"type": "game_update", "gameState": [...], "currentPlayer": ...}
- {"type": "game_over", "gameState": [...], "result": "win"|"draw", "winner": name|null}
- {"type": "player_left", "player": ..., "players": [...]}

Invalid requests (a move out of turn, on an occupied cell, or without a
session) are silently ignored: no error message is ever sent back.

INSPECTION:
The REST API exposes /api/roster and /api/sessions for read-only snapshots;
the MCP tools proxy those endpoints.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *coordinator.SessionInfo) string {
	status := "finished"
	if session.Active {
		status = fmt.Sprintf("active, %s to move", session.CurrentPlayer)
	}

	return fmt.Sprintf("Session: %s\nPlayers: %s (first) vs %s (second)\nStatus: %s\n\n%s",
		session.ID, session.Players[0], session.Players[1],
		status,
		formatBoard(session.Board))
}

// formatBoard renders the board as a 3x3 character grid: F for first,
// S for second, . for empty.
func formatBoard(board []engine.Symbol) string {
	var b strings.Builder
	for i, cell := range board {
		switch cell {
		case engine.SymbolFirst:
			b.WriteString("F")
		case engine.SymbolSecond:
			b.WriteString("S")
		default:
			b.WriteString(".")
		}
		if (i+1)%engine.BoardDim == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
