// Package mcp provides a Model Context Protocol surface for gridduel.
//
// The mcp package implements:
//   - MCP server for AI agent and tooling integration
//   - Read-only inspection tools over the live coordinator state
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools:
//   - get_roster: Display names of all connected players
//   - list_sessions: List live sessions with boards and turn holders
//   - get_session: Get one session snapshot by identifier
//   - server_instructions: Describe the server and its wire protocol
//
// The tools are deliberately read-only: gameplay flows exclusively through
// the WebSocket session, so an MCP client can observe matches but cannot
// inject moves on a player's behalf.
//
// Architecture:
//
// Client is a thin proxy: every tool call is translated into a request
// against the REST API, so the MCP surface never holds state of its own and
// works identically against a local or a remote server.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: the /mcp endpoint mounted by the main server
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
