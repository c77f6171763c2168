// Package api provides the HTTP surface for gridduel.
//
// The api package implements:
//   - The /ws WebSocket upgrade endpoint (all gameplay happens there)
//   - Read-only inspection endpoints for operators and the MCP client
//   - Health checking
//   - Static file serving
//
// Endpoints:
//
// Gameplay:
//   - GET /ws - Upgrade to WebSocket and enter matchmaking
//
// Inspection:
//   - GET /api/roster - Display names of all connected players
//   - GET /api/sessions - List live session snapshots
//   - GET /api/sessions/{id} - Get one session snapshot
//
// Health:
//   - GET /healthz - Liveness probe
//
// Request/Response Format:
//
// All inspection endpoints return JSON. Errors are returned as JSON with
// appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Gameplay is intentionally not exposed over REST: moves must flow through
// the WebSocket session so the coordinator sees one ordered stream of events
// per connection.
//
// Usage:
//
//	server := api.NewServer(coord, hub)
//	http.ListenAndServe(addr, server)
package api
