// Package websocket provides the WebSocket transport for gridduel.
//
// The websocket package implements:
//   - Connection upgrades and per-client read/write pumps
//   - Ping/pong keepalive and read limits
//   - Frame delivery into the coordinator's dispatcher
//   - Exactly-once disconnect signaling on connection loss
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub tracks all
// WebSocket connections. Each client connection is handled by a dedicated
// pair of goroutines managing reading, writing, and cleanup. Clients
// implement coordinator.Conn, so the coordinator addresses them without
// knowing the transport.
//
// Message Protocol:
//
// Frames carry one JSON message each, with the shapes documented in the
// coordinator package. The hub does not interpret payloads; it hands every
// inbound frame to the coordinator and writes whatever the coordinator
// queues on the client.
//
// Connection Lifecycle:
//
// 1. Client connects to /ws and is upgraded
// 2. Connection registered with the hub
// 3. Client sends join/move/restart, receives coordinator broadcasts
// 4. Read failure or close triggers unregistration
// 5. The hub reports the loss to the coordinator exactly once
//
// Outbound delivery is a buffered, non-blocking handoff: a slow or gone peer
// loses frames rather than stalling the coordinator.
//
// Usage:
//
//	hub := websocket.NewHub(coord)
//	go hub.Run()
//	http.HandleFunc("/ws", hub.ServeWS)
package websocket
