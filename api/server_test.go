package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/gridduel/gridduel/game/coordinator"
	"github.com/gridduel/gridduel/transport/websocket"
)

// newTestServer wires a full coordinator + hub + API stack.
func newTestServer(t *testing.T) (*httptest.Server, *coordinator.Coordinator) {
	t.Helper()

	coord := coordinator.New()
	hub := websocket.NewHub(coord)
	go hub.Run()

	server := httptest.NewServer(NewServer(coord, hub))
	t.Cleanup(server.Close)
	return server, coord
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response from %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	var body map[string]string
	status := getJSON(t, server.URL+"/healthz", &body)

	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %q", body["status"])
	}
}

func TestRosterEndpointEmpty(t *testing.T) {
	server, _ := newTestServer(t)

	var body struct {
		Players []string `json:"players"`
	}
	status := getJSON(t, server.URL+"/api/roster", &body)

	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if len(body.Players) != 0 {
		t.Errorf("Expected empty roster, got %v", body.Players)
	}
}

func TestSessionsEndpointEmpty(t *testing.T) {
	server, _ := newTestServer(t)

	var body struct {
		Count    int                       `json:"count"`
		Sessions []coordinator.SessionInfo `json:"sessions"`
	}
	status := getJSON(t, server.URL+"/api/sessions", &body)

	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if body.Count != 0 || len(body.Sessions) != 0 {
		t.Errorf("Expected no sessions, got count=%d sessions=%v", body.Count, body.Sessions)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	var body map[string]string
	status := getJSON(t, server.URL+"/api/sessions/nope", &body)

	if status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", status)
	}
	if body["error"] == "" {
		t.Error("Expected a JSON error body")
	}
}

// joinPlayer opens a WebSocket against the server and joins with the name.
func joinPlayer(t *testing.T, serverURL, name string) *gws.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
	conn, _, err := gws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	join := `{"type":"join","name":"` + name + `"}`
	if err := conn.WriteMessage(gws.TextMessage, []byte(join)); err != nil {
		t.Fatalf("Failed to send join: %v", err)
	}

	// Wait for the roster broadcast so the join has settled server-side.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("Failed to read roster broadcast: %v", err)
	}
	return conn
}

func TestInspectionReflectsLiveState(t *testing.T) {
	server, _ := newTestServer(t)

	joinPlayer(t, server.URL, "Alice")
	joinPlayer(t, server.URL, "Bob")

	// The pair matched; poll briefly for the session to appear.
	deadline := time.Now().Add(2 * time.Second)
	var sessions struct {
		Count    int                       `json:"count"`
		Sessions []coordinator.SessionInfo `json:"sessions"`
	}
	for {
		getJSON(t, server.URL+"/api/sessions", &sessions)
		if sessions.Count == 1 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if sessions.Count != 1 {
		t.Fatalf("Expected 1 session, got %d", sessions.Count)
	}
	info := sessions.Sessions[0]
	if info.Players[0] != "Alice" || info.Players[1] != "Bob" {
		t.Errorf("Expected players [Alice Bob], got %v", info.Players)
	}
	if !info.Active || info.CurrentPlayer != "Alice" {
		t.Errorf("Expected an active session with Alice to move, got %+v", info)
	}

	var roster struct {
		Players []string `json:"players"`
	}
	getJSON(t, server.URL+"/api/roster", &roster)
	if len(roster.Players) != 2 {
		t.Errorf("Expected 2 players on the roster, got %v", roster.Players)
	}

	var single coordinator.SessionInfo
	status := getJSON(t, server.URL+"/api/sessions/"+info.ID, &single)
	if status != http.StatusOK {
		t.Errorf("Expected status 200 for session %s, got %d", info.ID, status)
	}
	if single.ID != info.ID {
		t.Errorf("Expected session %s, got %s", info.ID, single.ID)
	}
}
