package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/blackbirdsmud/blackbirds/internal/config"
	"github.com/blackbirdsmud/blackbirds/internal/database"
	"github.com/blackbirdsmud/blackbirds/internal/species"
	"github.com/blackbirdsmud/blackbirds/internal/world"
)

// fakeClient is a scripted Client for testing the auth flow and
// session plumbing without a network.
type fakeClient struct {
	mu     sync.Mutex
	lines  []string
	out    []string
	closed bool
}

func newFakeClient(lines ...string) *fakeClient {
	return &fakeClient{lines: lines}
}

func (f *fakeClient) ReadLine() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || len(f.lines) == 0 {
		return "", net.ErrClosed
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeClient) WriteLine(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out = append(f.out, message)
	return nil
}

func (f *fakeClient) Write(data []byte) error {
	return f.WriteLine(string(data))
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) RemoteAddr() string { return "10.0.0.1:50000" }

func (f *fakeClient) sawText(substr string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, line := range f.out {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewServer("127.0.0.1:0", world.NewDefaultWorld(), db, config.DefaultConfig())
}

// seedSession creates an account, a character, and a registered
// session, bypassing the interactive auth flow.
func seedSession(t *testing.T, s *Server, name string) (*Session, *fakeClient) {
	t.Helper()

	account, err := s.db.CreateAccount("acct_"+strings.ToLower(name), "Password1")
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	record, err := s.db.CreateCharacter(account.ID, name, "chargen")
	if err != nil {
		t.Fatalf("CreateCharacter() failed: %v", err)
	}

	client := newFakeClient()
	session, err := s.newSession(client, &AuthResult{Account: account, Character: record})
	if err != nil {
		t.Fatalf("newSession() failed: %v", err)
	}

	s.mu.Lock()
	s.sessions[name] = session
	s.mu.Unlock()
	t.Cleanup(func() {
		s.mu.Lock()
		delete(s.sessions, name)
		s.mu.Unlock()
	})

	return session, client
}

func TestNewSessionPlacesCharacter(t *testing.T) {
	s := newTestServer(t)
	session, _ := seedSession(t, s, "Vex")

	room := session.char.Location()
	if room == nil {
		t.Fatal("character has no location")
	}
	if room.Kind != world.KindChargen {
		t.Errorf("new character placed in %q room, want chargen", room.Kind)
	}

	found := false
	for _, occ := range room.Occupants() {
		if occ == "Vex" {
			found = true
		}
	}
	if !found {
		t.Error("character not in room occupants")
	}
}

func TestNewSessionFallbackRoom(t *testing.T) {
	s := newTestServer(t)

	account, err := s.db.CreateAccount("keeper", "Password1")
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	record, err := s.db.CreateCharacter(account.ID, "Vex", "demolished_room")
	if err != nil {
		t.Fatalf("CreateCharacter() failed: %v", err)
	}
	record.Species = string(species.Human)

	session, err := s.newSession(newFakeClient(), &AuthResult{Account: account, Character: record})
	if err != nil {
		t.Fatalf("newSession() failed: %v", err)
	}

	// Finished characters whose room is gone land at spawn.
	if got := session.char.Location(); got != s.gameWorld.SpawnRoom() {
		t.Errorf("fallback room = %v, want spawn room", got)
	}
}

func TestAnnounceAll(t *testing.T) {
	s := newTestServer(t)
	_, vex := seedSession(t, s, "Vex")
	_, wren := seedSession(t, s, "Wren")

	s.AnnounceAll("The system is reloading, please be patient.")

	for name, client := range map[string]*fakeClient{"Vex": vex, "Wren": wren} {
		if !client.sawText("The system is reloading") {
			t.Errorf("%s did not receive the announcement", name)
		}
	}
}

func TestBroadcastToRoom(t *testing.T) {
	s := newTestServer(t)
	vexSession, vex := seedSession(t, s, "Vex")
	_, wren := seedSession(t, s, "Wren")
	marrowSession, marrow := seedSession(t, s, "Marrow")

	// Move Marrow elsewhere.
	marrowSession.char.SetLocation(s.gameWorld.SpawnRoom())

	s.BroadcastToRoom(vexSession.char.Location(), []string{"Vex"}, "Something stirs.")

	if vex.sawText("Something stirs.") {
		t.Error("excluded character received the broadcast")
	}
	if !wren.sawText("Something stirs.") {
		t.Error("co-located character missed the broadcast")
	}
	if marrow.sawText("Something stirs.") {
		t.Error("character in another room received the broadcast")
	}
}

func TestOnlineCharacters(t *testing.T) {
	s := newTestServer(t)
	seedSession(t, s, "Vex")
	seedSession(t, s, "Wren")

	online := s.OnlineCharacters()
	if len(online) != 2 {
		t.Fatalf("OnlineCharacters() returned %d, want 2", len(online))
	}
}

func TestFindCharacter(t *testing.T) {
	s := newTestServer(t)
	session, _ := seedSession(t, s, "Vex")

	if got := s.FindCharacter("vex"); got != session.char {
		t.Error("FindCharacter should match case-insensitively")
	}
	if got := s.FindCharacter("Nobody"); got != nil {
		t.Errorf("FindCharacter(Nobody) = %v, want nil", got)
	}
}

func TestSessionRenameRekeys(t *testing.T) {
	s := newTestServer(t)
	session, client := seedSession(t, s, "Vex")

	session.char.Rename("Marrow")

	if got := s.FindCharacter("marrow"); got != session.char {
		t.Error("renamed character not findable under new name")
	}
	if got := s.FindCharacter("Vex"); got != nil {
		t.Error("renamed character still registered under old name")
	}

	occupants := session.char.Location().Occupants()
	for _, occ := range occupants {
		if occ == "Vex" {
			t.Error("old name still occupies the room")
		}
	}
	found := false
	for _, occ := range occupants {
		if occ == "Marrow" {
			found = true
		}
	}
	if !found {
		t.Error("new name missing from room occupants")
	}

	// Disconnect resolves the session by the current name.
	s.Disconnect(session.char)
	client.mu.Lock()
	closed := client.closed
	client.mu.Unlock()
	if !closed {
		t.Error("Disconnect after rename did not close the client")
	}
}

func TestDisconnectClosesClient(t *testing.T) {
	s := newTestServer(t)
	session, client := seedSession(t, s, "Vex")

	s.Disconnect(session.char)

	client.mu.Lock()
	closed := client.closed
	client.mu.Unlock()
	if !closed {
		t.Error("Disconnect did not close the client")
	}
}

func TestRequestReload(t *testing.T) {
	s := newTestServer(t)

	if reloading, _ := s.ReloadRequested(); reloading {
		t.Fatal("reload flag set before request")
	}

	s.RequestReload("for maintenance")

	reloading, reason := s.ReloadRequested()
	if !reloading {
		t.Error("reload flag not set")
	}
	if reason != "for maintenance" {
		t.Errorf("reload reason = %q", reason)
	}
}

func TestSessionSaveCharacter(t *testing.T) {
	s := newTestServer(t)
	session, _ := seedSession(t, s, "Vex")

	session.char.Species = species.Carven
	session.char.Money = 75
	if err := session.saveCharacter(); err != nil {
		t.Fatalf("saveCharacter() failed: %v", err)
	}

	loaded, err := s.db.GetCharacterByName("Vex")
	if err != nil {
		t.Fatalf("GetCharacterByName() failed: %v", err)
	}
	if loaded.Species != "carven" || loaded.Money != 75 {
		t.Errorf("saved species %q money %d, want carven/75", loaded.Species, loaded.Money)
	}
}

func TestSessionChargenRouting(t *testing.T) {
	s := newTestServer(t)

	account, err := s.db.CreateAccount("keeper", "Password1")
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	record, err := s.db.CreateCharacter(account.ID, "Vex", "chargen")
	if err != nil {
		t.Fatalf("CreateCharacter() failed: %v", err)
	}

	client := newFakeClient("1", "q")
	session, err := s.newSession(client, &AuthResult{Account: account, Character: record})
	if err != nil {
		t.Fatalf("newSession() failed: %v", err)
	}
	s.mu.Lock()
	s.sessions["Vex"] = session
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, "Vex")
		s.mu.Unlock()
	}()

	session.Run()

	// Species selection happened through the menu, not the command
	// dispatcher.
	if session.char.Species != species.Human {
		t.Errorf("Species = %q after choosing option 1, want human", session.char.Species)
	}
	if session.menu != nil {
		t.Error("menu still active after quit")
	}
}

func TestWebSocketOriginCheck(t *testing.T) {
	s := newTestServer(t)
	s.cfg.WebSocket.AllowedOrigins = []string{"https://play.example.com"}

	srv := httptest.NewServer(http.HandlerFunc(s.handleWebSocketUpgrade))
	defer srv.Close()

	req, err := http.NewRequest("GET", srv.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest() failed: %v", err)
	}
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusSwitchingProtocols {
		t.Error("upgrade succeeded for disallowed origin")
	}
}

func TestGetRealIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{"direct", "", "", "203.0.113.9:4242", "203.0.113.9"},
		{"forwarded", "198.51.100.7, 10.0.0.1", "", "10.0.0.1:80", "198.51.100.7"},
		{"real ip", "", "198.51.100.8", "10.0.0.1:80", "198.51.100.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/ws", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := getRealIP(r); got != tt.want {
				t.Errorf("getRealIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
