package world

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidDirection(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"n", "north"},
		{"north", "north"},
		{"NORTH", "north"},
		{" se ", "southeast"},
		{"u", "up"},
		{"d", "down"},
		{"sideways", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ValidDirection(tt.token); got != tt.expected {
			t.Errorf("ValidDirection(%q) = %q, want %q", tt.token, got, tt.expected)
		}
	}
}

func TestOpposite(t *testing.T) {
	tests := []struct {
		direction string
		expected  string
	}{
		{"north", "south"},
		{"southwest", "northeast"},
		{"up", "down"},
		{"bogus", ""},
	}

	for _, tt := range tests {
		if got := Opposite(tt.direction); got != tt.expected {
			t.Errorf("Opposite(%q) = %q, want %q", tt.direction, got, tt.expected)
		}
	}
}

func TestRoomExits(t *testing.T) {
	a := NewRoom("a", "Room A", "", KindStandard)
	b := NewRoom("b", "Room B", "", KindStandard)
	a.AddExit("north", b)

	if !a.HasExit("north") {
		t.Error("room A should have a north exit")
	}
	if a.HasExit("south") {
		t.Error("room A should not have a south exit")
	}
	if got := a.Exit("north"); got != b {
		t.Errorf("Exit(north) = %v, want room B", got)
	}
}

func TestRoomOccupancy(t *testing.T) {
	a := NewRoom("a", "Room A", "", KindStandard)
	b := NewRoom("b", "Room B", "", KindStandard)

	a.OnArrive("Vex", nil)
	a.OnArrive("Marrow", nil)
	if got := len(a.Occupants()); got != 2 {
		t.Fatalf("expected 2 occupants, got %d", got)
	}

	a.OnLeave("Vex", b)
	occ := a.Occupants()
	if len(occ) != 1 || occ[0] != "Marrow" {
		t.Errorf("expected [Marrow], got %v", occ)
	}

	// Leaving twice is harmless.
	a.OnLeave("Vex", b)
	if got := len(a.Occupants()); got != 1 {
		t.Errorf("expected 1 occupant after double leave, got %d", got)
	}
}

func TestFindRoom(t *testing.T) {
	w := NewWorld()
	square := NewRoom("ashfall_square", "Ashfall Square", "", KindStandard)
	market := NewRoom("ashfall_market", "Ashfall Market", "", KindStandard)
	w.AddRoom(square)
	w.AddRoom(market)

	if got := w.FindRoom("ashfall_square"); got != square {
		t.Error("FindRoom should match by exact ID")
	}
	if got := w.FindRoom("ashfall market"); got != market {
		t.Error("FindRoom should match by case-insensitive name")
	}
	if got := w.FindRoom("nowhere at all"); got != nil {
		t.Errorf("FindRoom for missing room = %v, want nil", got)
	}
	if got := w.FindRoom(""); got != nil {
		t.Errorf("FindRoom(\"\") = %v, want nil", got)
	}
}

func TestDefaultWorld(t *testing.T) {
	w := NewDefaultWorld()

	if w.SpawnRoom() == nil {
		t.Fatal("default world should have a spawn room")
	}
	if w.ChargenRoom() == nil {
		t.Fatal("default world should have a chargen room")
	}
	if w.ChargenRoom().Kind != KindChargen {
		t.Error("chargen room should have the chargen kind")
	}
	if !w.ChargenRoom().HasExit("down") {
		t.Error("chargen room should exit down into the city")
	}

	zones := w.Zones()
	if len(zones) != 2 {
		t.Errorf("default world zones = %v, want 2 entries", zones)
	}
}

func TestLoadFromYAML(t *testing.T) {
	content := `spawn_room: plaza
chargen_room: limbo
rooms:
  limbo:
    name: "Limbo"
    description: "Nothing here yet."
    kind: chargen
    zone: nowhere
    exits:
      down: plaza
  plaza:
    name: "The Plaza"
    description: "A wide open plaza."
    zone: city
    area: downtown
    x: 3
    y: -1
`
	tmpFile := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	w, err := LoadFromYAML(tmpFile)
	if err != nil {
		t.Fatalf("LoadFromYAML() error: %v", err)
	}

	limbo := w.Room("limbo")
	if limbo == nil {
		t.Fatal("limbo room not loaded")
	}
	if limbo.Kind != KindChargen {
		t.Errorf("limbo kind = %q, want chargen", limbo.Kind)
	}
	plaza := w.Room("plaza")
	if plaza == nil {
		t.Fatal("plaza room not loaded")
	}
	if limbo.Exit("down") != plaza {
		t.Error("limbo should exit down to plaza")
	}
	if plaza.X != 3 || plaza.Y != -1 {
		t.Errorf("plaza coordinates = (%d,%d), want (3,-1)", plaza.X, plaza.Y)
	}
	if w.SpawnRoom() != plaza {
		t.Error("spawn room should be plaza")
	}
}

func TestLoadFromYAML_BadExit(t *testing.T) {
	content := `rooms:
  a:
    name: "A"
    exits:
      north: missing
`
	tmpFile := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if _, err := LoadFromYAML(tmpFile); err == nil {
		t.Error("LoadFromYAML should reject exits to unknown rooms")
	}
}

func TestLoadFromYAML_BadDirection(t *testing.T) {
	content := `rooms:
  a:
    name: "A"
    exits:
      sideways: a
`
	tmpFile := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if _, err := LoadFromYAML(tmpFile); err == nil {
		t.Error("LoadFromYAML should reject invalid exit directions")
	}
}
