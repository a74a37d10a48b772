package world

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// World is the registry of all rooms.
type World struct {
	rooms     map[string]*Room
	spawnID   string
	chargenID string
	mu        sync.RWMutex
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{rooms: make(map[string]*Room)}
}

// AddRoom registers a room.
func (w *World) AddRoom(room *Room) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rooms[room.ID] = room
}

// Room returns the room with the given ID, or nil.
func (w *World) Room(id string) *Room {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.rooms[id]
}

// Rooms returns all registered rooms.
func (w *World) Rooms() []*Room {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Room, 0, len(w.rooms))
	for _, r := range w.rooms {
		out = append(out, r)
	}
	return out
}

// FindRoom resolves a search string to a room: exact ID first, then
// case-insensitive name match, then name prefix. Returns nil when
// nothing matches.
func (w *World) FindRoom(search string) *Room {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if room, ok := w.rooms[search]; ok {
		return room
	}

	lowered := strings.ToLower(strings.TrimSpace(search))
	if lowered == "" {
		return nil
	}
	for _, room := range w.rooms {
		if strings.ToLower(room.Name) == lowered {
			return room
		}
	}
	for _, room := range w.rooms {
		if strings.HasPrefix(strings.ToLower(room.Name), lowered) {
			return room
		}
	}
	return nil
}

// SpawnRoom returns the room new characters are placed in after
// generation completes.
func (w *World) SpawnRoom() *Room {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.rooms[w.spawnID]
}

// ChargenRoom returns the room new characters begin generation in.
func (w *World) ChargenRoom() *Room {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.rooms[w.chargenID]
}

// SetSpawnRooms records the spawn and chargen room IDs.
func (w *World) SetSpawnRooms(spawnID, chargenID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.spawnID = spawnID
	w.chargenID = chargenID
}

// Zones returns the distinct zone names across all rooms, in no
// particular order. Callers sort for display.
func (w *World) Zones() []string {
	return w.distinct(func(r *Room) string { return r.Zone })
}

// Areas returns the distinct area names across all rooms.
func (w *World) Areas() []string {
	return w.distinct(func(r *Room) string { return r.Area })
}

func (w *World) distinct(key func(*Room) string) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, r := range w.rooms {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// roomDef is the YAML shape of a single room.
type roomDef struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Kind        string            `yaml:"kind"`
	Zone        string            `yaml:"zone"`
	Area        string            `yaml:"area"`
	X           int               `yaml:"x"`
	Y           int               `yaml:"y"`
	Z           int               `yaml:"z"`
	Exits       map[string]string `yaml:"exits"`
}

// worldFile is the YAML shape of the world file.
type worldFile struct {
	SpawnRoom   string              `yaml:"spawn_room"`
	ChargenRoom string              `yaml:"chargen_room"`
	Rooms       map[string]*roomDef `yaml:"rooms"`
}

// LoadFromYAML builds a world from a YAML room file. Exits are linked
// in a second pass so definition order doesn't matter.
func LoadFromYAML(filename string) (*World, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}

	var wf worldFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to parse world YAML: %w", err)
	}

	w := NewWorld()
	for id, def := range wf.Rooms {
		kind := KindStandard
		if def.Kind == string(KindChargen) {
			kind = KindChargen
		}
		room := NewRoom(id, def.Name, def.Description, kind)
		room.Zone = def.Zone
		room.Area = def.Area
		room.X, room.Y, room.Z = def.X, def.Y, def.Z
		w.AddRoom(room)
	}
	for id, def := range wf.Rooms {
		room := w.Room(id)
		for dir, destID := range def.Exits {
			canonical := ValidDirection(dir)
			if canonical == "" {
				return nil, fmt.Errorf("room %q: invalid exit direction %q", id, dir)
			}
			dest := w.Room(destID)
			if dest == nil {
				return nil, fmt.Errorf("room %q: exit %s leads to unknown room %q", id, canonical, destID)
			}
			room.AddExit(canonical, dest)
		}
	}

	w.SetSpawnRooms(wf.SpawnRoom, wf.ChargenRoom)
	if wf.SpawnRoom != "" && w.Room(wf.SpawnRoom) == nil {
		return nil, fmt.Errorf("spawn room %q not defined", wf.SpawnRoom)
	}
	if wf.ChargenRoom != "" && w.Room(wf.ChargenRoom) == nil {
		return nil, fmt.Errorf("chargen room %q not defined", wf.ChargenRoom)
	}
	return w, nil
}

// NewDefaultWorld builds the minimal built-in world used when no world
// file is available: one chargen room and a small connected district.
func NewDefaultWorld() *World {
	w := NewWorld()

	chargen := NewRoom("chargen", "A Quiet Nowhere", "A featureless grey space where new lives take shape.", KindChargen)
	chargen.Zone = "nowhere"
	chargen.Area = "chargen"

	square := NewRoom("ashfall_square", "Ashfall Square", "Cracked flagstones radiate from a dry fountain. The city leans in on every side.", KindStandard)
	square.Zone = "ashfall"
	square.Area = "city center"

	market := NewRoom("ashfall_market", "Ashfall Market", "Stalls of salvage and bioluminescent produce crowd a narrow street.", KindStandard)
	market.Zone = "ashfall"
	market.Area = "city center"
	market.X = 1

	alley := NewRoom("ashfall_alley", "A Dim Alley", "Wet brick and old wire. Something skitters along the gutter.", KindStandard)
	alley.Zone = "ashfall"
	alley.Area = "city center"
	alley.Y = -1

	square.AddExit("east", market)
	market.AddExit("west", square)
	square.AddExit("south", alley)
	alley.AddExit("north", square)
	chargen.AddExit("down", square)

	w.AddRoom(chargen)
	w.AddRoom(square)
	w.AddRoom(market)
	w.AddRoom(alley)
	w.SetSpawnRooms("ashfall_square", "chargen")
	return w
}
