// Package world holds the room graph: typed rooms, direction-keyed
// exits, zones, and the registry that resolves rooms by search string.
package world

import (
	"sync"
)

// RoomKind classifies a room's gameplay role.
type RoomKind string

const (
	// KindStandard is an ordinary playable room.
	KindStandard RoomKind = "standard"
	// KindChargen marks a character-generation room. Characters whose
	// species is unset may not leave rooms of this kind, and the prompt
	// renders differently inside them.
	KindChargen RoomKind = "chargen"
)

// Room is a location in the game world.
type Room struct {
	ID          string
	Name        string
	Description string
	Kind        RoomKind
	Zone        string
	Area        string
	X, Y, Z     int

	exits     map[string]*Room
	occupants []string
	mu        sync.RWMutex
}

// NewRoom creates an empty room of the given kind.
func NewRoom(id, name, description string, kind RoomKind) *Room {
	return &Room{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        kind,
		exits:       make(map[string]*Room),
	}
}

// AddExit links this room to a destination in a canonical direction.
func (r *Room) AddExit(direction string, destination *Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exits[direction] = destination
}

// Exit returns the destination in the given canonical direction, or nil.
func (r *Room) Exit(direction string) *Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exits[direction]
}

// HasExit reports whether the room has an exit in the given direction.
func (r *Room) HasExit(direction string) bool {
	return r.Exit(direction) != nil
}

// Exits returns a copy of the exit table.
func (r *Room) Exits() map[string]*Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*Room, len(r.exits))
	for dir, dest := range r.exits {
		out[dir] = dest
	}
	return out
}

// OnLeave notifies the room that an occupant is departing toward the
// given destination.
func (r *Room) OnLeave(name string, destination *Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, occ := range r.occupants {
		if occ == name {
			r.occupants = append(r.occupants[:i], r.occupants[i+1:]...)
			return
		}
	}
}

// OnArrive notifies the room that an occupant has arrived from the
// given source room (which may be nil on first embodiment).
func (r *Room) OnArrive(name string, source *Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.occupants = append(r.occupants, name)
}

// RenameOccupant replaces an occupant's name in place, keeping their
// position in the room listing. Chargen renames route through here.
func (r *Room) RenameOccupant(oldName, newName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, occ := range r.occupants {
		if occ == oldName {
			r.occupants[i] = newName
			return
		}
	}
}

// Occupants returns a copy of the names currently in the room.
func (r *Room) Occupants() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.occupants))
	copy(out, r.occupants)
	return out
}

// Coordinates returns the room's zone-local coordinates.
func (r *Room) Coordinates() [3]int {
	return [3]int{r.X, r.Y, r.Z}
}

// Update re-normalizes room state. The admin update command runs this
// across all rooms; it drops dangling self-exits left by content edits.
func (r *Room) Update() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for dir, dest := range r.exits {
		if dest == nil {
			delete(r.exits, dir)
		}
	}
}
