// Package character implements the player-controlled entity: identity,
// stats, pronouns, anatomy, movement, and templated messaging.
package character

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blackbirdsmud/blackbirds/internal/archetype"
	"github.com/blackbirdsmud/blackbirds/internal/color"
	"github.com/blackbirdsmud/blackbirds/internal/display"
	"github.com/blackbirdsmud/blackbirds/internal/species"
	"github.com/blackbirdsmud/blackbirds/internal/world"
)

// Prone states.
const (
	Standing = 0
	Seated   = 1
	Lying    = 2
)

// Stat is a current/max pair.
type Stat struct {
	Current int
	Max     int
}

// Clamp forces Current back into [0, Max].
func (s *Stat) Clamp() {
	if s.Current < 0 {
		s.Current = 0
	}
	if s.Max > 0 && s.Current > s.Max {
		s.Current = s.Max
	}
}

// RoomResolver resolves a search string to a room. The world registry
// satisfies this.
type RoomResolver interface {
	FindRoom(search string) *world.Room
}

// BroadcastFunc delivers a message to every occupant of a room except
// the named characters. The server supplies this.
type BroadcastFunc func(room *world.Room, exclude []string, message string)

// Character holds one player-controlled entity's mutable game state.
type Character struct {
	ID      int64
	Name    string
	Surname string
	Age     int
	// ApparentAge is how old the character looks, which species
	// lifespans can push far from Age.
	ApparentAge int
	Height      int // centimeters
	Intro       string
	Description string

	Species   species.Species
	Archetype archetype.Archetype

	HP Stat // hit points
	EN Stat // endurance
	SC Stat // scars (lives)
	XP Stat // experience

	Money int
	Prone int

	// Anatomy.
	HasBreasts       bool
	HasGenitals      bool
	CanCarryChild    bool
	HasFourArms      bool
	ExoskeletalLevel int

	// Descriptive anatomy fields.
	FangDesc            string
	TailDesc            string
	BioluminescenceDesc string

	IsAdmin bool

	// PreMoveHook, when set, replaces the built-in pre-move veto. A
	// non-nil error aborts the move before any state changes.
	PreMoveHook func(dest *world.Room) error

	pronounMu     sync.RWMutex
	pronounThey   string
	pronounThem   string
	pronounTheir  string
	pronounTheirs string

	location      *world.Room
	resolver      RoomResolver
	send          func(string)
	broadcast     BroadcastFunc
	onRename      func(oldName, newName string)
	lastDirection string
}

// New creates a character with the defaults every freshly embodied
// character starts with.
func New(name string) *Character {
	return &Character{
		Name:        name,
		Age:         18,
		ApparentAge: 18,
		Height:      172, // approx. 5'8" in cm

		pronounThey:   "she",
		pronounThem:   "her",
		pronounTheir:  "her",
		pronounTheirs: "hers",

		HP: Stat{Current: 20, Max: 20},
		EN: Stat{Current: 0, Max: 100},
		SC: Stat{Current: 0, Max: 3},
		XP: Stat{Current: 0, Max: 1000},

		HasBreasts:    true,
		HasGenitals:   true,
		CanCarryChild: true,

		FangDesc:            "fangs",
		TailDesc:            "feline",
		BioluminescenceDesc: "white",
	}
}

// SetOutput installs the function that delivers text to the character's
// session.
func (c *Character) SetOutput(send func(string)) {
	c.send = send
}

// SetResolver installs the room lookup used when a move destination is
// given as a search string.
func (c *Character) SetResolver(resolver RoomResolver) {
	c.resolver = resolver
}

// SetBroadcast installs the room broadcast used for movement
// announcements and witness messages.
func (c *Character) SetBroadcast(broadcast BroadcastFunc) {
	c.broadcast = broadcast
}

// SetRenameHook installs the function notified after the character's
// name changes. The server uses it to re-key the session registry.
func (c *Character) SetRenameHook(hook func(oldName, newName string)) {
	c.onRename = hook
}

// Rename changes the character's name, updating the current room's
// occupant entry and notifying the rename hook. Everything keyed by
// name must route renames through here, not assign Name directly.
func (c *Character) Rename(newName string) {
	oldName := c.Name
	if newName == oldName {
		return
	}
	c.Name = newName
	if c.location != nil {
		c.location.RenameOccupant(oldName, newName)
	}
	if c.onRename != nil {
		c.onRename(oldName, newName)
	}
}

// Location returns the character's current room, or nil.
func (c *Character) Location() *world.Room {
	return c.location
}

// SetLocation places the character directly, bypassing the move
// pipeline. Used at login and by admin commands.
func (c *Character) SetLocation(room *world.Room) {
	c.location = room
}

// Echo sends a line of text to the character.
func (c *Character) Echo(text string) {
	if c.send != nil {
		c.send(text)
	}
}

// Echof sends formatted text to the character.
func (c *Character) Echof(format string, args ...any) {
	c.Echo(fmt.Sprintf(format, args...))
}

// EchoPrompt sends text followed by a refreshed prompt.
func (c *Character) EchoPrompt(text string) {
	c.Echo(text)
	c.Echo(c.Prompt())
}

// ErrorEcho sends text styled as an error.
func (c *Character) ErrorEcho(text string) {
	c.Echo(color.AGrey + text + color.Reset)
}

// ErrorEchof sends formatted text styled as an error.
func (c *Character) ErrorEchof(format string, args ...any) {
	c.ErrorEcho(fmt.Sprintf(format, args...))
}

// SetPronouns writes the whole pronoun quadruple at once. Partial
// updates are not possible.
func (c *Character) SetPronouns(they, them, their, theirs string) {
	c.pronounMu.Lock()
	defer c.pronounMu.Unlock()
	c.pronounThey = they
	c.pronounThem = them
	c.pronounTheir = their
	c.pronounTheirs = theirs
}

// They returns the subject pronoun.
func (c *Character) They() string {
	c.pronounMu.RLock()
	defer c.pronounMu.RUnlock()
	return c.pronounThey
}

// Them returns the object pronoun.
func (c *Character) Them() string {
	c.pronounMu.RLock()
	defer c.pronounMu.RUnlock()
	return c.pronounThem
}

// Their returns the possessive adjective.
func (c *Character) Their() string {
	c.pronounMu.RLock()
	defer c.pronounMu.RUnlock()
	return c.pronounTheir
}

// Theirs returns the possessive pronoun.
func (c *Character) Theirs() string {
	c.pronounMu.RLock()
	defer c.pronounMu.RUnlock()
	return c.pronounTheirs
}

// Pronouns returns the quadruple formatted for display.
func (c *Character) Pronouns() string {
	c.pronounMu.RLock()
	defer c.pronounMu.RUnlock()
	return fmt.Sprintf("%s, %s, %s, %s", c.pronounThey, c.pronounThem, c.pronounTheir, c.pronounTheirs)
}

// FullName returns name plus surname when one is set.
func (c *Character) FullName() string {
	if c.Surname == "" {
		return c.Name
	}
	return c.Name + " " + c.Surname
}

// SpeciesName returns the species display name, or "Unknown" for a
// character still in generation.
func (c *Character) SpeciesName() string {
	if c.Species == species.None {
		return "Unknown"
	}
	return c.Species.String()
}

// ArchetypeName returns the archetype display name.
func (c *Character) ArchetypeName() string {
	return c.Archetype.String()
}

// InChargen reports whether the character is inside a generation room.
func (c *Character) InChargen() bool {
	return c.location != nil && c.location.Kind == world.KindChargen
}

// CanMove reports whether the character can currently move, with a
// reason when they can't.
func (c *Character) CanMove() (bool, string) {
	if c.Prone > Standing {
		return false, "You'll need to get up, first."
	}
	return true, ""
}

// Zone returns the current room's zone name.
func (c *Character) Zone() string {
	if c.location == nil {
		return ""
	}
	return c.location.Zone
}

// Coordinates returns the current room's zone-local coordinates.
func (c *Character) Coordinates() [3]int {
	if c.location == nil {
		return [3]int{}
	}
	return c.location.Coordinates()
}

// Update re-normalizes the character: stats clamped to their maxima and
// anatomy reconciled with species capabilities. The admin update
// command runs this across all characters.
func (c *Character) Update() {
	c.HP.Clamp()
	c.EN.Clamp()
	c.SC.Clamp()
	c.XP.Clamp()

	if def := species.GetDefinition(c.Species); def != nil {
		if !def.CanReproduce {
			c.CanCarryChild = false
		}
		if !def.CanBeFourArmed {
			c.HasFourArms = false
		}
	}
	if c.Prone < Standing || c.Prone > Lying {
		c.Prone = Standing
	}
}

// ReturnAppearance renders this character as seen by another.
func (c *Character) ReturnAppearance(looker *Character) string {
	if looker == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%sThis is %s%s%s, %s%s%s.%s\n",
		color.AGrey,
		color.ACyan, c.FullName(), color.AGrey,
		color.ACyan, display.Article(c.SpeciesName()), color.AGrey,
		color.Reset))
	b.WriteString(display.Divider())
	if c.Description != "" {
		b.WriteString("\n" + c.Description)
	}
	return b.String()
}

// Say speaks aloud to the room.
func (c *Character) Say(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		c.ErrorEcho("Say what?")
		return
	}
	c.Message(fmt.Sprintf("You say, \"%s\"", message), MessageOpts{
		WitnessMsg: fmt.Sprintf("PLAYER says, \"%s\"", message),
	})
}

// Look echoes the current room's appearance to the character.
func (c *Character) Look() {
	if c.location == nil {
		c.ErrorEcho("You see nothing but a featureless void.")
		return
	}
	c.EchoPrompt(c.roomAppearance())
}

func (c *Character) roomAppearance() string {
	loc := c.location
	var b strings.Builder
	b.WriteString(color.ACyan + loc.Name + color.Reset + "\n")
	if loc.Description != "" {
		b.WriteString(loc.Description + "\n")
	}

	exits := loc.Exits()
	if len(exits) > 0 {
		names := make([]string, 0, len(exits))
		for _, dir := range []string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest", "up", "down"} {
			if _, ok := exits[dir]; ok {
				names = append(names, dir)
			}
		}
		b.WriteString(color.AGrey + "Exits: " + strings.Join(names, ", ") + color.Reset + "\n")
	}

	for _, occ := range loc.Occupants() {
		if occ == c.Name {
			continue
		}
		b.WriteString(fmt.Sprintf("%s%s is here.%s\n", color.AWhite, occ, color.Reset))
	}
	return strings.TrimRight(b.String(), "\n")
}
