// Package command parses and dispatches player input once a character
// is out of generation.
package command

import (
	"strings"

	"github.com/blackbirdsmud/blackbirds/internal/character"
	"github.com/blackbirdsmud/blackbirds/internal/world"
)

// ServerInterface is what commands need from the server. Defined here
// so the command package doesn't import the server.
type ServerInterface interface {
	// AnnounceAll sends a message to every connected session.
	AnnounceAll(message string)
	// RequestReload schedules a server restart.
	RequestReload(reason string)
	// World returns the room registry.
	World() *world.World
	// OnlineCharacters returns every connected character.
	OnlineCharacters() []*character.Character
	// AccountNames lists all persisted account names.
	AccountNames() ([]string, error)
	// CharacterNames lists all persisted character names.
	CharacterNames() ([]string, error)
	// UpdateAccounts re-normalizes all persisted accounts.
	UpdateAccounts() error
	// Disconnect ends the actor's session after pending output flushes.
	Disconnect(actor *character.Character)
}

// Command is one parsed line of player input.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a raw input line into a command name and
// arguments. The name is lowercased; arguments keep their case.
func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Name: "", Args: []string{}}
	}
	return &Command{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}
}

// Rest joins the arguments back into a single string.
func (c *Command) Rest() string {
	return strings.Join(c.Args, " ")
}

// Arg returns the nth argument, or "".
func (c *Command) Arg(n int) string {
	if n < 0 || n >= len(c.Args) {
		return ""
	}
	return c.Args[n]
}

// Execute runs the command for the actor. All player feedback goes
// through the actor's echo methods.
func (c *Command) Execute(actor *character.Character, srv ServerInterface) {
	switch c.Name {
	case "":
		actor.Echo(actor.Prompt())
	case "look", "l":
		actor.Look()
	case "say", "'":
		actor.Say(c.Rest())
	case "go", "move", "walk":
		actor.MoveCall(c.Arg(0))
	case "north", "n", "south", "s", "east", "e", "west", "w",
		"northeast", "ne", "northwest", "nw", "southeast", "se", "southwest", "sw",
		"up", "u", "down", "d":
		actor.MoveCall(c.Name)
	case "stand":
		c.executeStand(actor)
	case "sit":
		c.executeSit(actor)
	case "lie", "lay":
		c.executeLie(actor)
	case "score", "stats":
		actor.Echo(c.scoreSheet(actor))
	case "who":
		c.executeWho(actor, srv)
	case "quit":
		actor.Echo("Goodbye.")
		srv.Disconnect(actor)
	case "reload", "restart":
		c.executeReload(actor, srv)
	case "update":
		c.executeUpdate(actor, srv)
	case "list":
		c.executeList(actor, srv)
	case "specieschange", "specchange":
		c.executeSpeciesChange(actor)
	case "archetypechange", "archchange":
		c.executeArchetypeChange(actor)
	case "sethp":
		c.executeSetHp(actor)
	case "pronounchange", "prochange":
		c.executePronounChange(actor)
	default:
		actor.ErrorEchof("Unknown command: %s.", c.Name)
	}
}

// requireAdmin gates a command on the admin flag. Non-admins get the
// same unknown-command error so admin commands stay invisible.
func requireAdmin(actor *character.Character, name string) bool {
	if actor.IsAdmin {
		return true
	}
	actor.ErrorEchof("Unknown command: %s.", name)
	return false
}
