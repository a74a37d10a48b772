package character

import (
	"fmt"

	"github.com/blackbirdsmud/blackbirds/internal/logger"
	"github.com/blackbirdsmud/blackbirds/internal/world"
)

// MoveCall resolves a direction token against the current room's exits,
// checks the character can move at all, and hands off to MoveTo.
func (c *Character) MoveCall(direction string) {
	if c.location == nil {
		c.ErrorEcho("You can't figure out how to move anywhere from here.")
		return
	}

	if direction == "" {
		c.ErrorEcho("Which way are you trying to go?")
		return
	}

	canonical := world.ValidDirection(direction)
	if canonical == "" {
		c.ErrorEchof("There is no %sward exit.", direction)
		return
	}

	// Afflictions, prone status, and the like.
	ok, reason := c.CanMove()
	if !ok {
		if reason == "" {
			reason = "You can't seem to move."
		}
		c.ErrorEcho(reason)
		return
	}

	if !c.location.HasExit(canonical) {
		c.ErrorEchof("There is no %sward exit.", canonical)
		return
	}

	c.lastDirection = canonical
	c.MoveTo(c.location.Exit(canonical), false, true)
	c.lastDirection = ""
}

// MoveTo moves the character to a destination, which may be a
// *world.Room or a search string. The move runs as an ordered step
// pipeline; failures before the location commit abort cleanly, failures
// after it are logged and reported but the new location sticks.
// Returns true only when every step completed.
func (c *Character) MoveTo(destination any, quiet bool, runHooks bool) bool {
	const errtxt = "Couldn't perform move ('%s'). Contact an admin."

	fail := func(step string, err error) bool {
		logger.Error("move step failed", "character", c.Name, "step", step, "error", err)
		c.ErrorEchof(errtxt, step)
		return false
	}

	dest := c.resolveDestination(destination)
	if dest == nil {
		c.ErrorEcho("You can't seem to figure out how to get there.")
		return false
	}

	if runHooks {
		ok, err := c.beforeMove(dest)
		if err != nil {
			return fail("before move", err)
		}
		if !ok {
			return false
		}
	}

	source := c.location
	if runHooks && source != nil {
		source.OnLeave(c.Name, dest)
	}

	if !quiet {
		c.announceDeparture(source)
	}

	// The move commits here. Anything that fails past this point leaves
	// the character in the destination.
	c.location = dest

	if !quiet {
		c.announceArrival(dest)
	}

	if runHooks {
		dest.OnArrive(c.Name, source)
		if err := c.afterMove(source); err != nil {
			return fail("after move", err)
		}
	}

	return true
}

func (c *Character) resolveDestination(destination any) *world.Room {
	switch d := destination.(type) {
	case *world.Room:
		return d
	case string:
		if c.resolver == nil {
			return nil
		}
		return c.resolver.FindRoom(d)
	default:
		return nil
	}
}

// beforeMove is the pre-move veto. A false result aborts the move with
// no state change; an error is treated as a broken hook.
func (c *Character) beforeMove(dest *world.Room) (bool, error) {
	if c.PreMoveHook != nil {
		if err := c.PreMoveHook(dest); err != nil {
			return false, err
		}
		return true, nil
	}

	// An unfinished character may not leave generation.
	if c.Species == "" && c.InChargen() && dest.Kind != world.KindChargen {
		c.ErrorEcho("You aren't finished being made yet.")
		return false, nil
	}
	return true, nil
}

func (c *Character) announceDeparture(source *world.Room) {
	if source == nil || c.broadcast == nil {
		return
	}
	msg := fmt.Sprintf("%s leaves.", c.Name)
	if c.lastDirection != "" {
		msg = fmt.Sprintf("%s leaves to the %s.", c.Name, c.lastDirection)
	}
	c.broadcast(source, []string{c.Name}, msg)
}

func (c *Character) announceArrival(dest *world.Room) {
	if c.broadcast == nil {
		return
	}
	msg := fmt.Sprintf("%s arrives.", c.Name)
	if from := world.Opposite(c.lastDirection); from != "" {
		msg = fmt.Sprintf("%s arrives from the %s.", c.Name, from)
	}
	c.broadcast(dest, []string{c.Name}, msg)
}

// afterMove runs once the character is in the new room, normally just a
// look around.
func (c *Character) afterMove(source *world.Room) error {
	c.Look()
	return nil
}
