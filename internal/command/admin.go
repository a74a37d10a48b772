package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/blackbirdsmud/blackbirds/internal/archetype"
	"github.com/blackbirdsmud/blackbirds/internal/character"
	"github.com/blackbirdsmud/blackbirds/internal/color"
	"github.com/blackbirdsmud/blackbirds/internal/display"
	"github.com/blackbirdsmud/blackbirds/internal/logger"
	"github.com/blackbirdsmud/blackbirds/internal/species"
)

// validKinds is the fixed set of object classes update and list accept.
var validKinds = []string{"accounts", "characters", "rooms", "zones", "areas", "species", "archetypes", "exits"}

func echoValidKinds(actor *character.Character, verb string) {
	actor.ErrorEchof("You must specify an object class to %s. Valid classes are:", verb)
	for _, kind := range validKinds {
		actor.Echo(display.Bullet(kind))
	}
}

func isValidKind(kind string) bool {
	for _, k := range validKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (c *Command) executeReload(actor *character.Character, srv ServerInterface) {
	if !requireAdmin(actor, c.Name) {
		return
	}

	reason := strings.TrimRight(c.Rest(), ".")
	message := "The system is reloading, please be patient."
	if reason != "" {
		message = fmt.Sprintf("The system is reloading (%s), please be patient.", reason)
	}

	logger.Info("server reload requested", "event", "reload", "admin", actor.Name, "reason", reason)
	srv.AnnounceAll(display.Notify("Game", message))
	srv.RequestReload(reason)
}

func (c *Command) executeUpdate(actor *character.Character, srv ServerInterface) {
	if !requireAdmin(actor, c.Name) {
		return
	}

	kind := strings.ToLower(c.Arg(0))
	if !isValidKind(kind) {
		echoValidKinds(actor, "update")
		return
	}

	switch kind {
	case "accounts":
		if err := srv.UpdateAccounts(); err != nil {
			actor.ErrorEchof("Account update failed: %v", err)
			return
		}
	case "characters":
		for _, ch := range srv.OnlineCharacters() {
			ch.Update()
		}
	case "rooms", "exits":
		for _, room := range srv.World().Rooms() {
			room.Update()
		}
	case "zones", "areas":
		// Zones and areas are derived from rooms; nothing to rebuild.
	case "species":
		if err := species.Validate(); err != nil {
			actor.ErrorEchof("Species update failed: %v", err)
			return
		}
	case "archetypes":
		// The archetype set is fixed at compile time.
	}

	logger.Info("bulk update", "event", "update", "admin", actor.Name, "kind", kind)
	actor.Echof("All %s%s%s have been updated.", color.AWhite, kind, color.Reset)
}

func (c *Command) executeList(actor *character.Character, srv ServerInterface) {
	if !requireAdmin(actor, c.Name) {
		return
	}

	kind := strings.ToLower(c.Arg(0))
	if !isValidKind(kind) {
		echoValidKinds(actor, "list")
		return
	}

	names, err := c.kindNames(kind, srv)
	if err != nil {
		actor.ErrorEchof("Couldn't list %s: %v", kind, err)
		return
	}

	actor.Echo(display.Header(strings.ToUpper(kind[:1]) + kind[1:]))
	for _, name := range names {
		actor.Echo(display.Bullet(name))
	}
	actor.Echo(display.Divider())
}

func (c *Command) kindNames(kind string, srv ServerInterface) ([]string, error) {
	switch kind {
	case "accounts":
		return srv.AccountNames()
	case "characters":
		return srv.CharacterNames()
	case "rooms":
		var names []string
		for _, room := range srv.World().Rooms() {
			names = append(names, room.Name)
		}
		sort.Strings(names)
		return names, nil
	case "zones":
		names := srv.World().Zones()
		sort.Strings(names)
		return names, nil
	case "areas":
		names := srv.World().Areas()
		sort.Strings(names)
		return names, nil
	case "species":
		var names []string
		for _, s := range species.All() {
			names = append(names, s.String())
		}
		return names, nil
	case "archetypes":
		var names []string
		for _, a := range archetype.All() {
			names = append(names, a.String())
		}
		return names, nil
	case "exits":
		var names []string
		for _, room := range srv.World().Rooms() {
			for dir, dest := range room.Exits() {
				names = append(names, fmt.Sprintf("%s: %s to %s", room.ID, dir, dest.ID))
			}
		}
		sort.Strings(names)
		return names, nil
	}
	return nil, fmt.Errorf("unknown class %q", kind)
}

func (c *Command) executeSpeciesChange(actor *character.Character) {
	if !requireAdmin(actor, c.Name) {
		return
	}

	s, err := species.Parse(c.Arg(0))
	if err != nil {
		actor.ErrorEcho("That is not a valid species name.")
		return
	}

	actor.Species = s
	actor.Update()
	actor.Echof("Species changed to %s.", s.String())
}

func (c *Command) executeArchetypeChange(actor *character.Character) {
	if !requireAdmin(actor, c.Name) {
		return
	}

	a, err := archetype.Parse(c.Arg(0))
	if err != nil {
		actor.ErrorEcho("That is not a valid archetype.")
		return
	}

	actor.Archetype = a
	actor.Echof("Archetype changed to %s.", a.String())
}

func (c *Command) executeSetHp(actor *character.Character) {
	if !requireAdmin(actor, c.Name) {
		return
	}

	hp, err := strconv.Atoi(c.Arg(0))
	if err != nil || hp < 0 {
		actor.ErrorEcho("Use a number, ding-dong.")
		return
	}

	actor.HP.Current = hp
	actor.Echof("You set your HP to %s%d%s.", color.AGreen, hp, color.Reset)
}

func (c *Command) executePronounChange(actor *character.Character) {
	if !requireAdmin(actor, c.Name) {
		return
	}

	switch strings.ToLower(c.Arg(0)) {
	case "1", "he", "male", "m":
		actor.SetPronouns("he", "him", "his", "his")
	case "2", "she", "female", "f":
		actor.SetPronouns("she", "her", "her", "hers")
	case "3", "plural", "t":
		actor.SetPronouns("they", "them", "their", "theirs")
	case "4", "neuter", "genderless", "n", "g":
		actor.SetPronouns("it", "it", "its", "its")
	default:
		actor.ErrorEcho("Please choose from the following values:\n  1, 2, 3, 4\n  he, she, plural, neuter\n  male, female, genderless\n  m, f, t, n/g")
		return
	}

	actor.Echof("Your pronouns have been set to %s.", actor.Pronouns())
}
