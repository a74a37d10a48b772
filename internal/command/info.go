package command

import (
	"fmt"
	"strings"

	"github.com/blackbirdsmud/blackbirds/internal/character"
	"github.com/blackbirdsmud/blackbirds/internal/color"
	"github.com/blackbirdsmud/blackbirds/internal/display"
)

// scoreSheet renders the character's stat summary.
func (c *Command) scoreSheet(actor *character.Character) string {
	var b strings.Builder

	field := func(name, value string) {
		b.WriteString(fmt.Sprintf("\n %s%s%s %s|%s %s",
			color.FieldName, display.JRight(name, 10), color.Reset,
			color.ACyan, color.Reset, value))
	}
	stat := func(s character.Stat) string {
		return fmt.Sprintf("%s%d%s / %d", color.Ramp(s.Current, s.Max), s.Current, color.Reset, s.Max)
	}

	b.WriteString(display.Header(actor.FullName()))
	field("species", actor.SpeciesName())
	field("archetype", actor.ArchetypeName())
	field("age", fmt.Sprintf("%d", actor.Age))
	field("pronouns", actor.Pronouns())
	field("hp", stat(actor.HP))
	field("endurance", stat(actor.EN))
	field("scars", stat(actor.SC))
	field("exp", stat(actor.XP))
	field("money", fmt.Sprintf("%d", actor.Money))
	b.WriteString("\n" + display.Divider())

	return b.String()
}

func (c *Command) executeWho(actor *character.Character, srv ServerInterface) {
	online := srv.OnlineCharacters()

	actor.Echo(display.Header("Online"))
	for _, ch := range online {
		actor.Echo(display.Bullet(ch.FullName()))
	}
	actor.Echo(display.Divider())
	actor.Echof("%d connected.", len(online))
}
