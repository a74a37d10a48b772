package command

import (
	"github.com/blackbirdsmud/blackbirds/internal/character"
)

func (c *Command) executeStand(actor *character.Character) {
	if actor.Prone == character.Standing {
		actor.ErrorEcho("You are already standing.")
		return
	}
	actor.Prone = character.Standing
	actor.Message("You get to your feet.", character.MessageOpts{
		WitnessMsg: "PLAYER !get to PLAYER_THEIR feet.",
	})
}

func (c *Command) executeSit(actor *character.Character) {
	if actor.Prone == character.Seated {
		actor.ErrorEcho("You are already sitting.")
		return
	}
	actor.Prone = character.Seated
	actor.Message("You sit down.", character.MessageOpts{
		WitnessMsg: "PLAYER !sit down.",
	})
}

func (c *Command) executeLie(actor *character.Character) {
	if actor.Prone == character.Lying {
		actor.ErrorEcho("You are already lying down.")
		return
	}
	actor.Prone = character.Lying
	actor.Message("You lie down.", character.MessageOpts{
		WitnessMsg: "PLAYER !lie down.",
	})
}
