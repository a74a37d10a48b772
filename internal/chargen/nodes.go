package chargen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackbirdsmud/blackbirds/internal/character"
	"github.com/blackbirdsmud/blackbirds/internal/color"
	"github.com/blackbirdsmud/blackbirds/internal/display"
	"github.com/blackbirdsmud/blackbirds/internal/species"
)

// Flow holds the collaborators the node functions need.
type Flow struct {
	names NameChecker
}

// NewFlow builds the node set around a name-uniqueness checker.
func NewFlow(names NameChecker) *Flow {
	return &Flow{names: names}
}

// Base is the species-selection node.
func (f *Flow) Base(actor *character.Character, raw string, kwargs map[string]any) (string, []Option) {
	text := "To begin, choose the species of your character. Enter the name of the species to read more about them. Enter the number to select the one you want."

	options := []Option{
		{Desc: "Human", Do: f.selectSpecies, Kwargs: map[string]any{"species": species.Human}},
		{Desc: "Carven", Do: f.selectSpecies, Kwargs: map[string]any{"species": species.Carven}},
		{Desc: "Sacrilite", Do: f.selectSpecies, Kwargs: map[string]any{"species": species.Sacrilite}},
		{Desc: "Luum", Do: f.selectSpecies, Kwargs: map[string]any{"species": species.Luum}},
		{Desc: color.AGrey + "Idol" + color.Reset, Do: f.selectSpecies, Kwargs: map[string]any{"species": species.Idol}},
		{Key: DefaultKey, Do: f.speciesInfo},
	}
	return text, options
}

// speciesInfo shows a species' documentation blurb when the player
// types its name (or an alias) instead of picking a number. State is
// never mutated here.
func (f *Flow) speciesInfo(actor *character.Character, raw string, kwargs map[string]any) string {
	s, err := species.Parse(raw)
	if err == nil {
		if def := species.GetDefinition(s); def != nil {
			actor.Echo(def.Documentation + "\n")
		}
	}
	return "chargen_base"
}

func (f *Flow) selectSpecies(actor *character.Character, raw string, kwargs map[string]any) string {
	s, ok := kwargs["species"].(species.Species)
	if !ok {
		actor.ErrorEcho("Something went wrong with species selection! Please notify the admin.")
		return "chargen_base"
	}

	def := species.GetDefinition(s)
	if def == nil {
		actor.ErrorEcho("Something went wrong with species selection! Please notify the admin.")
		return "chargen_base"
	}

	if def.Restricted && !actor.IsAdmin {
		actor.ErrorEcho("The Idol species is unfinished, and currently unavailable. Please make another selection.")
		return "chargen_base"
	}

	actor.Species = s
	return "chargen_identity"
}

// Identity is the name/surname/age/pronoun node. Field edits arrive as
// free text and go through the default handler.
func (f *Flow) Identity(actor *character.Character, raw string, kwargs map[string]any) (string, []Option) {
	text := "Next, we'll ask you to fill out some identifying information about your character. It's here that you'll choose a thematically appropriate name, an age, as well as some other details about yourself.\n\nTo change a field, simply type in the name of a " +
		color.FieldName + "field" + color.Reset +
		", along with the desired info. Type in a " +
		color.FieldName + "field" + color.Reset +
		" by itself to see what information it will accept. This may change based on your chosen species.\n"

	field := func(name, value string) string {
		return fmt.Sprintf("\n %s%s%s %s|%s %s",
			color.FieldName, display.JRight(name, 8), color.Reset,
			color.ACyan, color.Reset, value)
	}
	text += field("name", actor.Name)
	text += field("surname", actor.Surname)
	text += field("age", strconv.Itoa(actor.Age))
	text += field("pronouns", actor.Pronouns())

	options := []Option{
		{Key: "n", Desc: "Continue to anatomical details.", Goto: "chargen_anatomy"},
		{Key: "r", Desc: "Return to species selection.", Goto: "chargen_base"},
		{Key: DefaultKey, Do: f.parseIdentity},
	}
	return text, options
}

func (f *Flow) parseIdentity(actor *character.Character, raw string, kwargs map[string]any) string {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return "chargen_identity"
	}

	subCmd := strings.ToLower(fields[0])
	args := strings.Join(fields[1:], " ")
	noArgs := len(fields) <= 1

	switch subCmd {
	case "name":
		f.nameSelection(actor, args, noArgs)
	case "surname", "lastname":
		f.surnameSelection(actor, args, noArgs)
	case "age":
		f.ageSelection(actor, args)
	case "pronoun", "pronouns":
		return "chargen_pronoun_menu"
	default:
		actor.ErrorEchof("There is no \"%s\" field to set here.", subCmd)
	}

	return "chargen_identity"
}

func (f *Flow) nameSelection(actor *character.Character, newName string, noArgs bool) {
	def := species.GetDefinition(actor.Species)
	if def == nil {
		actor.ErrorEcho("Choose a species before setting your name.")
		return
	}

	if noArgs {
		actor.ErrorEcho("You must specify a name. This can be from 3 to 24 characters.")
		f.echoNameRules(actor, def, "name")
		return
	}

	newName = strings.TrimSpace(newName)

	valid, errMsg := ValidateName(newName, def.UnusualNames, f.names)
	if !valid {
		actor.ErrorEcho(errMsg)
		return
	}

	if !def.UnusualNames {
		newName = CapitalizePlain(newName)
	}

	if strings.EqualFold(newName, "clear") {
		actor.ErrorEcho("Sorry, you will have to have a name!")
		return
	}
	actor.Rename(newName)
}

func (f *Flow) surnameSelection(actor *character.Character, newName string, noArgs bool) {
	def := species.GetDefinition(actor.Species)
	if def == nil {
		actor.ErrorEcho("Choose a species before setting your surname.")
		return
	}

	if noArgs {
		actor.ErrorEcho("You must specify a surname. This can be from 3 to 24 characters.")
		f.echoNameRules(actor, def, "surname")
		if !def.RequiresSurname {
			actor.Echo("\n" + display.Bullet("You may opt not to have a surname by entering "+color.ARed+"surname clear"+color.Reset+"."))
		}
		return
	}

	newName = strings.TrimSpace(newName)

	if strings.EqualFold(newName, "clear") {
		if def.RequiresSurname {
			actor.ErrorEchof("%ss keep their family names. You will have to have a surname.", def.Name)
			return
		}
		actor.Surname = ""
		return
	}

	valid, errMsg := ValidateName(newName, def.UnusualNames, f.names)
	if !valid {
		actor.ErrorEcho(errMsg)
		return
	}

	if !def.UnusualNames {
		// No lowercasing here, to keep names like McGee intact.
		newName = CapitalizeSmart(newName)
	}
	actor.Surname = newName
}

func (f *Flow) echoNameRules(actor *character.Character, def *species.Definition, what string) {
	if def.UnusualNames {
		actor.Echo(display.Bullet("You may use letters, numbers, dashes, periods, or apostrophes."))
		actor.Echo(display.Bullet(fmt.Sprintf("Your %s must start with a letter.", what)))
		actor.Echo(display.Bullet(fmt.Sprintf("You do not have to capitalize the first letter of your %s.", what)))
	} else {
		actor.Echo(display.Bullet("You may only use letters."))
		actor.Echo(display.Bullet(fmt.Sprintf("Your %s will be automatically capitalized, with the rest converted to lowercase.", what)))
	}
}

func (f *Flow) ageSelection(actor *character.Character, newAge string) {
	def := species.GetDefinition(actor.Species)
	if def == nil {
		actor.ErrorEcho("Choose a species before setting your age.")
		return
	}

	if newAge == "" {
		actor.ErrorEchof("You must specify an age. For your species, this can be anywhere from %d to %d.", def.MinAge, def.MaxAge)
		return
	}

	age, err := strconv.Atoi(newAge)
	if err != nil {
		actor.ErrorEcho("You must enter a number.")
		return
	}

	if age < def.MinAge {
		actor.ErrorEchof("Your character must be at least %d years of age.", def.MinAge)
		return
	}
	if age > def.MaxAge {
		actor.ErrorEchof("Your character can be no older than %d years of age.", def.MaxAge)
		return
	}

	actor.Age = age
}

// PronounMenu is the fixed pronoun-quadruple picker.
func (f *Flow) PronounMenu(actor *character.Character, raw string, kwargs map[string]any) (string, []Option) {
	text := "You may choose from the following pronouns for your character. These will affect the way your character is referred to throughout the game, as well as which pronouns appear when you are the target of emotes or combat skills.\n\nYou may change these at any time."

	options := []Option{
		{Desc: "he, him, his, his", Do: f.selectPronouns, Kwargs: map[string]any{"choice": 1}},
		{Desc: "she, her, her, hers", Do: f.selectPronouns, Kwargs: map[string]any{"choice": 2}},
		{Desc: "they, them, their, theirs", Do: f.selectPronouns, Kwargs: map[string]any{"choice": 3}},
		{Desc: "it, it, its, its", Do: f.selectPronouns, Kwargs: map[string]any{"choice": 4}},
		{Key: "r", Desc: "Return to character identity.", Goto: "chargen_identity"},
	}
	return text, options
}

func (f *Flow) selectPronouns(actor *character.Character, raw string, kwargs map[string]any) string {
	they, them, their, theirs := "they", "them", "their", "theirs"

	switch kwargs["choice"] {
	case 1:
		they, them, their, theirs = "he", "him", "his", "his"
	case 2:
		they, them, their, theirs = "she", "her", "her", "hers"
	case 3:
		they, them, their, theirs = "they", "them", "their", "theirs"
	case 4:
		they, them, their, theirs = "it", "it", "its", "its"
	}

	actor.SetPronouns(they, them, their, theirs)
	return "chargen_identity"
}

// Anatomy is the anatomy-toggle node. Which toggles appear depends on
// the selected species' capability flags.
func (f *Flow) Anatomy(actor *character.Character, raw string, kwargs map[string]any) (string, []Option) {
	text := fmt.Sprintf("Here, you'll specify certain aspects of your character's anatomy. Your choices here are dependent on your character's species, and can affect various game mechanics, from clothing slots, to ability use, to the ability to bear children. Please take care in selecting these, as none of these choices are easily altered.\n\nAs %s, %s...",
		display.Article(actor.SpeciesName()), actor.Name)

	options := []Option{
		{Desc: anatomyDisplay("has breasts.", actor.HasBreasts), Do: f.toggleAnatomy, Kwargs: map[string]any{"anatomy": "breasts"}},
	}

	def := species.GetDefinition(actor.Species)
	if def != nil && def.CanReproduce {
		options = append(options, Option{Desc: anatomyDisplay("can become pregnant.", actor.CanCarryChild), Do: f.toggleAnatomy, Kwargs: map[string]any{"anatomy": "pregnancy"}})
	}
	if def != nil && def.CanBeFourArmed {
		options = append(options, Option{Desc: anatomyDisplay("has four arms.", actor.HasFourArms), Do: f.toggleAnatomy, Kwargs: map[string]any{"anatomy": "four_arms"}})
	}

	// TODO: wire "continue" to the background/archetype step once it exists.
	options = append(options,
		Option{Key: "n", Desc: "Continue to " + color.ARed + "TBD" + color.Reset + ".", Goto: "chargen_anatomy"},
		Option{Key: "r", Desc: "Return to character identity.", Goto: "chargen_identity"},
	)
	return text, options
}

func (f *Flow) toggleAnatomy(actor *character.Character, raw string, kwargs map[string]any) string {
	switch kwargs["anatomy"] {
	case "breasts":
		actor.HasBreasts = !actor.HasBreasts
	case "pregnancy":
		actor.CanCarryChild = !actor.CanCarryChild
	case "four_arms":
		actor.HasFourArms = !actor.HasFourArms
	}
	return "chargen_anatomy"
}

func anatomyDisplay(text string, val bool) string {
	conv := color.AGrey + "No" + color.Reset
	if val {
		conv = color.AWhite + "Yes" + color.Reset
	}
	return display.JLeft(text, 32) + conv
}
