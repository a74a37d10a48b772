package character

import (
	"strings"
	"testing"

	"github.com/blackbirdsmud/blackbirds/internal/species"
	"github.com/blackbirdsmud/blackbirds/internal/world"
)

func TestNewDefaults(t *testing.T) {
	c := New("Vex")

	if c.Name != "Vex" {
		t.Errorf("Name = %q, want %q", c.Name, "Vex")
	}
	if c.Age != 18 {
		t.Errorf("Age = %d, want 18", c.Age)
	}
	if c.Height != 172 {
		t.Errorf("Height = %d, want 172", c.Height)
	}
	if c.HP != (Stat{Current: 20, Max: 20}) {
		t.Errorf("HP = %+v, want {20 20}", c.HP)
	}
	if c.EN != (Stat{Current: 0, Max: 100}) {
		t.Errorf("EN = %+v, want {0 100}", c.EN)
	}
	if c.SC != (Stat{Current: 0, Max: 3}) {
		t.Errorf("SC = %+v, want {0 3}", c.SC)
	}
	if c.XP != (Stat{Current: 0, Max: 1000}) {
		t.Errorf("XP = %+v, want {0 1000}", c.XP)
	}
	if c.Species != species.None {
		t.Errorf("Species = %q, want none", c.Species)
	}
	if c.Prone != Standing {
		t.Errorf("Prone = %d, want standing", c.Prone)
	}
	if !c.HasBreasts || !c.CanCarryChild || c.HasFourArms {
		t.Errorf("anatomy defaults wrong: breasts=%v carry=%v fourarms=%v",
			c.HasBreasts, c.CanCarryChild, c.HasFourArms)
	}
	if got := c.Pronouns(); got != "she, her, her, hers" {
		t.Errorf("default pronouns = %q", got)
	}
}

func TestRename(t *testing.T) {
	room := world.NewRoom("chargen", "A Quiet Nowhere", "", world.KindChargen)
	c := New("Vex")
	c.SetLocation(room)
	room.OnArrive(c.Name, nil)

	var hookOld, hookNew string
	c.SetRenameHook(func(oldName, newName string) {
		hookOld, hookNew = oldName, newName
	})

	c.Rename("Marrow")

	if c.Name != "Marrow" {
		t.Errorf("Name = %q, want Marrow", c.Name)
	}
	if hookOld != "Vex" || hookNew != "Marrow" {
		t.Errorf("rename hook got %q -> %q, want Vex -> Marrow", hookOld, hookNew)
	}

	occupants := room.Occupants()
	if len(occupants) != 1 || occupants[0] != "Marrow" {
		t.Errorf("occupants after rename = %v, want [Marrow]", occupants)
	}
}

func TestRenameSameNameNoHook(t *testing.T) {
	c := New("Vex")
	fired := false
	c.SetRenameHook(func(oldName, newName string) { fired = true })

	c.Rename("Vex")

	if fired {
		t.Error("rename hook fired for unchanged name")
	}
}

func TestSetPronounsAtomic(t *testing.T) {
	c := New("Vex")
	c.SetPronouns("he", "him", "his", "his")
	c.SetPronouns("she", "her", "her", "hers")

	got := [4]string{c.They(), c.Them(), c.Their(), c.Theirs()}
	want := [4]string{"she", "her", "her", "hers"}
	if got != want {
		t.Errorf("pronouns = %v, want %v", got, want)
	}
}

func TestSpeciesName(t *testing.T) {
	c := New("Vex")
	if got := c.SpeciesName(); got != "Unknown" {
		t.Errorf("unset species name = %q, want Unknown", got)
	}

	c.Species = species.Luum
	if got := c.SpeciesName(); got != "Luum" {
		t.Errorf("species name = %q, want Luum", got)
	}
}

func TestCanMove(t *testing.T) {
	c := New("Vex")

	if ok, _ := c.CanMove(); !ok {
		t.Error("standing character should be able to move")
	}

	c.Prone = Seated
	ok, reason := c.CanMove()
	if ok {
		t.Error("seated character should not be able to move")
	}
	if reason != "You'll need to get up, first." {
		t.Errorf("reason = %q", reason)
	}

	c.Prone = Lying
	if ok, _ := c.CanMove(); ok {
		t.Error("lying character should not be able to move")
	}
}

func TestUpdateClampsStats(t *testing.T) {
	c := New("Vex")
	c.HP.Current = 35
	c.EN.Current = -4
	c.Update()

	if c.HP.Current != 20 {
		t.Errorf("HP.Current = %d, want clamped to 20", c.HP.Current)
	}
	if c.EN.Current != 0 {
		t.Errorf("EN.Current = %d, want clamped to 0", c.EN.Current)
	}
}

func TestUpdateReconcilesAnatomy(t *testing.T) {
	c := New("Vex")
	c.Species = species.Luum // cannot reproduce, cannot be four-armed
	c.CanCarryChild = true
	c.HasFourArms = true
	c.Update()

	if c.CanCarryChild {
		t.Error("Luum should not be able to carry a child after update")
	}
	if c.HasFourArms {
		t.Error("Luum should not have four arms after update")
	}

	c2 := New("Krell")
	c2.Species = species.Sacrilite // four-arm capable
	c2.HasFourArms = true
	c2.Update()
	if !c2.HasFourArms {
		t.Error("Sacrilite four arms should survive update")
	}
}

func TestInChargen(t *testing.T) {
	c := New("Vex")
	if c.InChargen() {
		t.Error("character with no location should not be in chargen")
	}

	c.SetLocation(world.NewRoom("chargen", "Nowhere", "", world.KindChargen))
	if !c.InChargen() {
		t.Error("character in a chargen room should be in chargen")
	}

	c.SetLocation(world.NewRoom("square", "Square", "", world.KindStandard))
	if c.InChargen() {
		t.Error("character in a standard room should not be in chargen")
	}
}

func TestReturnAppearance(t *testing.T) {
	c := New("Vex")
	c.Surname = "Harrow"
	c.Species = species.Human
	c.Description = "A wiry courier with ash-grey eyes."

	looker := New("Marrow")
	got := c.ReturnAppearance(looker)

	if !strings.Contains(got, "Vex Harrow") {
		t.Errorf("appearance missing full name: %q", got)
	}
	if !strings.Contains(got, "a Human") {
		t.Errorf("appearance missing species article: %q", got)
	}
	if !strings.Contains(got, "ash-grey eyes") {
		t.Errorf("appearance missing description: %q", got)
	}

	if c.ReturnAppearance(nil) != "" {
		t.Error("appearance with nil looker should be empty")
	}
}

func TestFullName(t *testing.T) {
	c := New("Vex")
	if c.FullName() != "Vex" {
		t.Errorf("FullName = %q", c.FullName())
	}
	c.Surname = "Harrow"
	if c.FullName() != "Vex Harrow" {
		t.Errorf("FullName = %q", c.FullName())
	}
}
