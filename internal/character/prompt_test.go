package character

import (
	"strings"
	"testing"

	"github.com/blackbirdsmud/blackbirds/internal/color"
	"github.com/blackbirdsmud/blackbirds/internal/world"
)

func TestPromptStatSegment(t *testing.T) {
	c := New("Vex")
	c.HP = Stat{Current: 15, Max: 20}
	c.SetLocation(world.NewRoom("square", "The Square", "", world.KindStandard))

	p := c.Prompt()

	// 15/20 renders zero-padded to three digits with the 75% ramp tier.
	want := color.PadDim + "0" + color.Reset + color.ADarkGreen + "15" + color.Reset
	if !strings.Contains(p, want) {
		t.Errorf("prompt missing padded ramped HP segment:\n%q", p)
	}
	for _, label := range []string{"HP", "EN", "SC"} {
		if !strings.Contains(p, label) {
			t.Errorf("prompt missing %s label: %q", label, p)
		}
	}
	if !strings.HasSuffix(p, color.AGrey+"-"+color.Reset+" ") {
		t.Errorf("prompt missing trailing dash: %q", p)
	}
}

func TestPromptPadding(t *testing.T) {
	tests := []struct {
		current int
		pad     string
	}{
		{5, "00"},
		{15, "0"},
		{150, ""},
	}

	for _, tt := range tests {
		got := renderStat("HP", Stat{Current: tt.current, Max: 200})
		wantPad := color.PadDim + tt.pad + color.Reset
		if !strings.Contains(got, wantPad) {
			t.Errorf("renderStat(%d) = %q, want padding %q", tt.current, got, tt.pad)
		}
	}
}

func TestPromptInChargen(t *testing.T) {
	c := New("Vex")
	c.SetLocation(world.NewRoom("chargen", "Nowhere", "", world.KindChargen))

	p := c.Prompt()
	want := color.ChargenBar + strings.Repeat("-", 80) + color.Reset
	if p != want {
		t.Errorf("chargen prompt = %q, want bare divider", p)
	}
}

func TestPromptIsPure(t *testing.T) {
	c := New("Vex")
	c.SetLocation(world.NewRoom("square", "The Square", "", world.KindStandard))

	if c.Prompt() != c.Prompt() {
		t.Error("prompt should be byte-for-byte reproducible from the same state")
	}
}

func TestPromptFullStat(t *testing.T) {
	c := New("Vex")
	c.SetLocation(world.NewRoom("square", "The Square", "", world.KindStandard))

	// HP starts at 20/20, full ramp tier.
	p := c.Prompt()
	want := color.AGreen + "20" + color.Reset
	if !strings.Contains(p, want) {
		t.Errorf("prompt missing full-tier HP value: %q", p)
	}
}
