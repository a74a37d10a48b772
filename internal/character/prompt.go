package character

import (
	"strconv"
	"strings"

	"github.com/blackbirdsmud/blackbirds/internal/color"
	"github.com/blackbirdsmud/blackbirds/internal/display"
)

// Prompt renders the status line. It is a pure function of stat state
// and location kind: normal play gets the compact stat dashboard, a
// generation room gets a bare divider.
func (c *Character) Prompt() string {
	if c.InChargen() {
		return color.ChargenBar + strings.Repeat("-", display.Width) + color.Reset
	}

	var b strings.Builder
	for _, seg := range []struct {
		label string
		stat  Stat
	}{
		{"HP", c.HP},
		{"EN", c.EN},
		{"SC", c.SC},
	} {
		b.WriteString(renderStat(seg.label, seg.stat))
	}
	b.WriteString(color.AGrey + "-" + color.Reset + " ")
	return b.String()
}

// renderStat formats one stat segment: grey label, cyan separator,
// dimmed zero padding to three digits, then the value colored by the
// ramp tier.
func renderStat(label string, s Stat) string {
	value := strconv.Itoa(s.Current)
	pad := ""
	if len(value) < 3 {
		pad = strings.Repeat("0", 3-len(value))
	}
	return color.AGrey + label + color.Reset +
		color.ACyan + "|" + color.Reset +
		color.PadDim + pad + color.Reset +
		color.Ramp(s.Current, s.Max) + value + color.Reset + " "
}
