// Package display provides small text-layout helpers shared by menus,
// appearance rendering, and admin output.
package display

import (
	"fmt"
	"strings"

	"github.com/blackbirdsmud/blackbirds/internal/color"
)

// Width is the assumed client line width.
const Width = 80

// Divider returns a full-width divider line.
func Divider() string {
	return color.ADarkCyan + strings.Repeat("-", Width) + color.Reset
}

// Header returns a divider with a centered title. An empty title yields
// a plain divider.
func Header(title string) string {
	if title == "" {
		return Divider()
	}
	label := " " + title + " "
	pad := Width - len(label)
	if pad < 2 {
		return color.ADarkCyan + label + color.Reset
	}
	left := pad / 2
	right := pad - left
	return color.ADarkCyan + strings.Repeat("-", left) + color.Reset +
		color.AWhite + label + color.Reset +
		color.ADarkCyan + strings.Repeat("-", right) + color.Reset
}

// Bullet formats a single list entry.
func Bullet(s string) string {
	return fmt.Sprintf(" %s-%s %s", color.ACyan, color.Reset, s)
}

// Notify formats a system notification from a named source.
func Notify(source, message string) string {
	return fmt.Sprintf("%s[%s]%s %s", color.AMagenta, source, color.Reset, message)
}

// JLeft pads s with spaces on the right to the given width.
func JLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// JRight pads s with spaces on the left to the given width.
func JRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// Article prefixes a word with its indefinite article.
func Article(word string) string {
	if word == "" {
		return word
	}
	switch word[0] {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return "an " + word
	}
	return "a " + word
}
