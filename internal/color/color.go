// Package color defines the ANSI escape table and the stat color ramp.
package color

import "fmt"

// Control sequences.
const (
	Beep   = "\x07"
	Escape = "\x1b"
	Reset  = "\x1b[0m"

	Underline = "\x1b[4m"
	Hilite    = "\x1b[1m"
	Unhilite  = "\x1b[22m"
	Blink     = "\x1b[5m"
	Inverse   = "\x1b[7m"
)

// Foreground colors.
const (
	Black   = "\x1b[30m"
	Red     = "\x1b[31m"
	Green   = "\x1b[32m"
	Yellow  = "\x1b[33m"
	Blue    = "\x1b[34m"
	Magenta = "\x1b[35m"
	Cyan    = "\x1b[36m"
	White   = "\x1b[37m"
)

// Background colors.
const (
	BackBlack   = "\x1b[40m"
	BackRed     = "\x1b[41m"
	BackGreen   = "\x1b[42m"
	BackYellow  = "\x1b[43m"
	BackBlue    = "\x1b[44m"
	BackMagenta = "\x1b[45m"
	BackCyan    = "\x1b[46m"
	BackWhite   = "\x1b[47m"
)

// Game palette. Bright variants combine the hilite attribute with a base
// color; dark variants use the unhilite attribute.
const (
	AGrey        = Unhilite + White
	AWhite       = Hilite + White
	ABlue        = Hilite + Blue
	ACyan        = Hilite + Cyan
	ARed         = Hilite + Red
	AMagenta     = Hilite + Magenta
	AGreen       = Hilite + Green
	AYellow      = Hilite + Yellow
	ADarkGrey    = Hilite + Black
	ADarkBlue    = Unhilite + Blue
	ADarkCyan    = Unhilite + Cyan
	ADarkRed     = Unhilite + Red
	ADarkMagenta = Unhilite + Magenta
	ADarkGreen   = Unhilite + Green
	ADarkYellow  = Unhilite + Yellow
	ABrown       = Unhilite + Yellow
)

// Xterm returns the escape sequence for an xterm-256 foreground color.
func Xterm(n int) string {
	return fmt.Sprintf("\x1b[38;5;%dm", n)
}

// XtermRGB returns the escape sequence for the xterm-256 color cube entry
// at the given red/green/blue levels, each in [0,5].
func XtermRGB(r, g, b int) string {
	return Xterm(16 + 36*r + 6*g + b)
}

// Derived palette entries used by the prompt and menus.
var (
	// PadDim is the dim blue used for zero-padding in stat readouts.
	PadDim = XtermRGB(0, 1, 3)
	// ChargenBar is the teal used for the chargen divider line.
	ChargenBar = XtermRGB(0, 3, 5)
	// FieldName is the pink used for editable field names in menus.
	FieldName = XtermRGB(5, 1, 3)
)

// Ramp maps a current/max stat pair to a color tier. The ratio saturates
// at the domain bounds: values above max render as full, values at or
// below zero as empty.
func Ramp(current, max int) string {
	if max <= 0 {
		return ADarkRed
	}
	ratio := float64(current) / float64(max)
	switch {
	case ratio >= 1:
		return AGreen
	case ratio >= 0.75:
		return ADarkGreen
	case ratio >= 0.5:
		return AYellow
	case ratio >= 0.25:
		return ADarkYellow
	case ratio > 0:
		return ARed
	default:
		return ADarkRed
	}
}
