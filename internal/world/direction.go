package world

import "strings"

// directions maps every accepted direction token to its canonical form.
var directions = map[string]string{
	"north":     "north",
	"n":         "north",
	"south":     "south",
	"s":         "south",
	"east":      "east",
	"e":         "east",
	"west":      "west",
	"w":         "west",
	"northeast": "northeast",
	"ne":        "northeast",
	"northwest": "northwest",
	"nw":        "northwest",
	"southeast": "southeast",
	"se":        "southeast",
	"southwest": "southwest",
	"sw":        "southwest",
	"up":        "up",
	"u":         "up",
	"down":      "down",
	"d":         "down",
}

var opposites = map[string]string{
	"north":     "south",
	"south":     "north",
	"east":      "west",
	"west":      "east",
	"northeast": "southwest",
	"southwest": "northeast",
	"northwest": "southeast",
	"southeast": "northwest",
	"up":        "down",
	"down":      "up",
}

// ValidDirection normalizes a direction token to its canonical form.
// Returns the empty string for an unrecognized token.
func ValidDirection(token string) string {
	return directions[strings.ToLower(strings.TrimSpace(token))]
}

// Opposite returns the reverse of a canonical direction, used for
// arrival announcements. Unknown directions return the empty string.
func Opposite(direction string) string {
	return opposites[direction]
}
