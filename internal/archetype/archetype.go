// Package archetype defines the closed set of character archetypes,
// orthogonal to species.
package archetype

import (
	"fmt"
	"strings"
)

// Archetype identifies a character's narrative role.
type Archetype string

const (
	// NoneArchetype marks a character with no archetype assigned.
	NoneArchetype Archetype = ""
	Blackbird     Archetype = "blackbird"
	Citizen       Archetype = "citizen"
	Privileged    Archetype = "privileged"
	Survivalist   Archetype = "survivalist"
)

var definitions = map[Archetype]string{
	Blackbird:   "Blackbird",
	Citizen:     "Citizen",
	Privileged:  "Privileged",
	Survivalist: "Survivalist",
}

// IsValid returns true if the archetype is a known archetype.
func (a Archetype) IsValid() bool {
	_, exists := definitions[a]
	return exists
}

// String returns the display name of the archetype, or "None" when
// unassigned.
func (a Archetype) String() string {
	if name, exists := definitions[a]; exists {
		return name
	}
	return "None"
}

// Parse resolves an input string to an Archetype, case-insensitively.
func Parse(input string) (Archetype, error) {
	normalized := Archetype(strings.ToLower(strings.TrimSpace(input)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return NoneArchetype, fmt.Errorf("unknown archetype: %s", input)
}

// All returns the archetypes in presentation order.
func All() []Archetype {
	return []Archetype{Blackbird, Citizen, Privileged, Survivalist}
}
