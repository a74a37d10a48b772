// Package species defines the closed set of playable species and their
// capability flags.
package species

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Species identifies a playable species.
type Species string

const (
	// None marks a character that has not completed generation.
	None      Species = ""
	Human     Species = "human"
	Carven    Species = "carven"
	Sacrilite Species = "sacrilite"
	Luum      Species = "luum"
	Idol      Species = "idol"
)

// IsValid returns true if the species is a known species.
func (s Species) IsValid() bool {
	_, exists := globalConfig.Species[string(s)]
	return exists
}

// String returns the display name of the species.
func (s Species) String() string {
	if def, exists := globalConfig.Species[string(s)]; exists {
		return def.Name
	}
	return "Unknown"
}

// Definition carries the per-species capability flags, age bounds, and
// chargen documentation text.
type Definition struct {
	Name string `yaml:"name"`

	// Aliases are alternate or plural spellings accepted on input.
	Aliases []string `yaml:"aliases"`

	// UnusualNames permits letters, digits, hyphens, periods, and
	// apostrophes in names instead of plain letters.
	UnusualNames bool `yaml:"unusual_names"`

	// RequiresSurname forbids clearing the surname.
	RequiresSurname bool `yaml:"requires_surname"`

	// CanReproduce gates the pregnancy anatomy option.
	CanReproduce bool `yaml:"can_reproduce"`

	// CanBeFourArmed gates the four-arm anatomy option.
	CanBeFourArmed bool `yaml:"can_be_fourarmed"`

	// Restricted species require an admin account to select.
	Restricted bool `yaml:"restricted"`

	MinAge int `yaml:"min_age"`
	MaxAge int `yaml:"max_age"`

	// Documentation is the blurb shown when a player asks about the
	// species during generation.
	Documentation string `yaml:"documentation"`
}

// Config represents the structure of the species YAML file.
type Config struct {
	Species map[string]*Definition `yaml:"species"`
}

var globalConfig = &Config{Species: make(map[string]*Definition)}

// LoadFromYAML loads species definitions from a YAML file and installs
// them as the active set.
func LoadFromYAML(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read species file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse species YAML: %w", err)
	}

	globalConfig = &config
	return &config, nil
}

// SetGlobalConfig installs a loaded species configuration.
func SetGlobalConfig(config *Config) {
	if config != nil {
		globalConfig = config
	}
}

// Parse resolves an input string to a Species, accepting display names
// and aliases (including plural forms), case-insensitively.
func Parse(input string) (Species, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return None, fmt.Errorf("empty species name")
	}
	if _, exists := globalConfig.Species[normalized]; exists {
		return Species(normalized), nil
	}
	for id, def := range globalConfig.Species {
		for _, alias := range def.Aliases {
			if normalized == strings.ToLower(alias) {
				return Species(id), nil
			}
		}
	}
	return None, fmt.Errorf("unknown species: %s", input)
}

// All returns the valid species in presentation order.
func All() []Species {
	order := []string{"human", "carven", "sacrilite", "luum", "idol"}
	var out []Species
	for _, id := range order {
		if _, exists := globalConfig.Species[id]; exists {
			out = append(out, Species(id))
		}
	}
	return out
}

// GetDefinition returns the definition for a species, or nil for an
// unknown one.
func GetDefinition(s Species) *Definition {
	return globalConfig.Species[string(s)]
}

// Validate checks every loaded definition for internally consistent
// bounds. The admin update command runs this after content edits.
func Validate() error {
	for id, def := range globalConfig.Species {
		if def.Name == "" {
			return fmt.Errorf("species %q has no display name", id)
		}
		if def.MinAge <= 0 || def.MaxAge < def.MinAge {
			return fmt.Errorf("species %q has invalid age bounds [%d, %d]", id, def.MinAge, def.MaxAge)
		}
	}
	return nil
}

// init installs the built-in species set so the game works without a
// species file on disk.
func init() {
	globalConfig = &Config{
		Species: map[string]*Definition{
			"human": {
				Name:            "Human",
				Aliases:         []string{"humans"},
				UnusualNames:    false,
				RequiresSurname: true,
				CanReproduce:    true,
				CanBeFourArmed:  false,
				MinAge:          18,
				MaxAge:          100,
				Documentation: "Humans endure. Centuries after the collapse they remain the " +
					"city's backbone: adaptable, short-lived, and stubborn enough to " +
					"rebuild atop their own ruins. Humans carry family names and keep " +
					"them jealously.",
			},
			"carven": {
				Name:            "Carven",
				Aliases:         []string{"carvens"},
				UnusualNames:    false,
				RequiresSurname: false,
				CanReproduce:    true,
				CanBeFourArmed:  false,
				MinAge:          18,
				MaxAge:          90,
				Documentation: "The Carven were cut from humanity, reshaped for labor and war " +
					"by hands that no longer exist. Feline-tailed and sharp-toothed, they " +
					"wear plain names and owe no house a surname.",
			},
			"sacrilite": {
				Name:            "Sacrilite",
				Aliases:         []string{"sacrilites"},
				UnusualNames:    false,
				RequiresSurname: false,
				CanReproduce:    true,
				CanBeFourArmed:  true,
				MinAge:          18,
				MaxAge:          120,
				Documentation: "Chitin-plated and many-limbed, Sacrilites descend from a " +
					"hive that broke apart long ago. Some hatch with four arms; all " +
					"carry an exoskeleton that thickens with age.",
			},
			"luum": {
				Name:            "Luum",
				Aliases:         []string{"luums", "loom", "looms"},
				UnusualNames:    true,
				RequiresSurname: false,
				CanReproduce:    false,
				CanBeFourArmed:  false,
				MinAge:          25,
				MaxAge:          400,
				Documentation: "The Luum drifted down from somewhere colder. Bioluminescent " +
					"and long-lived, they do not bear children and their names follow no " +
					"human convention.",
			},
			"idol": {
				Name:            "Idol",
				Aliases:         []string{"idols"},
				UnusualNames:    true,
				RequiresSurname: false,
				CanReproduce:    false,
				CanBeFourArmed:  false,
				Restricted:      true,
				MinAge:          1,
				MaxAge:          1000,
				Documentation: "Idols are manufactured divinity: engineered figureheads " +
					"built to be worshipped. They are not currently available for play.",
			},
		},
	}
}
