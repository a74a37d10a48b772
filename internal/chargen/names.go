package chargen

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	minNameLength = 3
	maxNameLength = 24
)

var (
	plainNameRe   = regexp.MustCompile(`^[a-zA-Z]+$`)
	unusualNameRe = regexp.MustCompile(`^[a-zA-Z0-9\-.']+$`)
	anyLetterRe   = regexp.MustCompile(`[a-zA-Z]`)
)

// NameChecker answers whether a character name is already in use. The
// database satisfies this.
type NameChecker interface {
	NameTaken(name string) bool
}

// ValidateName checks a proposed name or surname. Plain-name species
// allow only letters; unusual-name species also allow digits, hyphens,
// periods, and apostrophes, with a leading letter and at least one
// letter overall. Returns ok plus a player-facing rejection message.
func ValidateName(newName string, unusualNames bool, names NameChecker) (bool, string) {
	if names != nil && names.NameTaken(newName) {
		return false, fmt.Sprintf("The name %s is already taken. Please use another.", newName)
	}

	if len(newName) < minNameLength || len(newName) > maxNameLength {
		return false, fmt.Sprintf("Your name must be no fewer than %d and no greater than %d characters. You attempted to use %d character(s).",
			minNameLength, maxNameLength, len(newName))
	}

	if plainNameRe.MatchString(newName) {
		return true, ""
	}

	if !unusualNames {
		return false, "For your name, you may only use the characters A-Z."
	}

	if strings.TrimSpace(newName) == "" {
		return false, "As funny as it would be, I'm afraid you can't have a name consisting only of spaces."
	}

	if !unusualNameRe.MatchString(newName) {
		return false, "You attempted to use one or more invalid characters in your name. You may use only letters, numbers, dashes, periods, and apostrophes."
	}

	if !anyLetterRe.MatchString(newName) {
		return false, "Your name must include at least one letter."
	}

	if !unicode.IsLetter(rune(newName[0])) {
		return false, "The first character of your name must be a letter."
	}

	return true, ""
}

// CapitalizePlain uppercases the first letter and lowercases the rest.
// Used for plain-name species.
func CapitalizePlain(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

// CapitalizeSmart uppercases the first letter and leaves the rest
// alone, preserving embedded capitals like "McGee".
func CapitalizeSmart(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
