package character

import (
	"regexp"
	"strings"
)

// MessageOpts carries the optional parts of a templated message.
type MessageOpts struct {
	Target     *Character
	TargetMsg  string
	WitnessMsg string
}

// Template tokens:
//
//	PLAYER, PLAYER_THEY/THEM/THEIR/THEIRS  the acting character
//	TARGET, TARGET_THEY/THEM/THEIR/THEIRS  the addressed character
//	!verb   conjugated by the actor's subject pronoun
//	~verb   conjugated by the target's subject pronoun
//	+word   capitalize the following word
//
// PLAYER tokens are skipped in the self message and TARGET tokens in
// the target message, since those recipients are addressed in second
// person. Name and pronoun substitution runs before verb conjugation
// and capitalization.
var (
	actorVerbRe  = regexp.MustCompile(`!([a-zA-Z]+)`)
	targetVerbRe = regexp.MustCompile(`~([a-zA-Z]+)`)
	capitalRe    = regexp.MustCompile(`\+([a-zA-Z])`)
)

type viewpoint int

const (
	viewSelf viewpoint = iota
	viewTarget
	viewWitness
)

// Message delivers a templated message to the actor, an optional
// target, and any witnesses in the room. The self template is
// mandatory; naming a target without a target template is a no-op.
func (c *Character) Message(selfMsg string, opts MessageOpts) {
	if selfMsg == "" {
		return
	}
	if opts.Target != nil && opts.TargetMsg == "" {
		return
	}

	c.EchoPrompt(renderTemplate(selfMsg, c, opts.Target, viewSelf))

	if opts.Target != nil {
		opts.Target.EchoPrompt(renderTemplate(opts.TargetMsg, c, opts.Target, viewTarget))
	}

	if opts.WitnessMsg != "" && c.broadcast != nil && c.location != nil {
		exclude := []string{c.Name}
		if opts.Target != nil {
			exclude = append(exclude, opts.Target.Name)
		}
		c.broadcast(c.location, exclude, renderTemplate(opts.WitnessMsg, c, opts.Target, viewWitness))
	}
}

func renderTemplate(template string, actor, target *Character, view viewpoint) string {
	out := template

	// Names and pronouns first; verb conjugation depends on the already
	// resolved pronouns. Longer tokens before their prefixes.
	if view != viewSelf {
		out = strings.ReplaceAll(out, "PLAYER_THEIRS", actor.Theirs())
		out = strings.ReplaceAll(out, "PLAYER_THEIR", actor.Their())
		out = strings.ReplaceAll(out, "PLAYER_THEY", actor.They())
		out = strings.ReplaceAll(out, "PLAYER_THEM", actor.Them())
		out = strings.ReplaceAll(out, "PLAYER", actor.Name)
	}
	if target != nil && view != viewTarget {
		out = strings.ReplaceAll(out, "TARGET_THEIRS", target.Theirs())
		out = strings.ReplaceAll(out, "TARGET_THEIR", target.Their())
		out = strings.ReplaceAll(out, "TARGET_THEY", target.They())
		out = strings.ReplaceAll(out, "TARGET_THEM", target.Them())
		out = strings.ReplaceAll(out, "TARGET", target.Name)
	}

	out = actorVerbRe.ReplaceAllStringFunc(out, func(m string) string {
		return conjugate(m[1:], actor.They() == "they")
	})
	if target != nil {
		out = targetVerbRe.ReplaceAllStringFunc(out, func(m string) string {
			return conjugate(m[1:], target.They() == "they")
		})
	}

	out = capitalRe.ReplaceAllStringFunc(out, func(m string) string {
		return strings.ToUpper(m[1:])
	})

	return out
}

// conjugate returns the verb form matching a subject: the base form for
// a plural subject, third-person singular otherwise.
func conjugate(verb string, plural bool) string {
	if plural {
		return verb
	}

	switch verb {
	case "have":
		return "has"
	case "are":
		return "is"
	}

	if strings.HasSuffix(verb, "y") && len(verb) > 1 && !isVowel(verb[len(verb)-2]) {
		return verb[:len(verb)-1] + "ies"
	}
	for _, suffix := range []string{"s", "x", "z", "ch", "sh", "o"} {
		if strings.HasSuffix(verb, suffix) {
			return verb + "es"
		}
	}
	return verb + "s"
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}
