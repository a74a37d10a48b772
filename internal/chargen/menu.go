// Package chargen implements the character-generation dialogue: a small
// menu engine plus the node functions that populate a new character's
// species, identity, pronouns, and anatomy.
package chargen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackbirdsmud/blackbirds/internal/character"
	"github.com/blackbirdsmud/blackbirds/internal/color"
)

// DefaultKey marks the option that receives unmatched free-text input.
const DefaultKey = "_default"

// NodeFunc produces a node's display text and options for an actor.
type NodeFunc func(actor *character.Character, raw string, kwargs map[string]any) (string, []Option)

// Option is one selectable entry in a node. Options without a key are
// numbered in presentation order. Goto names the next node directly;
// Do runs an action and returns the next node's name instead.
type Option struct {
	Key    string
	Desc   string
	Goto   string
	Do     func(actor *character.Character, raw string, kwargs map[string]any) string
	Kwargs map[string]any
}

// Menu drives one actor through the generation dialogue. It owns only
// the current-node pointer; everything else lives on the character.
type Menu struct {
	actor   *character.Character
	nodes   map[string]NodeFunc
	current string
	done    bool
}

// NewMenu starts a generation dialogue at species selection.
func NewMenu(actor *character.Character, flow *Flow) *Menu {
	m := &Menu{
		actor:   actor,
		current: "chargen_base",
	}
	m.nodes = map[string]NodeFunc{
		"chargen_base":         flow.Base,
		"chargen_identity":     flow.Identity,
		"chargen_pronoun_menu": flow.PronounMenu,
		"chargen_anatomy":      flow.Anatomy,
	}
	return m
}

// Current returns the current node's name.
func (m *Menu) Current() string {
	return m.current
}

// Done reports whether the dialogue has ended.
func (m *Menu) Done() bool {
	return m.done
}

// Render returns the current node's text and option list, formatted for
// the client.
func (m *Menu) Render() string {
	node := m.nodes[m.current]
	if node == nil {
		return ""
	}
	text, options := node(m.actor, "", nil)

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n")

	number := 0
	for _, opt := range options {
		if opt.Key == DefaultKey {
			continue
		}
		label := opt.Key
		if label == "" {
			number++
			label = strconv.Itoa(number)
		}
		b.WriteString(fmt.Sprintf("\n %s%2s%s%s:%s %s", color.ACyan, label, color.Reset, color.AGrey, color.Reset, opt.Desc))
	}
	return b.String()
}

// Input dispatches one line of player input against the current node.
// Keyed options match their key case-insensitively, unkeyed options
// match their presentation number, and anything else goes to the
// node's default handler.
func (m *Menu) Input(raw string) {
	input := strings.TrimSpace(raw)

	if strings.EqualFold(input, "quit") || strings.EqualFold(input, "q") {
		m.done = true
		return
	}

	node := m.nodes[m.current]
	if node == nil {
		m.done = true
		return
	}
	_, options := node(m.actor, raw, nil)

	var fallback *Option
	number := 0
	for i := range options {
		opt := &options[i]
		if opt.Key == DefaultKey {
			fallback = opt
			continue
		}
		label := opt.Key
		if label == "" {
			number++
			label = strconv.Itoa(number)
		}
		if strings.EqualFold(input, label) {
			m.transition(opt, raw)
			return
		}
	}

	if fallback != nil {
		m.transition(fallback, raw)
		return
	}
	m.actor.ErrorEcho("Please choose one of the listed options.")
}

func (m *Menu) transition(opt *Option, raw string) {
	next := opt.Goto
	if opt.Do != nil {
		next = opt.Do(m.actor, raw, opt.Kwargs)
	}
	if next == "" {
		m.done = true
		return
	}
	if _, exists := m.nodes[next]; !exists {
		m.actor.ErrorEcho("Something went wrong with the menu. Please notify an admin.")
		return
	}
	m.current = next
}
