// Package action turns a matched rule's resolved steps into the
// literal synthetic event.Action sequence a sink writes: each output
// chord is framed by the modifier press/restore dance spec §8's
// scenarios require, unconditionally, even when no modifier state
// needs to change.
package action

import (
	"sort"

	"github.com/Danondso/xremap-core/internal/event"
	"github.com/Danondso/xremap-core/internal/keymap"
	"github.com/Danondso/xremap-core/internal/modifier"
)

// Generator produces the outbound action sequence for a matched
// rule's step list. It is stateless: every call is a self-contained
// synthetic tap, not a running remap of a held key. Suppressed
// actions never reach Generate — the handler swallows them before
// calling in (spec §4.4), forwarding the triggering key's later
// release verbatim instead.
type Generator struct{}

// NewGenerator returns a Generator. It carries no state.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the action list for steps given the modifier state
// held at match time (the triggering key itself excluded — it was
// consumed by the match, not left as background context).
func (g *Generator) Generate(steps []keymap.Step, held *modifier.State) []event.Action {
	var out []event.Action
	for _, step := range steps {
		switch step.Kind {
		case keymap.StepChord:
			out = append(out, g.chord(step.Chord, held)...)
		case keymap.StepLaunch:
			out = append(out, event.Launch(step.Launch))
		}
	}
	return out
}

// chord frames one output chord with the modifier dance: press the
// chord's required-but-not-held modifiers, release held modifiers the
// chord doesn't need, tap the chord's own key, an unconditional sync
// delay, re-press the released modifiers, another delay, then release
// the modifiers pressed at the start. The two delays stand even when
// both lists are empty (spec §8) — they mark the EV_SYN boundaries a
// real keyboard driver would emit around a physical tap.
func (g *Generator) chord(c keymap.Chord, held *modifier.State) []event.Action {
	seenClass := make(map[modifier.Class]bool, len(c.Modifiers))
	var toPress []uint16
	for _, m := range c.Modifiers {
		if seenClass[m.Class] {
			continue
		}
		seenClass[m.Class] = true
		if !held.Holds(m.Class, m.Side) {
			toPress = append(toPress, modifier.CodeFor(m.Class, m.Side))
		}
	}

	var toRelease []uint16
	for _, code := range held.HeldCodes() {
		key, ok := modifier.Lookup(code)
		if ok && !seenClass[key.Class] {
			toRelease = append(toRelease, code)
		}
	}
	sort.Slice(toRelease, func(i, j int) bool { return toRelease[i] < toRelease[j] })

	var out []event.Action
	for _, code := range toPress {
		out = append(out, event.KeyAction(code, event.Press))
	}
	for _, code := range toRelease {
		out = append(out, event.KeyAction(code, event.Release))
	}
	out = append(out, event.KeyAction(c.Key, event.Press))
	out = append(out, event.KeyAction(c.Key, event.Release))
	out = append(out, event.Delay(0))
	for _, code := range toRelease {
		out = append(out, event.KeyAction(code, event.Press))
	}
	out = append(out, event.Delay(0))
	for _, code := range toPress {
		out = append(out, event.KeyAction(code, event.Release))
	}
	return out
}
