// Package handler orchestrates one inbound event at a time through
// modifier tracking, the match engine, the action generator, the
// sub-map context, and motion batching. It is the synchronous,
// single-threaded core spec §5 describes: one event in, zero or more
// actions out, no concurrency inside.
package handler

import (
	"github.com/Danondso/xremap-core/internal/action"
	"github.com/Danondso/xremap-core/internal/event"
	"github.com/Danondso/xremap-core/internal/keymap"
	"github.com/Danondso/xremap-core/internal/match"
	"github.com/Danondso/xremap-core/internal/modifier"
	"github.com/Danondso/xremap-core/internal/motion"
	"github.com/Danondso/xremap-core/internal/submap"
)

// Handler is the wired event-processing core for one input device.
type Handler struct {
	table  *keymap.Table
	engine *match.Engine
	held   *modifier.State
	sub    *submap.Context
	mot    *motion.Batcher
	gen    *action.Generator
	device string

	// swallowed tracks physical codes whose press was fully resolved
	// into a synthetic tap; their later release is dropped (spec §4.4).
	swallowed map[uint16]bool
	// suppressed tracks physical codes matched by a null/empty action;
	// their later release is forwarded verbatim, unlike swallowed.
	suppressed map[uint16]bool

	// OnMatch, when set, is notified every time a rule matches (e.g.
	// for a debug status view). It is never required for correctness.
	OnMatch func(code uint16, suppressed, installsSubmap bool)
	// OnSubmapCleared, when set, is notified whenever the active
	// sub-map falls back to top-level.
	OnSubmapCleared func()
}

// New wires a Handler around table for device, consulting wm for
// application/window predicates (wm may be nil).
func New(table *keymap.Table, wm match.Capability, device string) *Handler {
	return &Handler{
		table:      table,
		engine:     match.NewEngine(wm),
		held:       modifier.NewState(),
		sub:        submap.New(),
		mot:        motion.NewBatcher(),
		gen:        action.NewGenerator(),
		device:     device,
		swallowed:  map[uint16]bool{},
		suppressed: map[uint16]bool{},
	}
}

// HandleEvent processes one inbound event, returning the outbound
// actions (if any) it produces.
func (h *Handler) HandleEvent(ev event.Event) []event.Action {
	switch ev.Kind {
	case event.KindRelative:
		return h.handleRelative(ev)
	case event.KindKey:
		var out []event.Action
		if h.mot.Pending() {
			out = append(out, h.mot.Flush()...)
		}
		return append(out, h.handleKey(ev)...)
	default:
		var out []event.Action
		if h.mot.Pending() {
			out = append(out, h.mot.Flush()...)
		}
		return out
	}
}

// OnTimeout is invoked by the caller when a scheduled sub-map timeout
// elapses with no intervening key; it falls back to top-level.
func (h *Handler) OnTimeout() {
	h.sub.Clear()
}

// handleRelative disguise-encodes the inbound motion into a synthetic
// key code, applies any modmap rewrite to that code (modmap precedes
// everything else, spec §4.4), then runs the result through the same
// sub-map/top-level match path handlePress uses for real keys. Only
// when nothing matches does it fall back to motion batching — and
// then only if the (possibly rewritten) code is still a disguised
// motion code; a modmap rewrite onto a real key with no keymap rule of
// its own is honored as a synthetic tap of that key (spec §8 scenario
// 6), never as motion.
func (h *Handler) handleRelative(ev event.Event) []event.Action {
	disguised, ok := event.DisguiseCode(ev.Axis, ev.Delta)
	if !ok {
		h.mot.Add(ev.Axis, ev.Delta)
		return nil
	}

	code := disguised
	remapped := false
	if mapped, ok := h.table.Modmap[disguised]; ok {
		code = mapped
		remapped = true
	}

	isMod := modifier.IsModifier(code)

	var rule *keymap.Rule
	if sm := h.sub.Active(); sm != nil {
		rule = h.engine.MatchSubmap(sm, code, isMod, h.held)
		if rule == nil {
			h.sub.Clear()
			if h.OnSubmapCleared != nil {
				h.OnSubmapCleared()
			}
		}
	}
	if rule == nil {
		rule = h.engine.MatchTopLevel(h.table, code, isMod, h.held, h.device)
	}

	if rule == nil {
		if axis, sign, ok := event.UndisguiseCode(code); ok {
			if remapped {
				// The modmap retargeted this motion onto another
				// disguise code; honor the mapped axis/sign rather
				// than the original magnitude.
				h.mot.Add(axis, sign)
			} else {
				h.mot.Add(ev.Axis, ev.Delta)
			}
			return nil
		}
		// The modmap retargeted this motion onto a real key and no
		// keymap rule claims it either: tap the key directly. A
		// Relative event has no physical release to later consult, so
		// there is nothing to swallow — the tap is complete here.
		return h.gen.Generate([]keymap.Step{{Kind: keymap.StepChord, Chord: keymap.Chord{Key: code}}}, h.held)
	}

	if rule.Action.Suppressed {
		if h.OnMatch != nil {
			h.OnMatch(code, true, false)
		}
		return nil
	}

	var out []event.Action
	if len(rule.Action.Steps) > 0 {
		out = h.gen.Generate(rule.Action.Steps, h.held)
	}
	if rule.Action.Submap != nil {
		h.sub.Install(rule.Action.Submap)
	}
	if h.OnMatch != nil {
		h.OnMatch(code, false, rule.Action.Submap != nil)
	}
	return out
}

func (h *Handler) handleKey(ev event.Event) []event.Action {
	code := ev.Code
	if mapped, ok := h.table.Modmap[code]; ok {
		code = mapped
	}

	if ev.Value == event.Release {
		return h.handleRelease(code)
	}
	return h.handlePress(code)
}

func (h *Handler) handlePress(code uint16) []event.Action {
	isMod := modifier.IsModifier(code)

	var rule *keymap.Rule
	if sm := h.sub.Active(); sm != nil {
		rule = h.engine.MatchSubmap(sm, code, isMod, h.held)
		// A modifier press the sub-map does not claim leaves it active.
		if rule == nil && !isMod {
			h.sub.Clear()
			if h.OnSubmapCleared != nil {
				h.OnSubmapCleared()
			}
		}
	}
	if rule == nil {
		rule = h.engine.MatchTopLevel(h.table, code, isMod, h.held, h.device)
	}

	if rule == nil {
		if isMod {
			h.held.Press(code)
		}
		return []event.Action{event.KeyAction(code, event.Press)}
	}

	if rule.Action.Suppressed {
		h.suppressed[code] = true
		if h.OnMatch != nil {
			h.OnMatch(code, true, false)
		}
		return nil
	}

	var out []event.Action
	if len(rule.Action.Steps) > 0 {
		out = h.gen.Generate(rule.Action.Steps, h.held)
	}
	if rule.Action.Submap != nil {
		h.sub.Install(rule.Action.Submap)
	}
	h.swallowed[code] = true
	if h.OnMatch != nil {
		h.OnMatch(code, false, rule.Action.Submap != nil)
	}
	return out
}

func (h *Handler) handleRelease(code uint16) []event.Action {
	if h.swallowed[code] {
		delete(h.swallowed, code)
		return nil
	}
	if h.suppressed[code] {
		delete(h.suppressed, code)
		return []event.Action{event.KeyAction(code, event.Release)}
	}
	if modifier.IsModifier(code) {
		h.held.Release(code)
	}
	return []event.Action{event.KeyAction(code, event.Release)}
}
