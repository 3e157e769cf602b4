// Package match implements the rule-matching state machine: given an
// event, the currently held modifiers, and the active context, it
// selects the first rule whose predicates and trigger requirements
// are satisfied.
package match

import (
	"github.com/Danondso/xremap-core/internal/keymap"
	"github.com/Danondso/xremap-core/internal/modifier"
)

// Capability is the minimal window-manager query surface the match
// engine consults when evaluating application/window predicates. Any
// implementation satisfies it (spec §9); the engine tolerates a nil
// Capability or one returning ok=false (ClientUnavailable, spec §7).
type Capability interface {
	Supported() bool
	CurrentApplication() (name string, ok bool)
	CurrentWindow() (name string, ok bool)
}

// Engine walks a keymap.Table (or an active sub-map) in declaration
// order looking for the first rule whose predicates and modifier
// requirement are satisfied by the current context.
type Engine struct {
	WM Capability
}

// NewEngine builds a match Engine backed by the given capability.
// wm may be nil, equivalent to a capability that is never available.
func NewEngine(wm Capability) *Engine {
	return &Engine{WM: wm}
}

// MatchTopLevel scans table's entries in order for a rule matching
// code under held, honoring each entry's application/device/window
// predicates (spec §4.3 step 2a) and exact_match policy.
func (eng *Engine) MatchTopLevel(table *keymap.Table, code uint16, isModifierCode bool, held *modifier.State, device string) *keymap.Rule {
	for i := range table.Entries {
		entry := &table.Entries[i]
		if !eng.predicatesMatch(entry, device) {
			continue
		}
		if r := matchTrigger(entry.Rules, entry.AnyRule, code, isModifierCode, held, entry.ExactMatch); r != nil {
			return r
		}
	}
	return nil
}

// MatchSubmap scans an active sub-map's rules. Sub-maps carry no
// predicates and always use loose (non-exact_match) modifier
// comparison, per spec §4.5.
func (eng *Engine) MatchSubmap(sm *keymap.SubmapTable, code uint16, isModifierCode bool, held *modifier.State) *keymap.Rule {
	return matchTrigger(sm.Rules, sm.AnyRule, code, isModifierCode, held, false)
}

func (eng *Engine) predicatesMatch(e *keymap.Entry, device string) bool {
	if e.Application != nil {
		var app string
		var ok bool
		if eng.WM != nil {
			app, ok = eng.WM.CurrentApplication()
		}
		if !e.Application.Match(app, ok) {
			return false
		}
	}
	if e.Window != nil {
		var win string
		var ok bool
		if eng.WM != nil {
			win, ok = eng.WM.CurrentWindow()
		}
		if !e.Window.Match(win, ok) {
			return false
		}
	}
	if e.Device != nil && !e.Device.Match(device, true) {
		return false
	}
	return true
}

// matchTrigger finds the first rule in rules whose key equals code
// and whose modifier requirement is satisfied by held. held is the
// state from before this event: the handler records an unmatched
// modifier press only after matching, so a fresh press of code is not
// counted as background context. ANY is tried last, and only for
// non-modifier codes (spec §8 scenario 9).
func matchTrigger(rules []keymap.Rule, anyRule *keymap.Rule, code uint16, isModifierCode bool, held *modifier.State, exact bool) *keymap.Rule {
	for i := range rules {
		r := &rules[i]
		if r.Trigger.Key != code {
			continue
		}
		if modsSatisfied(r.Trigger.Modifiers, held, exact) {
			return r
		}
	}
	if anyRule != nil && !isModifierCode {
		if modsSatisfied(anyRule.Trigger.Modifiers, held, exact) {
			return anyRule
		}
	}
	return nil
}

// modsSatisfied checks the trigger's modifier requirement against the
// held set. Loose: every requirement must be satisfied by some held
// modifier of the right class (any side, unless the requirement names
// a terminal side). Exact: additionally, every held modifier must
// satisfy some requirement (no extras allowed) — spec §8 scenario 3.
func modsSatisfied(reqs []keymap.ModifierReq, held *modifier.State, exact bool) bool {
	heldCodes := held.HeldCodes()
	satisfied := make([]bool, len(reqs))
	used := make([]bool, len(heldCodes))

	for hi, code := range heldCodes {
		key, ok := modifier.Lookup(code)
		if !ok {
			continue
		}
		for ri, r := range reqs {
			if r.Class != key.Class || (r.Side != modifier.Either && r.Side != key.Side) {
				continue
			}
			used[hi] = true
			if !satisfied[ri] {
				satisfied[ri] = true
				break
			}
		}
	}

	for _, ok := range satisfied {
		if !ok {
			return false
		}
	}
	if exact {
		for _, ok := range used {
			if !ok {
				return false
			}
		}
	}
	return true
}
