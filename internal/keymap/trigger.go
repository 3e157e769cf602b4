package keymap

import (
	"fmt"
	"strings"

	"github.com/Danondso/xremap-core/internal/keycode"
	"github.com/Danondso/xremap-core/internal/modifier"
)

// ModifierReq is one modifier requirement in a trigger or output
// chord: a class, and a side — Either for loose tokens (C, M, Shift,
// Super/Win), Left/Right for the terminal _l/_r tokens.
type ModifierReq struct {
	Class modifier.Class
	Side  modifier.Side
}

// Chord is a parsed `<mod>('-'<mod>)*'-'<key>` / bare `<key>` trigger
// string, shared by both sides of a remap: the inbound trigger and
// each chord in the outbound action list.
type Chord struct {
	Modifiers []ModifierReq
	Key       uint16
}

var looseTokens = map[string]modifier.Class{
	"c": modifier.Control, "ctrl": modifier.Control, "control": modifier.Control,
	"m": modifier.Alt, "alt": modifier.Alt,
	"shift": modifier.Shift,
	"super": modifier.Meta, "win": modifier.Meta,
}

var terminalTokens = map[string]ModifierReq{
	"c_l":     {modifier.Control, modifier.Left},
	"c_r":     {modifier.Control, modifier.Right},
	"alt_l":   {modifier.Alt, modifier.Left},
	"alt_r":   {modifier.Alt, modifier.Right},
	"shift_l": {modifier.Shift, modifier.Left},
	"shift_r": {modifier.Shift, modifier.Right},
	"win_l":   {modifier.Meta, modifier.Left},
	"win_r":   {modifier.Meta, modifier.Right},
}

func parseModifierToken(tok string) (ModifierReq, error) {
	t := strings.ToLower(tok)
	if class, ok := looseTokens[t]; ok {
		return ModifierReq{Class: class, Side: modifier.Either}, nil
	}
	if req, ok := terminalTokens[t]; ok {
		return req, nil
	}
	return ModifierReq{}, fmt.Errorf("unknown modifier token %q", tok)
}

// ParseChord parses a trigger or action chord string per spec §6's
// grammar: `<mod>('-'<mod>)*'-'<key>` or a bare `<key>`. The trailing
// token is tried first as an ordinary key/motion/ANY name; if that
// fails, it is tried as a terminal modifier token (e.g. `c_l`, used
// standalone or as the last element of `win_l-shift_r`), letting a
// modifier itself serve as the matched key.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Chord{}, fmt.Errorf("empty trigger")
	}

	var mods []ModifierReq
	for _, p := range parts[:len(parts)-1] {
		req, err := parseModifierToken(p)
		if err != nil {
			return Chord{}, fmt.Errorf("trigger %q: %w", s, err)
		}
		mods = append(mods, req)
	}

	last := parts[len(parts)-1]
	if code, err := keycode.Resolve(last); err == nil {
		return Chord{Modifiers: mods, Key: code}, nil
	}
	if req, err := parseModifierToken(last); err == nil && req.Side != modifier.Either {
		return Chord{Modifiers: mods, Key: modifier.CodeFor(req.Class, req.Side)}, nil
	}
	return Chord{}, fmt.Errorf("trigger %q: unknown key %q", s, last)
}
