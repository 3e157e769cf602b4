// Package keycode resolves the key-name tokens used in trigger and
// action strings (lowercase letters, function keys, named keys, and
// the custom relative-motion names) to evdev scancodes.
package keycode

import (
	"fmt"
	"strings"

	"github.com/Danondso/xremap-core/internal/event"
	"github.com/Danondso/xremap-core/internal/modifier"
)

// AnyCode is the sentinel trigger key standing in for the ANY wildcard,
// which matches any non-modifier key not already matched earlier in
// the same entry.
const AnyCode uint16 = 0xffff

// byName maps lowercase key tokens to evdev scancodes, grounded on the
// same KEY_* numbering the teacher's hotkey package uses for its
// uppercase KEY_* names.
var byName = map[string]uint16{
	"esc": 1, "1": 2, "2": 3, "3": 4, "4": 5, "5": 6, "6": 7, "7": 8, "8": 9,
	"9": 10, "0": 11, "minus": 12, "equal": 13, "backspace": 14, "tab": 15,
	"q": 16, "w": 17, "e": 18, "r": 19, "t": 20, "y": 21, "u": 22, "i": 23,
	"o": 24, "p": 25, "leftbrace": 26, "rightbrace": 27, "enter": 28,
	"a": 30, "s": 31, "d": 32, "f": 33, "g": 34, "h": 35, "j": 36, "k": 37,
	"l": 38, "semicolon": 39, "apostrophe": 40, "grave": 41, "backslash": 43,
	"z": 44, "x": 45, "c": 46, "v": 47, "b": 48, "n": 49, "m": 50,
	"comma": 51, "dot": 52, "slash": 53, "kpasterisk": 55, "space": 57,
	"capslock": 58,
	"f1": 59, "f2": 60, "f3": 61, "f4": 62, "f5": 63, "f6": 64, "f7": 65,
	"f8": 66, "f9": 67, "f10": 68, "numlock": 69, "scrolllock": 70,
	"f11": 87, "f12": 88,
	"home": 102, "up": 103, "pageup": 104, "left": 105, "right": 106,
	"end": 107, "down": 108, "pagedown": 109, "insert": 110, "delete": 111,
	"pause": 119,
	"f13": 183, "f14": 184, "f15": 185, "f16": 186, "f17": 187, "f18": 188,
	"f19": 189, "f20": 190, "f21": 191, "f22": 192, "f23": 193, "f24": 194,
}

// modifierNames lets a modmap/keymap action target a concrete
// modifier key by name (the classic "CapsLock -> LeftCtrl" remap),
// reusing the scancodes internal/modifier already defines rather than
// duplicating them here.
var modifierNames = map[string]uint16{
	"leftshift": modifier.CodeLeftShift, "rightshift": modifier.CodeRightShift,
	"leftctrl": modifier.CodeLeftCtrl, "rightctrl": modifier.CodeRightCtrl,
	"leftalt": modifier.CodeLeftAlt, "rightalt": modifier.CodeRightAlt,
	"leftmeta": modifier.CodeLeftMeta, "rightmeta": modifier.CodeRightMeta,
}

// motionNames maps the custom relative-motion trigger/action names to
// the (axis, positive) pair their disguise code is derived from.
var motionNames = map[string]struct {
	axis     uint16
	positive bool
}{
	"xrightcursor":       {event.RelX, true},
	"xleftcursor":        {event.RelX, false},
	"xdowncursor":        {event.RelY, true},
	"xupcursor":          {event.RelY, false},
	"xupscroll":          {event.RelWheel, true},
	"xdownscroll":        {event.RelWheel, false},
	"xrightscroll":       {event.RelHWheel, true},
	"xleftscroll":        {event.RelHWheel, false},
	"xhiresupscroll":     {event.RelWheelHiRes, true},
	"xhiresdownscroll":   {event.RelWheelHiRes, false},
	"xhiresrightscroll":  {event.RelHWheelHiRes, true},
	"xhiresleftscroll":   {event.RelHWheelHiRes, false},
}

// Resolve maps a lowercase key token (a plain key name, a custom
// motion name, or "any") to its scancode.
func Resolve(name string) (uint16, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "any" {
		return AnyCode, nil
	}
	if code, ok := byName[n]; ok {
		return code, nil
	}
	if code, ok := modifierNames[n]; ok {
		return code, nil
	}
	if m, ok := motionNames[n]; ok {
		delta := int32(1)
		if !m.positive {
			delta = -1
		}
		code, ok := event.DisguiseCode(m.axis, delta)
		if !ok {
			return 0, fmt.Errorf("motion name %q has no disguise slot", name)
		}
		return code, nil
	}
	return 0, fmt.Errorf("unknown key name: %s", name)
}
