// Package modifier tracks which physical modifier keys are currently
// held, distinguishing left/right variants, and answers class+side
// queries for the match engine and action generator.
package modifier

// Class groups a modifier key by its logical function, independent of
// which side of the keyboard produced it.
type Class int

const (
	Shift Class = iota
	Control
	Alt
	Meta
)

func (c Class) String() string {
	switch c {
	case Shift:
		return "Shift"
	case Control:
		return "Control"
	case Alt:
		return "Alt"
	case Meta:
		return "Meta"
	default:
		return "Unknown"
	}
}

// Side distinguishes the physical key side. Either is only meaningful
// in a requirement (loose modifiers match either side); a held key
// always has a concrete Left or Right side.
type Side int

const (
	Either Side = iota
	Left
	Right
)

// Key is the class and side of one recognized modifier scancode.
type Key struct {
	Class Class
	Side  Side
}

// Evdev scancodes for the eight recognized modifier keys.
const (
	CodeLeftShift   uint16 = 42
	CodeRightShift  uint16 = 54
	CodeLeftCtrl    uint16 = 29
	CodeRightCtrl   uint16 = 97
	CodeLeftAlt     uint16 = 56
	CodeRightAlt    uint16 = 100
	CodeLeftMeta    uint16 = 125
	CodeRightMeta   uint16 = 126
)

var table = map[uint16]Key{
	CodeLeftShift:  {Shift, Left},
	CodeRightShift: {Shift, Right},
	CodeLeftCtrl:   {Control, Left},
	CodeRightCtrl:  {Control, Right},
	CodeLeftAlt:    {Alt, Left},
	CodeRightAlt:   {Alt, Right},
	CodeLeftMeta:   {Meta, Left},
	CodeRightMeta:  {Meta, Right},
}

// canonical is the scancode used to synthesize a press/release for a
// loose (Either-side) requirement of a given class.
var canonical = map[Class]uint16{
	Shift:   CodeLeftShift,
	Control: CodeLeftCtrl,
	Alt:     CodeLeftAlt,
	Meta:    CodeLeftMeta,
}

// Lookup reports whether code is a recognized modifier, and its
// class/side if so.
func Lookup(code uint16) (Key, bool) {
	k, ok := table[code]
	return k, ok
}

// IsModifier reports whether code is in the fixed modifier table.
func IsModifier(code uint16) bool {
	_, ok := table[code]
	return ok
}

// CodeFor returns the scancode representing class+side. Either
// resolves to the left-hand variant, matching the convention the
// action generator uses when synthesizing presses for loose requirements.
func CodeFor(class Class, side Side) uint16 {
	if side == Left || side == Either {
		return canonical[class]
	}
	switch class {
	case Shift:
		return CodeRightShift
	case Control:
		return CodeRightCtrl
	case Alt:
		return CodeRightAlt
	case Meta:
		return CodeRightMeta
	}
	return 0
}

// State is the set of modifier scancodes currently held. It is owned
// exclusively by the handler; it is not safe for concurrent use.
type State struct {
	held map[uint16]bool
}

// NewState returns an empty modifier state.
func NewState() *State {
	return &State{held: make(map[uint16]bool)}
}

// Press records code as held. No-op if code isn't a recognized modifier.
func (s *State) Press(code uint16) {
	if !IsModifier(code) {
		return
	}
	s.held[code] = true
}

// Release clears code from the held set.
func (s *State) Release(code uint16) {
	delete(s.held, code)
}

// Holds reports whether a modifier of class is held on the requested
// side. Either matches either side being held.
func (s *State) Holds(class Class, side Side) bool {
	for code := range s.held {
		k := table[code]
		if k.Class != class {
			continue
		}
		if side == Either || k.Side == side {
			return true
		}
	}
	return false
}

// HeldCodes returns the currently held modifier scancodes, order
// unspecified.
func (s *State) HeldCodes() []uint16 {
	codes := make([]uint16, 0, len(s.held))
	for code := range s.held {
		codes = append(codes, code)
	}
	return codes
}

// IsHeld reports whether the exact scancode is currently held.
func (s *State) IsHeld(code uint16) bool {
	return s.held[code]
}
